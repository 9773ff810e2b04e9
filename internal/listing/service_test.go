package listing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fyyur/internal/logging"
	"fyyur/internal/models"
)

var refNow = time.Date(2030, 6, 15, 20, 0, 0, 0, time.UTC)

func sampleStore() *fakeStore {
	return newFakeStore().
		addVenue(models.Venue{ID: 1, Name: "The Fillmore", City: "SF", State: "CA", ImageLink: "fillmore.jpg"}).
		addVenue(models.Venue{ID: 2, Name: "Fillmore East", City: "SF", State: "CA"}).
		addVenue(models.Venue{ID: 3, Name: "Blue Note", City: "NY", State: "NY"}).
		addArtist(models.Artist{ID: 5, Name: "Guns N Petals", ImageLink: "gnp.jpg"}).
		addArtist(models.Artist{ID: 6, Name: "Matt Quevedo"})
}

func TestGetVenueDetailPartitionsShows(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(-time.Hour)}).
		addShow(models.Show{ID: 11, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(time.Hour)})

	detail, err := New(st).GetVenueDetail(context.Background(), 1, refNow, StyleMedium)
	if err != nil {
		t.Fatalf("GetVenueDetail error: %v", err)
	}

	if detail.PastShowsCount != 1 || detail.UpcomingShowsCount != 1 {
		t.Fatalf("expected 1 past and 1 upcoming, got %d/%d", detail.PastShowsCount, detail.UpcomingShowsCount)
	}
	if detail.PastShows[0].ShowID != 10 || detail.UpcomingShows[0].ShowID != 11 {
		t.Fatalf("shows landed in the wrong partition: %#v / %#v", detail.PastShows, detail.UpcomingShows)
	}
	up := detail.UpcomingShows[0]
	if up.ArtistID != 5 || up.ArtistName != "Guns N Petals" || up.ArtistImageLink != "gnp.jpg" {
		t.Fatalf("unexpected denormalized artist fields: %#v", up)
	}
	if up.StartTimeDisplay == "" {
		t.Fatalf("expected a formatted start time")
	}
	if detail.Name != "The Fillmore" {
		t.Fatalf("expected venue fields to be embedded, got %q", detail.Name)
	}
}

func TestPartitionExcludesShowsStartingNow(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(-time.Minute)}).
		addShow(models.Show{ID: 11, VenueID: 1, ArtistID: 6, StartTime: refNow}).
		addShow(models.Show{ID: 12, VenueID: 1, ArtistID: 6, StartTime: refNow.Add(time.Nanosecond)})

	detail, err := New(st).GetVenueDetail(context.Background(), 1, refNow, StyleMedium)
	if err != nil {
		t.Fatalf("GetVenueDetail error: %v", err)
	}

	for _, group := range [][]ArtistShow{detail.PastShows, detail.UpcomingShows} {
		for _, sh := range group {
			if sh.ShowID == 11 {
				t.Fatalf("show starting exactly at now must be in neither partition")
			}
		}
	}
	if detail.PastShowsCount != len(detail.PastShows) || detail.UpcomingShowsCount != len(detail.UpcomingShows) {
		t.Fatalf("counts must equal list lengths")
	}
	if detail.PastShowsCount+detail.UpcomingShowsCount != 2 {
		t.Fatalf("expected 2 partitioned shows, got %d", detail.PastShowsCount+detail.UpcomingShowsCount)
	}
}

func TestGetVenueDetailWithoutShowsHasEmptyLists(t *testing.T) {
	detail, err := New(sampleStore()).GetVenueDetail(context.Background(), 3, refNow, StyleMedium)
	if err != nil {
		t.Fatalf("GetVenueDetail error: %v", err)
	}
	if detail.PastShows == nil || detail.UpcomingShows == nil {
		t.Fatalf("expected empty, non-nil show lists")
	}
}

func TestGetVenueDetailResolvesEachArtistOnce(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(-time.Hour)}).
		addShow(models.Show{ID: 11, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(time.Hour)}).
		addShow(models.Show{ID: 12, VenueID: 1, ArtistID: 6, StartTime: refNow.Add(2 * time.Hour)})

	if _, err := New(st).GetVenueDetail(context.Background(), 1, refNow, StyleMedium); err != nil {
		t.Fatalf("GetVenueDetail error: %v", err)
	}
	if st.artistCalls[5] != 1 || st.artistCalls[6] != 1 {
		t.Fatalf("expected one lookup per artist, got %v", st.artistCalls)
	}
}

func TestGetVenueDetailDanglingArtistAborts(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(time.Hour)}).
		addShow(models.Show{ID: 13, VenueID: 1, ArtistID: 99, StartTime: refNow.Add(-time.Hour)})

	_, err := New(st).GetVenueDetail(context.Background(), 1, refNow, StyleMedium)

	var refErr *ReferenceIntegrityError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceIntegrityError, got %v", err)
	}
	if refErr.ShowID != 13 || refErr.Kind != KindArtist || refErr.MissingID != 99 {
		t.Fatalf("unexpected integrity error: %#v", refErr)
	}
	if !strings.Contains(err.Error(), "99") {
		t.Fatalf("expected error to name the missing id, got %q", err.Error())
	}
}

func TestGetArtistDetailDanglingVenueAborts(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(time.Hour)}).
		addShow(models.Show{ID: 14, VenueID: 77, ArtistID: 5, StartTime: refNow.Add(-time.Hour)})

	_, err := New(st).GetArtistDetail(context.Background(), 5, refNow, StyleMedium)

	var refErr *ReferenceIntegrityError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceIntegrityError, got %v", err)
	}
	if refErr.ShowID != 14 || refErr.Kind != KindVenue || refErr.MissingID != 77 {
		t.Fatalf("unexpected integrity error: %#v", refErr)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("a dangling venue must not be reported as a missing artist")
	}
}

func TestGetArtistDetailShowsVenueFields(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(-48 * time.Hour)}).
		addShow(models.Show{ID: 11, VenueID: 3, ArtistID: 5, StartTime: refNow.Add(48 * time.Hour)}).
		addShow(models.Show{ID: 12, VenueID: 2, ArtistID: 6, StartTime: refNow.Add(48 * time.Hour)})

	detail, err := New(st).GetArtistDetail(context.Background(), 5, refNow, StyleFull)
	if err != nil {
		t.Fatalf("GetArtistDetail error: %v", err)
	}

	if detail.PastShowsCount != 1 || detail.UpcomingShowsCount != 1 {
		t.Fatalf("expected 1 past and 1 upcoming, got %d/%d", detail.PastShowsCount, detail.UpcomingShowsCount)
	}
	past := detail.PastShows[0]
	if past.VenueID != 1 || past.VenueName != "The Fillmore" || past.VenueImageLink != "fillmore.jpg" {
		t.Fatalf("unexpected denormalized venue fields: %#v", past)
	}
	if detail.UpcomingShows[0].VenueName != "Blue Note" {
		t.Fatalf("unexpected upcoming show: %#v", detail.UpcomingShows[0])
	}
}

func TestGetArtistDetailNotFound(t *testing.T) {
	_, err := New(sampleStore()).GetArtistDetail(context.Background(), 404, refNow, StyleMedium)

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != KindArtist || nf.ID != 404 {
		t.Fatalf("unexpected not found error: %#v", err)
	}
}

func TestGetVenueDetailNotFound(t *testing.T) {
	_, err := New(sampleStore()).GetVenueDetail(context.Background(), 404, refNow, StyleMedium)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreFailuresSurfaceAsUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	st := sampleStore()
	st.err = cause
	svc := New(st)
	ctx := context.Background()

	calls := map[string]func() error{
		"venues by location": func() error { _, err := svc.ListVenuesByLocation(ctx, refNow); return err },
		"artists":            func() error { _, err := svc.ListArtists(ctx); return err },
		"venue detail":       func() error { _, err := svc.GetVenueDetail(ctx, 1, refNow, StyleMedium); return err },
		"artist detail":      func() error { _, err := svc.GetArtistDetail(ctx, 5, refNow, StyleMedium); return err },
		"search venues":      func() error { _, err := svc.SearchVenues(ctx, "x", refNow); return err },
		"search artists":     func() error { _, err := svc.SearchArtists(ctx, "x", refNow); return err },
		"shows":              func() error { _, err := svc.ListShows(ctx, refNow, StyleMedium); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			var unavailableErr *StoreUnavailableError
			if !errors.As(err, &unavailableErr) {
				t.Fatalf("expected StoreUnavailableError, got %v", err)
			}
			if !errors.Is(err, cause) {
				t.Fatalf("expected the store error to be wrapped, got %v", err)
			}
		})
	}
}

func TestListVenuesByLocation(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(time.Hour)}).
		addShow(models.Show{ID: 11, VenueID: 1, ArtistID: 6, StartTime: refNow.Add(2 * time.Hour)}).
		addShow(models.Show{ID: 12, VenueID: 1, ArtistID: 6, StartTime: refNow.Add(-time.Hour)}).
		addShow(models.Show{ID: 13, VenueID: 3, ArtistID: 6, StartTime: refNow})

	groups, err := New(st).ListVenuesByLocation(context.Background(), refNow)
	if err != nil {
		t.Fatalf("ListVenuesByLocation error: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %#v", len(groups), groups)
	}
	sf, ny := groups[0], groups[1]
	if sf.City != "SF" || sf.State != "CA" || ny.City != "NY" || ny.State != "NY" {
		t.Fatalf("unexpected groups: %#v", groups)
	}
	if len(sf.Venues) != 2 || sf.Venues[0].ID != 1 || sf.Venues[1].ID != 2 {
		t.Fatalf("expected SF venues ordered by id, got %#v", sf.Venues)
	}
	if sf.Venues[0].UpcomingShowsCount != 2 || sf.Venues[1].UpcomingShowsCount != 0 {
		t.Fatalf("unexpected upcoming counts: %#v", sf.Venues)
	}
	if len(ny.Venues) != 1 || ny.Venues[0].ID != 3 || ny.Venues[0].UpcomingShowsCount != 0 {
		t.Fatalf("unexpected NY group: %#v", ny.Venues)
	}
}

func TestGroupByLocationPartitionsVenueSet(t *testing.T) {
	venues := []models.Venue{
		{ID: 9, City: "Austin", State: "TX"},
		{ID: 4, City: "Portland", State: "OR"},
		{ID: 2, City: "Portland", State: "ME"},
		{ID: 7, City: "Austin", State: "TX"},
		{ID: 1, City: "portland", State: "OR"},
	}

	groups := groupByLocation(venues, nil)

	seenLoc := make(map[models.Location]bool)
	seenVenue := make(map[int64]bool)
	for _, g := range groups {
		loc := models.Location{City: g.City, State: g.State}
		if seenLoc[loc] {
			t.Fatalf("duplicate group for %v", loc)
		}
		seenLoc[loc] = true
		for i, v := range g.Venues {
			if seenVenue[v.ID] {
				t.Fatalf("venue %d appears in two groups", v.ID)
			}
			seenVenue[v.ID] = true
			if i > 0 && g.Venues[i-1].ID >= v.ID {
				t.Fatalf("venues not ordered by id in %v: %#v", loc, g.Venues)
			}
		}
	}
	if len(seenVenue) != len(venues) {
		t.Fatalf("expected every venue to be grouped, got %d of %d", len(seenVenue), len(venues))
	}
	if len(groups) != 4 {
		t.Fatalf("expected 4 distinct locations, got %d", len(groups))
	}
}

func TestSearchVenues(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 2, ArtistID: 5, StartTime: refNow.Add(time.Hour)})

	result, err := New(st).SearchVenues(context.Background(), "fillmore", refNow)
	if err != nil {
		t.Fatalf("SearchVenues error: %v", err)
	}

	if result.Count != 2 || len(result.Data) != 2 {
		t.Fatalf("expected 2 matches, got %#v", result)
	}
	if result.Data[0].ID != 1 || result.Data[1].ID != 2 {
		t.Fatalf("expected ids 1 and 2 in ascending order, got %#v", result.Data)
	}
	if result.Data[1].UpcomingShowsCount != 1 {
		t.Fatalf("expected Fillmore East to have 1 upcoming show, got %d", result.Data[1].UpcomingShowsCount)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	st := newFakeStore().
		addVenue(models.Venue{ID: 1, Name: "Name Bar"}).
		addVenue(models.Venue{ID: 2, Name: "Other"})
	svc := New(st)

	lower, err := svc.SearchVenues(context.Background(), "nAmE", refNow)
	if err != nil {
		t.Fatalf("SearchVenues error: %v", err)
	}
	upper, err := svc.SearchVenues(context.Background(), "NAME", refNow)
	if err != nil {
		t.Fatalf("SearchVenues error: %v", err)
	}

	if lower.Count != 1 || upper.Count != 1 || lower.Data[0] != upper.Data[0] {
		t.Fatalf("expected identical results, got %#v and %#v", lower, upper)
	}
}

func TestSearchFoldsUnicode(t *testing.T) {
	st := newFakeStore().addArtist(models.Artist{ID: 1, Name: "Die Straße"})

	result, err := New(st).SearchArtists(context.Background(), "STRASSE", refNow)
	if err != nil {
		t.Fatalf("SearchArtists error: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("expected folded match, got %#v", result)
	}
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	result, err := New(sampleStore()).Search(context.Background(), KindArtist, "", refNow)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if result.Count != 2 || result.Count != len(result.Data) {
		t.Fatalf("expected every artist, got %#v", result)
	}
}

func TestSearchMatchesNameOnly(t *testing.T) {
	st := newFakeStore().
		addArtist(models.Artist{ID: 1, Name: "The Wild Sax Band", City: "San Francisco", Genres: []string{"Jazz"}})

	result, err := New(st).SearchArtists(context.Background(), "jazz", refNow)
	if err != nil {
		t.Fatalf("SearchArtists error: %v", err)
	}
	if result.Count != 0 {
		t.Fatalf("expected genre not to be searched, got %#v", result)
	}
}

func TestSearchUnknownKind(t *testing.T) {
	if _, err := New(sampleStore()).Search(context.Background(), Kind("show"), "", refNow); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestListArtists(t *testing.T) {
	artists, err := New(sampleStore()).ListArtists(context.Background())
	if err != nil {
		t.Fatalf("ListArtists error: %v", err)
	}
	if len(artists) != 2 || artists[0] != (ArtistSummary{ID: 5, Name: "Guns N Petals"}) || artists[1].ID != 6 {
		t.Fatalf("unexpected artists: %#v", artists)
	}
}

func TestListShowsSkipsDanglingReferences(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(-time.Hour)}).
		addShow(models.Show{ID: 11, VenueID: 3, ArtistID: 6, StartTime: refNow.Add(time.Hour)}).
		addShow(models.Show{ID: 12, VenueID: 2, ArtistID: 77, StartTime: refNow.Add(3 * time.Hour)}).
		addShow(models.Show{ID: 13, VenueID: 88, ArtistID: 5, StartTime: refNow.Add(4 * time.Hour)}).
		addShow(models.Show{ID: 14, VenueID: 2, ArtistID: 5, StartTime: refNow.Add(time.Hour)})

	var buf bytes.Buffer
	svc := New(st, WithLogger(logging.New(logging.Config{Level: "warn", Output: &buf})))

	rows, err := svc.ListShows(context.Background(), refNow, StyleMedium)
	if err != nil {
		t.Fatalf("ListShows error: %v", err)
	}

	var ids []int64
	for _, r := range rows {
		ids = append(ids, r.ShowID)
	}
	want := []int64{11, 14, 10}
	if len(ids) != len(want) {
		t.Fatalf("expected shows %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected shows %v, got %v", want, ids)
		}
	}

	first := rows[0]
	if first.VenueName != "Blue Note" || first.ArtistName != "Matt Quevedo" || !first.Upcoming {
		t.Fatalf("unexpected joined row: %#v", first)
	}
	if rows[2].Upcoming {
		t.Fatalf("expected past show to not be flagged upcoming")
	}

	logs := buf.String()
	if !strings.Contains(logs, `"show_id":12`) || !strings.Contains(logs, `"missing_id":88`) {
		t.Fatalf("expected skipped shows to be logged, got %s", logs)
	}
}

type fixedFormatter string

func (f fixedFormatter) Format(time.Time, Style) string { return string(f) }

func TestWithFormatter(t *testing.T) {
	st := sampleStore().
		addShow(models.Show{ID: 10, VenueID: 1, ArtistID: 5, StartTime: refNow.Add(time.Hour)})

	rows, err := New(st, WithFormatter(fixedFormatter("soon"))).ListShows(context.Background(), refNow, StyleFull)
	if err != nil {
		t.Fatalf("ListShows error: %v", err)
	}
	if len(rows) != 1 || rows[0].StartTimeDisplay != "soon" {
		t.Fatalf("expected custom formatter output, got %#v", rows)
	}
}
