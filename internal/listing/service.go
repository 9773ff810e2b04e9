package listing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fyyur/internal/logging"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

// lookupConcurrency bounds parallel counterpart lookups for a detail page.
const lookupConcurrency = 4

// Store is the read side of the entity store. Find methods report a missing
// record with store.ErrVenueNotFound or store.ErrArtistNotFound.
type Store interface {
	FindVenueByID(ctx context.Context, id int64) (models.Venue, error)
	FindArtistByID(ctx context.Context, id int64) (models.Artist, error)
	ListAllVenues(ctx context.Context) ([]models.Venue, error)
	ListAllArtists(ctx context.Context) ([]models.Artist, error)
	ListAllShows(ctx context.Context) ([]models.Show, error)
	ListShowsForVenue(ctx context.Context, venueID int64) ([]models.Show, error)
	ListShowsForArtist(ctx context.Context, artistID int64) ([]models.Show, error)
}

// ArtistSummary is an entry of the bare artist list.
type ArtistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// VenueDetail is a venue with its shows split around a reference time.
type VenueDetail struct {
	models.Venue
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ArtistDetail is an artist with their shows split around a reference time.
type ArtistDetail struct {
	models.Artist
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ShowRow is one entry of the global show list.
type ShowRow struct {
	ShowID           int64     `json:"show_id"`
	VenueID          int64     `json:"venue_id"`
	VenueName        string    `json:"venue_name"`
	ArtistID         int64     `json:"artist_id"`
	ArtistName       string    `json:"artist_name"`
	ArtistImageLink  string    `json:"artist_image_link"`
	StartTime        time.Time `json:"start_time"`
	StartTimeDisplay string    `json:"start_time_display"`
	Upcoming         bool      `json:"upcoming"`
}

// Service builds the read models for venue, artist and show pages.
type Service struct {
	store     Store
	formatter Formatter
	logger    *logging.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithFormatter overrides how start times are rendered.
func WithFormatter(f Formatter) Option {
	return func(s *Service) { s.formatter = f }
}

// WithLogger sets the logger used for skipped rows.
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New constructs a listing Service reading from store.
func New(st Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		formatter: LayoutFormatter{Location: time.UTC},
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) formatFunc(style Style) func(time.Time) string {
	return func(t time.Time) string { return s.formatter.Format(t, style) }
}

// ListVenuesByLocation groups every venue by (city, state) with its upcoming show count.
func (s *Service) ListVenuesByLocation(ctx context.Context, now time.Time) ([]LocationGroup, error) {
	var (
		venues []models.Venue
		shows  []models.Show
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if venues, err = s.store.ListAllVenues(gctx); err != nil {
			return unavailable("list venues", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if shows, err = s.store.ListAllShows(gctx); err != nil {
			return unavailable("list shows", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return groupByLocation(venues, upcomingCounts(shows, now, byVenue)), nil
}

// ListArtists returns the id and name of every artist in ascending id order.
func (s *Service) ListArtists(ctx context.Context) ([]ArtistSummary, error) {
	artists, err := s.store.ListAllArtists(ctx)
	if err != nil {
		return nil, unavailable("list artists", err)
	}

	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetVenueDetail returns a venue with its past and upcoming shows.
func (s *Service) GetVenueDetail(ctx context.Context, id int64, now time.Time, style Style) (VenueDetail, error) {
	venue, err := s.store.FindVenueByID(ctx, id)
	if errors.Is(err, store.ErrVenueNotFound) {
		return VenueDetail{}, &NotFoundError{Kind: KindVenue, ID: id}
	}
	if err != nil {
		return VenueDetail{}, unavailable("find venue", err)
	}

	shows, err := s.store.ListShowsForVenue(ctx, id)
	if err != nil {
		return VenueDetail{}, unavailable("list venue shows", err)
	}

	artists, err := s.resolveArtists(ctx, shows)
	if err != nil {
		return VenueDetail{}, err
	}

	past, upcoming, err := partitionShows(shows, now, artistShowBuilder(artists, s.formatFunc(style)))
	if err != nil {
		return VenueDetail{}, err
	}

	return VenueDetail{
		Venue:              venue,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// GetArtistDetail returns an artist with their past and upcoming shows.
func (s *Service) GetArtistDetail(ctx context.Context, id int64, now time.Time, style Style) (ArtistDetail, error) {
	artist, err := s.store.FindArtistByID(ctx, id)
	if errors.Is(err, store.ErrArtistNotFound) {
		return ArtistDetail{}, &NotFoundError{Kind: KindArtist, ID: id}
	}
	if err != nil {
		return ArtistDetail{}, unavailable("find artist", err)
	}

	shows, err := s.store.ListShowsForArtist(ctx, id)
	if err != nil {
		return ArtistDetail{}, unavailable("list artist shows", err)
	}

	venues, err := s.resolveVenues(ctx, shows)
	if err != nil {
		return ArtistDetail{}, err
	}

	past, upcoming, err := partitionShows(shows, now, venueShowBuilder(venues, s.formatFunc(style)))
	if err != nil {
		return ArtistDetail{}, err
	}

	return ArtistDetail{
		Artist:             artist,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Search matches term against venue or artist names.
func (s *Service) Search(ctx context.Context, kind Kind, term string, now time.Time) (SearchResult, error) {
	switch kind {
	case KindVenue:
		return s.SearchVenues(ctx, term, now)
	case KindArtist:
		return s.SearchArtists(ctx, term, now)
	default:
		return SearchResult{}, fmt.Errorf("search: unknown kind %q", kind)
	}
}

// SearchVenues returns venues whose name contains term, ignoring case.
func (s *Service) SearchVenues(ctx context.Context, term string, now time.Time) (SearchResult, error) {
	var (
		venues []models.Venue
		shows  []models.Show
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if venues, err = s.store.ListAllVenues(gctx); err != nil {
			return unavailable("list venues", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if shows, err = s.store.ListAllShows(gctx); err != nil {
			return unavailable("list shows", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return SearchResult{}, err
	}

	matched := matchByName(venues, term, func(v models.Venue) string { return v.Name })
	counts := upcomingCounts(shows, now, byVenue)
	return buildSearchResult(matched, func(v models.Venue) Summary {
		return Summary{ID: v.ID, Name: v.Name, UpcomingShowsCount: counts[v.ID]}
	}), nil
}

// SearchArtists returns artists whose name contains term, ignoring case.
func (s *Service) SearchArtists(ctx context.Context, term string, now time.Time) (SearchResult, error) {
	var (
		artists []models.Artist
		shows   []models.Show
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if artists, err = s.store.ListAllArtists(gctx); err != nil {
			return unavailable("list artists", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if shows, err = s.store.ListAllShows(gctx); err != nil {
			return unavailable("list shows", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return SearchResult{}, err
	}

	matched := matchByName(artists, term, func(a models.Artist) string { return a.Name })
	counts := upcomingCounts(shows, now, byArtist)
	return buildSearchResult(matched, func(a models.Artist) Summary {
		return Summary{ID: a.ID, Name: a.Name, UpcomingShowsCount: counts[a.ID]}
	}), nil
}

// ListShows returns every show joined with its venue and artist, newest first.
// Shows whose venue or artist cannot be resolved are logged and left out.
func (s *Service) ListShows(ctx context.Context, now time.Time, style Style) ([]ShowRow, error) {
	var (
		venues  []models.Venue
		artists []models.Artist
		shows   []models.Show
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if venues, err = s.store.ListAllVenues(gctx); err != nil {
			return unavailable("list venues", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if artists, err = s.store.ListAllArtists(gctx); err != nil {
			return unavailable("list artists", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if shows, err = s.store.ListAllShows(gctx); err != nil {
			return unavailable("list shows", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	venueByID := make(map[int64]models.Venue, len(venues))
	for _, v := range venues {
		venueByID[v.ID] = v
	}
	artistByID := make(map[int64]models.Artist, len(artists))
	for _, a := range artists {
		artistByID[a.ID] = a
	}

	format := s.formatFunc(style)
	rows := make([]ShowRow, 0, len(shows))
	for _, sh := range shows {
		row, refErr := joinShow(sh, venueByID, artistByID)
		if refErr != nil {
			s.logger.WithContext(ctx).Warn().
				Int64("show_id", refErr.ShowID).
				Str("kind", string(refErr.Kind)).
				Int64("missing_id", refErr.MissingID).
				Msg("skipping show with unresolved reference")
			continue
		}
		row.StartTimeDisplay = format(sh.StartTime)
		row.Upcoming = isUpcoming(sh, now)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].StartTime.Equal(rows[j].StartTime) {
			return rows[i].StartTime.After(rows[j].StartTime)
		}
		return rows[i].ShowID < rows[j].ShowID
	})
	return rows, nil
}

func joinShow(sh models.Show, venues map[int64]models.Venue, artists map[int64]models.Artist) (ShowRow, *ReferenceIntegrityError) {
	v, ok := venues[sh.VenueID]
	if !ok {
		return ShowRow{}, &ReferenceIntegrityError{ShowID: sh.ID, Kind: KindVenue, MissingID: sh.VenueID}
	}
	a, ok := artists[sh.ArtistID]
	if !ok {
		return ShowRow{}, &ReferenceIntegrityError{ShowID: sh.ID, Kind: KindArtist, MissingID: sh.ArtistID}
	}
	return ShowRow{
		ShowID:          sh.ID,
		VenueID:         v.ID,
		VenueName:       v.Name,
		ArtistID:        a.ID,
		ArtistName:      a.Name,
		ArtistImageLink: a.ImageLink,
		StartTime:       sh.StartTime,
	}, nil
}

// resolveArtists loads the distinct artists referenced by shows. Missing
// artists are absent from the result rather than reported as errors.
func (s *Service) resolveArtists(ctx context.Context, shows []models.Show) (map[int64]models.Artist, error) {
	return resolve(ctx, shows, byArtist, func(ctx context.Context, id int64) (models.Artist, bool, error) {
		a, err := s.store.FindArtistByID(ctx, id)
		if errors.Is(err, store.ErrArtistNotFound) {
			return models.Artist{}, false, nil
		}
		if err != nil {
			return models.Artist{}, false, unavailable("find artist", err)
		}
		return a, true, nil
	})
}

// resolveVenues loads the distinct venues referenced by shows.
func (s *Service) resolveVenues(ctx context.Context, shows []models.Show) (map[int64]models.Venue, error) {
	return resolve(ctx, shows, byVenue, func(ctx context.Context, id int64) (models.Venue, bool, error) {
		v, err := s.store.FindVenueByID(ctx, id)
		if errors.Is(err, store.ErrVenueNotFound) {
			return models.Venue{}, false, nil
		}
		if err != nil {
			return models.Venue{}, false, unavailable("find venue", err)
		}
		return v, true, nil
	})
}

func resolve[T any](
	ctx context.Context,
	shows []models.Show,
	ref func(models.Show) int64,
	find func(context.Context, int64) (T, bool, error),
) (map[int64]T, error) {
	var (
		mu    sync.Mutex
		found = make(map[int64]T)
		seen  = make(map[int64]struct{})
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for _, sh := range shows {
		id := ref(sh)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		g.Go(func() error {
			item, ok, err := find(gctx, id)
			if err != nil || !ok {
				return err
			}
			mu.Lock()
			found[id] = item
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}
