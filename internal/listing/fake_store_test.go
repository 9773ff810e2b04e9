package listing

import (
	"context"
	"sort"
	"sync"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

type fakeStore struct {
	mu      sync.Mutex
	venues  map[int64]models.Venue
	artists map[int64]models.Artist
	shows   []models.Show

	err         error // returned by every method when set
	artistCalls map[int64]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:      make(map[int64]models.Venue),
		artists:     make(map[int64]models.Artist),
		artistCalls: make(map[int64]int),
	}
}

func (f *fakeStore) addVenue(v models.Venue) *fakeStore {
	f.venues[v.ID] = v
	return f
}

func (f *fakeStore) addArtist(a models.Artist) *fakeStore {
	f.artists[a.ID] = a
	return f
}

func (f *fakeStore) addShow(sh models.Show) *fakeStore {
	f.shows = append(f.shows, sh)
	return f
}

func (f *fakeStore) FindVenueByID(_ context.Context, id int64) (models.Venue, error) {
	if f.err != nil {
		return models.Venue{}, f.err
	}
	v, ok := f.venues[id]
	if !ok {
		return models.Venue{}, store.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakeStore) FindArtistByID(_ context.Context, id int64) (models.Artist, error) {
	f.mu.Lock()
	f.artistCalls[id]++
	f.mu.Unlock()
	if f.err != nil {
		return models.Artist{}, f.err
	}
	a, ok := f.artists[id]
	if !ok {
		return models.Artist{}, store.ErrArtistNotFound
	}
	return a, nil
}

// List methods return records in reverse id order so tests catch missing sorts.
func (f *fakeStore) ListAllVenues(context.Context) ([]models.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Venue, 0, len(f.venues))
	for _, v := range f.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) ListAllArtists(context.Context) ([]models.Artist, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Artist, 0, len(f.artists))
	for _, a := range f.artists {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) ListAllShows(context.Context) ([]models.Show, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Show(nil), f.shows...), nil
}

func (f *fakeStore) ListShowsForVenue(_ context.Context, venueID int64) ([]models.Show, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Show
	for _, sh := range f.shows {
		if sh.VenueID == venueID {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (f *fakeStore) ListShowsForArtist(_ context.Context, artistID int64) ([]models.Show, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Show
	for _, sh := range f.shows {
		if sh.ArtistID == artistID {
			out = append(out, sh)
		}
	}
	return out, nil
}
