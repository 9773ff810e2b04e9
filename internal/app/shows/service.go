package shows

import (
	"context"
	"errors"
	"fmt"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

// Store defines persistence operations for shows
type Store interface {
	CreateShow(ctx context.Context, show models.Show) (models.Show, error)
}

// VenueFinder allows validating that venues exist before creating shows
type VenueFinder interface {
	FindVenueByID(ctx context.Context, id int64) (models.Venue, error)
}

// ArtistFinder allows validating that artists exist before creating shows
type ArtistFinder interface {
	FindArtistByID(ctx context.Context, id int64) (models.Artist, error)
}

// Service coordinates show write operations
type Service interface {
	Create(ctx context.Context, show models.Show) (models.Show, error)
}

type service struct {
	store   Store
	venues  VenueFinder  // Optional: validate venues exist
	artists ArtistFinder // Optional: validate artists exist
}

// New constructs a shows Service. venues and artists may be nil, in which
// case the store's foreign keys are the only reference check.
func New(store Store, venues VenueFinder, artists ArtistFinder) Service {
	return &service{store: store, venues: venues, artists: artists}
}

func (s *service) Create(ctx context.Context, show models.Show) (models.Show, error) {
	if err := ctx.Err(); err != nil {
		return models.Show{}, err
	}

	if s.venues != nil && show.VenueID > 0 {
		if _, err := s.venues.FindVenueByID(ctx, show.VenueID); err != nil {
			return models.Show{}, referenceError(err, store.ErrVenueNotFound)
		}
	}
	if s.artists != nil && show.ArtistID > 0 {
		if _, err := s.artists.FindArtistByID(ctx, show.ArtistID); err != nil {
			return models.Show{}, referenceError(err, store.ErrArtistNotFound)
		}
	}

	show.ID = 0
	return s.store.CreateShow(ctx, show)
}

func referenceError(err, notFound error) error {
	if errors.Is(err, notFound) {
		return fmt.Errorf("%w: %v", store.ErrInvalidShow, err)
	}
	return err
}
