package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyyur/internal/models"
)

// ErrInvalidShow indicates a show with missing fields or unknown venue/artist.
var ErrInvalidShow = errors.New("invalid show")

// ListAllShows returns every show ordered by id.
func (s *Store) ListAllShows(ctx context.Context) ([]models.Show, error) {
	return s.listShows(ctx, models.ShowFilter{})
}

// ListShowsForVenue returns the shows hosted by a venue.
func (s *Store) ListShowsForVenue(ctx context.Context, venueID int64) ([]models.Show, error) {
	return s.listShows(ctx, models.ShowFilter{VenueID: &venueID})
}

// ListShowsForArtist returns the shows played by an artist.
func (s *Store) ListShowsForArtist(ctx context.Context, artistID int64) ([]models.Show, error) {
	return s.listShows(ctx, models.ShowFilter{ArtistID: &artistID})
}

func (s *Store) listShows(ctx context.Context, filter models.ShowFilter) ([]models.Show, error) {
	var (
		where []string
		args  []any
	)
	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		where = append(where, fmt.Sprintf("venue_id = $%d", len(args)))
	}
	if filter.ArtistID != nil {
		args = append(args, *filter.ArtistID)
		where = append(where, fmt.Sprintf("artist_id = $%d", len(args)))
	}

	query := "SELECT id, venue_id, artist_id, start_time FROM shows"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", err)
	}
	defer rows.Close()

	var shows []models.Show
	for rows.Next() {
		var sh models.Show
		if err := rows.Scan(&sh.ID, &sh.VenueID, &sh.ArtistID, &sh.StartTime); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}

	return shows, nil
}

// CreateShow links an existing artist to an existing venue at a start time.
func (s *Store) CreateShow(ctx context.Context, show models.Show) (models.Show, error) {
	if show.VenueID <= 0 || show.ArtistID <= 0 || show.StartTime.IsZero() {
		return models.Show{}, fmt.Errorf("%w: venue_id, artist_id and start_time are required", ErrInvalidShow)
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shows (venue_id, artist_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, show.VenueID, show.ArtistID, show.StartTime).Scan(&show.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Show{}, fmt.Errorf("%w: unknown venue or artist", ErrInvalidShow)
		}
		return models.Show{}, fmt.Errorf("insert show: %w", err)
	}

	return show, nil
}
