package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"fyyur/internal/models"
)

var (
	// ErrArtistNotFound signals a missing artist record.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrInvalidArtist indicates validation failure for artist data.
	ErrInvalidArtist = errors.New("invalid artist")
)

const artistColumns = `
		id, name, city, state, phone, genres,
		COALESCE(website, ''), COALESCE(facebook_link, ''), COALESCE(image_link, ''),
		seeking_venue, COALESCE(seeking_description, '')`

// ListAllArtists returns every artist ordered by id.
func (s *Store) ListAllArtists(ctx context.Context) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+artistColumns+`
		FROM artists
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}

	return artists, nil
}

// FindArtistByID retrieves a single artist.
func (s *Store) FindArtistByID(ctx context.Context, id int64) (models.Artist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT`+artistColumns+`
		FROM artists
		WHERE id = $1
	`, id)

	a, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return models.Artist{}, err
	}
	return a, nil
}

// CreateArtist inserts a new artist and returns it with its assigned id.
func (s *Store) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	artist = normalizeArtist(artist)
	if err := validateArtist(artist); err != nil {
		return models.Artist{}, err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, city, state, phone, genres, website,
		                     facebook_link, image_link, seeking_venue, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, artist.Name, artist.City, artist.State, artist.Phone, pq.Array(artist.Genres),
		nullString(artist.Website), nullString(artist.FacebookLink), nullString(artist.ImageLink),
		artist.SeekingVenue, nullString(artist.SeekingDescription),
	).Scan(&artist.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Artist{}, fmt.Errorf("%w: duplicate artist", ErrInvalidArtist)
		}
		return models.Artist{}, fmt.Errorf("insert artist: %w", err)
	}

	return artist, nil
}

// UpdateArtist replaces every editable field of an existing artist.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist models.Artist) (models.Artist, error) {
	artist = normalizeArtist(artist)
	if err := validateArtist(artist); err != nil {
		return models.Artist{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE artists
		SET name = $1, city = $2, state = $3, phone = $4, genres = $5,
		    website = $6, facebook_link = $7, image_link = $8,
		    seeking_venue = $9, seeking_description = $10
		WHERE id = $11
	`, artist.Name, artist.City, artist.State, artist.Phone, pq.Array(artist.Genres),
		nullString(artist.Website), nullString(artist.FacebookLink), nullString(artist.ImageLink),
		artist.SeekingVenue, nullString(artist.SeekingDescription), id,
	)
	if err != nil {
		return models.Artist{}, fmt.Errorf("update artist: %w", err)
	}
	if err := requireAffected(result, ErrArtistNotFound); err != nil {
		return models.Artist{}, err
	}

	artist.ID = id
	return artist, nil
}

// DeleteArtist removes an artist together with its shows.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	return requireAffected(result, ErrArtistNotFound)
}

func scanArtist(row rowScanner) (models.Artist, error) {
	var a models.Artist
	err := row.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, pq.Array(&a.Genres),
		&a.Website, &a.FacebookLink, &a.ImageLink, &a.SeekingVenue, &a.SeekingDescription,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artist{}, err
		}
		return models.Artist{}, fmt.Errorf("scan artist: %w", err)
	}
	if a.Genres == nil {
		a.Genres = []string{}
	}
	return a, nil
}

func normalizeArtist(a models.Artist) models.Artist {
	a.Name = strings.TrimSpace(a.Name)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Genres = normalizeGenres(a.Genres)
	return a
}

func validateArtist(a models.Artist) error {
	var missing []string
	if a.Name == "" {
		missing = append(missing, "name")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalidArtist, strings.Join(missing, ", "))
	}
	return nil
}
