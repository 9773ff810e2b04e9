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
	// ErrVenueNotFound signals a missing venue record.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrInvalidVenue indicates validation failure for venue data.
	ErrInvalidVenue = errors.New("invalid venue")
)

const venueColumns = `
		id, name, city, state, address, phone, genres,
		COALESCE(website, ''), COALESCE(facebook_link, ''), COALESCE(image_link, ''),
		seeking_talent, COALESCE(seeking_description, '')`

// ListAllVenues returns every venue ordered by id.
func (s *Store) ListAllVenues(ctx context.Context) ([]models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+venueColumns+`
		FROM venues
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}

	return venues, nil
}

// FindVenueByID retrieves a single venue.
func (s *Store) FindVenueByID(ctx context.Context, id int64) (models.Venue, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT`+venueColumns+`
		FROM venues
		WHERE id = $1
	`, id)

	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return models.Venue{}, err
	}
	return v, nil
}

// CreateVenue inserts a new venue and returns it with its assigned id.
func (s *Store) CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error) {
	venue = normalizeVenue(venue)
	if err := validateVenue(venue); err != nil {
		return models.Venue{}, err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO venues (name, city, state, address, phone, genres, website,
		                    facebook_link, image_link, seeking_talent, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone, pq.Array(venue.Genres),
		nullString(venue.Website), nullString(venue.FacebookLink), nullString(venue.ImageLink),
		venue.SeekingTalent, nullString(venue.SeekingDescription),
	).Scan(&venue.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Venue{}, fmt.Errorf("%w: duplicate venue", ErrInvalidVenue)
		}
		return models.Venue{}, fmt.Errorf("insert venue: %w", err)
	}

	return venue, nil
}

// UpdateVenue replaces every editable field of an existing venue.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue models.Venue) (models.Venue, error) {
	venue = normalizeVenue(venue)
	if err := validateVenue(venue); err != nil {
		return models.Venue{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE venues
		SET name = $1, city = $2, state = $3, address = $4, phone = $5, genres = $6,
		    website = $7, facebook_link = $8, image_link = $9,
		    seeking_talent = $10, seeking_description = $11
		WHERE id = $12
	`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone, pq.Array(venue.Genres),
		nullString(venue.Website), nullString(venue.FacebookLink), nullString(venue.ImageLink),
		venue.SeekingTalent, nullString(venue.SeekingDescription), id,
	)
	if err != nil {
		return models.Venue{}, fmt.Errorf("update venue: %w", err)
	}
	if err := requireAffected(result, ErrVenueNotFound); err != nil {
		return models.Venue{}, err
	}

	venue.ID = id
	return venue, nil
}

// DeleteVenue removes a venue together with its shows.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return requireAffected(result, ErrVenueNotFound)
}

func scanVenue(row rowScanner) (models.Venue, error) {
	var v models.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, pq.Array(&v.Genres),
		&v.Website, &v.FacebookLink, &v.ImageLink, &v.SeekingTalent, &v.SeekingDescription,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Venue{}, err
		}
		return models.Venue{}, fmt.Errorf("scan venue: %w", err)
	}
	if v.Genres == nil {
		v.Genres = []string{}
	}
	return v, nil
}

func normalizeVenue(v models.Venue) models.Venue {
	v.Name = strings.TrimSpace(v.Name)
	v.City = strings.TrimSpace(v.City)
	v.State = strings.TrimSpace(v.State)
	v.Address = strings.TrimSpace(v.Address)
	v.Phone = strings.TrimSpace(v.Phone)
	v.Genres = normalizeGenres(v.Genres)
	return v
}

func validateVenue(v models.Venue) error {
	var missing []string
	if v.Name == "" {
		missing = append(missing, "name")
	}
	if v.City == "" {
		missing = append(missing, "city")
	}
	if v.State == "" {
		missing = append(missing, "state")
	}
	if v.Address == "" {
		missing = append(missing, "address")
	}
	if v.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalidVenue, strings.Join(missing, ", "))
	}
	return nil
}

func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
