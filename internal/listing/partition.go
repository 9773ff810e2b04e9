package listing

import (
	"time"

	"fyyur/internal/models"
)

// ArtistShow is a venue's show enriched with the performing artist's display fields.
type ArtistShow struct {
	ShowID           int64     `json:"show_id"`
	ArtistID         int64     `json:"artist_id"`
	ArtistName       string    `json:"artist_name"`
	ArtistImageLink  string    `json:"artist_image_link"`
	StartTime        time.Time `json:"start_time"`
	StartTimeDisplay string    `json:"start_time_display"`
}

// VenueShow is an artist's show enriched with the hosting venue's display fields.
type VenueShow struct {
	ShowID           int64     `json:"show_id"`
	VenueID          int64     `json:"venue_id"`
	VenueName        string    `json:"venue_name"`
	VenueImageLink   string    `json:"venue_image_link"`
	StartTime        time.Time `json:"start_time"`
	StartTimeDisplay string    `json:"start_time_display"`
}

// A show starting exactly at now is neither past nor upcoming.
func isPast(sh models.Show, now time.Time) bool     { return sh.StartTime.Before(now) }
func isUpcoming(sh models.Show, now time.Time) bool { return sh.StartTime.After(now) }

// partitionShows denormalizes every show with build and splits the records
// into past and upcoming relative to now, keeping the input order.
// build runs for every show, so a dangling reference fails the whole
// partition even when the show starts exactly at now.
func partitionShows[T any](shows []models.Show, now time.Time, build func(models.Show) (T, error)) (past, upcoming []T, err error) {
	past, upcoming = []T{}, []T{}
	for _, sh := range shows {
		rec, err := build(sh)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case isPast(sh, now):
			past = append(past, rec)
		case isUpcoming(sh, now):
			upcoming = append(upcoming, rec)
		}
	}
	return past, upcoming, nil
}

// upcomingCounts counts shows starting after now, keyed by owner.
func upcomingCounts(shows []models.Show, now time.Time, owner func(models.Show) int64) map[int64]int {
	counts := make(map[int64]int)
	for _, sh := range shows {
		if isUpcoming(sh, now) {
			counts[owner(sh)]++
		}
	}
	return counts
}

func byVenue(sh models.Show) int64  { return sh.VenueID }
func byArtist(sh models.Show) int64 { return sh.ArtistID }

func artistShowBuilder(artists map[int64]models.Artist, format func(time.Time) string) func(models.Show) (ArtistShow, error) {
	return func(sh models.Show) (ArtistShow, error) {
		a, ok := artists[sh.ArtistID]
		if !ok {
			return ArtistShow{}, &ReferenceIntegrityError{ShowID: sh.ID, Kind: KindArtist, MissingID: sh.ArtistID}
		}
		return ArtistShow{
			ShowID:           sh.ID,
			ArtistID:         a.ID,
			ArtistName:       a.Name,
			ArtistImageLink:  a.ImageLink,
			StartTime:        sh.StartTime,
			StartTimeDisplay: format(sh.StartTime),
		}, nil
	}
}

func venueShowBuilder(venues map[int64]models.Venue, format func(time.Time) string) func(models.Show) (VenueShow, error) {
	return func(sh models.Show) (VenueShow, error) {
		v, ok := venues[sh.VenueID]
		if !ok {
			return VenueShow{}, &ReferenceIntegrityError{ShowID: sh.ID, Kind: KindVenue, MissingID: sh.VenueID}
		}
		return VenueShow{
			ShowID:           sh.ID,
			VenueID:          v.ID,
			VenueName:        v.Name,
			VenueImageLink:   v.ImageLink,
			StartTime:        sh.StartTime,
			StartTimeDisplay: format(sh.StartTime),
		}, nil
	}
}
