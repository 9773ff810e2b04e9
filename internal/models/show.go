package models

import "time"

// Show links an artist to a venue at a point in time
type Show struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowFilter narrows show queries to a single venue or artist
type ShowFilter struct {
	VenueID  *int64
	ArtistID *int64
}
