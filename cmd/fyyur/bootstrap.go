package main

import (
	"context"
	"fmt"
	"time"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

// bootstrapDemoData seeds the sample venues, artists and shows into an empty database.
func bootstrapDemoData(ctx context.Context, dataStore *store.Store) error {
	existing, err := dataStore.ListAllVenues(ctx)
	if err != nil {
		return fmt.Errorf("check existing venues: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	venueSeeds := []models.Venue{
		{
			Name:               "The Musical Hop",
			Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			Address:            "1015 Folsom Street",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "123-123-1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400",
		},
		{
			Name:         "The Dueling Pianos Bar",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			Address:      "335 Delancey Street",
			City:         "New York",
			State:        "NY",
			Phone:        "914-003-1132",
			Website:      "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=750",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Address:      "34 Whiskey Moore Ave",
			City:         "San Francisco",
			State:        "CA",
			Phone:        "415-000-1234",
			Website:      "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=747",
		},
	}

	artistSeeds := []models.Artist{
		{
			Name:               "Guns N Petals",
			Genres:             []string{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Website:            "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300",
		},
		{
			Name:         "Matt Quevedo",
			Genres:       []string{"Jazz"},
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
			ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334",
		},
		{
			Name:      "The Wild Sax Band",
			Genres:    []string{"Jazz", "Classical"},
			City:      "San Francisco",
			State:     "CA",
			Phone:     "432-325-5432",
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794",
		},
	}

	venueIDs := make([]int64, 0, len(venueSeeds))
	for _, v := range venueSeeds {
		created, err := dataStore.CreateVenue(ctx, v)
		if err != nil {
			return fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
		venueIDs = append(venueIDs, created.ID)
	}

	artistIDs := make([]int64, 0, len(artistSeeds))
	for _, a := range artistSeeds {
		created, err := dataStore.CreateArtist(ctx, a)
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
		artistIDs = append(artistIDs, created.ID)
	}

	at := func(year int, month time.Month, day, hour int) time.Time {
		return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	}

	showSeeds := []struct {
		venue, artist int
		start         time.Time
	}{
		{venue: 0, artist: 0, start: at(2019, time.May, 21, 21)},
		{venue: 2, artist: 1, start: at(2019, time.June, 15, 23)},
		{venue: 2, artist: 2, start: at(2035, time.April, 1, 20)},
		{venue: 2, artist: 2, start: at(2035, time.April, 8, 20)},
		{venue: 2, artist: 2, start: at(2035, time.April, 15, 20)},
	}

	for _, sh := range showSeeds {
		if _, err := dataStore.CreateShow(ctx, models.Show{
			VenueID:   venueIDs[sh.venue],
			ArtistID:  artistIDs[sh.artist],
			StartTime: sh.start,
		}); err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
	}

	return nil
}
