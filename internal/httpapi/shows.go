package httpapi

import (
	"net/http"
	"time"

	"fyyur/internal/listing"
	"fyyur/internal/models"
)

type showRequest struct {
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.listing.ListShows(r.Context(), s.now(), displayStyle(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Shows []listing.ShowRow `json:"shows"`
	}{Shows: rows})
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.shows.Create(r.Context(), models.Show{
		VenueID:   req.VenueID,
		ArtistID:  req.ArtistID,
		StartTime: req.StartTime,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
