package httpapi

import (
	"net/http"

	"fyyur/internal/listing"
	"fyyur/internal/models"
)

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := s.listing.ListVenuesByLocation(r.Context(), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Areas []listing.LocationGroup `json:"areas"`
	}{Areas: groups})
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	term := searchTerm(r)
	result, err := s.listing.SearchVenues(r.Context(), term, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{SearchTerm: term, SearchResult: result})
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	detail, err := s.listing.GetVenueDetail(r.Context(), id, s.now(), displayStyle(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	var venue models.Venue
	if err := decodeJSON(r, &venue); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.venues.Create(r.Context(), venue)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	var venue models.Venue
	if err := decodeJSON(r, &venue); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	updated, err := s.venues.Update(r.Context(), id, venue)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	if err := s.venues.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type searchResponse struct {
	SearchTerm string `json:"search_term"`
	listing.SearchResult
}
