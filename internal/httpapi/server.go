package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fyyur/internal/listing"
	"fyyur/internal/logging"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

// ListingService builds the read models behind the venue, artist and show pages.
type ListingService interface {
	ListVenuesByLocation(ctx context.Context, now time.Time) ([]listing.LocationGroup, error)
	ListArtists(ctx context.Context) ([]listing.ArtistSummary, error)
	GetVenueDetail(ctx context.Context, id int64, now time.Time, style listing.Style) (listing.VenueDetail, error)
	GetArtistDetail(ctx context.Context, id int64, now time.Time, style listing.Style) (listing.ArtistDetail, error)
	SearchVenues(ctx context.Context, term string, now time.Time) (listing.SearchResult, error)
	SearchArtists(ctx context.Context, term string, now time.Time) (listing.SearchResult, error)
	ListShows(ctx context.Context, now time.Time, style listing.Style) ([]listing.ShowRow, error)
}

// VenueService describes venue write workflows.
type VenueService interface {
	Create(ctx context.Context, venue models.Venue) (models.Venue, error)
	Update(ctx context.Context, id int64, venue models.Venue) (models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService describes artist write workflows.
type ArtistService interface {
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

// ShowService describes show write workflows.
type ShowService interface {
	Create(ctx context.Context, show models.Show) (models.Show, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	listing ListingService
	venues  VenueService
	artists ArtistService
	shows   ShowService

	now    func() time.Time
	logger *logging.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithClock sets the clock used as the reference time for past/upcoming splits.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the logger used for failed requests.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New configures a Server with the given services.
func New(listingSvc ListingService, venues VenueService, artists ArtistService, shows ShowService, opts ...Option) *Server {
	s := &Server{
		listing: listingSvc,
		venues:  venues,
		artists: artists,
		shows:   shows,
		now:     time.Now,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes exposes the HTTP handlers for venues, artists and shows.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Venue routes
	mux.HandleFunc("GET /api/v1/venues", s.handleListVenues)
	mux.HandleFunc("POST /api/v1/venues", s.handleCreateVenue)
	mux.HandleFunc("GET /api/v1/venues/search", s.handleSearchVenues)
	mux.HandleFunc("POST /api/v1/venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /api/v1/venues/{id}", s.handleGetVenue)
	mux.HandleFunc("PUT /api/v1/venues/{id}", s.handleUpdateVenue)
	mux.HandleFunc("DELETE /api/v1/venues/{id}", s.handleDeleteVenue)

	// Artist routes
	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("POST /api/v1/artists", s.handleCreateArtist)
	mux.HandleFunc("GET /api/v1/artists/search", s.handleSearchArtists)
	mux.HandleFunc("POST /api/v1/artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("PUT /api/v1/artists/{id}", s.handleUpdateArtist)
	mux.HandleFunc("DELETE /api/v1/artists/{id}", s.handleDeleteArtist)

	// Show routes
	mux.HandleFunc("GET /api/v1/shows", s.handleListShows)
	mux.HandleFunc("POST /api/v1/shows", s.handleCreateShow)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service and store errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		integrityErr   *listing.ReferenceIntegrityError
		unavailableErr *listing.StoreUnavailableError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, listing.ErrNotFound),
		errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrArtistNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidVenue),
		errors.Is(err, store.ErrInvalidArtist),
		errors.Is(err, store.ErrInvalidShow):
		status = http.StatusBadRequest
	case errors.As(err, &integrityErr):
		status = http.StatusInternalServerError
	case errors.As(err, &unavailableErr):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithContext(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("request failed")
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// pathID parses the {id} wildcard of the current route.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// displayStyle reads the ?format= query parameter.
func displayStyle(r *http.Request) listing.Style {
	return listing.ParseStyle(r.URL.Query().Get("format"))
}

// searchTerm reads search_term from the query string, falling back to a form
// body on POST. q is accepted as a short alias.
func searchTerm(r *http.Request) string {
	query := r.URL.Query()
	if term := query.Get("search_term"); term != "" {
		return term
	}
	if term := query.Get("q"); term != "" {
		return term
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			return r.PostForm.Get("search_term")
		}
	}
	return ""
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
