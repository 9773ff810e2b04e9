package main

import (
	"net/http"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/config"
	"fyyur/internal/http/middleware"
	"fyyur/internal/httpapi"
	"fyyur/internal/listing"
	"fyyur/internal/logging"
	"fyyur/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, logger *logging.Logger) http.Handler {
	// Read side
	listingSvc := listing.New(dataStore,
		listing.WithFormatter(listing.LayoutFormatter{Location: cfg.Location}),
		listing.WithLogger(logger),
	)

	// Write side
	venueSvc := venues.New(dataStore)
	artistSvc := artists.New(dataStore)
	showSvc := shows.New(dataStore, dataStore, dataStore)

	api := httpapi.New(listingSvc, venueSvc, artistSvc, showSvc, httpapi.WithLogger(logger))

	return withMiddleware(api.Routes(), cfg.CORS.AllowedOrigins, logger)
}

// withMiddleware keeps RequestLogging outermost so recovered panics are logged with their 500.
func withMiddleware(h http.Handler, allowedOrigins []string, logger *logging.Logger) http.Handler {
	return middleware.Chain(h,
		middleware.RequestLogging(logger),
		middleware.Recovery(logger),
		middleware.CORS(allowedOrigins),
	)
}
