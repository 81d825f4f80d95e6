package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
)

// Default CORS lists used when the config leaves them empty.
var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	defaultCORSHeaders = []string{"Content-Type", "X-Request-ID"}
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// Legacy device endpoints, kept outside /api for existing firmware
	r.Post("/sensors/bulk-update", s.handleBulkUpdate)
	r.Get("/sensors/{room}/temperature", s.handleTemperature)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sensors", s.handleListSensors)
		r.Get("/sensors/{room}", s.handleRoomSensors)

		r.Get("/sensor-data/{room}/{sensor_type}", s.handleGetSensorData)
		r.Post("/sensor-data/{room}/{sensor_type}", s.handlePostSensorData)
		r.Get("/sensor-history/{room}/{sensor_type}", s.handleSensorHistory)

		r.Get("/notifications", s.handleListNotifications)
		r.Delete("/notifications/{id}", s.handleDeleteNotification)

		r.Get("/command/{room}/{command_type}", s.handleGetCommand)
		r.Post("/command/{room}/{command_type}", s.handleSendCommand)

		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Post("/face-recognition", s.handleFaceRecognition)
	})

	return handlers.CORS(s.corsOptions()...)(r)
}

// corsOptions translates the CORS config. An empty origin list allows
// every origin.
func (s *Server) corsOptions() []handlers.CORSOption {
	methods := s.cfg.CORS.AllowedMethods
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}
	headers := s.cfg.CORS.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}

	opts := []handlers.CORSOption{
		handlers.AllowedMethods(methods),
		handlers.AllowedHeaders(headers),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
		handlers.MaxAge(86400),
	}
	if len(s.cfg.CORS.AllowedOrigins) > 0 {
		opts = append(opts, handlers.AllowedOrigins(s.cfg.CORS.AllowedOrigins))
	}
	return opts
}
