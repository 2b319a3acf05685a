// Package api serves a small read-only JSON dashboard for organizers who
// prefer a browser over chat commands. All event mutations stay on the chat
// command surface; only read paths run concurrently with the bot loop.
package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/krezhov/santabot/internal/config"
	"github.com/krezhov/santabot/internal/db"
	"github.com/rs/cors"
)

// Store is the read-only slice of the record store the dashboard exposes.
type Store interface {
	Stats(ctx context.Context) (db.EventStats, error)
	ListParticipants(ctx context.Context) ([]db.Participant, error)
	Settings(ctx context.Context) (db.Settings, error)
}

type API struct {
	router     *mux.Router
	store      Store
	config     *config.Config
	jwtSecret  []byte
	adminToken string
}

func New(cfg *config.Config, store Store) *API {
	api := &API{
		router:     mux.NewRouter(),
		store:      store,
		config:     cfg,
		jwtSecret:  []byte(cfg.JWTSecret),
		adminToken: cfg.AdminAPIToken,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	// Auth endpoints
	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods("POST")

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/stats", a.handleStats).Methods("GET")
	protected.HandleFunc("/participants", a.handleListParticipants).Methods("GET")
}

func (a *API) Start() error {
	// Read-only API with bearer auth, so a wildcard origin is fine
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}

	handler := cors.New(corsOptions).Handler(a.router)

	log.Printf("API server listening on http://%s", a.config.WebBind)
	return http.ListenAndServe(a.config.WebBind, handler)
}
