package api

import (
	"encoding/json"
	"net/http"

	"github.com/krezhov/santabot/internal/db"
)

// Protected handlers
func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.store.Stats(r.Context())
	if err != nil {
		http.Error(w, "failed to get stats", http.StatusInternalServerError)
		return
	}

	settings, err := a.store.Settings(r.Context())
	if err != nil {
		http.Error(w, "failed to get settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"stats":    stats,
		"settings": settings,
	})
}

func (a *API) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := a.store.ListParticipants(r.Context())
	if err != nil {
		http.Error(w, "failed to list participants", http.StatusInternalServerError)
		return
	}
	if participants == nil {
		participants = []db.Participant{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(participants)
}
