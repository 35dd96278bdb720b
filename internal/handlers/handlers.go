package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/devyanshh69/feedback-box-backend/internal/auth"
	"github.com/devyanshh69/feedback-box-backend/internal/board"
)

// Package-level dependencies, wired once from main.
var (
	boardStore *board.Store
	sessions   *auth.Sessions
)

// Init wires the handler dependencies.
func Init(store *board.Store, sess *auth.Sessions) {
	boardStore = store
	sessions = sess
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
