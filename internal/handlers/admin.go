package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devyanshh69/feedback-box-backend/internal/board"
	"github.com/devyanshh69/feedback-box-backend/internal/models"
	"github.com/devyanshh69/feedback-box-backend/internal/services"
)

// SetStatusRequest represents the request to set a record's moderation status.
type SetStatusRequest struct {
	FeedbackID string `json:"feedback_id"`
	Status     string `json:"status"`
}

// SummaryResponse represents the per-category analytics response.
type SummaryResponse struct {
	Success bool                              `json:"success"`
	Message string                            `json:"message,omitempty"`
	Summary map[string]models.CategorySummary `json:"summary"`
	Total   int                               `json:"total"`
}

// requireAdmin loads the current session and rejects non-admin callers.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := sessions.Current(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, FeedbackResponse{
			Success: false,
			Message: "Not signed in",
		})
		return false
	}
	if !user.IsAdmin() {
		writeJSON(w, http.StatusForbidden, FeedbackResponse{
			Success: false,
			Message: "Admin access required",
		})
		return false
	}
	return true
}

// SetFeedbackStatus overwrites a record's moderation status (admin only).
// Any transition between pending, accepted and denied is permitted.
func SetFeedbackStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FeedbackID == "" {
		writeJSON(w, http.StatusBadRequest, FeedbackResponse{
			Success: false,
			Message: "feedback_id is required",
		})
		return
	}

	feedback, found, err := boardStore.SetStatus(r.Context(), req.FeedbackID, req.Status)
	if err != nil {
		if errors.Is(err, board.ErrInvalidStatus) {
			writeJSON(w, http.StatusBadRequest, FeedbackResponse{
				Success: false,
				Message: "Status must be pending, accepted or denied",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, FeedbackResponse{
			Success: false,
			Message: "Failed to update status",
		})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, FeedbackResponse{
			Success: false,
			Message: "Feedback not found",
		})
		return
	}

	services.PublishBoardEvent(services.EventFeedbackStatus, feedback)

	writeJSON(w, http.StatusOK, FeedbackResponse{
		Success:  true,
		Message:  "Status updated successfully",
		Feedback: &feedback,
	})
}

// GetSummary returns per-category counts by moderation status (admin only).
func GetSummary(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	summary := boardStore.AggregateByCategory()

	total := 0
	for _, bucket := range summary {
		total += bucket.Total
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		Success: true,
		Summary: summary,
		Total:   total,
	})
}
