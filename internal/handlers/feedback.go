package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/devyanshh69/feedback-box-backend/internal/board"
	"github.com/devyanshh69/feedback-box-backend/internal/models"
	"github.com/devyanshh69/feedback-box-backend/internal/services"
)

// SubmitFeedbackRequest represents the request to submit feedback.
type SubmitFeedbackRequest struct {
	Category       string `json:"category"`
	CustomCategory string `json:"custom_category,omitempty"`
	Content        string `json:"content"`
}

// ToggleVoteRequest represents the request to toggle an upvote.
type ToggleVoteRequest struct {
	FeedbackID string `json:"feedback_id"`
}

// AddCommentRequest represents the request to comment on feedback.
type AddCommentRequest struct {
	FeedbackID string `json:"feedback_id"`
	Text       string `json:"text"`
}

// FeedbackResponse represents the response for single-record operations.
type FeedbackResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Feedback *models.Feedback `json:"feedback,omitempty"`
}

// GetFeedbacksResponse represents the response for listing feedback.
type GetFeedbacksResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Feedbacks []models.Feedback `json:"feedbacks"`
	Total     int               `json:"total"`
}

// SubmitFeedback handles a student submitting new feedback.
func SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	user, ok := sessions.Current(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, FeedbackResponse{
			Success: false,
			Message: "Not signed in",
		})
		return
	}
	if user.IsAdmin() {
		writeJSON(w, http.StatusForbidden, FeedbackResponse{
			Success: false,
			Message: "Only students can submit feedback",
		})
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, FeedbackResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, FeedbackResponse{
			Success: false,
			Message: "Category is required",
		})
		return
	}

	feedback, err := boardStore.Submit(r.Context(), user, req.Category, req.CustomCategory, req.Content)
	if err != nil {
		if errors.Is(err, board.ErrEmptyContent) {
			writeJSON(w, http.StatusBadRequest, FeedbackResponse{
				Success: false,
				Message: "Feedback content is required",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, FeedbackResponse{
			Success: false,
			Message: "Failed to submit feedback",
		})
		return
	}

	services.PublishBoardEvent(services.EventFeedbackCreated, feedback)

	writeJSON(w, http.StatusCreated, FeedbackResponse{
		Success:  true,
		Message:  "Feedback submitted successfully",
		Feedback: &feedback,
	})
}

// GetFeedbacks lists feedback, newest first, optionally filtered by the
// category query parameter ("all" or absent returns everything).
func GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessions.Current(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, GetFeedbacksResponse{
			Success:   false,
			Message:   "Not signed in",
			Feedbacks: []models.Feedback{},
		})
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = board.FilterAll
	}

	feedbacks := boardStore.FilterByCategory(category)

	writeJSON(w, http.StatusOK, GetFeedbacksResponse{
		Success:   true,
		Feedbacks: feedbacks,
		Total:     len(feedbacks),
	})
}

// ToggleVote adds or removes the current user's upvote on a record.
func ToggleVote(w http.ResponseWriter, r *http.Request) {
	user, ok := sessions.Current(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, FeedbackResponse{
			Success: false,
			Message: "Not signed in",
		})
		return
	}

	var req ToggleVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FeedbackID == "" {
		writeJSON(w, http.StatusBadRequest, FeedbackResponse{
			Success: false,
			Message: "feedback_id is required",
		})
		return
	}

	feedback, found := boardStore.ToggleVote(r.Context(), req.FeedbackID, user.ID)
	if !found {
		writeJSON(w, http.StatusNotFound, FeedbackResponse{
			Success: false,
			Message: "Feedback not found",
		})
		return
	}

	services.PublishBoardEvent(services.EventFeedbackVoted, feedback)

	writeJSON(w, http.StatusOK, FeedbackResponse{
		Success:  true,
		Feedback: &feedback,
	})
}

// AddComment appends the current user's comment to a record.
func AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := sessions.Current(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, FeedbackResponse{
			Success: false,
			Message: "Not signed in",
		})
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FeedbackID == "" {
		writeJSON(w, http.StatusBadRequest, FeedbackResponse{
			Success: false,
			Message: "feedback_id is required",
		})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, FeedbackResponse{
			Success: false,
			Message: "Comment text is required",
		})
		return
	}

	feedback, found := boardStore.AddComment(r.Context(), req.FeedbackID, user, req.Text)
	if !found {
		writeJSON(w, http.StatusNotFound, FeedbackResponse{
			Success: false,
			Message: "Feedback not found",
		})
		return
	}

	services.PublishBoardEvent(services.EventFeedbackCommented, feedback)

	writeJSON(w, http.StatusCreated, FeedbackResponse{
		Success:  true,
		Message:  "Comment added successfully",
		Feedback: &feedback,
	})
}
