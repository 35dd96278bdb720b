package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/devyanshh69/feedback-box-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/student/signin", handlers.StudentSignin)
	r.Post("/api/auth/admin/signin", handlers.AdminSignin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Feedback routes
	r.Post("/api/feedback", handlers.SubmitFeedback)
	r.Get("/api/feedback", handlers.GetFeedbacks)
	r.Post("/api/feedback/vote", handlers.ToggleVote)
	r.Post("/api/feedback/comment", handlers.AddComment)

	// Admin routes
	r.Put("/api/admin/feedback/status", handlers.SetFeedbackStatus)
	r.Get("/api/admin/summary", handlers.GetSummary)

	// WebSocket endpoint for live board updates
	r.Get("/ws/board", handlers.BoardWebSocket)
}
