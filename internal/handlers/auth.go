package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devyanshh69/feedback-box-backend/internal/auth"
	"github.com/devyanshh69/feedback-box-backend/internal/models"
)

// StudentSigninRequest represents the student login form.
type StudentSigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

// AdminSigninRequest represents the admin login form.
type AdminSigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response for auth endpoints.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// StudentSignin assigns the email's pseudonym and opens a student session.
// The password gates the flow only; it is not checked against anything.
func StudentSignin(w http.ResponseWriter, r *http.Request) {
	var req StudentSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := sessions.LoginStudent(r.Context(), req.Email, req.Password, req.Avatar)
	if err != nil {
		if errors.Is(err, auth.ErrMissingFields) {
			writeJSON(w, http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Email and password are required",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, AuthResponse{
			Success: false,
			Message: "Failed to sign in",
		})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		User:    &user,
	})
}

// AdminSignin verifies the admin pair and opens an admin session.
func AdminSignin(w http.ResponseWriter, r *http.Request) {
	var req AdminSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := sessions.LoginAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Username and password are required",
			})
		case errors.Is(err, auth.ErrBadCredentials):
			writeJSON(w, http.StatusUnauthorized, AuthResponse{
				Success: false,
				Message: "Invalid username or password",
			})
		default:
			writeJSON(w, http.StatusInternalServerError, AuthResponse{
				Success: false,
				Message: "Failed to sign in",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Admin signed in successfully",
		User:    &user,
	})
}

// Signout closes the active session.
func Signout(w http.ResponseWriter, r *http.Request) {
	if err := sessions.Logout(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{
			Success: false,
			Message: "Failed to sign out",
		})
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed out successfully",
	})
}

// GetMe returns the active session's user.
func GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := sessions.Current(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{
			Success: false,
			Message: "Not signed in",
		})
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		User:    &user,
	})
}
