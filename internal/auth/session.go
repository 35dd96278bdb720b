// Package auth holds the login flows and the session slot.
//
// There is one active session at a time, persisted under the currentUser
// key: written at login, deleted at logout. Students are gated only by
// providing a non-empty email and password — the password is checked
// against nothing, it merely gates the flow. The admin pair goes through
// a Verifier.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/devyanshh69/feedback-box-backend/internal/identity"
	"github.com/devyanshh69/feedback-box-backend/internal/models"
	"github.com/devyanshh69/feedback-box-backend/internal/storage"
)

// currentUserKey holds the active session's user record.
const currentUserKey = "currentUser"

var (
	// ErrMissingFields is returned when required login fields are empty.
	ErrMissingFields = errors.New("auth: missing required fields")
	// ErrBadCredentials is returned when the admin pair does not verify.
	ErrBadCredentials = errors.New("auth: invalid username or password")
)

// Sessions manages the single login slot.
type Sessions struct {
	store     storage.Store
	allocator *identity.Allocator
	verifier  Verifier
}

func NewSessions(store storage.Store, allocator *identity.Allocator, verifier Verifier) *Sessions {
	return &Sessions{store: store, allocator: allocator, verifier: verifier}
}

// LoginStudent assigns the email's pseudonym and opens a student session.
func (s *Sessions) LoginStudent(ctx context.Context, email, password, avatar string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	pseudonym, err := s.allocator.Assign(ctx, email)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:     models.StudentID(email),
		Role:   models.RoleStudent,
		Name:   pseudonym,
		Email:  email,
		Avatar: avatar,
	}
	if err := s.save(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// LoginAdmin verifies the pair and opens an admin session.
func (s *Sessions) LoginAdmin(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	if !s.verifier.Verify(username, password) {
		return models.User{}, ErrBadCredentials
	}

	user := models.User{
		ID:       models.AdminUserID,
		Role:     models.RoleAdmin,
		Name:     username,
		Username: username,
	}
	if err := s.save(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Current returns the active session's user, if any.
func (s *Sessions) Current(ctx context.Context) (models.User, bool) {
	raw, err := s.store.Get(ctx, currentUserKey)
	if err != nil {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return models.User{}, false
	}
	return user, true
}

// Logout closes the active session.
func (s *Sessions) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, currentUserKey)
}

func (s *Sessions) save(ctx context.Context, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, currentUserKey, raw)
}
