// Package board owns the feedback collection and its mutation contract.
//
// The in-memory slice is the authoritative snapshot; every successful
// mutation re-serializes the whole collection to the storage backend. A
// failed write is logged and the in-memory state stands — the persisted
// snapshot catches up on the next successful write.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devyanshh69/feedback-box-backend/internal/models"
	"github.com/devyanshh69/feedback-box-backend/internal/storage"
)

// feedbacksKey holds the full serialized collection, newest first.
const feedbacksKey = "feedbacks"

// FilterAll is the category filter that matches every record.
const FilterAll = "all"

var (
	// ErrEmptyContent rejects submissions whose content is empty or
	// whitespace-only.
	ErrEmptyContent = errors.New("board: content is empty")
	// ErrInvalidStatus rejects statuses outside pending/accepted/denied.
	ErrInvalidStatus = errors.New("board: invalid status")
)

// Store holds the feedback collection over an injected persistence backend.
type Store struct {
	mu        sync.Mutex
	storage   storage.Store
	feedbacks []models.Feedback // newest first
}

// New loads the persisted collection. Corrupt or absent data starts empty.
func New(ctx context.Context, backend storage.Store) (*Store, error) {
	s := &Store{storage: backend}

	raw, err := backend.Get(ctx, feedbacksKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.feedbacks); err != nil {
		log.Printf("persisted feedbacks are corrupt, starting empty: %v", err)
		s.feedbacks = nil
	}
	return s, nil
}

// Submit creates a new pending record and prepends it to the collection.
func (s *Store) Submit(ctx context.Context, author models.User, category, customCategory, content string) (models.Feedback, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Feedback{}, ErrEmptyContent
	}

	// A custom topic only makes sense under the "others" category.
	if category != models.CategoryOthers {
		customCategory = ""
	} else {
		customCategory = strings.TrimSpace(customCategory)
	}

	feedback := models.Feedback{
		ID:             uuid.NewString(),
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorAvatar:   author.Avatar,
		Category:       category,
		CustomCategory: customCategory,
		Content:        content,
		Status:         models.StatusPending,
		Votes:          []string{},
		Comments:       []models.Comment{},
		CreatedAt:      time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.feedbacks = append([]models.Feedback{feedback}, s.feedbacks...)
	s.persist(ctx)
	return feedback, nil
}

// ToggleVote adds userID to the record's vote set, or removes it if already
// present. Unknown feedback IDs are a no-op (ok == false).
func (s *Store) ToggleVote(ctx context.Context, feedbackID, userID string) (models.Feedback, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.lookup(feedbackID)
	if f == nil {
		return models.Feedback{}, false
	}

	removed := false
	for i, v := range f.Votes {
		if v == userID {
			f.Votes = append(f.Votes[:i], f.Votes[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		f.Votes = append(f.Votes, userID)
	}

	s.persist(ctx)
	return copyFeedback(*f), true
}

// AddComment appends a comment to the record. Empty text or an unknown
// feedback ID is a no-op (ok == false).
func (s *Store) AddComment(ctx context.Context, feedbackID string, author models.User, text string) (models.Feedback, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Feedback{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.lookup(feedbackID)
	if f == nil {
		return models.Feedback{}, false
	}

	f.Comments = append(f.Comments, models.Comment{
		ID:         uuid.NewString(),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		CreatedAt:  time.Now(),
	})

	s.persist(ctx)
	return copyFeedback(*f), true
}

// SetStatus overwrites the record's moderation status. Any of the nine
// status-to-status transitions is permitted; moderation is last-write-wins.
func (s *Store) SetStatus(ctx context.Context, feedbackID, status string) (models.Feedback, bool, error) {
	if !models.ValidStatus(status) {
		return models.Feedback{}, false, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.lookup(feedbackID)
	if f == nil {
		return models.Feedback{}, false, nil
	}

	f.Status = status
	s.persist(ctx)
	return copyFeedback(*f), true, nil
}

// All returns the full collection, newest first.
func (s *Store) All() []models.Feedback {
	return s.FilterByCategory(FilterAll)
}

// FilterByCategory returns records whose effective category equals the
// target ("all" returns everything). A record filed under "others" with a
// custom topic is matched by the topic, not by "others".
func (s *Store) FilterByCategory(category string) []models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Feedback, 0, len(s.feedbacks))
	for _, f := range s.feedbacks {
		if category == FilterAll || f.EffectiveCategory() == category {
			out = append(out, copyFeedback(f))
		}
	}
	return out
}

// AggregateByCategory counts records per effective category and status.
func (s *Store) AggregateByCategory() map[string]models.CategorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := make(map[string]models.CategorySummary)
	for _, f := range s.feedbacks {
		bucket := summary[f.EffectiveCategory()]
		switch f.Status {
		case models.StatusAccepted:
			bucket.Accepted++
		case models.StatusDenied:
			bucket.Denied++
		default:
			bucket.Pending++
		}
		bucket.Total++
		summary[f.EffectiveCategory()] = bucket
	}
	return summary
}

// lookup returns the live record for id. Caller holds s.mu.
func (s *Store) lookup(id string) *models.Feedback {
	for i := range s.feedbacks {
		if s.feedbacks[i].ID == id {
			return &s.feedbacks[i]
		}
	}
	return nil
}

// persist re-serializes the whole collection. Best-effort: a failed write
// leaves the prior snapshot on disk and the in-memory copy authoritative.
// Caller holds s.mu.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.feedbacks)
	if err != nil {
		log.Printf("failed to serialize feedbacks: %v", err)
		return
	}
	if err := s.storage.Set(ctx, feedbacksKey, raw); err != nil {
		log.Printf("failed to persist feedbacks: %v", err)
	}
}

func copyFeedback(f models.Feedback) models.Feedback {
	f.Votes = append([]string(nil), f.Votes...)
	f.Comments = append([]models.Comment(nil), f.Comments...)
	return f
}
