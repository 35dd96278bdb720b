package models

import "time"

// Moderation statuses. Status is a last-write-wins field, not a state
// machine: an admin may move a record between any pair of statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDenied   = "denied"
)

// CategoryOthers is the submission category that carries a free-form
// custom topic alongside it.
const CategoryOthers = "others"

// ValidStatus reports whether s is one of the three moderation statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDenied
}

type Feedback struct {
	ID           string `json:"id"`
	AuthorID     string `json:"author_id"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar,omitempty"`

	Category       string `json:"category"`
	CustomCategory string `json:"custom_category,omitempty"`
	Content        string `json:"content"`

	Status string `json:"status"`

	// Votes holds each voter's user ID at most once.
	Votes    []string  `json:"votes"`
	Comments []Comment `json:"comments"`

	CreatedAt time.Time `json:"created_at"`
}

// EffectiveCategory is the bucket a record belongs to for filtering and
// analytics: the custom topic when one is set, the base category otherwise.
func (f *Feedback) EffectiveCategory() string {
	if f.CustomCategory != "" {
		return f.CustomCategory
	}
	return f.Category
}

// HasVote reports whether userID has upvoted this record.
func (f *Feedback) HasVote(userID string) bool {
	for _, v := range f.Votes {
		if v == userID {
			return true
		}
	}
	return false
}

type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategorySummary holds per-status counts for one effective category.
type CategorySummary struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Denied   int `json:"denied"`
	Total    int `json:"total"`
}
