package services

import (
	"sync"
	"time"

	"github.com/devyanshh69/feedback-box-backend/internal/models"
)

// Board event types.
const (
	EventFeedbackCreated   = "feedback.created"
	EventFeedbackVoted     = "feedback.voted"
	EventFeedbackCommented = "feedback.commented"
	EventFeedbackStatus    = "feedback.status"
)

// BoardEvent is the payload broadcast to connected board clients whenever
// a mutation succeeds.
type BoardEvent struct {
	Type      string          `json:"type"`
	Feedback  models.Feedback `json:"feedback"`
	Timestamp time.Time       `json:"timestamp"`
}

// BoardHub fans out board events to subscribed connections.
type BoardHub struct {
	mu          sync.RWMutex
	subscribers map[int]chan BoardEvent
	nextID      int
}

var boardHub = &BoardHub{subscribers: make(map[int]chan BoardEvent)}

// SubscribeBoardEvents registers a subscriber and returns its event channel
// plus an unsubscribe function. The channel is buffered; events for slow
// consumers are dropped rather than blocking the publisher.
func SubscribeBoardEvents() (<-chan BoardEvent, func()) {
	ch := make(chan BoardEvent, 16)

	boardHub.mu.Lock()
	id := boardHub.nextID
	boardHub.nextID++
	boardHub.subscribers[id] = ch
	boardHub.mu.Unlock()

	unsubscribe := func() {
		boardHub.mu.Lock()
		if sub, ok := boardHub.subscribers[id]; ok {
			delete(boardHub.subscribers, id)
			close(sub)
		}
		boardHub.mu.Unlock()
	}
	return ch, unsubscribe
}

// PublishBoardEvent sends an event to every subscriber, best effort.
func PublishBoardEvent(eventType string, feedback models.Feedback) {
	event := BoardEvent{
		Type:      eventType,
		Feedback:  feedback,
		Timestamp: time.Now().UTC(),
	}

	boardHub.mu.RLock()
	defer boardHub.mu.RUnlock()

	for _, ch := range boardHub.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; drop the event.
		}
	}
}
