package services

import (
	"testing"
	"time"

	isLib "github.com/matryer/is"

	"github.com/devyanshh69/feedback-box-backend/internal/models"
)

func TestPublishReachesSubscribers(t *testing.T) {
	is := isLib.New(t)

	events, unsubscribe := SubscribeBoardEvents()
	defer unsubscribe()

	PublishBoardEvent(EventFeedbackCreated, models.Feedback{ID: "f1"})

	select {
	case evt := <-events:
		is.Equal(evt.Type, EventFeedbackCreated)
		is.Equal(evt.Feedback.ID, "f1")
		is.True(!evt.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	is := isLib.New(t)

	events, unsubscribe := SubscribeBoardEvents()
	unsubscribe()

	_, open := <-events
	is.True(!open)

	// Publishing after unsubscribe must not panic.
	PublishBoardEvent(EventFeedbackVoted, models.Feedback{ID: "f2"})
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	is := isLib.New(t)

	events, unsubscribe := SubscribeBoardEvents()
	defer unsubscribe()

	// Overfill the buffer; the publisher must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			PublishBoardEvent(EventFeedbackCommented, models.Feedback{ID: "f3"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	received := 0
	for {
		select {
		case <-events:
			received++
			continue
		default:
		}
		break
	}
	is.True(received > 0)
	is.True(received <= 16) // buffer size bounds delivery
}
