package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-queue/internal/domain"
	"github.com/spec-kit/support-queue/internal/events"
)

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, actor domain.ActorType, eventType events.EventType, issueID string, payload any) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		IssueID:   issueID,
		Actor:     events.Actor{Type: actor},
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
