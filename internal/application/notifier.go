package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
)

type UserEventType string

const (
	UserCreated UserEventType = "user.created"
	UserUpdated UserEventType = "user.updated"
	UserDeleted UserEventType = "user.deleted"
)

// UserEvent describes a committed user change. User is nil for deletions.
type UserEvent struct {
	Type       UserEventType `json:"type"`
	UserID     uuid.UUID     `json:"userId"`
	User       *UserDetail   `json:"user,omitempty"`
	Actor      string        `json:"actor"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// UserNotifier receives user events after the change is stored (search index, message bus).
type UserNotifier interface {
	NotifyUser(ctx context.Context, ev UserEvent) error
}

// UserNotifierFunc adapts a function to UserNotifier.
type UserNotifierFunc func(ctx context.Context, ev UserEvent) error

func (f UserNotifierFunc) NotifyUser(ctx context.Context, ev UserEvent) error { return f(ctx, ev) }

func newUserEvent(ctx context.Context, t UserEventType, id uuid.UUID, u *UserDetail) UserEvent {
	return UserEvent{Type: t, UserID: id, User: u, Actor: entity.ActorFrom(ctx), OccurredAt: time.Now().UTC()}
}

// notify is best effort: a failing notifier is logged and never fails the request.
func notify(ctx context.Context, logger *logrus.Logger, notifiers []UserNotifier, ev UserEvent) {
	for _, n := range notifiers {
		if err := n.NotifyUser(ctx, ev); err != nil && logger != nil {
			logger.WithError(err).
				WithField("event", ev.Type).
				WithField("user_id", ev.UserID).
				Warn("user notifier failed")
		}
	}
}
