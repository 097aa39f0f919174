// Package messaging publishes user events to RabbitMQ.
package messaging

import (
	"context"
	"time"

	"github.com/oksasatya/go-user-admin/internal/application"
)

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserEventPublisher forwards every user event to the queue consumed by cmd/event_worker.
type UserEventPublisher struct {
	Pub     JSONPublisher
	Timeout time.Duration
}

func NewUserEventPublisher(pub JSONPublisher) *UserEventPublisher {
	return &UserEventPublisher{Pub: pub, Timeout: 2 * time.Second}
}

var _ application.UserNotifier = (*UserEventPublisher)(nil)

func (p *UserEventPublisher) NotifyUser(ctx context.Context, ev application.UserEvent) error {
	c, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return p.Pub.PublishJSON(c, ev)
}
