// Package worker holds the message handlers run by cmd/event_worker.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/internal/application"
	"github.com/oksasatya/go-user-admin/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-admin/pkg/mailer/templates"
)

// ErrMalformed marks a message that can never be processed; it must not be requeued.
var ErrMalformed = errors.New("malformed message")

// AccountMailer turns user events into account e-mails.
type AccountMailer struct {
	Sender   mailer.Sender
	Branding mailtpl.Branding
	Logger   *logrus.Logger
}

var eventTemplates = map[application.UserEventType]string{
	application.UserCreated: mailtpl.AccountCreated,
	application.UserUpdated: mailtpl.AccountUpdated,
}

// Handle processes one message body. Events without a template are acknowledged silently.
func (m *AccountMailer) Handle(ctx context.Context, body []byte) error {
	var ev application.UserEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	name, ok := eventTemplates[ev.Type]
	if !ok {
		return nil
	}
	if ev.User == nil || ev.User.Email == "" {
		return fmt.Errorf("%w: %s event without user", ErrMalformed, ev.Type)
	}

	u := ev.User
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	data := mailtpl.NewEmailData(m.Branding, name, u.FirstName+" "+u.LastName, u.Email,
		mailtpl.WithRoles(roles),
		mailtpl.WithActive(u.Active),
		mailtpl.WithActor(ev.Actor),
		mailtpl.WithTime(ev.OccurredAt),
	)
	subject, text, html, err := mailtpl.Render(name, data)
	if err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrMalformed, name, err)
	}

	if err := m.Sender.Send(ctx, mailer.Message{
		To:      u.Email,
		Subject: subject,
		Text:    text,
		HTML:    html,
		Tags:    []string{string(ev.Type)},
	}); err != nil {
		return fmt.Errorf("send %s to %s: %w", name, u.Email, err)
	}
	if m.Logger != nil {
		m.Logger.WithField("event", ev.Type).WithField("user_id", ev.UserID).Info("account e-mail sent")
	}
	return nil
}
