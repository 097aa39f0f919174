package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultActor is recorded in CreatedBy/UpdatedBy when the request carries no actor.
const DefaultActor = "system"

// Audit is the bookkeeping shape shared by every persisted entity.
// CreatedBy/CreatedDate are written once by the store on insert.
type Audit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy   string    `gorm:"not null"`
	CreatedDate time.Time `gorm:"not null"`
	UpdatedBy   *string
	UpdatedDate *time.Time
}

// Audited is satisfied by any struct embedding Audit (through the pointer receiver).
type Audited interface {
	AuditInfo() *Audit
}

func (a *Audit) AuditInfo() *Audit { return a }

// StampPrecision is the resolution of timestamptz columns; stamps are truncated to it
// so a freshly written entity equals its re-read form.
const StampPrecision = time.Microsecond

// MarkCreated assigns an id when missing and stamps creation fields.
func (a *Audit) MarkCreated(actor string, now time.Time) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedBy = actor
	a.CreatedDate = now.Truncate(StampPrecision)
	a.UpdatedBy = nil
	a.UpdatedDate = nil
}

func (a *Audit) MarkUpdated(actor string, now time.Time) {
	now = now.Truncate(StampPrecision)
	a.UpdatedBy = &actor
	a.UpdatedDate = &now
}

type actorKey struct{}

// WithActor returns a context that carries the name recorded in audit columns.
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored in ctx, or DefaultActor.
func ActorFrom(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultActor
}
