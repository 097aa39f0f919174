package entity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit_MarkCreated(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 987654321, time.UTC)
	var a Audit
	a.UpdatedBy = new(string)
	a.MarkCreated("alice", at)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "alice", a.CreatedBy)
	assert.Equal(t, at.Truncate(time.Microsecond), a.CreatedDate)
	assert.Equal(t, 987654000, a.CreatedDate.Nanosecond())
	assert.Nil(t, a.UpdatedBy)
	assert.Nil(t, a.UpdatedDate)

	id := a.ID
	a.MarkCreated("alice", at)
	assert.Equal(t, id, a.ID)
}

func TestAudit_MarkUpdated(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 1999, time.UTC)
	var a Audit
	a.MarkUpdated("bob", at)

	require.NotNil(t, a.UpdatedBy)
	require.NotNil(t, a.UpdatedDate)
	assert.Equal(t, "bob", *a.UpdatedBy)
	assert.Equal(t, 1000, a.UpdatedDate.Nanosecond())
}

func TestActorFrom(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultActor, ActorFrom(ctx))
	assert.Equal(t, DefaultActor, ActorFrom(WithActor(ctx, "")))
	assert.Equal(t, "carol", ActorFrom(WithActor(ctx, "carol")))
}
