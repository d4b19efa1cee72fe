package components

import (
	"testing"
	"time"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_SuspendRunsTeardownOnce(t *testing.T) {
	teardowns := 0
	c := NewComponent("worker", func() { teardowns++ })

	require.False(t, c.Suspended())

	c.Suspend()
	assert.True(t, c.Suspended())
	assert.Equal(t, 1, teardowns)

	// Idempotent: a second suspension is a no-op.
	c.Suspend()
	assert.Equal(t, 1, teardowns)
}

func TestComponent_SuspendCancelsTimers(t *testing.T) {
	fired := make(chan struct{}, 1)
	c := NewComponent("scheduler", nil)
	timer := time.AfterFunc(20*time.Millisecond, func() { fired <- struct{}{} })
	c.Schedule(timer)

	c.Suspend()

	select {
	case <-fired:
		t.Fatal("pending timer must be cancelled by suspension")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestComponent_NilTeardown(t *testing.T) {
	c := NewComponent("bare", nil)
	c.Suspend()
	assert.True(t, c.Suspended())
}

func TestRegistry_ComponentsByIdentity(t *testing.T) {
	registry := NewRegistry()
	a := modules.MustNewIdentity("mod://plugins/a")
	b := modules.MustNewIdentity("mod://plugins/b")

	registry.Register(a, NewComponent("a1", nil))
	registry.Register(a, NewComponent("a2", nil))
	registry.Register(b, NewComponent("b1", nil))

	assert.Len(t, registry.Components(a), 2)
	assert.Len(t, registry.Components(b), 1)
	assert.Empty(t, registry.Components(modules.MustNewIdentity("mod://plugins/none")))
}
