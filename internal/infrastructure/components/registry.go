// Package components provides an in-process component host: a registry of
// suspendable runtime components per module identity.
package components

import (
	"log/slog"
	"time"

	"github.com/ragzilla/GetOffMyNetwork/internal/application/ports"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// Component is one live runtime behavior instance belonging to a module.
// Suspension disables it, stops its pending timers and runs its teardown
// hook exactly once.
type Component struct {
	name      string
	enabled   bool
	timers    []*time.Timer
	teardown  func()
	suspendAt time.Time
}

// NewComponent creates an enabled component. teardown may be nil.
func NewComponent(name string, teardown func()) *Component {
	return &Component{name: name, enabled: true, teardown: teardown}
}

// Name returns the component's name.
func (c *Component) Name() string {
	return c.name
}

// Schedule attaches a pending timer that suspension will cancel.
func (c *Component) Schedule(t *time.Timer) {
	c.timers = append(c.timers, t)
}

// Suspend disables the component, cancels its timers and runs teardown.
// Already-suspended components are left untouched: state only transitions
// when it actually changes.
func (c *Component) Suspend() {
	if !c.enabled {
		return
	}
	c.enabled = false
	c.suspendAt = time.Now()

	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil

	if c.teardown != nil {
		c.teardown()
	}
	slog.Debug("component suspended", "component", c.name)
}

// Suspended reports whether the component is suspended.
func (c *Component) Suspended() bool {
	return !c.enabled
}

// Registry maps module identities to their live components. It is the
// in-process implementation of the host's component lifecycle surface.
type Registry struct {
	components map[string][]*Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string][]*Component)}
}

// Register attaches a component to a module identity.
func (r *Registry) Register(identity modules.Identity, component *Component) {
	key := identity.String()
	r.components[key] = append(r.components[key], component)
}

// Components returns the live components of a module identity.
func (r *Registry) Components(identity modules.Identity) []ports.ComponentHandle {
	registered := r.components[identity.String()]
	handles := make([]ports.ComponentHandle, 0, len(registered))
	for _, c := range registered {
		handles = append(handles, c)
	}
	return handles
}
