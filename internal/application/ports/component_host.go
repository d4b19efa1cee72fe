package ports

import "github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"

// ComponentHandle is one live runtime component belonging to a module,
// manageable by the host.
type ComponentHandle interface {
	// Suspend disables the component, cancels its pending timers and runs
	// its teardown hook. Suspending an already-suspended component is a
	// no-op: state only transitions when it actually changes.
	Suspend()

	// Suspended reports whether the component is currently suspended.
	Suspended() bool
}

// ComponentHost exposes the host's component lifecycle primitives.
type ComponentHost interface {
	// Components returns the live component instances belonging to a
	// module identity.
	Components(identity modules.Identity) []ComponentHandle
}
