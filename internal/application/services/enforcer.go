package services

import (
	"log/slog"

	"github.com/ragzilla/GetOffMyNetwork/internal/application/ports"
)

// Enforcer applies a reconciliation verdict to live component instances
// through the host's suspension primitive.
type Enforcer struct {
	host ports.ComponentHost
}

// NewEnforcer creates an enforcer over a component host.
func NewEnforcer(host ports.ComponentHost) *Enforcer {
	return &Enforcer{host: host}
}

// Enforce suspends every live component of every violator that is not
// permitted. Suspension is idempotent: re-enforcing the same working sets
// leaves component state unchanged.
//
// Re-enabling a previously suspended component is deliberately not done
// here: a fresh approval takes effect starting the next run, so a component
// is never resumed mid-way through a host lifecycle it was yanked out of.
func (e *Enforcer) Enforce(sets *WorkingSets) int {
	suspended := 0
	for key, identity := range sets.Violators {
		if sets.Permitted[key] {
			continue
		}
		for _, component := range e.host.Components(identity) {
			if component.Suspended() {
				continue
			}
			component.Suspend()
			suspended++
		}
		slog.Info("suspended components of disallowed module", "module", identity)
	}
	return suspended
}
