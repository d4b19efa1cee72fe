package ports

import "github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"

// Prompter collects the operator's allow/deny answers for newly discovered
// violators. The core treats it as a call that eventually yields an answer
// map; whether the host renders it synchronously or not is its business.
type Prompter interface {
	// PresentChoice shows the pending identities to the operator and
	// returns their per-module answers. Identities absent from the
	// returned map default to denied.
	PresentChoice(prompt string, pending []modules.Identity) (map[string]bool, error)
}
