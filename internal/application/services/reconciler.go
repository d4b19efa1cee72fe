// Package services contains the application services orchestrating module
// scanning, trust reconciliation, enforcement and operator decisions.
package services

import (
	"log/slog"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/fingerprint"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/trust"
)

// ModuleScanner classifies a module snapshot. Satisfied by scan.Scanner.
type ModuleScanner interface {
	Scan(snapshot modules.Snapshot) bool
}

// WorkingSets is the transient outcome of one reconciliation pass. It is a
// derived, disposable view of the ledger for this run: destroyed at the end
// of the decision flow, and only its final state seeds the next ledger
// commit.
type WorkingSets struct {
	// Violators holds the identities classified as invoking forbidden
	// capabilities, keyed by identity string.
	Violators map[string]modules.Identity

	// Permitted maps identity strings to the operator's standing answer.
	// Only meaningful for violators.
	Permitted map[string]bool

	// AllModules records every candidate seen this pass, violator or not,
	// with its computed content fingerprint. Informational entries for
	// clean modules keep future matching possible.
	AllModules map[string]ReconciledModule

	// NewlyDiscovered is true when at least one violator was found that
	// has no valid prior decision.
	NewlyDiscovered bool
}

// ReconciledModule pairs a snapshot with its computed content fingerprint
// and this run's verdict.
type ReconciledModule struct {
	Snapshot modules.Snapshot
	Content  fingerprint.Digest
	Violator bool
}

// NewWorkingSets creates empty working sets.
func NewWorkingSets() *WorkingSets {
	return &WorkingSets{
		Violators:  make(map[string]modules.Identity),
		Permitted:  make(map[string]bool),
		AllModules: make(map[string]ReconciledModule),
	}
}

// IsPermitted reports the standing answer for an identity; absent means
// denied.
func (w *WorkingSets) IsPermitted(identity modules.Identity) bool {
	return w.Permitted[identity.String()]
}

// Reconciler reconciles freshly discovered modules against the trust
// ledger: matched modules reuse their stored verdict, unmatched modules are
// re-scanned with stale permissions discarded.
type Reconciler struct {
	scanner ModuleScanner
}

// NewReconciler creates a reconciler around a scanner.
func NewReconciler(scanner ModuleScanner) *Reconciler {
	return &Reconciler{scanner: scanner}
}

// Reconcile processes each candidate module against the ledger.
//
// A module whose stored record's fingerprint equals its freshly computed
// one is matched: the stored violator/permitted bits are adopted verbatim
// and the scanner is not invoked. Anything else is unmatched: the module is
// scanned, and a fresh violator defaults to denied even if a prior record
// had granted permission; an updated binary must be re-approved.
func (r *Reconciler) Reconcile(candidates []modules.Snapshot, ledger *trust.Ledger) *WorkingSets {
	sets := NewWorkingSets()

	for _, snapshot := range candidates {
		if snapshot.Content == nil {
			// Bytes could not be read: the module cannot be matched or
			// enforced this run. Any existing record is left untouched.
			slog.Warn("module content unreadable, excluded from this pass",
				"module", snapshot.Identity)
			continue
		}

		content := fingerprint.Content(snapshot.Content)
		key := snapshot.Identity.String()

		if record, ok := ledger.Lookup(snapshot.Identity); ok && record.MatchesContent(content) {
			// Matched: content verified unchanged, reuse the prior
			// decision instead of re-deriving it.
			sets.AllModules[key] = ReconciledModule{Snapshot: snapshot, Content: content, Violator: record.Violator}
			if record.Violator {
				sets.Violators[key] = snapshot.Identity
				sets.Permitted[key] = record.Permitted
			}
			slog.Debug("module matched against ledger",
				"module", snapshot.Identity,
				"violator", record.Violator,
				"permitted", record.Permitted)
			continue
		}

		// Unmatched: no record, or content changed since the decision.
		violator := r.scanner.Scan(snapshot)
		sets.AllModules[key] = ReconciledModule{Snapshot: snapshot, Content: content, Violator: violator}
		if violator {
			sets.Violators[key] = snapshot.Identity
			sets.Permitted[key] = false
			sets.NewlyDiscovered = true
			slog.Info("networking capability detected in module", "module", snapshot.Identity)
		}
	}

	return sets
}
