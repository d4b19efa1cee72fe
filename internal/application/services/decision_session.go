package services

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ragzilla/GetOffMyNetwork/internal/application/ports"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/trust"
)

// DecisionSession holds the newly discovered violators pending an operator
// decision and folds the answers back into the ledger. It is short-lived:
// one session per reconciliation pass that discovered something new.
type DecisionSession struct {
	sets   *WorkingSets
	ledger *trust.Ledger
	store  ports.LedgerStore
}

// NewDecisionSession creates a session over a reconciliation result.
func NewDecisionSession(sets *WorkingSets, ledger *trust.Ledger, store ports.LedgerStore) *DecisionSession {
	return &DecisionSession{sets: sets, ledger: ledger, store: store}
}

// Pending returns the violators not yet permitted, ordered by identity, for
// presentation to the operator.
func (s *DecisionSession) Pending() []modules.Identity {
	var pending []modules.Identity
	for key, identity := range s.sets.Violators {
		if !s.sets.Permitted[key] {
			pending = append(pending, identity)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].String() < pending[j].String()
	})
	return pending
}

// Commit folds the operator's answers into the ledger and persists it as a
// whole. Every module seen this pass gets a fresh record built from its
// current fingerprint and verdict; the permitted bit resolves to the
// operator's answer if present, else the session's existing value, else
// false. Records for identities not loaded this run are preserved.
func (s *DecisionSession) Commit(answers map[string]bool) error {
	for key, reconciled := range s.sets.AllModules {
		permitted, ok := answers[key]
		if !ok {
			permitted = s.sets.Permitted[key]
		}
		record := trust.NewRecord(
			reconciled.Snapshot.Identity,
			reconciled.Content,
			reconciled.Violator,
			permitted,
		)
		s.ledger.Upsert(record)

		// Keep the working sets in step so enforcement decisions made
		// after the commit see the resolved answers.
		if reconciled.Violator {
			s.sets.Permitted[key] = permitted
		}
	}

	if err := s.store.Save(s.ledger); err != nil {
		return fmt.Errorf("persisting trust ledger: %w", err)
	}
	slog.Info("trust ledger committed", "records", s.ledger.Len())
	return nil
}
