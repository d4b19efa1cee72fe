package ports

import "github.com/ragzilla/GetOffMyNetwork/internal/domain/trust"

// LedgerStore persists the trust ledger as a whole.
type LedgerStore interface {
	// Load reads the persisted ledger. A missing or unparseable document
	// yields an empty ledger, never an error: corruption means "no prior
	// decisions".
	Load() (*trust.Ledger, error)

	// Save atomically rewrites the whole persisted document from the
	// in-memory ledger.
	Save(ledger *trust.Ledger) error
}
