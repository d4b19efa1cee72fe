package trust

import (
	"sort"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// Ledger is the full collection of trust records, keyed by module identity.
// It is the single source of truth across runs: loaded once at startup,
// mutated only by a decision commit, saved as a whole.
//
// The ledger owns no I/O; persistence goes through a store that consumes
// its canonical serialized form.
type Ledger struct {
	records map[string]Record
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]Record)}
}

// Lookup returns the record for an identity, if present.
func (l *Ledger) Lookup(identity modules.Identity) (Record, bool) {
	r, ok := l.records[identity.String()]
	return r, ok
}

// Upsert inserts or replaces the record for its identity.
func (l *Ledger) Upsert(record Record) {
	l.records[record.Identity.String()] = record
}

// Remove deletes the record for an identity. Returns true if one existed.
func (l *Ledger) Remove(identity modules.Identity) bool {
	if _, ok := l.records[identity.String()]; !ok {
		return false
	}
	delete(l.records, identity.String())
	return true
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns all records ordered by identity. The ordering makes
// serialization canonical: re-serializing an unchanged ledger is
// byte-identical.
func (l *Ledger) Records() []Record {
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identity.String() < out[j].Identity.String()
	})
	return out
}

// Equal compares two ledgers by identity, ignoring ordering.
func (l *Ledger) Equal(other *Ledger) bool {
	if len(l.records) != len(other.records) {
		return false
	}
	for key, r := range l.records {
		o, ok := other.records[key]
		if !ok || o != r {
			return false
		}
	}
	return true
}
