// Package trust defines the persistent trust ledger and its records.
package trust

import (
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/fingerprint"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// Record is the persisted verdict for one module identity.
//
// Invariants:
//   - Key is derived deterministically from Identity (identity fingerprint),
//     never set independently.
//   - Permitted is meaningful only when Violator is true; enforcement
//     ignores a non-violator's permitted bit.
//   - Content reflects the bytes the verdict was computed from; a mismatch
//     against a freshly computed fingerprint invalidates the verdict.
type Record struct {
	Key       fingerprint.Digest
	Identity  modules.Identity
	Content   fingerprint.Digest
	Violator  bool
	Permitted bool
}

// NewRecord creates a record for an identity, deriving its ledger key.
func NewRecord(identity modules.Identity, content fingerprint.Digest, violator, permitted bool) Record {
	return Record{
		Key:       fingerprint.Identity(identity.String()),
		Identity:  identity,
		Content:   content,
		Violator:  violator,
		Permitted: permitted,
	}
}

// MatchesContent reports whether a freshly computed content fingerprint
// agrees with the one this record was computed against.
func (r Record) MatchesContent(content fingerprint.Digest) bool {
	return r.Content.Equals(content)
}
