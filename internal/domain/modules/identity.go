// Package modules defines domain types for third-party binary modules.
package modules

import (
	"fmt"
	"strings"
)

// Identity represents a validated module identity: the stable string naming
// the module's load location. Two modules with the same identity are the
// same entity across runs.
type Identity struct {
	value string
}

// NewIdentity creates an Identity with validation.
func NewIdentity(value string) (Identity, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Identity{}, fmt.Errorf("module identity cannot be empty")
	}
	return Identity{value: value}, nil
}

// MustNewIdentity creates an Identity or panics.
func MustNewIdentity(value string) Identity {
	id, err := NewIdentity(value)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation.
func (i Identity) String() string {
	return i.value
}

// IsEmpty returns true if this is the zero value.
func (i Identity) IsEmpty() bool {
	return i.value == ""
}

// Equals checks if two identities are equal.
func (i Identity) Equals(other Identity) bool {
	return i.value == other.value
}

// Contains reports whether the identity contains the given path segment.
// Used for plugin-root gating.
func (i Identity) Contains(segment string) bool {
	return strings.Contains(i.value, segment)
}
