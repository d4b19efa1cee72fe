// Package fingerprint provides content and identity fingerprinting for
// binary modules.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"unicode/utf16"
)

// DigestSize is the size of a digest in bytes (SHA-256).
const DigestSize = sha256.Size

// Digest is a 256-bit content fingerprint.
// This is a pure value object in the domain.
type Digest [DigestSize]byte

// Content computes the fingerprint of a module's raw bytes.
// Identical byte sequences always yield identical digests.
func Content(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Identity computes the fingerprint of a module identity string over its
// UTF-16LE byte encoding. It is used only to derive ledger record keys and
// must never be conflated with content fingerprints.
func Identity(identity string) Digest {
	units := utf16.Encode([]rune(identity))
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return Digest(sha256.Sum256(buf))
}

// ParseDigest decodes a hex-encoded digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, fmt.Errorf("invalid digest encoding: %w", err)
	}
	if len(raw) != DigestSize {
		return Digest{}, fmt.Errorf("invalid digest length: got %d bytes, want %d", len(raw), DigestSize)
	}
	copy(d[:], raw)
	return d, nil
}

// Hex returns the lowercase hex encoding of the digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return d.Hex()
}

// Equals checks if two digests are equal (value object equality).
func (d Digest) Equals(other Digest) bool {
	return d == other
}

// IsZero returns true if this is the zero-value digest, which is never
// produced by Content or Identity and marks "no fingerprint computed".
func (d Digest) IsZero() bool {
	return d == Digest{}
}
