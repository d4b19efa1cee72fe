// Package ledger provides file-based persistence for the trust ledger.
package ledger

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/fingerprint"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/trust"
)

// Document format: one section per trust record, named by the hex encoding
// of the record key (identity fingerprint), holding four scalar fields.
//
//	[3fd5…]
//	codebase="mod%3A%2F%2Fplugins%2Fa.dll"
//	hash="9c56…"
//	violator=true
//	permitted=false
//
// The field set is fixed and small, so the parser is explicit and
// statically typed. Loading is tolerant: unknown lines are skipped and a
// missing field takes its documented default (violator=false,
// permitted=false, hash="").

const (
	fieldCodebase  = "codebase"
	fieldHash      = "hash"
	fieldViolator  = "violator"
	fieldPermitted = "permitted"
)

// Marshal serializes the ledger to its canonical byte form: sections
// ordered by identity, so re-serializing an unchanged ledger is
// byte-identical.
func Marshal(l *trust.Ledger) []byte {
	var b strings.Builder
	for _, record := range l.Records() {
		fmt.Fprintf(&b, "[%s]\n", record.Key.Hex())
		fmt.Fprintf(&b, "%s=%q\n", fieldCodebase, url.PathEscape(record.Identity.String()))
		fmt.Fprintf(&b, "%s=%q\n", fieldHash, record.Content.Hex())
		fmt.Fprintf(&b, "%s=%t\n", fieldViolator, record.Violator)
		fmt.Fprintf(&b, "%s=%t\n", fieldPermitted, record.Permitted)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// Unmarshal parses a persisted document. It never fails: malformed input
// yields whatever records could be recovered, matching the "corruption is
// no prior decisions" policy.
func Unmarshal(data []byte) *trust.Ledger {
	l := trust.NewLedger()

	var (
		inSection bool
		section   sectionFields
	)
	flush := func() {
		if inSection {
			if record, ok := section.toRecord(); ok {
				l.Upsert(record)
			}
		}
		section = sectionFields{}
	}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			inSection = true
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || !inSection {
			slog.Debug("skipping malformed ledger line", "line", line)
			continue
		}
		section.set(strings.TrimSpace(key), unquote(strings.TrimSpace(value)))
	}
	flush()

	return l
}

// sectionFields accumulates one section's scalar fields with their
// documented defaults.
type sectionFields struct {
	codebase  string
	hash      string
	violator  bool
	permitted bool
}

func (s *sectionFields) set(key, value string) {
	switch key {
	case fieldCodebase:
		s.codebase = value
	case fieldHash:
		s.hash = value
	case fieldViolator:
		s.violator = value == "true"
	case fieldPermitted:
		s.permitted = value == "true"
	default:
		slog.Debug("skipping unknown ledger field", "field", key)
	}
}

func (s *sectionFields) toRecord() (trust.Record, bool) {
	if s.codebase == "" {
		// A section without an identity names nothing; drop it.
		return trust.Record{}, false
	}

	decoded, err := url.PathUnescape(s.codebase)
	if err != nil {
		// Malformed percent-encoding: fall back to the literal string so
		// the record stays addressable.
		slog.Warn("malformed module identity in ledger, using literal", "codebase", s.codebase)
		decoded = s.codebase
	}
	identity, err := modules.NewIdentity(decoded)
	if err != nil {
		return trust.Record{}, false
	}

	content, err := fingerprint.ParseDigest(s.hash)
	if err != nil {
		// Unparseable hash degrades to the zero digest: it matches no
		// fresh fingerprint, so the module is rescanned next pass.
		content = fingerprint.Digest{}
	}

	return trust.NewRecord(identity, content, s.violator, s.permitted), true
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}
