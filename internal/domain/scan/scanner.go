package scan

import (
	"log/slog"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// Scanner decides whether a module invokes forbidden networking capability
// namespaces. It is a pure domain service: stateless per invocation, no
// infrastructure dependencies.
type Scanner struct {
	rules      RuleSet
	pluginRoot string
}

// NewScanner creates a scanner with the given rule set. An empty pluginRoot
// falls back to the default plugin-root segment.
func NewScanner(rules RuleSet, pluginRoot string) *Scanner {
	if pluginRoot == "" {
		pluginRoot = PluginRootSegment
	}
	return &Scanner{rules: rules, pluginRoot: pluginRoot}
}

// NewDefaultScanner creates a scanner with the built-in networking rules.
func NewDefaultScanner() *Scanner {
	return NewScanner(DefaultRules(), PluginRootSegment)
}

// Eligible reports whether a module resides under the plugin root and is
// therefore subject to scanning. Host and platform code outside the root is
// never classified as a violator.
func (s *Scanner) Eligible(identity modules.Identity) bool {
	return identity.Contains(s.pluginRoot)
}

// Scan inspects every method body declared directly on every type in the
// module image and returns true on the first call-like instruction whose
// target matches a capability rule. Classification is module-granular: once
// a match is found no further methods are inspected.
//
// Unresolvable targets and unreadable method bodies are skipped, never
// treated as errors.
func (s *Scanner) Scan(snapshot modules.Snapshot) bool {
	if !s.Eligible(snapshot.Identity) {
		return false
	}
	if snapshot.Image == nil {
		// Binary could not be parsed: no violation found.
		slog.Debug("module image unavailable, skipping scan", "module", snapshot.Identity)
		return false
	}

	for _, typ := range snapshot.Image.Types {
		for _, method := range typ.Methods {
			if method.Body == nil {
				continue
			}
			for _, in := range method.Body {
				if !in.IsCallLike() {
					continue
				}
				if s.rules.Matches(in.Target) {
					slog.Debug("forbidden capability call found",
						"module", snapshot.Identity,
						"type", typ.Name,
						"method", method.Name,
						"target", in.Target)
					return true
				}
			}
		}
	}
	return false
}
