// Package scan implements static capability scanning of module images.
package scan

import "strings"

// PluginRootSegment is the path segment marking the third-party plugin root.
// Modules whose identity does not contain it are never scanned and never
// classified as violators.
const PluginRootSegment = "plugins"

// Rule is a capability rule: a pattern identifying a forbidden call-target
// namespace. A call target matches when it contains the pattern anywhere in
// its fully qualified name.
type Rule string

// RuleSet is the ordered collection of capability rules applied to a module.
type RuleSet []Rule

// DefaultRules returns the built-in networking rule set:
// general network I/O, engine-level networking, engine-level fetch/HTTP,
// and the host-function namespaces reachable from WASM plugin images.
func DefaultRules() RuleSet {
	return RuleSet{
		// General network I/O
		"System.Net.",

		// Engine-level networking
		"Godot.ENet",
		"Godot.PacketPeer",
		"Godot.StreamPeer",
		"Godot.WebSocket",
		"Godot.Multiplayer",

		// Engine-level fetch/HTTP
		"Godot.HTTPClient",
		"Godot.HTTPRequest",

		// WASM host networking namespaces
		"wasi_snapshot_preview1.sock_",
		"gomn_host.http_",
		"gomn_host.tcp_",
		"gomn_host.dns_",
		"gomn_host.smtp_",
	}
}

// Matches reports whether a fully qualified call target hits any rule.
// Empty targets (unresolvable instructions) never match.
func (rs RuleSet) Matches(target string) bool {
	if target == "" {
		return false
	}
	for _, r := range rs {
		if r != "" && strings.Contains(target, string(r)) {
			return true
		}
	}
	return false
}
