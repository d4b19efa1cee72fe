// Package prompt collects operator allow/deny decisions for modules.
package prompt

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// TerminalPrompter presents pending modules to the operator as a
// multi-select form. In non-interactive sessions every pending module is
// denied; the decision can be revisited in an interactive run.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're reading from an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// PresentChoice shows the pending identities and returns the per-module
// answers. Modules left unselected are denied.
func (p *TerminalPrompter) PresentChoice(promptText string, pending []modules.Identity) (map[string]bool, error) {
	answers := make(map[string]bool, len(pending))
	for _, id := range pending {
		answers[id.String()] = false
	}
	if len(pending) == 0 {
		return answers, nil
	}

	if !p.IsInteractive() {
		slog.Warn("non-interactive session, denying pending modules", "pending", len(pending))
		return answers, nil
	}

	options := make([]huh.Option[string], 0, len(pending))
	for _, id := range pending {
		options = append(options, huh.NewOption(id.String(), id.String()))
	}

	var allowed []string
	err := huh.NewMultiSelect[string]().
		Title(promptText).
		Description("Selected modules keep running on future launches; the rest stay suspended.").
		Options(options...).
		Value(&allowed).
		Run()
	if err != nil {
		return answers, fmt.Errorf("collecting operator decision: %w", err)
	}

	for _, id := range allowed {
		answers[id] = true
	}
	return answers, nil
}

// StaticPrompter answers every pending module with a fixed decision and
// never touches the terminal. Used for --trust-all and scripted runs.
type StaticPrompter struct {
	Allow bool
}

// PresentChoice resolves every pending identity to the fixed answer.
func (p StaticPrompter) PresentChoice(_ string, pending []modules.Identity) (map[string]bool, error) {
	if p.Allow && len(pending) > 0 {
		slog.Warn("auto-granting all pending modules", "pending", len(pending))
	}
	answers := make(map[string]bool, len(pending))
	for _, id := range pending {
		answers[id.String()] = p.Allow
	}
	return answers, nil
}
