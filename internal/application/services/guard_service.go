package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ragzilla/GetOffMyNetwork/internal/application/ports"
)

// GuardService is the long-lived entry point for a scan pass. The host may
// recreate its controlling objects many times per process lifetime, so the
// service guards the whole flow behind a scan-completed latch: the pass
// runs at most once per service instance, and later triggers are no-ops.
//
// The whole pass is single-threaded and runs to completion on the caller's
// thread; enforcement always happens before the operator prompt, so a
// freshly discovered module never gets more than one execution slice of
// unsupervised activity.
type GuardService struct {
	provider   ports.ModuleProvider
	store      ports.LedgerStore
	reconciler *Reconciler
	enforcer   *Enforcer
	prompter   ports.Prompter

	scanCompleted bool
	lastReport    *Report
}

// Report summarizes one completed scan pass for presentation.
type Report struct {
	PassID          string
	StartTime       time.Time
	Duration        time.Duration
	Modules         []ModuleVerdict
	Suspended       int
	NewlyDiscovered bool
}

// ModuleVerdict is the per-module outcome of a pass.
type ModuleVerdict struct {
	Identity  string
	Content   string // hex content fingerprint
	Violator  bool
	Permitted bool
}

// NewGuardService wires the scan pass from its collaborators.
func NewGuardService(
	provider ports.ModuleProvider,
	store ports.LedgerStore,
	reconciler *Reconciler,
	enforcer *Enforcer,
	prompter ports.Prompter,
) *GuardService {
	return &GuardService{
		provider:   provider,
		store:      store,
		reconciler: reconciler,
		enforcer:   enforcer,
		prompter:   prompter,
	}
}

// Run executes one scan pass: load ledger, enumerate modules, reconcile,
// enforce, then collect and commit operator decisions for anything newly
// discovered. Repeat calls return the first pass's report.
func (g *GuardService) Run(ctx context.Context) (*Report, error) {
	if g.scanCompleted {
		slog.Debug("scan already completed, skipping")
		return g.lastReport, nil
	}

	start := time.Now()
	passID := uuid.NewString()
	slog.Info("starting scan pass", "pass", passID)

	ledger, err := g.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading trust ledger: %w", err)
	}

	candidates, err := g.provider.EnumerateModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating candidate modules: %w", err)
	}

	sets := g.reconciler.Reconcile(candidates, ledger)

	// Suspension happens before any prompt: default-deny already applies
	// to newly discovered violators.
	suspended := g.enforcer.Enforce(sets)

	if sets.NewlyDiscovered {
		session := NewDecisionSession(sets, ledger, g.store)
		pending := session.Pending()

		answers, err := g.prompter.PresentChoice(
			"These modules use networking capabilities. Allow them to run?",
			pending,
		)
		if err != nil {
			// Treat an unanswerable prompt as deny-all: the decision can
			// be revisited next run.
			slog.Warn("operator prompt failed, denying pending modules", "error", err)
			answers = map[string]bool{}
		}

		if err := session.Commit(answers); err != nil {
			return nil, err
		}
	}

	g.scanCompleted = true
	g.lastReport = buildReport(passID, start, sets, suspended)
	slog.Info("scan pass complete",
		"pass", passID,
		"modules", len(sets.AllModules),
		"violators", len(sets.Violators),
		"suspended", suspended)
	return g.lastReport, nil
}

func buildReport(passID string, start time.Time, sets *WorkingSets, suspended int) *Report {
	report := &Report{
		PassID:          passID,
		StartTime:       start,
		Duration:        time.Since(start),
		Suspended:       suspended,
		NewlyDiscovered: sets.NewlyDiscovered,
	}
	for key, reconciled := range sets.AllModules {
		report.Modules = append(report.Modules, ModuleVerdict{
			Identity:  key,
			Content:   reconciled.Content.Hex(),
			Violator:  reconciled.Violator,
			Permitted: reconciled.Violator && sets.Permitted[key],
		})
	}
	sort.Slice(report.Modules, func(i, j int) bool {
		return report.Modules[i].Identity < report.Modules[j].Identity
	})
	return report
}
