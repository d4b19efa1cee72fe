package services

import (
	"context"
	"testing"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/fingerprint"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/trust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(provider *fakeProvider, store *memoryStore, host *fakeHost, prompter *scriptedPrompter) (*GuardService, *countingScanner) {
	scanner := newCountingScanner()
	return NewGuardService(
		provider,
		store,
		NewReconciler(scanner),
		NewEnforcer(host),
		prompter,
	), scanner
}

func TestGuard_EndToEnd_FreshViolator(t *testing.T) {
	// Scenario A: unknown module inside the plugin root with a socket
	// constructor call gets flagged, suspended, and recorded per the
	// operator's answer.
	snap := socketSnapshot("mod://plugins/A")
	host := newFakeHost()
	comps := host.add("mod://plugins/A", 2)
	store := newMemoryStore()
	prompter := &scriptedPrompter{answers: map[string]bool{"mod://plugins/A": true}}

	guard, scanner := newGuard(&fakeProvider{snapshots: []modules.Snapshot{snap}}, store, host, prompter)

	report, err := guard.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, scanner.calls, 1)
	assert.True(t, report.NewlyDiscovered)
	assert.Equal(t, 2, report.Suspended)
	require.Len(t, report.Modules, 1)
	assert.True(t, report.Modules[0].Violator)
	assert.True(t, report.Modules[0].Permitted)
	assert.NotEmpty(t, report.PassID)

	// Suspension happened before the prompt resolved; approval takes
	// effect next run, not this one.
	for _, c := range comps {
		assert.True(t, c.isSuspended)
	}

	// The prompt listed exactly the pending violator.
	require.Len(t, prompter.asked, 1)
	require.Len(t, prompter.asked[0], 1)
	assert.Equal(t, "mod://plugins/A", prompter.asked[0][0].String())

	// Ledger persisted with the answer folded in.
	assert.Equal(t, 1, store.saves)
	rec, ok := store.ledger.Lookup(snap.Identity)
	require.True(t, ok)
	assert.True(t, rec.Violator)
	assert.True(t, rec.Permitted)
}

func TestGuard_EndToEnd_MatchedPermitted(t *testing.T) {
	// Scenario B: same module, same content, permitted by a prior run.
	// No scan, no prompt, no suspension.
	snap := socketSnapshot("mod://plugins/A")
	host := newFakeHost()
	comps := host.add("mod://plugins/A", 1)
	store := newMemoryStore()
	store.ledger.Upsert(trust.NewRecord(snap.Identity, fingerprint.Content(snap.Content), true, true))
	prompter := &scriptedPrompter{}

	guard, scanner := newGuard(&fakeProvider{snapshots: []modules.Snapshot{snap}}, store, host, prompter)

	report, err := guard.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, scanner.calls)
	assert.Empty(t, prompter.asked)
	assert.False(t, report.NewlyDiscovered)
	assert.Equal(t, 0, report.Suspended)
	assert.False(t, comps[0].isSuspended)
	assert.Equal(t, 0, store.saves, "no commit when nothing newly discovered")
}

func TestGuard_EndToEnd_OutsidePluginRoot(t *testing.T) {
	// Scenario C: matching call pattern outside the plugin root is never a
	// violator.
	snap := socketSnapshot("mod://host/B")
	host := newFakeHost()
	comps := host.add("mod://host/B", 1)
	prompter := &scriptedPrompter{}

	guard, _ := newGuard(&fakeProvider{snapshots: []modules.Snapshot{snap}}, newMemoryStore(), host, prompter)

	report, err := guard.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.NewlyDiscovered)
	require.Len(t, report.Modules, 1)
	assert.False(t, report.Modules[0].Violator)
	assert.False(t, comps[0].isSuspended)
}

func TestGuard_ScanCompletedLatch(t *testing.T) {
	snap := socketSnapshot("mod://plugins/A")
	store := newMemoryStore()
	prompter := &scriptedPrompter{answers: map[string]bool{}}

	guard, scanner := newGuard(&fakeProvider{snapshots: []modules.Snapshot{snap}}, store, newFakeHost(), prompter)

	first, err := guard.Run(context.Background())
	require.NoError(t, err)

	// A second trigger is a no-op returning the same report.
	second, err := guard.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, scanner.calls, 1)
	assert.Len(t, prompter.asked, 1)
	assert.Equal(t, 1, store.saves)
}

func TestGuard_DeniedStaysSuspendedNextRun(t *testing.T) {
	// Denied this run; a fresh service next run reuses the stored verdict
	// and suspends again without prompting.
	snap := socketSnapshot("mod://plugins/A")
	store := newMemoryStore()

	guard, _ := newGuard(&fakeProvider{snapshots: []modules.Snapshot{snap}}, store, newFakeHost(), &scriptedPrompter{answers: map[string]bool{"mod://plugins/A": false}})
	_, err := guard.Run(context.Background())
	require.NoError(t, err)

	host := newFakeHost()
	comps := host.add("mod://plugins/A", 1)
	prompter := &scriptedPrompter{}
	next, scanner := newGuard(&fakeProvider{snapshots: []modules.Snapshot{snap}}, store, host, prompter)

	report, err := next.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, scanner.calls, "matched module is not rescanned")
	assert.Empty(t, prompter.asked)
	assert.False(t, report.NewlyDiscovered)
	assert.True(t, comps[0].isSuspended)
}
