package services

import (
	"context"

	"github.com/ragzilla/GetOffMyNetwork/internal/application/ports"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/scan"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/trust"
)

// countingScanner wraps the real scanner and records each invocation.
type countingScanner struct {
	inner *scan.Scanner
	calls []string
}

func newCountingScanner() *countingScanner {
	return &countingScanner{inner: scan.NewDefaultScanner()}
}

func (c *countingScanner) Scan(snapshot modules.Snapshot) bool {
	c.calls = append(c.calls, snapshot.Identity.String())
	return c.inner.Scan(snapshot)
}

// memoryStore keeps the ledger in memory and counts saves.
type memoryStore struct {
	ledger *trust.Ledger
	saves  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{ledger: trust.NewLedger()}
}

func (m *memoryStore) Load() (*trust.Ledger, error) {
	return m.ledger, nil
}

func (m *memoryStore) Save(ledger *trust.Ledger) error {
	m.ledger = ledger
	m.saves++
	return nil
}

// fakeComponent implements ports.ComponentHandle with transition counting.
type fakeComponent struct {
	suspended   int
	isSuspended bool
	tornDown    bool
}

func (f *fakeComponent) Suspend() {
	if f.isSuspended {
		return
	}
	f.isSuspended = true
	f.tornDown = true
	f.suspended++
}

func (f *fakeComponent) Suspended() bool { return f.isSuspended }

// fakeHost maps identity strings to components.
type fakeHost struct {
	components map[string][]*fakeComponent
}

func newFakeHost() *fakeHost {
	return &fakeHost{components: make(map[string][]*fakeComponent)}
}

func (h *fakeHost) add(identity string, n int) []*fakeComponent {
	for i := 0; i < n; i++ {
		h.components[identity] = append(h.components[identity], &fakeComponent{})
	}
	return h.components[identity]
}

func (h *fakeHost) Components(identity modules.Identity) []ports.ComponentHandle {
	var out []ports.ComponentHandle
	for _, c := range h.components[identity.String()] {
		out = append(out, c)
	}
	return out
}

// fakeProvider returns a fixed set of snapshots.
type fakeProvider struct {
	snapshots []modules.Snapshot
}

func (p *fakeProvider) EnumerateModules(context.Context) ([]modules.Snapshot, error) {
	return p.snapshots, nil
}

// scriptedPrompter answers from a canned map and records what it was asked.
type scriptedPrompter struct {
	answers map[string]bool
	asked   [][]modules.Identity
}

func (p *scriptedPrompter) PresentChoice(_ string, pending []modules.Identity) (map[string]bool, error) {
	p.asked = append(p.asked, pending)
	return p.answers, nil
}

func socketSnapshot(identity string) modules.Snapshot {
	return modules.Snapshot{
		Identity: modules.MustNewIdentity(identity),
		Content:  []byte("binary of " + identity),
		Image: &modules.Image{
			Types: []modules.Type{{
				Name: "Mod",
				Methods: []modules.Method{{
					Name: "Ready",
					Body: []modules.Instruction{
						{Op: modules.OpNewObj, Target: "System.Net.Sockets.Socket..ctor"},
					},
				}},
			}},
		},
	}
}

func cleanSnapshot(identity string) modules.Snapshot {
	return modules.Snapshot{
		Identity: modules.MustNewIdentity(identity),
		Content:  []byte("binary of " + identity),
		Image: &modules.Image{
			Types: []modules.Type{{
				Name: "Mod",
				Methods: []modules.Method{{
					Name: "Ready",
					Body: []modules.Instruction{
						{Op: modules.OpCallVirt, Target: "Godot.Node.GetNode"},
					},
				}},
			}},
		},
	}
}
