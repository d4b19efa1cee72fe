// Package ports defines interfaces between the application layer and
// host-integration infrastructure.
package ports

import (
	"context"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// ModuleProvider enumerates the candidate modules currently loaded by the
// host. Implementations rebuild snapshots from the live binaries every run;
// snapshots are never persisted.
type ModuleProvider interface {
	// EnumerateModules returns a snapshot per loaded module. Per-module
	// read failures are logged and skipped by the implementation, never
	// surfaced as a pass-aborting error.
	EnumerateModules(ctx context.Context) ([]modules.Snapshot, error)
}
