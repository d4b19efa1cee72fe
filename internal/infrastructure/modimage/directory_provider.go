package modimage

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// IdentityScheme prefixes every module identity produced by the directory
// provider.
const IdentityScheme = "mod://"

// DirectoryProvider enumerates candidate modules from a directory tree.
// Module identities are derived from the path relative to the parent of the
// root, so a root directory named after the plugin-root sentinel yields
// identities like "mod://plugins/a.wasm".
//
// Recognized module forms: WASM binaries (.wasm) and exported module-image
// documents (.modimage.yaml / .modimage.yml).
type DirectoryProvider struct {
	root string
}

// NewDirectoryProvider creates a provider over the given root directory.
func NewDirectoryProvider(root string) *DirectoryProvider {
	return &DirectoryProvider{root: root}
}

// EnumerateModules walks the tree and builds one snapshot per recognized
// module file. Per-file failures degrade per the error taxonomy: unreadable
// content yields a snapshot without bytes (excluded from matching),
// unparseable binaries yield a snapshot without an image (scans clean).
// Only a failed walk of the root itself is an error.
func (p *DirectoryProvider) EnumerateModules(ctx context.Context) ([]modules.Snapshot, error) {
	var snapshots []modules.Snapshot

	base := filepath.Dir(filepath.Clean(p.root))
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !isModuleFile(path) {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			slog.Warn("skipping module with underivable identity", "path", path, "error", err)
			return nil
		}
		identity, err := modules.NewIdentity(IdentityScheme + filepath.ToSlash(rel))
		if err != nil {
			slog.Warn("skipping module with invalid identity", "path", path, "error", err)
			return nil
		}

		snapshots = append(snapshots, p.snapshot(ctx, identity, path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (p *DirectoryProvider) snapshot(ctx context.Context, identity modules.Identity, path string) modules.Snapshot {
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("module content unreadable", "module", identity, "error", err)
		return modules.Snapshot{Identity: identity}
	}

	snap := modules.Snapshot{Identity: identity, Content: content}

	switch {
	case strings.HasSuffix(path, ".wasm"):
		image, err := ParseWASMImage(ctx, content)
		if err != nil {
			slog.Warn("module binary unparseable, treating as clean", "module", identity, "error", err)
			return snap
		}
		snap.Image = image
	default:
		image, err := ParseImageDocument(content)
		if err != nil {
			slog.Warn("module image document unparseable, treating as clean", "module", identity, "error", err)
			return snap
		}
		snap.Image = image
	}
	return snap
}

func isModuleFile(path string) bool {
	return strings.HasSuffix(path, ".wasm") ||
		strings.HasSuffix(path, ".modimage.yaml") ||
		strings.HasSuffix(path, ".modimage.yml")
}
