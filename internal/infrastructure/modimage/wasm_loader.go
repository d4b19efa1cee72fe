package modimage

import (
	"context"
	"fmt"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/tetratelabs/wazero"
)

// ParseWASMImage compiles a WASM binary and synthesizes a module image from
// its import section: one call-like instruction per imported function, with
// the target qualified as "module.name".
//
// Detection for WASM plugins is import-granular: a plugin that imports a
// networking host function can call it, so the import itself is the call
// site the scanner matches against.
func ParseWASMImage(ctx context.Context, wasmBytes []byte) (*modules.Image, error) {
	runtime := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCompilationCache(compilationCache))
	defer func() { _ = runtime.Close(ctx) }()

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("compiling WASM module: %w", err)
	}
	defer func() { _ = compiled.Close(ctx) }()

	method := modules.Method{Name: "(imports)", Body: []modules.Instruction{}}
	for _, def := range compiled.ImportedFunctions() {
		moduleName, name, ok := def.Import()
		if !ok {
			continue
		}
		method.Body = append(method.Body, modules.Instruction{
			Op:     modules.OpCall,
			Target: moduleName + "." + name,
		})
	}

	name := compiled.Name()
	if name == "" {
		name = "(wasm)"
	}
	return &modules.Image{
		Types: []modules.Type{{Name: name, Methods: []modules.Method{method}}},
	}, nil
}

// compilationCache speeds up repeated compilation across scan passes.
var compilationCache = wazero.NewCompilationCache()
