//go:build linux

package gl

import "github.com/ebitengine/purego"

// Load resolves the binding from libGL. Symbols are registered once; the
// returned value is valid for the lifetime of the process.
func Load() (OpenGL, error) {
	handle, err := purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	return registerAll(handle), nil
}
