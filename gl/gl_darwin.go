//go:build darwin

package gl

import "github.com/ebitengine/purego"

// Load resolves the binding from the system OpenGL framework.
func Load() (OpenGL, error) {
	handle, err := purego.Dlopen(
		"/System/Library/Frameworks/OpenGL.framework/OpenGL",
		purego.RTLD_LAZY|purego.RTLD_GLOBAL,
	)
	if err != nil {
		return nil, err
	}
	return registerAll(handle), nil
}
