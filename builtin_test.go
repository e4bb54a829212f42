package glkit

import (
	"errors"
	"testing"
)

func TestNewShaders(t *testing.T) {
	ctx, driver := newTestContext(t)

	shaders, err := NewShaders(ctx)
	if err != nil {
		t.Fatalf("NewShaders() = %v", err)
	}
	if shaders.Basic == nil || shaders.Color == nil || shaders.Texture == nil {
		t.Fatal("NewShaders() returned a nil program")
	}

	if got := driver.Count("LinkProgram"); got != 3 {
		t.Errorf("LinkProgram calls = %d, want 3", got)
	}
	// Each program's two stages are released after linking.
	if got := len(driver.DeletedShaders); got != 6 {
		t.Errorf("deleted shaders = %d, want 6", got)
	}

	shaders.Release()
	if got := len(driver.DeletedPrograms); got != 3 {
		t.Errorf("deleted programs = %d, want 3", got)
	}
}

func TestNewShadersCompileFailure(t *testing.T) {
	ctx, driver := newTestContext(t)
	driver.CompileOK = false
	driver.ShaderLog = "syntax error"

	_, err := NewShaders(ctx)
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("NewShaders error = %v, want wrapped *CompileError", err)
	}
}
