package glkit

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewStageCompileError(t *testing.T) {
	ctx, driver := newTestContext(t)
	driver.CompileOK = false
	driver.ShaderLog = strings.Repeat("x", 600)

	_, err := NewStage(ctx, FragmentStage, "not glsl")
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("NewStage error = %v, want *CompileError", err)
	}
	if compileErr.Kind != FragmentStage {
		t.Errorf("error stage = %v, want fragment", compileErr.Kind)
	}
	// Driver logs are capped at 511 bytes.
	if len(compileErr.Log) != 511 {
		t.Errorf("log length = %d, want 511", len(compileErr.Log))
	}
	// The failed stage handle must not leak.
	if len(driver.DeletedShaders) != 1 {
		t.Errorf("deleted shaders = %d, want 1", len(driver.DeletedShaders))
	}
}

func TestNewShaderLinkError(t *testing.T) {
	ctx, driver := newTestContext(t)
	driver.ProgramLog = "undefined reference"
	driver.LinkOK = false

	stage, err := NewStage(ctx, VertexStage, "void main() {}")
	if err != nil {
		t.Fatalf("NewStage() = %v", err)
	}

	_, err = NewShader(ctx, stage)
	var linkErr *LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("NewShader error = %v, want *LinkError", err)
	}
	if linkErr.Log != "undefined reference" {
		t.Errorf("link log = %q", linkErr.Log)
	}
	if len(driver.DeletedPrograms) != 1 {
		t.Errorf("deleted programs = %d, want 1", len(driver.DeletedPrograms))
	}
}

func buildTestShader(t *testing.T, ctx *Context) *Shader {
	t.Helper()

	vertex, err := NewStage(ctx, VertexStage, "void main() {}")
	if err != nil {
		t.Fatalf("vertex stage: %v", err)
	}
	fragment, err := NewStage(ctx, FragmentStage, "void main() {}")
	if err != nil {
		t.Fatalf("fragment stage: %v", err)
	}

	shader, err := NewShader(ctx, vertex, fragment)
	if err != nil {
		t.Fatalf("NewShader() = %v", err)
	}
	vertex.Release()
	fragment.Release()
	return shader
}

func TestShaderBindIsCached(t *testing.T) {
	ctx, driver := newTestContext(t)
	shader := buildTestShader(t, ctx)

	shader.Bind()
	shader.Bind()
	if got := driver.Count("UseProgram"); got != 1 {
		t.Errorf("UseProgram calls = %d, want 1", got)
	}
	if driver.ActiveProgram != shader.Handle() {
		t.Errorf("active program = %d, want %d", driver.ActiveProgram, shader.Handle())
	}

	// Binding a different program flushes, binding back flushes again.
	other := buildTestShader(t, ctx)
	other.Bind()
	shader.Bind()
	if got := driver.Count("UseProgram"); got != 3 {
		t.Errorf("UseProgram calls = %d, want 3", got)
	}
}

func TestUploadTexture(t *testing.T) {
	ctx, driver := newTestContext(t)
	shader := buildTestShader(t, ctx)

	pixels := make([]byte, 2*2*4)
	tex, err := NewTexture(ctx, 2, 2, pixels, false)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}

	shader.UploadTexture("u_tex", tex, 3)

	loc := driver.Location("u_tex")
	if loc < 0 {
		t.Fatal("u_tex location was never requested")
	}
	if got := driver.Uniforms1i[loc]; got != 3 {
		t.Errorf("u_tex uniform = %d, want 3", got)
	}
	if driver.ActiveUnit != 3 {
		t.Errorf("active unit = %d, want 3", driver.ActiveUnit)
	}
}

func TestUploadColor(t *testing.T) {
	ctx, driver := newTestContext(t)
	shader := buildTestShader(t, ctx)

	shader.UploadColor("u_color", Color{R: 255, G: 0, B: 51, A: 255})

	loc := driver.Location("u_color")
	if loc < 0 {
		t.Fatal("u_color location was never requested")
	}
	got := driver.Uniforms4f[loc]
	want := [4]float32{1.0, 0.0, 51.0 / 255.0, 1.0}
	if got != want {
		t.Errorf("u_color uniform = %v, want %v", got, want)
	}
}

func TestUploadMatrixBindsShader(t *testing.T) {
	ctx, driver := newTestContext(t)
	shader := buildTestShader(t, ctx)

	shader.UploadMatrix("u_proj", mgl32.Ident4())
	if got := driver.Count("UniformMatrix4fv"); got != 1 {
		t.Errorf("UniformMatrix4fv calls = %d, want 1", got)
	}
	if driver.ActiveProgram != shader.Handle() {
		t.Errorf("active program = %d, want %d", driver.ActiveProgram, shader.Handle())
	}
}
