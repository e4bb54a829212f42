package glkit

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glkit/gl"
)

// StageKind selects which pipeline stage a Stage compiles for.
type StageKind int

const (
	VertexStage StageKind = iota
	GeometryStage
	FragmentStage
)

func (k StageKind) native() uint32 {
	switch k {
	case VertexStage:
		return gl.VertexShader
	case GeometryStage:
		return gl.GeometryShader
	case FragmentStage:
		return gl.FragmentShader
	}
	return 0
}

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case GeometryStage:
		return "geometry"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// Stage is one compiled shader stage. A stage is only needed until the
// programs using it have linked; release it afterwards.
type Stage struct {
	ctx    *Context
	handle uint32
}

// NewStage compiles source for the given stage kind. On failure it returns a
// *CompileError carrying the driver's diagnostic log and leaves no driver
// resource behind.
func NewStage(ctx *Context, kind StageKind, src string) (*Stage, error) {
	driver := ctx.gl

	handle := driver.CreateShader(kind.native())
	driver.ShaderSource(handle, src)
	driver.CompileShader(handle)

	var status int32
	driver.GetShaderiv(handle, gl.CompileStatus, &status)
	if status != gl.True {
		log := truncateLog(driver.GetShaderInfoLog(handle))
		driver.DeleteShader(handle)
		return nil, &CompileError{Kind: kind, Log: log}
	}

	return &Stage{ctx: ctx, handle: handle}, nil
}

// Release deletes the compiled stage. Programs already linked against it are
// unaffected.
func (s *Stage) Release() {
	s.ctx.gl.DeleteShader(s.handle)
	s.handle = 0
}

// Shader is a linked program. It is immutable after construction apart from
// being bound as the active program.
type Shader struct {
	ctx    *Context
	handle uint32
}

// NewShader links the given compiled stages into a program. On failure it
// returns a *LinkError carrying the driver's diagnostic log; no partial
// program is left active. The stages stay owned by the caller and may be
// released once NewShader returns.
func NewShader(ctx *Context, stages ...*Stage) (*Shader, error) {
	driver := ctx.gl

	handle := driver.CreateProgram()
	for _, stage := range stages {
		driver.AttachShader(handle, stage.handle)
	}
	driver.LinkProgram(handle)

	var status int32
	driver.GetProgramiv(handle, gl.LinkStatus, &status)
	if status != gl.True {
		log := truncateLog(driver.GetProgramInfoLog(handle))
		driver.DeleteProgram(handle)
		return nil, &LinkError{Log: log}
	}

	return &Shader{ctx: ctx, handle: handle}, nil
}

// Bind makes this program active for subsequent draw calls. The context
// caches the active program, so binding an already-active shader is a no-op.
func (s *Shader) Bind() {
	s.ctx.bindProgram(s.handle)
}

// UploadTexture binds the texture to the given unit and points the named
// sampler uniform at it. The shader is bound as a side effect.
func (s *Shader) UploadTexture(name string, tex *Texture, unit uint32) {
	s.Bind()
	tex.Bind(unit)

	loc := s.ctx.gl.GetUniformLocation(s.handle, name)
	s.ctx.gl.Uniform1i(loc, int32(unit))
}

// UploadColor sets the named vec4 uniform from a packed color.
func (s *Shader) UploadColor(name string, color Color) {
	s.Bind()

	loc := s.ctx.gl.GetUniformLocation(s.handle, name)
	s.ctx.gl.Uniform4f(
		loc,
		float32(color.R)/255.0,
		float32(color.G)/255.0,
		float32(color.B)/255.0,
		float32(color.A)/255.0,
	)
}

// UploadMatrix sets the named mat4 uniform.
func (s *Shader) UploadMatrix(name string, m mgl32.Mat4) {
	s.Bind()

	loc := s.ctx.gl.GetUniformLocation(s.handle, name)
	s.ctx.gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// Handle returns the native program handle.
func (s *Shader) Handle() uint32 { return s.handle }

// Release deletes the program. The shader must not be used afterwards.
func (s *Shader) Release() {
	s.ctx.gl.DeleteProgram(s.handle)
	s.handle = 0
}
