// Package gltest provides a call-recording implementation of gl.OpenGL so the
// toolkit's state cache and buffer builders can be exercised without a GPU or
// a current GL context.
//
// The driver hands out sequential fake handles, records every entry point it
// receives, and lets tests script compile/link results and the error queue.
package gltest

import (
	"unsafe"

	"github.com/tinyrange/glkit/gl"
)

// AttribPointer records one VertexAttribPointer call.
type AttribPointer struct {
	Index      uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// BufferUpload records one BufferData call.
type BufferUpload struct {
	Target uint32
	Size   int
	Usage  uint32
}

// BufferWrite records one BufferSubData call.
type BufferWrite struct {
	Target uint32
	Offset int
	Size   int
}

// DrawCall records one DrawArrays or DrawElements call.
type DrawCall struct {
	Mode    uint32
	First   int32
	Count   int32
	Type    uint32
	Indexed bool
}

// TexImage records one TexImage2D or TexSubImage2D call.
type TexImage struct {
	Target  uint32
	X, Y    int32
	Width   int32
	Height  int32
	Sub     bool
}

// TexParam records one TexParameteri call.
type TexParam struct {
	Target uint32
	Pname  uint32
	Param  int32
}

// Driver is a recording gl.OpenGL. The zero value is not usable; construct
// with New.
type Driver struct {
	// Scripted results.
	CompileOK       bool
	LinkOK          bool
	ShaderLog       string
	ProgramLog      string
	MaxTextureUnits int32
	ErrorQueue      []uint32
	Strings         map[uint32]string

	// Recorded state.
	Enabled        []uint32
	Disabled       []uint32
	ClearMasks     []uint32
	LastClearColor [4]float32
	LastBlendFunc  [2]uint32
	LastFrontFace  uint32
	LastViewport   [4]int32

	ActiveUnit    uint32
	BoundTextures map[uint32]uint32 // target -> handle
	BoundBuffers  map[uint32]uint32 // target -> handle
	BoundArray    uint32
	ActiveProgram uint32

	Attribs        []AttribPointer
	EnabledAttribs []uint32
	Uploads        []BufferUpload
	Writes         []BufferWrite
	Draws          []DrawCall
	Images         []TexImage
	TexParams      []TexParam

	Uniforms1i map[int32]int32
	Uniforms4f map[int32][4]float32

	DeletedTextures []uint32
	DeletedBuffers  []uint32
	DeletedArrays   []uint32
	DeletedShaders  []uint32
	DeletedPrograms []uint32

	locations  map[string]int32
	calls      map[string]int
	nextHandle uint32
}

// New returns a driver that compiles and links everything successfully and
// reports 8 texture units.
func New() *Driver {
	return &Driver{
		CompileOK:       true,
		LinkOK:          true,
		MaxTextureUnits: 8,
		Strings:         map[uint32]string{},
		BoundTextures:   map[uint32]uint32{},
		BoundBuffers:    map[uint32]uint32{},
		Uniforms1i:      map[int32]int32{},
		Uniforms4f:      map[int32][4]float32{},
		locations:       map[string]int32{},
		calls:           map[string]int{},
	}
}

// Count reports how many times the named entry point was called, e.g.
// Count("Viewport").
func (d *Driver) Count(name string) int { return d.calls[name] }

// Location reports the uniform location the driver assigned to name, or -1.
func (d *Driver) Location(name string) int32 {
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) record(name string) { d.calls[name]++ }

func (d *Driver) handle() uint32 {
	d.nextHandle++
	return d.nextHandle
}

func (d *Driver) Enable(cap uint32) {
	d.record("Enable")
	d.Enabled = append(d.Enabled, cap)
}

func (d *Driver) Disable(cap uint32) {
	d.record("Disable")
	d.Disabled = append(d.Disabled, cap)
}

func (d *Driver) Clear(mask uint32) {
	d.record("Clear")
	d.ClearMasks = append(d.ClearMasks, mask)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.LastClearColor = [4]float32{r, g, b, a}
}

func (d *Driver) BlendFunc(sfactor, dfactor uint32) {
	d.record("BlendFunc")
	d.LastBlendFunc = [2]uint32{sfactor, dfactor}
}

func (d *Driver) FrontFace(dir uint32) {
	d.record("FrontFace")
	d.LastFrontFace = dir
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("Viewport")
	d.LastViewport = [4]int32{x, y, width, height}
}

func (d *Driver) GetIntegerv(pname uint32, data *int32) {
	d.record("GetIntegerv")
	if pname == gl.MaxTextureImageUnits {
		*data = d.MaxTextureUnits
	}
}

func (d *Driver) GetError() uint32 {
	d.record("GetError")
	if len(d.ErrorQueue) == 0 {
		return gl.NoError
	}
	code := d.ErrorQueue[0]
	d.ErrorQueue = d.ErrorQueue[1:]
	return code
}

func (d *Driver) GetString(name uint32) string {
	d.record("GetString")
	return d.Strings[name]
}

func (d *Driver) GenTextures(n int32, textures *uint32) {
	d.record("GenTextures")
	*textures = d.handle()
}

func (d *Driver) DeleteTextures(n int32, textures *uint32) {
	d.record("DeleteTextures")
	d.DeletedTextures = append(d.DeletedTextures, *textures)
}

func (d *Driver) ActiveTexture(texture uint32) {
	d.record("ActiveTexture")
	d.ActiveUnit = texture - gl.Texture0
}

func (d *Driver) BindTexture(target, texture uint32) {
	d.record("BindTexture")
	d.BoundTextures[target] = texture
}

func (d *Driver) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	d.record("TexImage2D")
	d.Images = append(d.Images, TexImage{Target: target, Width: width, Height: height})
}

func (d *Driver) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	d.record("TexSubImage2D")
	d.Images = append(d.Images, TexImage{
		Target: target,
		X:      xoffset,
		Y:      yoffset,
		Width:  width,
		Height: height,
		Sub:    true,
	})
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.record("TexParameteri")
	d.TexParams = append(d.TexParams, TexParam{Target: target, Pname: pname, Param: param})
}

func (d *Driver) GenerateMipmap(target uint32) { d.record("GenerateMipmap") }

func (d *Driver) GenBuffers(n int32, buffers *uint32) {
	d.record("GenBuffers")
	*buffers = d.handle()
}

func (d *Driver) DeleteBuffers(n int32, buffers *uint32) {
	d.record("DeleteBuffers")
	d.DeletedBuffers = append(d.DeletedBuffers, *buffers)
}

func (d *Driver) BindBuffer(target, buffer uint32) {
	d.record("BindBuffer")
	d.BoundBuffers[target] = buffer
}

func (d *Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	d.record("BufferData")
	d.Uploads = append(d.Uploads, BufferUpload{Target: target, Size: size, Usage: usage})
}

func (d *Driver) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	d.record("BufferSubData")
	d.Writes = append(d.Writes, BufferWrite{Target: target, Offset: offset, Size: size})
}

func (d *Driver) GenVertexArrays(n int32, arrays *uint32) {
	d.record("GenVertexArrays")
	*arrays = d.handle()
}

func (d *Driver) DeleteVertexArrays(n int32, arrays *uint32) {
	d.record("DeleteVertexArrays")
	d.DeletedArrays = append(d.DeletedArrays, *arrays)
}

func (d *Driver) BindVertexArray(array uint32) {
	d.record("BindVertexArray")
	d.BoundArray = array
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray")
	d.EnabledAttribs = append(d.EnabledAttribs, index)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset unsafe.Pointer) {
	d.record("VertexAttribPointer")
	d.Attribs = append(d.Attribs, AttribPointer{
		Index:      index,
		Size:       size,
		Type:       xtype,
		Normalized: normalized,
		Stride:     stride,
		Offset:     uintptr(offset),
	})
}

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	d.record("DrawArrays")
	d.Draws = append(d.Draws, DrawCall{Mode: mode, First: first, Count: count})
}

func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset unsafe.Pointer) {
	d.record("DrawElements")
	d.Draws = append(d.Draws, DrawCall{Mode: mode, Count: count, Type: xtype, Indexed: true})
}

func (d *Driver) CreateShader(xtype uint32) uint32 {
	d.record("CreateShader")
	return d.handle()
}

func (d *Driver) ShaderSource(shader uint32, source string) { d.record("ShaderSource") }

func (d *Driver) CompileShader(shader uint32) { d.record("CompileShader") }

func (d *Driver) GetShaderiv(shader, pname uint32, params *int32) {
	d.record("GetShaderiv")
	if pname == gl.CompileStatus {
		if d.CompileOK {
			*params = gl.True
		} else {
			*params = gl.False
		}
	}
}

func (d *Driver) GetShaderInfoLog(shader uint32) string {
	d.record("GetShaderInfoLog")
	return d.ShaderLog
}

func (d *Driver) DeleteShader(shader uint32) {
	d.record("DeleteShader")
	d.DeletedShaders = append(d.DeletedShaders, shader)
}

func (d *Driver) CreateProgram() uint32 {
	d.record("CreateProgram")
	return d.handle()
}

func (d *Driver) AttachShader(program, shader uint32) { d.record("AttachShader") }

func (d *Driver) LinkProgram(program uint32) { d.record("LinkProgram") }

func (d *Driver) GetProgramiv(program, pname uint32, params *int32) {
	d.record("GetProgramiv")
	if pname == gl.LinkStatus {
		if d.LinkOK {
			*params = gl.True
		} else {
			*params = gl.False
		}
	}
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	d.record("GetProgramInfoLog")
	return d.ProgramLog
}

func (d *Driver) UseProgram(program uint32) {
	d.record("UseProgram")
	d.ActiveProgram = program
}

func (d *Driver) DeleteProgram(program uint32) {
	d.record("DeleteProgram")
	d.DeletedPrograms = append(d.DeletedPrograms, program)
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	d.record("GetUniformLocation")
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	loc := int32(len(d.locations))
	d.locations[name] = loc
	return loc
}

func (d *Driver) Uniform1i(location, v0 int32) {
	d.record("Uniform1i")
	d.Uniforms1i[location] = v0
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.record("Uniform4f")
	d.Uniforms4f[location] = [4]float32{v0, v1, v2, v3}
}

func (d *Driver) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix4fv")
}

func (d *Driver) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	d.record("ReadPixels")
}
