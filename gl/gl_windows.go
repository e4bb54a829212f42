//go:build windows

package gl

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

// On Windows opengl32.dll only exports the 1.1 entry points; everything newer
// has to be resolved through wglGetProcAddress, which requires a current GL
// context. Load must therefore be called after the context is made current.
type openGL struct {
	enable      func(uint32)
	disable     func(uint32)
	clear       func(uint32)
	clearColor  func(float32, float32, float32, float32)
	blendFunc   func(uint32, uint32)
	frontFace   func(uint32)
	viewport    func(int32, int32, int32, int32)
	getIntegerv func(uint32, *int32)
	getError    func() uint32
	getString   func(uint32) *byte

	genTextures    func(int32, *uint32)
	deleteTextures func(int32, *uint32)
	activeTexture  func(uint32)
	bindTexture    func(uint32, uint32)
	texImage2D     func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	texSubImage2D  func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	texParameteri  func(uint32, uint32, int32)
	generateMipmap func(uint32)

	genBuffers              func(int32, *uint32)
	deleteBuffers           func(int32, *uint32)
	bindBuffer              func(uint32, uint32)
	bufferData              func(uint32, int, unsafe.Pointer, uint32)
	bufferSubData           func(uint32, int, int, unsafe.Pointer)
	genVertexArrays         func(int32, *uint32)
	deleteVertexArrays      func(int32, *uint32)
	bindVertexArray         func(uint32)
	enableVertexAttribArray func(uint32)
	vertexAttribPointer     func(uint32, int32, uint32, bool, int32, unsafe.Pointer)

	drawArrays   func(uint32, int32, int32)
	drawElements func(uint32, int32, uint32, unsafe.Pointer)

	createShader       func(uint32) uint32
	shaderSource       func(uint32, int32, **byte, *int32)
	compileShader      func(uint32)
	getShaderiv        func(uint32, uint32, *int32)
	getShaderInfoLog   func(uint32, int32, *int32, *byte)
	deleteShader       func(uint32)
	createProgram      func() uint32
	attachShader       func(uint32, uint32)
	linkProgram        func(uint32)
	getProgramiv       func(uint32, uint32, *int32)
	getProgramInfoLog  func(uint32, int32, *int32, *byte)
	useProgram         func(uint32)
	deleteProgram      func(uint32)
	getUniformLocation func(uint32, *byte) int32
	uniform1i          func(int32, int32)
	uniform4f          func(int32, float32, float32, float32, float32)
	uniformMatrix4fv   func(int32, int32, bool, *float32)

	readPixels func(int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
}

func (gl *openGL) Enable(cap uint32)  { gl.enable(cap) }
func (gl *openGL) Disable(cap uint32) { gl.disable(cap) }
func (gl *openGL) Clear(mask uint32)  { gl.clear(mask) }

func (gl *openGL) ClearColor(r, g, b, a float32) { gl.clearColor(r, g, b, a) }

func (gl *openGL) BlendFunc(sfactor, dfactor uint32) { gl.blendFunc(sfactor, dfactor) }

func (gl *openGL) FrontFace(dir uint32) { gl.frontFace(dir) }

func (gl *openGL) Viewport(x, y, width, height int32) { gl.viewport(x, y, width, height) }

func (gl *openGL) GetIntegerv(pname uint32, data *int32) { gl.getIntegerv(pname, data) }

func (gl *openGL) GetError() uint32 { return gl.getError() }

func (gl *openGL) GetString(name uint32) string {
	return gostring(gl.getString(name))
}

func (gl *openGL) GenTextures(n int32, textures *uint32) { gl.genTextures(n, textures) }

func (gl *openGL) DeleteTextures(n int32, textures *uint32) { gl.deleteTextures(n, textures) }

func (gl *openGL) ActiveTexture(texture uint32) { gl.activeTexture(texture) }

func (gl *openGL) BindTexture(target, texture uint32) { gl.bindTexture(target, texture) }

func (gl *openGL) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.texImage2D(target, level, internalformat, width, height, border, format, xtype, pixels)
}

func (gl *openGL) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.texSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, pixels)
}

func (gl *openGL) TexParameteri(target, pname uint32, param int32) {
	gl.texParameteri(target, pname, param)
}

func (gl *openGL) GenerateMipmap(target uint32) { gl.generateMipmap(target) }

func (gl *openGL) GenBuffers(n int32, buffers *uint32) { gl.genBuffers(n, buffers) }

func (gl *openGL) DeleteBuffers(n int32, buffers *uint32) { gl.deleteBuffers(n, buffers) }

func (gl *openGL) BindBuffer(target, buffer uint32) { gl.bindBuffer(target, buffer) }

func (gl *openGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.bufferData(target, size, data, usage)
}

func (gl *openGL) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	gl.bufferSubData(target, offset, size, data)
}

func (gl *openGL) GenVertexArrays(n int32, arrays *uint32) { gl.genVertexArrays(n, arrays) }

func (gl *openGL) DeleteVertexArrays(n int32, arrays *uint32) { gl.deleteVertexArrays(n, arrays) }

func (gl *openGL) BindVertexArray(array uint32) { gl.bindVertexArray(array) }

func (gl *openGL) EnableVertexAttribArray(index uint32) { gl.enableVertexAttribArray(index) }

func (gl *openGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset unsafe.Pointer) {
	gl.vertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (gl *openGL) DrawArrays(mode uint32, first, count int32) { gl.drawArrays(mode, first, count) }

func (gl *openGL) DrawElements(mode uint32, count int32, xtype uint32, offset unsafe.Pointer) {
	gl.drawElements(mode, count, xtype, offset)
}

func (gl *openGL) CreateShader(xtype uint32) uint32 { return gl.createShader(xtype) }

func (gl *openGL) ShaderSource(shader uint32, source string) {
	srcBytes := []byte(source)
	srcPtr := &srcBytes[0]
	length := int32(len(source))
	gl.shaderSource(shader, 1, &srcPtr, &length)
}

func (gl *openGL) CompileShader(shader uint32) { gl.compileShader(shader) }

func (gl *openGL) GetShaderiv(shader, pname uint32, params *int32) {
	gl.getShaderiv(shader, pname, params)
}

func (gl *openGL) GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.getShaderiv(shader, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.getShaderInfoLog(shader, length, &length, &log[0])
	return string(log[:length])
}

func (gl *openGL) DeleteShader(shader uint32) { gl.deleteShader(shader) }

func (gl *openGL) CreateProgram() uint32 { return gl.createProgram() }

func (gl *openGL) AttachShader(program, shader uint32) { gl.attachShader(program, shader) }

func (gl *openGL) LinkProgram(program uint32) { gl.linkProgram(program) }

func (gl *openGL) GetProgramiv(program, pname uint32, params *int32) {
	gl.getProgramiv(program, pname, params)
}

func (gl *openGL) GetProgramInfoLog(program uint32) string {
	var length int32
	gl.getProgramiv(program, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.getProgramInfoLog(program, length, &length, &log[0])
	return string(log[:length])
}

func (gl *openGL) UseProgram(program uint32) { gl.useProgram(program) }

func (gl *openGL) DeleteProgram(program uint32) { gl.deleteProgram(program) }

func (gl *openGL) GetUniformLocation(program uint32, name string) int32 {
	nameBytes := append([]byte(name), 0)
	return gl.getUniformLocation(program, &nameBytes[0])
}

func (gl *openGL) Uniform1i(location, v0 int32) { gl.uniform1i(location, v0) }

func (gl *openGL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.uniform4f(location, v0, v1, v2, v3)
}

func (gl *openGL) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	gl.uniformMatrix4fv(location, count, transpose, value)
}

func (gl *openGL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.readPixels(x, y, width, height, format, xtype, pixels)
}

type resolver struct {
	module            windows.Handle
	wglGetProcAddress uintptr
	err               error
}

// resolve registers dst against the named entry point, trying the DLL export
// table first and wglGetProcAddress second. wglGetProcAddress returns a small
// sentinel for unsupported symbols; treat those as missing.
func (r *resolver) resolve(dst interface{}, name string) {
	if r.err != nil {
		return
	}
	if addr, err := windows.GetProcAddress(r.module, name); err == nil && addr != 0 {
		purego.RegisterFunc(dst, addr)
		return
	}

	nameBytes := append([]byte(name), 0)
	addr, _, _ := purego.SyscallN(r.wglGetProcAddress, uintptr(unsafe.Pointer(&nameBytes[0])))
	switch addr {
	case 0, 1, 2, 3, ^uintptr(0):
		r.err = fmt.Errorf("gl: missing entry point %q", name)
	default:
		purego.RegisterFunc(dst, addr)
	}
}

func Load() (OpenGL, error) {
	module, err := windows.LoadLibrary("opengl32.dll")
	if err != nil {
		return nil, fmt.Errorf("gl: load opengl32.dll: %w", err)
	}
	wgl, err := windows.GetProcAddress(module, "wglGetProcAddress")
	if err != nil {
		return nil, fmt.Errorf("gl: resolve wglGetProcAddress: %w", err)
	}
	r := &resolver{module: module, wglGetProcAddress: wgl}

	gl := &openGL{}
	r.resolve(&gl.enable, "glEnable")
	r.resolve(&gl.disable, "glDisable")
	r.resolve(&gl.clear, "glClear")
	r.resolve(&gl.clearColor, "glClearColor")
	r.resolve(&gl.blendFunc, "glBlendFunc")
	r.resolve(&gl.frontFace, "glFrontFace")
	r.resolve(&gl.viewport, "glViewport")
	r.resolve(&gl.getIntegerv, "glGetIntegerv")
	r.resolve(&gl.getError, "glGetError")
	r.resolve(&gl.getString, "glGetString")

	r.resolve(&gl.genTextures, "glGenTextures")
	r.resolve(&gl.deleteTextures, "glDeleteTextures")
	r.resolve(&gl.activeTexture, "glActiveTexture")
	r.resolve(&gl.bindTexture, "glBindTexture")
	r.resolve(&gl.texImage2D, "glTexImage2D")
	r.resolve(&gl.texSubImage2D, "glTexSubImage2D")
	r.resolve(&gl.texParameteri, "glTexParameteri")
	r.resolve(&gl.generateMipmap, "glGenerateMipmap")

	r.resolve(&gl.genBuffers, "glGenBuffers")
	r.resolve(&gl.deleteBuffers, "glDeleteBuffers")
	r.resolve(&gl.bindBuffer, "glBindBuffer")
	r.resolve(&gl.bufferData, "glBufferData")
	r.resolve(&gl.bufferSubData, "glBufferSubData")
	r.resolve(&gl.genVertexArrays, "glGenVertexArrays")
	r.resolve(&gl.deleteVertexArrays, "glDeleteVertexArrays")
	r.resolve(&gl.bindVertexArray, "glBindVertexArray")
	r.resolve(&gl.enableVertexAttribArray, "glEnableVertexAttribArray")
	r.resolve(&gl.vertexAttribPointer, "glVertexAttribPointer")

	r.resolve(&gl.drawArrays, "glDrawArrays")
	r.resolve(&gl.drawElements, "glDrawElements")

	r.resolve(&gl.createShader, "glCreateShader")
	r.resolve(&gl.shaderSource, "glShaderSource")
	r.resolve(&gl.compileShader, "glCompileShader")
	r.resolve(&gl.getShaderiv, "glGetShaderiv")
	r.resolve(&gl.getShaderInfoLog, "glGetShaderInfoLog")
	r.resolve(&gl.deleteShader, "glDeleteShader")
	r.resolve(&gl.createProgram, "glCreateProgram")
	r.resolve(&gl.attachShader, "glAttachShader")
	r.resolve(&gl.linkProgram, "glLinkProgram")
	r.resolve(&gl.getProgramiv, "glGetProgramiv")
	r.resolve(&gl.getProgramInfoLog, "glGetProgramInfoLog")
	r.resolve(&gl.useProgram, "glUseProgram")
	r.resolve(&gl.deleteProgram, "glDeleteProgram")
	r.resolve(&gl.getUniformLocation, "glGetUniformLocation")
	r.resolve(&gl.uniform1i, "glUniform1i")
	r.resolve(&gl.uniform4f, "glUniform4f")
	r.resolve(&gl.uniformMatrix4fv, "glUniformMatrix4fv")

	r.resolve(&gl.readPixels, "glReadPixels")
	if r.err != nil {
		return nil, r.err
	}
	return gl, nil
}
