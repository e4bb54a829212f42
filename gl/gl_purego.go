//go:build linux || darwin

package gl

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// openGL binds the OpenGL 3.3 core entry points through purego-registered
// function pointers. Linux and macOS share this shape; only the library the
// symbols are resolved from differs.
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

func registerAll(handle uintptr) *openGL {
	register := func(dst interface{}, name string) {
		purego.RegisterLibFunc(dst, handle, name)
	}

	gl := &openGL{}
	register(&gl.enable, "glEnable")
	register(&gl.disable, "glDisable")
	register(&gl.clear, "glClear")
	register(&gl.clearColor, "glClearColor")
	register(&gl.blendFunc, "glBlendFunc")
	register(&gl.frontFace, "glFrontFace")
	register(&gl.viewport, "glViewport")
	register(&gl.getIntegerv, "glGetIntegerv")
	register(&gl.getError, "glGetError")
	register(&gl.getString, "glGetString")

	register(&gl.genTextures, "glGenTextures")
	register(&gl.deleteTextures, "glDeleteTextures")
	register(&gl.activeTexture, "glActiveTexture")
	register(&gl.bindTexture, "glBindTexture")
	register(&gl.texImage2D, "glTexImage2D")
	register(&gl.texSubImage2D, "glTexSubImage2D")
	register(&gl.texParameteri, "glTexParameteri")
	register(&gl.generateMipmap, "glGenerateMipmap")

	register(&gl.genBuffers, "glGenBuffers")
	register(&gl.deleteBuffers, "glDeleteBuffers")
	register(&gl.bindBuffer, "glBindBuffer")
	register(&gl.bufferData, "glBufferData")
	register(&gl.bufferSubData, "glBufferSubData")
	register(&gl.genVertexArrays, "glGenVertexArrays")
	register(&gl.deleteVertexArrays, "glDeleteVertexArrays")
	register(&gl.bindVertexArray, "glBindVertexArray")
	register(&gl.enableVertexAttribArray, "glEnableVertexAttribArray")
	register(&gl.vertexAttribPointer, "glVertexAttribPointer")

	register(&gl.drawArrays, "glDrawArrays")
	register(&gl.drawElements, "glDrawElements")

	register(&gl.createShader, "glCreateShader")
	register(&gl.shaderSource, "glShaderSource")
	register(&gl.compileShader, "glCompileShader")
	register(&gl.getShaderiv, "glGetShaderiv")
	register(&gl.getShaderInfoLog, "glGetShaderInfoLog")
	register(&gl.deleteShader, "glDeleteShader")
	register(&gl.createProgram, "glCreateProgram")
	register(&gl.attachShader, "glAttachShader")
	register(&gl.linkProgram, "glLinkProgram")
	register(&gl.getProgramiv, "glGetProgramiv")
	register(&gl.getProgramInfoLog, "glGetProgramInfoLog")
	register(&gl.useProgram, "glUseProgram")
	register(&gl.deleteProgram, "glDeleteProgram")
	register(&gl.getUniformLocation, "glGetUniformLocation")
	register(&gl.uniform1i, "glUniform1i")
	register(&gl.uniform4f, "glUniform4f")
	register(&gl.uniformMatrix4fv, "glUniformMatrix4fv")

	register(&gl.readPixels, "glReadPixels")
	return gl
}
