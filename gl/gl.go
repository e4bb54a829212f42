// Package gl is the driver binding used by glkit: an interface over the
// OpenGL entry points the toolkit issues, loaded once per process by mapping
// symbol names to function pointers.
//
// Load resolves the binding for the current platform. All methods operate on
// whichever GL context is current for the calling thread; the binding itself
// holds no state beyond the resolved function pointers.
package gl

import "unsafe"

// Server-side capabilities (Enable/Disable).
const (
	Blend                  = 0x0BE2
	ColorLogicOp           = 0x0BF2
	CullFace               = 0x0B44
	DepthClamp             = 0x864F
	DepthTest              = 0x0B71
	Dither                 = 0x0BD0
	FramebufferSRGB        = 0x8DB9
	LineSmooth             = 0x0B20
	Multisample            = 0x809D
	PolygonOffsetFill      = 0x8037
	PolygonOffsetLine      = 0x2A02
	PolygonOffsetPoint     = 0x2A01
	PolygonSmooth          = 0x0B41
	RasterizerDiscard      = 0x8C89
	SampleAlphaToCoverage  = 0x809E
	SampleAlphaToOne       = 0x809F
	SampleCoverage         = 0x80A0
	SampleShading          = 0x8C36
	SampleMask             = 0x8E51
	ScissorTest            = 0x0C11
	StencilTest            = 0x0B90
	TextureCubeMapSeamless = 0x884F
	ProgramPointSize       = 0x8642
)

// Front-face winding orders.
const (
	CW  = 0x0900
	CCW = 0x0901
)

// Blend factors.
const (
	Zero                  = 0x0000
	One                   = 0x0001
	SrcColor              = 0x0300
	OneMinusSrcColor      = 0x0301
	SrcAlpha              = 0x0302
	OneMinusSrcAlpha      = 0x0303
	DstAlpha              = 0x0304
	OneMinusDstAlpha      = 0x0305
	DstColor              = 0x0306
	OneMinusDstColor      = 0x0307
	SrcAlphaSaturate      = 0x0308
	ConstantColor         = 0x8001
	OneMinusConstantColor = 0x8002
	ConstantAlpha         = 0x8003
	OneMinusConstantAlpha = 0x8004
)

// Clear masks.
const (
	DepthBufferBit   = 0x00000100
	StencilBufferBit = 0x00000400
	ColorBufferBit   = 0x00004000
)

// Buffer targets and usage hints.
const (
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893

	StreamDraw  = 0x88E0
	StreamRead  = 0x88E1
	StreamCopy  = 0x88E2
	StaticDraw  = 0x88E4
	StaticRead  = 0x88E5
	StaticCopy  = 0x88E6
	DynamicDraw = 0x88E8
	DynamicRead = 0x88E9
	DynamicCopy = 0x88EA
)

// Primitive topologies.
const (
	Points        = 0x0000
	TriangleStrip = 0x0005
	TriangleFan   = 0x0006
	Triangles     = 0x0004
)

// Element kinds for vertex attributes and index data.
const (
	Byte          = 0x1400
	UnsignedByte  = 0x1401
	Short         = 0x1402
	UnsignedShort = 0x1403
	Int           = 0x1404
	UnsignedInt   = 0x1405
	Float         = 0x1406
	Double        = 0x140A
	HalfFloat     = 0x140B
	Fixed         = 0x140C
)

// Texture targets, parameters and formats.
const (
	Texture1D = 0x0DE0
	Texture2D = 0x0DE1
	Texture3D = 0x806F

	TextureMagFilter = 0x2800
	TextureMinFilter = 0x2801
	TextureWrapS     = 0x2802
	TextureWrapT     = 0x2803

	Nearest              = 0x2600
	Linear               = 0x2601
	NearestMipmapNearest = 0x2700
	LinearMipmapNearest  = 0x2701
	NearestMipmapLinear  = 0x2702
	LinearMipmapLinear   = 0x2703

	ClampToEdge    = 0x812F
	Repeat         = 0x2901
	MirroredRepeat = 0x8370

	RGBA = 0x1908

	// Texture0 is the first texture unit; unit n is Texture0 + n.
	Texture0 = 0x84C0

	MaxTextureImageUnits = 0x8872
)

// Shader stages and query parameters.
const (
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	GeometryShader = 0x8DD9

	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84

	True  = 1
	False = 0
)

// Error codes returned by GetError.
const (
	NoError                     = 0x0000
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	StackOverflow               = 0x0503
	StackUnderflow              = 0x0504
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
)

// GetString names.
const (
	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02
)

// OpenGL describes the subset of OpenGL entry points used by glkit.
//
// Implementations are produced by Load (real driver) or constructed by tests.
// The binding is not safe for concurrent use; glkit serializes access.
type OpenGL interface {
	// Global state.
	Enable(cap uint32)
	Disable(cap uint32)
	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	BlendFunc(sfactor, dfactor uint32)
	FrontFace(dir uint32)
	Viewport(x, y, width, height int32)
	GetIntegerv(pname uint32, data *int32)
	GetError() uint32
	GetString(name uint32) string

	// Textures.
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	ActiveTexture(texture uint32)
	BindTexture(target, texture uint32)
	TexImage2D(
		target uint32,
		level int32,
		internalformat int32,
		width int32,
		height int32,
		border int32,
		format uint32,
		xtype uint32,
		pixels unsafe.Pointer,
	)
	TexSubImage2D(
		target uint32,
		level int32,
		xoffset int32,
		yoffset int32,
		width int32,
		height int32,
		format uint32,
		xtype uint32,
		pixels unsafe.Pointer,
	)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)

	// Buffers and vertex arrays.
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset unsafe.Pointer)

	// Draw calls.
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset unsafe.Pointer)

	// Shaders and programs.
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v0 int32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location, count int32, transpose bool, value *float32)

	// Framebuffer readback.
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}
