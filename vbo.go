package glkit

import (
	"unsafe"

	"github.com/tinyrange/glkit/gl"
)

// BufferMode is the usage hint passed to the driver when buffer storage is
// allocated.
type BufferMode int

const (
	StaticDraw BufferMode = iota
	StaticRead
	StaticCopy
	DynamicDraw
	DynamicRead
	DynamicCopy
	StreamDraw
	StreamRead
	StreamCopy
)

func (m BufferMode) native() uint32 {
	switch m {
	case StaticDraw:
		return gl.StaticDraw
	case StaticRead:
		return gl.StaticRead
	case StaticCopy:
		return gl.StaticCopy
	case DynamicDraw:
		return gl.DynamicDraw
	case DynamicRead:
		return gl.DynamicRead
	case DynamicCopy:
		return gl.DynamicCopy
	case StreamDraw:
		return gl.StreamDraw
	case StreamRead:
		return gl.StreamRead
	case StreamCopy:
		return gl.StreamCopy
	}
	return 0
}

// PrimitiveKind is the topology drawn by VBO.Draw.
type PrimitiveKind int

const (
	Points PrimitiveKind = iota
	Triangles
	TriangleFan
	TriangleStrip
)

func (k PrimitiveKind) native() uint32 {
	switch k {
	case Points:
		return gl.Points
	case Triangles:
		return gl.Triangles
	case TriangleFan:
		return gl.TriangleFan
	case TriangleStrip:
		return gl.TriangleStrip
	}
	return 0
}

// VBO owns GPU-side vertex storage, an optional 16-bit index store and the
// vertex array describing the attribute layout. The vertex data itself is not
// retained after upload; only counts and handles are.
type VBO struct {
	ctx *Context

	vao    uint32
	buffer uint32
	index  uint32

	kind        PrimitiveKind
	mode        BufferMode
	stride      int
	vertexCount int
	indexCount  int
}

// NewVBO uploads the vertices (and indices, when non-nil) into freshly
// allocated GPU buffers and records the attribute layout of V in a vertex
// array.
//
// The vertex slice must be non-empty; an empty slice is a caller bug and
// panics. Index values are not validated against the vertex count.
func NewVBO[V Vertex](ctx *Context, mode BufferMode, kind PrimitiveKind, vertices []V, indices []uint16) *VBO {
	if len(vertices) == 0 {
		panic("glkit: NewVBO requires at least one vertex")
	}

	b := &VBO{
		ctx:         ctx,
		kind:        kind,
		mode:        mode,
		stride:      int(unsafe.Sizeof(vertices[0])),
		vertexCount: len(vertices),
	}

	ctx.gl.GenVertexArrays(1, &b.vao)
	ctx.gl.BindVertexArray(b.vao)

	b.buffer = buildVertexBuffer(b, vertices)
	if indices != nil {
		b.index = b.buildIndexBuffer(indices)
		b.indexCount = len(indices)
	}

	ctx.gl.BindVertexArray(0)
	return b
}

// buildVertexBuffer is a free function because methods cannot carry type
// parameters.
func buildVertexBuffer[V Vertex](b *VBO, vertices []V) uint32 {
	driver := b.ctx.gl
	total := len(vertices) * b.stride

	var buffer uint32
	driver.GenBuffers(1, &buffer)
	driver.BindBuffer(gl.ArrayBuffer, buffer)
	driver.BufferData(gl.ArrayBuffer, total, unsafe.Pointer(&vertices[0]), b.mode.native())

	offset := 0
	for i, attr := range vertices[0].Attributes() {
		driver.EnableVertexAttribArray(uint32(i))
		driver.VertexAttribPointer(
			uint32(i),
			int32(attr.Components),
			attr.Kind.native(),
			attr.Normalized,
			int32(b.stride),
			unsafe.Pointer(uintptr(offset)),
		)
		offset += attr.Components * attr.Kind.Size()
	}
	return buffer
}

func (b *VBO) buildIndexBuffer(indices []uint16) uint32 {
	driver := b.ctx.gl

	var buffer uint32
	driver.GenBuffers(1, &buffer)
	driver.BindBuffer(gl.ElementArrayBuffer, buffer)
	driver.BufferData(gl.ElementArrayBuffer, len(indices)*2, unsafe.Pointer(&indices[0]), b.mode.native())
	return buffer
}

// Draw issues one draw call covering the whole buffer: indexed over all
// indices when an index store exists, otherwise non-indexed over all
// vertices. Partial ranges are not supported.
func (b *VBO) Draw() {
	driver := b.ctx.gl
	driver.BindVertexArray(b.vao)

	if b.indexCount > 0 {
		driver.DrawElements(b.kind.native(), int32(b.indexCount), gl.UnsignedShort, nil)
	} else {
		driver.DrawArrays(b.kind.native(), 0, int32(b.vertexCount))
	}

	driver.BindVertexArray(0)
}

// VertexCount returns the number of vertices uploaded at construction.
func (b *VBO) VertexCount() int { return b.vertexCount }

// IndexCount returns the number of indices uploaded at construction, zero
// when the VBO is non-indexed.
func (b *VBO) IndexCount() int { return b.indexCount }

// WriteVertices overwrites vertices starting at the given element offset
// without reallocating. The caller must not exceed the original allocation
// and must use the same vertex type the buffer was built with; neither is
// checked.
func WriteVertices[V Vertex](b *VBO, offset int, vertices []V) {
	if len(vertices) == 0 {
		return
	}
	driver := b.ctx.gl
	size := len(vertices) * b.stride

	driver.BindVertexArray(b.vao)
	driver.BindBuffer(gl.ArrayBuffer, b.buffer)
	driver.BufferSubData(gl.ArrayBuffer, offset*b.stride, size, unsafe.Pointer(&vertices[0]))
	driver.BindVertexArray(0)
}

// WriteIndices overwrites indices starting at the given element offset
// without reallocating. The caller must not exceed the original allocation;
// this is not checked.
func (b *VBO) WriteIndices(offset int, indices []uint16) {
	if len(indices) == 0 {
		return
	}
	driver := b.ctx.gl

	driver.BindVertexArray(b.vao)
	driver.BindBuffer(gl.ElementArrayBuffer, b.index)
	driver.BufferSubData(gl.ElementArrayBuffer, offset*2, len(indices)*2, unsafe.Pointer(&indices[0]))
	driver.BindVertexArray(0)
}

// Release deletes the vertex array and both underlying buffers. The VBO must
// not be used afterwards.
func (b *VBO) Release() {
	driver := b.ctx.gl

	driver.DeleteVertexArrays(1, &b.vao)
	driver.DeleteBuffers(1, &b.buffer)
	if b.index != 0 {
		driver.DeleteBuffers(1, &b.index)
	}
	b.vao = 0
	b.buffer = 0
	b.index = 0
}
