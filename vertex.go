package glkit

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glkit/gl"
)

// AttributeKind is the element type of one vertex attribute.
type AttributeKind int

const (
	AttrByte AttributeKind = iota
	AttrShort
	AttrInt
	AttrUnsignedByte
	AttrUnsignedShort
	AttrUnsignedInt
	AttrHalf
	AttrFloat
	AttrDouble
	AttrFixed
)

func (k AttributeKind) native() uint32 {
	switch k {
	case AttrByte:
		return gl.Byte
	case AttrShort:
		return gl.Short
	case AttrInt:
		return gl.Int
	case AttrUnsignedByte:
		return gl.UnsignedByte
	case AttrUnsignedShort:
		return gl.UnsignedShort
	case AttrUnsignedInt:
		return gl.UnsignedInt
	case AttrHalf:
		return gl.HalfFloat
	case AttrFloat:
		return gl.Float
	case AttrDouble:
		return gl.Double
	case AttrFixed:
		return gl.Fixed
	}
	return 0
}

// Size returns the element's width in bytes.
func (k AttributeKind) Size() int {
	switch k {
	case AttrByte, AttrUnsignedByte:
		return 1
	case AttrShort, AttrUnsignedShort, AttrHalf:
		return 2
	case AttrInt, AttrUnsignedInt, AttrFloat, AttrFixed:
		return 4
	case AttrDouble:
		return 8
	}
	return 0
}

// Attribute describes one field of a vertex layout.
type Attribute struct {
	Normalized bool
	Components int
	Kind       AttributeKind
}

// Vertex is implemented by types that can be uploaded into a vertex buffer.
// The returned attribute list is ordered: the first attribute is binding slot
// 0, the second slot 1, and so on, and the order must match the order the
// fields are laid out in memory. Offsets are accumulated from component
// counts and element sizes, so the implementing struct must be packed — no
// padding between fields. The type's zero value is its default vertex.
type Vertex interface {
	Attributes() []Attribute
}

// BasicVertex carries only a position.
type BasicVertex struct {
	Pos mgl32.Vec3
}

// NewBasicVertex builds a vertex at the given position.
func NewBasicVertex(x, y, z float32) BasicVertex {
	return BasicVertex{Pos: mgl32.Vec3{x, y, z}}
}

func (BasicVertex) Attributes() []Attribute {
	return []Attribute{
		{Normalized: false, Components: 3, Kind: AttrFloat},
	}
}

// ColorVertex carries a position and a per-vertex color. The color bytes are
// normalized to [0,1] in the shader.
type ColorVertex struct {
	Pos   mgl32.Vec3
	Color Color
}

// NewColorVertex builds a colored vertex from position and channel values.
func NewColorVertex(x, y, z float32, r, g, b, a uint8) ColorVertex {
	return ColorVertex{
		Pos:   mgl32.Vec3{x, y, z},
		Color: Color{R: r, G: g, B: b, A: a},
	}
}

// NewColorVertexFromParts builds a colored vertex from existing values.
func NewColorVertexFromParts(pos mgl32.Vec3, color Color) ColorVertex {
	return ColorVertex{Pos: pos, Color: color}
}

func (ColorVertex) Attributes() []Attribute {
	return []Attribute{
		{Normalized: false, Components: 3, Kind: AttrFloat},
		{Normalized: true, Components: 4, Kind: AttrUnsignedByte},
	}
}

// TextureVertex carries a position and a 2D texture coordinate.
type TextureVertex struct {
	Pos   mgl32.Vec3
	Coord mgl32.Vec2
}

// NewTextureVertex builds a textured vertex from position and coordinate
// values.
func NewTextureVertex(x, y, z, u, v float32) TextureVertex {
	return TextureVertex{
		Pos:   mgl32.Vec3{x, y, z},
		Coord: mgl32.Vec2{u, v},
	}
}

// NewTextureVertexFromParts builds a textured vertex from existing values.
func NewTextureVertexFromParts(pos mgl32.Vec3, coord mgl32.Vec2) TextureVertex {
	return TextureVertex{Pos: pos, Coord: coord}
}

func (TextureVertex) Attributes() []Attribute {
	return []Attribute{
		{Normalized: false, Components: 3, Kind: AttrFloat},
		{Normalized: false, Components: 2, Kind: AttrFloat},
	}
}
