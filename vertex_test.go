package glkit

import (
	"testing"
	"unsafe"

	"github.com/tinyrange/glkit/gl"
)

func TestAttributeKindSize(t *testing.T) {
	tests := []struct {
		kind AttributeKind
		want int
	}{
		{AttrByte, 1},
		{AttrUnsignedByte, 1},
		{AttrShort, 2},
		{AttrUnsignedShort, 2},
		{AttrHalf, 2},
		{AttrInt, 4},
		{AttrUnsignedInt, 4},
		{AttrFloat, 4},
		{AttrFixed, 4},
		{AttrDouble, 8},
	}

	for _, tt := range tests {
		if got := tt.kind.Size(); got != tt.want {
			t.Errorf("kind %d Size() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestBuiltinVerticesArePacked(t *testing.T) {
	tests := []struct {
		name string
		size uintptr
	}{
		{"BasicVertex", unsafe.Sizeof(BasicVertex{})},
		{"ColorVertex", unsafe.Sizeof(ColorVertex{})},
		{"TextureVertex", unsafe.Sizeof(TextureVertex{})},
	}
	wants := []uintptr{12, 16, 20}

	for i, tt := range tests {
		if tt.size != wants[i] {
			t.Errorf("%s size = %d, want %d", tt.name, tt.size, wants[i])
		}
	}
}

// The attribute walk must produce offsets that match the packed struct
// layout: the color field of ColorVertex sits right after the 12-byte
// position.
func TestColorVertexLayout(t *testing.T) {
	ctx, driver := newTestContext(t)

	vertices := []ColorVertex{
		NewColorVertex(0, 0, 0, 255, 255, 255, 255),
	}
	NewVBO(ctx, StaticDraw, Triangles, vertices, nil)

	if len(driver.Attribs) != 2 {
		t.Fatalf("attribute count = %d, want 2", len(driver.Attribs))
	}

	pos := driver.Attribs[0]
	if pos.Index != 0 || pos.Size != 3 || pos.Type != gl.Float || pos.Normalized || pos.Offset != 0 {
		t.Errorf("position attribute = %+v", pos)
	}
	if pos.Stride != 16 {
		t.Errorf("position stride = %d, want 16", pos.Stride)
	}

	color := driver.Attribs[1]
	if color.Index != 1 || color.Size != 4 || color.Type != gl.UnsignedByte || !color.Normalized {
		t.Errorf("color attribute = %+v", color)
	}
	if color.Offset != 12 {
		t.Errorf("color offset = %d, want 12", color.Offset)
	}
	if color.Stride != 16 {
		t.Errorf("color stride = %d, want 16", color.Stride)
	}

	if len(driver.EnabledAttribs) != 2 || driver.EnabledAttribs[0] != 0 || driver.EnabledAttribs[1] != 1 {
		t.Errorf("enabled attribute slots = %v, want [0 1]", driver.EnabledAttribs)
	}
}

func TestTextureVertexLayout(t *testing.T) {
	ctx, driver := newTestContext(t)

	vertices := []TextureVertex{
		NewTextureVertex(0, 0, 0, 0, 0),
	}
	NewVBO(ctx, StaticDraw, Triangles, vertices, nil)

	if len(driver.Attribs) != 2 {
		t.Fatalf("attribute count = %d, want 2", len(driver.Attribs))
	}
	coord := driver.Attribs[1]
	if coord.Size != 2 || coord.Type != gl.Float || coord.Normalized {
		t.Errorf("coord attribute = %+v", coord)
	}
	if coord.Offset != 12 || coord.Stride != 20 {
		t.Errorf("coord offset/stride = %d/%d, want 12/20", coord.Offset, coord.Stride)
	}
}
