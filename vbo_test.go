package glkit

import (
	"testing"

	"github.com/tinyrange/glkit/gl"
)

func quadVertices() []ColorVertex {
	return []ColorVertex{
		NewColorVertex(1, 1, 0, 255, 0, 0, 255),
		NewColorVertex(-1, 1, 0, 0, 255, 0, 255),
		NewColorVertex(-1, -1, 0, 0, 0, 255, 255),
		NewColorVertex(1, -1, 0, 0, 0, 0, 255),
	}
}

func TestNewVBOPanicsOnEmptyVertices(t *testing.T) {
	ctx, _ := newTestContext(t)

	defer func() {
		if recover() == nil {
			t.Fatal("NewVBO with no vertices did not panic")
		}
	}()
	NewVBO(ctx, StaticDraw, Triangles, []ColorVertex(nil), nil)
}

func TestNewVBOUploads(t *testing.T) {
	ctx, driver := newTestContext(t)

	indices := []uint16{0, 1, 2, 0, 2, 3}
	vbo := NewVBO(ctx, StaticDraw, Triangles, quadVertices(), indices)

	if got := vbo.VertexCount(); got != 4 {
		t.Errorf("VertexCount() = %d, want 4", got)
	}
	if got := vbo.IndexCount(); got != 6 {
		t.Errorf("IndexCount() = %d, want 6", got)
	}

	if len(driver.Uploads) != 2 {
		t.Fatalf("upload count = %d, want 2", len(driver.Uploads))
	}
	vert := driver.Uploads[0]
	if vert.Target != gl.ArrayBuffer || vert.Size != 4*16 || vert.Usage != gl.StaticDraw {
		t.Errorf("vertex upload = %+v", vert)
	}
	idx := driver.Uploads[1]
	if idx.Target != gl.ElementArrayBuffer || idx.Size != 6*2 {
		t.Errorf("index upload = %+v", idx)
	}

	// The vertex array is unbound once building finishes.
	if driver.BoundArray != 0 {
		t.Errorf("bound vertex array after build = %d, want 0", driver.BoundArray)
	}
}

func TestDrawIndexed(t *testing.T) {
	ctx, driver := newTestContext(t)

	indices := []uint16{0, 1, 2, 0, 2, 3}
	vbo := NewVBO(ctx, StaticDraw, Triangles, quadVertices(), indices)
	vbo.Draw()

	if len(driver.Draws) != 1 {
		t.Fatalf("draw count = %d, want 1", len(driver.Draws))
	}
	draw := driver.Draws[0]
	if !draw.Indexed {
		t.Fatal("draw was not indexed")
	}
	if draw.Count != 6 {
		t.Errorf("indexed draw count = %d, want 6", draw.Count)
	}
	if draw.Mode != gl.Triangles || draw.Type != gl.UnsignedShort {
		t.Errorf("draw mode/type = %#04x/%#04x", draw.Mode, draw.Type)
	}
}

func TestDrawNonIndexed(t *testing.T) {
	ctx, driver := newTestContext(t)

	vbo := NewVBO(ctx, StaticDraw, TriangleFan, quadVertices(), nil)
	vbo.Draw()

	if len(driver.Draws) != 1 {
		t.Fatalf("draw count = %d, want 1", len(driver.Draws))
	}
	draw := driver.Draws[0]
	if draw.Indexed {
		t.Fatal("draw was indexed for a VBO without indices")
	}
	if draw.Count != 4 {
		t.Errorf("draw count = %d, want 4", draw.Count)
	}
	if draw.Mode != gl.TriangleFan {
		t.Errorf("draw mode = %#04x, want triangle fan", draw.Mode)
	}
}

func TestWriteVertices(t *testing.T) {
	ctx, driver := newTestContext(t)

	vbo := NewVBO(ctx, DynamicDraw, Triangles, quadVertices(), nil)
	WriteVertices(vbo, 2, quadVertices()[:2])

	if len(driver.Writes) != 1 {
		t.Fatalf("write count = %d, want 1", len(driver.Writes))
	}
	w := driver.Writes[0]
	if w.Target != gl.ArrayBuffer {
		t.Errorf("write target = %#04x, want array buffer", w.Target)
	}
	// Element offsets scale by the 16-byte stride.
	if w.Offset != 32 || w.Size != 32 {
		t.Errorf("write offset/size = %d/%d, want 32/32", w.Offset, w.Size)
	}

	// An empty write never reaches the driver.
	WriteVertices(vbo, 0, []ColorVertex(nil))
	if len(driver.Writes) != 1 {
		t.Errorf("write count after empty write = %d, want 1", len(driver.Writes))
	}
}

func TestWriteIndices(t *testing.T) {
	ctx, driver := newTestContext(t)

	vbo := NewVBO(ctx, DynamicDraw, Triangles, quadVertices(), []uint16{0, 1, 2, 0, 2, 3})
	vbo.WriteIndices(3, []uint16{1, 2, 3})

	if len(driver.Writes) != 1 {
		t.Fatalf("write count = %d, want 1", len(driver.Writes))
	}
	w := driver.Writes[0]
	if w.Target != gl.ElementArrayBuffer {
		t.Errorf("write target = %#04x, want element array buffer", w.Target)
	}
	if w.Offset != 6 || w.Size != 6 {
		t.Errorf("write offset/size = %d/%d, want 6/6", w.Offset, w.Size)
	}
}

func TestReleaseDeletesAllHandles(t *testing.T) {
	ctx, driver := newTestContext(t)

	vbo := NewVBO(ctx, StaticDraw, Triangles, quadVertices(), []uint16{0, 1, 2})
	vbo.Release()

	if len(driver.DeletedArrays) != 1 {
		t.Errorf("deleted vertex arrays = %d, want 1", len(driver.DeletedArrays))
	}
	if len(driver.DeletedBuffers) != 2 {
		t.Errorf("deleted buffers = %d, want 2 (vertex and index)", len(driver.DeletedBuffers))
	}
}

func TestReleaseWithoutIndexBuffer(t *testing.T) {
	ctx, driver := newTestContext(t)

	vbo := NewVBO(ctx, StaticDraw, Triangles, quadVertices(), nil)
	vbo.Release()

	if len(driver.DeletedBuffers) != 1 {
		t.Errorf("deleted buffers = %d, want 1", len(driver.DeletedBuffers))
	}
}
