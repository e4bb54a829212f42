package glkit

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/tinyrange/glkit/gl"
)

func TestNewTextureRejectsBadDimensions(t *testing.T) {
	ctx, driver := newTestContext(t)

	_, err := NewTexture(ctx, 2, 2, make([]byte, 3), false)
	if !errors.Is(err, ErrInvalidTextureDimensions) {
		t.Fatalf("NewTexture error = %v, want ErrInvalidTextureDimensions", err)
	}
	// Validation happens before any driver resource is allocated.
	if got := driver.Count("GenTextures"); got != 0 {
		t.Errorf("GenTextures calls = %d, want 0", got)
	}
}

func TestNewTextureDefaults(t *testing.T) {
	ctx, driver := newTestContext(t)

	tex, err := NewTexture(ctx, 2, 2, make([]byte, 2*2*4), false)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2", tex.Width(), tex.Height())
	}

	// Edge clamping on both axes, nearest filtering in both directions.
	want := []struct{ pname, param int32 }{
		{gl.TextureWrapS, gl.ClampToEdge},
		{gl.TextureWrapT, gl.ClampToEdge},
		{gl.TextureMinFilter, gl.Nearest},
		{gl.TextureMagFilter, gl.Nearest},
	}
	if len(driver.TexParams) != len(want) {
		t.Fatalf("TexParameteri calls = %d, want %d", len(driver.TexParams), len(want))
	}
	for i, w := range want {
		got := driver.TexParams[i]
		if got.Pname != uint32(w.pname) || got.Param != w.param {
			t.Errorf("param %d = %+v, want pname %#04x param %#04x", i, got, w.pname, w.param)
		}
	}

	if len(driver.Images) != 1 || driver.Images[0].Sub {
		t.Fatalf("images = %+v, want one full upload", driver.Images)
	}
	if got := driver.Count("GenerateMipmap"); got != 0 {
		t.Errorf("GenerateMipmap calls = %d, want 0", got)
	}
}

func TestNewTextureWithMipmaps(t *testing.T) {
	ctx, driver := newTestContext(t)

	tex, err := NewTexture(ctx, 4, 4, make([]byte, 4*4*4), true)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	if got := driver.Count("GenerateMipmap"); got != 1 {
		t.Errorf("GenerateMipmap calls = %d, want 1", got)
	}

	if err := tex.SetMinFilter(MinLinearMipmapLinear); err != nil {
		t.Fatalf("SetMinFilter() = %v", err)
	}
	last := driver.TexParams[len(driver.TexParams)-1]
	if last.Pname != gl.TextureMinFilter || last.Param != gl.LinearMipmapLinear {
		t.Errorf("min filter param = %+v", last)
	}
}

func TestSetMinFilterWithoutMipmaps(t *testing.T) {
	ctx, driver := newTestContext(t)

	tex, err := NewTexture(ctx, 2, 2, make([]byte, 2*2*4), false)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	params := len(driver.TexParams)

	if err := tex.SetMinFilter(MinNearestMipmapLinear); !errors.Is(err, ErrNoMipmaps) {
		t.Fatalf("SetMinFilter error = %v, want ErrNoMipmaps", err)
	}
	// The previous filter stays in effect: no driver call was made.
	if len(driver.TexParams) != params {
		t.Errorf("TexParameteri calls = %d, want %d", len(driver.TexParams), params)
	}

	// Non-mipmap filters still work.
	if err := tex.SetMinFilter(MinLinear); err != nil {
		t.Fatalf("SetMinFilter(MinLinear) = %v", err)
	}
}

func TestBindIsCachedPerUnit(t *testing.T) {
	ctx, driver := newTestContext(t)

	tex, err := NewTexture(ctx, 2, 2, make([]byte, 2*2*4), false)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}

	binds := driver.Count("BindTexture")
	tex.Bind(0) // already bound there by construction
	if got := driver.Count("BindTexture"); got != binds {
		t.Errorf("BindTexture calls after redundant bind = %d, want %d", got, binds)
	}

	active := driver.Count("ActiveTexture")
	tex.Bind(1)
	if got := driver.Count("ActiveTexture"); got != active+1 {
		t.Errorf("ActiveTexture calls = %d, want %d", got, active+1)
	}
	if got := driver.Count("BindTexture"); got != binds+1 {
		t.Errorf("BindTexture calls = %d, want %d", got, binds+1)
	}

	// Rebinding on the now-active unit is free.
	tex.Bind(1)
	if got := driver.Count("BindTexture"); got != binds+1 {
		t.Errorf("BindTexture calls after second bind = %d, want %d", got, binds+1)
	}
}

func TestWriteSubImage(t *testing.T) {
	ctx, driver := newTestContext(t)

	tex, err := NewTexture(ctx, 4, 4, make([]byte, 4*4*4), false)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}

	if err := tex.Write(1, 2, 2, 1, make([]byte, 2*1*4)); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	last := driver.Images[len(driver.Images)-1]
	if !last.Sub || last.X != 1 || last.Y != 2 || last.Width != 2 || last.Height != 1 {
		t.Errorf("sub image = %+v", last)
	}

	if err := tex.Write(0, 0, 2, 2, make([]byte, 3)); !errors.Is(err, ErrInvalidTextureDimensions) {
		t.Errorf("Write with bad buffer = %v, want ErrInvalidTextureDimensions", err)
	}
}

func TestNewTextureFromImage(t *testing.T) {
	ctx, driver := newTestContext(t)

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	tex, err := NewTextureFromImage(ctx, img, false)
	if err != nil {
		t.Fatalf("NewTextureFromImage() = %v", err)
	}
	if tex.Width() != 3 || tex.Height() != 2 {
		t.Errorf("dimensions = %dx%d, want 3x2", tex.Width(), tex.Height())
	}
	if driver.Images[0].Width != 3 || driver.Images[0].Height != 2 {
		t.Errorf("uploaded image = %+v", driver.Images[0])
	}
}

func TestReleaseForgetsBinding(t *testing.T) {
	ctx, driver := newTestContext(t)

	tex, err := NewTexture(ctx, 2, 2, make([]byte, 2*2*4), false)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	handle := tex.Handle()

	tex.Release()
	if len(driver.DeletedTextures) != 1 || driver.DeletedTextures[0] != handle {
		t.Fatalf("deleted textures = %v, want [%d]", driver.DeletedTextures, handle)
	}

	// A new texture reusing the slot must be re-bound, not skipped.
	binds := driver.Count("BindTexture")
	if _, err := NewTexture(ctx, 2, 2, make([]byte, 2*2*4), false); err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	if got := driver.Count("BindTexture"); got != binds+1 {
		t.Errorf("BindTexture calls = %d, want %d", got, binds+1)
	}
}
