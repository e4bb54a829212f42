package glkit

import (
	"image"
	"image/draw"
	"unsafe"

	"github.com/tinyrange/glkit/gl"
)

// WrapCoord selects which texture coordinate axis a clamp mode applies to.
type WrapCoord int

const (
	WrapS WrapCoord = iota
	WrapT
)

func (c WrapCoord) native() uint32 {
	if c == WrapT {
		return gl.TextureWrapT
	}
	return gl.TextureWrapS
}

// ClampMode controls sampling outside the [0,1] coordinate range.
type ClampMode int

const (
	ClampEdge ClampMode = iota
	ClampRepeat
	ClampRepeatMirrored
)

func (m ClampMode) native() int32 {
	switch m {
	case ClampRepeat:
		return gl.Repeat
	case ClampRepeatMirrored:
		return gl.MirroredRepeat
	}
	return gl.ClampToEdge
}

// MinFilter controls minification sampling. The mipmap variants require the
// texture to have been built with mipmaps.
type MinFilter int

const (
	MinNearest MinFilter = iota
	MinLinear
	MinNearestMipmapNearest
	MinLinearMipmapNearest
	MinNearestMipmapLinear
	MinLinearMipmapLinear
)

func (f MinFilter) native() int32 {
	switch f {
	case MinLinear:
		return gl.Linear
	case MinNearestMipmapNearest:
		return gl.NearestMipmapNearest
	case MinLinearMipmapNearest:
		return gl.LinearMipmapNearest
	case MinNearestMipmapLinear:
		return gl.NearestMipmapLinear
	case MinLinearMipmapLinear:
		return gl.LinearMipmapLinear
	}
	return gl.Nearest
}

func (f MinFilter) needsMipmaps() bool {
	return f >= MinNearestMipmapNearest
}

// MagFilter controls magnification sampling.
type MagFilter int

const (
	MagNearest MagFilter = iota
	MagLinear
)

func (f MagFilter) native() int32 {
	if f == MagLinear {
		return gl.Linear
	}
	return gl.Nearest
}

// Texture is a 2D RGBA8 texture. All parameter changes go through the owning
// context so redundant unit switches and rebinds are elided.
type Texture struct {
	ctx    *Context
	handle uint32

	width   int
	height  int
	mipmaps bool
}

// NewTexture uploads the given RGBA pixel data (4 bytes per texel, row-major)
// into a new texture. The pixel slice length must be exactly width*height*4
// or ErrInvalidTextureDimensions is returned before any driver resource is
// allocated. When mipmaps is true the full chain is generated from the base
// level.
//
// New textures default to edge clamping on both axes and nearest filtering.
func NewTexture(ctx *Context, width, height int, pixels []byte, mipmaps bool) (*Texture, error) {
	if len(pixels) != width*height*4 {
		return nil, ErrInvalidTextureDimensions
	}

	t := &Texture{
		ctx:     ctx,
		width:   width,
		height:  height,
		mipmaps: mipmaps,
	}

	driver := ctx.gl
	driver.GenTextures(1, &t.handle)
	t.Bind(0)

	driver.TexParameteri(gl.Texture2D, gl.TextureWrapS, gl.ClampToEdge)
	driver.TexParameteri(gl.Texture2D, gl.TextureWrapT, gl.ClampToEdge)
	driver.TexParameteri(gl.Texture2D, gl.TextureMinFilter, gl.Nearest)
	driver.TexParameteri(gl.Texture2D, gl.TextureMagFilter, gl.Nearest)

	driver.TexImage2D(
		gl.Texture2D, 0, gl.RGBA,
		int32(width), int32(height), 0,
		gl.RGBA, gl.UnsignedByte,
		unsafe.Pointer(&pixels[0]),
	)

	if mipmaps {
		driver.GenerateMipmap(gl.Texture2D)
	}

	return t, nil
}

// NewEmptyTexture allocates a zero-filled texture, useful as a render target
// or for incremental uploads through Write.
func NewEmptyTexture(ctx *Context, width, height int, mipmaps bool) *Texture {
	pixels := make([]byte, width*height*4)

	// Cannot fail: the buffer length matches by construction.
	t, _ := NewTexture(ctx, width, height, pixels, mipmaps)
	return t
}

// NewTextureFromImage uploads a decoded image, converting to RGBA as needed.
func NewTextureFromImage(ctx *Context, img image.Image, mipmaps bool) (*Texture, error) {
	bounds := img.Bounds()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || !bounds.Min.Eq(image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return NewTexture(ctx, bounds.Dx(), bounds.Dy(), nrgba.Pix, mipmaps)
}

// Bind makes the texture current on the given unit. The context caches the
// active unit and the binding on every unit, so rebinding an already-bound
// texture is a no-op.
func (t *Texture) Bind(unit uint32) {
	t.ctx.bindTexture(unit, t.handle)
}

// Write overwrites a rectangular region of the base level with the given RGBA
// pixel data. The pixel slice length must be exactly width*height*4 or
// ErrInvalidTextureDimensions is returned. Mipmap levels are not regenerated.
func (t *Texture) Write(x, y, width, height int, pixels []byte) error {
	if len(pixels) != width*height*4 {
		return ErrInvalidTextureDimensions
	}

	t.Bind(0)
	t.ctx.gl.TexSubImage2D(
		gl.Texture2D, 0,
		int32(x), int32(y), int32(width), int32(height),
		gl.RGBA, gl.UnsignedByte,
		unsafe.Pointer(&pixels[0]),
	)
	return nil
}

// SetClamp sets the clamp mode for one coordinate axis.
func (t *Texture) SetClamp(coord WrapCoord, mode ClampMode) {
	t.Bind(0)
	t.ctx.gl.TexParameteri(gl.Texture2D, coord.native(), mode.native())
}

// SetMinFilter sets the minification filter. Requesting a mipmap-dependent
// filter on a texture built without mipmaps returns ErrNoMipmaps and leaves
// the previous filter in place.
func (t *Texture) SetMinFilter(filter MinFilter) error {
	if filter.needsMipmaps() && !t.mipmaps {
		return ErrNoMipmaps
	}

	t.Bind(0)
	t.ctx.gl.TexParameteri(gl.Texture2D, gl.TextureMinFilter, filter.native())
	return nil
}

// SetMagFilter sets the magnification filter.
func (t *Texture) SetMagFilter(filter MagFilter) {
	t.Bind(0)
	t.ctx.gl.TexParameteri(gl.Texture2D, gl.TextureMagFilter, filter.native())
}

// Width returns the base-level width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the base-level height in texels.
func (t *Texture) Height() int { return t.height }

// Handle returns the native texture handle.
func (t *Texture) Handle() uint32 { return t.handle }

// Release deletes the texture and drops it from the context's unit table. The
// texture must not be used afterwards.
func (t *Texture) Release() {
	t.ctx.gl.DeleteTextures(1, &t.handle)
	t.ctx.forgetTexture(t.handle)
	t.handle = 0
}
