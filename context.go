package glkit

import (
	"sync"

	"github.com/tinyrange/glkit/gl"
)

// Feature is a server-side driver capability toggled with Context.Enable and
// Context.Disable.
type Feature int

const (
	FeatureBlend Feature = iota
	FeatureColorLogicOp
	FeatureCullFace
	FeatureDepthClamp
	FeatureDepthTest
	FeatureDither
	FeatureFramebufferSRGB
	FeatureLineSmooth
	FeatureMultisample
	FeaturePolygonOffsetFill
	FeaturePolygonOffsetLine
	FeaturePolygonOffsetPoint
	FeaturePolygonSmooth
	FeatureRasterizerDiscard
	FeatureSampleAlphaToCoverage
	FeatureSampleAlphaToOne
	FeatureSampleCoverage
	FeatureSampleShading
	FeatureSampleMask
	FeatureScissorTest
	FeatureStencilTest
	FeatureTextureCubeMapSeamless
	FeatureProgramPointSize
)

func (f Feature) native() uint32 {
	switch f {
	case FeatureBlend:
		return gl.Blend
	case FeatureColorLogicOp:
		return gl.ColorLogicOp
	case FeatureCullFace:
		return gl.CullFace
	case FeatureDepthClamp:
		return gl.DepthClamp
	case FeatureDepthTest:
		return gl.DepthTest
	case FeatureDither:
		return gl.Dither
	case FeatureFramebufferSRGB:
		return gl.FramebufferSRGB
	case FeatureLineSmooth:
		return gl.LineSmooth
	case FeatureMultisample:
		return gl.Multisample
	case FeaturePolygonOffsetFill:
		return gl.PolygonOffsetFill
	case FeaturePolygonOffsetLine:
		return gl.PolygonOffsetLine
	case FeaturePolygonOffsetPoint:
		return gl.PolygonOffsetPoint
	case FeaturePolygonSmooth:
		return gl.PolygonSmooth
	case FeatureRasterizerDiscard:
		return gl.RasterizerDiscard
	case FeatureSampleAlphaToCoverage:
		return gl.SampleAlphaToCoverage
	case FeatureSampleAlphaToOne:
		return gl.SampleAlphaToOne
	case FeatureSampleCoverage:
		return gl.SampleCoverage
	case FeatureSampleShading:
		return gl.SampleShading
	case FeatureSampleMask:
		return gl.SampleMask
	case FeatureScissorTest:
		return gl.ScissorTest
	case FeatureStencilTest:
		return gl.StencilTest
	case FeatureTextureCubeMapSeamless:
		return gl.TextureCubeMapSeamless
	case FeatureProgramPointSize:
		return gl.ProgramPointSize
	}
	return 0
}

// FrontFace selects which triangle winding order is considered front-facing.
type FrontFace int

const (
	Clockwise FrontFace = iota
	CounterClockwise
)

func (f FrontFace) native() uint32 {
	if f == Clockwise {
		return gl.CW
	}
	return gl.CCW
}

// BlendComponent is one factor of the blend equation.
type BlendComponent int

const (
	BlendZero BlendComponent = iota
	BlendOne
	BlendSrcColor
	BlendDstColor
	BlendSrcAlpha
	BlendDstAlpha
	BlendConstColor
	BlendConstAlpha
	BlendSrcAlphaSaturate
	BlendOneMinusSrcColor
	BlendOneMinusDstColor
	BlendOneMinusSrcAlpha
	BlendOneMinusDstAlpha
	BlendOneMinusConstColor
	BlendOneMinusConstAlpha
)

func (b BlendComponent) native() uint32 {
	switch b {
	case BlendZero:
		return gl.Zero
	case BlendOne:
		return gl.One
	case BlendSrcColor:
		return gl.SrcColor
	case BlendDstColor:
		return gl.DstColor
	case BlendSrcAlpha:
		return gl.SrcAlpha
	case BlendDstAlpha:
		return gl.DstAlpha
	case BlendConstColor:
		return gl.ConstantColor
	case BlendConstAlpha:
		return gl.ConstantAlpha
	case BlendSrcAlphaSaturate:
		return gl.SrcAlphaSaturate
	case BlendOneMinusSrcColor:
		return gl.OneMinusSrcColor
	case BlendOneMinusDstColor:
		return gl.OneMinusDstColor
	case BlendOneMinusSrcAlpha:
		return gl.OneMinusSrcAlpha
	case BlendOneMinusDstAlpha:
		return gl.OneMinusDstAlpha
	case BlendOneMinusConstColor:
		return gl.OneMinusConstantColor
	case BlendOneMinusConstAlpha:
		return gl.OneMinusConstantAlpha
	}
	return 0
}

// ClearFlag selects which buffers Context.Clear resets. Flags combine with
// bitwise OR.
type ClearFlag uint32

const (
	ClearColorBuffer   = ClearFlag(gl.ColorBufferBit)
	ClearDepthBuffer   = ClearFlag(gl.DepthBufferBit)
	ClearStencilBuffer = ClearFlag(gl.StencilBufferBit)
)

// Viewport is the cached viewport rectangle.
type Viewport struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Context mirrors the driver's global state in user space so redundant
// state-change calls can be elided. Every piece of global driver state must be
// mutated through the owning Context: a caller issuing raw driver calls
// invalidates the cache. This is a caller contract the Context cannot
// enforce.
//
// All operations serialize on one internal mutex, which also serializes the
// underlying driver calls; the binding itself is not thread-safe.
type Context struct {
	mu sync.Mutex
	gl gl.OpenGL

	initialized bool
	front       FrontFace
	blendSrc    BlendComponent
	blendDst    BlendComponent
	clearColor  Color
	viewport    Viewport
	features    map[Feature]struct{}

	// Texture unit table and active program, sized/reset by Init.
	activeUnit    uint32
	units         []uint32
	activeProgram uint32
}

// New builds a Context over the given driver binding with the driver's
// default state: counter-clockwise front faces, standard alpha blending,
// transparent black clear color and a zero viewport. Call Init before issuing
// any other operation.
func New(driver gl.OpenGL) *Context {
	return &Context{
		gl:       driver,
		front:    CounterClockwise,
		blendSrc: BlendSrcAlpha,
		blendDst: BlendOneMinusSrcAlpha,
		features: make(map[Feature]struct{}),
	}
}

// Init pushes the default state to the driver and sizes the texture unit
// table. It must be called exactly once per Context; a second call returns
// ErrAlreadyInitialized.
func (c *Context) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return ErrAlreadyInitialized
	}
	c.initialized = true

	c.gl.FrontFace(gl.CCW)
	c.gl.Viewport(0, 0, 0, 0)
	c.gl.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)

	var count int32
	c.gl.GetIntegerv(gl.MaxTextureImageUnits, &count)
	for i := int32(0); i < count; i++ {
		c.gl.ActiveTexture(gl.Texture0 + uint32(i))
		c.gl.BindTexture(gl.Texture1D, 0)
		c.gl.BindTexture(gl.Texture2D, 0)
		c.gl.BindTexture(gl.Texture3D, 0)
	}
	c.gl.ActiveTexture(gl.Texture0)

	c.activeUnit = 0
	c.units = make([]uint32, count)
	return nil
}

// Enable turns a capability on. It reports whether the capability was newly
// enabled; when it was already on, no driver call is made.
func (c *Context) Enable(f Feature) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.features[f]; ok {
		return false
	}
	c.features[f] = struct{}{}
	c.gl.Enable(f.native())
	return true
}

// Disable turns a capability off. It reports whether the capability was
// previously enabled; when it was already off, no driver call is made.
func (c *Context) Disable(f Feature) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.features[f]; !ok {
		return false
	}
	delete(c.features, f)
	c.gl.Disable(f.native())
	return true
}

// IsEnabled reports whether the capability is on according to the cache.
func (c *Context) IsEnabled(f Feature) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.features[f]
	return ok
}

// Clear resets the selected buffers. Clearing has no steady state to
// deduplicate, so the call is always forwarded.
func (c *Context) Clear(flags ClearFlag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gl.Clear(uint32(flags))
}

// SetClearColor sets the color used by Clear. The comparison against the
// cached value happens in normalized float space even though the cache stores
// bytes: two colors that quantize to the same byte quad are treated as equal.
func (c *Context) SetClearColor(r, g, b, a float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cr := float32(c.clearColor.R) / 255.0
	cg := float32(c.clearColor.G) / 255.0
	cb := float32(c.clearColor.B) / 255.0
	ca := float32(c.clearColor.A) / 255.0
	if cr == r && cg == g && cb == b && ca == a {
		return
	}

	c.gl.ClearColor(r, g, b, a)
	c.clearColor = Color{
		R: uint8(r * 255.0),
		G: uint8(g * 255.0),
		B: uint8(b * 255.0),
		A: uint8(a * 255.0),
	}
}

// ClearColor returns the cached clear color.
func (c *Context) ClearColor() Color {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.clearColor
}

// SetFrontFace sets the front-facing winding order.
func (c *Context) SetFrontFace(f FrontFace) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.front == f {
		return
	}
	c.gl.FrontFace(f.native())
	c.front = f
}

// FrontFace returns the cached winding order.
func (c *Context) FrontFace() FrontFace {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.front
}

// SetBlendFunc sets the source and destination blend factors.
func (c *Context) SetBlendFunc(src, dst BlendComponent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blendSrc == src && c.blendDst == dst {
		return
	}
	c.gl.BlendFunc(src.native(), dst.native())
	c.blendSrc = src
	c.blendDst = dst
}

// BlendFunc returns the cached blend factors.
func (c *Context) BlendFunc() (src, dst BlendComponent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blendSrc, c.blendDst
}

// SetViewport sets the viewport rectangle.
func (c *Context) SetViewport(x, y, width, height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := Viewport{X: x, Y: y, Width: width, Height: height}
	if c.viewport == v {
		return
	}
	c.gl.Viewport(int32(x), int32(y), int32(width), int32(height))
	c.viewport = v
}

// Viewport returns the cached viewport rectangle.
func (c *Context) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.viewport
}

// Err polls the driver's last-error slot. The toolkit never polls it on its
// own; callers needing strict error checking do so explicitly.
func (c *Context) Err() GLError {
	c.mu.Lock()
	defer c.mu.Unlock()

	return GLError(c.gl.GetError())
}

// bindProgram makes the program active, skipping the driver call when it
// already is.
func (c *Context) bindProgram(handle uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeProgram == handle {
		return
	}
	c.gl.UseProgram(handle)
	c.activeProgram = handle
}

// bindTexture activates the unit and binds the 2D texture there, skipping
// whichever of the two driver calls the cache shows as redundant.
func (c *Context) bindTexture(unit, handle uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeUnit != unit {
		c.gl.ActiveTexture(gl.Texture0 + unit)
		c.activeUnit = unit
	}
	if int(unit) < len(c.units) && c.units[unit] == handle {
		return
	}
	c.gl.BindTexture(gl.Texture2D, handle)
	if int(unit) < len(c.units) {
		c.units[unit] = handle
	}
}

// forgetTexture clears unit-table entries for a deleted texture. The driver
// unbinds deleted textures from the current context itself, so the cache has
// to follow.
func (c *Context) forgetTexture(handle uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, bound := range c.units {
		if bound == handle {
			c.units[i] = 0
		}
	}
}
