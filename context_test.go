package glkit

import (
	"errors"
	"testing"

	"github.com/tinyrange/glkit/gl"
	"github.com/tinyrange/glkit/gl/gltest"
)

func newTestContext(t *testing.T) (*Context, *gltest.Driver) {
	t.Helper()

	driver := gltest.New()
	ctx := New(driver)
	if err := ctx.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	return ctx, driver
}

func TestInitOnce(t *testing.T) {
	driver := gltest.New()
	ctx := New(driver)

	if err := ctx.Init(); err != nil {
		t.Fatalf("first Init() = %v", err)
	}
	if err := ctx.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second Init() = %v, want ErrAlreadyInitialized", err)
	}
}

func TestInitResetsTextureUnits(t *testing.T) {
	driver := gltest.New()
	driver.MaxTextureUnits = 4

	ctx := New(driver)
	if err := ctx.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}

	// One ActiveTexture per unit plus the final switch back to unit 0.
	if got := driver.Count("ActiveTexture"); got != 5 {
		t.Errorf("ActiveTexture calls = %d, want 5", got)
	}
	// 1D, 2D and 3D targets unbound on every unit.
	if got := driver.Count("BindTexture"); got != 12 {
		t.Errorf("BindTexture calls = %d, want 12", got)
	}
	if driver.ActiveUnit != 0 {
		t.Errorf("active unit after Init = %d, want 0", driver.ActiveUnit)
	}
}

func TestEnableIsIdempotent(t *testing.T) {
	ctx, driver := newTestContext(t)

	if !ctx.Enable(FeatureBlend) {
		t.Error("first Enable(FeatureBlend) = false, want true")
	}
	if ctx.Enable(FeatureBlend) {
		t.Error("second Enable(FeatureBlend) = true, want false")
	}
	if got := driver.Count("Enable"); got != 1 {
		t.Errorf("Enable driver calls = %d, want 1", got)
	}
	if !ctx.IsEnabled(FeatureBlend) {
		t.Error("IsEnabled(FeatureBlend) = false after Enable")
	}

	if !ctx.Disable(FeatureBlend) {
		t.Error("first Disable(FeatureBlend) = false, want true")
	}
	if ctx.Disable(FeatureBlend) {
		t.Error("second Disable(FeatureBlend) = true, want false")
	}
	if got := driver.Count("Disable"); got != 1 {
		t.Errorf("Disable driver calls = %d, want 1", got)
	}
}

func TestEnableTranslatesFeatures(t *testing.T) {
	tests := []struct {
		feature Feature
		want    uint32
	}{
		{FeatureBlend, gl.Blend},
		{FeatureCullFace, gl.CullFace},
		{FeatureDepthTest, gl.DepthTest},
		{FeatureScissorTest, gl.ScissorTest},
		{FeatureProgramPointSize, gl.ProgramPointSize},
	}

	ctx, driver := newTestContext(t)
	for _, tt := range tests {
		ctx.Enable(tt.feature)
	}
	for i, tt := range tests {
		if driver.Enabled[i] != tt.want {
			t.Errorf("feature %d enabled as %#04x, want %#04x", tt.feature, driver.Enabled[i], tt.want)
		}
	}
}

func TestClearAlwaysForwards(t *testing.T) {
	ctx, driver := newTestContext(t)

	ctx.Clear(ClearColorBuffer | ClearDepthBuffer)
	ctx.Clear(ClearColorBuffer | ClearDepthBuffer)

	if got := driver.Count("Clear"); got != 2 {
		t.Fatalf("Clear driver calls = %d, want 2", got)
	}
	want := uint32(gl.ColorBufferBit | gl.DepthBufferBit)
	if driver.ClearMasks[0] != want {
		t.Errorf("clear mask = %#x, want %#x", driver.ClearMasks[0], want)
	}
}

func TestSetClearColorCaches(t *testing.T) {
	ctx, driver := newTestContext(t)

	ctx.SetClearColor(0.2, 0.3, 0.3, 1.0)
	if got := driver.Count("ClearColor"); got != 1 {
		t.Fatalf("ClearColor driver calls = %d, want 1", got)
	}
	if driver.LastClearColor != [4]float32{0.2, 0.3, 0.3, 1.0} {
		t.Errorf("driver clear color = %v", driver.LastClearColor)
	}

	// The cache stores quantized bytes; the round-tripped color must agree
	// with what was set to within one byte step.
	got := ctx.ClearColor()
	for i, want := range []float32{0.2, 0.3, 0.3, 1.0} {
		have := float32([4]uint8{got.R, got.G, got.B, got.A}[i]) / 255.0
		if diff := have - want; diff > 1.0/255.0 || diff < -1.0/255.0 {
			t.Errorf("channel %d round-trip = %v, want within 1/255 of %v", i, have, want)
		}
	}

	// Setting the exact quantized values again must not reach the driver.
	ctx.SetClearColor(
		float32(got.R)/255.0,
		float32(got.G)/255.0,
		float32(got.B)/255.0,
		float32(got.A)/255.0,
	)
	if got := driver.Count("ClearColor"); got != 1 {
		t.Errorf("ClearColor driver calls after repeat = %d, want 1", got)
	}
}

func TestSetViewportCaches(t *testing.T) {
	ctx, driver := newTestContext(t)
	base := driver.Count("Viewport")

	ctx.SetViewport(0, 0, 640, 480)
	ctx.SetViewport(0, 0, 640, 480)
	if got := driver.Count("Viewport") - base; got != 1 {
		t.Fatalf("Viewport driver calls = %d, want 1", got)
	}
	if driver.LastViewport != [4]int32{0, 0, 640, 480} {
		t.Errorf("driver viewport = %v", driver.LastViewport)
	}

	// A change to any single component must reach the driver.
	ctx.SetViewport(0, 0, 640, 272)
	if got := driver.Count("Viewport") - base; got != 2 {
		t.Errorf("Viewport driver calls after resize = %d, want 2", got)
	}
	if got := ctx.Viewport(); got != (Viewport{Width: 640, Height: 272}) {
		t.Errorf("cached viewport = %+v", got)
	}
}

func TestSetBlendFuncCaches(t *testing.T) {
	ctx, driver := newTestContext(t)
	base := driver.Count("BlendFunc")

	// Standard alpha blending is the initial state.
	ctx.SetBlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	if got := driver.Count("BlendFunc") - base; got != 0 {
		t.Fatalf("BlendFunc driver calls for default pair = %d, want 0", got)
	}

	ctx.SetBlendFunc(BlendOne, BlendOneMinusDstAlpha)
	if got := driver.Count("BlendFunc") - base; got != 1 {
		t.Fatalf("BlendFunc driver calls = %d, want 1", got)
	}
	if driver.LastBlendFunc != [2]uint32{gl.One, gl.OneMinusDstAlpha} {
		t.Errorf("driver blend func = %#04x", driver.LastBlendFunc)
	}

	src, dst := ctx.BlendFunc()
	if src != BlendOne || dst != BlendOneMinusDstAlpha {
		t.Errorf("cached blend func = %d, %d", src, dst)
	}
}

func TestSetFrontFaceCaches(t *testing.T) {
	ctx, driver := newTestContext(t)
	base := driver.Count("FrontFace")

	ctx.SetFrontFace(CounterClockwise)
	if got := driver.Count("FrontFace") - base; got != 0 {
		t.Fatalf("FrontFace driver calls for default = %d, want 0", got)
	}

	ctx.SetFrontFace(Clockwise)
	if got := driver.Count("FrontFace") - base; got != 1 {
		t.Fatalf("FrontFace driver calls = %d, want 1", got)
	}
	if driver.LastFrontFace != gl.CW {
		t.Errorf("driver front face = %#04x, want %#04x", driver.LastFrontFace, gl.CW)
	}
	if ctx.FrontFace() != Clockwise {
		t.Errorf("cached front face = %d, want Clockwise", ctx.FrontFace())
	}
}

func TestErrPollsDriver(t *testing.T) {
	ctx, driver := newTestContext(t)
	driver.ErrorQueue = []uint32{gl.InvalidEnum, gl.OutOfMemory}

	if got := ctx.Err(); got != GLInvalidEnum {
		t.Errorf("first Err() = %v, want invalid enum", got)
	}
	if got := ctx.Err(); got != GLOutOfMemory {
		t.Errorf("second Err() = %v, want out of memory", got)
	}
	if got := ctx.Err(); got != GLNoError {
		t.Errorf("drained Err() = %v, want no error", got)
	}
}
