package glkit

// Color is a packed RGBA value with one byte per channel. Its layout matches
// a normalized ubyte4 vertex attribute, so it can be embedded directly in
// vertex types.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// White is the default color: fully opaque white.
var White = Color{255, 255, 255, 255}

// NewColor builds a color from its four channels.
func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}
