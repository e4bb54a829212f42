package window

import "github.com/tinyrange/glkit/gl"

// Window is a native window with an OpenGL 3.3 core context already current
// on the calling thread.
type Window interface {
	// GL loads the OpenGL bindings for the context owned by this window.
	GL() (gl.OpenGL, error)

	// Poll pumps pending native events. It returns false once the window has
	// been closed.
	Poll() bool

	// Events drains the input events collected since the previous call.
	Events() []Event

	// Swap presents the back buffer.
	Swap()

	// BackingSize returns the drawable size in pixels, which on high-DPI
	// displays differs from the logical window size.
	BackingSize() (width, height int)

	// Close tears down the context and the window.
	Close()
}
