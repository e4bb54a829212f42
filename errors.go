package glkit

import (
	"errors"
	"fmt"

	"github.com/tinyrange/glkit/gl"
)

// Errors returned by constructors and setters. Driver-level failures beyond
// these (invalid enum, out of memory, ...) are only observable through
// Context.Err.
var (
	// ErrAlreadyInitialized is returned when Context.Init is called twice.
	ErrAlreadyInitialized = errors.New("glkit: context already initialized")

	// ErrInvalidTextureDimensions is returned when a pixel buffer's length
	// does not match width*height*4.
	ErrInvalidTextureDimensions = errors.New("glkit: pixel buffer does not match texture dimensions")

	// ErrNoMipmaps is returned when a mipmap-dependent minification filter is
	// requested on a texture built without mipmaps.
	ErrNoMipmaps = errors.New("glkit: texture has no mipmaps")
)

// maxLogBytes caps the driver diagnostic text carried by compile/link errors.
const maxLogBytes = 511

// CompileError reports a failed shader stage compilation. Log holds up to 511
// bytes of the driver's diagnostic output.
type CompileError struct {
	Kind StageKind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glkit: compile %s stage: %s", e.Kind, e.Log)
}

// LinkError reports a failed program link. Log holds up to 511 bytes of the
// driver's diagnostic output.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("glkit: link program: %s", e.Log)
}

func truncateLog(log string) string {
	if len(log) > maxLogBytes {
		return log[:maxLogBytes]
	}
	return log
}

// GLError is a driver error code as reported by glGetError.
type GLError uint32

const (
	GLNoError                     = GLError(gl.NoError)
	GLInvalidEnum                 = GLError(gl.InvalidEnum)
	GLInvalidValue                = GLError(gl.InvalidValue)
	GLInvalidOperation            = GLError(gl.InvalidOperation)
	GLInvalidFramebufferOperation = GLError(gl.InvalidFramebufferOperation)
	GLOutOfMemory                 = GLError(gl.OutOfMemory)
	GLStackUnderflow              = GLError(gl.StackUnderflow)
	GLStackOverflow               = GLError(gl.StackOverflow)
)

func (e GLError) String() string {
	switch e {
	case GLNoError:
		return "no error"
	case GLInvalidEnum:
		return "invalid enum"
	case GLInvalidValue:
		return "invalid value"
	case GLInvalidOperation:
		return "invalid operation"
	case GLInvalidFramebufferOperation:
		return "invalid framebuffer operation"
	case GLOutOfMemory:
		return "out of memory"
	case GLStackUnderflow:
		return "stack underflow"
	case GLStackOverflow:
		return "stack overflow"
	default:
		return fmt.Sprintf("unknown error %#04x", uint32(e))
	}
}
