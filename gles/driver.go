package gles

import "errors"

// Driver errors.
var (
	// ErrNotCurrent is returned by driver constructors when no native
	// context is current on the calling thread.
	ErrNotCurrent = errors.New("gles: no current GL context")
)

// Driver is the function table for one native OpenGL context, reduced
// to the fixed-function (ES 1.x profile) entry points the video
// background pipeline uses.
//
// A Driver is bound to exactly one native context and must only be
// called while that context is current on the calling thread. Drivers
// perform no locking; the host serializes access the same way it
// serializes the underlying context.
//
// Buffer-taking calls accept Go slices instead of raw pointers. A nil
// pixels slice in TexImage2D allocates storage without defining its
// content, matching GL semantics.
type Driver interface {
	// GetString returns a driver description string (VERSION,
	// EXTENSIONS, ...).
	GetString(name uint32) string

	// GetIntegerv fills dst with the value of pname. dst must be at
	// least as long as the GL state requires (4 for VIEWPORT, 1 for
	// scalar states).
	GetIntegerv(pname uint32, dst []int32)

	// GetTexEnviv fills dst with a texture environment parameter of
	// the active texture unit.
	GetTexEnviv(target, pname uint32, dst []int32)

	// IsEnabled reports whether a server-side capability is enabled.
	IsEnabled(capability uint32) bool

	Enable(capability uint32)
	Disable(capability uint32)

	// GenTexture creates one texture object name.
	GenTexture() uint32

	// DeleteTexture releases one texture object name.
	DeleteTexture(tex uint32)

	ActiveTexture(unit uint32)
	ClientActiveTexture(unit uint32)
	BindTexture(target, tex uint32)
	TexParameteri(target, pname uint32, param int32)
	TexEnvi(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)

	TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels []byte)
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte)

	MatrixMode(mode uint32)
	PushMatrix()
	PopMatrix()
	LoadIdentity()

	// LoadMatrixf replaces the current matrix with m, in GL
	// column-major order.
	LoadMatrixf(m *[16]float32)

	EnableClientState(array uint32)
	DisableClientState(array uint32)

	// VertexPointer and TexCoordPointer set float client arrays for
	// the next DrawArrays call. The slice must stay valid until the
	// draw is submitted.
	VertexPointer(size, stride int32, data []float32)
	TexCoordPointer(size, stride int32, data []float32)

	DrawArrays(mode uint32, first, count int32)
}
