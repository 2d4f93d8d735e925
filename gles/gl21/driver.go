package gl21

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/arvideo/argl/gles"
)

// Driver forwards the gles.Driver surface to the go-gl 2.1 binding.
// Stateless itself; all state lives in the native context.
type Driver struct{}

var _ gles.Driver = Driver{}

// New loads the GL function pointers from the context current on the
// calling thread and returns a driver for it. Returns an error when no
// context is current or the binding cannot initialize.
func New() (Driver, error) {
	if err := gl.Init(); err != nil {
		return Driver{}, fmt.Errorf("gl21: init: %w", err)
	}
	if gl.GoStr(gl.GetString(gl.VERSION)) == "" {
		return Driver{}, gles.ErrNotCurrent
	}
	return Driver{}, nil
}

func (Driver) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (Driver) GetIntegerv(pname uint32, dst []int32) {
	gl.GetIntegerv(pname, &dst[0])
}

func (Driver) GetTexEnviv(target, pname uint32, dst []int32) {
	gl.GetTexEnviv(target, pname, &dst[0])
}

func (Driver) IsEnabled(capability uint32) bool {
	return gl.IsEnabled(capability)
}

func (Driver) Enable(capability uint32)  { gl.Enable(capability) }
func (Driver) Disable(capability uint32) { gl.Disable(capability) }

func (Driver) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (Driver) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (Driver) ActiveTexture(unit uint32)       { gl.ActiveTexture(unit) }
func (Driver) ClientActiveTexture(unit uint32) { gl.ClientActiveTexture(unit) }
func (Driver) BindTexture(target, tex uint32)  { gl.BindTexture(target, tex) }

func (Driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (Driver) TexEnvi(target, pname uint32, param int32) {
	gl.TexEnvi(target, pname, param)
}

func (Driver) PixelStorei(pname uint32, param int32) {
	gl.PixelStorei(pname, param)
}

func (Driver) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels []byte) {
	var p unsafe.Pointer
	if pixels != nil {
		p = gl.Ptr(pixels)
	}
	gl.TexImage2D(target, level, internalFormat, width, height, border, format, xtype, p)
}

func (Driver) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, gl.Ptr(pixels))
}

func (Driver) MatrixMode(mode uint32) { gl.MatrixMode(mode) }
func (Driver) PushMatrix()            { gl.PushMatrix() }
func (Driver) PopMatrix()             { gl.PopMatrix() }
func (Driver) LoadIdentity()          { gl.LoadIdentity() }

func (Driver) LoadMatrixf(m *[16]float32) {
	gl.LoadMatrixf(&m[0])
}

func (Driver) EnableClientState(array uint32)  { gl.EnableClientState(array) }
func (Driver) DisableClientState(array uint32) { gl.DisableClientState(array) }

func (Driver) VertexPointer(size, stride int32, data []float32) {
	gl.VertexPointer(size, gl.FLOAT, stride, gl.Ptr(data))
}

func (Driver) TexCoordPointer(size, stride int32, data []float32) {
	gl.TexCoordPointer(size, gl.FLOAT, stride, gl.Ptr(data))
}

func (Driver) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}
