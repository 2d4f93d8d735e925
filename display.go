package argl

import (
	"github.com/arvideo/argl/gles"
)

// DisplayManaged draws the most recently uploaded frame as a 2-D
// background plane, managing all GL state it needs.
//
// The image is drawn under an orthographic projection mapping image
// pixels 1:1 (scaled by the zoom factor) to window coordinates, with
// the bottom-left corner of the bottom-left image pixel at window
// (0,0). The flipH/flipV/rotate90 toggles are applied on top of that
// mapping, and when distortion compensation is enabled the texture is
// sampled through the undistortion mesh instead of an identity quad.
//
// Drawing happens with depth testing and lighting disabled and in
// replace texture environment mode, so the depth buffer is left
// unmodified. The depth-test and lighting enable flags, the texture
// environment mode, and the projection and modelview matrices are all
// restored before returning.
//
// Before the first upload the texture is zero-filled, so this draws a
// black plane. After a geometry or format change and before the next
// upload there is no defined frame and DisplayManaged draws nothing.
func (s *ContextSettings) DisplayManaged() {
	if !s.ok() {
		return
	}
	d := s.drv

	depthSave := d.IsEnabled(gles.DEPTH_TEST)
	lightingSave := d.IsEnabled(gles.LIGHTING)
	d.ActiveTexture(gles.TEXTURE0)
	var envSave [1]int32
	d.GetTexEnviv(gles.TEXTURE_ENV, gles.TEXTURE_ENV_MODE, envSave[:])

	if depthSave {
		d.Disable(gles.DEPTH_TEST)
	}
	if lightingSave {
		d.Disable(gles.LIGHTING)
	}
	if envSave[0] != int32(gles.REPLACE) {
		d.TexEnvi(gles.TEXTURE_ENV, gles.TEXTURE_ENV_MODE, int32(gles.REPLACE))
	}

	var vp [4]int32
	d.GetIntegerv(gles.VIEWPORT, vp[:])
	proj := s.projection(vp[2], vp[3]).Mul4(s.displayTransform())
	projArr := [16]float32(proj)

	d.MatrixMode(gles.PROJECTION)
	d.PushMatrix()
	d.LoadMatrixf(&projArr)
	d.MatrixMode(gles.MODELVIEW)
	d.PushMatrix()
	d.LoadIdentity()

	s.drawPlane()

	d.MatrixMode(gles.PROJECTION)
	d.PopMatrix()
	d.MatrixMode(gles.MODELVIEW)
	d.PopMatrix()

	if envSave[0] != int32(gles.REPLACE) {
		d.TexEnvi(gles.TEXTURE_ENV, gles.TEXTURE_ENV_MODE, envSave[0])
	}
	if lightingSave {
		d.Enable(gles.LIGHTING)
	}
	if depthSave {
		d.Enable(gles.DEPTH_TEST)
	}
}

// DisplayStateful draws exactly what DisplayManaged draws, but under
// whatever projection, modelview, and enable state the caller has set
// up, and restores nothing beyond what binding and drawing the texture
// strictly requires. Use it to compose the video plane inside a larger
// 3-D scene: for example a perspective projection with depth testing
// still enabled and the plane translated away from the origin.
func (s *ContextSettings) DisplayStateful() {
	if !s.ok() {
		return
	}
	s.drawPlane()
}

// drawPlane submits the textured geometry for the current frame:
// either the single image quad, or the undistortion mesh when
// compensation is enabled. For bi-planar formats the luma and chroma
// textures are bound to texture units 0 and 1 with identical texture
// coordinates; the color combination between the units is left to the
// texture environment the host configured.
func (s *ContextSettings) drawPlane() {
	if !s.texturesValid {
		return
	}
	d := s.drv
	biplanar := s.format.Biplanar()

	d.ActiveTexture(gles.TEXTURE0)
	d.Enable(gles.TEXTURE_2D)
	d.BindTexture(gles.TEXTURE_2D, s.textures[0])
	if biplanar {
		d.ActiveTexture(gles.TEXTURE1)
		d.Enable(gles.TEXTURE_2D)
		d.BindTexture(gles.TEXTURE_2D, s.textures[1])
		d.ActiveTexture(gles.TEXTURE0)
	}

	verts, tex := s.quadGeometry()
	d.EnableClientState(gles.VERTEX_ARRAY)
	d.VertexPointer(2, 0, verts)
	d.ClientActiveTexture(gles.TEXTURE0)
	d.EnableClientState(gles.TEXTURE_COORD_ARRAY)
	d.TexCoordPointer(2, 0, tex)
	if biplanar {
		d.ClientActiveTexture(gles.TEXTURE1)
		d.EnableClientState(gles.TEXTURE_COORD_ARRAY)
		d.TexCoordPointer(2, 0, tex)
		d.ClientActiveTexture(gles.TEXTURE0)
	}

	if s.distEnabled {
		for j := 0; j < s.mesh.rows; j++ {
			d.DrawArrays(gles.TRIANGLE_STRIP, int32(j*s.mesh.stripLen), int32(s.mesh.stripLen))
		}
	} else {
		d.DrawArrays(gles.TRIANGLE_STRIP, 0, 4)
	}

	d.DisableClientState(gles.TEXTURE_COORD_ARRAY)
	d.DisableClientState(gles.VERTEX_ARRAY)
	if biplanar {
		d.ClientActiveTexture(gles.TEXTURE1)
		d.DisableClientState(gles.TEXTURE_COORD_ARRAY)
		d.ClientActiveTexture(gles.TEXTURE0)
		d.ActiveTexture(gles.TEXTURE1)
		d.Disable(gles.TEXTURE_2D)
		d.ActiveTexture(gles.TEXTURE0)
	}
	d.Disable(gles.TEXTURE_2D)
}

// quadGeometry returns the vertex and texture coordinate arrays for
// the current draw mode.
func (s *ContextSettings) quadGeometry() (verts, tex []float32) {
	if s.distEnabled {
		return s.mesh.verts, s.meshTex
	}
	return quadVerts(s.cparam.ImageWidth, s.cparam.ImageHeight), s.quadTex
}
