package argl

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// meshCellSize is the nominal edge length, in image pixels, of one
// distortion mesh cell. 20 px matches the warp resolution of the
// classic AR background renderers: fine enough that linear
// interpolation inside a cell is invisible, coarse enough to stay at a
// few thousand vertices for any realistic camera size.
const meshCellSize = 20

// distMesh is the precomputed undistortion geometry for one
// calibration: a grid of triangle strips whose vertex positions sit on
// the ideal (undistorted) image plane and whose texture lookups happen
// at the observed (distorted) camera coordinates. Drawing it therefore
// straightens the lens distortion out of the uploaded frame.
//
// The mesh is laid out as one triangle strip per grid row, all strips
// concatenated into a single pair of arrays so the client pointers are
// set once and each row is submitted with its own DrawArrays offset.
type distMesh struct {
	cols, rows int

	// stripLen is the vertex count of one row strip: (cols+1)*2.
	stripLen int

	// verts holds x,y pairs of ideal image coordinates.
	verts []float32

	// observ holds the matching observed image coordinates, in pixels.
	// Normalizing them against the live texture geometry yields texture
	// coordinates (see texCoords).
	observ []float32
}

// newDistMesh builds the undistortion mesh for cparam. The image is
// subdivided into cells of at most meshCellSize pixels; each grid
// vertex keeps its ideal position and the observed position the lens
// maps it to.
func newDistMesh(cparam *CameraParams) *distMesh {
	w := cparam.ImageWidth
	h := cparam.ImageHeight
	m := &distMesh{
		cols: (w + meshCellSize - 1) / meshCellSize,
		rows: (h + meshCellSize - 1) / meshCellSize,
	}
	m.stripLen = (m.cols + 1) * 2

	cellW := float64(w) / float64(m.cols)
	cellH := float64(h) / float64(m.rows)

	n := m.rows * m.stripLen
	m.verts = make([]float32, 0, n*2)
	m.observ = make([]float32, 0, n*2)

	push := func(ix, iy float64) {
		ox, oy := cparam.DistFactor.Ideal2Observ(ix, iy)
		m.verts = append(m.verts, float32(ix), float32(iy))
		m.observ = append(m.observ, float32(ox), float32(oy))
	}

	for j := 0; j < m.rows; j++ {
		yTop := math.Min(float64(j+1)*cellH, float64(h))
		yBot := float64(j) * cellH
		for i := 0; i <= m.cols; i++ {
			x := math.Min(float64(i)*cellW, float64(w))
			push(x, yTop)
			push(x, yBot)
		}
	}
	return m
}

// texCoords normalizes the observed coordinates against a texture of
// texW x texH pixels, producing the texture coordinate array matching
// verts. Called whenever texture storage geometry changes.
func (m *distMesh) texCoords(texW, texH int) []float32 {
	tc := make([]float32, len(m.observ))
	sx := 1.0 / float32(texW)
	sy := 1.0 / float32(texH)
	for i := 0; i < len(m.observ); i += 2 {
		tc[i] = m.observ[i] * sx
		tc[i+1] = m.observ[i+1] * sy
	}
	return tc
}

// quadVerts returns the vertex positions of the plain (uncompensated)
// image quad as a triangle strip.
func quadVerts(w, h int) []float32 {
	fw, fh := float32(w), float32(h)
	return []float32{
		0, 0,
		fw, 0,
		0, fh,
		fw, fh,
	}
}

// quadTexCoords returns the matching texture coordinates, covering the
// image region of a possibly larger (padded) texture.
func quadTexCoords(imgW, imgH, texW, texH int) []float32 {
	u := float32(imgW) / float32(texW)
	v := float32(imgH) / float32(texH)
	return []float32{
		0, 0,
		u, 0,
		0, v,
		u, v,
	}
}

// projection returns the orthographic projection for the managed
// display pass: image pixels map 1:1, scaled by zoom, onto window
// coordinates, with the bottom-left image pixel's bottom-left corner
// at window (0,0). vpW and vpH are the current viewport dimensions.
func (s *ContextSettings) projection(vpW, vpH int32) mgl32.Mat4 {
	z := float32(s.zoom)
	w := float32(vpW) / z
	h := float32(vpH) / z
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return mgl32.Ortho(0, w, 0, h, -1, 1)
}

// displayTransform returns the axis transform implementing the flipH,
// flipV, and rotate90 toggles. Flips mirror the image in place across
// its own axes; the 90-degree rotation is applied last and leaves the
// image anchored in the positive quadrant (occupying imageHeight by
// imageWidth window pixels).
func (s *ContextSettings) displayTransform() mgl32.Mat4 {
	w := float32(s.cparam.ImageWidth)
	h := float32(s.cparam.ImageHeight)
	m := mgl32.Ident4()
	if s.rotate90 {
		m = mgl32.Translate3D(h, 0, 0).Mul4(mgl32.HomogRotate3DZ(math.Pi / 2))
	}
	if s.flipH {
		m = m.Mul4(mgl32.Translate3D(w, 0, 0)).Mul4(mgl32.Scale3D(-1, 1, 1))
	}
	if s.flipV {
		m = m.Mul4(mgl32.Translate3D(0, h, 0)).Mul4(mgl32.Scale3D(1, -1, 1))
	}
	return m
}
