package argl

import "math"

// distIterations is the number of Newton steps used to invert the
// radial distortion polynomial. Three steps recover ideal coordinates
// to well under a hundredth of a pixel for realistic lens factors.
const distIterations = 3

// DistFactor holds the classic single-coefficient radial lens
// distortion model: an observed (captured) image point is the ideal
// point pushed toward or away from the distortion center by a factor
// quadratic in its distance from that center.
//
// Factor is scaled by 1e-8 when applied, so calibration tools can
// report it in convenient whole numbers. Scale is the aspect/size
// correction applied before the radial term; 1 means none.
type DistFactor struct {
	CenterX float64
	CenterY float64
	Factor  float64
	Scale   float64
}

// CameraParams is the camera calibration record supplied to Setup: the
// captured image size and the lens distortion parameters. argl treats
// it as an opaque input; producing one is the calibration tool's job.
//
// Setup copies the record, so the caller's value need not outlive it.
type CameraParams struct {
	ImageWidth  int
	ImageHeight int
	DistFactor  DistFactor
}

// Valid reports whether the record can drive the video pipeline:
// positive image dimensions and a usable distortion scale.
func (c *CameraParams) Valid() bool {
	if c == nil {
		return false
	}
	return c.ImageWidth > 0 && c.ImageHeight > 0 && c.DistFactor.Scale > 0
}

// Ideal2Observ maps an ideal (undistorted) image coordinate to the
// observed coordinate the camera actually captured it at.
func (d DistFactor) Ideal2Observ(ix, iy float64) (ox, oy float64) {
	px := (ix - d.CenterX) * d.Scale
	py := (iy - d.CenterY) * d.Scale
	r2 := px*px + py*py
	p := 1.0 - d.Factor/100000000.0*r2
	return px*p + d.CenterX, py*p + d.CenterY
}

// Observ2Ideal maps an observed (captured) image coordinate back to
// the ideal coordinate it would have had with a distortion-free lens.
// The radial polynomial has no closed-form inverse; this runs a fixed
// number of Newton steps on the radius.
func (d DistFactor) Observ2Ideal(ox, oy float64) (ix, iy float64) {
	px := ox - d.CenterX
	py := oy - d.CenterY
	p := d.Factor / 100000000.0
	r2 := px*px + py*py
	q := math.Sqrt(r2)
	z0 := q

	for i := 1; ; i++ {
		if z0 == 0.0 {
			px = 0.0
			py = 0.0
			break
		}
		z02 := z0 * z0
		z := z0 - ((1.0-p*z02)*z0-q)/(1.0-3.0*p*z02)
		px = px * z / z0
		py = py * z / z0
		if i == distIterations {
			break
		}
		z0 = math.Sqrt(px*px + py*py)
	}
	return px/d.Scale + d.CenterX, py/d.Scale + d.CenterY
}
