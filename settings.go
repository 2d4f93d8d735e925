package argl

import (
	"github.com/arvideo/argl/gles"
)

// ContextSettings holds everything argl tracks for one OpenGL context:
// the copied camera calibration, the negotiated pixel format and buffer
// geometry, the display toggles, the GPU texture handles, and the
// precomputed distortion mesh.
//
// A ContextSettings is created by [Setup] against the driver for one
// native context and must only be used while that context is current.
// It is exclusively owned by its creator: never shared between
// contexts, never copied. Create at most one ContextSettings per
// context; release it with [Cleanup] before abandoning the context.
type ContextSettings struct {
	drv gles.Driver // owner context; nil after Cleanup

	cparam CameraParams
	format PixelFormat
	bpp    int

	// Buffer geometry the caller will submit. At least the calibration
	// image size; larger only when padding was negotiated.
	bufWidth, bufHeight int

	// Allocated texture storage geometry. Equal to the buffer geometry
	// on NPOT-capable drivers, padded up to powers of two otherwise.
	texWidth, texHeight int

	npot       bool
	maxTexSize int

	distEnabled bool
	zoom        float64
	rotate90    bool
	flipH       bool
	flipV       bool

	// textures[0] is the image (or luma) texture, textures[1] the
	// chroma texture for bi-planar formats. Zero means unallocated.
	textures [2]uint32

	// texturesValid is false whenever geometry or format changed since
	// the storage was last allocated; the next upload reallocates.
	texturesValid bool

	mesh *distMesh

	// Texture coordinates matching the current texture geometry.
	quadTex []float32
	meshTex []float32
}

// Setup initializes argl for the OpenGL context behind d and returns
// the settings object all further calls go through. The native context
// must already be current on the calling thread.
//
// The calibration record is copied; the caller's value need not remain
// valid. The distortion mesh is derived once, here. Texture storage is
// allocated immediately and zero-filled, so a Display call before the
// first upload draws black rather than garbage.
//
// Setup returns nil when the calibration is malformed (non-positive
// image dimensions or distortion scale), when format is unrecognized,
// when the driver lacks a capability the format requires, or when the
// required texture size exceeds the driver's maximum.
func Setup(d gles.Driver, cparam *CameraParams, format PixelFormat) *ContextSettings {
	if d == nil || !cparam.Valid() {
		return nil
	}
	if !format.Valid() || !format.supportedBy(d) {
		Logger().Warn("argl: setup rejected", "reason", "pixel format unsupported", "format", format.String())
		return nil
	}

	s := &ContextSettings{
		drv:         d,
		cparam:      *cparam,
		format:      format,
		bpp:         format.BytesPerPixel(),
		bufWidth:    cparam.ImageWidth,
		bufHeight:   cparam.ImageHeight,
		npot:        npotSupported(d),
		distEnabled: true,
		zoom:        1.0,
	}

	var maxTex [1]int32
	d.GetIntegerv(gles.MAX_TEXTURE_SIZE, maxTex[:])
	s.maxTexSize = int(maxTex[0])

	s.updateTextureGeometry()
	if s.maxTexSize > 0 && (s.texWidth > s.maxTexSize || s.texHeight > s.maxTexSize) {
		Logger().Warn("argl: setup rejected", "reason", "texture size over driver maximum",
			"width", s.texWidth, "height", s.texHeight, "max", s.maxTexSize)
		return nil
	}

	s.mesh = newDistMesh(&s.cparam)

	if !s.allocTextures() {
		return nil
	}

	Logger().Info("argl: context set up",
		"image", [2]int{cparam.ImageWidth, cparam.ImageHeight},
		"format", format.String(), "npot", s.npot)
	return s
}

// Cleanup releases the GPU textures owned by s and invalidates it.
// Call with the owner context current. After Cleanup every operation
// on s fails; the context may be set up again with a fresh Setup.
func (s *ContextSettings) Cleanup() {
	if s == nil || s.drv == nil {
		return
	}
	s.releaseTextures()
	Logger().Info("argl: context cleaned up")
	s.drv = nil
}

// ok reports whether s is a live settings object.
func (s *ContextSettings) ok() bool {
	return s != nil && s.drv != nil
}

// updateTextureGeometry derives the texture storage size from the
// buffer size, padding to powers of two when the driver demands it.
func (s *ContextSettings) updateTextureGeometry() {
	if s.npot {
		s.texWidth, s.texHeight = s.bufWidth, s.bufHeight
	} else {
		s.texWidth, s.texHeight = nextPOT(s.bufWidth), nextPOT(s.bufHeight)
	}
}

// SetPixelFormat changes the component layout expected from subsequent
// uploads. It fails on an unrecognized format and on formats the
// driver cannot accept, leaving the previous setting intact. On
// success the texture storage is invalidated; the next upload
// reallocates it for the new layout.
func (s *ContextSettings) SetPixelFormat(format PixelFormat) bool {
	if !s.ok() {
		return false
	}
	if !format.Valid() || !format.supportedBy(s.drv) {
		Logger().Warn("argl: pixel format rejected", "format", format.String())
		return false
	}
	if format == s.format {
		return true
	}
	s.format = format
	s.bpp = format.BytesPerPixel()
	s.texturesValid = false
	return true
}

// PixelFormat returns the configured pixel format and its bytes per
// pixel. A dead settings object reports (PixelFormatInvalid, 0).
func (s *ContextSettings) PixelFormat() (PixelFormat, int) {
	if !s.ok() {
		return PixelFormatInvalid, 0
	}
	return s.format, s.bpp
}

// SetBufferSize negotiates a pixel buffer geometry larger than the
// calibrated image size, for callers whose capture stack pads rows or
// columns. Both dimensions must be at least the calibration image
// size. On drivers without non-power-of-two texture support only
// power-of-two dimensions are realizable and anything else fails. A
// size over the driver's texture maximum also fails.
//
// On success the texture storage is invalidated and reallocated by the
// next upload. Failure leaves the previous geometry untouched.
func (s *ContextSettings) SetBufferSize(width, height int) bool {
	if !s.ok() {
		return false
	}
	if width < s.cparam.ImageWidth || height < s.cparam.ImageHeight {
		Logger().Warn("argl: buffer size rejected", "reason", "below calibration image size",
			"width", width, "height", height)
		return false
	}
	if !s.npot && (!isPOT(width) || !isPOT(height)) {
		Logger().Warn("argl: buffer size rejected", "reason", "driver requires power-of-two sizes",
			"width", width, "height", height)
		return false
	}
	texW, texH := width, height
	if !s.npot {
		texW, texH = nextPOT(width), nextPOT(height)
	}
	if s.maxTexSize > 0 && (texW > s.maxTexSize || texH > s.maxTexSize) {
		Logger().Warn("argl: buffer size rejected", "reason", "over driver texture maximum",
			"width", texW, "height", texH, "max", s.maxTexSize)
		return false
	}
	if width == s.bufWidth && height == s.bufHeight {
		return true
	}
	s.bufWidth, s.bufHeight = width, height
	s.updateTextureGeometry()
	s.texturesValid = false
	return true
}

// BufferSize returns the pixel buffer geometry expected by the upload
// calls. Zero values indicate a dead settings object.
func (s *ContextSettings) BufferSize() (width, height int) {
	if !s.ok() {
		return 0, 0
	}
	return s.bufWidth, s.bufHeight
}

// SetDistortionCompensation toggles whether the display calls draw
// through the precomputed undistortion mesh. The mesh itself was
// derived once at Setup and is never recomputed; disabling is intended
// for phases where the distortion parameters are not yet trustworthy,
// such as live calibration.
func (s *ContextSettings) SetDistortionCompensation(enabled bool) bool {
	if !s.ok() {
		return false
	}
	s.distEnabled = enabled
	return true
}

// DistortionCompensation returns the distortion compensation toggle.
// ok is false for a dead settings object.
func (s *ContextSettings) DistortionCompensation() (enabled, ok bool) {
	if !s.ok() {
		return false, false
	}
	return s.distEnabled, true
}

// SetZoom sets the video image drawing scale factor: 2.0 draws the
// image double size, 0.5 half size. Zoom must be positive; anything
// else fails and keeps the previous value.
func (s *ContextSettings) SetZoom(zoom float64) bool {
	if !s.ok() {
		return false
	}
	if !(zoom > 0) {
		Logger().Warn("argl: zoom rejected", "zoom", zoom)
		return false
	}
	s.zoom = zoom
	return true
}

// Zoom returns the current drawing scale factor. ok is false for a
// dead settings object.
func (s *ContextSettings) Zoom() (zoom float64, ok bool) {
	if !s.ok() {
		return 0, false
	}
	return s.zoom, true
}

// SetRotate90 rotates all argl drawing by 90 degrees in window
// coordinates, swapping the horizontal and vertical axes of the
// device; much cheaper than transposing submitted pixel data. Takes
// effect on the next display call.
func (s *ContextSettings) SetRotate90(rotate90 bool) bool {
	if !s.ok() {
		return false
	}
	s.rotate90 = rotate90
	return true
}

// Rotate90 reports whether 90-degree rotation is enabled.
func (s *ContextSettings) Rotate90() bool {
	return s.ok() && s.rotate90
}

// SetFlipH mirrors the drawn image horizontally. Takes effect on the
// next display call.
func (s *ContextSettings) SetFlipH(flipH bool) bool {
	if !s.ok() {
		return false
	}
	s.flipH = flipH
	return true
}

// FlipH reports whether horizontal mirroring is enabled.
func (s *ContextSettings) FlipH() bool {
	return s.ok() && s.flipH
}

// SetFlipV mirrors the drawn image vertically. Takes effect on the
// next display call.
func (s *ContextSettings) SetFlipV(flipV bool) bool {
	if !s.ok() {
		return false
	}
	s.flipV = flipV
	return true
}

// FlipV reports whether vertical mirroring is enabled.
func (s *ContextSettings) FlipV() bool {
	return s.ok() && s.flipV
}
