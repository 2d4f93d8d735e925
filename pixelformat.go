package argl

import "github.com/arvideo/argl/gles"

// PixelFormat identifies the component layout and byte order of the
// pixel buffers submitted to the upload calls.
//
// Interleaved formats carry the whole image in one plane. The bi-planar
// formats (NV12, NV21) carry a full-resolution luma plane plus a
// half-resolution interleaved chroma plane and must be uploaded with
// UploadPixelsBiPlanar.
type PixelFormat int

const (
	// PixelFormatInvalid is the zero value; it never validates.
	PixelFormatInvalid PixelFormat = iota

	// PixelFormatRGB is 24-bit interleaved RGB.
	PixelFormatRGB

	// PixelFormatBGR is 24-bit interleaved BGR.
	PixelFormatBGR

	// PixelFormatRGBA is 32-bit interleaved RGBA.
	PixelFormatRGBA

	// PixelFormatBGRA is 32-bit interleaved BGRA.
	PixelFormatBGRA

	// PixelFormatMono is 8-bit luminance.
	PixelFormatMono

	// PixelFormatRGB565 is 16-bit packed RGB (5-6-5).
	PixelFormatRGB565

	// PixelFormatRGBA5551 is 16-bit packed RGBA (5-5-5-1).
	PixelFormatRGBA5551

	// PixelFormatRGBA4444 is 16-bit packed RGBA (4-4-4-4).
	PixelFormatRGBA4444

	// PixelFormatNV12 is bi-planar 4:2:0 YCbCr: full-size 8-bit luma
	// plane, half-size interleaved CbCr plane at 2 bytes per pixel.
	PixelFormatNV12

	// PixelFormatNV21 is PixelFormatNV12 with the chroma pair swapped
	// (CrCb), as produced by Android camera stacks.
	PixelFormatNV21
)

// BGR has no token in the ES headers; the desktop enumerant is used by
// drivers that expose the EXT_bgra family.
const glBGR uint32 = 0x80E0

// formatSpec is everything the upload and display paths need to know
// about one pixel format.
type formatSpec struct {
	name     string
	bpp      int // plane 0 bytes per pixel
	biplanar bool

	// GL upload parameters for plane 0.
	internal int32
	glFormat uint32
	glType   uint32

	// Capability gate: the driver must report at least minVersion
	// (BCD), or any one of exts. A zero minVersion with no exts means
	// the format is universally supported.
	minVersion uint16
	exts       []string
}

var formatSpecs = map[PixelFormat]formatSpec{
	PixelFormatRGB: {
		name: "RGB", bpp: 3,
		internal: int32(gles.RGB), glFormat: gles.RGB, glType: gles.UNSIGNED_BYTE,
	},
	PixelFormatBGR: {
		name: "BGR", bpp: 3,
		internal: int32(gles.RGB), glFormat: glBGR, glType: gles.UNSIGNED_BYTE,
		minVersion: 0x0102, exts: []string{"GL_EXT_bgra"},
	},
	PixelFormatRGBA: {
		name: "RGBA", bpp: 4,
		internal: int32(gles.RGBA), glFormat: gles.RGBA, glType: gles.UNSIGNED_BYTE,
	},
	PixelFormatBGRA: {
		name: "BGRA", bpp: 4,
		internal: int32(gles.RGBA), glFormat: gles.BGRA, glType: gles.UNSIGNED_BYTE,
		minVersion: 0x0102,
		exts: []string{
			"GL_EXT_bgra",
			"GL_APPLE_texture_format_BGRA8888",
			"GL_EXT_texture_format_BGRA8888",
		},
	},
	PixelFormatMono: {
		name: "Mono", bpp: 1,
		internal: int32(gles.LUMINANCE), glFormat: gles.LUMINANCE, glType: gles.UNSIGNED_BYTE,
	},
	PixelFormatRGB565: {
		name: "RGB565", bpp: 2,
		internal: int32(gles.RGB), glFormat: gles.RGB, glType: gles.UNSIGNED_SHORT_5_6_5,
		minVersion: 0x0101, exts: []string{"GL_EXT_packed_pixels"},
	},
	PixelFormatRGBA5551: {
		name: "RGBA5551", bpp: 2,
		internal: int32(gles.RGBA), glFormat: gles.RGBA, glType: gles.UNSIGNED_SHORT_5_5_5_1,
		minVersion: 0x0101, exts: []string{"GL_EXT_packed_pixels"},
	},
	PixelFormatRGBA4444: {
		name: "RGBA4444", bpp: 2,
		internal: int32(gles.RGBA), glFormat: gles.RGBA, glType: gles.UNSIGNED_SHORT_4_4_4_4,
		minVersion: 0x0101, exts: []string{"GL_EXT_packed_pixels"},
	},
	PixelFormatNV12: {
		name: "NV12", bpp: 1, biplanar: true,
		internal: int32(gles.LUMINANCE), glFormat: gles.LUMINANCE, glType: gles.UNSIGNED_BYTE,
	},
	PixelFormatNV21: {
		name: "NV21", bpp: 1, biplanar: true,
		internal: int32(gles.LUMINANCE), glFormat: gles.LUMINANCE, glType: gles.UNSIGNED_BYTE,
	},
}

// Valid reports whether f is a recognized pixel format.
func (f PixelFormat) Valid() bool {
	_, ok := formatSpecs[f]
	return ok
}

// BytesPerPixel returns the plane-0 bytes per pixel for f, or 0 for an
// unrecognized format. Bi-planar formats report the luma plane (1);
// their chroma plane is always 2 bytes per subsampled pixel.
func (f PixelFormat) BytesPerPixel() int {
	return formatSpecs[f].bpp
}

// Biplanar reports whether f carries a second, half-resolution chroma
// plane.
func (f PixelFormat) Biplanar() bool {
	return formatSpecs[f].biplanar
}

// String returns the format's conventional name.
func (f PixelFormat) String() string {
	if s, ok := formatSpecs[f]; ok {
		return s.name
	}
	return "Invalid"
}

// supportedBy reports whether the driver can accept uploads in f,
// using the version-or-extension capability test.
func (f PixelFormat) supportedBy(d gles.Driver) bool {
	s, ok := formatSpecs[f]
	if !ok {
		return false
	}
	if s.minVersion == 0 && len(s.exts) == 0 {
		return true
	}
	for _, ext := range s.exts {
		if CapabilityCheck(d, s.minVersion, ext) {
			return true
		}
	}
	if len(s.exts) == 0 {
		return CapabilityCheck(d, s.minVersion, "")
	}
	return false
}
