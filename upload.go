package argl

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/arvideo/argl/gles"
)

// UploadPixels uploads one interleaved frame into the settings object's
// GPU texture, ready for the next display call. buf must hold at least
// bufferWidth*bufferHeight*bytesPerPixel tightly packed row-major bytes
// in the configured pixel format; when the buffer geometry exceeds the
// calibration image size, only the image region needs meaningful
// content.
//
// UploadPixels fails, touching no GPU state, when s is dead, when a
// bi-planar format is configured (use UploadPixelsBiPlanar), or when
// buf is nil or too short.
func (s *ContextSettings) UploadPixels(buf []byte) bool {
	return s.UploadPixelsBiPlanar(buf, nil)
}

// UploadPixelsBiPlanar uploads one frame supplied as separate planes.
// buf0 is the full-resolution plane in the configured pixel format (the
// luma plane for bi-planar formats). buf1 must be nil for interleaved
// single-plane formats; for bi-planar formats it is the chroma plane,
// half the width and height of buf0 at 2 bytes per subsampled pixel
// (one Cb/Cr pair).
//
// Texture storage invalidated by a geometry or format change is
// reallocated here, before the copy. The call fails, with no GPU state
// change, on a dead settings object, a plane-count mismatch against the
// configured format, or undersized buffers.
func (s *ContextSettings) UploadPixelsBiPlanar(buf0, buf1 []byte) bool {
	if !s.ok() || buf0 == nil {
		return false
	}
	fs := formatSpecs[s.format]
	if fs.biplanar != (buf1 != nil) {
		Logger().Warn("argl: upload rejected", "reason", "plane count does not match pixel format",
			"format", s.format.String(), "biplanar", fs.biplanar)
		return false
	}
	if len(buf0) < s.bufWidth*s.bufHeight*s.bpp {
		Logger().Warn("argl: upload rejected", "reason", "plane 0 too short",
			"len", len(buf0), "need", s.bufWidth*s.bufHeight*s.bpp)
		return false
	}
	cw, ch := s.bufWidth/2, s.bufHeight/2
	if fs.biplanar && len(buf1) < cw*ch*2 {
		Logger().Warn("argl: upload rejected", "reason", "plane 1 too short",
			"len", len(buf1), "need", cw*ch*2)
		return false
	}

	if !s.texturesValid && !s.allocTextures() {
		return false
	}

	d := s.drv
	d.PixelStorei(gles.UNPACK_ALIGNMENT, 1)
	d.ActiveTexture(gles.TEXTURE0)
	d.BindTexture(gles.TEXTURE_2D, s.textures[0])
	d.TexSubImage2D(gles.TEXTURE_2D, 0, 0, 0,
		int32(s.bufWidth), int32(s.bufHeight), fs.glFormat, fs.glType, buf0)

	if fs.biplanar {
		d.ActiveTexture(gles.TEXTURE1)
		d.BindTexture(gles.TEXTURE_2D, s.textures[1])
		d.TexSubImage2D(gles.TEXTURE_2D, 0, 0, 0,
			int32(cw), int32(ch), gles.LUMINANCE_ALPHA, gles.UNSIGNED_BYTE, buf1)
		d.ActiveTexture(gles.TEXTURE0)
	}
	return true
}

// UploadImage scales and converts any image.Image into the configured
// buffer geometry and uploads it. A development convenience for feeding
// decoded stills through the same path live frames take; only the RGBA
// pixel format is supported.
func (s *ContextSettings) UploadImage(img image.Image) bool {
	if !s.ok() || img == nil || s.format != PixelFormatRGBA {
		return false
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.bufWidth, s.bufHeight))
	region := image.Rect(0, 0, s.cparam.ImageWidth, s.cparam.ImageHeight)
	draw.ApproxBiLinear.Scale(dst, region, img, img.Bounds(), draw.Src, nil)
	return s.UploadPixels(dst.Pix)
}

// allocTextures (re)allocates zero-filled texture storage sized to the
// current geometry and format, creating texture objects on first use.
// The distortion mesh and quad texture coordinates are renormalized to
// the new texture size, since the image region may cover only part of
// a padded texture.
func (s *ContextSettings) allocTextures() bool {
	d := s.drv
	fs := formatSpecs[s.format]

	if s.textures[0] == 0 {
		s.textures[0] = d.GenTexture()
	}
	d.PixelStorei(gles.UNPACK_ALIGNMENT, 1)
	d.ActiveTexture(gles.TEXTURE0)
	d.BindTexture(gles.TEXTURE_2D, s.textures[0])
	s.setTextureParams()
	zero := make([]byte, s.texWidth*s.texHeight*s.bpp)
	d.TexImage2D(gles.TEXTURE_2D, 0, fs.internal,
		int32(s.texWidth), int32(s.texHeight), 0, fs.glFormat, fs.glType, zero)

	if fs.biplanar {
		if s.textures[1] == 0 {
			s.textures[1] = d.GenTexture()
		}
		cw, ch := s.texWidth/2, s.texHeight/2
		d.ActiveTexture(gles.TEXTURE1)
		d.BindTexture(gles.TEXTURE_2D, s.textures[1])
		s.setTextureParams()
		zeroC := make([]byte, cw*ch*2)
		d.TexImage2D(gles.TEXTURE_2D, 0, int32(gles.LUMINANCE_ALPHA),
			int32(cw), int32(ch), 0, gles.LUMINANCE_ALPHA, gles.UNSIGNED_BYTE, zeroC)
		d.ActiveTexture(gles.TEXTURE0)
	} else if s.textures[1] != 0 {
		// Format changed away from bi-planar; the chroma texture is
		// no longer reachable from any draw.
		d.DeleteTexture(s.textures[1])
		s.textures[1] = 0
	}

	s.quadTex = quadTexCoords(s.cparam.ImageWidth, s.cparam.ImageHeight, s.texWidth, s.texHeight)
	s.meshTex = s.mesh.texCoords(s.texWidth, s.texHeight)
	s.texturesValid = true

	Logger().Debug("argl: texture storage allocated",
		"tex", [2]int{s.texWidth, s.texHeight},
		"buffer", [2]int{s.bufWidth, s.bufHeight},
		"format", s.format.String())
	return true
}

// setTextureParams applies the sampling parameters for the bound
// texture: linear filtering, clamped to edge so the padding region
// never bleeds into the image.
func (s *ContextSettings) setTextureParams() {
	d := s.drv
	d.TexParameteri(gles.TEXTURE_2D, gles.TEXTURE_MIN_FILTER, int32(gles.LINEAR))
	d.TexParameteri(gles.TEXTURE_2D, gles.TEXTURE_MAG_FILTER, int32(gles.LINEAR))
	d.TexParameteri(gles.TEXTURE_2D, gles.TEXTURE_WRAP_S, int32(gles.CLAMP_TO_EDGE))
	d.TexParameteri(gles.TEXTURE_2D, gles.TEXTURE_WRAP_T, int32(gles.CLAMP_TO_EDGE))
}

// releaseTextures deletes all texture objects owned by s.
func (s *ContextSettings) releaseTextures() {
	for i, tex := range s.textures {
		if tex != 0 {
			s.drv.DeleteTexture(tex)
			s.textures[i] = 0
		}
	}
	s.texturesValid = false
}
