package argl

import (
	"testing"

	"github.com/arvideo/argl/gles"
	"github.com/arvideo/argl/internal/fakegl"
)

// testParams returns a 640x480 calibration with mild barrel distortion.
func testParams() *CameraParams {
	return &CameraParams{
		ImageWidth:  640,
		ImageHeight: 480,
		DistFactor:  DistFactor{CenterX: 320, CenterY: 240, Factor: 30, Scale: 1},
	}
}

// newDesktopFake mimics a desktop GL 2.1 driver (NPOT-capable).
func newDesktopFake() *fakegl.Driver {
	return fakegl.New("2.1 Test Driver", "GL_EXT_bgra")
}

// newES11Fake mimics a bare OpenGL ES 1.1 driver (power-of-two only).
func newES11Fake() *fakegl.Driver {
	return fakegl.New("OpenGL ES-CM 1.1", "")
}

func TestSetup_Defaults(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	if s == nil {
		t.Fatal("Setup returned nil")
	}

	if w, h := s.BufferSize(); w != 640 || h != 480 {
		t.Errorf("BufferSize() = %dx%d, want calibration size 640x480", w, h)
	}
	if f, bpp := s.PixelFormat(); f != PixelFormatRGBA || bpp != 4 {
		t.Errorf("PixelFormat() = %v, %d", f, bpp)
	}
	if z, ok := s.Zoom(); !ok || z != 1.0 {
		t.Errorf("Zoom() = %v, %v, want 1.0, true", z, ok)
	}
	if en, ok := s.DistortionCompensation(); !ok || !en {
		t.Errorf("DistortionCompensation() = %v, %v, want true, true", en, ok)
	}
	if s.Rotate90() || s.FlipH() || s.FlipV() {
		t.Error("axis toggles not false by default")
	}
}

func TestSetup_EagerAllocation(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	if s == nil {
		t.Fatal("Setup returned nil")
	}

	// One texture, allocated zero-filled at buffer geometry.
	if len(d.Textures) != 1 {
		t.Fatalf("got %d textures, want 1", len(d.Textures))
	}
	for _, tex := range d.Textures {
		if tex.Width != 640 || tex.Height != 480 {
			t.Errorf("texture storage %dx%d, want 640x480", tex.Width, tex.Height)
		}
		if tex.Allocations != 1 {
			t.Errorf("allocations = %d, want 1", tex.Allocations)
		}
		for _, b := range tex.Pix {
			if b != 0 {
				t.Fatal("initial texture storage not zero-filled")
			}
		}
	}
}

func TestSetup_BiplanarAllocatesTwoTextures(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatNV12)
	if s == nil {
		t.Fatal("Setup returned nil")
	}
	if len(d.Textures) != 2 {
		t.Fatalf("got %d textures, want 2 (luma + chroma)", len(d.Textures))
	}
	var sawChroma bool
	for _, tex := range d.Textures {
		if tex.Width == 320 && tex.Height == 240 {
			sawChroma = true
		}
	}
	if !sawChroma {
		t.Error("no half-size chroma texture allocated")
	}
}

func TestSetup_POTPaddingOnES11(t *testing.T) {
	d := newES11Fake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	if s == nil {
		t.Fatal("Setup returned nil")
	}
	// Buffer geometry stays at the calibration size...
	if w, h := s.BufferSize(); w != 640 || h != 480 {
		t.Errorf("BufferSize() = %dx%d, want 640x480", w, h)
	}
	// ...but storage is padded up to powers of two.
	for _, tex := range d.Textures {
		if tex.Width != 1024 || tex.Height != 512 {
			t.Errorf("texture storage %dx%d, want 1024x512", tex.Width, tex.Height)
		}
	}
}

func TestSetup_Failures(t *testing.T) {
	tests := []struct {
		name   string
		driver gles.Driver
		cparam *CameraParams
		format PixelFormat
	}{
		{"nil driver", nil, testParams(), PixelFormatRGBA},
		{"nil calibration", newDesktopFake(), nil, PixelFormatRGBA},
		{"zero-size calibration", newDesktopFake(), &CameraParams{DistFactor: DistFactor{Scale: 1}}, PixelFormatRGBA},
		{"negative calibration", newDesktopFake(), &CameraParams{ImageWidth: -640, ImageHeight: 480, DistFactor: DistFactor{Scale: 1}}, PixelFormatRGBA},
		{"invalid format", newDesktopFake(), testParams(), PixelFormatInvalid},
		{"format unsupported by driver", newES11Fake(), testParams(), PixelFormatBGRA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := Setup(tt.driver, tt.cparam, tt.format); s != nil {
				t.Error("Setup succeeded, want nil")
			}
		})
	}

	t.Run("texture size over driver maximum", func(t *testing.T) {
		d := newDesktopFake()
		d.MaxTextureSize = 512
		if s := Setup(d, testParams(), PixelFormatRGBA); s != nil {
			t.Error("Setup succeeded with 640-wide image on 512-limit driver")
		}
	})
}

func TestCleanup_ReleasesTextures(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatNV12)
	if s == nil {
		t.Fatal("Setup returned nil")
	}
	s.Cleanup()
	if len(d.Textures) != 0 {
		t.Errorf("%d textures left after Cleanup", len(d.Textures))
	}

	// Every operation on a cleaned-up reference fails closed.
	if s.SetZoom(2) || s.SetPixelFormat(PixelFormatRGBA) || s.SetBufferSize(1024, 512) {
		t.Error("setter succeeded on cleaned-up settings")
	}
	if _, ok := s.Zoom(); ok {
		t.Error("Zoom ok on cleaned-up settings")
	}
	if _, ok := s.DistortionCompensation(); ok {
		t.Error("DistortionCompensation ok on cleaned-up settings")
	}
	if s.UploadPixels(make([]byte, 640*480*4)) {
		t.Error("upload succeeded on cleaned-up settings")
	}
	// Cleanup twice is harmless.
	s.Cleanup()
}

func TestNilSettingsFailClosed(t *testing.T) {
	var s *ContextSettings
	if s.SetZoom(2) || s.SetFlipH(true) || s.UploadPixels(nil) {
		t.Error("operation on nil settings succeeded")
	}
	s.DisplayManaged() // must not panic
	s.DisplayStateful()
	s.Cleanup()
}

func TestSetBufferSize(t *testing.T) {
	t.Run("rejects sizes below calibration", func(t *testing.T) {
		s := Setup(newDesktopFake(), testParams(), PixelFormatRGBA)
		for _, sz := range [][2]int{{639, 480}, {640, 479}, {0, 0}, {-1, 480}} {
			if s.SetBufferSize(sz[0], sz[1]) {
				t.Errorf("SetBufferSize(%d, %d) succeeded", sz[0], sz[1])
			}
			if w, h := s.BufferSize(); w != 640 || h != 480 {
				t.Fatalf("failed SetBufferSize mutated geometry to %dx%d", w, h)
			}
		}
	})

	t.Run("accepts padded size on NPOT driver", func(t *testing.T) {
		s := Setup(newDesktopFake(), testParams(), PixelFormatRGBA)
		if !s.SetBufferSize(704, 480) {
			t.Fatal("SetBufferSize(704, 480) failed")
		}
		if w, h := s.BufferSize(); w != 704 || h != 480 {
			t.Errorf("BufferSize() = %dx%d", w, h)
		}
	})

	t.Run("requires powers of two without NPOT support", func(t *testing.T) {
		s := Setup(newES11Fake(), testParams(), PixelFormatRGBA)
		if s.SetBufferSize(704, 480) {
			t.Error("non-POT size succeeded on POT-only driver")
		}
		if w, h := s.BufferSize(); w != 640 || h != 480 {
			t.Errorf("failed SetBufferSize mutated geometry to %dx%d", w, h)
		}
		if !s.SetBufferSize(1024, 512) {
			t.Error("POT size rejected on POT-only driver")
		}
	})

	t.Run("rejects sizes over driver maximum", func(t *testing.T) {
		s := Setup(newDesktopFake(), testParams(), PixelFormatRGBA)
		if s.SetBufferSize(8192, 480) {
			t.Error("size over driver maximum succeeded")
		}
	})
}

func TestSetZoom(t *testing.T) {
	s := Setup(newDesktopFake(), testParams(), PixelFormatRGBA)
	for _, bad := range []float64{0, -1, -0.5} {
		if s.SetZoom(bad) {
			t.Errorf("SetZoom(%v) succeeded", bad)
		}
		if z, _ := s.Zoom(); z != 1.0 {
			t.Fatalf("failed SetZoom mutated zoom to %v", z)
		}
	}
	if !s.SetZoom(2.0) {
		t.Fatal("SetZoom(2.0) failed")
	}
	if z, ok := s.Zoom(); !ok || z != 2.0 {
		t.Errorf("Zoom() = %v, %v, want 2.0, true", z, ok)
	}
}

func TestSetPixelFormat_RoundTrip(t *testing.T) {
	s := Setup(newDesktopFake(), testParams(), PixelFormatRGBA)
	if !s.SetPixelFormat(PixelFormatMono) {
		t.Fatal("SetPixelFormat(Mono) failed")
	}
	if f, bpp := s.PixelFormat(); f != PixelFormatMono || bpp != 1 {
		t.Errorf("PixelFormat() = %v, %d, want Mono, 1", f, bpp)
	}

	if s.SetPixelFormat(PixelFormat(99)) {
		t.Error("unknown format accepted")
	}
	if f, _ := s.PixelFormat(); f != PixelFormatMono {
		t.Errorf("failed SetPixelFormat mutated format to %v", f)
	}
}

func TestSetPixelFormat_CapabilityGate(t *testing.T) {
	s := Setup(newES11Fake(), testParams(), PixelFormatRGBA)
	if s.SetPixelFormat(PixelFormatBGRA) {
		t.Error("BGRA accepted on driver without BGRA support")
	}
}

func TestAxisToggles(t *testing.T) {
	s := Setup(newDesktopFake(), testParams(), PixelFormatRGBA)
	if !s.SetRotate90(true) || !s.Rotate90() {
		t.Error("rotate90 round trip failed")
	}
	if !s.SetFlipH(true) || !s.FlipH() {
		t.Error("flipH round trip failed")
	}
	if !s.SetFlipV(true) || !s.FlipV() {
		t.Error("flipV round trip failed")
	}
	s.SetRotate90(false)
	if s.Rotate90() {
		t.Error("rotate90 did not clear")
	}
}

func TestSetDistortionCompensation(t *testing.T) {
	s := Setup(newDesktopFake(), testParams(), PixelFormatRGBA)
	if !s.SetDistortionCompensation(false) {
		t.Fatal("SetDistortionCompensation(false) failed")
	}
	if en, ok := s.DistortionCompensation(); !ok || en {
		t.Errorf("DistortionCompensation() = %v, %v, want false, true", en, ok)
	}
	if !s.SetDistortionCompensation(true) {
		t.Fatal("SetDistortionCompensation(true) failed")
	}
	if en, _ := s.DistortionCompensation(); !en {
		t.Error("compensation not re-enabled")
	}
}

func TestMultipleContextsAreIndependent(t *testing.T) {
	d1 := newDesktopFake()
	d2 := newDesktopFake()
	s1 := Setup(d1, testParams(), PixelFormatRGBA)
	s2 := Setup(d2, testParams(), PixelFormatMono)
	if s1 == nil || s2 == nil {
		t.Fatal("Setup failed")
	}

	s1.UploadPixels(make([]byte, 640*480*4))
	if len(d2.Draws) != 0 {
		t.Error("upload to context 1 drew on context 2")
	}
	s1.Cleanup()
	if len(d2.Textures) == 0 {
		t.Error("cleanup of context 1 released context 2's textures")
	}
	if !s2.SetZoom(3) {
		t.Error("context 2 unusable after context 1 cleanup")
	}
}
