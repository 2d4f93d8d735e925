package argl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arvideo/argl/gles"
	"github.com/arvideo/argl/internal/fakegl"
)

// Texture environment modes beyond the ones argl itself uses, for
// exercising state restoration.
const (
	glDecal int32 = 0x2101
	glAdd   int32 = 0x0104
)

func TestDisplayManaged_DrawsMeshWhenCompensating(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	s.UploadPixels(solidFrame(640, 480, []byte{1, 2, 3, 4}))

	s.DisplayManaged()

	if len(d.Draws) != s.mesh.rows {
		t.Fatalf("got %d draws, want one strip per mesh row (%d)", len(d.Draws), s.mesh.rows)
	}
	for i, draw := range d.Draws {
		if draw.Mode != gles.TRIANGLE_STRIP {
			t.Fatalf("draw %d mode = %#x, want TRIANGLE_STRIP", i, draw.Mode)
		}
		if draw.Count != int32(s.mesh.stripLen) {
			t.Fatalf("draw %d count = %d, want %d", i, draw.Count, s.mesh.stripLen)
		}
		if draw.DepthTest || draw.Lighting {
			t.Fatal("drew with depth test or lighting enabled")
		}
		if draw.TexEnvMode != int32(gles.REPLACE) {
			t.Fatalf("drew with texture env mode %#x, want REPLACE", draw.TexEnvMode)
		}
		if _, ok := draw.BoundTexture[0]; !ok {
			t.Fatal("drew without a texture bound on unit 0")
		}
	}
}

func TestDisplayManaged_DrawsQuadWithoutCompensation(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	s.SetDistortionCompensation(false)
	s.UploadPixels(solidFrame(640, 480, []byte{1, 2, 3, 4}))

	s.DisplayManaged()

	if len(d.Draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(d.Draws))
	}
	draw := d.Draws[0]
	if draw.Count != 4 {
		t.Fatalf("quad draw count = %d, want 4", draw.Count)
	}
	wantVerts := []float32{0, 0, 640, 0, 0, 480, 640, 480}
	for i := range wantVerts {
		if draw.Verts[i] != wantVerts[i] {
			t.Fatalf("quad verts = %v, want %v", draw.Verts, wantVerts)
		}
	}
}

func TestDisplayManaged_RestoresState(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	s.SetDistortionCompensation(false)
	s.UploadPixels(solidFrame(640, 480, []byte{1, 2, 3, 4}))

	envModes := []int32{int32(gles.MODULATE), int32(gles.REPLACE), glDecal, glAdd}
	for i := 0; i < 1000; i++ {
		depth := i%2 == 0
		lighting := i%3 == 0
		env := envModes[i%len(envModes)]
		d.SetEnabled(gles.DEPTH_TEST, depth)
		d.SetEnabled(gles.LIGHTING, lighting)
		d.SetTexEnvMode(env)

		s.DisplayManaged()

		if got := d.IsEnabled(gles.DEPTH_TEST); got != depth {
			t.Fatalf("iteration %d: depth test = %v, want %v", i, got, depth)
		}
		if got := d.IsEnabled(gles.LIGHTING); got != lighting {
			t.Fatalf("iteration %d: lighting = %v, want %v", i, got, lighting)
		}
		if got := d.TexEnvMode(); got != env {
			t.Fatalf("iteration %d: texture env mode = %#x, want %#x", i, got, env)
		}
		if d.StackDepth(gles.PROJECTION) != 1 || d.StackDepth(gles.MODELVIEW) != 1 {
			t.Fatalf("iteration %d: matrix stacks not restored", i)
		}
	}
}

func TestDisplayManaged_IdleDrawsBlack(t *testing.T) {
	// Before the first upload the eagerly allocated texture is
	// zero-filled, so the managed display draws a defined black plane.
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)

	s.DisplayManaged()

	if len(d.Draws) == 0 {
		t.Fatal("no draw submitted in idle state")
	}
	tex := d.Textures[d.Draws[0].BoundTexture[0]]
	for _, b := range tex.Pix {
		if b != 0 {
			t.Fatal("idle draw sampled non-zero texture content")
		}
	}
}

func TestDisplayManaged_NothingAfterInvalidation(t *testing.T) {
	// Between a geometry change and the next upload there is no frame
	// at the new geometry; nothing is drawn.
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	s.UploadPixels(solidFrame(640, 480, []byte{1, 2, 3, 4}))
	s.SetBufferSize(704, 512)

	before := len(d.Draws)
	s.DisplayManaged()
	if len(d.Draws) != before {
		t.Error("display drew despite invalidated texture storage")
	}

	// State is still saved and restored correctly around the no-op.
	if d.StackDepth(gles.PROJECTION) != 1 || d.StackDepth(gles.MODELVIEW) != 1 {
		t.Error("matrix stacks not restored")
	}
}

func TestDisplayManaged_DistortionToggleIdempotent(t *testing.T) {
	runOnce := func(toggles int) []fakegl.Draw {
		d := newDesktopFake()
		s := Setup(d, testParams(), PixelFormatRGBA)
		s.UploadPixels(solidFrame(640, 480, []byte{9, 9, 9, 9}))
		for i := 0; i < toggles; i++ {
			s.SetDistortionCompensation(true)
		}
		s.DisplayManaged()
		return d.Draws
	}

	once := runOnce(1)
	twice := runOnce(2)
	if len(once) != len(twice) {
		t.Fatalf("draw count differs: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Count != twice[i].Count || once[i].First != twice[i].First {
			t.Fatalf("draw %d differs after repeated toggle", i)
		}
		for j := range once[i].Verts {
			if once[i].Verts[j] != twice[i].Verts[j] {
				t.Fatalf("draw %d vertex %d differs after repeated toggle", i, j)
			}
		}
	}
}

func TestDisplayManaged_BiplanarBindsBothPlanes(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatNV12)
	s.UploadPixelsBiPlanar(solidFrame(640, 480, []byte{0x80}), solidFrame(320, 240, []byte{0x10, 0x20}))

	s.DisplayManaged()

	if len(d.Draws) == 0 {
		t.Fatal("no draw submitted")
	}
	draw := d.Draws[0]
	if _, ok := draw.BoundTexture[0]; !ok {
		t.Error("luma plane not bound on unit 0")
	}
	if _, ok := draw.BoundTexture[1]; !ok {
		t.Error("chroma plane not bound on unit 1")
	}
}

func TestDisplayStateful_LeavesCallerStateAlone(t *testing.T) {
	d := newDesktopFake()
	s := Setup(d, testParams(), PixelFormatRGBA)
	s.UploadPixels(solidFrame(640, 480, []byte{1, 2, 3, 4}))

	// The caller has depth testing on and a custom projection; the
	// stateful pass must draw under exactly that state.
	d.SetEnabled(gles.DEPTH_TEST, true)
	d.SetTexEnvMode(glDecal)

	s.DisplayStateful()

	if len(d.Draws) == 0 {
		t.Fatal("no draw submitted")
	}
	draw := d.Draws[0]
	if !draw.DepthTest {
		t.Error("stateful display disabled the caller's depth test")
	}
	if draw.TexEnvMode != glDecal {
		t.Errorf("stateful display changed texture env mode to %#x", draw.TexEnvMode)
	}
	if !d.IsEnabled(gles.DEPTH_TEST) {
		t.Error("depth test not left enabled")
	}
	if d.StackDepth(gles.PROJECTION) != 1 || d.StackDepth(gles.MODELVIEW) != 1 {
		t.Error("stateful display touched the matrix stacks")
	}
}

func TestEndToEnd_SolidColorFullWindowQuad(t *testing.T) {
	// Setup with a 640x480 calibration, default configuration, one
	// solid-color upload, compensation off, zoom 1: the managed
	// display must submit a single quad covering the full window,
	// sampling a solid-color texture edge to edge.
	d := newDesktopFake() // 640x480 viewport
	s := Setup(d, testParams(), PixelFormatRGBA)
	if s == nil {
		t.Fatal("Setup returned nil")
	}
	s.SetDistortionCompensation(false)

	texel := []byte{0x12, 0x34, 0x56, 0xFF}
	if !s.UploadPixels(solidFrame(640, 480, texel)) {
		t.Fatal("upload failed")
	}
	s.DisplayManaged()

	if len(d.Draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(d.Draws))
	}
	draw := d.Draws[0]

	// The quad's corners land exactly on the clip-space corners, i.e.
	// the image fills the window.
	proj := mgl32.Mat4(draw.Projection)
	corners := []struct{ x, y, cx, cy float32 }{
		{0, 0, -1, -1},
		{640, 0, 1, -1},
		{0, 480, -1, 1},
		{640, 480, 1, 1},
	}
	for _, c := range corners {
		if x, y := apply(proj, c.x, c.y); !near(x, c.cx) || !near(y, c.cy) {
			t.Errorf("corner (%v, %v) -> (%v, %v), want (%v, %v)", c.x, c.y, x, y, c.cx, c.cy)
		}
	}

	// Texture coordinates span the whole image.
	wantTC := []float32{0, 0, 1, 0, 0, 1, 1, 1}
	for i := range wantTC {
		if draw.TexCoords[i] != wantTC[i] {
			t.Fatalf("texcoords = %v, want %v", draw.TexCoords, wantTC)
		}
	}

	// And the sampled texture is the solid color everywhere.
	tex := d.Textures[draw.BoundTexture[0]]
	for i := 0; i+4 <= len(tex.Pix); i += 4 {
		if tex.Pix[i] != texel[0] || tex.Pix[i+1] != texel[1] || tex.Pix[i+2] != texel[2] || tex.Pix[i+3] != texel[3] {
			t.Fatalf("texel at %d = %v, want %v", i, tex.Pix[i:i+4], texel)
		}
	}

	if draw.TexEnvMode != int32(gles.REPLACE) || draw.DepthTest || draw.Lighting {
		t.Error("draw state not the managed 2-D background state")
	}
}
