// Command arglview displays a synthetic camera feed through the argl
// pipeline in a GLFW window: checkerboard frames with a moving bar are
// uploaded each frame and drawn lens-corrected as the background plane.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/arvideo/argl"
	"github.com/arvideo/argl/gles/gl21"
)

func init() {
	// GLFW and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	var (
		width   = flag.Int("width", 640, "camera image width")
		height  = flag.Int("height", 480, "camera image height")
		factor  = flag.Float64("distortion", 25.0, "radial distortion factor (calibration units)")
		zoom    = flag.Float64("zoom", 1.0, "display zoom")
		flipV   = flag.Bool("flipv", false, "flip the image vertically")
		noComp  = flag.Bool("nocomp", false, "disable distortion compensation")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		argl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	win, err := glfw.CreateWindow(*width, *height, "arglview", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	drv, err := gl21.New()
	if err != nil {
		log.Fatalf("gl driver: %v", err)
	}

	cparam := &argl.CameraParams{
		ImageWidth:  *width,
		ImageHeight: *height,
		DistFactor: argl.DistFactor{
			CenterX: float64(*width) / 2,
			CenterY: float64(*height) / 2,
			Factor:  *factor,
			Scale:   1.0,
		},
	}
	settings := argl.Setup(drv, cparam, argl.PixelFormatRGBA)
	if settings == nil {
		log.Fatal("argl setup failed")
	}
	defer settings.Cleanup()

	settings.SetZoom(*zoom)
	settings.SetFlipV(*flipV)
	settings.SetDistortionCompensation(!*noComp)

	frame := make([]byte, *width**height*4)
	for tick := 0; !win.ShouldClose(); tick++ {
		renderFrame(frame, *width, *height, tick)
		settings.UploadPixels(frame)
		settings.DisplayManaged()
		win.SwapBuffers()
		glfw.PollEvents()
	}
}

// renderFrame fills buf with an RGBA checkerboard plus a moving
// vertical bar, a stand-in for a live camera image.
func renderFrame(buf []byte, w, h, tick int) {
	bar := (tick * 2) % w
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			var v byte
			if (x/32+y/32)%2 == 0 {
				v = 0xC0
			} else {
				v = 0x40
			}
			buf[i] = v
			buf[i+1] = v
			if x >= bar && x < bar+16 {
				buf[i+2] = 0xFF
			} else {
				buf[i+2] = v
			}
			buf[i+3] = 0xFF
		}
	}
}
