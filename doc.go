// Package argl draws live camera video as a lens-corrected, GPU-textured
// background plane for augmented-reality applications.
//
// # Overview
//
// argl is the Go successor to the classic AR "graphics subroutines"
// layer: it owns one settings object per OpenGL context, uploads raw
// camera pixel buffers (interleaved or bi-planar luma/chroma) into GPU
// textures, and draws them with configurable zoom, axis flips, and
// 90-degree rotation, compensating for camera lens distortion using a
// precomputed warp mesh. It does not capture video, compute camera
// calibrations, create windows, or detect markers; those collaborators
// only need to hand argl a calibration record and pixel buffers.
//
// # Quick Start
//
//	import (
//	    "github.com/arvideo/argl"
//	    "github.com/arvideo/argl/gles/gl21"
//	)
//
//	// With a native GL context current on this thread:
//	drv, _ := gl21.New()
//	cparam := &argl.CameraParams{
//	    ImageWidth:  640,
//	    ImageHeight: 480,
//	    DistFactor:  argl.DistFactor{CenterX: 320, CenterY: 240, Factor: 0, Scale: 1},
//	}
//	settings := argl.Setup(drv, cparam, argl.PixelFormatRGBA)
//	defer settings.Cleanup()
//
//	for frame := range frames {
//	    settings.UploadPixels(frame)
//	    settings.DisplayManaged()
//	}
//
// # Contexts
//
// Every ContextSettings is tied to the single GL context its gles.Driver
// stands for. The caller keeps that context current on the calling
// thread for every argl call against the settings object; argl performs
// no locking of its own. Independent contexts on independent threads
// are fine, each with its own ContextSettings.
//
// # Failure model
//
// Configuration failures (bad calibration, unsupported pixel format,
// non-positive zoom, buffer geometry the hardware cannot realize) are
// reported as false/nil returns and never partially mutate state. argl
// does not panic and does not use error values on the hot path;
// capability negotiation failures are ordinary outcomes, not exceptions.
package argl
