// Package gles abstracts the small slice of the OpenGL (ES 1.x profile)
// API that argl needs to upload camera frames and draw the video plane.
//
// # Architecture
//
// argl never talks to a GL binding directly. Every operation takes its
// GL entry points from a [Driver], the function table for one native
// graphics context. This keeps the core independent of any particular
// binding, lets a host application bring its own loader, and lets the
// test suite substitute a state-tracking fake driver in place of real
// hardware.
//
//	+-----------+        +-------------+        +----------------+
//	|   argl    | -----> | gles.Driver | -----> | gles/gl21      |
//	| (core)    |        | (interface) |        | (go-gl binding)|
//	+-----------+        +-------------+        +----------------+
//	                            |
//	                            +-------------> internal/fakegl (tests)
//
// # Current-context contract
//
// A Driver stands for exactly one native GL context. The caller must
// make that context current on the calling goroutine's thread before
// invoking anything that reaches the driver; gles performs no context
// switching and no cross-context synchronization of its own.
package gles
