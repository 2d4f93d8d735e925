// Package gl21 implements gles.Driver on top of the go-gl OpenGL 2.1
// binding. The 2.1 compatibility profile carries every fixed-function
// entry point the ES 1.x-style video background pipeline uses, so the
// same core runs unmodified on desktop GL.
//
// The binding loads function pointers from the context current at
// [New] time; create one Driver per native context, with that context
// current.
package gl21
