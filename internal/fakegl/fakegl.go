// Package fakegl provides a state-tracking, in-memory implementation of
// gles.Driver for tests. It models the slice of GL semantics argl
// depends on — enable flags, texture objects and their storage, the
// per-unit texture environment, matrix stacks, and client arrays — and
// records every draw call with a snapshot of the state it was submitted
// under, so tests can assert on what would have reached the hardware.
package fakegl

import (
	"fmt"

	"github.com/arvideo/argl/gles"
)

// Texture is the storage and parameters of one fake texture object.
type Texture struct {
	Width, Height  int32
	InternalFormat int32
	Format, Type   uint32
	Params         map[uint32]int32

	// Pix is the texture content, len Width*Height*bytes-per-texel for
	// the allocation format. TexSubImage2D writes into it row by row.
	Pix []byte

	// Allocations counts TexImage2D calls, Uploads TexSubImage2D calls.
	Allocations int
	Uploads     int
}

// Draw is the snapshot recorded at one DrawArrays call.
type Draw struct {
	Mode         uint32
	First, Count int32

	Projection [16]float32
	Modelview  [16]float32

	// Verts and TexCoords are copies of the client arrays at submit
	// time (TexCoords for client texture unit 0).
	Verts     []float32
	TexCoords []float32

	// BoundTexture maps texture unit (0, 1) to the texture object name
	// bound there, for units with TEXTURE_2D enabled.
	BoundTexture map[int]uint32

	TexEnvMode int32
	DepthTest  bool
	Lighting   bool
}

// Driver is a fake gles.Driver. The zero value is not usable; create
// with New.
type Driver struct {
	// Version and Extensions configure what GetString reports.
	Version    string
	Extensions string

	// Viewport is what GetIntegerv(VIEWPORT) reports.
	Viewport [4]int32

	// MaxTextureSize is what GetIntegerv(MAX_TEXTURE_SIZE) reports.
	MaxTextureSize int32

	// Textures holds all live texture objects by name.
	Textures map[uint32]*Texture

	// Draws holds one entry per DrawArrays call.
	Draws []Draw

	// Mutations counts every state-changing call, so tests can assert
	// that a failed operation touched no GPU state.
	Mutations int

	enabled     map[uint32]bool
	texEnvMode  map[uint32]int32 // per texture unit
	activeUnit  uint32
	clientUnit  uint32
	bound       map[uint32]uint32 // unit -> texture name
	nextName    uint32
	unpackAlign int32

	matrixMode uint32
	stacks     map[uint32][][16]float32 // mode -> stack, last is current

	vertexPtr       []float32
	texCoordPtr     map[uint32][]float32 // client unit -> array
	vertexEnabled   bool
	texCoordEnabled map[uint32]bool
}

var _ gles.Driver = (*Driver)(nil)

var identity = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// New returns a fake driver reporting the given version and extension
// strings, with a 640x480 viewport and a 4096 texture size limit.
func New(version, extensions string) *Driver {
	return &Driver{
		Version:        version,
		Extensions:     extensions,
		Viewport:       [4]int32{0, 0, 640, 480},
		MaxTextureSize: 4096,
		Textures:       make(map[uint32]*Texture),
		enabled:        make(map[uint32]bool),
		texEnvMode: map[uint32]int32{
			gles.TEXTURE0: int32(gles.MODULATE),
			gles.TEXTURE1: int32(gles.MODULATE),
		},
		activeUnit: gles.TEXTURE0,
		clientUnit: gles.TEXTURE0,
		bound:      make(map[uint32]uint32),
		nextName:   1,
		matrixMode: gles.MODELVIEW,
		stacks: map[uint32][][16]float32{
			gles.MODELVIEW:  {identity},
			gles.PROJECTION: {identity},
		},
		texCoordPtr:     make(map[uint32][]float32),
		texCoordEnabled: make(map[uint32]bool),
	}
}

func (d *Driver) GetString(name uint32) string {
	switch name {
	case gles.VERSION:
		return d.Version
	case gles.EXTENSIONS:
		return d.Extensions
	}
	return ""
}

func (d *Driver) GetIntegerv(pname uint32, dst []int32) {
	switch pname {
	case gles.VIEWPORT:
		copy(dst, d.Viewport[:])
	case gles.MAX_TEXTURE_SIZE:
		dst[0] = d.MaxTextureSize
	}
}

func (d *Driver) GetTexEnviv(target, pname uint32, dst []int32) {
	if target == gles.TEXTURE_ENV && pname == gles.TEXTURE_ENV_MODE {
		dst[0] = d.texEnvMode[d.activeUnit]
	}
}

func (d *Driver) IsEnabled(capability uint32) bool {
	if capability == gles.TEXTURE_2D {
		return d.enabled[texture2DKey(d.activeUnit)]
	}
	return d.enabled[capability]
}

// texture2DKey makes TEXTURE_2D enable state per-unit, as fixed
// function GL defines it.
func texture2DKey(unit uint32) uint32 {
	return gles.TEXTURE_2D | unit<<16
}

func (d *Driver) Enable(capability uint32) {
	d.Mutations++
	if capability == gles.TEXTURE_2D {
		capability = texture2DKey(d.activeUnit)
	}
	d.enabled[capability] = true
}

func (d *Driver) Disable(capability uint32) {
	d.Mutations++
	if capability == gles.TEXTURE_2D {
		capability = texture2DKey(d.activeUnit)
	}
	d.enabled[capability] = false
}

// SetEnabled force-sets a capability from a test, without counting as
// a mutation.
func (d *Driver) SetEnabled(capability uint32, on bool) {
	d.enabled[capability] = on
}

// SetTexEnvMode force-sets the texture environment mode of unit 0 from
// a test.
func (d *Driver) SetTexEnvMode(mode int32) {
	d.texEnvMode[gles.TEXTURE0] = mode
}

// TexEnvMode reports the texture environment mode of unit 0.
func (d *Driver) TexEnvMode() int32 {
	return d.texEnvMode[gles.TEXTURE0]
}

func (d *Driver) GenTexture() uint32 {
	d.Mutations++
	name := d.nextName
	d.nextName++
	d.Textures[name] = &Texture{Params: make(map[uint32]int32)}
	return name
}

func (d *Driver) DeleteTexture(tex uint32) {
	d.Mutations++
	delete(d.Textures, tex)
	for unit, bound := range d.bound {
		if bound == tex {
			d.bound[unit] = 0
		}
	}
}

func (d *Driver) ActiveTexture(unit uint32) {
	d.activeUnit = unit
}

func (d *Driver) ClientActiveTexture(unit uint32) {
	d.clientUnit = unit
}

func (d *Driver) BindTexture(target, tex uint32) {
	d.Mutations++
	d.bound[d.activeUnit] = tex
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.Mutations++
	if t := d.boundTexture(); t != nil {
		t.Params[pname] = param
	}
}

func (d *Driver) TexEnvi(target, pname uint32, param int32) {
	d.Mutations++
	if target == gles.TEXTURE_ENV && pname == gles.TEXTURE_ENV_MODE {
		d.texEnvMode[d.activeUnit] = param
	}
}

func (d *Driver) PixelStorei(pname uint32, param int32) {
	if pname == gles.UNPACK_ALIGNMENT {
		d.unpackAlign = param
	}
}

func (d *Driver) boundTexture() *Texture {
	return d.Textures[d.bound[d.activeUnit]]
}

// texelSize returns bytes per texel for an upload format/type pair.
func texelSize(format, xtype uint32) int {
	if xtype != gles.UNSIGNED_BYTE {
		return 2 // every packed short type
	}
	switch format {
	case gles.RGBA, gles.BGRA:
		return 4
	case gles.RGB:
		return 3
	case gles.LUMINANCE_ALPHA:
		return 2
	default:
		return 1
	}
}

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels []byte) {
	d.Mutations++
	t := d.boundTexture()
	if t == nil {
		panic("fakegl: TexImage2D with no bound texture")
	}
	t.Width, t.Height = width, height
	t.InternalFormat = internalFormat
	t.Format, t.Type = format, xtype
	t.Allocations++
	size := int(width) * int(height) * texelSize(format, xtype)
	t.Pix = make([]byte, size)
	if pixels != nil {
		copy(t.Pix, pixels)
	}
}

func (d *Driver) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	d.Mutations++
	t := d.boundTexture()
	if t == nil || t.Pix == nil {
		panic("fakegl: TexSubImage2D with no texture storage")
	}
	if xoffset+width > t.Width || yoffset+height > t.Height {
		panic(fmt.Sprintf("fakegl: TexSubImage2D region %dx%d+%d+%d exceeds storage %dx%d",
			width, height, xoffset, yoffset, t.Width, t.Height))
	}
	ts := texelSize(format, xtype)
	srcStride := int(width) * ts
	dstStride := int(t.Width) * ts
	for row := 0; row < int(height); row++ {
		src := pixels[row*srcStride : (row+1)*srcStride]
		off := (int(yoffset)+row)*dstStride + int(xoffset)*ts
		copy(t.Pix[off:off+srcStride], src)
	}
	t.Uploads++
}

func (d *Driver) MatrixMode(mode uint32) {
	d.matrixMode = mode
}

func (d *Driver) PushMatrix() {
	d.Mutations++
	st := d.stacks[d.matrixMode]
	d.stacks[d.matrixMode] = append(st, st[len(st)-1])
}

func (d *Driver) PopMatrix() {
	d.Mutations++
	st := d.stacks[d.matrixMode]
	if len(st) < 2 {
		panic("fakegl: PopMatrix on stack of depth 1")
	}
	d.stacks[d.matrixMode] = st[:len(st)-1]
}

func (d *Driver) LoadIdentity() {
	d.Mutations++
	d.setCurrent(identity)
}

func (d *Driver) LoadMatrixf(m *[16]float32) {
	d.Mutations++
	d.setCurrent(*m)
}

func (d *Driver) setCurrent(m [16]float32) {
	st := d.stacks[d.matrixMode]
	st[len(st)-1] = m
}

// Current returns the top of the matrix stack for mode.
func (d *Driver) Current(mode uint32) [16]float32 {
	st := d.stacks[mode]
	return st[len(st)-1]
}

// StackDepth returns the matrix stack depth for mode.
func (d *Driver) StackDepth(mode uint32) int {
	return len(d.stacks[mode])
}

func (d *Driver) EnableClientState(array uint32) {
	d.Mutations++
	switch array {
	case gles.VERTEX_ARRAY:
		d.vertexEnabled = true
	case gles.TEXTURE_COORD_ARRAY:
		d.texCoordEnabled[d.clientUnit] = true
	}
}

func (d *Driver) DisableClientState(array uint32) {
	d.Mutations++
	switch array {
	case gles.VERTEX_ARRAY:
		d.vertexEnabled = false
	case gles.TEXTURE_COORD_ARRAY:
		d.texCoordEnabled[d.clientUnit] = false
	}
}

func (d *Driver) VertexPointer(size, stride int32, data []float32) {
	d.vertexPtr = data
}

func (d *Driver) TexCoordPointer(size, stride int32, data []float32) {
	d.texCoordPtr[d.clientUnit] = data
}

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	d.Mutations++
	if !d.vertexEnabled {
		panic("fakegl: DrawArrays without vertex array enabled")
	}
	end := 2 * (int(first) + int(count))
	if end > len(d.vertexPtr) {
		panic(fmt.Sprintf("fakegl: DrawArrays reads %d floats, vertex array has %d", end, len(d.vertexPtr)))
	}

	bound := make(map[int]uint32)
	if d.enabled[texture2DKey(gles.TEXTURE0)] {
		bound[0] = d.bound[gles.TEXTURE0]
	}
	if d.enabled[texture2DKey(gles.TEXTURE1)] {
		bound[1] = d.bound[gles.TEXTURE1]
	}

	var verts, tcs []float32
	verts = append(verts, d.vertexPtr[2*first:end]...)
	if d.texCoordEnabled[gles.TEXTURE0] {
		tc := d.texCoordPtr[gles.TEXTURE0]
		if end > len(tc) {
			panic("fakegl: DrawArrays reads past texcoord array")
		}
		tcs = append(tcs, tc[2*first:end]...)
	}

	d.Draws = append(d.Draws, Draw{
		Mode:         mode,
		First:        first,
		Count:        count,
		Projection:   d.Current(gles.PROJECTION),
		Modelview:    d.Current(gles.MODELVIEW),
		Verts:        verts,
		TexCoords:    tcs,
		BoundTexture: bound,
		TexEnvMode:   d.texEnvMode[gles.TEXTURE0],
		DepthTest:    d.enabled[gles.DEPTH_TEST],
		Lighting:     d.enabled[gles.LIGHTING],
	})
}
