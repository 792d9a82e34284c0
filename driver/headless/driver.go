// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package headless implements driver interfaces without
// a display or GPU device.
// Every state change and draw call is recorded so that
// the sequence of GPU operations issued by a frame can
// be inspected.
package headless

import (
	"sync"

	"github.com/juzzbott/lightframe-engine/driver"
)

const driverName = "headless"

// Driver implements driver.Driver and driver.GPU.
type Driver struct {
	mu   sync.Mutex
	open bool

	// Last assigned object identifier.
	// Identifiers start at 1, as 0 is never
	// a valid GPU object.
	lastID uint32

	raster driver.RasterState
	depth  driver.DSState
	blend  bool

	// Currently bound objects.
	shader  uint32
	vao     uint32
	texture [maxSlot]uint32

	calls []Call
}

const maxSlot = 16

func init() {
	driver.Register(&Driver{})
}

// Open initializes the driver.
func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		d.open = true
		d.reset()
	}
	return d, nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return driverName }

// Close deinitializes the driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		d.open = false
		d.reset()
	}
}

// Driver returns d.
func (d *Driver) Driver() driver.Driver { return d }

// reset discards recorded calls and state.
// Object identifiers are not reused.
func (d *Driver) reset() {
	d.raster = driver.RasterState{}
	d.depth = driver.DSState{}
	d.blend = false
	d.shader = 0
	d.vao = 0
	d.texture = [maxSlot]uint32{}
	d.calls = d.calls[:0]
}

func (d *Driver) isOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// nextID assigns a new object identifier.
func (d *Driver) nextID() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastID++
	return d.lastID
}

// Op is the type of a recorded operation.
type Op int

// Recorded operations.
const (
	OpUseShader Op = iota
	OpUniform
	OpBindTexture
	OpBindVertexBuffer
	OpBindIndexBuffer
	OpBindVertexArray
	OpSetRaster
	OpSetDepth
	OpSetBlend
	OpDrawIndexed
)

var opNames = [...]string{
	OpUseShader:        "UseShader",
	OpUniform:          "Uniform",
	OpBindTexture:      "BindTexture",
	OpBindVertexBuffer: "BindVertexBuffer",
	OpBindIndexBuffer:  "BindIndexBuffer",
	OpBindVertexArray:  "BindVertexArray",
	OpSetRaster:        "SetRaster",
	OpSetDepth:         "SetDepth",
	OpSetBlend:         "SetBlend",
	OpDrawIndexed:      "DrawIndexed",
}

// String implements fmt.Stringer.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "Op(?)"
	}
	return opNames[op]
}

// Call is a recorded operation.
// ID identifies the object involved, if any.
// For OpBindTexture, Slot is the texture slot.
// For OpUniform, Name is the uniform name.
// For OpDrawIndexed, Count is the index count, Inst is
// the instance count and
// the state fields hold a snapshot of the state
// in effect at the time of the draw, along with
// the bound shader, vertex array and slot 0 texture.
type Call struct {
	Op     Op
	ID     uint32
	Slot   int
	Name   string
	Count  int
	Inst   int
	Raster driver.RasterState
	Depth  driver.DSState
	Blend  bool
	Shader uint32
	VAO    uint32
	Tex    uint32
}

func (d *Driver) record(c Call) {
	d.mu.Lock()
	d.calls = append(d.calls, c)
	d.mu.Unlock()
}

// Calls returns a copy of the calls recorded since the
// last call to Reset.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := make([]Call, len(d.calls))
	copy(c, d.calls)
	return c
}

// Draws returns the recorded OpDrawIndexed calls.
func (d *Driver) Draws() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var c []Call
	for i := range d.calls {
		if d.calls[i].Op == OpDrawIndexed {
			c = append(c, d.calls[i])
		}
	}
	return c
}

// Reset discards recorded calls and bound state.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// SetRaster sets the rasterization state.
func (d *Driver) SetRaster(rs *driver.RasterState) {
	d.mu.Lock()
	d.raster = *rs
	d.mu.Unlock()
	d.record(Call{Op: OpSetRaster, Raster: *rs})
}

// SetDepth sets the depth state.
func (d *Driver) SetDepth(ds *driver.DSState) {
	d.mu.Lock()
	d.depth = *ds
	d.mu.Unlock()
	d.record(Call{Op: OpSetDepth, Depth: *ds})
}

// SetBlend enables or disables blending.
func (d *Driver) SetBlend(enabled bool) {
	d.mu.Lock()
	d.blend = enabled
	d.mu.Unlock()
	d.record(Call{Op: OpSetBlend, Blend: enabled})
}

// DrawIndexed records an indexed draw.
func (d *Driver) DrawIndexed(idxCount, instCount, baseIdx int) {
	d.mu.Lock()
	c := Call{
		Op:     OpDrawIndexed,
		Count:  idxCount,
		Inst:   instCount,
		Raster: d.raster,
		Depth:  d.depth,
		Blend:  d.blend,
		Shader: d.shader,
		VAO:    d.vao,
		Tex:    d.texture[0],
	}
	if baseIdx != 0 {
		c.Name = "base"
	}
	d.mu.Unlock()
	d.record(c)
}
