// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package headless

import (
	"errors"
	"fmt"

	"github.com/juzzbott/lightframe-engine/driver"
)

// vertexBuffer implements driver.VertexBuffer.
type vertexBuffer struct {
	d      *Driver
	id     uint32
	data   []float32
	layout driver.BufferLayout
}

// NewVertexBuffer creates a new vertex buffer.
func (d *Driver) NewVertexBuffer(data []float32, layout driver.BufferLayout) (driver.VertexBuffer, error) {
	if !d.isOpen() {
		return nil, driver.ErrClosed
	}
	vlen := layout.VertexLength()
	if vlen == 0 {
		return nil, errors.New("headless: empty buffer layout")
	}
	if len(data)%vlen != 0 {
		return nil, fmt.Errorf("headless: vertex data length %d is not a multiple of %d", len(data), vlen)
	}
	b := &vertexBuffer{
		d:      d,
		id:     d.nextID(),
		data:   make([]float32, len(data)),
		layout: layout,
	}
	copy(b.data, data)
	return b, nil
}

func (b *vertexBuffer) Bind()   { b.d.record(Call{Op: OpBindVertexBuffer, ID: b.id}) }
func (b *vertexBuffer) Unbind() { b.d.record(Call{Op: OpBindVertexBuffer}) }

func (b *vertexBuffer) ID() uint32 { return b.id }

func (b *vertexBuffer) Layout() driver.BufferLayout { return b.layout }

func (b *vertexBuffer) VertexCount() int {
	if b.data == nil {
		return 0
	}
	return len(b.data) / b.layout.VertexLength()
}

func (b *vertexBuffer) Destroy() {
	if b == nil {
		return
	}
	*b = vertexBuffer{}
}

// indexBuffer implements driver.IndexBuffer.
type indexBuffer struct {
	d       *Driver
	id      uint32
	indices []uint32
}

// NewIndexBuffer creates a new index buffer.
func (d *Driver) NewIndexBuffer(indices []uint32) (driver.IndexBuffer, error) {
	if !d.isOpen() {
		return nil, driver.ErrClosed
	}
	if len(indices) == 0 {
		return nil, errors.New("headless: empty index buffer")
	}
	b := &indexBuffer{
		d:       d,
		id:      d.nextID(),
		indices: make([]uint32, len(indices)),
	}
	copy(b.indices, indices)
	return b, nil
}

func (b *indexBuffer) Bind()   { b.d.record(Call{Op: OpBindIndexBuffer, ID: b.id}) }
func (b *indexBuffer) Unbind() { b.d.record(Call{Op: OpBindIndexBuffer}) }

func (b *indexBuffer) ID() uint32 { return b.id }

func (b *indexBuffer) IndexCount() int { return len(b.indices) }

func (b *indexBuffer) Destroy() {
	if b == nil {
		return
	}
	*b = indexBuffer{}
}

// vertexArray implements driver.VertexArray.
type vertexArray struct {
	d  *Driver
	id uint32
	vb driver.VertexBuffer
	ib driver.IndexBuffer
}

// NewVertexArray creates a new vertex array.
// Indices in ib must refer to vertices in vb.
func (d *Driver) NewVertexArray(vb driver.VertexBuffer, ib driver.IndexBuffer) (driver.VertexArray, error) {
	if !d.isOpen() {
		return nil, driver.ErrClosed
	}
	if vb == nil || ib == nil {
		return nil, errors.New("headless: nil buffer in vertex array")
	}
	if b, ok := ib.(*indexBuffer); ok {
		n := uint32(vb.VertexCount())
		for _, x := range b.indices {
			if x >= n {
				return nil, fmt.Errorf("headless: index %d out of range [0, %d)", x, n)
			}
		}
	}
	return &vertexArray{
		d:  d,
		id: d.nextID(),
		vb: vb,
		ib: ib,
	}, nil
}

func (a *vertexArray) Bind() {
	a.d.mu.Lock()
	a.d.vao = a.id
	a.d.mu.Unlock()
	a.d.record(Call{Op: OpBindVertexArray, ID: a.id})
}

func (a *vertexArray) Unbind() {
	a.d.mu.Lock()
	a.d.vao = 0
	a.d.mu.Unlock()
	a.d.record(Call{Op: OpBindVertexArray})
}

func (a *vertexArray) ID() uint32 { return a.id }

func (a *vertexArray) Destroy() {
	if a == nil {
		return
	}
	*a = vertexArray{}
}
