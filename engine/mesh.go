// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"errors"

	"github.com/juzzbott/lightframe-engine/driver"
)

func newMeshErr(s string) error { return errors.New("mesh: " + s) }

// Mesh is an immutable set of vertex and index buffers
// bound together by a vertex array.
type Mesh struct {
	vb driver.VertexBuffer
	ib driver.IndexBuffer
	va driver.VertexArray
}

// NewMesh creates a new mesh from vertex data described
// by layout and from triangle list indices.
func NewMesh(gpu driver.GPU, vertices []float32, layout driver.BufferLayout, indices []uint32) (*Mesh, error) {
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, newMeshErr("index count is not a positive multiple of 3")
	}
	vb, err := gpu.NewVertexBuffer(vertices, layout)
	if err != nil {
		return nil, err
	}
	ib, err := gpu.NewIndexBuffer(indices)
	if err != nil {
		vb.Destroy()
		return nil, err
	}
	va, err := gpu.NewVertexArray(vb, ib)
	if err != nil {
		ib.Destroy()
		vb.Destroy()
		return nil, err
	}
	return &Mesh{vb, ib, va}, nil
}

// VertexBuffer returns the mesh's vertex buffer.
// The mesh retains ownership.
func (m *Mesh) VertexBuffer() driver.VertexBuffer { return m.vb }

// IndexBuffer returns the mesh's index buffer.
// The mesh retains ownership.
func (m *Mesh) IndexBuffer() driver.IndexBuffer { return m.ib }

// VertexArray returns the mesh's vertex array.
// The mesh retains ownership.
func (m *Mesh) VertexArray() driver.VertexArray { return m.va }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return m.vb.VertexCount() }

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return m.ib.IndexCount() }

// Destroy destroys the mesh's GPU objects.
func (m *Mesh) Destroy() {
	if m == nil || m.va == nil {
		return
	}
	m.va.Destroy()
	m.ib.Destroy()
	m.vb.Destroy()
	*m = Mesh{}
}

// CubeLayout is the vertex layout of NewCube meshes:
// position, color and texture coordinates.
func CubeLayout() driver.BufferLayout {
	return driver.NewBufferLayout(
		driver.BufferElement{Name: "pos", Type: driver.Float3},
		driver.BufferElement{Name: "color", Type: driver.Float3},
		driver.BufferElement{Name: "texCoords", Type: driver.Float2},
	)
}

// NewCube creates a unit cube centered at the origin.
// Each face has its own 4 vertices, so that faces can
// have distinct colors and texture coordinates.
func NewCube(gpu driver.GPU) (*Mesh, error) {
	return NewMesh(gpu, cubeVertices[:], CubeLayout(), cubeIndices[:])
}

// Cube vertices (24) and indices (36).
var (
	cubeVertices = [24 * 8]float32{
		// +X
		0.5, -0.5, -0.5, 0.92, 0.23, 0.18, 0, 0,
		0.5, 0.5, -0.5, 0.85, 0.31, 0.22, 0, 1,
		0.5, 0.5, 0.5, 0.88, 0.40, 0.30, 1, 1,
		0.5, -0.5, 0.5, 0.95, 0.28, 0.20, 1, 0,
		// -X
		-0.5, -0.5, 0.5, 0.18, 0.60, 0.85, 0, 0,
		-0.5, 0.5, 0.5, 0.22, 0.65, 0.90, 0, 1,
		-0.5, 0.5, -0.5, 0.30, 0.70, 0.95, 1, 1,
		-0.5, -0.5, -0.5, 0.15, 0.55, 0.80, 1, 0,
		// +Y
		-0.5, 0.5, -0.5, 0.30, 0.85, 0.35, 0, 0,
		-0.5, 0.5, 0.5, 0.40, 0.90, 0.45, 0, 1,
		0.5, 0.5, 0.5, 0.50, 0.95, 0.55, 1, 1,
		0.5, 0.5, -0.5, 0.35, 0.88, 0.40, 1, 0,
		// -Y
		-0.5, -0.5, 0.5, 0.75, 0.75, 0.20, 0, 0,
		-0.5, -0.5, -0.5, 0.80, 0.80, 0.25, 0, 1,
		0.5, -0.5, -0.5, 0.85, 0.85, 0.30, 1, 1,
		0.5, -0.5, 0.5, 0.78, 0.78, 0.22, 1, 0,
		// +Z
		-0.5, -0.5, 0.5, 0.70, 0.35, 0.85, 0, 0,
		0.5, -0.5, 0.5, 0.75, 0.40, 0.90, 1, 0,
		0.5, 0.5, 0.5, 0.80, 0.45, 0.95, 1, 1,
		-0.5, 0.5, 0.5, 0.72, 0.38, 0.88, 0, 1,
		// -Z
		0.5, -0.5, -0.5, 0.35, 0.35, 0.35, 0, 0,
		-0.5, -0.5, -0.5, 0.45, 0.45, 0.45, 1, 0,
		-0.5, 0.5, -0.5, 0.55, 0.55, 0.55, 1, 1,
		0.5, 0.5, -0.5, 0.65, 0.65, 0.65, 0, 1,
	}

	cubeIndices = [36]uint32{
		0, 1, 2, 2, 3, 0,
		4, 5, 6, 6, 7, 4,
		8, 9, 10, 10, 11, 8,
		12, 13, 14, 14, 15, 12,
		16, 17, 18, 18, 19, 16,
		20, 21, 22, 22, 23, 20,
	}
)
