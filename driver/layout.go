// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package driver

// ShaderDataType describes the type of a vertex attribute.
type ShaderDataType int

// Shader data types.
const (
	Float ShaderDataType = iota + 1
	Float2
	Float3
	Float4
	Mat3
	Mat4
	Int
	Int2
	Int3
	Int4
	Bool
)

// Size returns the size of t in bytes.
func (t ShaderDataType) Size() int {
	switch t {
	case Float, Int:
		return 4
	case Float2, Int2:
		return 4 * 2
	case Float3, Int3:
		return 4 * 3
	case Float4, Int4:
		return 4 * 4
	case Mat3:
		return 4 * 3 * 3
	case Mat4:
		return 4 * 4 * 4
	case Bool:
		return 1
	}
	return 0
}

// Count returns the number of components in t.
// Matrix types count their columns.
func (t ShaderDataType) Count() int {
	switch t {
	case Float, Int, Bool:
		return 1
	case Float2, Int2:
		return 2
	case Float3, Int3, Mat3:
		return 3
	case Float4, Int4, Mat4:
		return 4
	}
	return 0
}

// BufferElement describes a single vertex attribute.
// Size and Offset are computed by NewBufferLayout.
type BufferElement struct {
	Name       string
	Type       ShaderDataType
	Normalized bool
	Size       int
	Offset     int
}

// BufferLayout describes the interleaved attributes of
// vertex data.
type BufferLayout struct {
	elems  []BufferElement
	stride int
	vlen   int
}

// NewBufferLayout creates a layout from elems, in
// declaration order.
// Offsets, stride and vertex length are derived by
// summing element sizes and counts.
func NewBufferLayout(elems ...BufferElement) BufferLayout {
	l := BufferLayout{elems: make([]BufferElement, len(elems))}
	copy(l.elems, elems)
	for i := range l.elems {
		e := &l.elems[i]
		e.Size = e.Type.Size()
		e.Offset = l.stride
		l.stride += e.Size
		l.vlen += e.Type.Count()
	}
	return l
}

// Elements returns the elements of l.
// The slice must not be modified.
func (l *BufferLayout) Elements() []BufferElement { return l.elems }

// Stride returns the number of bytes between
// consecutive vertices.
func (l *BufferLayout) Stride() int { return l.stride }

// VertexLength returns the number of components
// that make up a single vertex.
func (l *BufferLayout) VertexLength() int { return l.vlen }
