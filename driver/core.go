// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package driver

import (
	"github.com/juzzbott/lightframe-engine/linear"
)

// GPU is the main interface to an underlying driver
// implementation.
// It is used to create GPU objects and to issue the
// state changes and draw calls of a frame.
// A GPU is obtained from a call to Driver.Open.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// NewVertexBuffer creates a new vertex buffer
	// holding a copy of data.
	// len(data) must be a multiple of
	// layout.VertexLength().
	NewVertexBuffer(data []float32, layout BufferLayout) (VertexBuffer, error)

	// NewIndexBuffer creates a new index buffer holding
	// a copy of indices.
	NewIndexBuffer(indices []uint32) (IndexBuffer, error)

	// NewVertexArray creates a new vertex array that
	// binds the attribute layout of vb together with ib.
	// The vertex array does not own either buffer.
	NewVertexArray(vb VertexBuffer, ib IndexBuffer) (VertexArray, error)

	// NewShader creates a new shader program from src.
	// If compilation fails, it returns a non-nil Shader
	// whose Loaded method reports false, along with
	// the error.
	NewShader(src *ShaderSource) (Shader, error)

	// NewTexture creates a new 2D texture and uploads
	// pixels to it.
	// If the upload fails, it returns a non-nil Texture
	// whose Loaded method reports false, along with
	// the error.
	NewTexture(param *TexParam, pixels []byte) (Texture, error)

	// SetRaster sets the rasterization state used by
	// subsequent draw calls.
	SetRaster(rs *RasterState)

	// SetDepth sets the depth state used by subsequent
	// draw calls.
	SetDepth(ds *DSState)

	// SetBlend enables or disables color blending.
	SetBlend(enabled bool)

	// DrawIndexed draws indexed triangles using the
	// currently bound shader and vertex array.
	DrawIndexed(idxCount, instCount, baseIdx int)
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may allocate external
// memory that is not managed by GC, so Destroy must be
// called explicitly to ensure such memory is deallocated.
type Destroyer interface {
	Destroy()
}

// VertexBuffer is the interface that defines a GPU buffer
// of vertex data.
// Its contents and size are fixed at creation.
type VertexBuffer interface {
	Destroyer

	// Bind binds the buffer.
	Bind()

	// Unbind unbinds the buffer.
	Unbind()

	// ID returns the identifier assigned by the driver.
	ID() uint32

	// Layout returns the attribute layout of the data.
	Layout() BufferLayout

	// VertexCount returns the number of vertices
	// in the buffer.
	VertexCount() int
}

// IndexBuffer is the interface that defines a GPU buffer
// of 32-bit indices.
// Its contents and size are fixed at creation.
type IndexBuffer interface {
	Destroyer

	// Bind binds the buffer.
	Bind()

	// Unbind unbinds the buffer.
	Unbind()

	// ID returns the identifier assigned by the driver.
	ID() uint32

	// IndexCount returns the number of indices
	// in the buffer.
	IndexCount() int
}

// VertexArray is the interface that defines the binding
// between a vertex buffer's attribute layout and an
// index buffer.
type VertexArray interface {
	Destroyer

	// Bind binds the vertex array.
	Bind()

	// Unbind unbinds the vertex array.
	Unbind()

	// ID returns the identifier assigned by the driver.
	ID() uint32
}

// Shader is the interface that defines a linked shader
// program.
// Uniform setters resolve names through a cache kept by
// the implementation. Setting a uniform that the program
// does not declare has no effect.
type Shader interface {
	Destroyer

	// Use makes the program current.
	Use()

	// ID returns the identifier assigned by the driver.
	ID() uint32

	// Loaded returns whether the program was compiled
	// and linked successfully.
	Loaded() bool

	SetInt(name string, v int32)
	SetFloat2(name string, x, y float32)
	SetFloat4(name string, x, y, z, w float32)
	SetMat4(name string, m *linear.M4)
}

// Texture is the interface that defines a sampled 2D
// texture.
type Texture interface {
	Destroyer

	// Bind binds the texture to the given slot.
	Bind(slot int)

	// ID returns the identifier assigned by the driver.
	ID() uint32

	Width() int
	Height() int

	// Loaded returns whether the texture data was
	// uploaded successfully.
	Loaded() bool
}

// Lang is the type of shader source languages.
type Lang int

// Shader languages.
const (
	GLSL Lang = iota
	WGSL
	// Binary SPIR-V modules.
	SPIRV
)

// String implements fmt.Stringer.
func (l Lang) String() string {
	switch l {
	case GLSL:
		return "glsl"
	case WGSL:
		return "wgsl"
	case SPIRV:
		return "spirv"
	}
	return "unknown"
}

// ShaderSource holds the code of each programmable
// stage of a shader program.
type ShaderSource struct {
	Lang     Lang
	Vertex   []byte
	Fragment []byte
}

// PixelFmt describes the format of a pixel.
type PixelFmt int

// Pixel formats.
const (
	RGB8un PixelFmt = iota
	RGBA8un
)

// Channels returns the number of channels in f.
func (f PixelFmt) Channels() int {
	switch f {
	case RGB8un:
		return 3
	case RGBA8un:
		return 4
	}
	return 0
}

// TexParam describes the parameters of a new texture.
type TexParam struct {
	PixelFmt PixelFmt
	Width    int
	Height   int
	Mipmap   bool
}

// CullMode is the type of cull modes, which
// determines primitive culling based on triangle
// facing direction.
// CNone disables face culling.
type CullMode int

// Cull modes.
const (
	CNone CullMode = iota
	CFront
	CBack
)

// String implements fmt.Stringer.
func (m CullMode) String() string {
	switch m {
	case CNone:
		return "none"
	case CFront:
		return "front"
	case CBack:
		return "back"
	}
	return "unknown"
}

// FillMode is the type of polygon fill modes, which
// determines the final rasterization of triangles.
type FillMode int

// Polygon fill modes.
const (
	FFill FillMode = iota
	FLines
)

// String implements fmt.Stringer.
func (m FillMode) String() string {
	switch m {
	case FFill:
		return "fill"
	case FLines:
		return "line"
	}
	return "unknown"
}

// RasterState defines the rasterization state of
// a draw call.
type RasterState struct {
	// Winding order is either clockwise or counter-clockwise.
	Clockwise bool
	Cull      CullMode
	Fill      FillMode
}

// CmpFunc is the type of comparison functions.
type CmpFunc int

// Comparison functions.
const (
	CNever CmpFunc = iota
	CLess
	CEqual
	CLessEqual
	CGreater
	CNotEqual
	CGreaterEqual
	CAlways
)

// DSState defines the depth state of a draw call.
type DSState struct {
	// DepthTest enables the depth test.
	DepthTest bool
	// DepthWrite enables depth writes.
	DepthWrite bool
	DepthCmp   CmpFunc
}
