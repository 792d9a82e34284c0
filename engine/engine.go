// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package engine implements real-time rendering.
//
// A frame is rendered by calling BeginFrame, then Submit
// once per object and finally EndFrame, which issues the
// GPU calls. Renderer.RenderScene does all three for the
// objects of a scene.
package engine

import (
	"github.com/juzzbott/lightframe-engine/driver"
)

const (
	// UniformBinding is the binding point of the
	// per-object transform uniform.
	UniformBinding = 1

	dflTransformUniform = "uTransform"
	dflTextureUniform   = "uTexture1"
	dflTextureSlot      = 0
	maxTextureSlot      = 15
)

// SortKey selects the field by which the render queue
// is sorted.
type SortKey int

// Sort keys.
const (
	// SortNone keeps submission order.
	SortNone SortKey = iota
	SortByPass
	SortByPipeline
)

// String implements fmt.Stringer.
func (k SortKey) String() string {
	switch k {
	case SortNone:
		return "none"
	case SortByPass:
		return "pass"
	case SortByPipeline:
		return "pipeline"
	}
	return "unknown"
}

// Config is used to configure a Renderer.
type Config struct {
	// How the render queue is sorted before drawing.
	//
	// Default is SortByPass.
	SortBy SortKey

	// Whether to translate the render queue into a
	// CommandBuffer every frame.
	// The command buffer is only recorded; draw calls
	// are issued from the queue.
	//
	// Default is false.
	RecordCommands bool

	// The render state that RenderScene uses for objects
	// that do not set one.
	//
	// Default is DefaultRenderState().
	DefaultState RenderState

	// The pass that RenderScene submits to.
	//
	// Default is PassGeometry.
	ScenePass RenderPass

	// Name of the mat4 uniform that receives the
	// world-view-projection transform.
	//
	// Default is "uTransform".
	TransformUniform string

	// Name of the sampler uniform of the diffuse texture.
	//
	// Default is "uTexture1".
	TextureUniform string

	// Texture slot of the diffuse texture.
	//
	// Default is 0.
	TextureSlot int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SortBy:           SortByPass,
		RecordCommands:   false,
		DefaultState:     DefaultRenderState(),
		ScenePass:        PassGeometry,
		TransformUniform: dflTransformUniform,
		TextureUniform:   dflTextureUniform,
		TextureSlot:      dflTextureSlot,
	}
}

// Validate checks that c can be used by a Renderer.
func (c *Config) Validate() error {
	switch {
	case c.SortBy < SortNone || c.SortBy > SortByPipeline:
		return newRendErr("invalid Config.SortBy")
	case c.ScenePass < 0 || c.ScenePass >= passCount:
		return newRendErr("invalid Config.ScenePass")
	case c.TransformUniform == "":
		return newRendErr("empty Config.TransformUniform")
	case c.TextureUniform == "":
		return newRendErr("empty Config.TextureUniform")
	case c.TextureSlot < 0 || c.TextureSlot > maxTextureSlot:
		return newRendErr("Config.TextureSlot out of range")
	}
	return c.DefaultState.validate()
}

// RenderState is the fixed-function state of a draw.
type RenderState struct {
	Polygon    driver.FillMode
	Cull       driver.CullMode
	DepthTest  bool
	DepthWrite bool
	Blend      bool
}

// DefaultRenderState returns the default render state:
// wireframe polygons, no culling, depth test and depth
// writes enabled, blending disabled.
func DefaultRenderState() RenderState {
	return RenderState{
		Polygon:    driver.FLines,
		Cull:       driver.CNone,
		DepthTest:  true,
		DepthWrite: true,
	}
}

func (s *RenderState) validate() error {
	switch {
	case s.Polygon != driver.FFill && s.Polygon != driver.FLines:
		return newRendErr("invalid RenderState.Polygon")
	case s.Cull < driver.CNone || s.Cull > driver.CBack:
		return newRendErr("invalid RenderState.Cull")
	}
	return nil
}

// raster returns the driver rasterization state of s.
func (s *RenderState) raster() driver.RasterState {
	return driver.RasterState{Cull: s.Cull, Fill: s.Polygon}
}

// depth returns the driver depth state of s.
func (s *RenderState) depth() driver.DSState {
	return driver.DSState{
		DepthTest:  s.DepthTest,
		DepthWrite: s.DepthWrite,
		DepthCmp:   driver.CLess,
	}
}

// RenderPass identifies a stage of rendering.
type RenderPass int

// Render passes.
const (
	PassShadow RenderPass = iota
	PassGeometry
	PassUI

	passCount
)

// String implements fmt.Stringer.
func (p RenderPass) String() string {
	switch p {
	case PassShadow:
		return "shadow"
	case PassGeometry:
		return "geometry"
	case PassUI:
		return "ui"
	}
	return "unknown"
}
