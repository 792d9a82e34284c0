// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"github.com/juzzbott/lightframe-engine/resource"
)

// Material associates shaders with render passes and
// holds a diffuse texture.
// Handles refer to resources of a resource.Registry.
type Material struct {
	shaders [passCount]resource.Handle
	// Diffuse is the handle of the diffuse texture.
	Diffuse resource.Handle
}

// NewMaterial creates a new material with the given
// diffuse texture and no shaders.
func NewMaterial(diffuse resource.Handle) *Material {
	return &Material{Diffuse: diffuse}
}

// AddShader sets the shader used in pass.
// It has no effect if shader is resource.None.
func (m *Material) AddShader(pass RenderPass, shader resource.Handle) {
	if shader == resource.None {
		return
	}
	if pass < 0 || pass >= passCount {
		panic("engine: invalid render pass")
	}
	m.shaders[pass] = shader
}

// Shader returns the shader used in pass, or
// resource.None if there is none.
// Callers must skip the pass when it returns None.
func (m *Material) Shader(pass RenderPass) resource.Handle {
	if pass < 0 || pass >= passCount {
		return resource.None
	}
	return m.shaders[pass]
}
