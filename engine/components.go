// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"go.uber.org/zap"

	"github.com/juzzbott/lightframe-engine/scene"
)

// MeshRendererType is the component type of MeshRenderer.
var MeshRendererType = scene.RegisterComponentType("MeshRenderer")

// MeshRenderer is a component that makes a spatial
// object drawable.
// Mesh and Material are not owned by the component.
type MeshRenderer struct {
	scene.ComponentBase
	Mesh     *Mesh
	Material *Material
	// State overrides Config.DefaultState if not nil.
	State *RenderState
}

// NewMeshRenderer creates a new MeshRenderer.
func NewMeshRenderer(mesh *Mesh, mat *Material) *MeshRenderer {
	return &MeshRenderer{Mesh: mesh, Material: mat}
}

// Type implements scene.Component.
func (*MeshRenderer) Type() scene.ComponentType { return MeshRendererType }

// RenderScene renders a frame with the objects of s.
// Objects that are not spatial or that lack a
// MeshRenderer are skipped.
func (r *Renderer) RenderScene(s *scene.Scene) {
	r.BeginFrame()
	vp := s.Camera().ViewProjection()
	var cmd RenderCommand
	s.ForEach(func(o *scene.Object) {
		xf := o.Spatial()
		if xf == nil {
			return
		}
		mr, ok := scene.ComponentOf[*MeshRenderer](o, MeshRendererType)
		if !ok {
			return
		}
		model := xf.Model()
		cmd = RenderCommand{
			Mesh:     mr.Mesh,
			Material: mr.Material,
			Pass:     r.cfg.ScenePass,
			State:    r.cfg.DefaultState,
		}
		if mr.State != nil {
			cmd.State = *mr.State
		}
		cmd.Transform.Mul(&vp, &model)
		r.Submit(&cmd)
	})
	r.log.Debug("scene submitted", zap.String("scene", s.Name()), zap.Int("commands", r.queue.Len()))
	r.EndFrame()
}
