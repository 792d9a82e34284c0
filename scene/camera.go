// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package scene

import (
	"github.com/juzzbott/lightframe-engine/linear"
	"github.com/juzzbott/lightframe-engine/objectid"
)

// CameraSettings describes a perspective projection.
type CameraSettings struct {
	// Vertical field of view in degrees.
	FOV float32
	// View size, used for the aspect ratio.
	Width  float32
	Height float32
	Near   float32
	Far    float32
}

// DefaultCameraSettings returns the default settings:
// 45 degrees of vertical field of view, a 1280x720 view
// and depth range [0.1, 100].
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		FOV:    45,
		Width:  1280,
		Height: 720,
		Near:   0.1,
		Far:    100,
	}
}

// Aspect returns Width / Height.
func (s *CameraSettings) Aspect() float32 { return s.Width / s.Height }

// Camera is a perspective camera that looks from its
// position towards Target.
type Camera struct {
	id        objectid.ID
	Transform Transform
	Settings  CameraSettings
	// Target is the point the camera looks at.
	// It defaults to the origin.
	Target linear.V3
	Up     linear.V3
}

func newCamera(settings CameraSettings) *Camera {
	return &Camera{
		id:        objectid.New(),
		Transform: Identity(),
		Settings:  settings,
		Up:        linear.V3{0, 1, 0},
	}
}

// ID returns the camera's identifier.
func (c *Camera) ID() objectid.ID { return c.id }

// Projection returns the projection matrix.
func (c *Camera) Projection() (m linear.M4) {
	s := &c.Settings
	m.Perspective(linear.Rad(s.FOV), s.Aspect(), s.Near, s.Far)
	return
}

// View returns the view matrix.
func (c *Camera) View() (m linear.M4) {
	m.LookAt(&c.Transform.Position, &c.Target, &c.Up)
	return
}

// ViewProjection returns Projection() ⋅ View().
func (c *Camera) ViewProjection() (m linear.M4) {
	p := c.Projection()
	v := c.View()
	m.Mul(&p, &v)
	return
}
