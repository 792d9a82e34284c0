// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/juzzbott/lightframe-engine/resource"
)

// pipeline is the combination of a shader and
// fixed-function state.
type pipeline struct {
	shader resource.Handle
	state  RenderState
}

// PipelineCache assigns handles to distinct pipelines.
// Handles start at 1 and are never reused.
type PipelineCache struct {
	pipes []pipeline
	byKey map[uint64][]resource.Handle
}

// key hashes p.
func (p *pipeline) key() uint64 {
	var b [9]byte
	binary.LittleEndian.PutUint32(b[:], uint32(p.shader))
	b[4] = byte(p.state.Polygon)
	b[5] = byte(p.state.Cull)
	if p.state.DepthTest {
		b[6] = 1
	}
	if p.state.DepthWrite {
		b[7] = 1
	}
	if p.state.Blend {
		b[8] = 1
	}
	return xxhash.Sum64(b[:])
}

// Get returns the handle of the pipeline made of shader
// and state, creating one if needed.
func (c *PipelineCache) Get(shader resource.Handle, state RenderState) resource.Handle {
	p := pipeline{shader, state}
	k := p.key()
	for _, h := range c.byKey[k] {
		if c.pipes[h-1] == p {
			return h
		}
	}
	if c.byKey == nil {
		c.byKey = make(map[uint64][]resource.Handle)
	}
	c.pipes = append(c.pipes, p)
	h := resource.Handle(len(c.pipes))
	c.byKey[k] = append(c.byKey[k], h)
	return h
}

// Lookup returns the shader and state of the pipeline
// identified by h.
func (c *PipelineCache) Lookup(h resource.Handle) (shader resource.Handle, state RenderState, ok bool) {
	if h == resource.None || int(h) > len(c.pipes) {
		return
	}
	p := c.pipes[h-1]
	return p.shader, p.state, true
}

// Len returns the number of pipelines in c.
func (c *PipelineCache) Len() int { return len(c.pipes) }
