// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"slices"

	"github.com/juzzbott/lightframe-engine/linear"
	"github.com/juzzbott/lightframe-engine/resource"
)

// RenderCommand is a request to draw a mesh in a frame.
// Mesh and Material are not owned by the command and must
// remain valid until the end of the frame.
type RenderCommand struct {
	Mesh     *Mesh
	Material *Material
	// Transform is the world-view-projection matrix.
	Transform linear.M4
	Pass      RenderPass
	State     RenderState
	// Pipeline is assigned by the Renderer if None.
	Pipeline resource.Handle
	// Uniform identifies the per-object uniform data.
	// It is assigned by the Renderer if None.
	Uniform resource.Handle
}

// RenderQueue is the list of commands of a frame.
type RenderQueue struct {
	cmds []RenderCommand
}

// Submit appends cmd to q.
func (q *RenderQueue) Submit(cmd *RenderCommand) { q.cmds = append(q.cmds, *cmd) }

// Sort sorts q by key.
// Commands with equal keys retain submission order.
func (q *RenderQueue) Sort(key SortKey) {
	switch key {
	case SortByPass:
		slices.SortStableFunc(q.cmds, func(a, b RenderCommand) int { return int(a.Pass) - int(b.Pass) })
	case SortByPipeline:
		slices.SortStableFunc(q.cmds, func(a, b RenderCommand) int {
			switch {
			case a.Pipeline < b.Pipeline:
				return -1
			case a.Pipeline > b.Pipeline:
				return 1
			}
			return 0
		})
	}
}

// Commands returns the commands in q.
// The slice aliases q's storage and is only valid until
// the next call to Submit or Clear.
func (q *RenderQueue) Commands() []RenderCommand { return q.cmds }

// Len returns the number of commands in q.
func (q *RenderQueue) Len() int { return len(q.cmds) }

// Clear removes every command from q.
// Storage is kept for reuse.
func (q *RenderQueue) Clear() {
	clear(q.cmds)
	q.cmds = q.cmds[:0]
}
