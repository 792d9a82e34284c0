// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"github.com/juzzbott/lightframe-engine/resource"
)

// OpType is the type of command buffer operations.
type OpType int

// Command buffer operations.
const (
	OpBindPipeline OpType = iota
	OpBindVertexBuffer
	OpBindIndexBuffer
	OpBindUniformBuffer
	OpDrawIndexed
)

// String implements fmt.Stringer.
func (t OpType) String() string {
	switch t {
	case OpBindPipeline:
		return "BindPipeline"
	case OpBindVertexBuffer:
		return "BindVertexBuffer"
	case OpBindIndexBuffer:
		return "BindIndexBuffer"
	case OpBindUniformBuffer:
		return "BindUniformBuffer"
	case OpDrawIndexed:
		return "DrawIndexed"
	}
	return "unknown"
}

// Op is a command buffer operation.
// ID is the pipeline handle, the driver ID of a buffer
// or the uniform handle, depending on Type.
type Op struct {
	Type          OpType
	ID            uint32
	Binding       int
	IndexCount    int
	InstanceCount int
	FirstIndex    int
}

// CommandBuffer is a flat list of operations derived from
// a RenderQueue.
type CommandBuffer struct {
	ops   []Op
	binds int
}

// Build appends the operations of every command in q.
// A pipeline is bound only when it differs from the one
// bound by the previous command. Buffers are bound for
// every command.
// q is not reordered. Commands without a mesh are
// ignored.
func (b *CommandBuffer) Build(q *RenderQueue) {
	cur := resource.None
	for i := range q.cmds {
		cmd := &q.cmds[i]
		if cmd.Mesh == nil {
			continue
		}
		if cmd.Pipeline != cur {
			b.ops = append(b.ops, Op{Type: OpBindPipeline, ID: uint32(cmd.Pipeline)})
			b.binds++
			cur = cmd.Pipeline
		}
		b.ops = append(b.ops,
			Op{Type: OpBindVertexBuffer, ID: cmd.Mesh.VertexBuffer().ID()},
			Op{Type: OpBindIndexBuffer, ID: cmd.Mesh.IndexBuffer().ID()},
			Op{Type: OpBindUniformBuffer, ID: uint32(cmd.Uniform), Binding: UniformBinding},
			Op{Type: OpDrawIndexed, IndexCount: cmd.Mesh.IndexCount(), InstanceCount: 1},
		)
	}
}

// Ops returns the operations in b.
// The slice aliases b's storage.
func (b *CommandBuffer) Ops() []Op { return b.ops }

// PipelineBinds returns the number of OpBindPipeline
// operations in b.
func (b *CommandBuffer) PipelineBinds() int { return b.binds }

// Clear discards every operation.
func (b *CommandBuffer) Clear() {
	b.ops = b.ops[:0]
	b.binds = 0
}
