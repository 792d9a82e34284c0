// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/juzzbott/lightframe-engine/driver"
	"github.com/juzzbott/lightframe-engine/resource"
)

func newRendErr(s string) error { return errors.New("renderer: " + s) }

// Stats are the statistics of a frame.
type Stats struct {
	DrawCalls        int
	VerticesRendered int
	ObjectsRendered  int
	// Commands skipped because a resource was missing.
	Skipped int
	// Pipeline binds in the command buffer.
	// Only counted when Config.RecordCommands is set.
	PipelineBinds int
}

// Renderer issues the GPU calls of a frame.
// It is not safe for concurrent use.
type Renderer struct {
	gpu driver.GPU
	reg *resource.Registry
	cfg Config
	log *zap.Logger

	queue  RenderQueue
	cmdbuf CommandBuffer
	pipes  PipelineCache
	stats  Stats

	// Last assigned uniform handle.
	// Uniform handles are never reused.
	lastUniform resource.Handle

	inFrame bool
	frame   uint64
}

// NewRenderer creates a new renderer that draws with gpu
// and resolves resource handles through reg.
// If cfg is nil, DefaultConfig is used.
func NewRenderer(gpu driver.GPU, reg *resource.Registry, cfg *Config, log *zap.Logger) (*Renderer, error) {
	if gpu == nil {
		return nil, newRendErr("nil driver.GPU in call to NewRenderer")
	}
	if reg == nil {
		return nil, newRendErr("nil resource.Registry in call to NewRenderer")
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		gpu: gpu,
		reg: reg,
		cfg: c,
		log: log.Named("renderer"),
	}, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config { return r.cfg }

// BeginFrame starts a new frame.
// It clears the render queue and resets statistics.
func (r *Renderer) BeginFrame() {
	if r.inFrame {
		panic("renderer: BeginFrame called twice")
	}
	r.inFrame = true
	r.frame++
	r.queue.Clear()
	r.cmdbuf.Clear()
	r.stats = Stats{}
}

// Submit queues cmd for drawing at the end of the frame.
func (r *Renderer) Submit(cmd *RenderCommand) {
	if !r.inFrame {
		panic("renderer: Submit called outside of a frame")
	}
	r.queue.Submit(cmd)
}

// EndFrame draws every queued command.
// Commands whose shader or diffuse texture cannot be
// resolved, or is not loaded, are skipped.
func (r *Renderer) EndFrame() {
	if !r.inFrame {
		panic("renderer: EndFrame called outside of a frame")
	}
	r.prepare()
	r.queue.Sort(r.cfg.SortBy)
	if r.cfg.RecordCommands {
		r.cmdbuf.Build(&r.queue)
		r.stats.PipelineBinds = r.cmdbuf.PipelineBinds()
	}
	for i := range r.queue.cmds {
		r.draw(&r.queue.cmds[i])
	}
	r.inFrame = false
	r.log.Debug("frame",
		zap.Uint64("frame", r.frame),
		zap.Int("drawCalls", r.stats.DrawCalls),
		zap.Int("vertices", r.stats.VerticesRendered),
		zap.Int("objects", r.stats.ObjectsRendered),
		zap.Int("skipped", r.stats.Skipped),
		zap.Int("pipelineBinds", r.stats.PipelineBinds))
}

// prepare assigns pipeline and uniform handles to the
// queued commands that lack them.
func (r *Renderer) prepare() {
	for i := range r.queue.cmds {
		cmd := &r.queue.cmds[i]
		if cmd.Uniform == resource.None {
			r.lastUniform++
			cmd.Uniform = r.lastUniform
		}
		if cmd.Pipeline != resource.None || cmd.Material == nil {
			continue
		}
		if sh := cmd.Material.Shader(cmd.Pass); sh != resource.None {
			cmd.Pipeline = r.pipes.Get(sh, cmd.State)
		}
	}
}

func (r *Renderer) skip(cmd *RenderCommand, reason string) {
	r.stats.Skipped++
	r.log.Debug("command skipped",
		zap.String("reason", reason),
		zap.Stringer("pass", cmd.Pass),
		zap.Uint32("uniform", uint32(cmd.Uniform)))
}

// draw issues the GPU calls of cmd.
func (r *Renderer) draw(cmd *RenderCommand) {
	if cmd.Mesh == nil || cmd.Material == nil {
		r.skip(cmd, "missing mesh or material")
		return
	}
	shh := cmd.Material.Shader(cmd.Pass)
	if shh == resource.None {
		r.skip(cmd, "no shader for pass")
		return
	}
	sh, ok := resource.TryGet[driver.Shader](r.reg, resource.Shader, shh)
	if !ok || !sh.Loaded() {
		r.skip(cmd, "shader not loaded")
		return
	}
	tex, ok := resource.TryGet[driver.Texture](r.reg, resource.Texture, cmd.Material.Diffuse)
	if !ok || !tex.Loaded() {
		r.skip(cmd, "diffuse texture not loaded")
		return
	}

	sh.Use()
	sh.SetMat4(r.cfg.TransformUniform, &cmd.Transform)
	sh.SetInt(r.cfg.TextureUniform, int32(r.cfg.TextureSlot))
	tex.Bind(r.cfg.TextureSlot)

	rs := cmd.State.raster()
	ds := cmd.State.depth()
	r.gpu.SetRaster(&rs)
	r.gpu.SetDepth(&ds)
	r.gpu.SetBlend(cmd.State.Blend)

	cmd.Mesh.VertexArray().Bind()
	r.gpu.DrawIndexed(cmd.Mesh.IndexCount(), 1, 0)

	r.stats.DrawCalls++
	r.stats.VerticesRendered += cmd.Mesh.VertexCount()
	r.stats.ObjectsRendered++
}

// Stats returns the statistics of the current frame, or
// of the last frame if no frame is in progress.
func (r *Renderer) Stats() Stats { return r.stats }

// Frame returns the number of frames begun.
func (r *Renderer) Frame() uint64 { return r.frame }

// Queue returns the render queue.
func (r *Renderer) Queue() *RenderQueue { return &r.queue }

// CommandBuffer returns the command buffer recorded in
// the last frame.
func (r *Renderer) CommandBuffer() *CommandBuffer { return &r.cmdbuf }

// Pipelines returns the renderer's pipeline cache.
func (r *Renderer) Pipelines() *PipelineCache { return &r.pipes }
