// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package engine

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/juzzbott/lightframe-engine/driver"
	"github.com/juzzbott/lightframe-engine/driver/headless"
	"github.com/juzzbott/lightframe-engine/linear"
	"github.com/juzzbott/lightframe-engine/resource"
	"github.com/juzzbott/lightframe-engine/scene"
)

const (
	testVert = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec2 aTexCoord;
uniform mat4 uTransform;
out vec2 vTexCoord;
void main() { vTexCoord = aTexCoord; gl_Position = uTransform * vec4(aPos, 1.0); }
`
	testFrag = `#version 330 core
in vec2 vTexCoord;
out vec4 FragColor;
uniform sampler2D uTexture1;
void main() { FragColor = texture(uTexture1, vTexCoord); }
`
)

// fixture holds what a renderer test needs.
type fixture struct {
	gpu  *headless.Driver
	reg  *resource.Registry
	rend *Renderer
	cube *Mesh
	mat  *Material
	sh   resource.Handle
	tex  resource.Handle
}

func newFixture(t *testing.T, cfg *Config) *fixture {
	t.Helper()
	gpu := &headless.Driver{}
	if _, err := gpu.Open(); err != nil {
		t.Fatalf("headless.Driver.Open: unexpected error: %v", err)
	}
	t.Cleanup(gpu.Close)
	reg := resource.New(nil)
	t.Cleanup(reg.Destroy)

	sh, err := gpu.NewShader(&driver.ShaderSource{Lang: driver.GLSL, Vertex: []byte(testVert), Fragment: []byte(testFrag)})
	if err != nil {
		t.Fatalf("NewShader: unexpected error: %v", err)
	}
	tex, err := gpu.NewTexture(&driver.TexParam{PixelFmt: driver.RGB8un, Width: 1, Height: 1}, []byte{255, 255, 255})
	if err != nil {
		t.Fatalf("NewTexture: unexpected error: %v", err)
	}
	cube, err := NewCube(gpu)
	if err != nil {
		t.Fatalf("NewCube: unexpected error: %v", err)
	}
	f := &fixture{
		gpu:  gpu,
		reg:  reg,
		cube: cube,
		sh:   reg.Add(resource.Shader, "basic", sh),
		tex:  reg.Add(resource.Texture, "white", tex),
	}
	reg.Add(resource.Mesh, "cube", cube)
	f.mat = NewMaterial(f.tex)
	f.mat.AddShader(PassGeometry, f.sh)
	reg.Add(resource.Material, "basic", f.mat)

	f.rend, err = NewRenderer(gpu, reg, cfg, nil)
	if err != nil {
		t.Fatalf("NewRenderer: unexpected error: %v", err)
	}
	return f
}

func (f *fixture) command() *RenderCommand {
	cmd := &RenderCommand{
		Mesh:     f.cube,
		Material: f.mat,
		Pass:     PassGeometry,
		State:    DefaultRenderState(),
	}
	cmd.Transform.I()
	return cmd
}

func TestConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate: unexpected error: %v", err)
	}
	if c.DefaultState.Polygon != driver.FLines || c.DefaultState.Cull != driver.CNone {
		t.Fatalf("DefaultConfig().DefaultState:\nhave %+v\nwant line polygons and no culling", c.DefaultState)
	}
	if c.TransformUniform != "uTransform" || c.TextureUniform != "uTexture1" {
		t.Fatalf("DefaultConfig uniforms:\nhave %q %q\nwant uTransform uTexture1", c.TransformUniform, c.TextureUniform)
	}
	for i, f := range [...]func(*Config){
		func(c *Config) { c.SortBy = 9 },
		func(c *Config) { c.ScenePass = passCount },
		func(c *Config) { c.TransformUniform = "" },
		func(c *Config) { c.TextureUniform = "" },
		func(c *Config) { c.TextureSlot = -1 },
		func(c *Config) { c.DefaultState.Polygon = 7 },
		func(c *Config) { c.DefaultState.Cull = 7 },
	} {
		c := DefaultConfig()
		f(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("Config.Validate [%d]: expected error", i)
		}
	}
	if _, err := NewRenderer(nil, resource.New(nil), nil, nil); err == nil {
		t.Fatal("NewRenderer: expected error for nil GPU")
	}
	if _, err := NewRenderer(&headless.Driver{}, nil, nil, nil); err == nil {
		t.Fatal("NewRenderer: expected error for nil registry")
	}
}

func TestMaterial(t *testing.T) {
	m := NewMaterial(3)
	for p := PassShadow; p < passCount; p++ {
		if h := m.Shader(p); h != resource.None {
			t.Fatalf("Material.Shader(%v):\nhave %d\nwant None", p, h)
		}
	}
	m.AddShader(PassGeometry, 5)
	m.AddShader(PassGeometry, resource.None)
	if h := m.Shader(PassGeometry); h != 5 {
		t.Fatalf("Material.Shader: AddShader(None) should have no effect\nhave %d\nwant 5", h)
	}
	m.AddShader(PassGeometry, 6)
	if h := m.Shader(PassGeometry); h != 6 {
		t.Fatalf("Material.Shader:\nhave %d\nwant 6", h)
	}
	if h := m.Shader(PassUI); h != resource.None {
		t.Fatalf("Material.Shader(PassUI):\nhave %d\nwant None", h)
	}
	if h := m.Shader(RenderPass(-1)); h != resource.None {
		t.Fatalf("Material.Shader(-1):\nhave %d\nwant None", h)
	}
	if m.Diffuse != 3 {
		t.Fatalf("Material.Diffuse:\nhave %d\nwant 3", m.Diffuse)
	}
}

func TestNewCube(t *testing.T) {
	gpu := &headless.Driver{}
	gpu.Open()
	defer gpu.Close()
	cube, err := NewCube(gpu)
	if err != nil {
		t.Fatalf("NewCube: unexpected error: %v", err)
	}
	if n := cube.VertexCount(); n != 24 {
		t.Fatalf("Mesh.VertexCount:\nhave %d\nwant 24", n)
	}
	if n := cube.IndexCount(); n != 36 {
		t.Fatalf("Mesh.IndexCount:\nhave %d\nwant 36", n)
	}
	l := cube.VertexBuffer().Layout()
	if l.Stride() != 32 || l.VertexLength() != 8 {
		t.Fatalf("Mesh layout:\nhave stride %d, length %d\nwant 32, 8", l.Stride(), l.VertexLength())
	}
	cube.Destroy()
	cube.Destroy()

	if _, err := NewMesh(gpu, cubeVertices[:], CubeLayout(), cubeIndices[:4]); err == nil {
		t.Fatal("NewMesh: expected error for partial triangle")
	}
}

func TestRenderQueue(t *testing.T) {
	var q RenderQueue
	q.Clear()
	if q.Len() != 0 {
		t.Fatal("RenderQueue.Clear: queue not empty")
	}
	const n = 64
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range n {
		q.Submit(&RenderCommand{
			Pass:     RenderPass(rng.IntN(int(passCount))),
			Pipeline: resource.Handle(rng.IntN(4)),
			Uniform:  resource.Handle(i),
		})
	}
	for _, key := range [...]SortKey{SortByPass, SortByPipeline} {
		q.Sort(key)
		cmds := q.Commands()
		if len(cmds) != n {
			t.Fatalf("RenderQueue.Sort(%v): length changed to %d", key, len(cmds))
		}
		for i := 1; i < n; i++ {
			a, b := cmds[i-1], cmds[i]
			var ka, kb int
			if key == SortByPass {
				ka, kb = int(a.Pass), int(b.Pass)
			} else {
				ka, kb = int(a.Pipeline), int(b.Pipeline)
			}
			if ka > kb {
				t.Fatalf("RenderQueue.Sort(%v): out of order at %d", key, i)
			}
			// Uniform holds submission order; the pipeline sort
			// runs after the pass sort, so check stability on a
			// fresh order.
			if key == SortByPass && ka == kb && a.Uniform > b.Uniform {
				t.Fatalf("RenderQueue.Sort(%v): not stable at %d", key, i)
			}
		}
	}

	q.Clear()
	for i := range n {
		q.Submit(&RenderCommand{Pipeline: resource.Handle(i % 3), Uniform: resource.Handle(i)})
	}
	q.Sort(SortByPipeline)
	cmds := q.Commands()
	for i := 1; i < n; i++ {
		if cmds[i-1].Pipeline == cmds[i].Pipeline && cmds[i-1].Uniform > cmds[i].Uniform {
			t.Fatalf("RenderQueue.Sort(SortByPipeline): not stable at %d", i)
		}
	}
	q.Clear()
	q.Sort(SortNone)
	if q.Len() != 0 {
		t.Fatalf("RenderQueue.Len:\nhave %d\nwant 0", q.Len())
	}
}

func TestCommandBuffer(t *testing.T) {
	f := newFixture(t, nil)
	const n = 5
	var q RenderQueue
	for range n {
		cmd := f.command()
		cmd.Pipeline = 1
		cmd.Uniform = 2
		q.Submit(cmd)
	}
	var b CommandBuffer
	b.Build(&q)
	ops := b.Ops()
	if len(ops) != 1+4*n {
		t.Fatalf("CommandBuffer.Build: len(ops)\nhave %d\nwant %d", len(ops), 1+4*n)
	}
	if ops[0].Type != OpBindPipeline || ops[0].ID != 1 || b.PipelineBinds() != 1 {
		t.Fatalf("CommandBuffer.Build: ops[0]\nhave %+v\nwant BindPipeline 1", ops[0])
	}
	want := [4]OpType{OpBindVertexBuffer, OpBindIndexBuffer, OpBindUniformBuffer, OpDrawIndexed}
	for i := range n {
		for j, typ := range want {
			op := ops[1+4*i+j]
			if op.Type != typ {
				t.Fatalf("CommandBuffer.Build: ops[%d].Type\nhave %v\nwant %v", 1+4*i+j, op.Type, typ)
			}
			switch typ {
			case OpBindVertexBuffer:
				if op.ID != f.cube.VertexBuffer().ID() {
					t.Fatalf("BindVertexBuffer.ID:\nhave %d\nwant %d", op.ID, f.cube.VertexBuffer().ID())
				}
			case OpBindUniformBuffer:
				if op.Binding != UniformBinding || op.ID != 2 {
					t.Fatalf("BindUniformBuffer:\nhave %+v\nwant binding %d, ID 2", op, UniformBinding)
				}
			case OpDrawIndexed:
				if op.IndexCount != 36 || op.InstanceCount != 1 || op.FirstIndex != 0 {
					t.Fatalf("DrawIndexed:\nhave %+v\nwant 36 indices, 1 instance, first 0", op)
				}
			}
		}
	}

	q.Clear()
	b.Clear()
	if len(b.Ops()) != 0 || b.PipelineBinds() != 0 {
		t.Fatal("CommandBuffer.Clear: ops remain")
	}
	for i := range n {
		cmd := f.command()
		cmd.Pipeline = resource.Handle(1 + i%2)
		q.Submit(cmd)
	}
	b.Build(&q)
	if b.PipelineBinds() != n {
		t.Fatalf("CommandBuffer.Build: alternating pipelines\nhave %d binds\nwant %d", b.PipelineBinds(), n)
	}
	if len(b.Ops()) != 5*n {
		t.Fatalf("CommandBuffer.Build: len(ops)\nhave %d\nwant %d", len(b.Ops()), 5*n)
	}
}

func TestPipelineCache(t *testing.T) {
	var c PipelineCache
	st := DefaultRenderState()
	a := c.Get(1, st)
	if a == resource.None {
		t.Fatal("PipelineCache.Get: unexpected None")
	}
	if b := c.Get(1, st); b != a {
		t.Fatalf("PipelineCache.Get: same pipeline\nhave %d\nwant %d", b, a)
	}
	st2 := st
	st2.Blend = true
	b := c.Get(1, st2)
	d := c.Get(2, st)
	if b == a || d == a || b == d {
		t.Fatalf("PipelineCache.Get: distinct pipelines share handles: %d %d %d", a, b, d)
	}
	if c.Len() != 3 {
		t.Fatalf("PipelineCache.Len:\nhave %d\nwant 3", c.Len())
	}
	sh, s, ok := c.Lookup(b)
	if !ok || sh != 1 || s != st2 {
		t.Fatalf("PipelineCache.Lookup:\nhave %d %+v %t\nwant 1 %+v true", sh, s, ok, st2)
	}
	if _, _, ok := c.Lookup(resource.None); ok {
		t.Fatal("PipelineCache.Lookup(None): unexpected success")
	}
	if _, _, ok := c.Lookup(4); ok {
		t.Fatal("PipelineCache.Lookup(4): unexpected success")
	}
}

func TestRenderer(t *testing.T) {
	f := newFixture(t, nil)
	r := f.rend

	r.BeginFrame()
	r.Submit(f.command())
	r.Submit(f.command())
	r.EndFrame()
	s := r.Stats()
	if s.DrawCalls != 2 || s.VerticesRendered != 48 || s.ObjectsRendered != 2 || s.Skipped != 0 {
		t.Fatalf("Renderer.Stats:\nhave %+v\nwant 2 draws, 48 vertices, 2 objects", s)
	}
	draws := f.gpu.Draws()
	if len(draws) != 2 {
		t.Fatalf("draw calls:\nhave %d\nwant 2", len(draws))
	}
	for _, d := range draws {
		if d.Count != 36 || d.VAO != f.cube.VertexArray().ID() || d.Raster.Fill != driver.FLines || d.Raster.Cull != driver.CNone || !d.Depth.DepthTest {
			t.Fatalf("draw call:\nhave %+v", d)
		}
	}

	r.BeginFrame()
	if s := r.Stats(); s != (Stats{}) {
		t.Fatalf("Renderer.BeginFrame: stats not reset\nhave %+v", s)
	}
	if r.Queue().Len() != 0 {
		t.Fatal("Renderer.BeginFrame: queue not cleared")
	}
	r.EndFrame()
	if r.Frame() != 2 {
		t.Fatalf("Renderer.Frame:\nhave %d\nwant 2", r.Frame())
	}
}

func TestRendererSkip(t *testing.T) {
	f := newFixture(t, nil)
	r := f.rend

	noShader := NewMaterial(f.tex)
	noTexture := NewMaterial(resource.None)
	noTexture.AddShader(PassGeometry, f.sh)
	badTex, _ := f.gpu.NewTexture(&driver.TexParam{PixelFmt: driver.RGB8un, Width: 1, Height: 1}, nil)
	unloaded := NewMaterial(f.reg.Add(resource.Texture, "bad", badTex))
	unloaded.AddShader(PassGeometry, f.sh)
	badSh, _ := f.gpu.NewShader(&driver.ShaderSource{Lang: driver.GLSL})
	unloadedSh := NewMaterial(f.tex)
	unloadedSh.AddShader(PassGeometry, f.reg.Add(resource.Shader, "bad", badSh))

	r.BeginFrame()
	for _, m := range [...]*Material{noShader, noTexture, unloaded, unloadedSh, f.mat, nil} {
		cmd := f.command()
		cmd.Material = m
		r.Submit(cmd)
	}
	ui := f.command()
	ui.Pass = PassUI
	r.Submit(ui)
	r.EndFrame()

	s := r.Stats()
	if s.DrawCalls != 1 || s.Skipped != 6 {
		t.Fatalf("Renderer.Stats:\nhave %+v\nwant 1 draw, 6 skipped", s)
	}
	if n := len(f.gpu.Draws()); n != 1 {
		t.Fatalf("draw calls:\nhave %d\nwant 1", n)
	}
}

func TestRendererUniforms(t *testing.T) {
	f := newFixture(t, nil)
	cmd := f.command()
	cmd.Transform.Translate(1, 2, 3)
	f.rend.BeginFrame()
	f.rend.Submit(cmd)
	f.rend.EndFrame()

	sh := resource.Get[driver.Shader](f.reg, resource.Shader, f.sh)
	v, ok := headless.Uniform(sh, "uTransform")
	if !ok || v.(linear.M4) != cmd.Transform {
		t.Fatalf("uTransform:\nhave %v\nwant %v", v, cmd.Transform)
	}
	v, ok = headless.Uniform(sh, "uTexture1")
	if !ok || v.(int32) != 0 {
		t.Fatalf("uTexture1:\nhave %v\nwant 0", v)
	}
	var bound bool
	for _, c := range f.gpu.Calls() {
		if c.Op == headless.OpBindTexture && c.Slot == 0 {
			bound = true
		}
	}
	if !bound {
		t.Fatal("diffuse texture not bound to slot 0")
	}
}

func TestRendererUniformHandles(t *testing.T) {
	f := newFixture(t, nil)
	r := f.rend
	var have []resource.Handle
	for range 3 {
		r.BeginFrame()
		r.Submit(f.command())
		r.Submit(f.command())
		r.EndFrame()
		for _, c := range r.Queue().Commands() {
			have = append(have, c.Uniform)
		}
	}
	want := []resource.Handle{1, 2, 3, 4, 5, 6}
	if !slices.Equal(have, want) {
		t.Fatalf("uniform handles:\nhave %v\nwant %v", have, want)
	}

	// Handles given by the caller are kept.
	cmd := f.command()
	cmd.Uniform = 100
	r.BeginFrame()
	r.Submit(cmd)
	r.Submit(f.command())
	r.EndFrame()
	cmds := r.Queue().Commands()
	if cmds[0].Uniform != 100 || cmds[1].Uniform != 7 {
		t.Fatalf("uniform handles:\nhave %d %d\nwant 100 7", cmds[0].Uniform, cmds[1].Uniform)
	}
}

func TestRecordCommands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordCommands = true
	cfg.SortBy = SortByPipeline
	f := newFixture(t, &cfg)
	r := f.rend

	blend := DefaultRenderState()
	blend.Blend = true
	r.BeginFrame()
	for i := range 6 {
		cmd := f.command()
		if i%2 == 1 {
			cmd.State = blend
		}
		r.Submit(cmd)
	}
	r.EndFrame()

	if n := r.Pipelines().Len(); n != 2 {
		t.Fatalf("PipelineCache.Len:\nhave %d\nwant 2", n)
	}
	s := r.Stats()
	if s.PipelineBinds != 2 || s.DrawCalls != 6 {
		t.Fatalf("Renderer.Stats:\nhave %+v\nwant 2 pipeline binds, 6 draws", s)
	}
	if n := len(r.CommandBuffer().Ops()); n != 2+4*6 {
		t.Fatalf("CommandBuffer ops:\nhave %d\nwant %d", n, 2+4*6)
	}
	// Sorted by pipeline: three opaque draws, then three blended.
	for i, d := range f.gpu.Draws() {
		if d.Blend != (i >= 3) {
			t.Fatalf("draw %d: unexpected blend state %t", i, d.Blend)
		}
	}
}

func TestFrameProtocol(t *testing.T) {
	f := newFixture(t, nil)
	r := f.rend
	for name, fn := range map[string]func(){
		"Submit":   func() { r.Submit(f.command()) },
		"EndFrame": func() { r.EndFrame() },
		"BeginFrame twice": func() {
			r.BeginFrame()
			defer r.EndFrame()
			r.BeginFrame()
		},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestRenderScene(t *testing.T) {
	f := newFixture(t, nil)
	s := scene.New("test", scene.DefaultCameraSettings())
	s.Camera().Transform.Position = linear.V3{0, 0, 5}

	a := s.Add(scene.KindSpatial)
	a.AddComponent(NewMeshRenderer(f.cube, f.mat))
	a.Spatial().Position = linear.V3{-1, 0, 0}
	b := s.Add(scene.KindSpatial)
	b.AddComponent(NewMeshRenderer(f.cube, f.mat))
	b.Spatial().Position = linear.V3{1, 0, 0}
	b.Spatial().Rotation = linear.V3{0, 45, 0}
	// Not spatial.
	s.Add(scene.KindBase).AddComponent(NewMeshRenderer(f.cube, f.mat))
	// No MeshRenderer.
	s.Add(scene.KindSpatial)

	f.rend.RenderScene(s)
	st := f.rend.Stats()
	if st.DrawCalls != 2 || st.VerticesRendered != 2*24 || st.ObjectsRendered != 2 {
		t.Fatalf("RenderScene stats:\nhave %+v\nwant 2 draws, 48 vertices, 2 objects", st)
	}
	if n := len(f.gpu.Draws()); n != 2 {
		t.Fatalf("RenderScene draw calls:\nhave %d\nwant 2", n)
	}

	vp := s.Camera().ViewProjection()
	model := b.Spatial().Model()
	var want linear.M4
	want.Mul(&vp, &model)
	cmds := f.rend.Queue().Commands()
	if len(cmds) != 2 || cmds[1].Transform != want {
		t.Fatalf("RenderScene transform:\nhave %v\nwant %v", cmds[1].Transform, want)
	}

	fill := RenderState{Polygon: driver.FFill, Cull: driver.CBack, DepthTest: true, DepthWrite: true}
	mr, _ := scene.ComponentOf[*MeshRenderer](a, MeshRendererType)
	mr.State = &fill
	f.gpu.Reset()
	f.rend.RenderScene(s)
	draws := f.gpu.Draws()
	if draws[0].Raster.Fill != driver.FFill || draws[0].Raster.Cull != driver.CBack {
		t.Fatalf("RenderScene state override:\nhave %+v", draws[0].Raster)
	}
	if draws[1].Raster.Fill != driver.FLines {
		t.Fatalf("RenderScene default state:\nhave %+v", draws[1].Raster)
	}
}
