// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juzzbott/lightframe-engine/assets"
	"github.com/juzzbott/lightframe-engine/config"
	_ "github.com/juzzbott/lightframe-engine/driver/headless"
	"github.com/juzzbott/lightframe-engine/engine"
	"github.com/juzzbott/lightframe-engine/linear"
	"github.com/juzzbott/lightframe-engine/platform"
	"github.com/juzzbott/lightframe-engine/resource"
	"github.com/juzzbott/lightframe-engine/scene"
)

//go:embed shaders/basic.glsl
var basicShader []byte

const spacing = 1.5

type renderOpts struct {
	config  string
	frames  int
	grid    int
	shader  string
	texture string
}

func newRenderCmd() *cobra.Command {
	var o renderOpts
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a grid of cubes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.frames < 1 || o.grid < 1 {
				return errors.New("--frames and --grid must be positive")
			}
			c := config.Default()
			if o.config != "" {
				var err error
				if c, err = config.Load(o.config); err != nil {
					return err
				}
			}
			return render(cmd.Context(), c, &o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "configuration file (.yaml, .yml or .toml)")
	f.IntVarP(&o.frames, "frames", "n", 1, "number of frames to render")
	f.IntVarP(&o.grid, "grid", "g", 3, "cubes per side of the grid")
	f.StringVar(&o.shader, "shader", "", "shader source file, relative to assets.root")
	f.StringVar(&o.texture, "texture", "", "diffuse texture file, relative to assets.root")
	return cmd
}

func render(ctx context.Context, c *config.Config, o *renderOpts) error {
	pc, err := platform.Open(c)
	if err != nil {
		return err
	}
	defer pc.Close()
	log := pc.Logger()
	gpu := pc.GPU()

	reg := resource.New(log)
	defer reg.Destroy()
	reg.SetLoader(resource.Shader, assets.NewShaderLoader(gpu, log))
	tl := assets.NewTextureLoader(gpu, log)
	tl.Mipmap = c.Assets.Mipmap
	reg.SetLoader(resource.Texture, tl)

	ds := []resource.Descriptor{
		{Kind: resource.Shader, Name: "basic", Data: basicShader},
		{Kind: resource.Texture, Name: "diffuse", Data: checker(8)},
	}
	var watched []string
	if o.shader != "" {
		ds[0].Data = nil
		ds[0].Path = assetPath(c, o.shader)
		watched = append(watched, ds[0].Path)
	}
	if o.texture != "" {
		ds[1].Data = nil
		ds[1].Path = assetPath(c, o.texture)
		watched = append(watched, ds[1].Path)
	}
	hs, err := reg.LoadAll(ctx, ds)
	if err != nil {
		return err
	}

	var w *assets.Watcher
	if c.Assets.Watch && len(watched) > 0 {
		if w, err = assets.NewWatcher(reg, log); err != nil {
			return err
		}
		defer w.Close()
		for _, p := range watched {
			if err := w.Add(p); err != nil {
				return err
			}
		}
	}

	cube, err := engine.NewCube(gpu)
	if err != nil {
		return err
	}
	reg.Add(resource.Mesh, "cube", cube)
	mat := engine.NewMaterial(hs[1])
	mat.AddShader(engine.PassGeometry, hs[0])
	reg.Add(resource.Material, "basic", mat)

	ec, err := c.Renderer.Engine()
	if err != nil {
		return err
	}
	rend, err := engine.NewRenderer(gpu, reg, &ec, log)
	if err != nil {
		return err
	}

	s := buildScene(c, o.grid, cube, mat)
	log.Info("scene built", zap.String("scene", s.Name()), zap.Int("objects", s.Len()))

	pc.DeltaTime()
	for range o.frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w != nil {
			w.Apply()
		}
		dt := float32(pc.DeltaTime().Seconds())
		s.ForEach(func(obj *scene.Object) {
			if xf := obj.Spatial(); xf != nil {
				xf.Rotation[1] += 45 * dt
			}
		})
		rend.RenderScene(s)
		st := rend.Stats()
		log.Info("frame rendered",
			zap.Uint64("frame", rend.Frame()),
			zap.Int("drawCalls", st.DrawCalls),
			zap.Int("vertices", st.VerticesRendered),
			zap.Int("objects", st.ObjectsRendered),
			zap.Int("skipped", st.Skipped),
			zap.Int("pipelineBinds", st.PipelineBinds))
	}
	return nil
}

// assetPath resolves p against the assets root.
func assetPath(c *config.Config, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Assets.Root, p)
}

// buildScene creates a grid x grid layer of cubes centered
// at the origin, plus one object that cannot be drawn.
func buildScene(c *config.Config, grid int, cube *engine.Mesh, mat *engine.Material) *scene.Scene {
	s := scene.New("grid", c.Camera.Settings())
	cam := s.Camera()
	c.Camera.Apply(cam)
	ext := spacing * float32(grid-1) / 2
	cam.Transform.Position = linear.V3{0, ext + 2, 2*ext + 4}

	for i := range grid {
		for j := range grid {
			obj := s.Add(scene.KindSpatial)
			obj.Spatial().Position = linear.V3{
				spacing*float32(i) - ext,
				0,
				spacing*float32(j) - ext,
			}
			obj.AddComponent(engine.NewMeshRenderer(cube, mat))
		}
	}
	// Not spatial, so RenderScene skips it.
	s.Add(scene.KindBase).AddComponent(engine.NewMeshRenderer(cube, mat))
	return s
}

// checker encodes a size x size black and white checker
// board as PNG.
func checker(size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			c := color.RGBA{255, 255, 255, 255}
			if (x+y)%2 == 1 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
