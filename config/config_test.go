// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juzzbott/lightframe-engine/driver"
	"github.com/juzzbott/lightframe-engine/engine"
	"github.com/juzzbott/lightframe-engine/linear"
	"github.com/juzzbott/lightframe-engine/scene"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, scene.DefaultCameraSettings(), c.Camera.Settings())
	assert.Equal(t, [3]float32{}, c.Camera.Target)
	assert.Equal(t, "line", c.Renderer.Polygon)
	assert.Equal(t, "none", c.Renderer.Cull)
	assert.Equal(t, "pass", c.Renderer.SortBy)
	assert.Equal(t, "geometry", c.Renderer.ScenePass)

	ec, err := c.Renderer.Engine()
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultConfig(), ec)
}

func TestDecodeYAML(t *testing.T) {
	src := `
log:
  level: debug
  encoding: json
driver:
  name: Headless
camera:
  fov: 60
  target: [0, 1, 0]
renderer:
  sortBy: pipeline
  polygon: fill
  cull: BACK
  recordCommands: true
`
	c, err := Decode(strings.NewReader(src), YAML)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Encoding)
	assert.Equal(t, "Headless", c.Driver.Name)
	assert.Equal(t, float32(60), c.Camera.FOV)
	// Absent keys keep their defaults.
	assert.Equal(t, float32(1280), c.Camera.Width)
	assert.Equal(t, float32(100), c.Camera.Far)

	ec, err := c.Renderer.Engine()
	require.NoError(t, err)
	assert.Equal(t, engine.SortByPipeline, ec.SortBy)
	assert.Equal(t, driver.FFill, ec.DefaultState.Polygon)
	assert.Equal(t, driver.CBack, ec.DefaultState.Cull)
	assert.True(t, ec.RecordCommands)
	assert.True(t, ec.DefaultState.DepthTest)

	cam := scene.New("test", scene.DefaultCameraSettings()).Camera()
	c.Camera.Apply(cam)
	assert.Equal(t, linear.V3{0, 1, 0}, cam.Target)
	assert.Equal(t, float32(60), cam.Settings.FOV)
}

func TestDecodeTOML(t *testing.T) {
	src := `
[log]
level = "warn"

[camera]
near = 1.0
far = 50.0

[renderer]
scenePass = "ui"
textureSlot = 3
`
	c, err := Decode(strings.NewReader(src), TOML)
	require.NoError(t, err)

	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, float32(1), c.Camera.Near)
	assert.Equal(t, float32(50), c.Camera.Far)

	ec, err := c.Renderer.Engine()
	require.NoError(t, err)
	assert.Equal(t, engine.PassUI, ec.ScenePass)
	assert.Equal(t, 3, ec.TextureSlot)
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range []Format{YAML, TOML} {
		c, err := Decode(strings.NewReader(""), f)
		require.NoError(t, err, f)
		assert.Equal(t, Default(), c, f)
	}
}

func TestDecodeUnknown(t *testing.T) {
	_, err := Decode(strings.NewReader("camera:\n  zoom: 2\n"), YAML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("[camera]\nzoom = 2\n"), TOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(""), Format("json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, f := range map[string]func(*Config){
		"level":     func(c *Config) { c.Log.Level = "verbose" },
		"encoding":  func(c *Config) { c.Log.Encoding = "xml" },
		"width":     func(c *Config) { c.Camera.Width = 0 },
		"height":    func(c *Config) { c.Camera.Height = -1 },
		"near":      func(c *Config) { c.Camera.Near = 0 },
		"near>=far": func(c *Config) { c.Camera.Near = c.Camera.Far },
		"fov":       func(c *Config) { c.Camera.FOV = 180 },
		"fov0":      func(c *Config) { c.Camera.FOV = 0 },
		"sortBy":    func(c *Config) { c.Renderer.SortBy = "material" },
		"polygon":   func(c *Config) { c.Renderer.Polygon = "point" },
		"cull":      func(c *Config) { c.Renderer.Cull = "both" },
		"pass":      func(c *Config) { c.Renderer.ScenePass = "lighting" },
		"uniform":   func(c *Config) { c.Renderer.TransformUniform = "" },
		"slot":      func(c *Config) { c.Renderer.TextureSlot = 16 },
	} {
		c := Default()
		f(c)
		assert.Error(t, c.Validate(), name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "lightframe.yml")
	require.NoError(t, os.WriteFile(yml, []byte("assets:\n  watch: true\n"), 0o644))
	c, err := Load(yml)
	require.NoError(t, err)
	assert.True(t, c.Assets.Watch)

	tml := filepath.Join(dir, "lightframe.TOML")
	require.NoError(t, os.WriteFile(tml, []byte("[assets]\nmipmap = true\n"), 0o644))
	c, err = Load(tml)
	require.NoError(t, err)
	assert.True(t, c.Assets.Mipmap)

	_, err = Load(filepath.Join(dir, "lightframe.ini"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncode(t *testing.T) {
	c := Default()
	c.Driver.Name = "headless"
	c.Camera.Target = [3]float32{1, 2, 3}
	for _, f := range []Format{YAML, TOML} {
		var buf bytes.Buffer
		require.NoError(t, c.Encode(&buf, f), f)
		d, err := Decode(&buf, f)
		require.NoError(t, err, f)
		assert.Equal(t, c, d, f)
	}
	assert.Error(t, c.Encode(&bytes.Buffer{}, Format("ini")))
}
