// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package config implements file-backed configuration.
//
// A configuration file is either YAML or TOML. Keys that
// are absent keep the values of Default, and unknown keys
// are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/juzzbott/lightframe-engine/driver"
	"github.com/juzzbott/lightframe-engine/engine"
	"github.com/juzzbott/lightframe-engine/linear"
	"github.com/juzzbott/lightframe-engine/scene"
)

func newConfigErr(s string) error { return errors.New("config: " + s) }

// Format identifies the encoding of a configuration file.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf returns the format of the file at path, as
// given by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", newConfigErr("unknown file extension in " + path)
}

// Config is the configuration of a lightframe process.
type Config struct {
	Log      LogConfig      `yaml:"log" toml:"log"`
	Driver   DriverConfig   `yaml:"driver" toml:"driver"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Renderer RendererConfig `yaml:"renderer" toml:"renderer"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
}

// LogConfig configures logging.
type LogConfig struct {
	// One of debug, info, warn or error.
	Level string `yaml:"level" toml:"level"`
	// Either console or json.
	Encoding    string `yaml:"encoding" toml:"encoding"`
	Development bool   `yaml:"development" toml:"development"`
}

// DriverConfig configures driver selection.
type DriverConfig struct {
	// Case-insensitive substring of the driver name.
	// Any registered driver is used if none matches.
	Name string `yaml:"name" toml:"name"`
}

// CameraConfig configures the scene camera.
type CameraConfig struct {
	FOV    float32    `yaml:"fov" toml:"fov"`
	Width  float32    `yaml:"width" toml:"width"`
	Height float32    `yaml:"height" toml:"height"`
	Near   float32    `yaml:"near" toml:"near"`
	Far    float32    `yaml:"far" toml:"far"`
	Target [3]float32 `yaml:"target" toml:"target"`
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	// One of none, pass or pipeline.
	SortBy         string `yaml:"sortBy" toml:"sortBy"`
	RecordCommands bool   `yaml:"recordCommands" toml:"recordCommands"`
	// Either fill or line.
	Polygon string `yaml:"polygon" toml:"polygon"`
	// One of none, front or back.
	Cull       string `yaml:"cull" toml:"cull"`
	DepthTest  bool   `yaml:"depthTest" toml:"depthTest"`
	DepthWrite bool   `yaml:"depthWrite" toml:"depthWrite"`
	Blend      bool   `yaml:"blend" toml:"blend"`
	// One of shadow, geometry or ui.
	ScenePass        string `yaml:"scenePass" toml:"scenePass"`
	TransformUniform string `yaml:"transformUniform" toml:"transformUniform"`
	TextureUniform   string `yaml:"textureUniform" toml:"textureUniform"`
	TextureSlot      int    `yaml:"textureSlot" toml:"textureSlot"`
}

// AssetsConfig configures asset loading.
type AssetsConfig struct {
	// Directory that relative asset paths are resolved
	// against.
	Root string `yaml:"root" toml:"root"`
	// Whether to reload assets when their files change.
	Watch  bool `yaml:"watch" toml:"watch"`
	Mipmap bool `yaml:"mipmap" toml:"mipmap"`
}

// Default returns the default configuration.
func Default() *Config {
	cam := scene.DefaultCameraSettings()
	ec := engine.DefaultConfig()
	return &Config{
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		Camera: CameraConfig{
			FOV:    cam.FOV,
			Width:  cam.Width,
			Height: cam.Height,
			Near:   cam.Near,
			Far:    cam.Far,
		},
		Renderer: RendererConfig{
			SortBy:           ec.SortBy.String(),
			RecordCommands:   ec.RecordCommands,
			Polygon:          ec.DefaultState.Polygon.String(),
			Cull:             ec.DefaultState.Cull.String(),
			DepthTest:        ec.DefaultState.DepthTest,
			DepthWrite:       ec.DefaultState.DepthWrite,
			Blend:            ec.DefaultState.Blend,
			ScenePass:        ec.ScenePass.String(),
			TransformUniform: ec.TransformUniform,
			TextureUniform:   ec.TextureUniform,
			TextureSlot:      ec.TextureSlot,
		},
		Assets: AssetsConfig{Root: "."},
	}
}

// Load reads the configuration file at path.
// The format is chosen by file extension.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return c, nil
}

// Decode decodes a configuration from r and validates it.
func Decode(r io.Reader, format Format) (*Config, error) {
	c := Default()
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		// An empty document leaves the defaults.
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: yaml: %w", err)
		}
	case TOML:
		dec := toml.NewDecoder(r).DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return nil, fmt.Errorf("config: toml: %w", err)
		}
	default:
		return nil, newConfigErr("unknown format " + string(format))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode writes c to w in the given format.
func (c *Config) Encode(w io.Writer, format Format) error {
	var buf bytes.Buffer
	switch format {
	case YAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("config: yaml: %w", err)
		}
		enc.Close()
	case TOML:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("config: toml: %w", err)
		}
	default:
		return newConfigErr("unknown format " + string(format))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate checks that c is usable.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return newConfigErr("invalid log level " + c.Log.Level)
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return newConfigErr("invalid log encoding " + c.Log.Encoding)
	}
	cam := c.Camera.Settings()
	if err := scene.ValidateCamera(&cam); err != nil {
		return fmt.Errorf("config: camera: %w", err)
	}
	if _, err := c.Renderer.Engine(); err != nil {
		return fmt.Errorf("config: renderer: %w", err)
	}
	return nil
}

// Settings returns the camera settings of c.
func (c *CameraConfig) Settings() scene.CameraSettings {
	return scene.CameraSettings{
		FOV:    c.FOV,
		Width:  c.Width,
		Height: c.Height,
		Near:   c.Near,
		Far:    c.Far,
	}
}

// Apply sets the settings and look target of cam.
func (c *CameraConfig) Apply(cam *scene.Camera) {
	cam.Settings = c.Settings()
	cam.Target = linear.V3(c.Target)
}

// Engine converts c into an engine.Config.
func (c *RendererConfig) Engine() (engine.Config, error) {
	ec := engine.DefaultConfig()
	var err error
	if ec.SortBy, err = parse(c.SortBy, "sortBy", engine.SortNone, engine.SortByPass, engine.SortByPipeline); err != nil {
		return ec, err
	}
	if ec.DefaultState.Polygon, err = parse(c.Polygon, "polygon", driver.FFill, driver.FLines); err != nil {
		return ec, err
	}
	if ec.DefaultState.Cull, err = parse(c.Cull, "cull", driver.CNone, driver.CFront, driver.CBack); err != nil {
		return ec, err
	}
	if ec.ScenePass, err = parse(c.ScenePass, "scenePass", engine.PassShadow, engine.PassGeometry, engine.PassUI); err != nil {
		return ec, err
	}
	ec.RecordCommands = c.RecordCommands
	ec.DefaultState.DepthTest = c.DepthTest
	ec.DefaultState.DepthWrite = c.DepthWrite
	ec.DefaultState.Blend = c.Blend
	ec.TransformUniform = c.TransformUniform
	ec.TextureUniform = c.TextureUniform
	ec.TextureSlot = c.TextureSlot
	if err := ec.Validate(); err != nil {
		return ec, err
	}
	return ec, nil
}

// parse returns the value in vals whose name is s.
// The comparison is case-insensitive.
func parse[T fmt.Stringer](s, key string, vals ...T) (T, error) {
	for _, v := range vals {
		if strings.EqualFold(v.String(), s) {
			return v, nil
		}
	}
	var zero T
	names := make([]string, len(vals))
	for i, v := range vals {
		names[i] = v.String()
	}
	return zero, newConfigErr(fmt.Sprintf("invalid %s %q (want one of %s)", key, s, strings.Join(names, ", ")))
}
