// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package assets implements resource loaders for shader
// and texture files.
package assets

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/naga"
	"go.uber.org/zap"

	"github.com/juzzbott/lightframe-engine/driver"
	"github.com/juzzbott/lightframe-engine/resource"
)

// StageMarker starts a line that selects the shader stage
// of the lines that follow it.
const StageMarker = "#type"

// Stage names recognized after StageMarker.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
)

func newShaderErr(s string) error { return errors.New("assets: " + s) }

// ParseShaderSource splits src into vertex and fragment
// sections.
// A line whose trimmed text starts with StageMarker selects
// the stage named by the rest of the line, compared
// case-insensitively after trimming. Lines before the
// first marker are ignored. A stage that appears more than
// once accumulates its lines.
func ParseShaderSource(src []byte) (vert, frag []byte, err error) {
	var bufs [2]bytes.Buffer
	cur := -1
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if s := strings.TrimSpace(line); strings.HasPrefix(s, StageMarker) {
			switch stage := strings.ToLower(strings.TrimSpace(s[len(StageMarker):])); stage {
			case StageVertex:
				cur = 0
			case StageFragment:
				cur = 1
			default:
				return nil, nil, fmt.Errorf("assets: line %d: unknown shader stage %q", n, stage)
			}
			continue
		}
		if cur >= 0 {
			bufs[cur].WriteString(line)
			bufs[cur].WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("assets: reading shader source: %w", err)
	}
	return bufs[0].Bytes(), bufs[1].Bytes(), nil
}

// LangOf returns the shader language implied by the
// extension of path.
func LangOf(path string) driver.Lang {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wgsl":
		return driver.WGSL
	}
	return driver.GLSL
}

// ShaderLoader creates shaders from source files.
// WGSL sections are compiled to SPIR-V before being
// handed to the GPU.
type ShaderLoader struct {
	gpu driver.GPU
	log *zap.Logger
}

// NewShaderLoader creates a new ShaderLoader.
func NewShaderLoader(gpu driver.GPU, log *zap.Logger) *ShaderLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &ShaderLoader{gpu, log.Named("shader")}
}

// Load implements resource.Loader.
// On failure, it returns a shader that is not loaded.
func (l *ShaderLoader) Load(d *resource.Descriptor) (any, error) {
	src, err := l.source(d)
	if err != nil {
		// Let the driver produce a degraded shader.
		sh, _ := l.gpu.NewShader(&driver.ShaderSource{Lang: driver.GLSL})
		return sh, err
	}
	sh, err := l.gpu.NewShader(src)
	if err != nil {
		return sh, fmt.Errorf("assets: shader %q: %w", d.Path, err)
	}
	l.log.Debug("shader created",
		zap.String("path", d.Path),
		zap.Stringer("lang", src.Lang),
		zap.Uint32("id", sh.ID()))
	return sh, nil
}

func (l *ShaderLoader) source(d *resource.Descriptor) (*driver.ShaderSource, error) {
	if len(d.Data) == 0 {
		return nil, newShaderErr("empty shader source " + d.Path)
	}
	vert, frag, err := ParseShaderSource(d.Data)
	if err != nil {
		return nil, err
	}
	if len(vert) == 0 || len(frag) == 0 {
		return nil, newShaderErr("shader " + d.Path + " lacks a vertex or fragment section")
	}
	lang := LangOf(d.Path)
	if lang != driver.WGSL {
		return &driver.ShaderSource{Lang: lang, Vertex: vert, Fragment: frag}, nil
	}
	vs, err := naga.Compile(string(vert))
	if err != nil {
		return nil, fmt.Errorf("assets: compiling vertex stage of %q: %w", d.Path, err)
	}
	fs, err := naga.Compile(string(frag))
	if err != nil {
		return nil, fmt.Errorf("assets: compiling fragment stage of %q: %w", d.Path, err)
	}
	return &driver.ShaderSource{Lang: driver.SPIRV, Vertex: vs, Fragment: fs}, nil
}
