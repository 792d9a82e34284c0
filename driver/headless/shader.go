// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package headless

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/juzzbott/lightframe-engine/driver"
	"github.com/juzzbott/lightframe-engine/linear"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// shader implements driver.Shader.
type shader struct {
	d      *Driver
	id     uint32
	loaded bool
	// Uniform names declared by the program.
	// A nil map accepts any name.
	uniforms map[string]bool
	values   map[string]any
}

// NewShader creates a new shader program.
// GLSL sources are scanned for uniform declarations.
// SPIR-V sources are checked for a valid header.
func (d *Driver) NewShader(src *driver.ShaderSource) (driver.Shader, error) {
	s := &shader{d: d, values: make(map[string]any)}
	if !d.isOpen() {
		return s, driver.ErrClosed
	}
	if err := s.check(src); err != nil {
		return s, err
	}
	s.id = d.nextID()
	s.loaded = true
	return s, nil
}

func (s *shader) check(src *driver.ShaderSource) error {
	if src == nil {
		return errors.New("headless: nil shader source")
	}
	if len(src.Vertex) == 0 {
		return errors.New("headless: missing vertex stage")
	}
	if len(src.Fragment) == 0 {
		return errors.New("headless: missing fragment stage")
	}
	switch src.Lang {
	case driver.GLSL:
		s.uniforms = make(map[string]bool)
		scanUniforms(src.Vertex, s.uniforms)
		scanUniforms(src.Fragment, s.uniforms)
	case driver.SPIRV:
		for _, b := range [2][]byte{src.Vertex, src.Fragment} {
			if len(b) < 20 || len(b)%4 != 0 {
				return errors.New("headless: malformed SPIR-V module")
			}
			if binary.LittleEndian.Uint32(b) != spirvMagic {
				return errors.New("headless: bad SPIR-V magic number")
			}
		}
	case driver.WGSL:
	default:
		return fmt.Errorf("headless: unsupported shader language %v", src.Lang)
	}
	return nil
}

// scanUniforms adds the names of uniform declarations
// found in GLSL code to m.
func scanUniforms(code []byte, m map[string]bool) {
	sc := bufio.NewScanner(bytes.NewReader(code))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		f := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		for i, x := range f {
			if x != "uniform" || i+2 >= len(f) {
				continue
			}
			name := f[len(f)-1]
			if j := strings.IndexByte(name, '['); j >= 0 {
				name = name[:j]
			}
			m[name] = true
			break
		}
	}
}

func (s *shader) Use() {
	s.d.mu.Lock()
	s.d.shader = s.id
	s.d.mu.Unlock()
	s.d.record(Call{Op: OpUseShader, ID: s.id})
}

func (s *shader) ID() uint32 { return s.id }

func (s *shader) Loaded() bool { return s.loaded }

// set stores v if name is a declared uniform.
func (s *shader) set(name string, v any) {
	if !s.loaded {
		return
	}
	if s.uniforms != nil && !s.uniforms[name] {
		zap.L().Debug("uniform not found", zap.Uint32("shader", s.id), zap.String("name", name))
		return
	}
	s.values[name] = v
	s.d.record(Call{Op: OpUniform, ID: s.id, Name: name})
}

func (s *shader) SetInt(name string, v int32) { s.set(name, v) }

func (s *shader) SetFloat2(name string, x, y float32) { s.set(name, [2]float32{x, y}) }

func (s *shader) SetFloat4(name string, x, y, z, w float32) {
	s.set(name, [4]float32{x, y, z, w})
}

func (s *shader) SetMat4(name string, m *linear.M4) { s.set(name, *m) }

// Uniform returns the last value set for the named uniform
// of sh, which must have been created by this package.
func Uniform(sh driver.Shader, name string) (any, bool) {
	s, ok := sh.(*shader)
	if !ok {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

func (s *shader) Destroy() {
	if s == nil {
		return
	}
	*s = shader{}
}
