// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package resource implements a registry of GPU resources
// addressed by opaque handles.
//
// Handles are assigned per Kind, starting at 1, and are
// never reused while the registry is alive.
// The zero Handle (None) means "no resource".
package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Kind is the type of resource categories.
type Kind int

// Resource kinds.
const (
	Shader Kind = iota
	Texture
	Mesh
	Material
	Buffer
	Pipeline
	Uniform

	kindCount
)

var kindNames = [kindCount]string{
	Shader:   "shader",
	Texture:  "texture",
	Mesh:     "mesh",
	Material: "material",
	Buffer:   "buffer",
	Pipeline: "pipeline",
	Uniform:  "uniform",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Handle identifies a resource of a given Kind.
type Handle uint32

// None is the sentinel Handle.
const None Handle = 0

// Ref identifies a resource in a Registry.
type Ref struct {
	Kind   Kind
	Handle Handle
}

// Descriptor describes a resource to be registered.
type Descriptor struct {
	Kind Kind
	// Name is an optional alias.
	Name string
	// Path is the file the resource is loaded from.
	// If Data is nil, the registry reads Path before
	// calling the loader.
	Path string
	Data []byte
	// Value, if not nil, is stored as the resource
	// and no loader is called.
	Value any
}

// Loader creates resources of a given Kind.
// On content errors, Load must return a degraded value
// (e.g., a shader that is not loaded) along with the
// error. A nil value is a programming error.
type Loader interface {
	Load(d *Descriptor) (any, error)
}

// LoaderFunc is an adapter to use ordinary functions
// as Loaders.
type LoaderFunc func(d *Descriptor) (any, error)

// Load calls f(d).
func (f LoaderFunc) Load(d *Descriptor) (any, error) { return f(d) }

type entry struct {
	value any
	desc  Descriptor
}

// Registry owns registered resources.
type Registry struct {
	log *zap.Logger

	mu      sync.RWMutex
	loaders [kindCount]Loader
	last    [kindCount]Handle
	live    [kindCount]int
	entries map[Ref]*entry
	names   [kindCount]map[string]Handle
	paths   map[string][]Ref
}

// New creates a new, empty registry.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		log:     log.Named("resource"),
		entries: make(map[Ref]*entry),
		paths:   make(map[string][]Ref),
	}
	for i := range r.names {
		r.names[i] = make(map[string]Handle)
	}
	return r
}

// SetLoader sets the Loader for resources of kind k.
func (r *Registry) SetLoader(k Kind, l Loader) {
	checkKind(k)
	r.mu.Lock()
	r.loaders[k] = l
	r.mu.Unlock()
}

func checkKind(k Kind) {
	if k < 0 || k >= kindCount {
		panic(fmt.Sprintf("resource: unknown kind %d", int(k)))
	}
}

// Register creates a resource from d and stores it under
// the next Handle of d.Kind.
// Content errors are logged and the degraded resource is
// stored anyway. Registering the same Path twice creates
// two independent resources.
// If d.Name is already in use for d.Kind, the new resource
// is reachable by Handle only.
func (r *Registry) Register(d *Descriptor) Handle {
	checkKind(d.Kind)
	desc := *d
	if desc.Value == nil && desc.Data == nil && desc.Path != "" {
		b, err := os.ReadFile(desc.Path)
		if err != nil {
			r.log.Error("read failed", zap.Stringer("kind", desc.Kind), zap.String("path", desc.Path), zap.Error(err))
		}
		desc.Data = b
	}
	v := r.load(&desc)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last[desc.Kind]++
	r.live[desc.Kind]++
	h := r.last[desc.Kind]
	ref := Ref{desc.Kind, h}
	desc.Value = nil
	if desc.Path != "" {
		// Reread on reload.
		desc.Data = nil
	}
	r.entries[ref] = &entry{value: v, desc: desc}
	if desc.Name != "" {
		if old, dup := r.names[desc.Kind][desc.Name]; dup {
			r.log.Warn("duplicate name",
				zap.Stringer("kind", desc.Kind),
				zap.String("name", desc.Name),
				zap.Uint32("handle", uint32(old)),
				zap.Uint32("ignored", uint32(h)))
		} else {
			r.names[desc.Kind][desc.Name] = h
		}
	}
	if desc.Path != "" {
		p := filepath.Clean(desc.Path)
		r.paths[p] = append(r.paths[p], ref)
	}
	r.log.Debug("registered",
		zap.Stringer("kind", desc.Kind),
		zap.Uint32("handle", uint32(h)),
		zap.String("name", desc.Name))
	return h
}

// load creates the resource value for d.
func (r *Registry) load(d *Descriptor) any {
	if d.Value != nil {
		return d.Value
	}
	r.mu.RLock()
	l := r.loaders[d.Kind]
	r.mu.RUnlock()
	if l == nil {
		panic(fmt.Sprintf("resource: no loader for %v and no value given", d.Kind))
	}
	v, err := l.Load(d)
	if v == nil {
		panic(fmt.Sprintf("resource: %v loader returned no value", d.Kind))
	}
	if err != nil {
		r.log.Warn("load failed",
			zap.Stringer("kind", d.Kind),
			zap.String("name", d.Name),
			zap.String("path", d.Path),
			zap.Error(err))
	}
	return v
}

// Add stores v under a new Handle of kind k.
func (r *Registry) Add(k Kind, name string, v any) Handle {
	if v == nil {
		panic("resource: Add with nil value")
	}
	return r.Register(&Descriptor{Kind: k, Name: name, Value: v})
}

// Lookup returns the Handle aliased by name.
func (r *Registry) Lookup(k Kind, name string) (Handle, bool) {
	checkKind(k)
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.names[k][name]
	return h, ok
}

// Name returns the name given when h was registered.
func (r *Registry) Name(k Kind, h Handle) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[Ref{k, h}]; ok {
		return e.desc.Name
	}
	return ""
}

// Has returns whether h is a registered Handle of kind k.
func (r *Registry) Has(k Kind, h Handle) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[Ref{k, h}]
	return ok
}

// Len returns the number of live resources of kind k.
// It does not count resources removed by Destroy.
func (r *Registry) Len(k Kind) int {
	checkKind(k)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.live[k]
}

// ByPath returns the resources loaded from path.
func (r *Registry) ByPath(path string) []Ref {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := r.paths[filepath.Clean(path)]
	return append([]Ref(nil), refs...)
}

// value returns the resource identified by ref.
func (r *Registry) value(ref Ref) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[ref]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Get returns the resource of kind k identified by h.
// It panics if h is not registered or if the resource
// is not of type T.
func Get[T any](r *Registry, k Kind, h Handle) T {
	v, ok := r.value(Ref{k, h})
	if !ok {
		panic(fmt.Sprintf("resource: %v handle %d not registered", k, h))
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("resource: %v handle %d has type %T, not %T", k, h, v, t))
	}
	return t
}

// TryGet is like Get but reports failure instead of
// panicking.
func TryGet[T any](r *Registry, k Kind, h Handle) (T, bool) {
	var t T
	v, ok := r.value(Ref{k, h})
	if !ok {
		return t, false
	}
	t, ok = v.(T)
	return t, ok
}

// Reload recreates the resource identified by h from its
// original descriptor, rereading the file if it came from
// one. The previous value is destroyed.
// Reload fails if h was created from a value.
func (r *Registry) Reload(k Kind, h Handle) error {
	r.mu.RLock()
	e, ok := r.entries[Ref{k, h}]
	var desc Descriptor
	if ok {
		desc = e.desc
	}
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("resource: %v handle %d not registered", k, h)
	}
	if desc.Path == "" && desc.Data == nil {
		return fmt.Errorf("resource: %v handle %d has no source to reload", k, h)
	}
	if desc.Path != "" {
		b, err := os.ReadFile(desc.Path)
		if err != nil {
			return fmt.Errorf("resource: reload %v handle %d: %w", k, h, err)
		}
		desc.Data = b
	}
	v := r.load(&desc)

	r.mu.Lock()
	old := e.value
	e.value = v
	r.mu.Unlock()
	destroy(old)
	r.log.Info("reloaded", zap.Stringer("kind", k), zap.Uint32("handle", uint32(h)), zap.String("path", desc.Path))
	return nil
}

func destroy(v any) {
	if d, ok := v.(interface{ Destroy() }); ok {
		d.Destroy()
	}
}

// Destroy destroys every resource in the registry.
// Handles remain unavailable for reuse.
// Resources are destroyed in reverse kind order, so that
// materials and meshes go before the shaders and
// textures they refer to.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := kindCount - 1; k >= 0; k-- {
		for h := Handle(1); h <= r.last[k]; h++ {
			if e, ok := r.entries[Ref{k, h}]; ok {
				destroy(e.value)
				delete(r.entries, Ref{k, h})
			}
		}
		clear(r.names[k])
		r.live[k] = 0
	}
	clear(r.paths)
}
