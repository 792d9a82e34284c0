// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package scene provides the objects that make up a
// scene and the camera that views it.
//
// A Scene is the single owner of its objects. Objects
// refer to their parent, and components to their owner,
// through identifiers only.
package scene

import (
	"errors"

	"github.com/juzzbott/lightframe-engine/internal/datamap"
	"github.com/juzzbott/lightframe-engine/objectid"
)

// slot identifies an object in Scene.objs.
type slot int

// Scene owns a set of objects and one camera.
type Scene struct {
	name   string
	objs   datamap.Map[slot, *Object]
	index  map[objectid.ID]slot
	camera *Camera
}

func newSceneErr(s string) error { return errors.New("scene: " + s) }

var (
	errDupID    = newSceneErr("object identifier already in use")
	errZeroID   = newSceneErr("zero object identifier")
	errNoParent = newSceneErr("parent object not found")
	errViewSize = newSceneErr("camera view size must not be zero")
	errBadDepth = newSceneErr("camera near plane must be before far plane")
	errBadFOV   = newSceneErr("camera field of view out of range")
	errBadKind  = newSceneErr("unknown object kind")
)

// New creates a new, empty scene.
func New(name string, camera CameraSettings) *Scene {
	return &Scene{
		name:   name,
		index:  make(map[objectid.ID]slot),
		camera: newCamera(camera),
	}
}

// ValidateCamera checks that s describes a usable
// perspective projection.
func ValidateCamera(s *CameraSettings) error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return errViewSize
	case s.Near <= 0 || s.Near >= s.Far:
		return errBadDepth
	case s.FOV <= 0 || s.FOV >= 180:
		return errBadFOV
	}
	return nil
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Add creates a new object of the given kind.
func (s *Scene) Add(kind Kind) *Object {
	o, err := s.AddWithID(objectid.New(), kind)
	if err != nil {
		// Generated identifiers do not collide in practice.
		panic(err)
	}
	return o
}

// AddWithID creates a new object identified by id.
func (s *Scene) AddWithID(id objectid.ID, kind Kind) (*Object, error) {
	switch {
	case id.IsZero():
		return nil, errZeroID
	case kind != KindBase && kind != KindSpatial:
		return nil, errBadKind
	}
	if _, dup := s.index[id]; dup {
		return nil, errDupID
	}
	o := &Object{
		id:    id,
		scene: s,
		kind:  kind,
		xform: Identity(),
	}
	s.index[id] = s.objs.Insert(o)
	return o, nil
}

// AddChild creates a new object whose parent is parent.
func (s *Scene) AddChild(parent objectid.ID, kind Kind) (*Object, error) {
	if s.Object(parent) == nil {
		return nil, errNoParent
	}
	o := s.Add(kind)
	o.parent = parent
	return o, nil
}

// Object returns the object identified by id, or nil.
func (s *Scene) Object(id objectid.ID) *Object {
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	return *s.objs.Get(i)
}

// Remove removes the object identified by id, along with
// its components.
// Children of the removed object become parentless.
// It returns false if no such object exists.
func (s *Scene) Remove(id objectid.ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	o := s.objs.Remove(i)
	delete(s.index, id)
	for _, x := range s.objs.All() {
		if x.parent == id {
			x.parent = objectid.ID{}
		}
	}
	for _, c := range o.comps {
		c.Attach(objectid.ID{})
	}
	o.comps = nil
	o.scene = nil
	return true
}

// Children returns the identifiers of the objects whose
// parent is id.
func (s *Scene) Children(id objectid.ID) []objectid.ID {
	var ids []objectid.ID
	for _, x := range s.objs.All() {
		if x.parent == id {
			ids = append(ids, x.id)
		}
	}
	return ids
}

// ForEach calls f for each object in the scene.
// The scene must not be changed until this method
// returns.
func (s *Scene) ForEach(f func(*Object)) {
	for _, o := range s.objs.All() {
		f(o)
	}
}

// Len returns the number of objects in the scene.
func (s *Scene) Len() int { return s.objs.Len() }

// Clear removes every object from the scene.
// The camera is kept.
func (s *Scene) Clear() {
	for _, o := range s.objs.All() {
		for _, c := range o.comps {
			c.Attach(objectid.ID{})
		}
		o.comps = nil
		o.scene = nil
	}
	s.objs.Clear()
	clear(s.index)
}
