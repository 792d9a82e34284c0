// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package scene

import (
	"github.com/juzzbott/lightframe-engine/objectid"
)

// Kind is the type of object kinds.
type Kind int

// Object kinds.
const (
	// KindBase objects have identity and components
	// but no position.
	KindBase Kind = iota
	// KindSpatial objects have a Transform.
	KindSpatial
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindSpatial:
		return "spatial"
	}
	return "unknown"
}

// Object is an entity owned by a Scene.
type Object struct {
	id     objectid.ID
	parent objectid.ID
	scene  *Scene
	kind   Kind
	xform  Transform
	comps  []Component
}

// ID returns the object's identifier.
func (o *Object) ID() objectid.ID { return o.id }

// Kind returns the object's kind.
func (o *Object) Kind() Kind { return o.kind }

// Scene returns the scene that owns o.
// It returns nil after o is removed.
func (o *Object) Scene() *Scene { return o.scene }

// Parent returns the identifier of o's parent.
// It returns false if o has no parent.
func (o *Object) Parent() (objectid.ID, bool) { return o.parent, !o.parent.IsZero() }

// SetParent sets the parent of o.
// The zero ID clears the parent.
// It returns false if parent is not an object of the
// same scene or if the change would create a cycle.
// A parent's transform is not propagated to its children.
func (o *Object) SetParent(parent objectid.ID) bool {
	if parent.IsZero() {
		o.parent = parent
		return true
	}
	if o.scene == nil {
		return false
	}
	for p := parent; !p.IsZero(); {
		if p == o.id {
			return false
		}
		q := o.scene.Object(p)
		if q == nil {
			return false
		}
		p = q.parent
	}
	o.parent = parent
	return true
}

// Spatial returns the transform of o, or nil if o is
// not a spatial object.
func (o *Object) Spatial() *Transform {
	if o.kind != KindSpatial {
		return nil
	}
	return &o.xform
}

// AddComponent attaches c to o.
// At most one component of each type can be attached;
// AddComponent replaces any component of the same type
// and returns it.
func (o *Object) AddComponent(c Component) (replaced Component) {
	c.Attach(o.id)
	for i := range o.comps {
		if o.comps[i].Type() == c.Type() {
			replaced = o.comps[i]
			o.comps[i] = c
			replaced.Attach(objectid.ID{})
			return
		}
	}
	o.comps = append(o.comps, c)
	return nil
}

// Component returns the component of type t attached to
// o, or nil if there is none.
func (o *Object) Component(t ComponentType) Component {
	for _, c := range o.comps {
		if c.Type() == t {
			return c
		}
	}
	return nil
}

// RemoveComponent detaches the component of type t.
// It returns the removed component, if any.
func (o *Object) RemoveComponent(t ComponentType) Component {
	for i, c := range o.comps {
		if c.Type() == t {
			o.comps = append(o.comps[:i], o.comps[i+1:]...)
			c.Attach(objectid.ID{})
			return c
		}
	}
	return nil
}

// Components returns the components attached to o, in
// attachment order.
// The slice must not be modified.
func (o *Object) Components() []Component { return o.comps }

// ComponentOf returns the component of type t attached
// to o, asserted to type C.
func ComponentOf[C Component](o *Object, t ComponentType) (C, bool) {
	c, ok := o.Component(t).(C)
	return c, ok
}
