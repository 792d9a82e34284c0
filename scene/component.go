// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package scene

import (
	"fmt"
	"sync"

	"github.com/juzzbott/lightframe-engine/objectid"
)

// ComponentType identifies a kind of component.
type ComponentType int

var (
	ctMu    sync.Mutex
	ctNames = []string{"invalid"}
)

// RegisterComponentType registers a new component type.
// It is meant to be called when initializing package
// level variables.
func RegisterComponentType(name string) ComponentType {
	ctMu.Lock()
	defer ctMu.Unlock()
	ctNames = append(ctNames, name)
	return ComponentType(len(ctNames) - 1)
}

// String implements fmt.Stringer.
func (t ComponentType) String() string {
	ctMu.Lock()
	defer ctMu.Unlock()
	if t <= 0 || int(t) >= len(ctNames) {
		return fmt.Sprintf("ComponentType(%d)", int(t))
	}
	return ctNames[t]
}

// Component is the interface that data and behavior
// attached to objects must implement.
// Components refer to their owner by identifier only.
type Component interface {
	// Type returns the component type.
	// It must not change.
	Type() ComponentType

	// Attach is called when the component is added
	// to an object.
	Attach(owner objectid.ID)

	// Owner returns the identifier of the object the
	// component is attached to, or the zero ID.
	Owner() objectid.ID
}

// ComponentBase implements the owner tracking of
// Component.
// It is meant to be embedded.
type ComponentBase struct {
	owner objectid.ID
}

// Attach implements Component.
func (c *ComponentBase) Attach(owner objectid.ID) { c.owner = owner }

// Owner implements Component.
func (c *ComponentBase) Owner() objectid.ID { return c.owner }
