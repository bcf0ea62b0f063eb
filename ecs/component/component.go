// Package component defines the data attached to entities and the typed
// kinds the ecs package stores it under.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("component: entity is dead or was never created")
	ErrNilComponent         = errors.New("component: nil value")
	ErrInvalidComponentKind = errors.New("component: kind was not registered")
)

// ComponentID keys a component store. Zero is never issued.
type ComponentID uint32

var lastComponentID atomic.Uint32

// ComponentKind names the store for values of type T. Each call to
// NewComponentKind registers a distinct store, even for the same T, so
// packages declare their kinds once as package variables.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(lastComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

// Valid reports whether k came from NewComponentKind.
func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}
