package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrNoEntity    = errors.New("entity not found")
	ErrNoComponent = errors.New("component not found")
)

// NotFoundKind tells whether a lookup failed on the entity or on one of its components.
type NotFoundKind uint8

const (
	NotFoundEntity NotFoundKind = iota
	NotFoundComponent
)

// NotFoundError is returned when a structural lookup fails.
type NotFoundError struct {
	Kind      NotFoundKind
	Entity    EntityID
	Component string
}

func (e *NotFoundError) Error() string {
	if e.Kind == NotFoundEntity {
		return fmt.Sprintf("entity %d not found", e.Entity)
	}
	return fmt.Sprintf("entity %d has no %s", e.Entity, e.Component)
}

func (e *NotFoundError) Unwrap() error {
	if e.Kind == NotFoundEntity {
		return ErrNoEntity
	}
	return ErrNoComponent
}

// Require returns the component of id held by s, or a *NotFoundError naming
// what is missing.
func Require[T any](w *World, s Store[T], id EntityID) (*T, error) {
	if !w.Alive(id) {
		return nil, &NotFoundError{Kind: NotFoundEntity, Entity: id}
	}
	c, ok := s.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: NotFoundComponent, Entity: id, Component: s.Name()}
	}
	return c, nil
}

// MustGet is Require for call sites where the component's presence is an
// invariant. A miss is a programming error and panics.
func MustGet[T any](w *World, s Store[T], id EntityID) *T {
	c, err := Require(w, s, id)
	if err != nil {
		panic(err)
	}
	return c
}
