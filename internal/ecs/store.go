package ecs

import (
	"fmt"
	"iter"
	"slices"
)

// AnyStore is the type-erased view of a component store used for bulk
// operations such as sweeping destroyed entities.
type AnyStore interface {
	Name() string
	Remove(id EntityID)
	Has(id EntityID) bool
	Len() int
	Clear()
}

// Store is a typed component store. Values are held behind stable pointers so
// a pointer returned by Get stays valid until the component is removed.
type Store[T any] interface {
	AnyStore
	Set(id EntityID, v T) (prev T, had bool)
	Get(id EntityID) (*T, bool)
	All() iter.Seq2[EntityID, *T]
}

func storeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// DenseStore keeps components in a slice indexed by entity id. Suited to
// components most entities carry.
type DenseStore[T any] struct {
	name  string
	items []*T
	count int
}

// NewDenseStore creates an empty slice-backed store.
func NewDenseStore[T any]() *DenseStore[T] {
	return &DenseStore[T]{name: storeName[T](), items: make([]*T, 0, 64)}
}

func (s *DenseStore[T]) Name() string { return s.name }

// Set stores v for id and returns the value it replaced, if any.
func (s *DenseStore[T]) Set(id EntityID, v T) (T, bool) {
	idx := int(id)
	if idx >= len(s.items) {
		s.items = append(s.items, make([]*T, idx+1-len(s.items))...)
	}
	if p := s.items[idx]; p != nil {
		prev := *p
		*p = v
		return prev, true
	}
	c := v
	s.items[idx] = &c
	s.count++
	var zero T
	return zero, false
}

func (s *DenseStore[T]) Get(id EntityID) (*T, bool) {
	idx := int(id)
	if idx >= len(s.items) || s.items[idx] == nil {
		return nil, false
	}
	return s.items[idx], true
}

func (s *DenseStore[T]) Remove(id EntityID) {
	idx := int(id)
	if idx >= len(s.items) || s.items[idx] == nil {
		return
	}
	s.items[idx] = nil
	s.count--
}

func (s *DenseStore[T]) Has(id EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

func (s *DenseStore[T]) Len() int { return s.count }

func (s *DenseStore[T]) Clear() {
	s.items = s.items[:0]
	s.count = 0
}

// All yields every (id, component) pair in ascending id order. Removing the
// yielded entity during iteration is allowed.
func (s *DenseStore[T]) All() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		items := s.items
		for i := range items {
			p := items[i]
			if p == nil {
				continue
			}
			if !yield(EntityID(i), p) {
				return
			}
		}
	}
}

// SparseStore keeps components in a map. Suited to components only a few
// entities carry.
type SparseStore[T any] struct {
	name string
	data map[EntityID]*T
}

// NewSparseStore creates an empty map-backed store.
func NewSparseStore[T any]() *SparseStore[T] {
	return &SparseStore[T]{name: storeName[T](), data: make(map[EntityID]*T)}
}

func (s *SparseStore[T]) Name() string { return s.name }

// Set stores v for id and returns the value it replaced, if any.
func (s *SparseStore[T]) Set(id EntityID, v T) (T, bool) {
	if p, ok := s.data[id]; ok {
		prev := *p
		*p = v
		return prev, true
	}
	c := v
	s.data[id] = &c
	var zero T
	return zero, false
}

func (s *SparseStore[T]) Get(id EntityID) (*T, bool) {
	p, ok := s.data[id]
	return p, ok
}

func (s *SparseStore[T]) Remove(id EntityID) { delete(s.data, id) }

func (s *SparseStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *SparseStore[T]) Len() int { return len(s.data) }

func (s *SparseStore[T]) Clear() { clear(s.data) }

// All yields every (id, component) pair in ascending id order so that callers
// see the same sequence as with a DenseStore.
func (s *SparseStore[T]) All() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		ids := make([]EntityID, 0, len(s.data))
		for id := range s.data {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			p, ok := s.data[id]
			if !ok {
				continue
			}
			if !yield(id, p) {
				return
			}
		}
	}
}
