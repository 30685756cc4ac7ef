package models

import (
	"fmt"
	"sort"

	"github.com/mcncl/nestrep/internal/errors"
)

// Constructor builds empty collections of one type.
type Constructor[T comparable] struct {
	Type CollectionType
	// New returns an empty collection.
	New func() Collection[T]
	// NewSized returns an empty collection prepared for n entries.
	NewSized func(n int) Collection[T]
}

// Registry maps collection type names to constructors. It is immutable once
// built and safe for concurrent use.
type Registry[T comparable] struct {
	byName map[string]Constructor[T]
}

// NewRegistry builds a registry for the given types, or for every type when
// none are given.
func NewRegistry[T comparable](types ...CollectionType) *Registry[T] {
	if len(types) == 0 {
		types = CollectionTypes()
	}
	r := &Registry[T]{byName: make(map[string]Constructor[T], len(types))}
	for _, t := range types {
		if c, ok := defaultConstructor[T](t); ok {
			r.byName[t.String()] = c
		}
	}
	return r
}

func defaultConstructor[T comparable](t CollectionType) (Constructor[T], bool) {
	switch t {
	case TypeArray:
		return Constructor[T]{
			Type:     t,
			New:      func() Collection[T] { return NewNestableArray[T](0) },
			NewSized: func(n int) Collection[T] { return NewNestableArray[T](n) },
		}, true
	case TypeList:
		return Constructor[T]{
			Type:     t,
			New:      func() Collection[T] { return NewNestableList[T](0) },
			NewSized: func(n int) Collection[T] { return NewNestableList[T](n) },
		}, true
	case TypeDictionary:
		return Constructor[T]{
			Type:     t,
			New:      func() Collection[T] { return NewNestableDictionary[T](0) },
			NewSized: func(n int) Collection[T] { return NewNestableDictionary[T](n) },
		}, true
	}
	return Constructor[T]{}, false
}

// Resolve finds the constructor registered under name.
func (r *Registry[T]) Resolve(name string) (Constructor[T], error) {
	c, ok := r.byName[name]
	if !ok {
		return Constructor[T]{}, errors.NewFormatError(fmt.Sprintf("unknown collection type %q", name), errors.ErrUnknownType)
	}
	return c, nil
}

// New builds an empty collection for the type registered under name.
func (r *Registry[T]) New(name string) (Collection[T], error) {
	c, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return c.New(), nil
}

// Names returns the registered type names, sorted.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
