package models

import (
	"fmt"
	"iter"

	"github.com/mcncl/nestrep/internal/errors"
)

// NestableArray is a random-access collection whose length is fixed when it is
// created. Set never changes the length; Add appends past the end and is what
// decoders use to populate an empty array. Insert and Remove are unsupported.
type NestableArray[T comparable] struct {
	items []Element[T]
}

// NewNestableArray creates an array with size slots, each an absent scalar.
func NewNestableArray[T comparable](size int) *NestableArray[T] {
	if size < 0 {
		size = 0
	}
	return &NestableArray[T]{items: make([]Element[T], size)}
}

// NewNestableArrayOf creates an array holding entries in order.
func NewNestableArrayOf[T comparable](entries ...Element[T]) (*NestableArray[T], error) {
	a := NewNestableArray[T](0)
	if err := Commit[T](a, entries, nil); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *NestableArray[T]) Type() CollectionType { return TypeArray }
func (a *NestableArray[T]) Len() int             { return len(a.items) }

// Cap returns the slot capacity retained across Clear.
func (a *NestableArray[T]) Cap() int { return cap(a.items) }

func (a *NestableArray[T]) Get(i int) (Element[T], error) {
	if err := checkIndex(i, len(a.items)); err != nil {
		return Element[T]{}, err
	}
	return a.items[i], nil
}

func (a *NestableArray[T]) Set(i int, e Element[T]) error {
	if err := checkIndex(i, len(a.items)); err != nil {
		return err
	}
	if err := checkCycle[T](a, e); err != nil {
		return err
	}
	a.items[i] = e
	return nil
}

func (a *NestableArray[T]) Add(e Element[T]) error {
	if err := checkCycle[T](a, e); err != nil {
		return err
	}
	a.items = append(a.items, e)
	return nil
}

func (a *NestableArray[T]) Insert(Element[T], int) error {
	return errors.NewInvalidArgumentError(fmt.Sprintf("%s has a fixed layout and does not support Insert", TypeArray), errors.ErrUnsupported)
}

func (a *NestableArray[T]) Remove(int) error {
	return errors.NewInvalidArgumentError(fmt.Sprintf("%s has a fixed layout and does not support Remove", TypeArray), errors.ErrUnsupported)
}

func (a *NestableArray[T]) Clear() {
	clear(a.items)
	a.items = a.items[:0]
}

func (a *NestableArray[T]) All() iter.Seq2[int, Element[T]] { return allEntries(a.items) }
func (a *NestableArray[T]) Enumerate() iter.Seq[Scalar[T]]  { return enumerateLeaves(a.items) }

func (a *NestableArray[T]) Equal(o Collection[T]) bool {
	b, ok := o.(*NestableArray[T])
	return ok && b != nil && equalEntries(a.items, b.items)
}

func (a *NestableArray[T]) Clone() Collection[T] {
	return &NestableArray[T]{items: cloneEntries(a.items)}
}

func (a *NestableArray[T]) commit(entries []Element[T], _ []string) {
	a.Clear()
	a.items = append(a.items, entries...)
}
