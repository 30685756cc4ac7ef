package models

import (
	"iter"
	"slices"
)

// NestableList is a growable ordered collection.
type NestableList[T comparable] struct {
	items []Element[T]
}

// NewNestableList creates an empty list with room for capacity entries.
func NewNestableList[T comparable](capacity int) *NestableList[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &NestableList[T]{items: make([]Element[T], 0, capacity)}
}

// NewNestableListOf creates a list holding entries in order.
func NewNestableListOf[T comparable](entries ...Element[T]) (*NestableList[T], error) {
	l := NewNestableList[T](len(entries))
	if err := Commit[T](l, entries, nil); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *NestableList[T]) Type() CollectionType { return TypeList }
func (l *NestableList[T]) Len() int             { return len(l.items) }

func (l *NestableList[T]) Get(i int) (Element[T], error) {
	if err := checkIndex(i, len(l.items)); err != nil {
		return Element[T]{}, err
	}
	return l.items[i], nil
}

func (l *NestableList[T]) Set(i int, e Element[T]) error {
	if err := checkIndex(i, len(l.items)); err != nil {
		return err
	}
	if err := checkCycle[T](l, e); err != nil {
		return err
	}
	l.items[i] = e
	return nil
}

func (l *NestableList[T]) Add(e Element[T]) error {
	if err := checkCycle[T](l, e); err != nil {
		return err
	}
	l.items = append(l.items, e)
	return nil
}

func (l *NestableList[T]) Insert(e Element[T], i int) error {
	if err := checkInsertIndex(i, len(l.items)); err != nil {
		return err
	}
	if err := checkCycle[T](l, e); err != nil {
		return err
	}
	l.items = slices.Insert(l.items, i, e)
	return nil
}

func (l *NestableList[T]) Remove(i int) error {
	if err := checkIndex(i, len(l.items)); err != nil {
		return err
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

func (l *NestableList[T]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

func (l *NestableList[T]) All() iter.Seq2[int, Element[T]] { return allEntries(l.items) }
func (l *NestableList[T]) Enumerate() iter.Seq[Scalar[T]]  { return enumerateLeaves(l.items) }

func (l *NestableList[T]) Equal(o Collection[T]) bool {
	m, ok := o.(*NestableList[T])
	return ok && m != nil && equalEntries(l.items, m.items)
}

func (l *NestableList[T]) Clone() Collection[T] {
	return &NestableList[T]{items: cloneEntries(l.items)}
}

func (l *NestableList[T]) commit(entries []Element[T], _ []string) {
	l.Clear()
	l.items = append(l.items, entries...)
}
