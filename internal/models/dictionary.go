package models

import (
	"fmt"
	"iter"
	"slices"

	"github.com/mcncl/nestrep/internal/errors"
)

// NestableDictionary is an ordered list of keyed entries. Keys are not
// required to be unique; lookups by key return the first match. The keys and
// entries slices always have the same length.
type NestableDictionary[T comparable] struct {
	key   string
	keys  []string
	items []Element[T]
}

// NewNestableDictionary creates an empty dictionary with room for capacity entries.
func NewNestableDictionary[T comparable](capacity int) *NestableDictionary[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &NestableDictionary[T]{
		keys:  make([]string, 0, capacity),
		items: make([]Element[T], 0, capacity),
	}
}

// Key returns the dictionary's own key, set when it is nested inside
// another dictionary.
func (d *NestableDictionary[T]) Key() string { return d.key }

// SetKey sets the dictionary's own key.
func (d *NestableDictionary[T]) SetKey(key string) { d.key = key }

func (d *NestableDictionary[T]) Type() CollectionType { return TypeDictionary }
func (d *NestableDictionary[T]) Len() int             { return len(d.items) }

func (d *NestableDictionary[T]) Get(i int) (Element[T], error) {
	if err := checkIndex(i, len(d.items)); err != nil {
		return Element[T]{}, err
	}
	return d.items[i], nil
}

// Set replaces the entry at i and keeps its key.
func (d *NestableDictionary[T]) Set(i int, e Element[T]) error {
	if err := checkIndex(i, len(d.items)); err != nil {
		return err
	}
	if err := checkCycle[T](d, e); err != nil {
		return err
	}
	d.items[i] = e
	return nil
}

// Add appends e with an empty key.
func (d *NestableDictionary[T]) Add(e Element[T]) error {
	return d.AddKeyed("", e)
}

// AddKeyed appends e under key. A nested dictionary without a key of its own
// takes the entry key.
func (d *NestableDictionary[T]) AddKeyed(key string, e Element[T]) error {
	return d.InsertKeyed(key, e, len(d.items))
}

// Insert places e at i with an empty key.
func (d *NestableDictionary[T]) Insert(e Element[T], i int) error {
	return d.InsertKeyed("", e, i)
}

// InsertKeyed places e under key at index i.
func (d *NestableDictionary[T]) InsertKeyed(key string, e Element[T], i int) error {
	if err := checkInsertIndex(i, len(d.items)); err != nil {
		return err
	}
	if err := checkCycle[T](d, e); err != nil {
		return err
	}
	adoptKey(key, e)
	d.keys = slices.Insert(d.keys, i, key)
	d.items = slices.Insert(d.items, i, e)
	return nil
}

func (d *NestableDictionary[T]) Remove(i int) error {
	if err := checkIndex(i, len(d.items)); err != nil {
		return err
	}
	d.keys = slices.Delete(d.keys, i, i+1)
	d.items = slices.Delete(d.items, i, i+1)
	return nil
}

func (d *NestableDictionary[T]) Clear() {
	clear(d.items)
	d.keys = d.keys[:0]
	d.items = d.items[:0]
}

// KeyAt returns the key of the entry at index i.
func (d *NestableDictionary[T]) KeyAt(i int) (string, error) {
	if err := checkIndex(i, len(d.keys)); err != nil {
		return "", err
	}
	return d.keys[i], nil
}

// SetKeyAt renames the entry at index i.
func (d *NestableDictionary[T]) SetKeyAt(i int, key string) error {
	if err := checkIndex(i, len(d.keys)); err != nil {
		return err
	}
	d.keys[i] = key
	return nil
}

// IndexOf returns the index of the first entry with key, or -1.
func (d *NestableDictionary[T]) IndexOf(key string) int {
	return slices.Index(d.keys, key)
}

// Lookup returns the first entry stored under key.
func (d *NestableDictionary[T]) Lookup(key string) (Element[T], bool) {
	i := d.IndexOf(key)
	if i < 0 {
		return Element[T]{}, false
	}
	return d.items[i], true
}

// Keys returns a copy of the entry keys in order.
func (d *NestableDictionary[T]) Keys() []string {
	return slices.Clone(d.keys)
}

// Keyed yields entries with their keys.
func (d *NestableDictionary[T]) Keyed() iter.Seq2[string, Element[T]] {
	return func(yield func(string, Element[T]) bool) {
		for i, e := range d.items {
			if !yield(d.keys[i], e) {
				return
			}
		}
	}
}

func (d *NestableDictionary[T]) All() iter.Seq2[int, Element[T]] { return allEntries(d.items) }
func (d *NestableDictionary[T]) Enumerate() iter.Seq[Scalar[T]]  { return enumerateLeaves(d.items) }

func (d *NestableDictionary[T]) Equal(o Collection[T]) bool {
	m, ok := o.(*NestableDictionary[T])
	if !ok || m == nil {
		return false
	}
	return d.key == m.key && slices.Equal(d.keys, m.keys) && equalEntries(d.items, m.items)
}

func (d *NestableDictionary[T]) Clone() Collection[T] {
	return &NestableDictionary[T]{
		key:   d.key,
		keys:  slices.Clone(d.keys),
		items: cloneEntries(d.items),
	}
}

func (d *NestableDictionary[T]) commit(entries []Element[T], keys []string) {
	d.Clear()
	d.keys = append(d.keys, keys...)
	d.items = append(d.items, entries...)
}

// String is a short debugging description
func (d *NestableDictionary[T]) String() string {
	return fmt.Sprintf("%s(key=%q, len=%d)", TypeDictionary, d.key, len(d.items))
}

func adoptKey[T comparable](key string, e Element[T]) {
	if key == "" || e.kind != KindCollection {
		return
	}
	if nested, ok := e.coll.(*NestableDictionary[T]); ok && nested.key == "" {
		nested.key = key
	}
}

var _ Collection[string] = (*NestableDictionary[string])(nil)
var _ Collection[string] = (*NestableList[string])(nil)
var _ Collection[string] = (*NestableArray[string])(nil)

// errKeyCount is returned by dictionary builders when keys and values differ in length.
func errKeyCount(keys, values int) error {
	return errors.NewInvalidArgumentError(fmt.Sprintf("got %d keys for %d values", keys, values), nil)
}

// NewNestableDictionaryOf builds a dictionary from parallel keys and entries.
func NewNestableDictionaryOf[T comparable](keys []string, entries []Element[T]) (*NestableDictionary[T], error) {
	if len(keys) != len(entries) {
		return nil, errKeyCount(len(keys), len(entries))
	}
	d := NewNestableDictionary[T](len(entries))
	for i, e := range entries {
		if err := d.AddKeyed(keys[i], e); err != nil {
			return nil, err
		}
	}
	return d, nil
}
