package models

import (
	"fmt"
	"iter"

	"github.com/mcncl/nestrep/internal/errors"
)

// CollectionType tags the shape of a collection. Its name is written
// verbatim into represent strings.
type CollectionType uint8

const (
	TypeArray CollectionType = iota
	TypeList
	TypeDictionary
)

var collectionTypeNames = [...]string{
	TypeArray:      "NestableArray",
	TypeList:       "NestableListL",
	TypeDictionary: "NestableDictionary",
}

// CollectionTypes lists every collection type in tag order.
func CollectionTypes() []CollectionType {
	return []CollectionType{TypeArray, TypeList, TypeDictionary}
}

// String returns the type name used in represent strings
func (t CollectionType) String() string {
	if int(t) < len(collectionTypeNames) {
		return collectionTypeNames[t]
	}
	return fmt.Sprintf("CollectionType(%d)", uint8(t))
}

// ParseCollectionType resolves a type name by exact match.
func ParseCollectionType(name string) (CollectionType, bool) {
	for i, n := range collectionTypeNames {
		if n == name {
			return CollectionType(i), true
		}
	}
	return 0, false
}

// Collection is the contract shared by NestableArray, NestableList and
// NestableDictionary. The set of implementations is closed.
//
// Collections have no internal locking. Mutating a collection while it is
// being enumerated, encoded or decoded into is the caller's problem.
type Collection[T comparable] interface {
	// Type returns the collection type tag.
	Type() CollectionType
	// Len returns the number of top-level entries.
	Len() int
	// Get returns the entry at index i.
	Get(i int) (Element[T], error)
	// Set replaces the entry at index i without changing the length.
	Set(i int, e Element[T]) error
	// Add appends an entry.
	Add(e Element[T]) error
	// Insert places e at index i, shifting later entries.
	Insert(e Element[T], i int) error
	// Remove deletes the entry at index i, shifting later entries.
	Remove(i int) error
	// Clear drops every entry, keeping the type.
	Clear()
	// All yields top-level entries with their index.
	All() iter.Seq2[int, Element[T]]
	// Enumerate yields leaf scalars depth first, flattening arrays and
	// nested collections.
	Enumerate() iter.Seq[Scalar[T]]
	// Equal reports structural equality with o.
	Equal(o Collection[T]) bool
	// Clone returns a deep copy.
	Clone() Collection[T]

	// commit replaces the whole contents in one step. keys is nil for
	// non-dictionary collections.
	commit(entries []Element[T], keys []string)
}

// EqualCollections compares two collections structurally. Two nil
// collections are equal.
func EqualCollections[T comparable](a, b Collection[T]) bool {
	an, bn := IsNilCollection(a), IsNilCollection(b)
	if an || bn {
		return an == bn
	}
	return a.Equal(b)
}

// Commit replaces the contents of c with entries (and keys, for
// dictionaries). It is used by decoders after a whole body has been parsed so
// a failed decode never leaves c half populated.
func Commit[T comparable](c Collection[T], entries []Element[T], keys []string) error {
	if IsNilCollection(c) {
		return errors.NewInvalidArgumentError("cannot commit into a nil collection", errors.ErrNilCollection)
	}
	if c.Type() == TypeDictionary {
		if keys == nil {
			keys = make([]string, len(entries))
		}
		if len(keys) != len(entries) {
			return errors.NewInvalidArgumentError(
				fmt.Sprintf("dictionary needs one key per entry, got %d keys for %d entries", len(keys), len(entries)),
				nil,
			)
		}
	}
	for _, e := range entries {
		if err := checkCycle(c, e); err != nil {
			return err
		}
	}
	c.commit(entries, keys)
	return nil
}

// IsNilCollection reports whether c is nil or a typed nil pointer.
func IsNilCollection[T comparable](c Collection[T]) bool {
	switch v := c.(type) {
	case nil:
		return true
	case *NestableArray[T]:
		return v == nil
	case *NestableList[T]:
		return v == nil
	case *NestableDictionary[T]:
		return v == nil
	}
	return false
}

// checkCycle rejects e when it would make owner contain itself.
func checkCycle[T comparable](owner Collection[T], e Element[T]) error {
	if e.kind != KindCollection {
		return nil
	}
	if reaches(e.coll, owner) {
		return errors.NewInvalidArgumentError(
			fmt.Sprintf("adding this %s would make the collection contain itself", e.coll.Type()),
			errors.ErrCycle,
		)
	}
	return nil
}

func reaches[T comparable](from, target Collection[T]) bool {
	if from == target {
		return true
	}
	for _, child := range from.All() {
		if child.kind == KindCollection && reaches(child.coll, target) {
			return true
		}
	}
	return false
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return errors.NewInvalidArgumentError(fmt.Sprintf("index %d out of range [0,%d)", i, n), errors.ErrIndexOutOfRange)
	}
	return nil
}

func checkInsertIndex(i, n int) error {
	if i < 0 || i > n {
		return errors.NewInvalidArgumentError(fmt.Sprintf("insert index %d out of range [0,%d]", i, n), errors.ErrIndexOutOfRange)
	}
	return nil
}

func allEntries[T comparable](items []Element[T]) iter.Seq2[int, Element[T]] {
	return func(yield func(int, Element[T]) bool) {
		for i, e := range items {
			if !yield(i, e) {
				return
			}
		}
	}
}

func enumerateLeaves[T comparable](items []Element[T]) iter.Seq[Scalar[T]] {
	return func(yield func(Scalar[T]) bool) {
		walkLeaves(items, yield)
	}
}

func walkLeaves[T comparable](items []Element[T], yield func(Scalar[T]) bool) bool {
	for _, e := range items {
		switch e.kind {
		case KindScalar:
			if !yield(e.scalar) {
				return false
			}
		case KindArray:
			for _, s := range e.array {
				if !yield(s) {
					return false
				}
			}
		case KindCollection:
			for s := range e.coll.Enumerate() {
				if !yield(s) {
					return false
				}
			}
		}
	}
	return true
}

func equalEntries[T comparable](a, b []Element[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func cloneEntries[T comparable](items []Element[T]) []Element[T] {
	out := make([]Element[T], len(items), cap(items))
	for i, e := range items {
		out[i] = e.Clone()
	}
	return out
}
