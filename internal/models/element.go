package models

import (
	"fmt"
	"slices"

	"github.com/mcncl/nestrep/internal/errors"
)

// Kind is the active variant of an Element.
type Kind uint8

const (
	KindScalar Kind = iota
	KindArray
	KindCollection
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Element is one node of a nested tree: a scalar, a flat array of scalars, or a
// collection of further elements. The zero Element is an absent scalar.
type Element[T comparable] struct {
	kind   Kind
	scalar Scalar[T]
	array  []Scalar[T]
	coll   Collection[T]
}

// NewScalar returns a scalar element holding v.
func NewScalar[T comparable](v T) Element[T] {
	return Element[T]{kind: KindScalar, scalar: Of(v)}
}

// NewScalarOf returns a scalar element for s, which may be null or hard null.
func NewScalarOf[T comparable](s Scalar[T]) Element[T] {
	return Element[T]{kind: KindScalar, scalar: s}
}

// NewNull returns a scalar element with no value.
func NewNull[T comparable]() Element[T] {
	return Element[T]{kind: KindScalar}
}

// NewArray returns an array element of present scalars. The array is never
// nil, so NewArray[T]() is an empty array rather than an absent one.
func NewArray[T comparable](vs ...T) Element[T] {
	return Element[T]{kind: KindArray, array: Scalars(vs...)}
}

// NewArrayOf returns an array element over items. A nil slice is kept as an
// absent array, distinct from an empty one.
func NewArrayOf[T comparable](items []Scalar[T]) Element[T] {
	return Element[T]{kind: KindArray, array: items}
}

// NewCollection returns a collection element. A nil collection is rejected.
func NewCollection[T comparable](c Collection[T]) (Element[T], error) {
	if IsNilCollection(c) {
		return Element[T]{}, errors.NewInvalidArgumentError("collection element requires a collection", errors.ErrNilCollection)
	}
	return Element[T]{kind: KindCollection, coll: c}, nil
}

// Kind returns the active variant
func (e Element[T]) Kind() Kind {
	return e.kind
}

// SetScalar replaces the element with a scalar variant.
func (e *Element[T]) SetScalar(s Scalar[T]) {
	*e = Element[T]{kind: KindScalar, scalar: s}
}

// SetArray replaces the element with an array variant. items may be nil.
func (e *Element[T]) SetArray(items []Scalar[T]) {
	*e = Element[T]{kind: KindArray, array: items}
}

// SetCollection replaces the element with a collection variant. On error the
// element is left unchanged.
func (e *Element[T]) SetCollection(c Collection[T]) error {
	n, err := NewCollection(c)
	if err != nil {
		return err
	}
	*e = n
	return nil
}

// Scalar returns the scalar payload, failing if the element is not a scalar.
func (e Element[T]) Scalar() (Scalar[T], error) {
	if e.kind != KindScalar {
		return Scalar[T]{}, e.mismatch(KindScalar)
	}
	return e.scalar, nil
}

// Array returns the array payload, which may be nil for an absent array.
func (e Element[T]) Array() ([]Scalar[T], error) {
	if e.kind != KindArray {
		return nil, e.mismatch(KindArray)
	}
	return e.array, nil
}

// Collection returns the collection payload.
func (e Element[T]) Collection() (Collection[T], error) {
	if e.kind != KindCollection {
		return nil, e.mismatch(KindCollection)
	}
	return e.coll, nil
}

func (e Element[T]) mismatch(want Kind) error {
	return errors.NewTypeMismatchError(fmt.Sprintf("element is a %s, not a %s", e.kind, want), nil)
}

// Equal reports structural equality: same variant and equal payloads.
func (e Element[T]) Equal(o Element[T]) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case KindScalar:
		return e.scalar.Equal(o.scalar)
	case KindArray:
		if (e.array == nil) != (o.array == nil) {
			return false
		}
		return slices.EqualFunc(e.array, o.array, Scalar[T].Equal)
	case KindCollection:
		return EqualCollections(e.coll, o.coll)
	}
	return false
}

// Clone returns a deep copy. Nested collections are cloned, never shared.
func (e Element[T]) Clone() Element[T] {
	switch e.kind {
	case KindArray:
		if e.array == nil {
			return e
		}
		return Element[T]{kind: KindArray, array: slices.Clone(e.array)}
	case KindCollection:
		return Element[T]{kind: KindCollection, coll: e.coll.Clone()}
	}
	return e
}
