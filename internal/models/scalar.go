package models

import "fmt"

// ScalarState tells whether a scalar carries a value or one of the two null markers.
type ScalarState uint8

const (
	// ScalarNull is an absent value. It is the zero state.
	ScalarNull ScalarState = iota
	// ScalarPresent carries a value of the scalar type.
	ScalarPresent
	// ScalarHardNull is the domain "hard null" marker, written as db_null.
	ScalarHardNull
)

// String returns the state name
func (s ScalarState) String() string {
	switch s {
	case ScalarNull:
		return "null"
	case ScalarPresent:
		return "present"
	case ScalarHardNull:
		return "db_null"
	default:
		return "unknown"
	}
}

// Scalar is a leaf value of a nested tree. The zero Scalar is absent (null).
type Scalar[T comparable] struct {
	value T
	state ScalarState
}

// Of returns a present scalar holding v.
func Of[T comparable](v T) Scalar[T] {
	return Scalar[T]{value: v, state: ScalarPresent}
}

// Null returns an absent scalar.
func Null[T comparable]() Scalar[T] {
	return Scalar[T]{}
}

// HardNull returns a scalar holding the hard-null marker.
func HardNull[T comparable]() Scalar[T] {
	return Scalar[T]{state: ScalarHardNull}
}

// Value returns the held value and whether one is present.
func (s Scalar[T]) Value() (T, bool) {
	return s.value, s.state == ScalarPresent
}

// State returns the scalar state
func (s Scalar[T]) State() ScalarState {
	return s.state
}

// IsNull reports whether the scalar is absent
func (s Scalar[T]) IsNull() bool {
	return s.state == ScalarNull
}

// IsHardNull reports whether the scalar holds the hard-null marker
func (s Scalar[T]) IsHardNull() bool {
	return s.state == ScalarHardNull
}

// Equal compares state and, for present scalars, the value.
func (s Scalar[T]) Equal(o Scalar[T]) bool {
	if s.state != o.state {
		return false
	}
	return s.state != ScalarPresent || s.value == o.value
}

// String implements fmt.Stringer for debugging output
func (s Scalar[T]) String() string {
	if s.state != ScalarPresent {
		return s.state.String()
	}
	return fmt.Sprint(s.value)
}

// Scalars wraps plain values into present scalars.
func Scalars[T comparable](vs ...T) []Scalar[T] {
	out := make([]Scalar[T], len(vs))
	for i, v := range vs {
		out[i] = Of(v)
	}
	return out
}
