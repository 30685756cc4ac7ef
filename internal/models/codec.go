package models

import (
	"fmt"
	"strconv"
)

// ScalarCodec converts scalar values to and from their text form. Parse
// must accept whatever Format produces.
type ScalarCodec[T comparable] interface {
	Format(v T) (string, error)
	Parse(s string) (T, error)
}

// StringCodec is the identity codec for string scalars.
type StringCodec struct{}

func (StringCodec) Format(v string) (string, error) { return v, nil }
func (StringCodec) Parse(s string) (string, error)  { return s, nil }

// Int64Codec handles base-10 integers.
type Int64Codec struct{}

func (Int64Codec) Format(v int64) (string, error) { return strconv.FormatInt(v, 10), nil }

func (Int64Codec) Parse(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 scalar %q: %w", s, err)
	}
	return v, nil
}

// Float64Codec uses the shortest representation that round-trips.
type Float64Codec struct{}

func (Float64Codec) Format(v float64) (string, error) {
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

func (Float64Codec) Parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float64 scalar %q: %w", s, err)
	}
	return v, nil
}

// BoolCodec handles true/false.
type BoolCodec struct{}

func (BoolCodec) Format(v bool) (string, error) { return strconv.FormatBool(v), nil }

func (BoolCodec) Parse(s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid bool scalar %q: %w", s, err)
	}
	return v, nil
}

// FuncCodec adapts a pair of functions to ScalarCodec.
type FuncCodec[T comparable] struct {
	FormatFunc func(T) (string, error)
	ParseFunc  func(string) (T, error)
}

func (c FuncCodec[T]) Format(v T) (string, error) { return c.FormatFunc(v) }
func (c FuncCodec[T]) Parse(s string) (T, error)  { return c.ParseFunc(s) }
