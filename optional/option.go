// Package optional provides Option, an explicit "value or no value" type.
//
// An Option is either Some(v) or None. The zero Option is None, so a freshly
// declared variable starts out absent:
//
//	var name optional.Option[string] // None
//	name.OrElse("anonymous")         // "anonymous"
//	name.MustGet("greeting")         // panics with *AbsentValueError
//
// MustGet is the only operation that requires a value. Every other accessor
// is total over both variants.
package optional

import (
	"errors"
	"fmt"
)

// ErrAbsentValue is matched by every *AbsentValueError via errors.Is.
var ErrAbsentValue = errors.New("absent value dereference")

// AbsentValueError reports a required-value operation on a None option.
type AbsentValueError struct {
	Op   string // operation that needed the value, e.g. "uppercase conversion"
	Type string // element type of the option, e.g. "string"
}

func (e *AbsentValueError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: absent %s", ErrAbsentValue, e.Type)
	}
	return fmt.Sprintf("%s: %s on an absent %s", ErrAbsentValue, e.Op, e.Type)
}

func (e *AbsentValueError) Is(target error) bool {
	return target == ErrAbsentValue
}

// Option holds a value of type T or nothing.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns the absent Option. It is equal to the zero value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr converts a nilable pointer into an Option. A nil pointer is None.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Option[T]) IsSome() bool { return o.ok }
func (o Option[T]) IsNone() bool { return !o.ok }

// Get returns the held value and true, or the zero T and false.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// MustGet returns the held value. On None it panics with an
// *AbsentValueError naming op; the panic is not meant to be recovered.
func (o Option[T]) MustGet(op string) T {
	if !o.ok {
		panic(&AbsentValueError{Op: op, Type: typeName[T]()})
	}
	return o.value
}

// OrElse returns the held value, or fallback on None.
func (o Option[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}

// Ptr returns a pointer to a copy of the held value, or nil on None.
func (o Option[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// String formats the held value with %v, or "null" on None.
func (o Option[T]) String() string {
	if !o.ok {
		return "null"
	}
	return fmt.Sprintf("%v", o.value)
}

// Map applies f to the held value. None maps to None without calling f.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(f(o.value))
}

func typeName[T any]() string {
	var zero T
	if s := fmt.Sprintf("%T", zero); s != "<nil>" {
		return s
	}
	// interface element types format as <nil>
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
