package schema

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the storage type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	// KindTimestamp is a timezone-naive datetime column stored as UTC wall time.
	KindTimestamp
	// KindTimestampTZ is a timezone-aware datetime column.
	KindTimestampTZ
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	case KindTimestampTZ:
		return "timestamptz"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) isTime() bool {
	return k == KindTimestamp || k == KindTimestampTZ || k == KindDate
}

var (
	ErrTypeMismatch = errors.New("value type does not match column type")
	ErrUnparseable  = errors.New("value cannot be converted")
	ErrNoFields     = errors.New("no known fields")
)

// FieldError describes one rejected or unconvertible payload value.
type FieldError struct {
	Key   string
	Kind  Kind
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (%s) = %v: %v", e.Key, e.Kind, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Field binds a payload key to a column and a setter on T. Values handed to
// set are already canonical: nil, string, int64, float64, bool or time.Time.
type Field[T any] struct {
	Key    string
	Column string
	Kind   Kind
	set    func(*T, any)
}

func bind[T any, V any](key, column string, kind Kind, ptr func(*T) **V) Field[T] {
	return Field[T]{
		Key:    key,
		Column: column,
		Kind:   kind,
		set: func(rec *T, v any) {
			p := ptr(rec)
			if v == nil {
				*p = nil
				return
			}
			val := v.(V)
			*p = &val
		},
	}
}

func Text[T any](key, column string, ptr func(*T) **string) Field[T] {
	return bind(key, column, KindText, ptr)
}

func Int[T any](key, column string, ptr func(*T) **int64) Field[T] {
	return bind(key, column, KindInt, ptr)
}

func Float[T any](key, column string, ptr func(*T) **float64) Field[T] {
	return bind(key, column, KindFloat, ptr)
}

func Bool[T any](key, column string, ptr func(*T) **bool) Field[T] {
	return bind(key, column, KindBool, ptr)
}

// Timestamp declares a datetime column; aware selects timestamptz semantics.
func Timestamp[T any](key, column string, aware bool, ptr func(*T) **time.Time) Field[T] {
	kind := KindTimestamp
	if aware {
		kind = KindTimestampTZ
	}
	return bind(key, column, kind, ptr)
}

func Date[T any](key, column string, ptr func(*T) **time.Time) Field[T] {
	return bind(key, column, KindDate, ptr)
}

// strict accepts a value only when its Go type already matches the column.
func (f Field[T]) strict(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch f.Kind {
	case KindText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindTimestamp, KindTimestampTZ, KindDate:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	}
	return nil, &FieldError{Key: f.Key, Kind: f.Kind, Value: v, Err: ErrTypeMismatch}
}
