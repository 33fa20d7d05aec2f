package schema

import (
	"errors"
	"sort"
)

// Table is the static field allowlist for one record type. Payload keys not
// declared here never reach the store.
type Table[T any] struct {
	Name string
	// IdentityKey is the payload key of the natural key.
	IdentityKey string

	fields []Field[T]
	byKey  map[string]int
}

func NewTable[T any](name, identityKey string, fields ...Field[T]) *Table[T] {
	t := &Table[T]{
		Name:        name,
		IdentityKey: identityKey,
		fields:      fields,
		byKey:       make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := t.byKey[f.Key]; dup {
			panic("schema: duplicate field " + name + "." + f.Key)
		}
		t.byKey[f.Key] = i
	}
	if _, ok := t.byKey[identityKey]; !ok {
		panic("schema: identity key not declared " + name + "." + identityKey)
	}
	return t
}

func (t *Table[T]) Field(key string) (Field[T], bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Field[T]{}, false
	}
	return t.fields[i], true
}

// Keys returns the declared payload keys, sorted.
func (t *Table[T]) Keys() []string {
	keys := make([]string, 0, len(t.fields))
	for _, f := range t.fields {
		keys = append(keys, f.Key)
	}
	sort.Strings(keys)
	return keys
}

// Identity returns the natural key carried by raw, if it is a non-empty string.
func (t *Table[T]) Identity(raw map[string]any) (string, bool) {
	v, ok := raw[t.IdentityKey].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Coerce builds a record with the bulk import policy. Unconvertible values
// are stored as NULL and reported in the returned slice. ok is false when raw
// carries no declared key at all.
func (t *Table[T]) Coerce(raw map[string]any) (rec *T, fieldErrs []FieldError, ok bool) {
	rec = new(T)
	for _, f := range t.fields {
		v, present := raw[f.Key]
		if !present {
			continue
		}
		ok = true
		val, err := f.coerce(v)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Key: f.Key, Kind: f.Kind, Value: v, Err: err})
			val = nil
		}
		f.set(rec, val)
	}
	if !ok {
		return nil, nil, false
	}
	return rec, fieldErrs, true
}

// CoerceUpdates is Coerce keyed by column, without the natural key.
func (t *Table[T]) CoerceUpdates(raw map[string]any) (map[string]any, []FieldError) {
	updates := make(map[string]any)
	var fieldErrs []FieldError
	for _, f := range t.fields {
		if f.Key == t.IdentityKey {
			continue
		}
		v, present := raw[f.Key]
		if !present {
			continue
		}
		val, err := f.coerce(v)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Key: f.Key, Kind: f.Kind, Value: v, Err: err})
			val = nil
		}
		updates[f.Column] = val
	}
	return updates, fieldErrs
}

// Assign builds a record from declared keys without coercion. A value whose
// Go type does not match its column fails the whole record.
func (t *Table[T]) Assign(raw map[string]any) (*T, error) {
	rec := new(T)
	assigned := false
	for _, f := range t.fields {
		v, present := raw[f.Key]
		if !present {
			continue
		}
		val, err := f.strict(v)
		if err != nil {
			return nil, err
		}
		f.set(rec, val)
		assigned = true
	}
	if !assigned {
		return nil, ErrNoFields
	}
	return rec, nil
}

// Updates is Assign keyed by column, for partial updates. The natural key is
// fixed at creation and never appears in the result.
func (t *Table[T]) Updates(raw map[string]any) (map[string]any, error) {
	updates := make(map[string]any)
	for _, f := range t.fields {
		if f.Key == t.IdentityKey {
			continue
		}
		v, present := raw[f.Key]
		if !present {
			continue
		}
		val, err := f.strict(v)
		if err != nil {
			return nil, err
		}
		updates[f.Column] = val
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}
	return updates, nil
}

// IsFieldError reports whether err carries a FieldError.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}
