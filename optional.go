package recall

import (
	"bytes"
	"encoding/json"
)

type optionalState uint8

const (
	stateAbsent optionalState = iota
	stateNull
	statePresent
)

// Optional models the three states a JSON field can be in: absent from the
// object, present as an explicit null, or present with a value. Omission and
// null round-trip independently: a field that was never sent stays omitted
// on re-serialization instead of degrading to null.
//
// The zero value is the absent state. Struct fields of this type must carry
// the `omitzero` JSON option so absent fields are dropped from encoded
// objects.
type Optional[T any] struct {
	value T
	state optionalState
}

// Some returns an Optional holding the given value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, state: statePresent}
}

// Null returns an Optional representing an explicit JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{state: stateNull}
}

// Absent returns an Optional representing an omitted field. Identical to the
// zero value; provided for symmetry with Some and Null.
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// IsAbsent reports whether the field was omitted.
func (o Optional[T]) IsAbsent() bool { return o.state == stateAbsent }

// IsNull reports whether the field was an explicit null.
func (o Optional[T]) IsNull() bool { return o.state == stateNull }

// IsPresent reports whether the field holds a value.
func (o Optional[T]) IsPresent() bool { return o.state == statePresent }

// Value returns the held value and whether one is present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.state == statePresent
}

// Or returns the held value, or def when the field is absent or null.
func (o Optional[T]) Or(def T) T {
	if o.state == statePresent {
		return o.value
	}
	return def
}

// IsZero reports the absent state so encoding/json's omitzero option drops
// the field entirely instead of writing null.
func (o Optional[T]) IsZero() bool { return o.state == stateAbsent }

// MarshalJSON encodes null for the null state and the value otherwise.
// The absent state never reaches here when the struct field is tagged
// omitzero; if it does, null is written.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.state != statePresent {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON maps JSON null to the null state and anything else to a
// present value. Absence is handled by encoding/json never invoking this.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{state: stateNull}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Optional[T]{value: v, state: statePresent}
	return nil
}
