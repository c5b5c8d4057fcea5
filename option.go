package patchgen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Option is a value which may be absent. The zero value is absent.
//
// Option is the default field type of generated patch types. An absent field
// leaves the corresponding field of the target unchanged.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present option holding the value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, ok: true}
}

// None returns an absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns an option holding *p, or an absent option if p is nil.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the value is absent.
func (o Option[T]) IsNone() bool { return !o.ok }

// IsZero reports whether the value is absent. It makes the "omitzero" option of
// encoding/json omit absent options.
func (o Option[T]) IsZero() bool { return !o.ok }

// OrElse returns the value if present, otherwise fallback.
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Ptr returns a pointer to a copy of the value, or nil if absent.
func (o Option[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// ApplyTo sets *target to the value if present. Otherwise, it leaves *target
// unchanged.
func (o Option[T]) ApplyTo(target *T) {
	if o.ok {
		*target = o.value
	}
}

// Merge returns rhs if present, otherwise o.
func (o Option[T]) Merge(rhs Option[T]) Option[T] {
	if rhs.ok {
		return rhs
	}
	return o
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MarshalJSON implements json.Marshaler. An absent option is encoded as null.
//
// A present value whose encoding is null, like Some[*T](nil) or a nil map, is
// indistinguishable from an absent option in JSON. It is decoded back as an
// absent option.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler. null is decoded as an absent
// option. Other values are decoded as a present option.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
