package keyvalue

import (
	"fmt"
	"reflect"

	"artemis/value"
)

// Entity is one key/value pair as a key-value database holds it.
type Entity struct {
	key   any
	value any
}

// NewEntity pairs key with v. Neither may be nil.
func NewEntity(key, v any) (Entity, error) {
	if value.Of(key).IsNil() {
		return Entity{}, fmt.Errorf("%w: key is required", ErrInvalidEntity)
	}

	if value.Of(v).IsNil() {
		return Entity{}, fmt.Errorf("%w: value is required", ErrInvalidEntity)
	}

	return Entity{key: key, value: v}, nil
}

func (e Entity) Key() any {
	return e.key
}

func (e Entity) Value() any {
	return e.value
}

// Equal reports whether both entities hold equal keys and values.
func (e Entity) Equal(other Entity) bool {
	return reflect.DeepEqual(e.key, other.key) && reflect.DeepEqual(e.value, other.value)
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity{key=%v, value=%v}", e.key, e.value)
}

// KeyAs returns the key of e coerced into T.
func KeyAs[T any](e Entity) (T, error) {
	return value.As[T](value.Of(e.key))
}

// ValueAs returns the value of e coerced into T.
func ValueAs[T any](e Entity) (T, error) {
	return value.As[T](value.Of(e.value))
}
