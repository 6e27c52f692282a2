package value

import (
	"fmt"
	"reflect"
)

// Value holds one raw, driver-native value as it came out of a NoSQL driver.
type Value struct {
	raw any
}

// Of wraps raw. Wrapping a Value returns it unchanged.
func Of(raw any) Value {
	if v, ok := raw.(Value); ok {
		return v
	}

	return Value{raw: raw}
}

// Get returns the raw value.
func (v Value) Get() any {
	return v.raw
}

// IsNil reports whether the raw value is nil (or a nil pointer, slice or map).
func (v Value) IsNil() bool {
	if v.raw == nil {
		return true
	}

	rv := reflect.ValueOf(v.raw)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// To coerces the raw value into the target type using every conversion category.
func (v Value) To(target reflect.Type) (any, error) {
	return Coerce(v.raw, target, CategoryAll)
}

// ToWith coerces the raw value into the target type restricted to the allowed categories.
func (v Value) ToWith(target reflect.Type, allowed CategoryEnum) (any, error) {
	return Coerce(v.raw, target, allowed)
}

func (v Value) String() string {
	return fmt.Sprint(v.raw)
}

// As coerces v into T.
func As[T any](v Value) (T, error) {
	var zero T

	res, err := CoerceValue(v.raw, reflect.TypeFor[T](), CategoryAll)
	if err != nil {
		return zero, err
	}

	out, _ := res.Interface().(T)

	return out, nil
}
