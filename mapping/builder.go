package mapping

import (
	"fmt"
	"reflect"

	"artemis/collection"
)

// MapBuilder accumulates map entries before the map is written to its field.
type MapBuilder interface {
	// Put stores v under key. v must be assignable to the value type; an
	// invalid v stores the zero value.
	Put(key string, v reflect.Value) error
	Len() int
	Value() reflect.Value
}

type goMap struct {
	m reflect.Value
}

func newGoMap(t reflect.Type) *goMap {
	return &goMap{m: reflect.MakeMap(t)}
}

func (b *goMap) Put(key string, v reflect.Value) error {
	elem := b.m.Type().Elem()
	if !v.IsValid() {
		v = reflect.Zero(elem)
	}

	if !v.Type().AssignableTo(elem) {
		return fmt.Errorf("%w: %s to %s", ErrNotAssignable, v.Type(), elem)
	}

	b.m.SetMapIndex(reflect.ValueOf(key).Convert(b.m.Type().Key()), v)
	return nil
}

func (b *goMap) Len() int {
	return b.m.Len()
}

func (b *goMap) Value() reflect.Value {
	return b.m
}

// containerMap drives a collection.Map implementation through reflection.
type containerMap struct {
	container reflect.Value
	elem      reflect.Type
	put       reflect.Value
	length    reflect.Value
}

func newContainerMap(container reflect.Value, elem reflect.Type) *containerMap {
	return &containerMap{
		container: container,
		elem:      elem,
		put:       container.MethodByName("Put"),
		length:    container.MethodByName("Len"),
	}
}

func (b *containerMap) Put(key string, v reflect.Value) error {
	if !v.IsValid() {
		v = reflect.Zero(b.elem)
	}

	if !v.Type().AssignableTo(b.elem) {
		return fmt.Errorf("%w: %s to %s", ErrNotAssignable, v.Type(), b.elem)
	}

	b.put.Call([]reflect.Value{reflect.ValueOf(key), v})
	return nil
}

func (b *containerMap) Len() int {
	return int(b.length.Call(nil)[0].Int())
}

func (b *containerMap) Value() reflect.Value {
	return b.container
}

// mapFactory returns the constructor for a FieldMap field of declared type t
// with value type elem.
func mapFactory(t, elem reflect.Type) (func() (MapBuilder, error), collection.StrategyEnum) {
	switch {
	case t.Kind() == reflect.Map:
		return func() (MapBuilder, error) {
			m := newGoMap(t)

			// named map types may ask for initialization through a pointer receiver
			ptr := reflect.New(t)
			ptr.Elem().Set(m.m)
			if initializer, ok := ptr.Interface().(collection.Initializer); ok {
				if err := initializer.Init(); err != nil {
					return nil, fmt.Errorf("%w: %s: %w", ErrMapInstantiation, t, err)
				}
				m.m = ptr.Elem()
			}

			return m, nil
		}, collection.StrategyGeneral

	case t.Kind() == reflect.Interface:
		strategy := collection.StrategyOf(t)

		return func() (MapBuilder, error) {
			container, ok := collection.New(elem, strategy)
			if !ok {
				return nil, fmt.Errorf("%w: %s: value type %s is not registered with collection.Register",
					ErrMapInstantiation, t, elem)
			}

			rv := reflect.ValueOf(container)
			if !rv.Type().Implements(t) {
				return nil, fmt.Errorf("%w: %s does not implement %s", ErrMapInstantiation, rv.Type(), t)
			}

			return newContainerMap(rv, elem), nil
		}, strategy

	default:
		return func() (MapBuilder, error) {
			if t.Kind() != reflect.Ptr {
				return nil, fmt.Errorf("%w: %s is neither a map, an interface nor a pointer", ErrMapInstantiation, t)
			}

			container := reflect.New(t.Elem())
			if initializer, ok := container.Interface().(collection.Initializer); ok {
				if err := initializer.Init(); err != nil {
					return nil, fmt.Errorf("%w: %s: %w", ErrMapInstantiation, t, err)
				}
			}

			return newContainerMap(container, elem), nil
		}, collection.StrategyOf(t)
	}
}
