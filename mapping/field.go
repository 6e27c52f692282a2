package mapping

import (
	"fmt"
	"reflect"

	"artemis/collection"
)

// FieldMapping describes how one struct field maps to and from document
// nodes. It is immutable once compiled.
type FieldMapping struct {
	Name   string // document name
	GoName string
	Kind   FieldKind
	Type   reflect.Type // declared type

	// ElemType is the collection element type or the map value type.
	ElemType        reflect.Type
	ElemEmbeddable  bool // element embeds Entity or Embeddable
	ValueEmbeddable bool // map value embeds Embeddable

	Converter   string // attribute converter name, empty when none
	ID          bool
	MapStrategy collection.StrategyEnum

	read   func(instance reflect.Value) reflect.Value
	write  func(instance reflect.Value, v reflect.Value) error
	newMap func() (MapBuilder, error)
}

// Read returns the field of instance, which must be an addressable struct
// value of the owning type.
func (f *FieldMapping) Read(instance reflect.Value) reflect.Value {
	return f.read(instance)
}

// Write stores v into the field of instance. An invalid v resets the field.
func (f *FieldMapping) Write(instance reflect.Value, v reflect.Value) error {
	return f.write(instance, v)
}

// NewCollection starts an empty collection for a FieldCollection field.
func (f *FieldMapping) NewCollection() *CollectionBuilder {
	return &CollectionBuilder{slice: reflect.MakeSlice(f.Type, 0, 0)}
}

// NewMap starts an empty map matching the declared type of a FieldMap field.
// Errors wrap ErrMapInstantiation.
func (f *FieldMapping) NewMap() (MapBuilder, error) {
	if f.newMap == nil {
		return nil, fmt.Errorf("%w: field %s is %s", ErrMapInstantiation, f.GoName, f.Kind)
	}

	return f.newMap()
}

// FallbackMap starts a builtin map[string]ElemType, used when NewMap fails.
func (f *FieldMapping) FallbackMap() MapBuilder {
	return newGoMap(reflect.MapOf(reflect.TypeFor[string](), f.ElemType))
}

func (f *FieldMapping) String() string {
	return fmt.Sprintf("%s(%s %s)", f.GoName, f.Name, f.Kind)
}

func accessors(index []int, declared reflect.Type) (
	func(reflect.Value) reflect.Value,
	func(reflect.Value, reflect.Value) error,
) {
	read := func(instance reflect.Value) reflect.Value {
		return instance.FieldByIndex(index)
	}

	write := func(instance reflect.Value, v reflect.Value) error {
		field := instance.FieldByIndex(index)
		if !v.IsValid() {
			field.Set(reflect.Zero(declared))
			return nil
		}

		if !v.Type().AssignableTo(declared) {
			return fmt.Errorf("%w: %s to %s", ErrNotAssignable, v.Type(), declared)
		}

		field.Set(v)
		return nil
	}

	return read, write
}

// CollectionBuilder accumulates collection elements.
type CollectionBuilder struct {
	slice reflect.Value
}

// Add appends v. v must be assignable to the element type.
func (b *CollectionBuilder) Add(v reflect.Value) error {
	elem := b.slice.Type().Elem()
	if !v.IsValid() {
		v = reflect.Zero(elem)
	}

	if !v.Type().AssignableTo(elem) {
		return fmt.Errorf("%w: %s to %s", ErrNotAssignable, v.Type(), elem)
	}

	b.slice = reflect.Append(b.slice, v)
	return nil
}

func (b *CollectionBuilder) Len() int {
	return b.slice.Len()
}

func (b *CollectionBuilder) Value() reflect.Value {
	return b.slice
}
