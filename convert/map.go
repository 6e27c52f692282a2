package convert

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"artemis/document"
	"artemis/mapping"
)

// mapEmbeddableConverter reads a map whose values are embeddable structs.
// Without a node the field keeps its current value.
type mapEmbeddableConverter struct{}

func (mapEmbeddableConverter) Convert(
	instance reflect.Value, _ []document.Document, doc *document.Document,
	field *mapping.FieldMapping, h Handle,
) error {
	if doc == nil {
		return nil
	}

	m, err := field.NewMap()
	if err != nil {
		if !errors.Is(err, mapping.ErrMapInstantiation) {
			return err
		}

		h.MapFallback(field, err)
		m = field.FallbackMap()
	}

	raw := doc.Value.Get()
	if isEmptySequence(raw) {
		return field.Write(instance, m.Value())
	}

	switch document.ShapeOf(raw) {
	case document.ShapeDocument:
		nested, err := document.AsDocument(raw)
		if err != nil {
			return err
		}

		if err := putEntry(m, nested, field, h); err != nil {
			return err
		}

	case document.ShapeList:
		nested, err := document.AsList(raw)
		if err != nil {
			return err
		}

		for _, entry := range nested {
			if err := putEntry(m, entry, field, h); err != nil {
				return err
			}
		}

	case document.ShapeMap:
		// driver-native entries go in as they are, without conversion
		entries, err := document.AsMap(raw)
		if err != nil {
			return err
		}

		for _, key := range sortedKeys(entries) {
			entry := entries[key]
			if err := m.Put(key, reflect.ValueOf(entry)); err != nil {
				return fmt.Errorf("%w: entry %q: %w", document.ErrUnsupportedShape, key, err)
			}
		}

	default:
		return fmt.Errorf("%w: %T cannot fill map field %s", document.ErrUnsupportedShape, raw, field.GoName)
	}

	return field.Write(instance, m.Value())
}

// isEmptySequence reports whether raw is null or a sequence without
// elements, both of which fill the map with nothing.
func isEmptySequence(raw any) bool {
	if raw == nil {
		return true
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0 && rv.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}

// putEntry converts one nested node into a map entry keyed by its name.
func putEntry(m mapping.MapBuilder, nested document.Document, field *mapping.FieldMapping, h Handle) error {
	list, err := document.AsList(nested.Value)
	if err != nil {
		return fmt.Errorf("entry %q: %w", nested.Name, err)
	}

	v, err := h.ToEntity(field.ElemType, list)
	if err != nil {
		return fmt.Errorf("entry %q: %w", nested.Name, err)
	}

	if err := m.Put(nested.Name, v); err != nil {
		return fmt.Errorf("entry %q: %w", nested.Name, err)
	}

	return nil
}

func (mapEmbeddableConverter) Encode(
	instance reflect.Value, field *mapping.FieldMapping, h Handle,
) ([]document.Document, error) {
	v := field.Read(instance)
	if isEmpty(v) {
		return nil, nil
	}

	var entries map[string]reflect.Value
	if v.Kind() == reflect.Map {
		entries = make(map[string]reflect.Value, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			entries[iter.Key().String()] = iter.Value()
		}
	} else {
		entries = rangeContainer(v)
	}

	nested := make([]document.Document, 0, len(entries))
	for _, key := range sortedKeys(entries) {
		docs, err := h.FromEntity(entries[key])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}

		nested = append(nested, document.Of(key, docs))
	}

	return []document.Document{document.Of(field.Name, nested)}, nil
}

// rangeContainer collects the entries of a collection.Map implementation
// through its Range method.
func rangeContainer(container reflect.Value) map[string]reflect.Value {
	entries := make(map[string]reflect.Value)

	rangeFn := container.MethodByName("Range")
	if !rangeFn.IsValid() {
		return entries
	}

	visit := reflect.MakeFunc(rangeFn.Type().In(0), func(args []reflect.Value) []reflect.Value {
		entries[args[0].String()] = args[1]
		return []reflect.Value{reflect.ValueOf(true)}
	})
	rangeFn.Call([]reflect.Value{visit})

	return entries
}

// containerEntries is rangeContainer with plain values.
func containerEntries(container reflect.Value) map[string]any {
	entries := rangeContainer(container)

	out := make(map[string]any, len(entries))
	for key, v := range entries {
		out[key] = v.Interface()
	}

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}
