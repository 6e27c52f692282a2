package document

import (
	"errors"
	"fmt"
	"reflect"

	"artemis/value"
)

//go:generate go tool stringer -type=ShapeEnum -output=shape_string.go

// ShapeEnum names the runtime form of a node value.
type ShapeEnum int

const (
	_ ShapeEnum = iota

	ShapeScalar
	ShapeDocument
	ShapeList
	ShapeListOfLists
	ShapeMap

	// ShapeTotal is a constant that represents the total number of shapes defined
	ShapeTotal = int(iota)
)

var ErrUnsupportedShape = errors.New("unsupported node shape")

// ShapeOf classifies raw. Untyped slices are classified by their elements: a
// slice holding only nodes is a list, a slice holding only lists is a list of
// lists.
func ShapeOf(raw any) ShapeEnum {
	raw = unwrap(raw)

	switch v := raw.(type) {
	case Document, *Document:
		return ShapeDocument
	case []Document:
		return ShapeList
	case [][]Document:
		return ShapeListOfLists
	case map[string]any:
		return ShapeMap
	case nil:
		return ShapeScalar
	case []byte:
		return ShapeScalar
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Map:
			if rv.Type().Key().Kind() == reflect.String {
				return ShapeMap
			}
		case reflect.Slice, reflect.Array:
			return sliceShape(rv)
		}

		return ShapeScalar
	}
}

func sliceShape(rv reflect.Value) ShapeEnum {
	if rv.Len() == 0 || rv.Type().Elem().Kind() != reflect.Interface {
		return ShapeScalar
	}

	first := ShapeOf(rv.Index(0).Interface())
	if first != ShapeDocument && first != ShapeList {
		return ShapeScalar
	}

	for i := 1; i < rv.Len(); i++ {
		if ShapeOf(rv.Index(i).Interface()) != first {
			return ShapeScalar
		}
	}

	if first == ShapeDocument {
		return ShapeList
	}

	return ShapeListOfLists
}

// AsList interprets raw as an ordered node list. A nil value is an empty list.
func AsList(raw any) ([]Document, error) {
	raw = unwrap(raw)

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []Document:
		return v, nil
	}

	rv := reflect.ValueOf(raw)
	if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Type().Elem().Kind() != reflect.Interface {
		return nil, shapeError(raw, ShapeList)
	}

	out := make([]Document, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		switch doc := unwrap(rv.Index(i).Interface()).(type) {
		case Document:
			out = append(out, doc)
		case *Document:
			out = append(out, *doc)
		default:
			return nil, fmt.Errorf("element %d: %w", i, shapeError(doc, ShapeDocument))
		}
	}

	return out, nil
}

// AsLists interprets raw as a sequence of node lists, one list per element.
func AsLists(raw any) ([][]Document, error) {
	raw = unwrap(raw)

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case [][]Document:
		return v, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, shapeError(raw, ShapeListOfLists)
	}

	out := make([][]Document, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		inner, err := AsList(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out = append(out, inner)
	}

	return out, nil
}

// AsMap interprets raw as a string-keyed mapping. Typed string-keyed maps are
// copied into a map[string]any.
func AsMap(raw any) (map[string]any, error) {
	raw = unwrap(raw)

	if m, ok := raw.(map[string]any); ok {
		return m, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, shapeError(raw, ShapeMap)
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, nil
}

// AsDocument interprets raw as a single nested node.
func AsDocument(raw any) (Document, error) {
	switch v := unwrap(raw).(type) {
	case Document:
		return v, nil
	case *Document:
		if v != nil {
			return *v, nil
		}
	}

	return Document{}, shapeError(raw, ShapeDocument)
}

func unwrap(raw any) any {
	if v, ok := raw.(value.Value); ok {
		return v.Get()
	}

	return raw
}

func shapeError(raw any, want ShapeEnum) error {
	return fmt.Errorf("%w: %T is not %s", ErrUnsupportedShape, unwrap(raw), want)
}

// ToPlain replaces nodes in raw by builtin containers: a node list becomes a
// map[string]any (first node wins on duplicate names), a single node a
// one-entry map and a list of lists a []any of maps.
func ToPlain(raw any) any {
	switch v := unwrap(raw).(type) {
	case Document:
		return map[string]any{v.Name: ToPlain(v.Value)}
	case *Document:
		if v == nil {
			return nil
		}
		return ToPlain(*v)
	case []Document:
		out := make(map[string]any, len(v))
		for _, doc := range v {
			if _, exists := out[doc.Name]; !exists {
				out[doc.Name] = ToPlain(doc.Value)
			}
		}
		return out
	case [][]Document:
		out := make([]any, 0, len(v))
		for _, inner := range v {
			out = append(out, ToPlain(inner))
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, ToPlain(elem))
		}
		return out
	default:
		return v
	}
}
