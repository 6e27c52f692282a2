package convert

import (
	"fmt"
	"reflect"

	"artemis/document"
	"artemis/mapping"
	"artemis/value"
)

// defaultConverter coerces a single raw value into the declared field type,
// through the field's attribute converter when it has one.
type defaultConverter struct{}

func (defaultConverter) Convert(
	instance reflect.Value, _ []document.Document, doc *document.Document,
	field *mapping.FieldMapping, h Handle,
) error {
	if doc == nil {
		return fmt.Errorf("%w: %q", ErrMissingRequiredNode, field.Name)
	}

	raw := doc.Value.Get()

	if field.Converter != "" {
		conv, err := lookupConverter(field, h)
		if err != nil {
			return err
		}

		attribute, err := conv.ToEntityAttribute(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAttributeConverter, field.Converter, err)
		}

		raw = value.Of(attribute)
	}

	v, err := coerceField(raw, field, h)
	if err != nil {
		return err
	}

	return field.Write(instance, v)
}

func (defaultConverter) Encode(
	instance reflect.Value, field *mapping.FieldMapping, h Handle,
) ([]document.Document, error) {
	v := field.Read(instance)

	if field.Converter != "" {
		conv, err := lookupConverter(field, h)
		if err != nil {
			return nil, err
		}

		column, err := conv.ToDatabaseColumn(v.Interface())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAttributeConverter, field.Converter, err)
		}

		return []document.Document{document.Of(field.Name, column)}, nil
	}

	if isEmpty(v) {
		return nil, nil
	}

	if field.Kind == mapping.FieldMap && v.Kind() != reflect.Map {
		return []document.Document{document.Of(field.Name, containerEntries(v))}, nil
	}

	return []document.Document{document.Of(field.Name, v.Interface())}, nil
}

func lookupConverter(field *mapping.FieldMapping, h Handle) (mapping.AttributeConverter, error) {
	conv, ok := h.Converters().Lookup(field.Converter)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", ErrAttributeConverter, ErrUnknownAttributeConverter, field.Converter)
	}

	return conv, nil
}

// coerceField converts raw into the declared type. Nodes nested under a
// plain field are read as builtin maps, and declared maps are filled entry by
// entry so collection.Map fields work as well as builtin maps.
func coerceField(raw any, field *mapping.FieldMapping, h Handle) (reflect.Value, error) {
	switch document.ShapeOf(raw) {
	case document.ShapeDocument, document.ShapeList, document.ShapeListOfLists:
		raw = document.ToPlain(raw)
	}

	if field.Kind != mapping.FieldMap || value.Of(raw).IsNil() {
		return h.Coerce(raw, field.Type)
	}

	entries, err := document.AsMap(raw)
	if err != nil {
		return reflect.Value{}, err
	}

	m, err := field.NewMap()
	if err != nil {
		return reflect.Value{}, err
	}

	keys := sortedKeys(entries)

	for _, key := range keys {
		v, err := h.Coerce(entries[key], field.ElemType)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("entry %q: %w", key, err)
		}

		if err := m.Put(key, v); err != nil {
			return reflect.Value{}, fmt.Errorf("entry %q: %w", key, err)
		}
	}

	return m.Value(), nil
}
