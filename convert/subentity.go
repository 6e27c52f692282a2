package convert

import (
	"reflect"

	"artemis/document"
	"artemis/mapping"
)

// subEntityConverter reads a nested entity. Drivers store it either as a
// node list or as a flat key/value mapping; without a node of its own the
// owner's whole node list is used.
type subEntityConverter struct{}

func (subEntityConverter) Convert(
	instance reflect.Value, docs []document.Document, doc *document.Document,
	field *mapping.FieldMapping, h Handle,
) error {
	nested := docs

	if doc != nil {
		raw := doc.Value.Get()

		var err error
		if document.ShapeOf(raw) == document.ShapeMap {
			nested, err = mapToDocuments(raw)
		} else {
			nested, err = document.AsList(raw)
		}

		if err != nil {
			return err
		}
	}

	v, err := h.ToEntity(field.Type, nested)
	if err != nil {
		return err
	}

	return field.Write(instance, v)
}

func (subEntityConverter) Encode(
	instance reflect.Value, field *mapping.FieldMapping, h Handle,
) ([]document.Document, error) {
	v := field.Read(instance)
	if isEmpty(v) {
		return nil, nil
	}

	nested, err := h.FromEntity(v)
	if err != nil {
		return nil, err
	}

	return []document.Document{document.Of(field.Name, nested)}, nil
}

// mapToDocuments turns every entry into a node, in key order.
func mapToDocuments(raw any) ([]document.Document, error) {
	entries, err := document.AsMap(raw)
	if err != nil {
		return nil, err
	}

	keys := sortedKeys(entries)

	docs := make([]document.Document, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, document.Of(key, entries[key]))
	}

	return docs, nil
}
