package convert

import (
	"fmt"
	"reflect"

	"artemis/document"
	"artemis/mapping"
)

// collectionEmbeddableConverter reads a slice of mapped structs, one node
// list per element. Without a node the field keeps its current value.
type collectionEmbeddableConverter struct{}

func (collectionEmbeddableConverter) Convert(
	instance reflect.Value, _ []document.Document, doc *document.Document,
	field *mapping.FieldMapping, h Handle,
) error {
	if doc == nil {
		return nil
	}

	lists, err := document.AsLists(doc.Value)
	if err != nil {
		return err
	}

	coll := field.NewCollection()
	for i, inner := range lists {
		elem, err := h.ToEntity(field.ElemType, inner)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}

		if err := coll.Add(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	return field.Write(instance, coll.Value())
}

func (collectionEmbeddableConverter) Encode(
	instance reflect.Value, field *mapping.FieldMapping, h Handle,
) ([]document.Document, error) {
	v := field.Read(instance)
	if isEmpty(v) {
		return nil, nil
	}

	lists := make([][]document.Document, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		inner, err := h.FromEntity(v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		lists = append(lists, inner)
	}

	return []document.Document{document.Of(field.Name, lists)}, nil
}
