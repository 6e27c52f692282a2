package convert

import (
	"reflect"

	"artemis/document"
	"artemis/mapping"
)

// embeddedConverter reads an embeddable struct from the owner's own node
// list: its fields are flattened into the owner, so there is no node of its
// own to isolate.
type embeddedConverter struct{}

func (embeddedConverter) Convert(
	instance reflect.Value, docs []document.Document, _ *document.Document,
	field *mapping.FieldMapping, h Handle,
) error {
	v, err := h.ToEntity(field.Type, docs)
	if err != nil {
		return err
	}

	return field.Write(instance, v)
}

func (embeddedConverter) Encode(
	instance reflect.Value, field *mapping.FieldMapping, h Handle,
) ([]document.Document, error) {
	v := field.Read(instance)
	if isEmpty(v) {
		return nil, nil
	}

	return h.FromEntity(v)
}
