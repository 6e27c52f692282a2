package convert

import (
	"reflect"

	"artemis/document"
	"artemis/mapping"
)

// Handle is what field converters may call back into. It is the only way
// they recurse.
type Handle interface {
	// ToEntity converts docs into a value of type t. Pointer types yield
	// pointers.
	ToEntity(t reflect.Type, docs []document.Document) (reflect.Value, error)
	// FromEntity converts a mapped struct, or a pointer to one, into nodes.
	FromEntity(entity reflect.Value) ([]document.Document, error)
	Converters() *mapping.Converters
	// Coerce converts a raw driver value into t under the configured
	// conversion categories.
	Coerce(raw any, t reflect.Type) (reflect.Value, error)
	// MapFallback records that a declared map could not be instantiated and
	// a builtin map is used instead.
	MapFallback(field *mapping.FieldMapping, err error)
}

// FieldConverter converts the nodes of one field in both directions.
type FieldConverter interface {
	// Convert writes the field of instance, an addressable struct value. doc
	// is the first node named after the field, nil when there is none; docs
	// is the whole node list of the owner.
	Convert(instance reflect.Value, docs []document.Document, doc *document.Document,
		field *mapping.FieldMapping, h Handle) error
	// Encode returns the nodes representing the field of instance.
	Encode(instance reflect.Value, field *mapping.FieldMapping, h Handle) ([]document.Document, error)
}

var fieldConverters = [ConverterTotal]FieldConverter{
	ConverterDefault:              defaultConverter{},
	ConverterEmbedded:             embeddedConverter{},
	ConverterSubEntity:            subEntityConverter{},
	ConverterCollectionEmbeddable: collectionEmbeddableConverter{},
	ConverterMapEmbeddable:        mapEmbeddableConverter{},
}

// For returns the converter implementing kind.
func For(kind ConverterEnum) FieldConverter {
	if int(kind) < 0 || int(kind) >= ConverterTotal {
		return fieldConverters[ConverterDefault]
	}

	return fieldConverters[kind]
}

// isEmpty reports whether v holds nothing worth encoding.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	case reflect.Invalid:
		return true
	default:
		return false
	}
}

var _ Handle = (*EntityConverter)(nil)
