package convert

import "artemis/mapping"

// Select picks the converter for field. The order of the checks matters: a
// field may satisfy more than one of them.
func Select(field *mapping.FieldMapping) ConverterEnum {
	return SelectKind(field.Kind, field.ElemEmbeddable, field.ValueEmbeddable)
}

// SelectKind is Select over the bare field properties.
func SelectKind(kind mapping.FieldKind, elemEmbeddable, valueEmbeddable bool) ConverterEnum {
	switch {
	case kind == mapping.FieldEmbedded:
		return ConverterEmbedded
	case kind == mapping.FieldSubEntity:
		return ConverterSubEntity
	case kind == mapping.FieldCollection && elemEmbeddable:
		return ConverterCollectionEmbeddable
	case kind == mapping.FieldMap && valueEmbeddable:
		return ConverterMapEmbeddable
	default:
		return ConverterDefault
	}
}
