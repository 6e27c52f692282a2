package mapping

//go:generate go tool stringer -type=FieldKind -output=kind_string.go

// FieldKind is the semantic kind of a mapped field.
type FieldKind int

const (
	_ FieldKind = iota

	FieldPlain      // scalar attribute
	FieldEmbedded   // struct embedding Embeddable, flattened into the owner
	FieldSubEntity  // struct embedding Entity, nested under its own node
	FieldCollection // slice
	FieldMap        // string-keyed map or collection.Map

	// FieldKindTotal is a constant that represents the total number of kinds defined
	FieldKindTotal = int(iota)
)
