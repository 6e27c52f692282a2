package mapping

import "reflect"

// Entity marks a struct as an independently mapped entity. The optional
// entity tag on the embedded marker names the entity.
type Entity struct{}

// Embeddable marks a struct whose fields are stored within its owner.
type Embeddable struct{}

var (
	entityType     = reflect.TypeFor[Entity]()
	embeddableType = reflect.TypeFor[Embeddable]()
)

// IsEntity reports whether t, or the struct t points to, embeds Entity.
func IsEntity(t reflect.Type) bool {
	_, ok := marker(t, entityType)
	return ok
}

// IsEmbeddable reports whether t, or the struct t points to, embeds Embeddable.
func IsEmbeddable(t reflect.Type) bool {
	_, ok := marker(t, embeddableType)
	return ok
}

func marker(t reflect.Type, markerType reflect.Type) (reflect.StructField, bool) {
	t = indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == markerType {
			return f, true
		}
	}

	return reflect.StructField{}, false
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}
