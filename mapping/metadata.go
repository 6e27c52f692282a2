package mapping

import (
	"fmt"
	"reflect"

	"artemis/collection"
)

// EntityMetadata is the compiled description of one mapped struct type.
type EntityMetadata struct {
	Type       reflect.Type // struct type
	Name       string
	Embeddable bool
	Fields     []*FieldMapping // declaration order

	byName map[string]*FieldMapping
	id     *FieldMapping
}

// Field returns the field mapped to the document name. Embedded fields are
// not found here since their columns belong to the owner.
func (m *EntityMetadata) Field(name string) (*FieldMapping, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// ID returns the field tagged as identifier.
func (m *EntityMetadata) ID() (*FieldMapping, bool) {
	return m.id, m.id != nil
}

// New allocates a zero instance and returns the addressable struct value.
func (m *EntityMetadata) New() reflect.Value {
	return reflect.New(m.Type).Elem()
}

var bytesType = reflect.TypeFor[[]byte]()

func compile(t reflect.Type, tagKey string) (*EntityMetadata, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrNotMappable, t)
	}

	meta := &EntityMetadata{
		Type:   t,
		Name:   t.Name(),
		byName: make(map[string]*FieldMapping),
	}

	if f, ok := marker(t, entityType); ok {
		if name := f.Tag.Get(EntityTag); name != "" {
			meta.Name = name
		}
	} else if _, ok := marker(t, embeddableType); ok {
		meta.Embeddable = true
	} else {
		return nil, fmt.Errorf("%w: %s embeds neither mapping.Entity nor mapping.Embeddable", ErrNotMappable, t)
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		raw, tagged := sf.Tag.Lookup(tagKey)
		if !tagged {
			continue
		}

		if !sf.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s is tagged but not exported", ErrNotMappable, t, sf.Name)
		}

		tag, err := ParseColumnTag(raw)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, sf.Name, err)
		}

		if tag.Skip {
			continue
		}

		field := newField(sf, tag)

		// a declared map interface has no builtin fallback
		if field.Kind == FieldMap && field.Type.Kind() == reflect.Interface && !collection.IsRegistered(field.ElemType) {
			return nil, fmt.Errorf("%w: %s.%s: call collection.Register[%s]() before mapping %s",
				ErrNotMappable, t, sf.Name, field.ElemType, field.Type)
		}

		if field.Kind != FieldEmbedded {
			if prev, dup := meta.byName[field.Name]; dup {
				return nil, fmt.Errorf("%w: %s: column %q is used by %s and %s",
					ErrNotMappable, t, field.Name, prev.GoName, field.GoName)
			}
			meta.byName[field.Name] = field
		}

		if field.ID {
			if meta.id != nil {
				return nil, fmt.Errorf("%w: %s has more than one id field", ErrNotMappable, t)
			}
			meta.id = field
		}

		meta.Fields = append(meta.Fields, field)
	}

	return meta, nil
}

func newField(sf reflect.StructField, tag ColumnTag) *FieldMapping {
	field := &FieldMapping{
		Name:      tag.Name,
		GoName:    sf.Name,
		Type:      sf.Type,
		Converter: tag.Converter,
		ID:        tag.ID,
	}

	if field.Name == "" {
		field.Name = sf.Name
	}

	field.read, field.write = accessors(sf.Index, sf.Type)
	classify(field)

	return field
}

// classify fills the kind and the element information of field.
func classify(field *FieldMapping) {
	t := field.Type

	// an attribute converter owns the whole value
	if field.Converter != "" {
		field.Kind = FieldPlain
		return
	}

	switch {
	case IsEmbeddable(t):
		field.Kind = FieldEmbedded
		return
	case IsEntity(t):
		field.Kind = FieldSubEntity
		return
	}

	switch t.Kind() {
	case reflect.Slice:
		if t == bytesType || t.Elem().Kind() == reflect.Uint8 {
			break
		}

		field.Kind = FieldCollection
		field.ElemType = t.Elem()
		field.ElemEmbeddable = IsEmbeddable(t.Elem()) || IsEntity(t.Elem())
		return

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			break
		}

		setMap(field, t.Elem())
		return

	case reflect.Interface, reflect.Ptr:
		if elem, ok := collection.ValueTypeOf(t); ok {
			setMap(field, elem)
			return
		}
	}

	field.Kind = FieldPlain
}

func setMap(field *FieldMapping, elem reflect.Type) {
	field.Kind = FieldMap
	field.ElemType = elem
	field.ValueEmbeddable = IsEmbeddable(elem)
	field.newMap, field.MapStrategy = mapFactory(field.Type, elem)
}
