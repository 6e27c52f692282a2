package inspect

import (
	"go/types"
	"reflect"

	"artemis/collection"
	"artemis/convert"
	"artemis/mapping"
)

type markerEnum int

const (
	markerNone markerEnum = iota
	markerEntity
	markerEmbeddable
)

// markerOf tells which mapping marker the struct behind t embeds, looking
// through pointers.
func markerOf(t types.Type) markerEnum {
	st, ok := structOf(t)
	if !ok {
		return markerNone
	}

	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		named, ok := f.Type().(*types.Named)
		if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != mappingPkgPath {
			continue
		}

		switch named.Obj().Name() {
		case "Entity":
			return markerEntity
		case "Embeddable":
			return markerEmbeddable
		}
	}

	return markerNone
}

func structOf(t types.Type) (*types.Struct, bool) {
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		t = ptr.Elem()
	}

	st, ok := t.Underlying().(*types.Struct)
	return st, ok
}

func entityName(st *types.Struct) string {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() && f.Name() == "Entity" {
			return reflect.StructTag(st.Tag(i)).Get(mapping.EntityTag)
		}
	}

	return ""
}

// classification mirrors the runtime field classification of package mapping.
type classification struct {
	kind            mapping.FieldKind
	elemEmbeddable  bool
	valueEmbeddable bool
	strategy        collection.StrategyEnum
	refs            []*types.Named // mapped types the field leads to
}

func (c classification) converter() convert.ConverterEnum {
	return convert.SelectKind(c.kind, c.elemEmbeddable, c.valueEmbeddable)
}

func classify(t types.Type, hasConverter bool) classification {
	if hasConverter {
		return classification{kind: mapping.FieldPlain}
	}

	switch markerOf(t) {
	case markerEmbeddable:
		return classification{kind: mapping.FieldEmbedded, refs: mappedRefs(t)}
	case markerEntity:
		return classification{kind: mapping.FieldSubEntity, refs: mappedRefs(t)}
	}

	switch u := t.Underlying().(type) {
	case *types.Slice:
		if basic, ok := u.Elem().Underlying().(*types.Basic); ok && basic.Kind() == types.Uint8 {
			break
		}

		return classification{
			kind:           mapping.FieldCollection,
			elemEmbeddable: markerOf(u.Elem()) != markerNone,
			refs:           mappedRefs(u.Elem()),
		}

	case *types.Map:
		if key, ok := u.Key().Underlying().(*types.Basic); !ok || key.Kind() != types.String {
			break
		}

		return mapClassification(u.Elem(), collection.StrategyGeneral)

	case *types.Interface, *types.Pointer:
		if elem, ok := containerValue(t); ok {
			return mapClassification(elem, strategyOf(t))
		}
	}

	return classification{kind: mapping.FieldPlain}
}

func mapClassification(elem types.Type, strategy collection.StrategyEnum) classification {
	return classification{
		kind:            mapping.FieldMap,
		valueEmbeddable: markerOf(elem) == markerEmbeddable,
		strategy:        strategy,
		refs:            mappedRefs(elem),
	}
}

// mappedRefs returns the named struct behind t when it is mapped.
func mappedRefs(t types.Type) []*types.Named {
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		t = ptr.Elem()
	}

	named, ok := t.(*types.Named)
	if !ok || markerOf(named) == markerNone {
		return nil
	}

	return []*types.Named{named}
}

// containerValue recognizes collection.Map implementations: a Get(string)
// (V, bool) and a Put(string, V) method.
func containerValue(t types.Type) (types.Type, bool) {
	mset := types.NewMethodSet(t)

	get := lookupSignature(mset, "Get")
	put := lookupSignature(mset, "Put")
	if get == nil || put == nil {
		return nil, false
	}

	if get.Params().Len() != 1 || !isString(get.Params().At(0).Type()) || get.Results().Len() != 2 {
		return nil, false
	}

	if basic, ok := get.Results().At(1).Type().(*types.Basic); !ok || basic.Kind() != types.Bool {
		return nil, false
	}

	elem := get.Results().At(0).Type()

	if put.Params().Len() != 2 || !isString(put.Params().At(0).Type()) ||
		!types.Identical(put.Params().At(1).Type(), elem) {
		return nil, false
	}

	return elem, true
}

func strategyOf(t types.Type) collection.StrategyEnum {
	mset := types.NewMethodSet(t)

	if lookupSignature(mset, "Keys") != nil && lookupSignature(mset, "First") != nil {
		return collection.StrategySorted
	}

	if lookupSignature(mset, "LoadOrStore") != nil {
		return collection.StrategyConcurrent
	}

	return collection.StrategyGeneral
}

func lookupSignature(mset *types.MethodSet, name string) *types.Signature {
	for i := 0; i < mset.Len(); i++ {
		sel := mset.At(i)
		if sel.Obj().Name() == name {
			sig, _ := sel.Type().(*types.Signature)
			return sig
		}
	}

	return nil
}

func isString(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.String
}
