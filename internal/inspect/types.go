package inspect

import (
	"cmp"
	"slices"

	"artemis/collection"
	"artemis/convert"
	"artemis/internal/common"
	"artemis/internal/diagnostic"
	"artemis/mapping"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "artemis/internal/testmodel"
	Name    string // e.g., "Mail"
}

// String returns the type as it is written in Go source, e.g. testmodel.Mail.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

func (t TypeID) compare(other TypeID) int {
	return cmp.Or(cmp.Compare(t.PkgPath, other.PkgPath), cmp.Compare(t.Name, other.Name))
}

// Entity describes a mapped struct.
type Entity struct {
	ID         TypeID
	Name       string // entity name, the struct name unless the entity tag sets one
	Embeddable bool
	Fields     []Field // declaration order
}

// Field describes one mapped field.
type Field struct {
	GoName             string
	Column             string
	Type               string
	Kind               mapping.FieldKind
	Converter          convert.ConverterEnum
	AttributeConverter string
	ID                 bool
	MapStrategy        collection.StrategyEnum // only for maps declared through interfaces or pointers
}

// Report is the outcome of an inspection.
type Report struct {
	Entities    []*Entity // sorted by TypeID
	Diagnostics diagnostic.Diagnostics
}

// Entity returns the entity with the given id, or nil.
func (r *Report) Entity(id TypeID) *Entity {
	i, found := slices.BinarySearchFunc(r.Entities, id, func(e *Entity, id TypeID) int {
		return e.ID.compare(id)
	})
	if !found {
		return nil
	}

	return r.Entities[i]
}

func (r *Report) sort() {
	slices.SortFunc(r.Entities, func(a, b *Entity) int {
		return a.ID.compare(b.ID)
	})
}
