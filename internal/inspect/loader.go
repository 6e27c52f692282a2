package inspect

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"

	"golang.org/x/tools/go/packages"

	"artemis/mapping"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

var mappingPkgPath = reflect.TypeFor[mapping.Entity]().PkgPath()

// Inspector loads Go packages and reports their mapped types.
type Inspector struct {
	tag    string
	queue  queue
	report *Report
}

// NewInspector creates an Inspector reading column definitions from the
// given struct tag key; an empty tag means mapping.DefaultTag.
func NewInspector(tag string) *Inspector {
	if tag == "" {
		tag = mapping.DefaultTag
	}

	return &Inspector{tag: tag, report: &Report{}}
}

// Load loads the packages matching patterns and inspects every mapped type
// they declare, plus the mapped types those reference.
func (in *Inspector) Load(patterns ...string) (*Report, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: LoadMode}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		in.schedulePackage(pkg.Types)
	}

	for named, ok := in.queue.Next(); ok; named, ok = in.queue.Next() {
		in.inspect(named)
	}

	in.report.sort()

	return in.report, nil
}

// schedulePackage queues every exported mapped struct declared in pkg.
func (in *Inspector) schedulePackage(pkg *types.Package) {
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		if m := markerOf(named); m != markerNone {
			in.queue.Needs(named)
		}
	}
}

func (in *Inspector) inspect(named *types.Named) {
	id := idOf(named)
	st := named.Underlying().(*types.Struct)
	diags := &in.report.Diagnostics

	entity := &Entity{ID: id, Name: id.Name}

	switch markerOf(named) {
	case markerEmbeddable:
		entity.Embeddable = true
	case markerEntity:
		if name := entityName(st); name != "" {
			entity.Name = name
		}
	}

	columns := make(map[string]string)
	hasID := false

	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)

		raw, tagged := reflect.StructTag(st.Tag(i)).Lookup(in.tag)
		if !tagged {
			continue
		}

		if !v.Exported() {
			diags.AddError("unexported_tag", "tagged field is not exported", id.String(), v.Name())
			continue
		}

		tag, err := mapping.ParseColumnTag(raw)
		if err != nil {
			diags.AddError("bad_tag", err.Error(), id.String(), v.Name())
			continue
		}

		if tag.Skip {
			continue
		}

		field := in.field(v, tag)

		if field.Kind != mapping.FieldEmbedded {
			if prev, dup := columns[field.Column]; dup {
				diags.AddError("duplicate_column",
					fmt.Sprintf("column %q is also used by %s", field.Column, prev), id.String(), v.Name())
			}
			columns[field.Column] = v.Name()
		}

		if field.ID {
			if hasID {
				diags.AddError("multiple_ids", "more than one id field", id.String(), v.Name())
			}
			hasID = true
		}

		in.check(id, v, &field)
		entity.Fields = append(entity.Fields, field)
	}

	if !entity.Embeddable && !hasID {
		diags.AddInfo("no_id", "entity has no id field and cannot be stored by key", id.String(), "")
	}

	in.report.Entities = append(in.report.Entities, entity)
}

func (in *Inspector) field(v *types.Var, tag mapping.ColumnTag) Field {
	field := Field{
		GoName:             v.Name(),
		Column:             tag.Name,
		Type:               types.TypeString(v.Type(), func(p *types.Package) string { return p.Name() }),
		AttributeConverter: tag.Converter,
		ID:                 tag.ID,
	}

	if field.Column == "" {
		field.Column = v.Name()
	}

	c := classify(v.Type(), tag.Converter != "")
	field.Kind = c.kind
	field.MapStrategy = c.strategy
	field.Converter = c.converter()

	for _, ref := range c.refs {
		in.queue.Needs(ref)
	}

	return field
}

// check reports mappings that compile but will not behave as written.
func (in *Inspector) check(id TypeID, v *types.Var, field *Field) {
	diags := &in.report.Diagnostics

	switch t := v.Type().Underlying().(type) {
	case *types.Map:
		if key, ok := t.Key().Underlying().(*types.Basic); !ok || key.Kind() != types.String {
			diags.AddWarning("map_key", "map keys are not strings, the field is converted as a plain value",
				id.String(), v.Name())
		}

	case *types.Interface:
		if field.Kind == mapping.FieldMap {
			diags.AddInfo("map_registration",
				fmt.Sprintf("the value type must be registered with collection.Register before the entity is mapped (%s strategy)", field.MapStrategy),
				id.String(), v.Name())
		}
	}
}
