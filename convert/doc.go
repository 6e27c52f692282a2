// Package convert turns generic document nodes into mapped Go structs and
// back.
//
// For every mapped field the EntityConverter finds the first node carrying
// the field name and lets Select pick one of five field converters:
//   - ConverterEmbedded, for structs embedding mapping.Embeddable
//   - ConverterSubEntity, for structs embedding mapping.Entity
//   - ConverterCollectionEmbeddable, for slices of mapped structs
//   - ConverterMapEmbeddable, for maps whose values embed mapping.Embeddable
//   - ConverterDefault, for everything else
//
// Field converters recurse through the Handle they are given, which is the
// EntityConverter itself.
package convert
