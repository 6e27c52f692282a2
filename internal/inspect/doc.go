// Package inspect reports, without running any code, how the converter will
// map the entity types of a set of Go packages.
//
// It uses golang.org/x/tools/go/packages with go/types. Every struct embedding
// mapping.Entity or mapping.Embeddable is reported with the kind of each
// mapped field and the field converter that will handle it. Mapped types
// referenced from other packages are followed.
//
// Key types:
//   - TypeID: package import path + type name
//   - Entity: one mapped struct and its fields
//   - Report: all entities plus the diagnostics found on the way
package inspect
