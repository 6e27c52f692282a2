// Package mapping compiles Go struct types into field descriptors.
//
// A struct takes part in mapping by embedding one of the markers:
//
//	type Mail struct {
//		mapping.Entity `entity:"mail"`
//
//		ID          string                `column:"_id,id"`
//		Subject     string                `column:"subject"`
//		Attachments map[string]Attachment `column:"attachments"`
//	}
//
//	type Attachment struct {
//		mapping.Embeddable
//
//		ContentType string `column:"content_type"`
//	}
//
// Only fields with a column tag are mapped. The tag value is the document
// name, optionally followed by "id" and "converter=<name>" options; an empty
// name stands for the Go field name and "-" skips the field.
//
// Metadata is compiled once per type by a Registry and never changes after.
package mapping
