package document

import (
	"fmt"

	"artemis/value"
)

// Document is a named generic node as produced by a document driver. Its
// value is a scalar, a Document, a []Document, a [][]Document or a
// mapping-shaped container.
type Document struct {
	Name  string
	Value value.Value
}

// Of builds a node from a name and a raw driver value.
func Of(name string, raw any) Document {
	return Document{Name: name, Value: value.Of(raw)}
}

func (d Document) String() string {
	return fmt.Sprintf("%s=%v", d.Name, d.Value.Get())
}

// Find returns the first node named name.
func Find(docs []Document, name string) (Document, bool) {
	for _, doc := range docs {
		if doc.Name == name {
			return doc, true
		}
	}

	return Document{}, false
}

// Names lists node names in order, duplicates included.
func Names(docs []Document) []string {
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}

	return names
}
