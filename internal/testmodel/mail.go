// Package testmodel holds mapped types shared by tests and the inspect
// command examples.
package testmodel

import (
	"artemis/collection"
	"artemis/mapping"
)

func init() {
	collection.Register[Attachment]()
}

// Mail is a document with attachments keyed by file name.
type Mail struct {
	mapping.Entity `entity:"mail"`

	ID          string                `column:"_id,id"`
	Subject     string                `column:"subject"`
	Attachments map[string]Attachment `column:"attachments"`
}

// Attachment is stored inline under its owner.
type Attachment struct {
	mapping.Embeddable

	ContentType string `column:"content_type"`
	Revpos      int    `column:"revpos"`
	Digest      string `column:"digest"`
	Length      int64  `column:"length"`
	Stub        bool   `column:"stub"`
}

// Archive declares its attachment maps through the collection interfaces.
type Archive struct {
	mapping.Entity

	ID      string                               `column:"_id,id"`
	Sorted  collection.SortedMap[Attachment]     `column:"sorted"`
	Shared  collection.ConcurrentMap[Attachment] `column:"shared"`
	Index   collection.Map[Attachment]           `column:"index"`
	Pinned  *collection.TreeMap[Attachment]      `column:"pinned"`
	Labels  map[string]string                    `column:"labels"`
	Ignored map[string]Attachment                `column:"-"`
}
