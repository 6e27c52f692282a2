package shop

import (
	"artemis/internal/testmodel"
	"artemis/mapping"
)

type Item struct {
	mapping.Entity `entity:"items"`

	Title  string                 `column:"name"`
	Name   string                 `column:"name"`
	secret string                 `column:"secret"`
	Sku    string                 `column:"sku,id"`
	Code   string                 `column:"code,id"`
	Weird  string                 `column:"weird,indexed"`
	Scores map[int]string         `column:"scores"`
	Files  []testmodel.Attachment `column:"files"`
	Raw    []byte                 `column:"raw"`
}

type Note struct {
	mapping.Embeddable

	Text string `column:"text"`
}

type Log struct {
	mapping.Entity

	Lines []string `column:"lines"`
}

type Untagged struct {
	Text string
}
