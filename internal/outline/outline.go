// Package outline turns positioned text runs from a parsed document into a
// logical outline: a document title plus a flat list of H1/H2/H3 headings,
// each tagged with its 1-based page number.
package outline

import "encoding/json"

// Level is the depth of an outline entry.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// Heading is a single outline entry.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"` // 1-based
}

// Document is the extraction result for one input file. Title may be empty;
// Outline is flat and ordered by page, then by position on the page.
type Document struct {
	Title   string    `json:"title"`
	Outline []Heading `json:"outline"`

	// Pages counts the pages actually scanned. Stats-only: it stays out
	// of the serialized result.
	Pages int `json:"-"`
}

// NewDocument returns an empty document with a non-nil outline so it
// serializes as [] rather than null.
func NewDocument() *Document {
	return &Document{Outline: []Heading{}}
}

// MarshalJSON keeps the "outline": [] contract even for documents built
// without NewDocument.
func (d *Document) MarshalJSON() ([]byte, error) {
	type alias Document
	a := alias(*d)
	if a.Outline == nil {
		a.Outline = []Heading{}
	}
	return json.Marshal(a)
}
