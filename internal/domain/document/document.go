// Package document holds the opaque entity record returned by the search engine.
package document

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Document is one denormalized entity (film, person, genre) as stored in the search engine.
// The retrieval layer never mutates documents, it only reads and caches them.
type Document map[string]any

// ID returns the document identifier, or "" when the document has none.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Float returns a numeric field, reporting false when it is absent or not a number.
func (d Document) Float(field string) (float64, bool) {
	v, ok := d[field].(float64)
	return v, ok
}

// Decode parses a single JSON object into a Document.
func Decode(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("decode document: not an object")
	}
	return d, nil
}

// DecodeFirst parses a JSONPath result ("[{...}]") and returns its first element.
// ok is false when the array is empty.
func DecodeFirst(data []byte) (Document, bool, error) {
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false, fmt.Errorf("decode document array: %w", err)
	}
	if len(docs) == 0 || docs[0] == nil {
		return nil, false, nil
	}
	return docs[0], true, nil
}
