// Package query defines the typed query body handed to the search engine client.
package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Clause is one node of a query body. The set of implementations is closed:
// MatchAll, Match, NestedFilter, FuzzyMultiMatch, AnyOf and AllOf.
type Clause interface {
	isClause()
}

// MatchAll matches every document of a collection.
type MatchAll struct{}

// Match is a full-text match of Value against a single text field.
type Match struct {
	Field string
	Value string
}

// NestedFilter keeps documents whose one-to-many relation Path holds an element
// whose Field equals Value exactly.
type NestedFilter struct {
	Path  string
	Field string
	Value string
}

// Alias returns the index attribute of the filtered field, "<path>_<field>".
func (f NestedFilter) Alias() string { return f.Path + "_" + f.Field }

// WeightedField is a text field with its relevance boost. Weight <= 0 means 1.
type WeightedField struct {
	Name   string
	Weight float64
}

// FuzzyMultiMatch matches Query against several weighted text fields,
// tolerating small edit-distance differences per term.
type FuzzyMultiMatch struct {
	Query     string
	Fields    []WeightedField
	Fuzziness Fuzziness
}

// AnyOf matches documents matching at least one of its clauses.
type AnyOf struct {
	Clauses []Clause
}

// AllOf matches documents matching every one of its clauses.
type AllOf struct {
	Clauses []Clause
}

func (MatchAll) isClause()        {}
func (Match) isClause()           {}
func (NestedFilter) isClause()    {}
func (FuzzyMultiMatch) isClause() {}
func (AnyOf) isClause()           {}
func (AllOf) isClause()           {}

// Fuzziness is the allowed edit distance per term.
type Fuzziness int

const (
	// FuzzinessAuto picks the distance from term length: 0 up to 2 runes, 1 up to 5, 2 beyond.
	FuzzinessAuto Fuzziness = -1
	// MaxFuzziness is the largest distance the search engine accepts.
	MaxFuzziness Fuzziness = 3
)

// Edits returns the edit distance allowed for term.
func (f Fuzziness) Edits(term string) int {
	if f != FuzzinessAuto {
		return int(min(max(f, 0), MaxFuzziness))
	}
	switch n := utf8.RuneCountInString(term); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

// Terms splits free text into lower-cased runs of letters and digits.
func Terms(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
