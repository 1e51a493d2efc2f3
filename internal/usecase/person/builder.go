package person

import (
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// FullNameField is the full-text person name attribute.
const FullNameField = "full_name"

// SearchQuery builds a fuzzy name search.
func SearchQuery(req request.Request) query.Body {
	return query.Body{
		Query: query.FuzzyMultiMatch{
			Query:     req.Query(),
			Fields:    []query.WeightedField{{Name: FullNameField, Weight: 1}},
			Fuzziness: query.FuzzinessAuto,
		},
	}
}
