package film

import (
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// Index attributes of the movies collection.
const (
	RatingField      = "imdb_rating"
	TitleField       = "title"
	DescriptionField = "description"
	IDField          = "id"
)

// Relations of a film that reference persons.
var personRoles = []string{"actors", "writers", "directors"}

// titleBoost ranks title matches above description matches.
const titleBoost = 2

// ListQuery builds a rating-ordered listing, optionally narrowed to one genre
// and to films a person took part in.
func ListQuery(req request.Request) query.Body {
	var filters []query.Clause
	if id := req.GenreID(); id != "" {
		filters = append(filters, query.NestedFilter{Path: "genres", Field: IDField, Value: id})
	}
	if id := req.PersonID(); id != "" {
		filters = append(filters, byPerson(id))
	}

	order := req.Sort()
	if order == "" {
		order = query.OrderDesc
	}

	return query.Body{
		Query: combine(filters),
		Sort:  &query.SortField{Field: RatingField, Order: order},
	}
}

// SearchQuery builds a relevance-ordered fuzzy full-text search over title and description.
func SearchQuery(req request.Request) query.Body {
	return query.Body{
		Query: query.FuzzyMultiMatch{
			Query: req.Query(),
			Fields: []query.WeightedField{
				{Name: TitleField, Weight: titleBoost},
				{Name: DescriptionField, Weight: 1},
			},
			Fuzziness: query.FuzzinessAuto,
		},
	}
}

func byPerson(id string) query.Clause {
	roles := make([]query.Clause, 0, len(personRoles))
	for _, role := range personRoles {
		roles = append(roles, query.NestedFilter{Path: role, Field: IDField, Value: id})
	}
	return query.AnyOf{Clauses: roles}
}

func combine(filters []query.Clause) query.Clause {
	switch len(filters) {
	case 0:
		return query.MatchAll{}
	case 1:
		return filters[0]
	default:
		return query.AllOf{Clauses: filters}
	}
}
