package genre

import (
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// NameField is the sortable, full-text genre name attribute.
const NameField = "name"

// ListQuery lists every genre alphabetically.
func ListQuery(request.Request) query.Body {
	return query.Body{
		Query: query.MatchAll{},
		Sort:  &query.SortField{Field: NameField, Order: query.OrderAsc},
	}
}

// SearchQuery matches genre names containing the query terms.
func SearchQuery(req request.Request) query.Body {
	return query.Body{
		Query: query.Match{Field: NameField, Value: req.Query()},
	}
}
