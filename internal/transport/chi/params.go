package chi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// Query parameter names.
const (
	paramPageNumber = "page_number"
	paramPageSize   = "page_size"
	paramSort       = "sort_by_rating"
	paramGenre      = "filter[genre]"
	paramQuery      = "query"

	// paramGenreID is the older spelling of paramGenre, still accepted.
	paramGenreID = "genre_id"
)

// errInvalidID marks a path id that cannot name any document.
var errInvalidID = errors.New("invalid id")

// listParams are the optional query parameters shared by list and search routes.
type listParams struct {
	PageNumber *int    `validate:"omitnil"`
	PageSize   *int    `validate:"omitnil,min=1"`
	Sort       *string `validate:"omitnil,oneof=asc desc"`
	GenreID    *string `validate:"omitnil,uuid"`
	Query      *string `validate:"omitnil,max=1024"`
}

// paramBinder turns query strings into validated requests.
type paramBinder struct {
	validate        *validator.Validate
	defaultPageSize int
	maxPageSize     int
}

func newParamBinder(defaultPageSize, maxPageSize int) *paramBinder {
	return &paramBinder{
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// bind parses the named query parameters of r. Names not listed are ignored.
func (b *paramBinder) bind(r *http.Request, names ...string) (listParams, error) {
	var p listParams
	q := r.URL.Query()

	for _, name := range names {
		var err error
		switch name {
		case paramPageNumber:
			err = runtime.BindQueryParameter("form", true, false, name, q, &p.PageNumber)
		case paramPageSize:
			err = runtime.BindQueryParameter("form", true, false, name, q, &p.PageSize)
		case paramSort:
			err = runtime.BindQueryParameter("form", true, false, name, q, &p.Sort)
		case paramGenre:
			err = bindGenre(q, &p.GenreID)
		case paramQuery:
			err = runtime.BindQueryParameter("form", true, true, name, q, &p.Query)
		}
		if err != nil {
			return listParams{}, fmt.Errorf("parameter %s: %w", name, err)
		}
	}

	// Sortable listings default to the best rated first.
	if p.Sort == nil && slices.Contains(names, paramSort) {
		desc := string(query.OrderDesc)
		p.Sort = &desc
	}

	if err := b.validate.Struct(p); err != nil {
		return listParams{}, validationError(err)
	}
	if p.PageSize != nil && *p.PageSize > b.maxPageSize {
		return listParams{}, fmt.Errorf("%s must be at most %d", paramPageSize, b.maxPageSize)
	}
	return p, nil
}

// bindGenre reads the genre filter under either spelling. Conflicting values are rejected.
func bindGenre(q url.Values, dst **string) error {
	var filter, legacy *string
	if err := runtime.BindQueryParameter("form", true, false, paramGenre, q, &filter); err != nil {
		return err
	}
	if err := runtime.BindQueryParameter("form", true, false, paramGenreID, q, &legacy); err != nil {
		return fmt.Errorf("parameter %s: %w", paramGenreID, err)
	}
	if filter != nil && legacy != nil && *filter != *legacy {
		return fmt.Errorf("conflicts with %s", paramGenreID)
	}
	if filter == nil {
		filter = legacy
	}
	*dst = filter
	return nil
}

// request converts bound parameters into a domain request.
// Pages below 1 are left for the retrieval engine to clamp.
func (b *paramBinder) request(p listParams) (request.Request, error) {
	page, size := request.DefaultPage, b.defaultPageSize
	if p.PageNumber != nil {
		page = *p.PageNumber
	}
	if p.PageSize != nil {
		size = *p.PageSize
	}

	req, err := request.New(page, size)
	if err != nil {
		return request.Request{}, err
	}

	if p.Sort != nil {
		if req, err = req.WithSort(query.Order(*p.Sort)); err != nil {
			return request.Request{}, err
		}
	}

	if p.GenreID != nil {
		req = req.WithGenre(*p.GenreID)
	}
	if p.Query != nil {
		if req, err = req.WithQuery(*p.Query); err != nil {
			return request.Request{}, err
		}
	}
	return req, nil
}

// pathID reads a document id from the URL. Ids are UUIDs; anything else names nothing.
func pathID(r *http.Request, name string) (string, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidID, err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidID, err)
	}
	return id.String(), nil
}

// validationError renders validator failures as "field: rule" pairs.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: failed %s", fieldParam(fe.Field()), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}

func fieldParam(field string) string {
	switch field {
	case "PageNumber":
		return paramPageNumber
	case "PageSize":
		return paramPageSize
	case "Sort":
		return paramSort
	case "GenreID":
		return paramGenre
	case "Query":
		return paramQuery
	default:
		return field
	}
}
