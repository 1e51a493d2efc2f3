package moviedex

import (
	"context"
	"fmt"
	"time"
)

// FilmService reads films.
type FilmService struct {
	svc filmUseCase
	obs *observer
}

// Get returns one film by id.
func (s *FilmService) Get(ctx context.Context, id string) (doc Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("films.get", start, err) }()

	if doc, err = s.svc.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get film: %w", err)
	}
	return doc, nil
}

// List returns one page of films ordered by rating, optionally limited to a genre.
func (s *FilmService) List(ctx context.Context, opts ListOptions) (docs []Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("films.list", start, err) }()

	req, err := opts.request()
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	if docs, err = s.svc.List(ctx, req); err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	return docs, nil
}

// Search returns one page of films whose title or description fuzzily matches text.
func (s *FilmService) Search(ctx context.Context, text string, p Page) (docs []Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("films.search", start, err) }()

	req, err := searchRequest(text, p)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	if docs, err = s.svc.Search(ctx, req); err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	return docs, nil
}

// GenreService reads genres.
type GenreService struct {
	svc genreUseCase
	obs *observer
}

// Get returns one genre by id.
func (s *GenreService) Get(ctx context.Context, id string) (doc Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("genres.get", start, err) }()

	if doc, err = s.svc.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return doc, nil
}

// List returns one page of genres ordered by name.
func (s *GenreService) List(ctx context.Context, p Page) (docs []Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("genres.list", start, err) }()

	req, err := p.request()
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	if docs, err = s.svc.List(ctx, req); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return docs, nil
}

// Search returns one page of genres whose name matches text.
func (s *GenreService) Search(ctx context.Context, text string, p Page) (docs []Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("genres.search", start, err) }()

	req, err := searchRequest(text, p)
	if err != nil {
		return nil, fmt.Errorf("search genres: %w", err)
	}
	if docs, err = s.svc.Search(ctx, req); err != nil {
		return nil, fmt.Errorf("search genres: %w", err)
	}
	return docs, nil
}

// PersonService reads persons and their filmographies.
type PersonService struct {
	svc personUseCase
	obs *observer
}

// Get returns one person by id.
func (s *PersonService) Get(ctx context.Context, id string) (doc Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("persons.get", start, err) }()

	if doc, err = s.svc.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return doc, nil
}

// Search returns one page of persons whose full name fuzzily matches text.
func (s *PersonService) Search(ctx context.Context, text string, p Page) (docs []Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("persons.search", start, err) }()

	req, err := searchRequest(text, p)
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}
	if docs, err = s.svc.Search(ctx, req); err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}
	return docs, nil
}

// Films returns one page of the films person id took part in, best rated first by default.
func (s *PersonService) Films(ctx context.Context, id string, opts ListOptions) (docs []Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("persons.films", start, err) }()

	req, err := opts.request()
	if err != nil {
		return nil, fmt.Errorf("person films: %w", err)
	}
	if docs, err = s.svc.Films(ctx, id, req); err != nil {
		return nil, fmt.Errorf("person films: %w", err)
	}
	return docs, nil
}
