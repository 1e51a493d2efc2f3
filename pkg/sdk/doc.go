// Package moviedex provides an embedded Go client for the moviedex read path:
// films, persons and genres served cache-first from Redis with RediSearch
// as the source of truth.
//
// The client runs the same retrieval engine as the HTTP API in-process, so
// results and cache entries are shared with any API instance pointed at the
// same stores.
//
//	client, _ := moviedex.New(ctx,
//	    moviedex.WithCache("localhost:6379", ""),
//	    moviedex.WithSearch("localhost:6380", ""),
//	)
//	defer client.Close()
//
//	films, _ := client.Films().List(ctx, moviedex.ListOptions{Size: 10, GenreID: genreID})
//	hits, _ := client.Persons().Search(ctx, "lucas", moviedex.Page{Size: 5})
package moviedex
