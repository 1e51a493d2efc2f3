package retrieval

import "github.com/kailas-cloud/moviedex/internal/domain/request"

// keySeparator joins the collection name and the entry identity in cache keys.
const keySeparator = "::"

// PointKey is the cache key of a single document: "<collection>::<id>".
func PointKey(collection, id string) string {
	return collection + keySeparator + id
}

// ListKey is the cache key of one result page: "<collection>::<canonical request>".
// req must already carry the effective page.
func ListKey(collection string, req request.Request) string {
	return collection + keySeparator + req.Canonical()
}
