package domain

// Collection names. They prefix every cache key and name the search indexes.
const (
	Films   = "movies"
	Genres  = "genres"
	Persons = "persons"
)

// Collections lists every collection served by the API.
func Collections() []string {
	return []string{Films, Genres, Persons}
}
