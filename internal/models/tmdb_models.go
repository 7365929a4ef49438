// Package models defines data structures for catalog API responses.
package models

// Movie is a list entry as returned by the popular and search endpoints.
// Empty strings and nil slices mean the catalog omitted the field.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
}

// HasGenre reports whether the movie is tagged with genreID.
func (m Movie) HasGenre(genreID int) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the response of the per-movie detail endpoint.
type MovieDetails struct {
	Movie
	Runtime      int     `json:"runtime"`
	Tagline      string  `json:"tagline"`
	Overview     string  `json:"overview"`
	Homepage     string  `json:"homepage"`
	Genres       []Genre `json:"genres"`
	BackdropPath string  `json:"backdrop_path"`
}

type MovieListResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}
