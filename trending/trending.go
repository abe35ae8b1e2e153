package trending

import "gomovies/movie"

// Limit is the size of the trending rail.
const Limit = 5

// Movie is the aggregate record kept per search term. Count only grows.
type Movie struct {
	SearchTerm string `json:"searchTerm"`
	MovieID    int    `json:"movie_id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url"`
	Count      int    `json:"count"`
}

// NewEntry builds the record inserted the first time term is searched.
func NewEntry(term string, m movie.Movie) Movie {
	return Movie{
		SearchTerm: term,
		MovieID:    m.ID,
		Title:      m.Title,
		PosterURL:  movie.PosterURL(m.PosterPath, movie.SizeThumbnail),
		Count:      1,
	}
}
