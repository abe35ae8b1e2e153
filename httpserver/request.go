package httpserver

import (
	"strings"

	"gomovies/movie"
)

// MovieRequest is the card a client sends when it saves or searches a movie.
type MovieRequest struct {
	ID          int     `json:"id" validate:"gt=0"`
	Title       string  `json:"title" validate:"required,notblank,max=500"`
	PosterPath  string  `json:"poster_path" validate:"omitempty,startswith=/"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average" validate:"gte=0,lte=10"`
}

func (r MovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		ID:          r.ID,
		Title:       strings.TrimSpace(r.Title),
		PosterPath:  r.PosterPath,
		ReleaseDate: r.ReleaseDate,
		VoteAverage: r.VoteAverage,
	}
}

type SearchCountRequest struct {
	Query string       `json:"query" validate:"required,notblank,max=200"`
	Movie MovieRequest `json:"movie"`
}

type AddBookmarkRequest struct {
	Movie MovieRequest `json:"movie"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,notblank"`
}
