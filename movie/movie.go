package movie

import (
	"fmt"
	"math"
	"strings"

	"gomovies/errs"
)

const (
	ImageBaseURL = "https://image.tmdb.org/t/p/"

	// PlaceholderPoster is shown when the catalog has no poster for a movie.
	PlaceholderPoster = "https://placehold.co/600x400/1a1a1a/FFFFFF.png"
)

// Poster sizes understood by the image CDN.
const (
	SizeThumbnail = "w500"
	SizeOriginal  = "original"
)

var ErrInvalidID = errs.Errorf(errs.EINVALID, "invalid movie id")

// Movie is a listing-level catalog entry.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
	Adult       bool    `json:"adult,omitempty"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details is the full record of a single movie.
type Details struct {
	Movie
	Runtime      int     `json:"runtime"`
	Genres       []Genre `json:"genres"`
	Tagline      string  `json:"tagline,omitempty"`
	Status       string  `json:"status,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	Budget       int64   `json:"budget,omitempty"`
	Revenue      int64   `json:"revenue,omitempty"`
	Homepage     string  `json:"homepage,omitempty"`
	IMDBID       string  `json:"imdb_id,omitempty"`
}

// PosterURL builds an absolute image URL for a relative poster path.
// An empty path yields an empty URL.
func PosterURL(path, size string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	return ImageBaseURL + size + path
}

// PosterPathFromURL strips the thumbnail base from an absolute poster URL,
// returning the relative path the catalog uses.
func PosterPathFromURL(url string) string {
	return strings.TrimPrefix(url, ImageBaseURL+SizeThumbnail)
}

// Thumbnail returns the w500 poster URL, or the placeholder when there is none.
func (m Movie) Thumbnail() string {
	if u := PosterURL(m.PosterPath, SizeThumbnail); u != "" {
		return u
	}
	return PlaceholderPoster
}

// FullPoster returns the full-resolution poster URL, or the placeholder.
func (m Movie) FullPoster() string {
	if u := PosterURL(m.PosterPath, SizeOriginal); u != "" {
		return u
	}
	return PlaceholderPoster
}

// Year is the year part of the release date, empty when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Stars converts the 0-10 vote average to a 0-5 rating.
func (m Movie) Stars() int {
	return int(math.Round(m.VoteAverage / 2))
}

func (d Details) RuntimeLabel() string {
	return fmt.Sprintf("%d min", d.Runtime)
}

func (d Details) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}
