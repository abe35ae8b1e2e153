package search

import (
	"gomovies/movie"
	"gomovies/trending"
)

type Kind int

const (
	ViewLoading Kind = iota
	ViewError
	ViewSearchResults
	ViewNoResults
	ViewListing
)

func (k Kind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewSearchResults:
		return "search_results"
	case ViewNoResults:
		return "no_results"
	case ViewListing:
		return "listing"
	}
	return "unknown"
}

// View is what the home screen should render right now.
type View struct {
	Kind Kind
	// Query is the trimmed search query the view was selected for.
	Query string
	// Movies holds search results or the default listing.
	Movies []movie.Movie
	// Trending is the ranked rail, set only on the listing view.
	Trending []trending.Movie
	Err      error
	Message  string
}
