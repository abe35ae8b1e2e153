package httpserver_test

import (
	"net/http"
	"testing"

	"gomovies/httpserver"
	"gomovies/movie"
	"gomovies/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMovieServer(svc *MockMovieService) *httpserver.Server {
	server := httpserver.Default(testConfig())
	server.MovieService = svc
	return server
}

func TestListMovies(t *testing.T) {
	t.Run("empty query returns the popular listing", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("FetchMovies", mock.Anything, "").Return([]movie.Movie{
			{ID: 1, Title: "Popular", PosterPath: "/p.jpg", ReleaseDate: "2024-05-01", VoteAverage: 7.2},
		}, nil)

		rec := serve(newMovieServer(svc), http.MethodGet, "/api/movies", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var result struct {
			Data []httpserver.MovieResponse `json:"data"`
		}
		decodeResult(t, rec, &result)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Popular", result.Data[0].Title)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", result.Data[0].PosterURL)
		assert.Equal(t, "2024", result.Data[0].Year)
		assert.Equal(t, 4, result.Data[0].Stars)
		svc.AssertExpectations(t)
	})

	t.Run("query is trimmed and forwarded", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("FetchMovies", mock.Anything, "dune").Return([]movie.Movie{}, nil)

		rec := serve(newMovieServer(svc), http.MethodGet, "/api/movies?query=%20dune%20", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[]}`, string(decodeAPIResponse(t, rec).Result))
		svc.AssertExpectations(t)
	})

	t.Run("catalog failure returns bad gateway", func(t *testing.T) {
		svc := new(MockMovieService)
		fetchErr := &tmdb.FetchError{URL: "https://api.example/discover", StatusCode: 401, Message: "Unauthorized"}
		svc.On("FetchMovies", mock.Anything, "").Return(nil, fetchErr)

		rec := serve(newMovieServer(svc), http.MethodGet, "/api/movies", "", nil)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		resp := decodeAPIResponse(t, rec)
		assert.Equal(t, "100502", resp.Code)
		assert.Equal(t, "failed to fetch: HTTP 401 Unauthorized", resp.Message)
	})

	t.Run("missing service returns not implemented", func(t *testing.T) {
		rec := serve(httpserver.Default(testConfig()), http.MethodGet, "/api/movies", "", nil)

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("returns details", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("FetchMovieDetails", mock.Anything, "42").Return(movie.Details{
			Movie:   movie.Movie{ID: 42, Title: "Answer", PosterPath: "/a.jpg", VoteAverage: 9},
			Runtime: 121,
			Genres:  []movie.Genre{{ID: 1, Name: "Drama"}, {ID: 2, Name: "Sci-Fi"}},
		}, nil)

		rec := serve(newMovieServer(svc), http.MethodGet, "/api/movies/42", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var details httpserver.DetailsResponse
		decodeResult(t, rec, &details)
		assert.Equal(t, 42, details.ID)
		assert.Equal(t, "121 min", details.RuntimeLabel)
		assert.Equal(t, []string{"Drama", "Sci-Fi"}, details.Genres)
		assert.Equal(t, "https://image.tmdb.org/t/p/original/a.jpg", details.FullPosterURL)
		assert.Equal(t, 5, details.Stars)
	})

	t.Run("invalid id returns bad request", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("FetchMovieDetails", mock.Anything, mock.Anything).Return(movie.Details{}, movie.ErrInvalidID)

		rec := serve(newMovieServer(svc), http.MethodGet, "/api/movies/%20", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "100010", decodeAPIResponse(t, rec).Code)
	})
}
