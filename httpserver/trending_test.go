package httpserver_test

import (
	"net/http"
	"testing"

	"gomovies/httpserver"
	"gomovies/movie"
	"gomovies/trending"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTrendingServer(svc *MockTrendingService) *httpserver.Server {
	server := httpserver.Default(testConfig())
	server.TrendingService = svc
	return server
}

func TestGetTrending(t *testing.T) {
	svc := new(MockTrendingService)
	svc.On("GetTrendingMovies", mock.Anything).Return([]trending.Movie{
		{SearchTerm: "dune", MovieID: 438631, Title: "Dune", PosterURL: "https://image.tmdb.org/t/p/w500/d.jpg", Count: 7},
		{SearchTerm: "alien", MovieID: 348, Title: "Alien", Count: 3},
	})

	rec := serve(newTrendingServer(svc), http.MethodGet, "/api/trending", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Data []trending.Movie `json:"data"`
	}
	decodeResult(t, rec, &result)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "dune", result.Data[0].SearchTerm)
	assert.Equal(t, 7, result.Data[0].Count)
}

func TestUpdateSearchCount(t *testing.T) {
	t.Run("records the search and accepts", func(t *testing.T) {
		svc := new(MockTrendingService)
		want := movie.Movie{ID: 557, Title: "Spider-Man", PosterPath: "/s.jpg"}
		svc.On("UpdateSearchCount", mock.Anything, "spiderman", want).Return()

		rec := serve(newTrendingServer(svc), http.MethodPost, "/api/trending", "", map[string]interface{}{
			"query": "  spiderman ",
			"movie": map[string]interface{}{"id": 557, "title": "Spider-Man", "poster_path": "/s.jpg"},
		})

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "202", decodeAPIResponse(t, rec).Code)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "blank query",
			body: map[string]interface{}{
				"query": "   ",
				"movie": map[string]interface{}{"id": 1, "title": "A"},
			},
		},
		{
			name: "missing movie id",
			body: map[string]interface{}{
				"query": "a",
				"movie": map[string]interface{}{"title": "A"},
			},
		},
		{
			name: "missing title",
			body: map[string]interface{}{
				"query": "a",
				"movie": map[string]interface{}{"id": 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name+" is rejected", func(t *testing.T) {
			svc := new(MockTrendingService)

			rec := serve(newTrendingServer(svc), http.MethodPost, "/api/trending", "", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeAPIResponse(t, rec).Message, "validation error")
			svc.AssertNotCalled(t, "UpdateSearchCount", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
