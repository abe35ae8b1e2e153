package movie_test

import (
	"context"
	"errors"
	"gomovies/movie"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Discover(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockCatalog) Details(ctx context.Context, id int) (movie.Details, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Details), args.Error(1)
}

func TestFetchMovies(t *testing.T) {
	c := new(MockCatalog)
	uc := movie.NewUsecase(c)

	t.Run("should return popular listing for empty query", func(t *testing.T) {
		popular := []movie.Movie{{ID: 1, Title: "Popular"}}
		c.On("Discover", mock.Anything).Return(popular, nil).Once()

		result, err := uc.FetchMovies(context.Background(), "")

		assert.NoError(t, err)
		assert.Equal(t, popular, result)
		c.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		c.AssertExpectations(t)
	})

	t.Run("should treat blank query as empty", func(t *testing.T) {
		c.On("Discover", mock.Anything).Return([]movie.Movie{}, nil).Once()

		_, err := uc.FetchMovies(context.Background(), "   ")

		assert.NoError(t, err)
		c.AssertExpectations(t)
	})

	t.Run("should search in catalog order", func(t *testing.T) {
		found := []movie.Movie{{ID: 556, Title: "Spider-Man"}, {ID: 557, Title: "Spider-Man 2"}}
		c.On("Search", mock.Anything, "spiderman").Return(found, nil).Once()

		result, err := uc.FetchMovies(context.Background(), " spiderman ")

		assert.NoError(t, err)
		assert.Equal(t, found, result)
		c.AssertExpectations(t)
	})

	t.Run("should propagate catalog errors", func(t *testing.T) {
		boom := errors.New("boom")
		c.On("Search", mock.Anything, "batman").Return([]movie.Movie(nil), boom).Once()

		_, err := uc.FetchMovies(context.Background(), "batman")

		assert.ErrorIs(t, err, boom)
		c.AssertExpectations(t)
	})
}

func TestFetchMovieDetails(t *testing.T) {
	c := new(MockCatalog)
	uc := movie.NewUsecase(c)

	t.Run("should fetch details by id", func(t *testing.T) {
		details := movie.Details{
			Movie:   movie.Movie{ID: 42, Title: "Answer"},
			Runtime: 120,
			Genres:  []movie.Genre{{ID: 18, Name: "Drama"}},
		}
		c.On("Details", mock.Anything, 42).Return(details, nil).Once()

		result, err := uc.FetchMovieDetails(context.Background(), "42")

		assert.NoError(t, err)
		assert.Equal(t, details, result)
		c.AssertExpectations(t)
	})

	for _, id := range []string{"", "abc", "0", "-3"} {
		t.Run("should reject id "+id, func(t *testing.T) {
			_, err := uc.FetchMovieDetails(context.Background(), id)

			assert.Equal(t, movie.ErrInvalidID, err)
			c.AssertNotCalled(t, "Details", mock.Anything, mock.Anything)
		})
	}
}
