package httpserver_test

import (
	"context"

	"gomovies/auth"
	"gomovies/bookmark"
	"gomovies/movie"
	"gomovies/trending"
	"gomovies/user"

	"github.com/stretchr/testify/mock"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) FetchMovies(ctx context.Context, query string) ([]movie.Movie, error) {
	args := m.Called(ctx, query)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, args.Error(1)
}

func (m *MockMovieService) FetchMovieDetails(ctx context.Context, id string) (movie.Details, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Details), args.Error(1)
}

type MockTrendingService struct {
	mock.Mock
}

func (m *MockTrendingService) GetTrendingMovies(ctx context.Context) []trending.Movie {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]trending.Movie)
	return movies
}

func (m *MockTrendingService) UpdateSearchCount(ctx context.Context, query string, mv movie.Movie) {
	m.Called(ctx, query, mv)
}

type MockBookmarkService struct {
	mock.Mock
}

func (m *MockBookmarkService) IsBookmarked(ctx context.Context, movieID int) bool {
	return m.Called(ctx, movieID).Bool(0)
}

func (m *MockBookmarkService) AddBookmark(ctx context.Context, mv movie.Movie) error {
	return m.Called(ctx, mv).Error(0)
}

func (m *MockBookmarkService) RemoveBookmark(ctx context.Context, movieID int) error {
	return m.Called(ctx, movieID).Error(0)
}

func (m *MockBookmarkService) GetUserBookmarks(ctx context.Context) []bookmark.Bookmark {
	args := m.Called(ctx)
	bookmarks, _ := args.Get(0).([]bookmark.Bookmark)
	return bookmarks
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CurrentUser(ctx context.Context) (user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.User), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) GoogleAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, code string) (auth.TokenPair, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (user.User, auth.Claims, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(user.User), args.Get(1).(auth.Claims), args.Error(2)
}

func (m *MockAuthService) Identify(ctx context.Context, c auth.Claims) (user.User, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(user.User), args.Error(1)
}

// withUser matches a context carrying the user with the given id.
func withUser(id string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		u, ok := user.FromContext(ctx)
		return ok && u.ID == id
	})
}

// anonymous matches a context without a user.
func anonymous() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := user.FromContext(ctx)
		return !ok
	})
}
