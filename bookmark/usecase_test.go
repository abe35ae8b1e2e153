package bookmark_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"gomovies/bookmark"
	"gomovies/movie"
	"gomovies/pkg/sentry/sentrytest"
	"gomovies/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) Exists(ctx context.Context, userID string, movieID int) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkRepository) Add(ctx context.Context, b bookmark.Bookmark) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookmarkRepository) Remove(ctx context.Context, userID string, movieID int) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockBookmarkRepository) ListByUser(ctx context.Context, userID string) ([]bookmark.Bookmark, error) {
	args := m.Called(ctx, userID)
	bookmarks, _ := args.Get(0).([]bookmark.Bookmark)
	return bookmarks, args.Error(1)
}

var (
	alice  = user.User{ID: "3f7c1a52-8f0e-4c43-9d8e-0b6d7c6b2a11", Email: "alice@example.com"}
	batman = movie.Movie{ID: 268, Title: "Batman", PosterPath: "/batman.jpg"}
)

func newUsecase() (*bookmark.Usecase, *MockBookmarkRepository) {
	r := new(MockBookmarkRepository)
	return bookmark.NewUsecase(r, slog.New(slog.NewTextHandler(io.Discard, nil))), r
}

func signedIn() context.Context {
	return user.NewContext(context.Background(), alice)
}

func TestIsBookmarked(t *testing.T) {
	t.Run("should report stored bookmark", func(t *testing.T) {
		uc, r := newUsecase()
		r.On("Exists", mock.Anything, alice.ID, 268).Return(true, nil).Once()

		assert.True(t, uc.IsBookmarked(signedIn(), 268))
		r.AssertExpectations(t)
	})

	t.Run("should be false for anonymous user", func(t *testing.T) {
		uc, r := newUsecase()

		assert.False(t, uc.IsBookmarked(context.Background(), 268))
		r.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should be false and report on store failure", func(t *testing.T) {
		transport := sentrytest.Capture(t)
		uc, r := newUsecase()
		r.On("Exists", mock.Anything, alice.ID, 268).Return(true, errors.New("boom")).Once()

		assert.False(t, uc.IsBookmarked(signedIn(), 268))

		events := transport.Events()
		require.Len(t, events, 1)
		assert.Equal(t, map[string]interface{}{
			"op":       "bookmark.IsBookmarked",
			"user_id":  alice.ID,
			"movie_id": 268,
		}, events[0].Extra)
	})
}

func TestAddBookmark(t *testing.T) {
	t.Run("should store bookmark with thumbnail url", func(t *testing.T) {
		uc, r := newUsecase()
		want := bookmark.Bookmark{
			UserID:    alice.ID,
			MovieID:   268,
			Title:     "Batman",
			PosterURL: "https://image.tmdb.org/t/p/w500/batman.jpg",
		}
		r.On("Add", mock.Anything, want).Return(nil).Once()

		err := uc.AddBookmark(signedIn(), batman)

		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("should require login", func(t *testing.T) {
		uc, r := newUsecase()

		err := uc.AddBookmark(context.Background(), batman)

		assert.Equal(t, user.ErrNotLoggedIn, err)
		r.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should reject movie without id", func(t *testing.T) {
		uc, _ := newUsecase()

		err := uc.AddBookmark(signedIn(), movie.Movie{Title: "Batman"})

		assert.Equal(t, movie.ErrInvalidID, err)
	})

	t.Run("should reject movie without title", func(t *testing.T) {
		uc, _ := newUsecase()

		err := uc.AddBookmark(signedIn(), movie.Movie{ID: 268})

		assert.Equal(t, bookmark.ErrTitleRequired, err)
	})

	t.Run("should return store failure", func(t *testing.T) {
		uc, r := newUsecase()
		storeErr := errors.New("unavailable")
		r.On("Add", mock.Anything, mock.Anything).Return(storeErr).Once()

		assert.ErrorIs(t, uc.AddBookmark(signedIn(), batman), storeErr)
	})
}

func TestRemoveBookmark(t *testing.T) {
	t.Run("should remove for current user", func(t *testing.T) {
		uc, r := newUsecase()
		r.On("Remove", mock.Anything, alice.ID, 268).Return(nil).Once()

		assert.NoError(t, uc.RemoveBookmark(signedIn(), 268))
		r.AssertExpectations(t)
	})

	t.Run("should require login", func(t *testing.T) {
		uc, _ := newUsecase()

		assert.Equal(t, user.ErrNotLoggedIn, uc.RemoveBookmark(context.Background(), 268))
	})

	t.Run("should reject invalid id", func(t *testing.T) {
		uc, _ := newUsecase()

		assert.Equal(t, movie.ErrInvalidID, uc.RemoveBookmark(signedIn(), 0))
	})
}

func TestGetUserBookmarks(t *testing.T) {
	t.Run("should list user bookmarks", func(t *testing.T) {
		uc, r := newUsecase()
		stored := []bookmark.Bookmark{{ID: "b1", UserID: alice.ID, MovieID: 268, Title: "Batman"}}
		r.On("ListByUser", mock.Anything, alice.ID).Return(stored, nil).Once()

		assert.Equal(t, stored, uc.GetUserBookmarks(signedIn()))
	})

	t.Run("should be empty for anonymous user", func(t *testing.T) {
		uc, _ := newUsecase()

		result := uc.GetUserBookmarks(context.Background())

		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("should be empty and report on store failure", func(t *testing.T) {
		transport := sentrytest.Capture(t)
		uc, r := newUsecase()
		r.On("ListByUser", mock.Anything, alice.ID).Return(nil, errors.New("boom")).Once()

		result := uc.GetUserBookmarks(signedIn())

		assert.NotNil(t, result)
		assert.Empty(t, result)
		events := transport.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "bookmark.GetUserBookmarks", events[0].Extra["op"])
		assert.Equal(t, alice.ID, events[0].Extra["user_id"])
	})
}

func TestBookmarkMovie(t *testing.T) {
	b := bookmark.Bookmark{MovieID: 268, Title: "Batman", PosterURL: "https://image.tmdb.org/t/p/w500/batman.jpg"}

	m := b.Movie()

	assert.Equal(t, 268, m.ID)
	assert.Equal(t, "/batman.jpg", m.PosterPath)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/batman.jpg", m.Thumbnail())
}
