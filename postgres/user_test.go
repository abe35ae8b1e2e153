package postgres_test

import (
	"context"
	"testing"
	"time"

	"gomovies/auth"
	"gomovies/postgres"
	"gomovies/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	dbName, dbUser, dbPass := "user_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, user.User{
		Email:     "alice@example.com",
		Name:      "Alice",
		AvatarURL: "https://lh3.example.com/a.png",
	})
	require.NoError(t, err)

	t.Run("generates id on create", func(t *testing.T) {
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("finds by email and id", func(t *testing.T) {
		byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, created.ID, byEmail.ID)
		assert.Equal(t, "Alice", byID.Name)
	})

	t.Run("reports missing user", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		_, err = repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := repo.CreateUser(ctx, user.User{Email: "alice@example.com"})
		assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := repo.CreateUser(ctx, user.User{Email: "alice"})
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("updates profile", func(t *testing.T) {
		updated, err := repo.UpdateProfile(ctx, created.ID, "Alice B", "https://lh3.example.com/b.png")

		require.NoError(t, err)
		assert.Equal(t, "Alice B", updated.Name)
		assert.Equal(t, "https://lh3.example.com/b.png", updated.AvatarURL)
	})

	t.Run("update of missing user fails", func(t *testing.T) {
		_, err := repo.UpdateProfile(ctx, uuid.NewString(), "x", "")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestSessionRepository(t *testing.T) {
	dbName, dbUser, dbPass := "session_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewSessionRepository(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "carol@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("creates and reads a session", func(t *testing.T) {
		s := auth.Session{ID: uuid.NewString(), UserID: owner.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, repo.CreateSession(ctx, s))

		got, err := repo.GetSession(ctx, s.ID)

		require.NoError(t, err)
		assert.Equal(t, s.UserID, got.UserID)
		assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))
	})

	t.Run("deleted session is gone", func(t *testing.T) {
		s := auth.Session{ID: uuid.NewString(), UserID: owner.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, repo.CreateSession(ctx, s))

		require.NoError(t, repo.DeleteSession(ctx, s.ID))

		_, err := repo.GetSession(ctx, s.ID)
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})

	t.Run("purges expired sessions", func(t *testing.T) {
		expired := auth.Session{ID: uuid.NewString(), UserID: owner.ID, CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}
		require.NoError(t, repo.CreateSession(ctx, expired))

		n, err := repo.DeleteExpired(ctx, now)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))
		_, err = repo.GetSession(ctx, expired.ID)
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})
}
