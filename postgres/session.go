package postgres

import (
	"context"
	"errors"
	"time"

	"gomovies/auth"

	"gorm.io/gorm"
)

// SessionModel represents the database model for sign-in sessions.
type SessionModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// SessionRepository implements [auth.SessionRepository].
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession implements [auth.SessionRepository].
func (r *SessionRepository) CreateSession(ctx context.Context, s auth.Session) error {
	model := SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt.UTC(),
		CreatedAt: s.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// GetSession implements [auth.SessionRepository].
func (r *SessionRepository) GetSession(ctx context.Context, id string) (auth.Session, error) {
	var model SessionModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, err
	}

	return auth.Session{
		ID:        model.ID,
		UserID:    model.UserID,
		ExpiresAt: model.ExpiresAt.UTC(),
		CreatedAt: model.CreatedAt.UTC(),
	}, nil
}

// DeleteSession implements [auth.SessionRepository]. Deleting a missing
// session is not an error.
func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&SessionModel{}).Error
}

// DeleteExpired removes sessions that expired before now and reports how many went.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&SessionModel{})
	return result.RowsAffected, result.Error
}
