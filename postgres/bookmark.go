package postgres

import (
	"context"
	"fmt"
	"time"

	"gomovies/bookmark"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkModel represents the database model for bookmarks.
// (user_id, movie_id) is unique.
type BookmarkModel struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:bookmarks_user_movie_key"`
	MovieID   int       `gorm:"not null;uniqueIndex:bookmarks_user_movie_key"`
	Title     string    `gorm:"not null"`
	PosterURL string    `gorm:"column:poster_url;not null;default:''"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (BookmarkModel) TableName() string {
	return "bookmarks"
}

// BookmarkRepository implements [bookmark.Repository].
type BookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) Exists(ctx context.Context, userID string, movieID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookmarkModel{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("postgres: check bookmark: %w", err)
	}
	return count > 0, nil
}

// Add implements [bookmark.Repository]. A second add of the same movie is
// absorbed by ON CONFLICT DO NOTHING.
func (r *BookmarkRepository) Add(ctx context.Context, b bookmark.Bookmark) error {
	model := BookmarkModel{
		ID:        b.ID,
		UserID:    b.UserID,
		MovieID:   b.MovieID,
		Title:     b.Title,
		PosterURL: b.PosterURL,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoNothing: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("postgres: add bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) Remove(ctx context.Context, userID string, movieID int) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&BookmarkModel{}).Error
	if err != nil {
		return fmt.Errorf("postgres: remove bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]bookmark.Bookmark, error) {
	var models []BookmarkModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: list bookmarks: %w", err)
	}

	bookmarks := make([]bookmark.Bookmark, len(models))
	for i, model := range models {
		bookmarks[i] = bookmark.Bookmark{
			ID:        model.ID,
			UserID:    model.UserID,
			MovieID:   model.MovieID,
			Title:     model.Title,
			PosterURL: model.PosterURL,
			CreatedAt: model.CreatedAt,
		}
	}
	return bookmarks, nil
}
