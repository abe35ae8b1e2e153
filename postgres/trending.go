package postgres

import (
	"context"
	"fmt"

	"gomovies/trending"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrendingModel represents the database model for the search aggregate.
// searchterm is unique; count only grows.
type TrendingModel struct {
	ID         uint   `gorm:"primaryKey"`
	SearchTerm string `gorm:"column:searchterm;not null;unique"`
	MovieID    int    `gorm:"column:movie_id;not null"`
	Title      string `gorm:"not null"`
	PosterURL  string `gorm:"column:poster_url;not null;default:''"`
	Count      int    `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (TrendingModel) TableName() string {
	return "trending_movies"
}

// TrendingRepository implements [trending.Repository].
type TrendingRepository struct {
	db *gorm.DB
}

// NewTrendingRepository creates a new trending repository
func NewTrendingRepository(db *gorm.DB) *TrendingRepository {
	return &TrendingRepository{db: db}
}

// Increment inserts entry or bumps the existing row's count in one statement:
//
//	INSERT ... ON CONFLICT (searchterm) DO UPDATE SET count = trending_movies.count + 1
//
// The movie stored by the first search of a term is kept.
func (r *TrendingRepository) Increment(ctx context.Context, entry trending.Movie) error {
	model := TrendingModel{
		SearchTerm: entry.SearchTerm,
		MovieID:    entry.MovieID,
		Title:      entry.Title,
		PosterURL:  entry.PosterURL,
		Count:      1,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "searchterm"}},
		DoUpdates: clause.Set{{
			Column: clause.Column{Name: "count"},
			Value:  gorm.Expr("trending_movies.count + 1"),
		}},
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("postgres: increment search count: %w", err)
	}
	return nil
}

// Top implements [trending.Repository]. Ties keep insertion order.
func (r *TrendingRepository) Top(ctx context.Context, limit int) ([]trending.Movie, error) {
	var models []TrendingModel
	err := r.db.WithContext(ctx).
		Order("count DESC").
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: top trending: %w", err)
	}

	movies := make([]trending.Movie, len(models))
	for i, model := range models {
		movies[i] = trending.Movie{
			SearchTerm: model.SearchTerm,
			MovieID:    model.MovieID,
			Title:      model.Title,
			PosterURL:  model.PosterURL,
			Count:      model.Count,
		}
	}
	return movies, nil
}
