package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reviewlens/backend/internal/models"
	"github.com/reviewlens/backend/pkg/response"
	"gorm.io/gorm"
)

// ReviewStore is the persistence layer for review rows. Every call commits
// before returning; there is no buffering across calls.
type ReviewStore struct {
	db *gorm.DB
}

func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Limit    int      `form:"limit" binding:"omitempty,min=1"`
	MinScore *float64 `form:"min_score"`
	MaxScore *float64 `form:"max_score"`
	Language string   `form:"language"`
}

// Insert persists a new review and returns its assigned id. A nil issue
// list is normalized to an empty one before writing.
func (s *ReviewStore) Insert(review *models.Review) (uint, error) {
	if review.Issues == nil {
		review.Issues = models.IssueList{}
	}
	if err := s.db.Create(review).Error; err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	return review.ID, nil
}

// Get returns the review with the given id.
func (s *ReviewStore) Get(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("review not found")
		}
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}
	return &review, nil
}

// List returns all reviews in insertion order.
func (s *ReviewStore) List() ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListFiltered returns reviews in insertion order, narrowed by the filter.
func (s *ReviewStore) ListFiltered(f *ListFilter) ([]models.Review, error) {
	query := s.db.Model(&models.Review{})

	if f.MinScore != nil {
		query = query.Where("score >= ?", *f.MinScore)
	}
	if f.MaxScore != nil {
		query = query.Where("score <= ?", *f.MaxScore)
	}
	if f.Language != "" {
		query = query.Where("language = ?", f.Language)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var reviews []models.Review
	if err := query.Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListBetween returns reviews created within [start, end) in insertion order.
func (s *ReviewStore) ListBetween(start, end time.Time) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews between: %w", err)
	}
	return reviews, nil
}

// Delete removes the review with the given id. Existence is checked first
// so a missing row reports NotFound rather than a silent no-op.
func (s *ReviewStore) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Review{}, id).Error; err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	return nil
}

// DeleteAll removes every review and returns the number of deleted rows.
// The id sequence is left alone: identifiers are never reused.
func (s *ReviewStore) DeleteAll() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&models.Review{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete all reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteOlderThan removes reviews created before the cutoff and returns the
// number of deleted rows. Used by the retention job.
func (s *ReviewStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.Review{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete old reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Search returns reviews whose filename contains the query, matched
// case-insensitively, in insertion order.
func (s *ReviewStore) Search(q string) ([]models.Review, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	var reviews []models.Review
	err := s.db.
		Where("LOWER(filename) LIKE ?", pattern).
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("search reviews: %w", err)
	}
	return reviews, nil
}

// Count returns the total number of stored reviews.
func (s *ReviewStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.Review{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}
