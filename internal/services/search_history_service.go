// internal/services/search_history_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
)

// SearchHistoryService keeps one row per (user, normalized query). Records
// are written fire-and-forget from the search path: a failed write must never
// fail the search that triggered it, so Record logs and returns instead of
// propagating.
type SearchHistoryService struct {
	db *gorm.DB
}

func NewSearchHistoryService(db *gorm.DB) *SearchHistoryService {
	return &SearchHistoryService{db: db}
}

// NormalizeQuery lowercases a raw query and collapses runs of whitespace so
// repeat searches for the same text land on a single history row.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (s *SearchHistoryService) Record(userID uuid.UUID, rawQuery string, filters models.JSONB, resultCount int64) {
	query := NormalizeQuery(rawQuery)
	if query == "" {
		return
	}

	// Last write wins on the upserted row; the unique (user_id, query) index
	// makes concurrent writers converge without application-level locking.
	err := s.db.Exec(`
		INSERT INTO search_histories (id, user_id, query, filters, result_count, search_count, searched_at, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, ?, 1, NOW(), NOW(), NOW())
		ON CONFLICT (user_id, query) DO UPDATE SET
			search_count = search_histories.search_count + 1,
			filters = EXCLUDED.filters,
			result_count = EXCLUDED.result_count,
			searched_at = EXCLUDED.searched_at,
			updated_at = NOW()
	`, userID, query, filters, resultCount).Error

	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"query":   query,
		}).Warn("Failed to record search history")
	}
}

func (s *SearchHistoryService) List(userID uuid.UUID, limit int) ([]models.SearchHistory, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var entries []models.SearchHistory
	if err := s.db.Where("user_id = ?", userID).
		Order("searched_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch search history: %w", err)
	}

	return entries, nil
}

// Delete removes a single entry scoped to its owner. An entry that exists but
// belongs to another user is indistinguishable from a missing one.
func (s *SearchHistoryService) Delete(userID, entryID uuid.UUID) error {
	result := s.db.Unscoped().
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.SearchHistory{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete search history entry: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("search history entry not found")
	}

	return nil
}

func (s *SearchHistoryService) Clear(userID uuid.UUID) error {
	if err := s.db.Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.SearchHistory{}).Error; err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}

	return nil
}
