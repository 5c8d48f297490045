// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type PlatformStats struct {
	TotalUsers       int64   `json:"total_users"`
	ActiveUsers      int64   `json:"active_users"`
	TotalProducts    int64   `json:"total_products"`
	ActiveListings   int64   `json:"active_listings"`
	TotalTransacted  float64 `json:"total_transacted"`
	CompletedSales   int64   `json:"completed_sales"`
	PendingReports   int64   `json:"pending_reports"`
	SearchesToday    int64   `json:"searches_today"`
	NewUsersThisWeek int64   `json:"new_users_this_week"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}
	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Product{}).Where("is_available = ?", true).
		Count(&stats.ActiveListings).Error; err != nil {
		return nil, fmt.Errorf("failed to count active listings: %w", err)
	}

	var sales struct {
		Total float64
		Count int64
	}
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ?", models.TransactionStatusCompleted).
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	stats.TotalTransacted = sales.Total
	stats.CompletedSales = sales.Count

	if err := s.db.Model(&models.Report{}).Where("status = ?", models.ReportStatusPending).
		Count(&stats.PendingReports).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	if err := s.db.Model(&models.SearchHistory{}).Where("searched_at >= ?", today).
		Count(&stats.SearchesToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count searches: %w", err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := s.db.Model(&models.User{}).Where("created_at >= ?", weekAgo).
		Count(&stats.NewUsersThisWeek).Error; err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	return stats, nil
}

// TopSearchQueries aggregates the normalized history rows across users.
func (s *AdminService) TopSearchQueries(limit int) ([]map[string]interface{}, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows := []struct {
		Query string
		Total int64
	}{}
	err := s.db.Model(&models.SearchHistory{}).
		Select("query, SUM(search_count) AS total").
		Group("query").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate search queries: %w", err)
	}

	result := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		result = append(result, map[string]interface{}{
			"query": row.Query,
			"count": row.Total,
		})
	}
	return result, nil
}

func (s *AdminService) ListAuditLogs(params *utils.PaginationParams, action string) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	err := query.Order("created_at DESC").
		Scopes(utils.ApplyPagination(params)).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return logs, total, nil
}
