// internal/services/report_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type ReportService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type CreateReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=product user review"`
	TargetID   string `json:"target_id" validate:"required,uuid"`
	Reason     string `json:"reason" validate:"required,max=100"`
	Details    string `json:"details,omitempty" validate:"omitempty,max=2000"`
}

type ResolveReportRequest struct {
	AdminNotes     string `json:"admin_notes,omitempty" validate:"omitempty,max=2000"`
	SuspendProduct bool   `json:"suspend_product,omitempty"`
}

func NewReportService(db *gorm.DB, notifications *NotificationService) *ReportService {
	return &ReportService{db: db, notifications: notifications}
}

func (s *ReportService) CreateReport(reporterID uuid.UUID, req *CreateReportRequest) (*models.Report, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, errors.New("invalid target id")
	}
	targetType := models.ReportTargetType(req.TargetType)

	if err := s.verifyTarget(targetType, targetID); err != nil {
		return nil, err
	}

	var existing int64
	err = s.db.Model(&models.Report{}).
		Where("reporter_id = ? AND target_type = ? AND target_id = ? AND status = ?",
			reporterID, targetType, targetID, models.ReportStatusPending).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return nil, errors.New("report already submitted")
	}

	report := models.Report{
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     req.Reason,
		Details:    req.Details,
		Status:     models.ReportStatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return &report, nil
}

func (s *ReportService) verifyTarget(targetType models.ReportTargetType, targetID uuid.UUID) error {
	var count int64
	var err error

	switch targetType {
	case models.ReportTargetProduct:
		err = s.db.Model(&models.Product{}).Where("id = ?", targetID).Count(&count).Error
	case models.ReportTargetUser:
		err = s.db.Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error
	case models.ReportTargetReview:
		err = s.db.Model(&models.Review{}).Where("id = ?", targetID).Count(&count).Error
	default:
		return errors.New("invalid target type")
	}

	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return errors.New("report target not found")
	}
	return nil
}

func (s *ReportService) ListReports(params *utils.PaginationParams, status string) ([]models.Report, int64, error) {
	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []models.Report
	err := query.Preload("Reporter").
		Order("created_at ASC").
		Scopes(utils.ApplyPagination(params)).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, total, nil
}

// ResolveReport closes a pending report. When the target is a product and
// the admin requested suspension, the listing is pulled from the catalog in
// the same transaction.
func (s *ReportService) ResolveReport(reportID, adminID uuid.UUID, req *ResolveReportRequest) (*models.Report, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var report models.Report
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("report not found")
			}
			return err
		}
		if report.Status != models.ReportStatusPending {
			return errors.New("report already handled")
		}

		now := time.Now()
		report.Status = models.ReportStatusResolved
		report.AdminNotes = req.AdminNotes
		report.ResolvedBy = &adminID
		report.ResolvedAt = &now
		if err := tx.Save(&report).Error; err != nil {
			return fmt.Errorf("failed to resolve report: %w", err)
		}

		if req.SuspendProduct && report.TargetType == models.ReportTargetProduct {
			if err := tx.Model(&models.Product{}).Where("id = ?", report.TargetID).
				Update("is_available", false).Error; err != nil {
				return fmt.Errorf("failed to suspend product: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(report.ReporterID, models.NotificationTypeReportResolved,
		"Report resolved",
		"Your report has been reviewed and resolved",
		models.JSONB{"report_id": report.ID.String()})

	return &report, nil
}

func (s *ReportService) DismissReport(reportID, adminID uuid.UUID, adminNotes string) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("report not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if report.Status != models.ReportStatusPending {
		return nil, errors.New("report already handled")
	}

	now := time.Now()
	report.Status = models.ReportStatusDismissed
	report.AdminNotes = adminNotes
	report.ResolvedBy = &adminID
	report.ResolvedAt = &now
	if err := s.db.Save(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to dismiss report: %w", err)
	}

	s.notifications.Notify(report.ReporterID, models.NotificationTypeReportResolved,
		"Report dismissed",
		"Your report has been reviewed and dismissed",
		models.JSONB{"report_id": report.ID.String()})

	return &report, nil
}
