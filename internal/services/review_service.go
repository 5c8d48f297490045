// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type ReviewService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type CreateReviewRequest struct {
	SellerID  string `json:"seller_id" validate:"required,uuid"`
	ProductID string `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

func NewReviewService(db *gorm.DB, notifications *NotificationService) *ReviewService {
	return &ReviewService{db: db, notifications: notifications}
}

// CreateReview records a rating for a seller and recomputes the seller's
// denormalized aggregate in the same transaction. Self-reviews and
// duplicate (reviewer, seller, product) reviews are rejected.
func (s *ReviewService) CreateReview(reviewerID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, errors.New("invalid seller id")
	}
	if sellerID == reviewerID {
		return nil, errors.New("cannot review yourself")
	}

	var productID *uuid.UUID
	if req.ProductID != "" {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, errors.New("invalid product id")
		}
		productID = &id
	}

	var seller models.User
	if err := s.db.Select("id, username").First(&seller, sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("seller not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if productID != nil {
		var product models.Product
		if err := s.db.Select("id, seller_id").First(&product, *productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("product not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		if product.SellerID != sellerID {
			return nil, errors.New("product does not belong to seller")
		}
	}

	dupQuery := s.db.Model(&models.Review{}).
		Where("reviewer_id = ? AND seller_id = ?", reviewerID, sellerID)
	if productID != nil {
		dupQuery = dupQuery.Where("product_id = ?", *productID)
	} else {
		dupQuery = dupQuery.Where("product_id IS NULL")
	}
	var existing int64
	if err := dupQuery.Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return nil, errors.New("review already exists")
	}

	review := models.Review{
		ReviewerID: reviewerID,
		SellerID:   sellerID,
		ProductID:  productID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return recomputeSellerAggregates(tx, sellerID)
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(sellerID, models.NotificationTypeNewReview,
		"New review received",
		fmt.Sprintf("You received a %d star review", req.Rating),
		models.JSONB{"review_id": review.ID.String(), "rating": req.Rating})

	return &review, nil
}

func (s *ReviewService) DeleteReview(reviewID, userID uuid.UUID, isAdmin bool) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("review not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if review.ReviewerID != userID && !isAdmin {
		return errors.New("access denied")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return recomputeSellerAggregates(tx, review.SellerID)
	})
}

func (s *ReviewService) ListSellerReviews(sellerID uuid.UUID, params *utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("seller_id = ?", sellerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	err := query.Preload("Reviewer").
		Order("created_at DESC").
		Scopes(utils.ApplyPagination(params)).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, total, nil
}
