// internal/services/favorite_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite is idempotent. The insert uses ON CONFLICT DO NOTHING so
// concurrent requests for the same pair cannot double-count, and the
// denormalized favorite_count only moves when a row was actually inserted.
func (s *FavoriteService) AddFavorite(userID, productID uuid.UUID) error {
	var product models.Product
	if err := s.db.Select("id, seller_id").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	if product.SellerID == userID {
		return errors.New("cannot favorite your own product")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		favorite := models.Favorite{UserID: userID, ProductID: productID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite)
		if result.Error != nil {
			return fmt.Errorf("failed to add favorite: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Product{}).Where("id = ?", productID).
			Update("favorite_count", gorm.Expr("favorite_count + 1")).Error
	})
}

func (s *FavoriteService) RemoveFavorite(userID, productID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.Favorite{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove favorite: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("favorite not found")
		}
		return tx.Model(&models.Product{}).Where("id = ? AND favorite_count > 0", productID).
			Update("favorite_count", gorm.Expr("favorite_count - 1")).Error
	})
}

func (s *FavoriteService) ListFavorites(userID uuid.UUID, params *utils.PaginationParams) ([]models.Favorite, int64, error) {
	query := s.db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	var favorites []models.Favorite
	err := query.Preload("Product").Preload("Product.Seller").
		Order("created_at DESC").
		Scopes(utils.ApplyPagination(params)).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, total, nil
}

func (s *FavoriteService) IsFavorited(userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
