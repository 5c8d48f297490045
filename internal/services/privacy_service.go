// internal/services/privacy_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
)

// PrivacyService implements the data subject rights endpoints: a full
// export of everything stored about a user, and account erasure.
type PrivacyService struct {
	db *gorm.DB
}

type UserDataExport struct {
	ExportedAt    time.Time              `json:"exported_at"`
	Profile       *models.User           `json:"profile"`
	Products      []models.Product       `json:"products"`
	Favorites     []models.Favorite      `json:"favorites"`
	SearchHistory []models.SearchHistory `json:"search_history"`
	Reviews       []models.Review        `json:"reviews_written"`
	GroupFollows  []models.KpopGroup     `json:"followed_groups"`
	Notifications []models.Notification  `json:"notifications"`
	Transactions  []models.Transaction   `json:"transactions"`
}

func NewPrivacyService(db *gorm.DB) *PrivacyService {
	return &PrivacyService{db: db}
}

// ExportUserData collects every record tied to the account into one
// JSON-serializable bundle.
func (s *PrivacyService) ExportUserData(userID uuid.UUID) (*UserDataExport, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	user.PasswordHash = ""

	export := &UserDataExport{
		ExportedAt: time.Now(),
		Profile:    &user,
	}

	if err := s.db.Where("seller_id = ?", userID).Find(&export.Products).Error; err != nil {
		return nil, fmt.Errorf("failed to export products: %w", err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&export.Favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to export favorites: %w", err)
	}
	if err := s.db.Where("user_id = ?", userID).Order("searched_at DESC").Find(&export.SearchHistory).Error; err != nil {
		return nil, fmt.Errorf("failed to export search history: %w", err)
	}
	if err := s.db.Where("reviewer_id = ?", userID).Find(&export.Reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to export reviews: %w", err)
	}
	if err := s.db.Joins("JOIN group_follows ON group_follows.group_id = kpop_groups.id").
		Where("group_follows.user_id = ?", userID).
		Find(&export.GroupFollows).Error; err != nil {
		return nil, fmt.Errorf("failed to export group follows: %w", err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&export.Notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to export notifications: %w", err)
	}
	if err := s.db.Where("seller_id = ? OR buyer_id = ?", userID, userID).Find(&export.Transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}

	return export, nil
}

// EraseAccount removes the user's presence from the marketplace. Personal
// data and activity are deleted; completed transactions stay for bookkeeping
// with the account row anonymized rather than removed, so foreign keys keep
// resolving.
func (s *PrivacyService) EraseAccount(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Undo the user's contribution to denormalized counters before
		// deleting the rows that back them.
		if err := tx.Exec(`
			UPDATE products SET favorite_count = GREATEST(favorite_count - 1, 0)
			WHERE id IN (SELECT product_id FROM product_favorites WHERE user_id = ?)`,
			userID).Error; err != nil {
			return fmt.Errorf("failed to adjust favorite counts: %w", err)
		}
		if err := tx.Exec(`
			UPDATE kpop_groups SET follower_count = GREATEST(follower_count - 1, 0)
			WHERE id IN (SELECT group_id FROM group_follows WHERE user_id = ?)`,
			userID).Error; err != nil {
			return fmt.Errorf("failed to adjust follower counts: %w", err)
		}

		for _, target := range []interface{}{
			&models.Favorite{}, &models.GroupFollow{},
			&models.SearchHistory{}, &models.Notification{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(target).Error; err != nil {
				return fmt.Errorf("failed to erase user records: %w", err)
			}
		}

		// Sellers whose aggregates include this user's reviews need a
		// recompute after the reviews disappear.
		var affectedSellers []uuid.UUID
		if err := tx.Model(&models.Review{}).Where("reviewer_id = ?", userID).
			Distinct().Pluck("seller_id", &affectedSellers).Error; err != nil {
			return fmt.Errorf("failed to find reviewed sellers: %w", err)
		}
		if err := tx.Unscoped().Where("reviewer_id = ? OR seller_id = ?", userID, userID).
			Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to erase reviews: %w", err)
		}
		for _, sellerID := range affectedSellers {
			if sellerID == userID {
				continue
			}
			if err := recomputeSellerAggregates(tx, sellerID); err != nil {
				return err
			}
		}

		if err := tx.Where("seller_id = ?", userID).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to erase products: %w", err)
		}

		anonymized := map[string]interface{}{
			"email":            fmt.Sprintf("deleted-%s@erased.invalid", userID.String()[:8]),
			"username":         fmt.Sprintf("deleted_%s", userID.String()[:8]),
			"password_hash":    "",
			"avatar_url":       "",
			"bio":              "",
			"preferred_groups": nil,
			"profile_data":     nil,
			"status":           models.UserStatusDeleted,
			"rating":           0,
			"review_count":     0,
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(anonymized).Error
	})
	if err != nil {
		return err
	}

	logrus.WithField("user_id", userID).Info("Account erased")
	return nil
}

// recomputeSellerAggregates rederives rating and review_count from the
// review rows instead of adjusting them incrementally, so the aggregates
// cannot drift after deletes.
func recomputeSellerAggregates(tx *gorm.DB, sellerID uuid.UUID) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("seller_id = ?", sellerID).
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	return tx.Model(&models.User{}).Where("id = ?", sellerID).
		Updates(map[string]interface{}{
			"rating":       stats.Avg,
			"review_count": stats.Count,
		}).Error
}
