// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateUserProfileRequest struct {
	Username        string                 `json:"username,omitempty" validate:"omitempty,username"`
	Bio             string                 `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Language        string                 `json:"language,omitempty" validate:"omitempty,max=10"`
	PreferredGroups []string               `json:"preferred_groups,omitempty"`
	ProfileData     map[string]interface{} `json:"profile_data,omitempty"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// GetPublicProfile exposes only the fields other marketplace users may see.
func (s *UserService) GetPublicProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Select("id, username, avatar_url, bio, preferred_groups, rating, review_count, created_at").
		First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateUserProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if req.Username != "" && req.Username != user.Username {
		var existing models.User
		if err := s.db.Where("username = ? AND id != ?", req.Username, userID).First(&existing).Error; err == nil {
			return nil, errors.New("username already taken")
		}
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Language != "" {
		user.Language = req.Language
	}
	if req.PreferredGroups != nil {
		user.PreferredGroups = pq.StringArray(req.PreferredGroups)
	}
	if req.ProfileData != nil {
		if user.ProfileData == nil {
			user.ProfileData = make(models.JSONB)
		}
		for key, value := range req.ProfileData {
			user.ProfileData[key] = value
		}
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}

func (s *UserService) UpdateAvatar(userID uuid.UUID, avatarURL string) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
}

func (s *UserService) ListUsers(params *utils.PaginationParams, status string) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := query.Scopes(utils.ApplySort(params), utils.ApplyPagination(params)).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (s *UserService) UpdateUserStatus(userID uuid.UUID, status models.UserStatus) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update user status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return nil
}
