// internal/services/group_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type GroupService struct {
	db *gorm.DB
}

type CreateGroupRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	Agency       string   `json:"agency,omitempty" validate:"omitempty,max=100"`
	DebutYear    int      `json:"debut_year,omitempty" validate:"omitempty,min=1990,max=2100"`
	Members      []string `json:"members,omitempty"`
	ProfileImage string   `json:"profile_image,omitempty" validate:"omitempty,url"`
	Genres       []string `json:"genres,omitempty"`
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) ListGroups(params *utils.PaginationParams, search string) ([]models.KpopGroup, int64, error) {
	query := s.db.Model(&models.KpopGroup{}).Where("is_active = ?", true)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	var groups []models.KpopGroup
	err := query.Order("follower_count DESC, name ASC").
		Scopes(utils.ApplyPagination(params)).
		Find(&groups).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}

	return groups, total, nil
}

func (s *GroupService) GetGroup(groupID uuid.UUID) (*models.KpopGroup, error) {
	var group models.KpopGroup
	if err := s.db.Preload("Albums").First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("group not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &group, nil
}

func (s *GroupService) CreateGroup(req *CreateGroupRequest) (*models.KpopGroup, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.KpopGroup
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, errors.New("group already exists")
	}

	group := models.KpopGroup{
		Name:         req.Name,
		Agency:       req.Agency,
		DebutYear:    req.DebutYear,
		Members:      pq.StringArray(req.Members),
		ProfileImage: req.ProfileImage,
		Genres:       pq.StringArray(req.Genres),
		IsActive:     true,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return &group, nil
}

// FollowGroup is idempotent via ON CONFLICT DO NOTHING; follower_count
// only moves when a new follow row was actually inserted.
func (s *GroupService) FollowGroup(userID, groupID uuid.UUID) error {
	var group models.KpopGroup
	if err := s.db.Select("id").First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("group not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		follow := models.GroupFollow{UserID: userID, GroupID: groupID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
		if result.Error != nil {
			return fmt.Errorf("failed to follow group: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.KpopGroup{}).Where("id = ?", groupID).
			Update("follower_count", gorm.Expr("follower_count + 1")).Error
	})
}

func (s *GroupService) UnfollowGroup(userID, groupID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Where("user_id = ? AND group_id = ?", userID, groupID).
			Delete(&models.GroupFollow{})
		if result.Error != nil {
			return fmt.Errorf("failed to unfollow group: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("follow not found")
		}
		return tx.Model(&models.KpopGroup{}).Where("id = ? AND follower_count > 0", groupID).
			Update("follower_count", gorm.Expr("follower_count - 1")).Error
	})
}

func (s *GroupService) ListFollowedGroups(userID uuid.UUID) ([]models.KpopGroup, error) {
	var groups []models.KpopGroup
	err := s.db.Joins("JOIN group_follows ON group_follows.group_id = kpop_groups.id").
		Where("group_follows.user_id = ? AND group_follows.deleted_at IS NULL", userID).
		Order("kpop_groups.name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followed groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) ListGroupAlbums(groupID uuid.UUID) ([]models.Album, error) {
	var albums []models.Album
	err := s.db.Where("group_id = ?", groupID).
		Order("release_date DESC NULLS LAST").
		Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}
