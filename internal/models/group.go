// internal/models/group.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// KpopGroup is a directory entity referenced by product listings for
// filtering, suggestions and display. Seed data comes from the Spotify
// collector, not from user input.
type KpopGroup struct {
	BaseModel
	Name          string         `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Agency        string         `json:"agency" gorm:"size:100"`
	DebutYear     int            `json:"debut_year"`
	Members       pq.StringArray `json:"members" gorm:"type:text[]"`
	ProfileImage  string         `json:"profile_image" gorm:"size:512"`
	Genres        pq.StringArray `json:"genres" gorm:"type:text[]"`
	FollowerCount int64          `json:"follower_count" gorm:"default:0"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`

	Albums []Album `json:"albums,omitempty" gorm:"foreignKey:GroupID"`
}

type Album struct {
	BaseModel
	GroupID     uuid.UUID  `json:"group_id" gorm:"type:uuid;not null;index"`
	GroupName   string     `json:"group_name" gorm:"size:100;index"`
	Title       string     `json:"title" gorm:"size:255;not null;index"`
	AlbumType   string     `json:"album_type" gorm:"size:20;default:'album'"`
	ReleaseDate *time.Time `json:"release_date"`
	CoverImage  string     `json:"cover_image" gorm:"size:512"`
	TotalTracks int        `json:"total_tracks"`

	Group KpopGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`
}

// GroupFollow links a user to a group they follow. The unique index makes
// the follow toggle idempotent at the store level.
type GroupFollow struct {
	BaseModel
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_follows_user_group"`
	GroupID uuid.UUID `json:"group_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_follows_user_group"`

	User  User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Group KpopGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`
}
