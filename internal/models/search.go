// internal/models/search.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchHistory keeps one row per (user, normalized query). The unique index
// backs the ON CONFLICT upsert in the recorder, so repeat searches bump
// SearchCount instead of inserting duplicates.
type SearchHistory struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_search_history_user_query"`
	Query       string    `json:"query" gorm:"size:255;not null;uniqueIndex:idx_search_history_user_query"`
	Filters     JSONB     `json:"filters" gorm:"type:jsonb"`
	ResultCount int64     `json:"result_count" gorm:"default:0"`
	SearchCount int64     `json:"search_count" gorm:"default:1"`
	SearchedAt  time.Time `json:"searched_at" gorm:"index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (SearchHistory) TableName() string {
	return "search_histories"
}
