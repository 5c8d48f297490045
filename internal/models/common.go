// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
	UserStatusDeleted   UserStatus = "deleted"
)

type ProductCondition string

const (
	ConditionNew     ProductCondition = "new"
	ConditionLikeNew ProductCondition = "like_new"
	ConditionGood    ProductCondition = "good"
	ConditionFair    ProductCondition = "fair"
	ConditionPoor    ProductCondition = "poor"
)

func (c ProductCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type ProductType string

const (
	ProductTypeAlbum      ProductType = "album"
	ProductTypePhotocard  ProductType = "photocard"
	ProductTypeLightstick ProductType = "lightstick"
	ProductTypeClothing   ProductType = "clothing"
	ProductTypePoster     ProductType = "poster"
	ProductTypeOther      ProductType = "other"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeAlbum, ProductTypePhotocard, ProductTypeLightstick,
		ProductTypeClothing, ProductTypePoster, ProductTypeOther:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyKRW Currency = "KRW"
)

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPopular   SortKey = "popular"
)

type NotificationType string

const (
	NotificationTypeNewFollower    NotificationType = "new_follower"
	NotificationTypeNewReview      NotificationType = "new_review"
	NotificationTypeProductSold    NotificationType = "product_sold"
	NotificationTypeProductFavored NotificationType = "product_favorited"
	NotificationTypeReportResolved NotificationType = "report_resolved"
	NotificationTypeSystem         NotificationType = "system"
)

type ReportTargetType string

const (
	ReportTargetProduct ReportTargetType = "product"
	ReportTargetUser    ReportTargetType = "user"
	ReportTargetReview  ReportTargetType = "review"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)
