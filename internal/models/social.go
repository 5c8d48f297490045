// internal/models/social.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a user-to-product bookmark. Uniqueness is enforced at the
// store level; the denormalized Product.FavoriteCount only moves through
// atomic expressions, never read-modify-write.
type Favorite struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product"`

	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Favorite) TableName() string {
	return "product_favorites"
}

type Review struct {
	BaseModel
	ReviewerID uuid.UUID  `json:"reviewer_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_seller_product"`
	SellerID   uuid.UUID  `json:"seller_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_seller_product;index"`
	ProductID  *uuid.UUID `json:"product_id" gorm:"type:uuid;uniqueIndex:idx_reviews_reviewer_seller_product"`
	Rating     int        `json:"rating" gorm:"not null"`
	Comment    string     `json:"comment" gorm:"type:text"`

	Reviewer User     `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Seller   User     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Product  *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Notification struct {
	BaseModel
	UserID  uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Type    NotificationType `json:"type" gorm:"type:varchar(50);not null;index"`
	Title   string           `json:"title" gorm:"size:255;not null"`
	Message string           `json:"message" gorm:"type:text;not null"`
	Data    JSONB            `json:"data" gorm:"type:jsonb"`
	IsRead  bool             `json:"is_read" gorm:"default:false;index"`
	ReadAt  *time.Time       `json:"read_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type Report struct {
	BaseModel
	ReporterID uuid.UUID        `json:"reporter_id" gorm:"type:uuid;not null;index"`
	TargetType ReportTargetType `json:"target_type" gorm:"type:varchar(20);not null;index"`
	TargetID   uuid.UUID        `json:"target_id" gorm:"type:uuid;not null;index"`
	Reason     string           `json:"reason" gorm:"size:100;not null"`
	Details    string           `json:"details" gorm:"type:text"`
	Status     ReportStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	AdminNotes string           `json:"admin_notes,omitempty" gorm:"type:text"`
	ResolvedBy *uuid.UUID       `json:"resolved_by" gorm:"type:uuid"`
	ResolvedAt *time.Time       `json:"resolved_at"`

	Reporter User  `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	Resolver *User `json:"resolver,omitempty" gorm:"foreignKey:ResolvedBy"`
}
