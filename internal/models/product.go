// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	SellerID      uuid.UUID        `json:"seller_id" gorm:"type:uuid;not null;index"`
	Title         string           `json:"title" gorm:"size:255;not null"`
	Description   string           `json:"description" gorm:"type:text"`
	Price         float64          `json:"price" gorm:"type:decimal(10,2);not null"`
	Currency      Currency         `json:"currency" gorm:"type:varchar(3);default:'EUR'"`
	Condition     ProductCondition `json:"condition" gorm:"type:varchar(20);not null;index"`
	ProductType   ProductType      `json:"product_type" gorm:"type:varchar(20);not null;index"`
	GroupName     string           `json:"group_name" gorm:"size:100;index"`
	MemberName    string           `json:"member_name" gorm:"size:100;index"`
	AlbumName     string           `json:"album_name" gorm:"size:255;index"`
	Images        pq.StringArray   `json:"images" gorm:"type:text[]"`
	IsAvailable   bool             `json:"is_available" gorm:"default:true;index"`
	IsSold        bool             `json:"is_sold" gorm:"default:false"`
	IsReserved    bool             `json:"is_reserved" gorm:"default:false"`
	ReservedFor   *uuid.UUID       `json:"reserved_for" gorm:"type:uuid"`
	ViewCount     int64            `json:"view_count" gorm:"default:0"`
	FavoriteCount int64            `json:"favorite_count" gorm:"default:0"`

	// Relationships
	Seller       User          `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:ProductID"`
}
