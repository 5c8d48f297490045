// internal/models/transaction.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	BaseModel
	BuyerID          uuid.UUID         `json:"buyer_id" gorm:"type:uuid;not null;index"`
	SellerID         uuid.UUID         `json:"seller_id" gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID         `json:"product_id" gorm:"type:uuid;not null;index"`
	Amount           float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency         Currency          `json:"currency" gorm:"type:varchar(3);not null"`
	PaymentReference string            `json:"payment_reference" gorm:"size:255"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time        `json:"processed_at"`

	Buyer   User    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Seller  User    `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
