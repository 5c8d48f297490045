// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/config"
	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type PaymentService struct {
	db            *gorm.DB
	config        *config.Config
	notifications *NotificationService
}

type CreatePaymentIntentRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

type PaymentIntentResponse struct {
	ClientSecret    string  `json:"client_secret"`
	PaymentIntentID string  `json:"payment_intent_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

type RefundRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid"`
	Reason        string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func NewPaymentService(db *gorm.DB, config *config.Config, notifications *NotificationService) *PaymentService {
	stripe.Key = config.Payment.StripeSecretKey
	return &PaymentService{
		db:            db,
		config:        config,
		notifications: notifications,
	}
}

// CreatePaymentIntent opens a checkout for an available listing. The listing
// is reserved for the buyer while the intent is pending and a pending
// transaction row carries the Stripe reference.
func (s *PaymentService) CreatePaymentIntent(buyerID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product id")
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if product.SellerID == buyerID {
		return nil, errors.New("cannot buy your own product")
	}
	if !product.IsAvailable || product.IsSold {
		return nil, errors.New("product not available")
	}
	if product.IsReserved && (product.ReservedFor == nil || *product.ReservedFor != buyerID) {
		return nil, errors.New("product reserved for another buyer")
	}

	amountInCents := int64(product.Price * 100)
	currency := string(product.Currency)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("product_id", product.ID.String())
	params.AddMetadata("buyer_id", buyerID.String())
	params.AddMetadata("seller_id", product.SellerID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		transaction := models.Transaction{
			ProductID:        product.ID,
			SellerID:         product.SellerID,
			BuyerID:          buyerID,
			Amount:           product.Price,
			Currency:         product.Currency,
			PaymentReference: pi.ID,
			Status:           models.TransactionStatusPending,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"is_reserved":  true,
				"reserved_for": buyerID,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record pending transaction: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		Amount:          product.Price,
		Currency:        currency,
	}, nil
}

// ConfirmPayment reconciles a pending transaction against Stripe. On
// success the listing is marked sold and the seller is notified.
func (s *PaymentService) ConfirmPayment(buyerID uuid.UUID, req *ConfirmPaymentRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.Where("payment_reference = ?", pi.ID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if transaction.BuyerID != buyerID {
		return nil, errors.New("access denied")
	}
	if transaction.Status == models.TransactionStatusCompleted {
		return &transaction, nil
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		err = s.db.Transaction(func(tx *gorm.DB) error {
			transaction.Status = models.TransactionStatusCompleted
			transaction.ProcessedAt = &now
			if err := tx.Save(&transaction).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).Where("id = ?", transaction.ProductID).
				Updates(map[string]interface{}{
					"is_sold":      true,
					"is_available": false,
					"is_reserved":  false,
					"reserved_for": nil,
				}).Error
		})
		if err != nil {
			return nil, fmt.Errorf("failed to complete transaction: %w", err)
		}

		s.notifications.Notify(transaction.SellerID, models.NotificationTypeProductSold,
			"Product sold",
			"Your listing has been sold",
			models.JSONB{"transaction_id": transaction.ID.String(), "product_id": transaction.ProductID.String()})

		return &transaction, nil

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod, stripe.PaymentIntentStatusProcessing:
		return nil, errors.New("payment not completed")

	default:
		err = s.db.Transaction(func(tx *gorm.DB) error {
			transaction.Status = models.TransactionStatusFailed
			if err := tx.Save(&transaction).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).Where("id = ?", transaction.ProductID).
				Updates(map[string]interface{}{
					"is_reserved":  false,
					"reserved_for": nil,
				}).Error
		})
		if err != nil {
			return nil, fmt.Errorf("failed to mark transaction failed: %w", err)
		}
		return nil, errors.New("payment failed")
	}
}

// ProcessRefund refunds a completed transaction through Stripe and
// relists the product. Admin only.
func (s *PaymentService) ProcessRefund(req *RefundRequest, adminID uuid.UUID) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		return errors.New("invalid transaction id")
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("transaction not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	if transaction.Status != models.TransactionStatusCompleted {
		return errors.New("only completed transactions can be refunded")
	}
	if transaction.PaymentReference == "" {
		return errors.New("transaction has no payment reference")
	}

	refundParams := &stripe.RefundParams{
		PaymentIntent: stripe.String(transaction.PaymentReference),
		Reason:        stripe.String("requested_by_customer"),
	}
	if _, err := refund.New(refundParams); err != nil {
		return fmt.Errorf("failed to process refund: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		transaction.Status = models.TransactionStatusCancelled
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", transaction.ProductID).
			Updates(map[string]interface{}{
				"is_sold":      false,
				"is_available": true,
			}).Error
	})
}
