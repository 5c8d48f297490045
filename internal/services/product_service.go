// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Currency    string   `json:"currency" validate:"omitempty,currency"`
	Condition   string   `json:"condition" validate:"required"`
	ProductType string   `json:"product_type" validate:"required"`
	GroupName   string   `json:"group_name,omitempty" validate:"omitempty,max=100"`
	MemberName  string   `json:"member_name,omitempty" validate:"omitempty,max=100"`
	AlbumName   string   `json:"album_name,omitempty" validate:"omitempty,max=255"`
	Images      []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

type UpdateProductRequest struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description string   `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Currency    string   `json:"currency,omitempty" validate:"omitempty,currency"`
	Condition   string   `json:"condition,omitempty"`
	ProductType string   `json:"product_type,omitempty"`
	GroupName   *string  `json:"group_name,omitempty"`
	MemberName  *string  `json:"member_name,omitempty"`
	AlbumName   *string  `json:"album_name,omitempty"`
	Images      []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(sellerID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	condition := models.ProductCondition(req.Condition)
	if !condition.Valid() {
		return nil, errors.New("invalid product condition")
	}
	productType := models.ProductType(req.ProductType)
	if !productType.Valid() {
		return nil, errors.New("invalid product type")
	}

	currency := models.Currency(req.Currency)
	if currency == "" {
		currency = models.CurrencyEUR
	}

	product := models.Product{
		SellerID:    sellerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
		Condition:   condition,
		ProductType: productType,
		GroupName:   req.GroupName,
		MemberName:  req.MemberName,
		AlbumName:   req.AlbumName,
		Images:      req.Images,
		IsAvailable: true,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// GetProduct loads a listing and bumps its view counter in the background.
// Counter updates never block or fail the read path.
func (s *ProductService) GetProduct(productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Seller").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	go func() {
		if err := s.db.Model(&models.Product{}).Where("id = ?", productID).
			Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			logrus.WithError(err).WithField("product_id", productID).Warn("Failed to increment view count")
		}
	}()

	return &product, nil
}

func (s *ProductService) UpdateProduct(productID, userID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if product.SellerID != userID {
		return nil, errors.New("access denied")
	}
	if product.IsSold {
		return nil, errors.New("product already sold")
	}

	if req.Title != "" {
		product.Title = req.Title
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Currency != "" {
		product.Currency = models.Currency(req.Currency)
	}
	if req.Condition != "" {
		condition := models.ProductCondition(req.Condition)
		if !condition.Valid() {
			return nil, errors.New("invalid product condition")
		}
		product.Condition = condition
	}
	if req.ProductType != "" {
		productType := models.ProductType(req.ProductType)
		if !productType.Valid() {
			return nil, errors.New("invalid product type")
		}
		product.ProductType = productType
	}
	if req.GroupName != nil {
		product.GroupName = *req.GroupName
	}
	if req.MemberName != nil {
		product.MemberName = *req.MemberName
	}
	if req.AlbumName != nil {
		product.AlbumName = *req.AlbumName
	}
	if req.Images != nil {
		product.Images = req.Images
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (s *ProductService) DeleteProduct(productID, userID uuid.UUID, isAdmin bool) error {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if product.SellerID != userID && !isAdmin {
		return errors.New("access denied")
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *ProductService) ListSellerProducts(sellerID uuid.UUID, params *utils.PaginationParams, includeUnavailable bool) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("seller_id = ?", sellerID)
	if !includeUnavailable {
		query = query.Where("is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := query.Scopes(utils.ApplySort(params), utils.ApplyPagination(params)).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

// ReserveProduct holds a listing for a buyer. Reserving an already
// reserved or sold listing fails.
func (s *ProductService) ReserveProduct(productID, sellerID, buyerID uuid.UUID) (*models.Product, error) {
	var product models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return err
		}
		if product.SellerID != sellerID {
			return errors.New("access denied")
		}
		if product.IsSold {
			return errors.New("product already sold")
		}
		if product.IsReserved {
			return errors.New("product already reserved")
		}
		if buyerID == sellerID {
			return errors.New("cannot reserve for yourself")
		}

		product.IsReserved = true
		product.ReservedFor = &buyerID
		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (s *ProductService) UnreserveProduct(productID, sellerID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if product.SellerID != sellerID {
		return nil, errors.New("access denied")
	}
	if product.IsSold {
		return nil, errors.New("product already sold")
	}

	product.IsReserved = false
	product.ReservedFor = nil
	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to unreserve product: %w", err)
	}

	return &product, nil
}

// MarkSold finalizes a sale and records the transaction in one database
// transaction so the listing and the ledger never disagree.
func (s *ProductService) MarkSold(productID, sellerID, buyerID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return err
		}
		if product.SellerID != sellerID {
			return errors.New("access denied")
		}
		if product.IsSold {
			return errors.New("product already sold")
		}
		if buyerID == sellerID {
			return errors.New("cannot sell to yourself")
		}
		if product.IsReserved && product.ReservedFor != nil && *product.ReservedFor != buyerID {
			return errors.New("product reserved for another buyer")
		}

		product.IsSold = true
		product.IsAvailable = false
		product.IsReserved = false
		product.ReservedFor = nil
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		now := time.Now()
		transaction = models.Transaction{
			ProductID:   product.ID,
			SellerID:    sellerID,
			BuyerID:     buyerID,
			Amount:      product.Price,
			Currency:    product.Currency,
			Status:      models.TransactionStatusCompleted,
			ProcessedAt: &now,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

func (s *ProductService) ListTransactions(userID uuid.UUID, params *utils.PaginationParams) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).
		Where("seller_id = ? OR buyer_id = ?", userID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []models.Transaction
	err := query.Preload("Product").
		Scopes(utils.ApplySort(params), utils.ApplyPagination(params)).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}
