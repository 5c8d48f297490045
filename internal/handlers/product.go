// internal/handlers/product.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mykpoptrade/backend/internal/i18n"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type ProductHandler struct {
	productService  *services.ProductService
	favoriteService *services.FavoriteService
	storageService  *services.StorageService
}

func NewProductHandler(productService *services.ProductService, favoriteService *services.FavoriteService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		favoriteService: favoriteService,
		storageService:  storageService,
	}
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	// For signed-in viewers, include whether the listing is bookmarked.
	isFavorited := false
	if viewerID, ok := currentUserID(c); ok {
		if favorited, err := h.favoriteService.IsFavorited(viewerID, id); err == nil {
			isFavorited = favorited
		}
	}

	utils.SuccessResponse(c, gin.H{"product": product, "is_favorited": isFavorited})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(id, userID, &req)
	if err != nil {
		h.respondProductError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id, userID, isAdmin(c)); err != nil {
		h.respondProductError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// GET /users/:id/products
func (h *ProductHandler) GetSellerProducts(c *gin.Context) {
	sellerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Sellers see their own unavailable listings, everyone else only
	// the live ones.
	includeUnavailable := false
	if userID, authed := currentUserID(c); authed && userID == sellerID {
		includeUnavailable = true
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.productService.ListSellerProducts(sellerID, &params, includeUnavailable)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, &params))
}

// POST /products/:id/reserve
func (h *ProductHandler) ReserveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		BuyerID string `json:"buyer_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid buyer ID", nil)
		return
	}

	product, err := h.productService.ReserveProduct(id, userID, buyerID)
	if err != nil {
		h.respondProductError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductReserved),
		"product": product,
	})
}

// POST /products/:id/unreserve
func (h *ProductHandler) UnreserveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.UnreserveProduct(id, userID)
	if err != nil {
		h.respondProductError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUnreserved),
		"product": product,
	})
}

// POST /products/:id/sold
func (h *ProductHandler) MarkSold(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		BuyerID string `json:"buyer_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid buyer ID", nil)
		return
	}

	transaction, err := h.productService.MarkSold(id, userID, buyerID)
	if err != nil {
		h.respondProductError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyProductSold),
		"transaction": transaction,
	})
}

// GET /transactions
func (h *ProductHandler) GetTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	transactions, total, err := h.productService.ListTransactions(userID, &params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(transactions, total, &params))
}

// POST /products/:id/images
func (h *ProductHandler) UploadProductImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := currentUserID(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Image files are required", nil)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "Image files are required", nil)
		return
	}
	if len(files) > 10 {
		utils.BadRequestResponse(c, "Too many images, maximum is 10", nil)
		return
	}

	options := h.storageService.GetDefaultUploadOptions("products")
	var results []*services.UploadResult
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
			return
		}
		results = append(results, result)
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"images":  results,
	})
}

func (h *ProductHandler) respondProductError(c *gin.Context, err error) {
	switch {
	case strings.Contains(err.Error(), "not found"):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case strings.Contains(err.Error(), "access denied"):
		utils.ForbiddenResponse(c, err.Error())
	case strings.Contains(err.Error(), "already") || strings.Contains(err.Error(), "reserved for another"):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
