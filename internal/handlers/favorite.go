// internal/handlers/favorite.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mykpoptrade/backend/internal/i18n"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// POST /products/:id/favorite
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.AddFavorite(userID, productID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductFavorited),
	})
}

// DELETE /products/:id/favorite
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(userID, productID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUnfavored),
	})
}

// GET /favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	favorites, total, err := h.favoriteService.ListFavorites(userID, &params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(favorites, total, &params))
}
