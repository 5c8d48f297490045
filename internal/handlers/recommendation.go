// internal/handlers/recommendation.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
}

func NewRecommendationHandler(recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// GET /products/recommendations?limit=
//
// Works for anonymous callers too; they get the popularity ranking with
// isPersonalized set to false.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var userID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	result, err := h.recommendationService.GetRecommendations(userID, limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /products/quick-recommendations?limit=
func (h *RecommendationHandler) QuickRecommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	products, err := h.recommendationService.QuickRecommendations(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}
