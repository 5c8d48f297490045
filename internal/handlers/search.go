// internal/handlers/search.go
package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mykpoptrade/backend/internal/i18n"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type SearchHandler struct {
	searchService  *services.SearchService
	historyService *services.SearchHistoryService
}

func NewSearchHandler(searchService *services.SearchService, historyService *services.SearchHistoryService) *SearchHandler {
	return &SearchHandler{
		searchService:  searchService,
		historyService: historyService,
	}
}

// POST /search/advanced
//
// The body is parsed permissively: unknown fields and malformed facet
// values are ignored rather than rejected, so a broken filter degrades
// into a broader search instead of an error.
func (h *SearchHandler) AdvancedSearch(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AdvancedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "body"), err.Error())
		return
	}

	var userID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	products, total, err := h.searchService.AdvancedSearch(&req, userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	page := req.EffectivePage()
	limit := req.EffectiveLimit()
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	utils.SuccessResponseWithMeta(c, gin.H{"products": products}, gin.H{
		"pagination": gin.H{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// GET /search/suggestions?q=
func (h *SearchHandler) Suggestions(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	query := strings.TrimSpace(c.Query("q"))
	suggestions, err := h.searchService.Suggestions(query)
	if err != nil {
		if strings.Contains(err.Error(), "at least") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySearchQueryTooShort), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"suggestions": suggestions})
}

// GET /search/history?limit=
func (h *SearchHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	history, err := h.historyService.List(userID, limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"history": history})
}

// DELETE /search/history/:id
func (h *SearchHandler) DeleteHistoryEntry(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.historyService.Delete(userID, entryID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeySearchHistoryMissing)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySearchHistoryDeleted),
	})
}

// DELETE /search/history
func (h *SearchHandler) ClearHistory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.historyService.Clear(userID); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySearchHistoryCleared),
	})
}
