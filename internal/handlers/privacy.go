// internal/handlers/privacy.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mykpoptrade/backend/internal/i18n"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type PrivacyHandler struct {
	privacyService *services.PrivacyService
}

func NewPrivacyHandler(privacyService *services.PrivacyService) *PrivacyHandler {
	return &PrivacyHandler{privacyService: privacyService}
}

// GET /privacy/export
func (h *PrivacyHandler) ExportData(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	export, err := h.privacyService.ExportUserData(userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyUserNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="mykpoptrade-export.json"`)
	utils.SuccessResponse(c, export)
}

// DELETE /privacy/account
func (h *PrivacyHandler) DeleteAccount(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.privacyService.EraseAccount(userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyUserNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPrivacyAccountErased),
	})
}
