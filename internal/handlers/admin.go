// internal/handlers/admin.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mykpoptrade/backend/internal/i18n"
	"github.com/mykpoptrade/backend/internal/models"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	userService  *services.UserService
}

func NewAdminHandler(adminService *services.AdminService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userService:  userService,
	}
}

// GET /admin/stats
func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/searches/top?limit=
func (h *AdminHandler) GetTopSearchQueries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	queries, err := h.adminService.TopSearchQueries(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"queries": queries})
}

// GET /admin/users?status=
func (h *AdminHandler) GetUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	users, total, err := h.userService.ListUsers(&params, c.Query("status"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, &params))
}

// PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=active suspended banned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.userService.UpdateUserStatus(userID, models.UserStatus(req.Status)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyUserNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "User status updated"})
}

// GET /admin/audit-logs?action=
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	logs, total, err := h.adminService.ListAuditLogs(&params, c.Query("action"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, &params))
}
