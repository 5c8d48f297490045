// internal/handlers/group.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mykpoptrade/backend/internal/i18n"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type GroupHandler struct {
	groupService *services.GroupService
}

func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// GET /groups?search=
func (h *GroupHandler) GetGroups(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	groups, total, err := h.groupService.ListGroups(&params, c.Query("search"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(groups, total, &params))
}

// GET /groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyGroupNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"group": group})
}

// POST /admin/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(&req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"group": group})
}

// POST /groups/:id/follow
func (h *GroupHandler) FollowGroup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.FollowGroup(userID, groupID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyGroupNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyGroupFollowed),
	})
}

// DELETE /groups/:id/follow
func (h *GroupHandler) UnfollowGroup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.UnfollowGroup(userID, groupID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyGroupNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyGroupUnfollowed),
	})
}

// GET /groups/following
func (h *GroupHandler) GetFollowedGroups(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	groups, err := h.groupService.ListFollowedGroups(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"groups": groups})
}

// GET /groups/:id/albums
func (h *GroupHandler) GetGroupAlbums(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	albums, err := h.groupService.ListGroupAlbums(groupID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"albums": albums})
}
