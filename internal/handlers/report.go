// internal/handlers/report.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mykpoptrade/backend/internal/i18n"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// POST /reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	report, err := h.reportService.CreateReport(userID, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyReportNotFound)
		case strings.Contains(err.Error(), "already submitted"):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReportCreated),
		"report":  report,
	})
}

// GET /admin/reports?status=
func (h *ReportHandler) GetReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	reports, total, err := h.reportService.ListReports(&params, c.Query("status"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(reports, total, &params))
}

// PUT /admin/reports/:id/resolve
func (h *ReportHandler) ResolveReport(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	reportID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	report, err := h.reportService.ResolveReport(reportID, adminID, &req)
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReportResolved),
		"report":  report,
	})
}

// PUT /admin/reports/:id/dismiss
func (h *ReportHandler) DismissReport(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	reportID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		AdminNotes string `json:"admin_notes,omitempty"`
	}
	// Body is optional for dismissals.
	_ = c.ShouldBindJSON(&req)

	report, err := h.reportService.DismissReport(reportID, adminID, req.AdminNotes)
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"report": report})
}

func (h *ReportHandler) respondReportError(c *gin.Context, err error) {
	switch {
	case strings.Contains(err.Error(), "not found"):
		utils.NotFoundResponse(c, i18n.KeyReportNotFound)
	case strings.Contains(err.Error(), "already handled"):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
