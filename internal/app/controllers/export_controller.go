package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/services"
	"github.com/maritimetq/talentquest/internal/middleware"
)

// ExportController serves CSV and PDF downloads of the dashboard listings
type ExportController struct {
	exportService services.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService services.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

func sendFile(ctx *gin.Context, file *services.ExportFile) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	ctx.Data(http.StatusOK, file.ContentType, file.Data)
}

// Contestants exports the contestant listing
// @Summary Export contestants
// @Description Takes the contestant listing filters; every match is exported
// @Tags exports
// @Produce text/csv,application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or format"
// @Router /admin/export/contestants [get]
func (c *ExportController) Contestants(ctx *gin.Context) {
	var filter models.ContestantFilter
	if !middleware.BindQuery(ctx, &filter) {
		return
	}
	file, err := c.exportService.ExportContestants(ctx.Request.Context(), filter, ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendFile(ctx, file)
}

// Groups exports the group listing
// @Summary Export groups
// @Tags exports
// @Produce text/csv,application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file "Export file"
// @Router /admin/export/groups [get]
func (c *ExportController) Groups(ctx *gin.Context) {
	var filter models.GroupFilter
	if !middleware.BindQuery(ctx, &filter) {
		return
	}
	file, err := c.exportService.ExportGroups(ctx.Request.Context(), filter, ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendFile(ctx, file)
}

// Guests exports the guest listing
// @Summary Export guests
// @Tags exports
// @Produce text/csv,application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file "Export file"
// @Router /admin/export/guests [get]
func (c *ExportController) Guests(ctx *gin.Context) {
	var filter models.GuestFilter
	if !middleware.BindQuery(ctx, &filter) {
		return
	}
	file, err := c.exportService.ExportGuests(ctx.Request.Context(), filter, ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendFile(ctx, file)
}
