package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/app/services"
	"github.com/maritimetq/talentquest/internal/middleware"
	"github.com/maritimetq/talentquest/internal/pkg/helpers"
)

// AdminController serves the dashboard listings and registrant management
type AdminController struct {
	adminService services.AdminService
	statsService services.StatsService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, statsService services.StatsService) *AdminController {
	return &AdminController{
		adminService: adminService,
		statsService: statsService,
	}
}

// parseID reads a positive numeric path parameter, answering 400 otherwise.
func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID").
			WithField(name).
			WithDetails("ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// registrantKind maps the :kind segment, answering 404 for unknown ones.
func registrantKind(ctx *gin.Context) (services.RegistrantKind, bool) {
	kind, err := services.ParseRegistrantKind(ctx.Param("kind"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return "", false
	}
	return kind, true
}

// ListContestants lists solo contestants and group members
// @Summary List contestants
// @Description Singles and group members in one listing, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param entryType query string false "single or group"
// @Param category query string false "Performance category"
// @Param status query string false "pending, approved or rejected"
// @Param school query string false "School contains"
// @Param search query string false "Name or email contains"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ContestantListResponse} "Contestants"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/contestants [get]
func (c *AdminController) ListContestants(ctx *gin.Context) {
	var filter models.ContestantFilter
	if !middleware.BindQuery(ctx, &filter) {
		return
	}

	resp, err := c.adminService.ListContestants(ctx.Request.Context(), filter, helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetContestant returns the full record of one student
// @Summary Get contestant
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.ContestantDetailResponse} "Contestant"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Contestant not found"
// @Router /admin/contestants/{studentId} [get]
func (c *AdminController) GetContestant(ctx *gin.Context) {
	id, ok := parseID(ctx, "studentId")
	if !ok {
		return
	}

	resp, err := c.adminService.GetContestant(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListGroups lists group entries
// @Summary List groups
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param category query string false "Performance category"
// @Param status query string false "pending, approved or rejected"
// @Param school query string false "School contains"
// @Param search query string false "Group name or contact contains"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse} "Groups"
// @Router /admin/groups [get]
func (c *AdminController) ListGroups(ctx *gin.Context) {
	var filter models.GroupFilter
	if !middleware.BindQuery(ctx, &filter) {
		return
	}

	resp, err := c.adminService.ListGroups(ctx.Request.Context(), filter, helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetGroup returns a group with its members
// @Summary Get group
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupDetailResponse} "Group"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /admin/groups/{id} [get]
func (c *AdminController) GetGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.adminService.GetGroup(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListGuests lists guests
// @Summary List guests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param guestType query string false "parent, alumni, faculty or visitor"
// @Param status query string false "pending, approved or rejected"
// @Param search query string false "Name, email or affiliation contains"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.GuestListResponse} "Guests"
// @Router /admin/guests [get]
func (c *AdminController) ListGuests(ctx *gin.Context) {
	var filter models.GuestFilter
	if !middleware.BindQuery(ctx, &filter) {
		return
	}

	resp, err := c.adminService.ListGuests(ctx.Request.Context(), filter, helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetGuest returns a guest with their pass
// @Summary Get guest
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Success 200 {object} dto.APIResponse{data=dto.GuestDetailResponse} "Guest"
// @Failure 404 {object} dto.ErrorResponse "Guest not found"
// @Router /admin/guests/{id} [get]
func (c *AdminController) GetGuest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.adminService.GetGuest(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateStatus approves or rejects a registrant
// @Summary Update registrant status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "singles, groups or guests"
// @Param id path int true "Entry ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Registrant not found"
// @Router /admin/{kind}/{id}/status [patch]
func (c *AdminController) UpdateStatus(ctx *gin.Context) {
	kind, ok := registrantKind(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.adminService.UpdateStatus(ctx.Request.Context(), kind, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Status updated"}))
}

// Delete removes a registrant with its dependent records
// @Summary Delete registrant
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "singles, groups or guests"
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Registrant not found"
// @Router /admin/{kind}/{id} [delete]
func (c *AdminController) Delete(ctx *gin.Context) {
	kind, ok := registrantKind(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.Delete(ctx.Request.Context(), kind, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Registrant deleted"}))
}

// Stats returns the dashboard summary
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Summary"
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	resp, err := c.statsService.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
