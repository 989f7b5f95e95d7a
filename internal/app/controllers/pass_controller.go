package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/app/services"
	"github.com/maritimetq/talentquest/internal/middleware"
)

// PassController handles QR pass verification, check-in and resends
type PassController struct {
	passService services.PassService
}

// NewPassController creates a new PassController
func NewPassController(passService services.PassService) *PassController {
	return &PassController{passService: passService}
}

// Verify returns the public view of a pass
// @Summary Verify a pass
// @Description Returns the holder name, type and check-in state of a pass. No contact data is exposed.
// @Tags passes
// @Produce json
// @Param code path string true "Pass code"
// @Success 200 {object} dto.APIResponse{data=dto.PassVerificationResponse} "Pass found"
// @Failure 404 {object} dto.ErrorResponse "Unknown pass"
// @Router /passes/{code} [get]
func (c *PassController) Verify(ctx *gin.Context) {
	resp, err := c.passService.Verify(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CheckIn marks a scanned pass as used
// @Summary Check in a pass
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckInRequest true "Scanned code"
// @Success 200 {object} dto.APIResponse{data=dto.CheckInResponse} "Checked in"
// @Failure 400 {object} dto.ErrorResponse "Invalid code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown pass"
// @Failure 409 {object} dto.ErrorResponse "Already checked in"
// @Router /admin/checkin [post]
func (c *PassController) CheckIn(ctx *gin.Context) {
	var req dto.CheckInRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	resp, err := c.passService.CheckIn(ctx.Request.Context(), req.Code, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Resend emails a pass again
// @Summary Resend a pass email
// @Description Re-renders the QR image and emails it to the holder (the group contact for group members)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param code path string true "Pass code"
// @Success 200 {object} dto.APIResponse{data=dto.ResendResponse} "Resend attempted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Unknown pass"
// @Router /admin/passes/{code}/resend [post]
func (c *PassController) Resend(ctx *gin.Context) {
	resp, err := c.passService.Resend(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
