// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/app/services"
	"github.com/maritimetq/talentquest/internal/middleware"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// RegistrationController handles the public registration forms
type RegistrationController struct {
	registrationService services.RegistrationService
	uploadService       services.UploadService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService, uploadService services.UploadService, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		uploadService:       uploadService,
		logger:              logger,
	}
}

// RegisterSingle handles a solo contestant registration
// @Summary Register a solo contestant
// @Description Stores the contestant with performance, requirements, health, consent and endorsement, then emails the QR pass
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body dto.SingleRegistrationRequest true "Solo registration form"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Registration is closed"
// @Failure 409 {object} dto.ErrorResponse "Contestant already registered"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/single [post]
func (c *RegistrationController) RegisterSingle(ctx *gin.Context) {
	var req dto.SingleRegistrationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.registrationService.RegisterSingle(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// RegisterGroup handles a group registration
// @Summary Register a group
// @Description Stores a group of 2 to 15 members with exactly one leader and emails every member's pass to the group contact
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body dto.GroupRegistrationRequest true "Group registration form"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Registration is closed"
// @Failure 409 {object} dto.ErrorResponse "Group already registered for this school"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/group [post]
func (c *RegistrationController) RegisterGroup(ctx *gin.Context) {
	var req dto.GroupRegistrationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.registrationService.RegisterGroup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// RegisterGuest handles a guest registration
// @Summary Register a guest
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body dto.GuestRegistrationRequest true "Guest registration form"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Registration is closed"
// @Failure 409 {object} dto.ErrorResponse "Guest already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/guest [post]
func (c *RegistrationController) RegisterGuest(ctx *gin.Context) {
	var req dto.GuestRegistrationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.registrationService.RegisterGuest(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// Upload stores a requirement document
// @Summary Upload a requirement document
// @Description Accepts a birth certificate, school ID (jpeg, png or pdf) or photo (jpeg or png) of at most 5 MB
// @Tags registrations
// @Accept multipart/form-data
// @Produce json
// @Param kind formData string true "Document kind" Enums(birth_certificate, school_id, photo)
// @Param file formData file true "Document"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "File stored"
// @Failure 400 {object} dto.ErrorResponse "Missing kind or file"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Failure 502 {object} dto.ErrorResponse "Storage unavailable"
// @Router /uploads [post]
func (c *RegistrationController) Upload(ctx *gin.Context) {
	// leave room for the multipart envelope around the file
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, services.MaxUploadSize+1<<20)

	file, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.HandleAPIError(ctx, apperrors.ErrFileTooLarge)
			return
		}
		c.logger.Debug().Err(err).Msg("Upload without a readable file part")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithField("file").
			WithDetails("file is required and must be at most 5 MB")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.uploadService.UploadRequirement(ctx.Request.Context(), ctx.PostForm("kind"), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}
