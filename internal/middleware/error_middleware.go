package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/logger"
)

// apiError is the HTTP rendering of an error class
type apiError struct {
	status  int
	code    dto.ErrorCode
	message string
}

// classify maps an error onto status, code and a default message
func classify(err error) apiError {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrContestantNotFound, apperrors.ErrGroupNotFound, apperrors.ErrGuestNotFound,
		apperrors.ErrSingleEntryNotFound, apperrors.ErrPassNotFound, apperrors.ErrUserNotFound):
		return apiError{http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"}

	case errors.Is(err, apperrors.ErrPassAlreadyCheckedIn):
		return apiError{http.StatusConflict, dto.ErrorCodeAlreadyCheckedIn, "Pass has already been checked in"}
	case apperrors.Is(err, apperrors.ErrDuplicateContestant,
		apperrors.ErrDuplicateGroup, apperrors.ErrDuplicateGuest, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrResourceAlreadyExists):
		return apiError{http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"}
	case errors.Is(err, apperrors.ErrConflict):
		return apiError{http.StatusConflict, dto.ErrorCodeConflict, "Conflict"}

	case errors.Is(err, apperrors.ErrRegistrationClosed):
		return apiError{http.StatusForbidden, dto.ErrorCodeRegistrationClosed, "Registration is closed"}
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return apiError{http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"}
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return apiError{http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"}

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return apiError{http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"}
	case errors.Is(err, apperrors.ErrTokenExpired):
		return apiError{http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"}
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return apiError{http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return apiError{http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"}

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrInvalidStatus, apperrors.ErrInvalidGroupLeadership):
		return apiError{http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"}
	case errors.Is(err, apperrors.ErrBadRequest):
		return apiError{http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"}
	case errors.Is(err, apperrors.ErrUnsupportedFile):
		return apiError{http.StatusUnsupportedMediaType, dto.ErrorCodeInvalidFile, "Unsupported file type"}
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return apiError{http.StatusRequestEntityTooLarge, dto.ErrorCodeInvalidFile, "File too large"}

	case errors.Is(err, apperrors.ErrTooManyRequests):
		return apiError{http.StatusTooManyRequests, dto.ErrorCodeTooManyRequests, "Too many requests"}
	case errors.Is(err, apperrors.ErrExternalService):
		return apiError{http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "External service error"}
	}
	return apiError{http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"}
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	e := classify(err)
	detail := dto.NewErrorDetail(e.code, e.message)

	switch e.status {
	case http.StatusInternalServerError:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
	case http.StatusBadGateway:
		// upstream messages can name local paths or bucket internals
		logger.Warn().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("External service failed")
	default:
		// Domain errors carry a message that is safe to show
		detail = detail.WithDetails(err.Error())
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		if field, ok := custom.Details["field"].(string); ok {
			detail = detail.WithField(field)
		}
	}

	c.AbortWithStatusJSON(e.status, dto.NewErrorResponse(detail))
}

// RespondValidationError answers 400 for a failed bind
func RespondValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

// Recovery turns panics into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	})
}
