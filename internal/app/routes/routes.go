package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maritimetq/talentquest/internal/app/controllers"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/middleware"
)

// Controllers bundles every HTTP handler the router mounts
type Controllers struct {
	Registration *controllers.RegistrationController
	Pass         *controllers.PassController
	Auth         *controllers.AuthController
	Admin        *controllers.AdminController
	Export       *controllers.ExportController
	Realtime     *controllers.RealtimeController
}

// HealthCheck reports whether the backing services are reachable
type HealthCheck func(ctx context.Context) error

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	registrationLimiter *middleware.IPRateLimiter,
	health HealthCheck,
) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if health != nil {
			if err := health(checkCtx); err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable")
				ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
				return
			}
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Public registration routes, rate limited per client IP ---
	public := v1.Group("")
	public.Use(middleware.RateLimit(registrationLimiter))
	{
		public.POST("/registrations/single", c.Registration.RegisterSingle)
		public.POST("/registrations/group", c.Registration.RegisterGroup)
		public.POST("/registrations/guest", c.Registration.RegisterGuest)
		public.POST("/uploads", c.Registration.Upload)
	}

	v1.GET("/passes/:code", c.Pass.Verify)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(registrationLimiter), c.Auth.Login)
		auth.POST("/logout", c.Auth.Logout)
		auth.GET("/me", authMiddleware.JWTAuth(), c.Auth.Me)
	}

	// --- Dashboard routes: staff read and check in, admins change data ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin, models.RoleStaff))
	{
		admin.GET("/contestants", c.Admin.ListContestants)
		admin.GET("/contestants/:studentId", c.Admin.GetContestant)
		admin.GET("/groups", c.Admin.ListGroups)
		admin.GET("/groups/:id", c.Admin.GetGroup)
		admin.GET("/guests", c.Admin.ListGuests)
		admin.GET("/guests/:id", c.Admin.GetGuest)
		admin.GET("/stats", c.Admin.Stats)
		admin.POST("/checkin", c.Pass.CheckIn)
		admin.GET("/realtime", c.Realtime.Connect)

		exports := admin.Group("/export")
		{
			exports.GET("/contestants", c.Export.Contestants)
			exports.GET("/groups", c.Export.Groups)
			exports.GET("/guests", c.Export.Guests)
		}

		adminOnly := admin.Group("")
		adminOnly.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			adminOnly.PATCH("/:kind/:id/status", c.Admin.UpdateStatus)
			adminOnly.DELETE("/:kind/:id", c.Admin.Delete)
			adminOnly.POST("/passes/:code/resend", c.Pass.Resend)
		}
	}
}
