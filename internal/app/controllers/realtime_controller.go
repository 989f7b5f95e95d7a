package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/maritimetq/talentquest/internal/middleware"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
)

// RealtimeController upgrades dashboard clients onto the event hub
type RealtimeController struct {
	hub *websocket.Hub
}

// NewRealtimeController creates a new RealtimeController
func NewRealtimeController(hub *websocket.Hub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

// Connect opens the dashboard event stream
// @Summary Dashboard event stream
// @Description WebSocket feed of registration.created, registrant.updated, registrant.deleted and pass.checked_in events. Browsers pass the token as ?token= or rely on the session cookie.
// @Tags admin
// @Security BearerAuth
// @Param token query string false "Access token"
// @Success 101 "Switching protocols"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/realtime [get]
func (c *RealtimeController) Connect(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	// the hub logs failures and the upgrader has already answered the request
	_ = c.hub.ServeWS(ctx.Writer, ctx.Request, userID)
}
