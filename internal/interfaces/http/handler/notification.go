package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/velora/storefront/internal/application/notification"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
)

// NotificationHandler serves the session's in-app notices
type NotificationHandler struct {
	BaseHandler
	center *notification.Center
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(center *notification.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.DELETE("", h.Clear)
	}
}

// List returns the session's notices, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	h.Success(c, h.center.List(middleware.GetSessionID(c)))
}

// Clear drops all of the session's notices
func (h *NotificationHandler) Clear(c *gin.Context) {
	h.center.Clear(middleware.GetSessionID(c))
	h.NoContent(c)
}
