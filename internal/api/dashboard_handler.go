package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/service"
)

type DashboardHandler struct {
	dashboardService    *service.DashboardService
	notificationService *service.NotificationService
}

func NewDashboardHandler(dashboardService *service.DashboardService, notificationService *service.NotificationService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:    dashboardService,
		notificationService: notificationService,
	}
}

// Summary handles GET /dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Notifications handles GET /notifications
func (h *DashboardHandler) Notifications(c *gin.Context) {
	notifications, err := h.notificationService.ListUnread(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// AckNotification handles POST /notifications/:id/read
func (h *DashboardHandler) AckNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
