package api

import (
	"net/http"

	"appstore-notifications/pkg/logging"

	"github.com/gin-gonic/gin"
)

// Health reports whether the durable storage is reachable.
// GET /health
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		logging.Errorf("Health check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "ok",
	})
}

// Stats returns aggregate notification and subscription counts.
// GET /stats
func (h *Handler) Stats(c *gin.Context) {
	total, err := h.store.CountNotifications()
	if err != nil {
		logging.Errorf("Failed to count notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "server_error", "error": err.Error()})
		return
	}

	active, err := h.store.CountActiveSubscriptions()
	if err != nil {
		logging.Errorf("Failed to count active subscriptions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "server_error", "error": err.Error()})
		return
	}

	byType, err := h.store.CountNotificationsByType()
	if err != nil {
		logging.Errorf("Failed to count notifications by type: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "server_error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_notifications":   total,
		"active_subscriptions":  active,
		"notifications_by_type": byType,
	})
}
