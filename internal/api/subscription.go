package api

import (
	"errors"
	"net/http"

	"appstore-notifications/internal/response"
	"appstore-notifications/pkg/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUserSubscription returns the stored subscription snapshot for a user.
// GET /user/:user_id/subscription
func (h *Handler) GetUserSubscription(c *gin.Context) {
	userID := c.Param("user_id")

	sub, err := h.store.GetSubscription(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Status(c, http.StatusNotFound, "not_found")
			return
		}
		logging.Errorf("Failed to load subscription for user %s: %v", userID, err)
		response.StatusWithError(c, http.StatusInternalServerError, "server_error", err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
