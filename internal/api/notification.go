package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"appstore-notifications/internal/response"
	"appstore-notifications/internal/services"
	"appstore-notifications/pkg/logging"

	"github.com/gin-gonic/gin"
)

// ReceiveNotification handles the primary notification intake.
// POST /
func (h *Handler) ReceiveNotification(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		logging.Errorf("Failed to read request body: %v", err)
		response.Status(c, http.StatusBadRequest, "invalid")
		return
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil || len(doc) == 0 {
		logging.Warnf("Received empty or invalid JSON notification")
		response.Status(c, http.StatusBadRequest, "invalid")
		return
	}

	// The password field is an optional coarse authenticity check; it must
	// mismatch to reject, absence is fine. Nothing is written on rejection.
	if password, ok := doc["password"]; ok {
		if pw, ok := password.(string); !ok || pw != h.sharedSecret {
			logging.Warnf("Shared secret mismatch on inbound notification")
			response.Status(c, http.StatusForbidden, "invalid_shared_secret")
			return
		}
	}

	record := services.Normalize(doc, body)

	logging.Infof("Received notification - type: %s, transaction: %s, user: %s",
		record.NotificationType, record.TransactionID, record.UserID)

	if err := h.processor.Process(record); err != nil {
		if errors.Is(err, services.ErrStorageWrite) {
			response.Status(c, http.StatusInternalServerError, "processing_error")
			return
		}
		response.StatusWithError(c, http.StatusInternalServerError, "server_error", err)
		return
	}

	response.Status(c, http.StatusOK, "ok")
}
