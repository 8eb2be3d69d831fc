package api

import (
	"net/http"

	"appstore-notifications/internal/response"

	"github.com/gin-gonic/gin"
)

// ValidateReceiptRequest is the body of POST /validate-receipt
type ValidateReceiptRequest struct {
	ReceiptData string `json:"receipt_data" binding:"required"`
}

// ValidateReceipt proxies a receipt blob to the Apple validation endpoint
// and returns its response verbatim.
// POST /validate-receipt
func (h *Handler) ValidateReceipt(c *gin.Context) {
	var req ValidateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.StatusWithError(c, http.StatusBadRequest, "invalid", err)
		return
	}

	result := h.validator.Validate(req.ReceiptData)
	c.Data(http.StatusOK, "application/json", result)
}
