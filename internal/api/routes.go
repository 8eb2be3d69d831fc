package api

import (
	"context"
	"encoding/json"
	"net/http"

	"appstore-notifications/internal/models"
	"appstore-notifications/internal/services"
	"appstore-notifications/pkg/logging"

	"github.com/gin-gonic/gin"
)

// Store is the read surface the handlers need from the database layer.
type Store interface {
	GetSubscription(userID string) (*models.UserSubscription, error)
	CountNotifications() (int64, error)
	CountActiveSubscriptions() (int64, error)
	CountNotificationsByType() (map[string]int64, error)
	Ping(ctx context.Context) error
}

// Validator proxies receipt blobs to the external validation endpoint.
type Validator interface {
	Validate(receiptData string) json.RawMessage
}

// Handler holds the collaborators the HTTP handlers dispatch to.
type Handler struct {
	processor    *services.Processor
	store        Store
	validator    Validator
	sharedSecret string
}

// NewHandler wires the HTTP handlers to their collaborators.
func NewHandler(processor *services.Processor, store Store, validator Validator, sharedSecret string) *Handler {
	return &Handler{
		processor:    processor,
		store:        store,
		validator:    validator,
		sharedSecret: sharedSecret,
	}
}

// SetupRoutes sets up all routes
func SetupRoutes(r *gin.Engine, h *Handler) {
	r.POST("/", h.ReceiveNotification)
	r.POST("/validate-receipt", h.ValidateReceipt)
	r.GET("/user/:user_id/subscription", h.GetUserSubscription)
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)
}

// Recovery converts panics into the server_error envelope instead of gin's
// default empty 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.Errorf("Panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status": "server_error",
			"error":  "internal server error",
		})
	})
}
