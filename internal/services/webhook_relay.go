package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"appstore-notifications/internal/models"
	"appstore-notifications/pkg/logging"
)

// maxLoggedBodyLength bounds the response body stored per relay attempt.
const maxLoggedBodyLength = 1000

// WebhookLogStore persists the audit trail of relay attempts.
type WebhookLogStore interface {
	AppendWebhookLog(entry *models.WebhookLog) error
}

// WebhookRelay sends a summary of each processed notification to the
// configured downstream endpoint. Delivery is best effort: every outcome is
// logged, none is reported to the caller, and only attempts that reached the
// remote produce an audit row.
type WebhookRelay struct {
	url        string
	logs       WebhookLogStore
	httpClient *http.Client
}

// NewWebhookRelay creates a relay for the given webhook URL.
func NewWebhookRelay(url string, logs WebhookLogStore) *WebhookRelay {
	return &WebhookRelay{
		url:  url,
		logs: logs,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RelayPayload is the summary document sent downstream.
type RelayPayload struct {
	NotificationID   string `json:"notification_id"`
	NotificationType string `json:"notification_type"`
	UserID           string `json:"user_id"`
	ProductID        string `json:"product_id"`
	TransactionID    string `json:"transaction_id"`
	Timestamp        string `json:"timestamp"` // RFC 3339, UTC
}

// Relay posts the notification summary to the webhook endpoint. It never
// propagates failure to its caller.
func (r *WebhookRelay) Relay(notificationID string, record *models.Notification) {
	payload := RelayPayload{
		NotificationID:   notificationID,
		NotificationType: record.NotificationType,
		UserID:           record.UserID,
		ProductID:        record.ProductID,
		TransactionID:    record.TransactionID,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		logging.Errorf("Relay failure: marshaling payload for notification %s: %v", notificationID, err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, r.url, bytes.NewBuffer(jsonData))
	if err != nil {
		logging.Errorf("Relay failure: building request for notification %s: %v", notificationID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// Transport failure: the attempt never reached the remote, so no
		// audit row is written.
		logging.Errorf("Relay failure: sending notification %s to %s: %v", notificationID, r.url, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBodyLength+1))
	if err != nil {
		logging.Warnf("Relay: reading response body for notification %s: %v", notificationID, err)
	}
	if len(body) > maxLoggedBodyLength {
		body = body[:maxLoggedBodyLength]
	}

	entry := &models.WebhookLog{
		NotificationID: notificationID,
		WebhookURL:     r.url,
		ResponseStatus: resp.StatusCode,
		ResponseBody:   string(body),
		SentAt:         time.Now().UTC(),
	}
	if err := r.logs.AppendWebhookLog(entry); err != nil {
		logging.Errorf("Relay: writing webhook log for notification %s: %v", notificationID, err)
		return
	}

	logging.Infof("Webhook relayed - notification: %s, status: %d", notificationID, resp.StatusCode)
}
