package models

import (
	"time"
)

// WebhookLog records one outbound relay attempt that reached the remote
// endpoint. Transport-level failures (timeout, connection refused) produce
// no row; they are only logged.
type WebhookLog struct {
	BaseModel

	// NotificationID references Notification.NotificationID
	NotificationID string `json:"notification_id" gorm:"not null;size:36;index"`

	WebhookURL     string    `json:"webhook_url" gorm:"size:500"`
	ResponseStatus int       `json:"response_status"`
	ResponseBody   string    `json:"response_body" gorm:"type:text"` // truncated to 1000 chars
	SentAt         time.Time `json:"sent_at"`
}

// TableName specifies the table name
func (WebhookLog) TableName() string {
	return "webhook_logs"
}
