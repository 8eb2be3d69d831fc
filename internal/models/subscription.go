package models

import (
	"time"
)

// UserSubscription is the latest subscription snapshot for one user.
// There is exactly one row per user id; every processed notification that
// carries a resolvable user id fully replaces the snapshot. Rows are never
// deleted by this service.
type UserSubscription struct {
	BaseModel

	UserID string `json:"user_id" gorm:"not null;size:100;uniqueIndex"`

	ProductID             string `json:"product_id" gorm:"size:100"`
	TransactionID         string `json:"transaction_id" gorm:"size:100"`
	OriginalTransactionID string `json:"original_transaction_id" gorm:"size:100;index"`

	// SubscriptionStatus is one of: active, cancelled, expired, refunded,
	// revoked, unknown
	SubscriptionStatus string `json:"subscription_status" gorm:"not null;size:20;index"`

	// ExpiresDate is the raw millisecond timestamp from the notification
	ExpiresDate     string    `json:"expires_date" gorm:"size:30"`
	AutoRenewStatus bool      `json:"auto_renew_status"`
	LastUpdated     time.Time `json:"last_updated"`
}

// TableName specifies the table name
func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
