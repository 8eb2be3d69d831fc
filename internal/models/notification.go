package models

// Notification is the normalized form of one App Store server notification.
// Rows are append-only: a record is never mutated after it has been written,
// and duplicate deliveries become distinct rows.
//
// Date fields hold millisecond-since-epoch values exactly as the payload
// carried them (usually strings), so they stay opaque and auditable. An empty
// string means the payload did not carry the field.
type Notification struct {
	BaseModel

	// NotificationID is the opaque identifier assigned when the record is
	// appended to the log. Webhook log entries reference it.
	NotificationID string `json:"notification_id" gorm:"size:36;uniqueIndex"`

	NotificationType      string `json:"notification_type" gorm:"size:50;index"`
	TransactionID         string `json:"transaction_id" gorm:"size:100;index"`
	OriginalTransactionID string `json:"original_transaction_id" gorm:"size:100;index"`
	BundleID              string `json:"bundle_id" gorm:"size:100"`
	ProductID             string `json:"product_id" gorm:"size:100"`

	// UserID is derived from the receipt info (web_order_line_item_id, else
	// app_account_token). Some payload shapes carry no linkable identity.
	UserID string `json:"user_id" gorm:"size:100;index"`

	ExpiresDate      string `json:"expires_date" gorm:"size:30"`
	PurchaseDate     string `json:"purchase_date" gorm:"size:30"`
	CancellationDate string `json:"cancellation_date" gorm:"size:30"`

	// AutoRenewStatus is kept as the raw payload value; "" means the
	// notification did not specify it.
	AutoRenewStatus string `json:"auto_renew_status" gorm:"size:10"`

	// RawPayload is the original request body, verbatim, for audit and
	// forensic inspection of malformed payloads.
	RawPayload string `json:"raw_payload" gorm:"type:text"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notifications"
}
