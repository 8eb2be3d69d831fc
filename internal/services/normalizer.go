package services

import (
	"fmt"
	"strconv"

	"appstore-notifications/internal/models"
	"appstore-notifications/pkg/logging"
)

// Normalize converts a decoded notification payload into a Notification
// record. It never fails: a structurally broken payload degrades to a record
// carrying only the raw body, so even poison pills end up in the durable log.
//
// Two historical payload shapes are merged. Shape (1) is a top-level
// latest_receipt_info (object, or array of which the first element is taken).
// Shape (2) wraps the same thing in unified_receipt; its fields override
// shape (1)'s field by field.
func Normalize(doc map[string]interface{}, raw []byte) *models.Notification {
	record := &models.Notification{RawPayload: string(raw)}

	if doc == nil {
		logging.Warnf("Normalizing nil document, keeping raw payload only")
		return record
	}

	receipt, err := mergedReceiptInfo(doc)
	if err != nil {
		logging.Warnf("Malformed notification payload (%v), keeping raw payload only", err)
		return record
	}

	// Ordered field resolution: for each field, the first non-empty source
	// wins. Receipt fields come from the merged shape-(2)-over-shape-(1)
	// receipt info; only notification_type, auto_renew_status and the
	// bundle_id fallback read the top level.
	record.NotificationType = stringField(doc, "notification_type")
	record.TransactionID = stringField(receipt, "transaction_id")
	record.OriginalTransactionID = stringField(receipt, "original_transaction_id")
	record.ProductID = stringField(receipt, "product_id")
	record.BundleID = firstNonEmpty(
		stringField(doc, "bundle_id"),
		stringField(receipt, "bundle_id"),
	)
	record.UserID = firstNonEmpty(
		stringField(receipt, "web_order_line_item_id"),
		stringField(receipt, "app_account_token"),
	)
	record.ExpiresDate = firstNonEmpty(
		stringField(receipt, "expires_date_ms"),
		stringField(receipt, "expires_date"),
	)
	record.PurchaseDate = firstNonEmpty(
		stringField(receipt, "purchase_date_ms"),
		stringField(receipt, "purchase_date"),
	)
	record.CancellationDate = firstNonEmpty(
		stringField(receipt, "cancellation_date_ms"),
		stringField(receipt, "cancellation_date"),
	)
	record.AutoRenewStatus = stringField(doc, "auto_renew_status")

	return record
}

// mergedReceiptInfo extracts the shape (1) receipt info and overlays the
// unified_receipt one on top of it. A key that is absent is fine; a key that
// is present with the wrong type is a structural failure.
func mergedReceiptInfo(doc map[string]interface{}) (map[string]interface{}, error) {
	base, err := receiptInfoField(doc, "latest_receipt_info")
	if err != nil {
		return nil, err
	}

	var overlay map[string]interface{}
	if rawUnified, ok := doc["unified_receipt"]; ok {
		unified, ok := rawUnified.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unified_receipt is %T, expected object", rawUnified)
		}
		overlay, err = receiptInfoField(unified, "latest_receipt_info")
		if err != nil {
			return nil, err
		}
	}

	merged := make(map[string]interface{}, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged, nil
}

// receiptInfoField reads a latest_receipt_info value that may legally be a
// single object or a non-empty array of objects (first element wins).
func receiptInfoField(doc map[string]interface{}, key string) (map[string]interface{}, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, nil
	}

	switch v := raw.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		if len(v) == 0 {
			return nil, nil
		}
		first, ok := v[0].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s[0] is %T, expected object", key, v[0])
		}
		return first, nil
	default:
		return nil, fmt.Errorf("%s is %T, expected object or array", key, raw)
	}
}

// stringField stringifies a loosely typed JSON value. Payloads carry numbers
// both as strings and as raw JSON numbers depending on their vintage.
func stringField(doc map[string]interface{}, key string) string {
	if doc == nil {
		return ""
	}

	switch v := doc[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
