package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"appstore-notifications/pkg/logging"
)

// ReceiptValidator proxies receipt blobs to the App Store verifyReceipt
// endpoint and hands the remote response back verbatim. There is no local
// validation logic.
type ReceiptValidator struct {
	url          string
	sharedSecret string
	httpClient   *http.Client
}

// NewReceiptValidator creates a validator for the given endpoint.
func NewReceiptValidator(url, sharedSecret string) *ReceiptValidator {
	return &ReceiptValidator{
		url:          url,
		sharedSecret: sharedSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate forwards the receipt to the validation endpoint and returns the
// remote body unmodified. Transport failures yield a structured
// {"status":-1,"error":...} payload instead of an error, so the caller can
// always return a JSON body.
func (v *ReceiptValidator) Validate(receiptData string) json.RawMessage {
	requestBody := map[string]interface{}{
		"receipt-data":             receiptData,
		"password":                 v.sharedSecret,
		"exclude-old-transactions": true,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return validationError(err)
	}

	resp, err := v.httpClient.Post(v.url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		logging.Errorf("Receipt validation request failed: %v", err)
		return validationError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.Errorf("Failed to read receipt validation response: %v", err)
		return validationError(err)
	}

	return body
}

func validationError(err error) json.RawMessage {
	payload, _ := json.Marshal(map[string]interface{}{
		"status": -1,
		"error":  err.Error(),
	})
	return payload
}
