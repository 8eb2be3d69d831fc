package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForwardsReceiptAndReturnsBodyVerbatim(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"status":0,"environment":"Production"}`))
	}))
	defer server.Close()

	validator := NewReceiptValidator(server.URL, "secret123")

	result := validator.Validate("base64-receipt-blob")

	assert.Equal(t, "base64-receipt-blob", received["receipt-data"])
	assert.Equal(t, "secret123", received["password"])
	assert.Equal(t, true, received["exclude-old-transactions"])
	assert.JSONEq(t, `{"status":0,"environment":"Production"}`, string(result))
}

func TestValidateReturnsAppleErrorBodyUnmodified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":21007}`))
	}))
	defer server.Close()

	validator := NewReceiptValidator(server.URL, "secret123")

	assert.JSONEq(t, `{"status":21007}`, string(validator.Validate("blob")))
}

func TestValidateTransportFailureReturnsStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	validator := NewReceiptValidator(server.URL, "secret123")

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(validator.Validate("blob"), &result))

	assert.Equal(t, float64(-1), result["status"])
	assert.NotEmpty(t, result["error"])
}
