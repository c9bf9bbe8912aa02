package paystack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mystick682/ExTremeData/config"
	"github.com/Mystick682/ExTremeData/internal/provider/paystack"
)

func newTestClient(serverURL string) *paystack.Client {
	return paystack.NewClient(config.PaystackConfig{
		BaseURL:   serverURL,
		SecretKey: "sk_test_abc",
	})
}

func TestResolveAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bank/resolve", r.URL.Path)
		require.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		require.Equal(t, "0123456789", r.URL.Query().Get("account_number"))
		require.Equal(t, "058", r.URL.Query().Get("bank_code"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   map[string]string{"account_name": "ADA OBI"},
		})
	}))
	defer server.Close()

	name, err := newTestClient(server.URL).ResolveAccount(context.Background(), "0123456789", "058")

	require.NoError(t, err)
	assert.Equal(t, "ADA OBI", name)
}

func TestResolveAccount_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Could not resolve account name",
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ResolveAccount(context.Background(), "0000000000", "058")

	require.Error(t, err)
	assert.Equal(t, "Could not resolve account name", err.Error())
}

func TestCreateRecipient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transferrecipient", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "nuban", body["type"])
		assert.Equal(t, "NGN", body["currency"])
		assert.Equal(t, "ADA OBI", body["name"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   map[string]string{"recipient_code": "RCP_xyz"},
		})
	}))
	defer server.Close()

	recipient, err := newTestClient(server.URL).CreateRecipient(context.Background(), "ADA OBI", "0123456789", "058")

	require.NoError(t, err)
	assert.Equal(t, "RCP_xyz", recipient.Code)
}

func TestCreateRecipient_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid bank code",
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreateRecipient(context.Background(), "ADA OBI", "0123456789", "999")

	require.Error(t, err)
	assert.Equal(t, "Paystack Error (Recipient): Invalid bank code", err.Error())
}

func TestInitiateTransfer_AmountInKobo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transfer", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "balance", body["source"])
		assert.Equal(t, float64(200000), body["amount"], "2000 naira is 200000 kobo")
		assert.Equal(t, "RCP_xyz", body["recipient"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   map[string]string{"reference": "TRF_abc"},
		})
	}))
	defer server.Close()

	outcome, err := newTestClient(server.URL).InitiateTransfer(context.Background(), "RCP_xyz", 2000, "Wallet Withdrawal")

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "TRF_abc", outcome.Reference)
}

func TestInitiateTransfer_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Insufficient balance",
		})
	}))
	defer server.Close()

	outcome, err := newTestClient(server.URL).InitiateTransfer(context.Background(), "RCP_xyz", 2000, "Wallet Withdrawal")

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "Paystack Error (Transfer): Insufficient balance", outcome.Description)
}
