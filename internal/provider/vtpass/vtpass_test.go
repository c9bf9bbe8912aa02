package vtpass_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mystick682/ExTremeData/config"
	"github.com/Mystick682/ExTremeData/internal/provider"
	"github.com/Mystick682/ExTremeData/internal/provider/vtpass"
)

func newTestClient(serverURL string) *vtpass.Client {
	return vtpass.NewClient(config.VTpassConfig{
		BaseURL:      serverURL,
		APIKey:       "test-api-key",
		SecretKey:    "test-secret-key",
		DefaultPhone: "08000000000",
	})
}

func TestPay_Success(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pay", r.URL.Path)
		require.Equal(t, "test-api-key", r.Header.Get("api-key"))
		require.Equal(t, "test-secret-key", r.Header.Get("secret-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":                 "000",
			"response_description": "TRANSACTION SUCCESSFUL",
			"requestId":            "REQ-1",
			"content": map[string]interface{}{
				"transactions": map[string]interface{}{"product_name": "DStv Padi"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	outcome, err := client.Pay(context.Background(), provider.PayRequest{
		RequestID:     "XT_CABLE_1_abc",
		ServiceID:     "dstv",
		BillersCode:   "1234567890",
		VariationCode: "dstv-padi",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "REQ-1", outcome.Reference)
	assert.Equal(t, "DStv Padi", outcome.ProductName)

	// Flat-fee purchase: no amount on the wire, default phone supplied.
	assert.Equal(t, "XT_CABLE_1_abc", got["request_id"])
	assert.Equal(t, "08000000000", got["phone"])
	_, hasAmount := got["amount"]
	assert.False(t, hasAmount)
}

func TestPay_FailureSurfacesDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":                 "016",
			"response_description": "TRANSACTION FAILED",
			"requestId":            "REQ-2",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	outcome, err := client.Pay(context.Background(), provider.PayRequest{
		RequestID:   "XT_AIRTIME_1_abc",
		ServiceID:   "mtn",
		BillersCode: "08031234567",
		Amount:      500,
		Phone:       "08031234567",
	})

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "TRANSACTION FAILED", outcome.Description)
	assert.Equal(t, "REQ-2", outcome.Reference)
}

func TestPay_EducationRequiresCards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Accepted code but no cards payload: still a failed pin purchase.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":      "000",
			"requestId": "REQ-3",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	outcome, err := client.Pay(context.Background(), provider.PayRequest{
		RequestID:     "XT_WAEC_1_abc",
		ServiceID:     "waec",
		VariationCode: "waec-result",
		Quantity:      2,
	})

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "Failed to purchase PINs.", outcome.Description)
}

func TestPay_EducationPins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":      "000",
			"requestId": "REQ-4",
			"cards": []map[string]string{
				{"Serial": "S1", "Pin": "1111-2222"},
				{"Serial": "S2", "Pin": "3333-4444"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	outcome, err := client.Pay(context.Background(), provider.PayRequest{
		RequestID:     "XT_WAEC_1_abc",
		ServiceID:     "waec",
		VariationCode: "waec-result",
		Quantity:      2,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, []string{"1111-2222", "3333-4444"}, outcome.Pins)
}

func TestVerifyCustomer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/merchant-verify", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": map[string]interface{}{
				"Customer_Name": "ADA OBI",
				"Address":       "12 Marina Rd",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	details, err := client.VerifyCustomer(context.Background(), "ikedc-electric", "45021573892")

	require.NoError(t, err)
	assert.Equal(t, "ADA OBI", details.Name)
	assert.Equal(t, "12 Marina Rd", details.Address)
}

func TestVerifyCustomer_MissingNameIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response_description": "INVALID METER NUMBER",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.VerifyCustomer(context.Background(), "ikedc-electric", "000")

	require.Error(t, err)
	assert.Equal(t, "INVALID METER NUMBER", err.Error())
}

func TestVerifyBiller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/biller-verify", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "decoder", body["type"])

		json.NewEncoder(w).Encode(map[string]string{"biller_name": "CHUKWU EZE"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	name, err := client.VerifyBiller(context.Background(), "dstv", "1234567890")

	require.NoError(t, err)
	assert.Equal(t, "CHUKWU EZE", name)
}

func TestServiceVariations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/service-variations", r.URL.Path)
		require.Equal(t, "mtn-data", r.URL.Query().Get("serviceID"))

		// The biller misspells the field as "varations".
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": map[string]interface{}{
				"varations": []map[string]string{
					{"name": "1GB - 30 days", "variation_code": "mtn-1gb", "variation_amount": "300.00"},
					{"name": "2GB - 30 days", "variation_code": "mtn-2gb", "variation_amount": "500.00"},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	plans, err := client.ServiceVariations(context.Background(), "mtn-data")

	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "mtn-1gb", plans[0].VariationCode)
	assert.Equal(t, float64(300), plans[0].Price)
}

func TestServiceVariations_EmptyIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response_description": "SERVICE NOT FOUND",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ServiceVariations(context.Background(), "nope")

	require.Error(t, err)
	assert.Equal(t, "SERVICE NOT FOUND", err.Error())
}
