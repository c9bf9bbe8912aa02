package vtpass

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Mystick682/ExTremeData/config"
	"github.com/Mystick682/ExTremeData/internal/provider"
)

// successCode is the sentinel VTpass returns on an accepted fulfillment;
// every other code is a failure.
const successCode = "000"

type Client struct {
	config     config.VTpassConfig
	httpClient *http.Client
}

func NewClient(cfg config.VTpassConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type payRequest struct {
	RequestID     string  `json:"request_id"`
	ServiceID     string  `json:"serviceID"`
	BillersCode   string  `json:"billersCode,omitempty"`
	VariationCode string  `json:"variation_code,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Quantity      int     `json:"quantity,omitempty"`
	Phone         string  `json:"phone"`
}

type payResponse struct {
	Code                string `json:"code"`
	ResponseDescription string `json:"response_description"`
	RequestID           string `json:"requestId"`
	Token               string `json:"token"`
	Cards               []struct {
		Serial string `json:"Serial"`
		Pin    string `json:"Pin"`
	} `json:"cards"`
	Content struct {
		Transactions struct {
			ProductName string `json:"product_name"`
		} `json:"transactions"`
	} `json:"content"`
}

// Pay issues one fulfillment call. The response code sentinel decides
// success; the provider's description is surfaced verbatim on failure.
func (c *Client) Pay(ctx context.Context, req provider.PayRequest) (*provider.Outcome, error) {
	phone := req.Phone
	if phone == "" {
		phone = c.config.DefaultPhone
	}

	body := payRequest{
		RequestID:     req.RequestID,
		ServiceID:     req.ServiceID,
		BillersCode:   req.BillersCode,
		VariationCode: req.VariationCode,
		Amount:        req.Amount,
		Quantity:      req.Quantity,
		Phone:         phone,
	}

	var resp payResponse
	if err := c.post(ctx, "/api/pay", body, &resp); err != nil {
		return nil, err
	}

	outcome := &provider.Outcome{
		Success:     resp.Code == successCode,
		Reference:   resp.RequestID,
		Description: resp.ResponseDescription,
		Token:       resp.Token,
		ProductName: resp.Content.Transactions.ProductName,
	}
	for _, card := range resp.Cards {
		outcome.Pins = append(outcome.Pins, card.Pin)
	}

	// Education pins: an accepted code without the cards payload is still a
	// failed purchase, there is nothing to hand the user.
	if req.Quantity > 0 && outcome.Success && len(outcome.Pins) == 0 {
		outcome.Success = false
		if outcome.Description == "" {
			outcome.Description = "Failed to purchase PINs."
		}
	}

	return outcome, nil
}

type verifyResponse struct {
	ResponseDescription string `json:"response_description"`
	Content             struct {
		CustomerName string `json:"Customer_Name"`
		Address      string `json:"Address"`
	} `json:"content"`
}

// VerifyCustomer resolves a meter, smartcard or betting customer id through
// merchant-verify. Failure is signaled by the provider omitting Customer_Name.
func (c *Client) VerifyCustomer(ctx context.Context, serviceID, billersCode string) (*provider.CustomerDetails, error) {
	body := map[string]string{
		"serviceID":   serviceID,
		"billersCode": billersCode,
	}

	var resp verifyResponse
	if err := c.post(ctx, "/api/merchant-verify", body, &resp); err != nil {
		return nil, err
	}

	if resp.Content.CustomerName == "" {
		if resp.ResponseDescription != "" {
			return nil, fmt.Errorf("%s", resp.ResponseDescription)
		}
		return nil, fmt.Errorf("Could not verify customer details.")
	}

	return &provider.CustomerDetails{
		Name:    resp.Content.CustomerName,
		Address: resp.Content.Address,
	}, nil
}

type billerVerifyResponse struct {
	BillerName string `json:"biller_name"`
	Message    string `json:"message"`
}

// VerifyBiller resolves a decoder smartcard through biller-verify, which
// answers with biller_name instead of the merchant-verify content envelope.
func (c *Client) VerifyBiller(ctx context.Context, serviceID, accountNumber string) (string, error) {
	body := map[string]string{
		"serviceId":     serviceID,
		"type":          "decoder",
		"accountNumber": accountNumber,
	}

	var resp billerVerifyResponse
	if err := c.post(ctx, "/api/biller-verify", body, &resp); err != nil {
		return "", err
	}

	if resp.BillerName == "" {
		if resp.Message != "" {
			return "", fmt.Errorf("%s", resp.Message)
		}
		return "", fmt.Errorf("Could not verify smartcard number.")
	}

	return resp.BillerName, nil
}

type variationsResponse struct {
	ResponseDescription string `json:"response_description"`
	Content             struct {
		// VTpass spells the field "varations".
		Variations []struct {
			Name            string `json:"name"`
			VariationCode   string `json:"variation_code"`
			VariationAmount string `json:"variation_amount"`
		} `json:"varations"`
	} `json:"content"`
}

func (c *Client) ServiceVariations(ctx context.Context, serviceID string) ([]provider.Plan, error) {
	url := fmt.Sprintf("%s/api/service-variations?serviceID=%s", c.config.BaseURL, serviceID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result variationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Content.Variations) == 0 {
		if result.ResponseDescription != "" {
			return nil, fmt.Errorf("%s", result.ResponseDescription)
		}
		return nil, fmt.Errorf("Could not fetch service plans.")
	}

	plans := make([]provider.Plan, 0, len(result.Content.Variations))
	for _, v := range result.Content.Variations {
		price, _ := strconv.ParseFloat(v.VariationAmount, 64)
		plans = append(plans, provider.Plan{
			Name:          v.Name,
			VariationCode: v.VariationCode,
			Price:         price,
		})
	}

	return plans, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.config.APIKey)
	httpReq.Header.Set("secret-key", c.config.SecretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
