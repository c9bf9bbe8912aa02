package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Mystick682/ExTremeData/config"
	"github.com/Mystick682/ExTremeData/internal/provider"
)

type Client struct {
	config     config.PaystackConfig
	httpClient *http.Client
}

func NewClient(cfg config.PaystackConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AccountName   string `json:"account_name"`
		RecipientCode string `json:"recipient_code"`
		Reference     string `json:"reference"`
	} `json:"data"`
}

// ResolveAccount maps an account number and bank code to the registered
// account name.
func (c *Client) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (string, error) {
	url := fmt.Sprintf("%s/bank/resolve?account_number=%s&bank_code=%s",
		c.config.BaseURL, accountNumber, bankCode)

	var resp apiResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return "", err
	}

	if !resp.Status {
		if resp.Message != "" {
			return "", fmt.Errorf("%s", resp.Message)
		}
		return "", fmt.Errorf("Could not verify account details.")
	}

	return resp.Data.AccountName, nil
}

// CreateRecipient registers the destination account and returns the recipient
// code required to initiate a transfer.
func (c *Client) CreateRecipient(ctx context.Context, name, accountNumber, bankCode string) (*provider.Recipient, error) {
	body := map[string]string{
		"type":           "nuban",
		"name":           name,
		"account_number": accountNumber,
		"bank_code":      bankCode,
		"currency":       "NGN",
	}

	var resp apiResponse
	if err := c.do(ctx, http.MethodPost, c.config.BaseURL+"/transferrecipient", body, &resp); err != nil {
		return nil, err
	}

	if !resp.Status {
		return nil, fmt.Errorf("Paystack Error (Recipient): %s", resp.Message)
	}

	return &provider.Recipient{Code: resp.Data.RecipientCode, Name: name}, nil
}

// InitiateTransfer moves the amount to a previously created recipient.
// Paystack denominates transfers in kobo.
func (c *Client) InitiateTransfer(ctx context.Context, recipientCode string, amount float64, reason string) (*provider.Outcome, error) {
	body := map[string]interface{}{
		"source":    "balance",
		"reason":    reason,
		"amount":    int64(math.Round(amount * 100)),
		"recipient": recipientCode,
	}

	var resp apiResponse
	if err := c.do(ctx, http.MethodPost, c.config.BaseURL+"/transfer", body, &resp); err != nil {
		return nil, err
	}

	if !resp.Status {
		return &provider.Outcome{
			Success:     false,
			Description: fmt.Sprintf("Paystack Error (Transfer): %s", resp.Message),
		}, nil
	}

	return &provider.Outcome{
		Success:     true,
		Reference:   resp.Data.Reference,
		Description: resp.Message,
	}, nil
}

func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

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
