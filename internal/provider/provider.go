package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRequestID builds the provider-facing idempotency token for one attempt.
// Millisecond clock plus a random fragment keeps ids distinct even across
// attempts issued in the same instant.
func NewRequestID(tag string) string {
	return fmt.Sprintf("XT_%s_%d_%s",
		strings.ToUpper(tag),
		time.Now().UnixMilli(),
		strings.SplitN(uuid.NewString(), "-", 2)[0],
	)
}

// Outcome is the single normalized result every provider call is reduced to
// at the gateway boundary. Success is decided by the provider's own sentinel
// (status code or flag); Description carries the provider's wording verbatim
// on failure.
type Outcome struct {
	Success     bool
	Reference   string
	Description string

	// Optional payload, populated per fulfillment kind.
	Token       string   // electricity prepaid token
	Pins        []string // education e-pins
	ProductName string   // cable product name
}

// PayRequest carries the normalized fields of a single fulfillment call.
// RequestID must be unique per attempt so the provider can deduplicate
// retried submissions.
type PayRequest struct {
	RequestID     string
	ServiceID     string
	BillersCode   string
	VariationCode string
	Amount        float64 // zero for flat-fee variants (cable, education)
	Quantity      int     // non-zero for education pins only
	Phone         string  // falls back to the configured default when empty
}

// CustomerDetails is the normalized merchant-verify result.
type CustomerDetails struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Plan is one entry of a service's variation listing.
type Plan struct {
	Name          string  `json:"name"`
	VariationCode string  `json:"variation_code"`
	Price         float64 `json:"price"`
}

// BillerProvider abstracts the billing provider that fulfills airtime, data,
// cable, electricity, betting and education purchases.
type BillerProvider interface {
	// Pay issues one fulfillment call. A non-nil error means the call never
	// resolved (transport failure, indeterminate); a resolved call with a
	// non-success sentinel comes back as Outcome{Success: false}.
	Pay(ctx context.Context, req PayRequest) (*Outcome, error)

	// VerifyCustomer resolves a meter number, smartcard or betting customer
	// id to the customer's name (and address, where the biller returns one).
	VerifyCustomer(ctx context.Context, serviceID, billersCode string) (*CustomerDetails, error)

	// VerifyBiller resolves a decoder smartcard through the biller-verify
	// endpoint, which answers with a different shape than merchant-verify.
	VerifyBiller(ctx context.Context, serviceID, accountNumber string) (string, error)

	// ServiceVariations lists the purchasable plans for a service.
	ServiceVariations(ctx context.Context, serviceID string) ([]Plan, error)
}

// Recipient is the payout provider's handle for a resolved bank account.
type Recipient struct {
	Code string
	Name string
}

// PayoutProvider abstracts the bank payout provider. A transfer is two
// sequential calls: CreateRecipient then InitiateTransfer, chained by the
// recipient code.
type PayoutProvider interface {
	ResolveAccount(ctx context.Context, accountNumber, bankCode string) (string, error)
	CreateRecipient(ctx context.Context, name, accountNumber, bankCode string) (*Recipient, error)
	InitiateTransfer(ctx context.Context, recipientCode string, amount float64, reason string) (*Outcome, error)
}
