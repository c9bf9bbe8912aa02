package domain

import "time"

type TransactionStatus string

const (
	TxStatusSuccess TransactionStatus = "success"
	TxStatusFailed  TransactionStatus = "failed"

	// TxStatusPendingReconciliation marks the one divergent state the system
	// can reach: the provider confirmed the charge but the ledger settlement
	// did not commit. These records are never resolved automatically.
	TxStatusPendingReconciliation TransactionStatus = "pending_reconciliation"
)

// TransactionRecord is one row of the append-only spend journal. Records are
// created after a provider call resolves and are never updated or deleted.
type TransactionRecord struct {
	ID                string            `json:"id" db:"id"`
	UserID            string            `json:"user_id" db:"user_id"`
	ServiceType       ServiceType       `json:"service_type" db:"service_type"`
	Description       string            `json:"description" db:"description"`
	Amount            float64           `json:"amount" db:"amount"`
	Status            TransactionStatus `json:"status" db:"status"`
	Reference         string            `json:"reference_id" db:"reference_id"`
	ProviderReference string            `json:"provider_reference,omitempty" db:"provider_reference"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
}
