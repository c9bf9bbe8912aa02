package domain

import "errors"

var (
	// ErrUnauthenticated means no user could be resolved for the bearer
	// credential on the request.
	ErrUnauthenticated = errors.New("User not authenticated")

	// ErrInsufficientBalance aborts a spend before any provider call is made.
	ErrInsufficientBalance = errors.New("Insufficient balance.")

	// ErrReconciliationPending is returned when the provider confirmed the
	// charge but the ledger settlement did not commit. The caller must not
	// retry blindly; the journal carries a pending_reconciliation record.
	ErrReconciliationPending = errors.New("purchase accepted by provider but wallet settlement failed; pending reconciliation")
)
