package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/domain"
	"github.com/Mystick682/ExTremeData/internal/provider"
	"github.com/Mystick682/ExTremeData/internal/repository"
)

// TransferUsecase orchestrates bank payouts: recipient creation then transfer
// initiation against the payout provider, chained by the recipient code.
// Either call failing aborts the whole attempt with the balance untouched.
type TransferUsecase struct {
	ledger  repository.LedgerRepository
	journal repository.TransactionRepository
	payout  provider.PayoutProvider
	logger  *zap.Logger
}

func NewTransferUsecase(
	ledger repository.LedgerRepository,
	journal repository.TransactionRepository,
	payout provider.PayoutProvider,
	logger *zap.Logger,
) *TransferUsecase {
	return &TransferUsecase{
		ledger:  ledger,
		journal: journal,
		payout:  payout,
		logger:  logger,
	}
}

func (uc *TransferUsecase) ProcessTransfer(ctx context.Context, user *domain.User, req *domain.TransferRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	balance, err := uc.ledger.Balance(ctx, user.ID)
	if err != nil {
		uc.logger.Error("balance read failed",
			zap.String("user_id", user.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	if balance < req.Amount {
		uc.logger.Info("transfer rejected, insufficient balance",
			zap.String("user_id", user.ID),
			zap.Float64("balance", balance),
			zap.Float64("required", req.Amount))
		return nil, domain.ErrInsufficientBalance
	}

	// Once the payout flow starts, a caller disconnect must not orphan a
	// queued transfer; both provider calls run to completion.
	ctx = context.WithoutCancel(ctx)

	uc.logger.Info("creating transfer recipient",
		zap.String("user_id", user.ID),
		zap.String("bank_code", req.BankCode),
		zap.String("account_number", req.AccountNumber))

	recipient, err := uc.payout.CreateRecipient(ctx, req.AccountName, req.AccountNumber, req.BankCode)
	if err != nil {
		uc.logger.Warn("recipient creation failed",
			zap.String("user_id", user.ID),
			zap.String("account_number", req.AccountNumber),
			zap.Error(err))
		uc.appendFailed(ctx, user.ID, req, fmt.Sprintf("FAIL_%d", time.Now().UnixMilli()))
		return nil, err
	}

	outcome, err := uc.payout.InitiateTransfer(ctx, recipient.Code, req.Amount, "Wallet Withdrawal")
	if err != nil {
		uc.logger.Error("transfer initiation did not resolve",
			zap.String("user_id", user.ID),
			zap.String("recipient_code", recipient.Code),
			zap.Error(err))
		uc.appendFailed(ctx, user.ID, req, fmt.Sprintf("FAIL_%d", time.Now().UnixMilli()))
		return nil, fmt.Errorf("provider call failed, please retry: %w", err)
	}

	if !outcome.Success {
		reference := outcome.Reference
		if reference == "" {
			reference = fmt.Sprintf("FAIL_%d", time.Now().UnixMilli())
		}
		uc.logger.Warn("transfer rejected by payout provider",
			zap.String("user_id", user.ID),
			zap.String("recipient_code", recipient.Code),
			zap.String("provider_description", outcome.Description))
		uc.appendFailed(ctx, user.ID, req, reference)
		return nil, fmt.Errorf("%s", outcome.Description)
	}

	record := &domain.TransactionRecord{
		UserID:      user.ID,
		ServiceType: domain.ServiceTransfer,
		Description: fmt.Sprintf("Transfer to %s (%s)", req.AccountName, req.AccountNumber),
		Amount:      req.Amount,
		Status:      domain.TxStatusSuccess,
		Reference:   outcome.Reference,
	}

	newBalance, err := uc.ledger.SettleDebit(ctx, user.ID, req.Amount, record)
	if err != nil {
		uc.logger.Error("settlement failed after transfer was queued",
			zap.String("user_id", user.ID),
			zap.String("transfer_reference", outcome.Reference),
			zap.Error(err))
		reconciliation := &domain.TransactionRecord{
			UserID:            user.ID,
			ServiceType:       domain.ServiceTransfer,
			Description:       fmt.Sprintf("Transfer to %s (%s)", req.AccountName, req.AccountNumber),
			Amount:            req.Amount,
			Status:            domain.TxStatusPendingReconciliation,
			Reference:         outcome.Reference,
			ProviderReference: outcome.Reference,
		}
		if appendErr := uc.journal.Append(ctx, reconciliation); appendErr != nil {
			uc.logger.Error("journal append failed",
				zap.String("user_id", user.ID),
				zap.String("reference", outcome.Reference),
				zap.Error(appendErr))
		}
		return nil, domain.ErrReconciliationPending
	}

	uc.logger.Info("transfer settled",
		zap.String("user_id", user.ID),
		zap.String("transfer_reference", outcome.Reference),
		zap.Float64("amount", req.Amount),
		zap.Float64("new_balance", newBalance))

	return &PurchaseResult{NewBalance: newBalance, Reference: outcome.Reference}, nil
}

func (uc *TransferUsecase) appendFailed(ctx context.Context, userID string, req *domain.TransferRequest, reference string) {
	record := &domain.TransactionRecord{
		UserID:      userID,
		ServiceType: domain.ServiceTransfer,
		Description: fmt.Sprintf("FAILED transfer to %s (%s)", req.AccountName, req.AccountNumber),
		Amount:      req.Amount,
		Status:      domain.TxStatusFailed,
		Reference:   reference,
	}

	if err := uc.journal.Append(ctx, record); err != nil {
		uc.logger.Error("journal append failed",
			zap.String("user_id", userID),
			zap.String("reference", reference),
			zap.Error(err))
	}
}
