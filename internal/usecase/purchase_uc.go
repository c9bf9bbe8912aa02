package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/domain"
	"github.com/Mystick682/ExTremeData/internal/provider"
	"github.com/Mystick682/ExTremeData/internal/repository"
)

// PurchaseResult is what a settled spend hands back to the caller.
type PurchaseResult struct {
	NewBalance    float64
	Token         string
	Pins          []string
	TransactionID string
	Reference     string
}

// PurchaseUsecase sequences every biller spend: validate, confirm balance,
// call the provider, and only on provider success settle the wallet and
// journal the outcome. The provider is never called before sufficiency is
// confirmed, and the balance is never touched before the provider succeeds.
type PurchaseUsecase struct {
	ledger  repository.LedgerRepository
	journal repository.TransactionRepository
	biller  provider.BillerProvider
	logger  *zap.Logger
}

func NewPurchaseUsecase(
	ledger repository.LedgerRepository,
	journal repository.TransactionRepository,
	biller provider.BillerProvider,
	logger *zap.Logger,
) *PurchaseUsecase {
	return &PurchaseUsecase{
		ledger:  ledger,
		journal: journal,
		biller:  biller,
		logger:  logger,
	}
}

func (uc *PurchaseUsecase) PurchaseAirtime(ctx context.Context, user *domain.User, req *domain.AirtimeRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return uc.execute(ctx, user, spend{
		serviceType: domain.ServiceAirtime,
		required:    req.RequiredAmount(),
		beneficiary: req.PhoneNumber,
		pay: provider.PayRequest{
			RequestID: provider.NewRequestID("AIRTIME"),
			ServiceID: req.ServiceID,
			Amount:    req.Amount,
			Phone:     req.PhoneNumber,
		},
		describe: func(o *provider.Outcome) string {
			return fmt.Sprintf("%s airtime for %s", req.ServiceID, req.PhoneNumber)
		},
		failDescription: fmt.Sprintf("FAILED %s for %s", req.ServiceID, req.PhoneNumber),
	})
}

func (uc *PurchaseUsecase) PurchaseData(ctx context.Context, user *domain.User, req *domain.DataRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return uc.execute(ctx, user, spend{
		serviceType: domain.ServiceData,
		required:    req.RequiredAmount(),
		beneficiary: req.PhoneNumber,
		pay: provider.PayRequest{
			RequestID:     provider.NewRequestID("DATA"),
			ServiceID:     req.ServiceID,
			BillersCode:   req.PhoneNumber,
			VariationCode: req.VariationCode,
			Amount:        req.Amount,
			Phone:         req.PhoneNumber,
		},
		describe: func(o *provider.Outcome) string {
			return fmt.Sprintf("%s data for %s", req.ServiceID, req.PhoneNumber)
		},
		failDescription: fmt.Sprintf("FAILED %s for %s", req.ServiceID, req.PhoneNumber),
	})
}

func (uc *PurchaseUsecase) PurchaseCable(ctx context.Context, user *domain.User, req *domain.CableRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return uc.execute(ctx, user, spend{
		serviceType: domain.ServiceCable,
		required:    req.RequiredAmount(),
		beneficiary: req.BillersCode,
		pay: provider.PayRequest{
			RequestID:     provider.NewRequestID("CABLE"),
			ServiceID:     req.ServiceID,
			BillersCode:   req.BillersCode,
			VariationCode: req.VariationCode,
		},
		describe: func(o *provider.Outcome) string {
			product := o.ProductName
			if product == "" {
				product = req.ServiceID
			}
			return fmt.Sprintf("%s for %s", product, req.BillersCode)
		},
		failDescription: fmt.Sprintf("FAILED %s for %s", req.ServiceID, req.BillersCode),
	})
}

func (uc *PurchaseUsecase) PurchaseElectricity(ctx context.Context, user *domain.User, req *domain.ElectricityRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	disco := strings.ToUpper(strings.ReplaceAll(req.ServiceID, "-electric", ""))

	return uc.execute(ctx, user, spend{
		serviceType: domain.ServiceElectricity,
		required:    req.RequiredAmount(),
		beneficiary: req.BillersCode,
		pay: provider.PayRequest{
			RequestID:     provider.NewRequestID("ELEC"),
			ServiceID:     req.ServiceID,
			BillersCode:   req.BillersCode,
			VariationCode: req.VariationCode,
			Amount:        req.Amount,
		},
		describe: func(o *provider.Outcome) string {
			return fmt.Sprintf("%s (%s) for %s", disco, req.VariationCode, req.BillersCode)
		},
		failDescription: fmt.Sprintf("FAILED %s for %s", req.ServiceID, req.BillersCode),
	})
}

func (uc *PurchaseUsecase) PurchaseBetting(ctx context.Context, user *domain.User, req *domain.BettingRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return uc.execute(ctx, user, spend{
		serviceType: domain.ServiceBetting,
		required:    req.RequiredAmount(),
		beneficiary: req.BillersCode,
		pay: provider.PayRequest{
			RequestID:   provider.NewRequestID("BET"),
			ServiceID:   req.ServiceID,
			BillersCode: req.BillersCode,
			// Betting top-ups all ride the same variation at the biller.
			VariationCode: "wallet-funding",
			Amount:        req.Amount,
		},
		describe: func(o *provider.Outcome) string {
			return fmt.Sprintf("%s top-up for %s", strings.ToUpper(req.ServiceID), req.BillersCode)
		},
		failDescription: fmt.Sprintf("FAILED %s for %s", req.ServiceID, req.BillersCode),
	})
}

func (uc *PurchaseUsecase) PurchaseEducation(ctx context.Context, user *domain.User, req *domain.EducationRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return uc.execute(ctx, user, spend{
		serviceType: domain.ServiceEducation,
		required:    req.RequiredAmount(),
		beneficiary: "waec",
		pay: provider.PayRequest{
			RequestID:     provider.NewRequestID("WAEC"),
			ServiceID:     "waec",
			VariationCode: req.VariationCode,
			Quantity:      req.Quantity,
		},
		describe: func(o *provider.Outcome) string {
			return fmt.Sprintf("%d x WAEC Result Checker PIN(s)", req.Quantity)
		},
		failDescription: fmt.Sprintf("FAILED waec x%d", req.Quantity),
	})
}

// spend is one normalized purchase attempt flowing through execute.
type spend struct {
	serviceType     domain.ServiceType
	required        float64
	beneficiary     string
	pay             provider.PayRequest
	describe        func(*provider.Outcome) string
	failDescription string
}

func (uc *PurchaseUsecase) execute(ctx context.Context, user *domain.User, s spend) (*PurchaseResult, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	balance, err := uc.ledger.Balance(ctx, user.ID)
	if err != nil {
		uc.logger.Error("balance read failed",
			zap.String("user_id", user.ID),
			zap.String("service_type", string(s.serviceType)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	if balance < s.required {
		uc.logger.Info("purchase rejected, insufficient balance",
			zap.String("user_id", user.ID),
			zap.String("service_type", string(s.serviceType)),
			zap.Float64("balance", balance),
			zap.Float64("required", s.required))
		return nil, domain.ErrInsufficientBalance
	}

	// A caller disconnect must not orphan an in-flight charge: once the
	// provider is invoked the attempt runs to completion and the resulting
	// state change is authoritative.
	ctx = context.WithoutCancel(ctx)

	uc.logger.Info("invoking biller",
		zap.String("user_id", user.ID),
		zap.String("service_type", string(s.serviceType)),
		zap.String("request_id", s.pay.RequestID),
		zap.String("beneficiary", s.beneficiary),
		zap.Float64("required", s.required))

	outcome, err := uc.biller.Pay(ctx, s.pay)
	if err != nil {
		// The call never resolved, so the provider's state is unknown. The
		// balance stays untouched and the attempt is journaled as failed.
		uc.logger.Error("biller call did not resolve",
			zap.String("user_id", user.ID),
			zap.String("request_id", s.pay.RequestID),
			zap.Error(err))
		uc.appendRecord(ctx, user.ID, s, domain.TxStatusFailed, s.pay.RequestID, "")
		return nil, fmt.Errorf("provider call failed, please retry: %w", err)
	}

	if !outcome.Success {
		reference := outcome.Reference
		if reference == "" {
			reference = fmt.Sprintf("FAIL_%d", time.Now().UnixMilli())
		}
		uc.logger.Warn("biller rejected purchase",
			zap.String("user_id", user.ID),
			zap.String("request_id", s.pay.RequestID),
			zap.String("provider_description", outcome.Description))
		uc.appendRecord(ctx, user.ID, s, domain.TxStatusFailed, reference, "")
		return nil, fmt.Errorf("VTpass Error: %s", outcome.Description)
	}

	record := &domain.TransactionRecord{
		UserID:            user.ID,
		ServiceType:       s.serviceType,
		Description:       s.describe(outcome),
		Amount:            s.required,
		Status:            domain.TxStatusSuccess,
		Reference:         outcome.Reference,
		ProviderReference: outcome.Reference,
	}

	newBalance, err := uc.ledger.SettleDebit(ctx, user.ID, s.required, record)
	if err != nil {
		// The provider already charged; whatever kept the settlement from
		// committing leaves the books out of step until someone reconciles.
		uc.logger.Error("settlement failed after provider success",
			zap.String("user_id", user.ID),
			zap.String("request_id", s.pay.RequestID),
			zap.String("provider_reference", outcome.Reference),
			zap.Error(err))
		uc.appendRecord(ctx, user.ID, s, domain.TxStatusPendingReconciliation, outcome.Reference, outcome.Reference)
		return nil, domain.ErrReconciliationPending
	}

	uc.logger.Info("purchase settled",
		zap.String("user_id", user.ID),
		zap.String("service_type", string(s.serviceType)),
		zap.String("provider_reference", outcome.Reference),
		zap.Float64("amount", s.required),
		zap.Float64("new_balance", newBalance))

	return &PurchaseResult{
		NewBalance:    newBalance,
		Token:         outcome.Token,
		Pins:          outcome.Pins,
		TransactionID: outcome.Reference,
		Reference:     outcome.Reference,
	}, nil
}

// appendRecord journals a non-settled attempt. Best effort: a journal write
// failure here is logged but does not mask the primary error.
func (uc *PurchaseUsecase) appendRecord(ctx context.Context, userID string, s spend, status domain.TransactionStatus, reference, providerRef string) {
	record := &domain.TransactionRecord{
		UserID:            userID,
		ServiceType:       s.serviceType,
		Description:       s.failDescription,
		Amount:            s.required,
		Status:            status,
		Reference:         reference,
		ProviderReference: providerRef,
	}

	if err := uc.journal.Append(ctx, record); err != nil {
		uc.logger.Error("journal append failed",
			zap.String("user_id", userID),
			zap.String("reference", reference),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}
