package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/provider"
)

// LookupUsecase fronts the read-only verification proxies. No local state,
// no side effects; every method is a pass-through to a provider with logging.
type LookupUsecase struct {
	biller provider.BillerProvider
	payout provider.PayoutProvider
	logger *zap.Logger
}

func NewLookupUsecase(biller provider.BillerProvider, payout provider.PayoutProvider, logger *zap.Logger) *LookupUsecase {
	return &LookupUsecase{
		biller: biller,
		payout: payout,
		logger: logger,
	}
}

// VerifyMeter resolves an electricity meter to the customer's name and
// address.
func (uc *LookupUsecase) VerifyMeter(ctx context.Context, serviceID, billersCode string) (*provider.CustomerDetails, error) {
	details, err := uc.biller.VerifyCustomer(ctx, serviceID, billersCode)
	if err != nil {
		uc.logger.Warn("meter verification failed",
			zap.String("service_id", serviceID),
			zap.String("billers_code", billersCode),
			zap.Error(err))
		return nil, err
	}
	return details, nil
}

// VerifySmartcard resolves a decoder smartcard to the subscriber's name.
func (uc *LookupUsecase) VerifySmartcard(ctx context.Context, serviceID, accountNumber string) (string, error) {
	name, err := uc.biller.VerifyBiller(ctx, serviceID, accountNumber)
	if err != nil {
		uc.logger.Warn("smartcard verification failed",
			zap.String("service_id", serviceID),
			zap.String("account_number", accountNumber),
			zap.Error(err))
		return "", err
	}
	return name, nil
}

// VerifyBettingAccount resolves a betting customer id; the biller answers
// through the same merchant-verify endpoint as meters.
func (uc *LookupUsecase) VerifyBettingAccount(ctx context.Context, serviceID, customerID string) (string, error) {
	details, err := uc.biller.VerifyCustomer(ctx, serviceID, customerID)
	if err != nil {
		uc.logger.Warn("betting account verification failed",
			zap.String("service_id", serviceID),
			zap.String("customer_id", customerID),
			zap.Error(err))
		return "", err
	}
	return details.Name, nil
}

// VerifyBankAccount resolves an account number and bank code to the
// registered account name via the payout provider.
func (uc *LookupUsecase) VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (string, error) {
	name, err := uc.payout.ResolveAccount(ctx, accountNumber, bankCode)
	if err != nil {
		uc.logger.Warn("bank account verification failed",
			zap.String("bank_code", bankCode),
			zap.Error(err))
		return "", err
	}
	return name, nil
}

// ServiceVariations lists the purchasable plans for a service.
func (uc *LookupUsecase) ServiceVariations(ctx context.Context, serviceID string) ([]provider.Plan, error) {
	plans, err := uc.biller.ServiceVariations(ctx, serviceID)
	if err != nil {
		uc.logger.Warn("variation listing failed",
			zap.String("service_id", serviceID),
			zap.Error(err))
		return nil, err
	}
	return plans, nil
}
