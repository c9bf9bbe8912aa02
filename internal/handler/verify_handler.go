package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/usecase"
)

// VerifyHandler serves the stateless lookup proxies. Request and response
// shapes mirror the biller/payout verification endpoints.
type VerifyHandler struct {
	lookupUC *usecase.LookupUsecase
	logger   *zap.Logger
}

func NewVerifyHandler(lookupUC *usecase.LookupUsecase, logger *zap.Logger) *VerifyHandler {
	return &VerifyHandler{
		lookupUC: lookupUC,
		logger:   logger,
	}
}

func (h *VerifyHandler) HandleVerifyMeter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID   string `json:"serviceID"`
		BillersCode string `json:"billersCode"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ServiceID == "" || req.BillersCode == "" {
		sendErrorMessage(w, "serviceID and billersCode are required.")
		return
	}

	details, err := h.lookupUC.VerifyMeter(r.Context(), req.ServiceID, req.BillersCode)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{"customerDetails": details})
}

func (h *VerifyHandler) HandleVerifySmartcard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID   string `json:"serviceID"`
		BillersCode string `json:"billersCode"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ServiceID == "" || req.BillersCode == "" {
		sendErrorMessage(w, "serviceID and billersCode are required.")
		return
	}

	name, err := h.lookupUC.VerifySmartcard(r.Context(), req.ServiceID, req.BillersCode)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]string{"customerName": name})
}

func (h *VerifyHandler) HandleVerifyBettingAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID  string `json:"serviceID"`
		CustomerID string `json:"customerId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ServiceID == "" || req.CustomerID == "" {
		sendErrorMessage(w, "serviceID and customerId are required.")
		return
	}

	name, err := h.lookupUC.VerifyBettingAccount(r.Context(), req.ServiceID, req.CustomerID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]string{"customerName": name})
}

func (h *VerifyHandler) HandleVerifyBankAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountNumber string `json:"accountNumber"`
		BankCode      string `json:"bankCode"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.AccountNumber == "" || req.BankCode == "" {
		sendErrorMessage(w, "Account number and bank code are required.")
		return
	}

	name, err := h.lookupUC.VerifyBankAccount(r.Context(), req.AccountNumber, req.BankCode)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]string{"accountName": name})
}

func (h *VerifyHandler) HandleServiceVariations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceID"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ServiceID == "" {
		sendErrorMessage(w, "serviceID is required.")
		return
	}

	plans, err := h.lookupUC.ServiceVariations(r.Context(), req.ServiceID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{"plans": plans})
}
