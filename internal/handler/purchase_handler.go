package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/internal/auth"
	"github.com/Mystick682/ExTremeData/internal/domain"
	"github.com/Mystick682/ExTremeData/internal/usecase"
)

type PurchaseHandler struct {
	purchaseUC *usecase.PurchaseUsecase
	transferUC *usecase.TransferUsecase
	logger     *zap.Logger
}

func NewPurchaseHandler(purchaseUC *usecase.PurchaseUsecase, transferUC *usecase.TransferUsecase, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUC: purchaseUC,
		transferUC: transferUC,
		logger:     logger,
	}
}

func (h *PurchaseHandler) HandleAirtime(w http.ResponseWriter, r *http.Request) {
	var req domain.AirtimeRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.purchaseUC.PurchaseAirtime(r.Context(), caller(r), &req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{
		"success":    true,
		"newBalance": result.NewBalance,
	})
}

func (h *PurchaseHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	var req domain.DataRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.purchaseUC.PurchaseData(r.Context(), caller(r), &req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{
		"success":    true,
		"newBalance": result.NewBalance,
	})
}

func (h *PurchaseHandler) HandleCable(w http.ResponseWriter, r *http.Request) {
	var req domain.CableRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.purchaseUC.PurchaseCable(r.Context(), caller(r), &req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{
		"success":    true,
		"newBalance": result.NewBalance,
	})
}

func (h *PurchaseHandler) HandleElectricity(w http.ResponseWriter, r *http.Request) {
	var req domain.ElectricityRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.purchaseUC.PurchaseElectricity(r.Context(), caller(r), &req)
	if err != nil {
		sendError(w, err)
		return
	}

	// Prepaid purchases come back with a token; postpaid has none.
	var token interface{}
	if result.Token != "" {
		token = result.Token
	}

	sendJSON(w, map[string]interface{}{
		"success":    true,
		"newBalance": result.NewBalance,
		"token":      token,
	})
}

func (h *PurchaseHandler) HandleBetting(w http.ResponseWriter, r *http.Request) {
	var req domain.BettingRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.purchaseUC.PurchaseBetting(r.Context(), caller(r), &req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{
		"success":    true,
		"newBalance": result.NewBalance,
	})
}

func (h *PurchaseHandler) HandleEducation(w http.ResponseWriter, r *http.Request) {
	var req domain.EducationRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.purchaseUC.PurchaseEducation(r.Context(), caller(r), &req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{
		"success":       true,
		"newBalance":    result.NewBalance,
		"transactionId": result.TransactionID,
		"pins":          result.Pins,
	})
}

func (h *PurchaseHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var req domain.TransferRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.transferUC.ProcessTransfer(r.Context(), caller(r), &req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, map[string]interface{}{
		"success":    true,
		"newBalance": result.NewBalance,
	})
}

func caller(r *http.Request) *domain.User {
	user, _ := auth.UserFromContext(r.Context())
	return user
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendErrorMessage(w, "invalid request body")
		return false
	}
	return true
}

func sendJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payload)
}

// sendError returns the uniform 400 error envelope. A pending reconciliation
// additionally carries a status field so clients can tell "provider charged,
// wallet not settled" apart from an ordinary failure.
func sendError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	response := map[string]interface{}{"error": err.Error()}
	if errors.Is(err, domain.ErrReconciliationPending) {
		response["status"] = string(domain.TxStatusPendingReconciliation)
	}

	json.NewEncoder(w).Encode(response)
}

func sendErrorMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
