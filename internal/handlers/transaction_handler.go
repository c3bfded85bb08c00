package handlers

import (
	"net/http"

	"github.com/fxledger/backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type TransactionHandler struct {
	service *services.TransactionService
}

func NewTransactionHandler(service *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Create deposits into or withdraws from the caller's account
// @Summary Create a deposit or withdrawal
// @Description The amount is converted from the given currency into USD before the balance changes
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateTransactionRequest true "Transaction request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse "Insufficient funds"
// @Router /transactions [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}

	var req services.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	record, err := h.service.Create(r.Context(), s, req)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, TransactionResponse{
		Message:     "Transaction created successfully",
		Transaction: record,
	})
}

// Deposit credits another account
// @Summary Deposit on behalf of a user
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Target account ID"
// @Param request body services.DepositRequest true "Deposit request"
// @Success 201 {object} services.DepositResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/deposit/{id} [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}

	var req services.DepositRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Deposit(r.Context(), s, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, resp)
}

// Transfer sends funds to another account
// @Summary Transfer funds
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Receiver account ID"
// @Param request body services.TransferRequest true "Transfer request"
// @Success 201 {object} services.TransferResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse "Receiver not found"
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse "Insufficient funds"
// @Router /transactions/transfer/{id} [post]
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}

	var req services.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Transfer(r.Context(), s, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, resp)
}

// List returns every transaction
// @Summary List all transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TransactionListResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	records, err := h.service.List(r.Context(), s)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, TransactionListResponse{Transactions: records})
}

// ListMine returns the caller's transactions
// @Summary List my transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TransactionListResponse
// @Router /transactions/user/me [get]
func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	records, err := h.service.ListMine(r.Context(), s)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, TransactionListResponse{Transactions: records})
}

// ListByUser returns the transactions of one account
// @Summary List transactions of a user
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Account ID"
// @Success 200 {object} TransactionListResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/user/{userId} [get]
func (h *TransactionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	records, err := h.service.ListByUser(r.Context(), s, chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, TransactionListResponse{Transactions: records})
}

// Details returns one transaction
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Details(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	record, err := h.service.Details(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, TransactionResponse{Transaction: record})
}
