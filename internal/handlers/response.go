package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/models"
	"github.com/fxledger/backend/internal/services"
)

const maxBodyBytes = 1_048_576 // 1 MB

// MessageResponse is returned by operations without a payload
type MessageResponse struct {
	Message string `json:"message" example:"Logout successful"`
}

// TransactionResponse wraps a single transaction record
type TransactionResponse struct {
	Message     string              `json:"message,omitempty" example:"Transaction created successfully"`
	Transaction *models.Transaction `json:"transaction"`
}

// TransactionListResponse wraps a list of transaction records
type TransactionListResponse struct {
	Transactions []*models.Transaction `json:"transactions"`
}

// UserResponse wraps a single account
type UserResponse struct {
	Message string                `json:"message,omitempty" example:"User updated successfully"`
	User    models.AccountPayload `json:"user"`
}

// UserListResponse wraps a list of accounts
type UserListResponse struct {
	Users []models.AccountPayload `json:"users"`
}

var kindStatus = map[services.Kind]int{
	services.KindInvalidInput:      http.StatusBadRequest,
	services.KindUnauthorized:      http.StatusUnauthorized,
	services.KindForbidden:         http.StatusForbidden,
	services.KindNotFound:          http.StatusNotFound,
	services.KindConflict:          http.StatusConflict,
	services.KindInsufficientFunds: http.StatusUnprocessableEntity,
	services.KindTooManyRequests:   http.StatusTooManyRequests,
	services.KindUnexpected:        http.StatusInternalServerError,
}

// writeError maps a service error onto its HTTP status. Unexpected errors
// never expose their cause.
func writeError(w http.ResponseWriter, err error) {
	var serr *services.Error
	if !errors.As(err, &serr) {
		serr = &services.Error{Kind: services.KindUnexpected}
	}

	status, ok := kindStatus[serr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := serr.Message
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	services.WriteJSON(w, status, services.ErrorResponse{
		Error:   message,
		Kind:    serr.Kind,
		Details: serr.Details,
	})
}

// decodeJSON reads exactly one JSON object of at most maxBodyBytes into dst.
// It writes the error response itself and reports whether decoding worked.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, &services.Error{
			Kind:    services.KindInvalidInput,
			Message: "Invalid request body",
			Details: map[string]string{"body": err.Error()},
		})
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, &services.Error{
			Kind:    services.KindInvalidInput,
			Message: "Request body must only contain a single JSON object",
		})
		return false
	}
	return true
}

// subject returns the authenticated caller or writes a 401.
func subject(w http.ResponseWriter, r *http.Request) (authz.Subject, bool) {
	s, err := services.SubjectFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return authz.Subject{}, false
	}
	return s, true
}
