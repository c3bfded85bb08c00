package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/currency"
	"github.com/fxledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionService moves money between accounts and exposes the records
// of those movements.
type TransactionService struct {
	ledger    *LedgerService
	audit     *AuditLogger
	validator *ValidationHelper
}

// CreateTransactionRequest represents a deposit or withdrawal on the
// caller's own account. An omitted currency means XOF.
// @Description Deposit or withdrawal request
type CreateTransactionRequest struct {
	Type     models.TransactionType `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL" example:"DEPOSIT"`
	Amount   decimal.Decimal        `json:"amount" validate:"required,gt=0" swaggertype:"number" example:"100"`
	Currency currency.Code          `json:"currency" validate:"omitempty,oneof=USD EUR XOF" example:"USD"`
}

// DepositRequest represents a deposit made by an administrator on behalf of
// another account. An omitted currency means XOF.
// @Description Targeted deposit request
type DepositRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0" swaggertype:"number" example:"100"`
	Currency currency.Code   `json:"currency" validate:"omitempty,oneof=USD EUR XOF" example:"EUR"`
}

// TransferRequest represents a transfer from the caller to another account.
// An omitted currency means XOF.
// @Description Transfer request
type TransferRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0" swaggertype:"number" example:"20"`
	Currency currency.Code   `json:"currency" validate:"omitempty,oneof=USD EUR XOF" example:"USD"`
}

// DepositResponse carries the credited account and the record created for it.
type DepositResponse struct {
	Transaction *models.Transaction   `json:"transaction"`
	Account     models.AccountPayload `json:"account"`
}

// TransferResponse carries both parties after a transfer.
type TransferResponse struct {
	Transaction *models.Transaction   `json:"transaction"`
	Sender      models.AccountPayload `json:"sender"`
	Receiver    models.AccountPayload `json:"receiver"`
}

func NewTransactionService(ledger *LedgerService, audit *AuditLogger) *TransactionService {
	if audit == nil {
		audit = NewAuditLogger(nil)
	}
	return &TransactionService{
		ledger:    ledger,
		audit:     audit,
		validator: NewValidationHelper(),
	}
}

// Create deposits into or withdraws from the caller's account.
func (ts *TransactionService) Create(ctx context.Context, subject authz.Subject, req CreateTransactionRequest) (*models.Transaction, error) {
	req.Currency = defaultCurrency(req.Currency)
	if err := ts.validator.ValidateStruct(&req); err != nil {
		return nil, validationFailed(err)
	}
	if err := checkScale(req.Amount); err != nil {
		return nil, err
	}

	var record *models.Transaction
	err := ts.ledger.WithTx(ctx, func(tx *sql.Tx) error {
		account, err := ts.ledger.lockAccount(ctx, tx, subject.ID)
		if err != nil {
			return err
		}

		if req.Type == models.TransactionWithdrawal {
			err = account.Debit(ts.ledger.rates, req.Amount, req.Currency)
		} else {
			err = account.Credit(ts.ledger.rates, req.Amount, req.Currency)
		}
		if err != nil {
			return err
		}

		record = models.NewTransaction(req.Type, req.Amount, req.Currency, account)
		if err := ts.validateRecord(record); err != nil {
			return err
		}
		return ts.ledger.Apply(ctx, tx, record, account)
	})
	if err != nil {
		return nil, ts.fail(string(req.Type), subject.ID, err)
	}

	ts.audit.LogTransaction(record)
	return record, nil
}

// Deposit credits the target account on behalf of an administrator and
// records a DEPOSIT against the target.
func (ts *TransactionService) Deposit(ctx context.Context, subject authz.Subject, targetID string, req DepositRequest) (*DepositResponse, error) {
	if !authz.Allow(subject, authz.TargetedDeposit, authz.Resource{Parties: []string{targetID}}) {
		return nil, forbidden()
	}
	req.Currency = defaultCurrency(req.Currency)
	if err := ts.validator.ValidateStruct(&req); err != nil {
		return nil, validationFailed(err)
	}
	if err := checkScale(req.Amount); err != nil {
		return nil, err
	}

	var resp DepositResponse
	err := ts.ledger.WithTx(ctx, func(tx *sql.Tx) error {
		target, err := ts.ledger.lockAccount(ctx, tx, targetID)
		if err != nil {
			return err
		}
		if err := target.Credit(ts.ledger.rates, req.Amount, req.Currency); err != nil {
			return err
		}

		record := models.NewTransaction(models.TransactionDeposit, req.Amount, req.Currency, target)
		if err := ts.validateRecord(record); err != nil {
			return err
		}
		if err := ts.ledger.Apply(ctx, tx, record, target); err != nil {
			return err
		}

		resp = DepositResponse{Transaction: record, Account: target.ToPayload()}
		return nil
	})
	if err != nil {
		return nil, ts.fail(string(models.TransactionDeposit), targetID, err)
	}

	ts.audit.LogTransaction(resp.Transaction)
	return &resp, nil
}

// Transfer debits the caller and credits receiverID in one unit of work.
func (ts *TransactionService) Transfer(ctx context.Context, subject authz.Subject, receiverID string, req TransferRequest) (*TransferResponse, error) {
	req.Currency = defaultCurrency(req.Currency)
	if err := ts.validator.ValidateStruct(&req); err != nil {
		return nil, validationFailed(err)
	}
	if err := checkScale(req.Amount); err != nil {
		return nil, err
	}
	if receiverID == subject.ID {
		return nil, invalidInput("Cannot transfer to your own account", map[string]string{"id": "same as sender"})
	}

	var resp TransferResponse
	err := ts.ledger.WithTx(ctx, func(tx *sql.Tx) error {
		sender, receiver, err := ts.ledger.lockPair(ctx, tx, subject.ID, receiverID)
		if err != nil {
			return err
		}

		if err := sender.Debit(ts.ledger.rates, req.Amount, req.Currency); err != nil {
			return err
		}
		if err := receiver.Credit(ts.ledger.rates, req.Amount, req.Currency); err != nil {
			return err
		}

		record := models.NewTransfer(req.Amount, req.Currency, sender, receiver)
		if err := ts.validateRecord(record); err != nil {
			return err
		}
		if err := ts.ledger.Apply(ctx, tx, record, sender, receiver); err != nil {
			return err
		}

		resp = TransferResponse{Transaction: record, Sender: sender.ToPayload(), Receiver: receiver.ToPayload()}
		return nil
	})
	if err != nil {
		return nil, ts.fail(string(models.TransactionTransfer), subject.ID, err)
	}

	ts.audit.LogTransaction(resp.Transaction)
	return &resp, nil
}

// List returns every record. Administrators only.
func (ts *TransactionService) List(ctx context.Context, subject authz.Subject) ([]*models.Transaction, error) {
	if !authz.Allow(subject, authz.ListAllTransactions, authz.Resource{}) {
		return nil, forbidden()
	}
	records, err := ts.ledger.transactions.List(ctx, ts.ledger.db)
	if err != nil {
		return nil, ts.readFailed(err)
	}
	return records, nil
}

// ListMine returns the records the caller took part in.
func (ts *TransactionService) ListMine(ctx context.Context, subject authz.Subject) ([]*models.Transaction, error) {
	records, err := ts.ledger.transactions.ListByAccount(ctx, ts.ledger.db, subject.ID)
	if err != nil {
		return nil, ts.readFailed(err)
	}
	return records, nil
}

// ListByUser returns the records of userID. Administrators only.
func (ts *TransactionService) ListByUser(ctx context.Context, subject authz.Subject, userID string) ([]*models.Transaction, error) {
	if !authz.Allow(subject, authz.ListUserTransactions, authz.Resource{Parties: []string{userID}}) {
		return nil, forbidden()
	}
	if _, err := ts.ledger.accounts.FindByID(ctx, ts.ledger.db, userID); err != nil {
		if isNoRows(err) {
			return nil, notFound("Account %s not found", userID)
		}
		return nil, ts.readFailed(err)
	}

	records, err := ts.ledger.transactions.ListByAccount(ctx, ts.ledger.db, userID)
	if err != nil {
		return nil, ts.readFailed(err)
	}
	return records, nil
}

// Details returns one record to one of its parties or to an administrator.
func (ts *TransactionService) Details(ctx context.Context, subject authz.Subject, id string) (*models.Transaction, error) {
	record, err := ts.ledger.transactions.FindByID(ctx, ts.ledger.db, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Transaction %s not found", id)
		}
		return nil, ts.readFailed(err)
	}

	if !authz.Allow(subject, authz.ViewTransaction, authz.Resource{Parties: record.Parties()}) {
		return nil, forbidden()
	}
	return record, nil
}

func defaultCurrency(code currency.Code) currency.Code {
	if code == "" {
		return currency.XOF
	}
	return code
}

// checkScale rejects amounts with more decimal places than the store keeps.
func checkScale(amount decimal.Decimal) error {
	if currency.WithinScale(amount) {
		return nil
	}
	return invalidInput(fmt.Sprintf("Amount must have at most %d decimal places", currency.Scale),
		map[string]string{"Amount": "too many decimal places"})
}

func (ts *TransactionService) validateRecord(record *models.Transaction) error {
	if err := ts.validator.ValidateStruct(record); err != nil {
		return validationFailed(err)
	}
	if err := record.CheckParties(); err != nil {
		return invalidInput(err.Error(), nil)
	}
	return nil
}

func (ts *TransactionService) fail(operation, accountID string, err error) error {
	serr := classify(err)
	ts.audit.LogError(operation, accountID, serr)
	if serr.Kind == KindUnexpected {
		zap.L().Error("Transaction failed", zap.String("operation", operation),
			zap.String("user_id", accountID), zap.Error(err))
	}
	return serr
}

func (ts *TransactionService) readFailed(err error) error {
	zap.L().Error("Failed to read transactions", zap.Error(err))
	return unexpected(err)
}
