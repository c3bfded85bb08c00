package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/fxledger/backend/internal/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// Transaction is the record of one deposit, withdrawal or transfer. Amount
// and Currency are the values of the original request, before conversion.
type Transaction struct {
	ID         string          `json:"id" db:"id"`
	Type       TransactionType `json:"type" db:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Currency   currency.Code   `json:"currency" db:"currency" validate:"required,oneof=USD EUR XOF"`
	Amount     decimal.Decimal `json:"amount" db:"amount" swaggertype:"string" validate:"required,gt=0"`
	Date       time.Time       `json:"date" db:"date"`
	UserID     string          `json:"userId" db:"user_id" validate:"required"`
	SenderID   *string         `json:"senderId,omitempty" db:"sender_id"`
	ReceiverID *string         `json:"receiverId,omitempty" db:"receiver_id"`
}

// NewTransaction records a deposit or withdrawal against user.
func NewTransaction(txType TransactionType, amount decimal.Decimal, code currency.Code, user *Account) *Transaction {
	return &Transaction{
		ID:       uuid.NewString(),
		Type:     txType,
		Currency: code,
		Amount:   amount,
		Date:     time.Now().UTC(),
		UserID:   user.ID,
	}
}

// NewTransfer records a transfer. The sender is also the primary user.
func NewTransfer(amount decimal.Decimal, code currency.Code, sender, receiver *Account) *Transaction {
	tx := NewTransaction(TransactionTransfer, amount, code, sender)
	senderID, receiverID := sender.ID, receiver.ID
	tx.SenderID = &senderID
	tx.ReceiverID = &receiverID
	return tx
}

// CheckParties verifies that sender and receiver are set exactly when the
// record is a transfer, and that a transfer is recorded against its sender.
func (t *Transaction) CheckParties() error {
	if t.Type != TransactionTransfer {
		if t.SenderID != nil || t.ReceiverID != nil {
			return fmt.Errorf("%s must not carry a sender or receiver", t.Type)
		}
		return nil
	}
	if t.SenderID == nil || t.ReceiverID == nil {
		return errors.New("transfer requires a sender and a receiver")
	}
	if *t.SenderID != t.UserID {
		return errors.New("transfer must be recorded against its sender")
	}
	return nil
}

// Parties lists the accounts involved in the transaction.
func (t *Transaction) Parties() []string {
	parties := []string{t.UserID}
	if t.SenderID != nil {
		parties = append(parties, *t.SenderID)
	}
	if t.ReceiverID != nil {
		parties = append(parties, *t.ReceiverID)
	}
	return parties
}
