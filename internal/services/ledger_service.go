package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fxledger/backend/internal/currency"
	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/models"
)

// ErrConcurrentModification is returned when a versioned write finds that the
// row changed since it was read.
var ErrConcurrentModification = errors.New("concurrent modification")

// LedgerService owns the unit of work around balance mutations: every
// operation reloads the accounts it touches inside one database transaction,
// writes balances with a version check and records the transaction row before
// committing.
type LedgerService struct {
	db           *sql.DB
	rates        currency.RateProvider
	accounts     *AccountRepository
	transactions *TransactionRepository
}

func NewLedgerService(db *sql.DB, dialect database.Dialect, rates currency.RateProvider) *LedgerService {
	if rates == nil {
		rates = currency.StaticRates{}
	}
	return &LedgerService{
		db:           db,
		rates:        rates,
		accounts:     NewAccountRepository(dialect),
		transactions: NewTransactionRepository(dialect),
	}
}

// WithTx runs fn inside a database transaction. The transaction is committed
// only when fn returns nil.
func (s *LedgerService) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *LedgerService) lockAccount(ctx context.Context, tx *sql.Tx, accountID string) (*models.Account, error) {
	account, err := s.accounts.Lock(ctx, tx, accountID)
	if isNoRows(err) {
		return nil, notFound("Account %s not found", accountID)
	}
	return account, err
}

// lockPair locks both accounts in id order so two opposite transfers cannot
// deadlock, and returns them in the order they were asked for.
func (s *LedgerService) lockPair(ctx context.Context, tx *sql.Tx, firstID, secondID string) (*models.Account, *models.Account, error) {
	lo, hi := firstID, secondID
	if lo > hi {
		lo, hi = hi, lo
	}

	loAccount, err := s.lockAccount(ctx, tx, lo)
	if err != nil {
		return nil, nil, err
	}
	hiAccount, err := s.lockAccount(ctx, tx, hi)
	if err != nil {
		return nil, nil, err
	}

	if lo != firstID {
		return hiAccount, loAccount, nil
	}
	return loAccount, hiAccount, nil
}

func (s *LedgerService) updateAccountBalance(ctx context.Context, tx *sql.Tx, account *models.Account) error {
	return s.accounts.UpdateBalance(ctx, tx, account)
}

func (s *LedgerService) insertTransaction(ctx context.Context, tx *sql.Tx, record *models.Transaction) error {
	return s.transactions.Insert(ctx, tx, record)
}

// Apply persists the mutated accounts and the record describing the
// mutation within tx.
func (s *LedgerService) Apply(ctx context.Context, tx *sql.Tx, record *models.Transaction, accounts ...*models.Account) error {
	for _, account := range accounts {
		if err := s.updateAccountBalance(ctx, tx, account); err != nil {
			return err
		}
	}
	return s.insertTransaction(ctx, tx, record)
}
