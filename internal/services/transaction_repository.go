package services

import (
	"context"
	"database/sql"

	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/models"
)

const transactionColumns = "id, type, currency, amount, date, user_id, sender_id, receiver_id"

// TransactionRepository reads and writes the transactions table. Records are
// only ever inserted.
type TransactionRepository struct {
	dialect database.Dialect
}

func NewTransactionRepository(dialect database.Dialect) *TransactionRepository {
	return &TransactionRepository{dialect: dialect}
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		t        models.Transaction
		sender   sql.NullString
		receiver sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Type, &t.Currency, &t.Amount, &t.Date, &t.UserID, &sender, &receiver); err != nil {
		return nil, err
	}
	if sender.Valid {
		t.SenderID = &sender.String
	}
	if receiver.Valid {
		t.ReceiverID = &receiver.String
	}
	return &t, nil
}

func (r *TransactionRepository) Insert(ctx context.Context, q querier, t *models.Transaction) error {
	_, err := q.ExecContext(ctx, r.dialect.Rebind(`
		INSERT INTO transactions (id, type, currency, amount, date, user_id, sender_id, receiver_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`),
		t.ID, string(t.Type), string(t.Currency), t.Amount, t.Date, t.UserID, t.SenderID, t.ReceiverID)
	return err
}

// FindByID returns sql.ErrNoRows when the record does not exist.
func (r *TransactionRepository) FindByID(ctx context.Context, q querier, id string) (*models.Transaction, error) {
	return scanTransaction(q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+transactionColumns+" FROM transactions WHERE id = $1"), id))
}

// List returns every record, newest first.
func (r *TransactionRepository) List(ctx context.Context, q querier) ([]*models.Transaction, error) {
	return r.query(ctx, q, "SELECT "+transactionColumns+" FROM transactions ORDER BY date DESC")
}

// ListByAccount returns the records the account took part in, as the
// primary user or as the receiver of a transfer, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, q querier, accountID string) ([]*models.Transaction, error) {
	return r.query(ctx, q, r.dialect.Rebind(
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 OR receiver_id = $1 ORDER BY date DESC"),
		accountID)
}

func (r *TransactionRepository) query(ctx context.Context, q querier, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, t)
	}
	return records, rows.Err()
}
