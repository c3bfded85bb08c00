package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/models"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const accountColumns = "id, name, email, phone, password, roles, balance, version, created_at, updated_at"

// AccountRepository reads and writes the accounts table.
type AccountRepository struct {
	dialect database.Dialect
}

func NewAccountRepository(dialect database.Dialect) *AccountRepository {
	return &AccountRepository{dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Password, &a.Roles,
		&a.Balance, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, q querier, a *models.Account) error {
	_, err := q.ExecContext(ctx, r.dialect.Rebind(`
		INSERT INTO accounts (id, name, email, phone, password, roles, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`),
		a.ID, a.Name, a.Email, a.Phone, a.Password, a.Roles, a.Balance, a.Version, a.CreatedAt, a.UpdatedAt)
	return err
}

// FindByID returns sql.ErrNoRows when the account does not exist.
func (r *AccountRepository) FindByID(ctx context.Context, q querier, id string) (*models.Account, error) {
	return scanAccount(q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1"), id))
}

func (r *AccountRepository) FindByEmail(ctx context.Context, q querier, email string) (*models.Account, error) {
	return scanAccount(q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+accountColumns+" FROM accounts WHERE email = $1"), email))
}

// Lock reloads the account and, where the driver supports it, holds a row
// lock until the surrounding transaction ends.
func (r *AccountRepository) Lock(ctx context.Context, tx *sql.Tx, id string) (*models.Account, error) {
	return scanAccount(tx.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1"+r.dialect.ForUpdate()), id))
}

func (r *AccountRepository) List(ctx context.Context, q querier) ([]*models.Account, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+accountColumns+" FROM accounts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Exists reports whether another account already uses email or phone.
func (r *AccountRepository) Exists(ctx context.Context, q querier, email, phone, exceptID string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT COUNT(*) FROM accounts WHERE (email = $1 OR phone = $2) AND id <> $3"),
		email, phone, exceptID).Scan(&count)
	return count > 0, err
}

// UpdateBalance writes the balance of a and bumps its version. It fails with
// ErrConcurrentModification when the stored version is no longer a.Version.
func (r *AccountRepository) UpdateBalance(ctx context.Context, q querier, a *models.Account) error {
	now := time.Now().UTC()
	result, err := q.ExecContext(ctx, r.dialect.Rebind(`
		UPDATE accounts
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`),
		a.Balance, now, a.ID, a.Version)
	if err != nil {
		return err
	}
	if err := checkVersioned(result, a.ID); err != nil {
		return err
	}
	a.Version++
	a.UpdatedAt = now
	return nil
}

// UpdateProfile writes the contact fields of a, version checked like
// UpdateBalance.
func (r *AccountRepository) UpdateProfile(ctx context.Context, q querier, a *models.Account) error {
	now := time.Now().UTC()
	result, err := q.ExecContext(ctx, r.dialect.Rebind(`
		UPDATE accounts
		SET name = $1, email = $2, phone = $3, version = version + 1, updated_at = $4
		WHERE id = $5 AND version = $6`),
		a.Name, a.Email, a.Phone, now, a.ID, a.Version)
	if err != nil {
		return err
	}
	if err := checkVersioned(result, a.ID); err != nil {
		return err
	}
	a.Version++
	a.UpdatedAt = now
	return nil
}

// Delete removes the account. Transactions referencing it are removed by the
// foreign key cascade.
func (r *AccountRepository) Delete(ctx context.Context, q querier, id string) error {
	result, err := q.ExecContext(ctx, r.dialect.Rebind("DELETE FROM accounts WHERE id = $1"), id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func checkVersioned(result sql.Result, accountID string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: account %s", ErrConcurrentModification, accountID)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
