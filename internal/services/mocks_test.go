package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/config"
	"github.com/fxledger/backend/internal/currency"
	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Rate(code currency.Code) (decimal.Decimal, error) {
	args := m.Called(code)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) (*sql.DB, database.Dialect) {
	t.Helper()
	db, dialect, err := database.Open(context.Background(), &database.DBConfig{
		Driver:       database.DriverSQLite,
		DSN:          "file::memory:?_foreign_keys=on",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dialect
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Env: "test",
		JWT: config.JWTConfig{SecretKey: "test-secret", Expiry: time.Hour},
		// minimal cost
		Argon2: config.Argon2Config{Time: 1, Memory: 1024, Threads: 1, KeyLength: 32, SaltLength: 16},
	}
}

// seedAccount inserts an account directly and returns it.
func seedAccount(t *testing.T, db *sql.DB, dialect database.Dialect, name string, balance string, roles ...authz.Role) *models.Account {
	t.Helper()
	if len(roles) == 0 {
		roles = []authz.Role{authz.RoleUser}
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	account := &models.Account{
		ID:        id,
		Name:      name,
		Email:     id + "@example.com",
		Phone:     id[:12],
		Password:  "x$y",
		Roles:     models.Roles(roles),
		Balance:   dec(balance),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, NewAccountRepository(dialect).Create(context.Background(), db, account))
	return account
}

func reloadBalance(t *testing.T, db *sql.DB, dialect database.Dialect, id string) decimal.Decimal {
	t.Helper()
	account, err := NewAccountRepository(dialect).FindByID(context.Background(), db, id)
	require.NoError(t, err)
	return account.Balance
}

func countTransactions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&n))
	return n
}

func dialectOf(l *LedgerService) database.Dialect {
	return l.accounts.dialect
}
