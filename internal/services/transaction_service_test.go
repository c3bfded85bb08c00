package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/currency"
	"github.com/fxledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransactionService(t *testing.T) (*TransactionService, *LedgerService) {
	t.Helper()
	db, dialect := newTestDB(t)
	ledger := NewLedgerService(db, dialect, currency.StaticRates{})
	return NewTransactionService(ledger, nil), ledger
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("deposit then withdrawal", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		user := seedAccount(t, ledger.db, dialectOf(ledger), "Awa", "0")

		deposit, err := ts.Create(ctx, user.Subject(), CreateTransactionRequest{
			Type: models.TransactionDeposit, Amount: dec("100"), Currency: currency.USD,
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionDeposit, deposit.Type)
		assert.Nil(t, deposit.SenderID)
		assert.Nil(t, deposit.ReceiverID)

		withdrawal, err := ts.Create(ctx, user.Subject(), CreateTransactionRequest{
			Type: models.TransactionWithdrawal, Amount: dec("50"), Currency: currency.USD,
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, withdrawal.UserID)
		assert.True(t, withdrawal.Amount.Equal(dec("50")))

		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), user.ID).Equal(dec("50")))
		records, err := ts.ListMine(ctx, user.Subject())
		require.NoError(t, err)
		require.Len(t, records, 2)

		var withdrawals int
		for _, r := range records {
			if r.Type == models.TransactionWithdrawal {
				withdrawals++
			}
		}
		assert.Equal(t, 1, withdrawals)
	})

	t.Run("withdrawal above balance", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		user := seedAccount(t, ledger.db, dialectOf(ledger), "Awa", "50")

		_, err := ts.Create(ctx, user.Subject(), CreateTransactionRequest{
			Type: models.TransactionWithdrawal, Amount: dec("100"), Currency: currency.USD,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientFunds))
		assert.Contains(t, err.Error(), "(100.00 $)")
		assert.Contains(t, err.Error(), "(50.00 $)")

		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), user.ID).Equal(dec("50")))
		assert.Zero(t, countTransactions(t, ledger.db))
	})

	t.Run("XOF deposit is converted exactly", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		user := seedAccount(t, ledger.db, dialectOf(ledger), "Awa", "0")

		record, err := ts.Create(ctx, user.Subject(), CreateTransactionRequest{
			Type: models.TransactionDeposit, Amount: dec("100"), Currency: currency.XOF,
		})
		require.NoError(t, err)
		assert.Equal(t, currency.XOF, record.Currency)
		assert.True(t, record.Amount.Equal(dec("100")), "record keeps the original amount")
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), user.ID).Equal(dec("0.18")))
	})

	t.Run("omitted currency defaults to XOF", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		user := seedAccount(t, ledger.db, dialectOf(ledger), "Awa", "0")

		record, err := ts.Create(ctx, user.Subject(), CreateTransactionRequest{
			Type: models.TransactionDeposit, Amount: dec("100"),
		})
		require.NoError(t, err)
		assert.Equal(t, currency.XOF, record.Currency)
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), user.ID).Equal(dec("0.18")))
	})

	t.Run("converted amount is rounded to the stored scale", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		user := seedAccount(t, ledger.db, dialectOf(ledger), "Awa", "0")

		_, err := ts.Create(ctx, user.Subject(), CreateTransactionRequest{
			Type: models.TransactionDeposit, Amount: dec("1.23456789"), Currency: currency.XOF,
		})
		require.NoError(t, err)
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), user.ID).Equal(dec("0.00222222")))
	})

	t.Run("rejects invalid requests", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		user := seedAccount(t, ledger.db, dialectOf(ledger), "Awa", "10")

		tests := []struct {
			name string
			req  CreateTransactionRequest
		}{
			{"transfer type", CreateTransactionRequest{Type: models.TransactionTransfer, Amount: dec("1"), Currency: currency.USD}},
			{"missing type", CreateTransactionRequest{Amount: dec("1"), Currency: currency.USD}},
			{"zero amount", CreateTransactionRequest{Type: models.TransactionDeposit, Amount: decimal.Zero, Currency: currency.USD}},
			{"negative amount", CreateTransactionRequest{Type: models.TransactionDeposit, Amount: dec("-3"), Currency: currency.USD}},
			{"unknown currency", CreateTransactionRequest{Type: models.TransactionDeposit, Amount: dec("1"), Currency: "GBP"}},
			{"nine decimal places", CreateTransactionRequest{Type: models.TransactionDeposit, Amount: dec("1.000000001"), Currency: currency.USD}},
			{"converts to less than the stored scale", CreateTransactionRequest{Type: models.TransactionDeposit, Amount: dec("0.000001"), Currency: currency.XOF}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ts.Create(ctx, user.Subject(), tt.req)
				assert.Equal(t, KindInvalidInput, KindOf(err))
			})
		}
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), user.ID).Equal(dec("10")))
		assert.Zero(t, countTransactions(t, ledger.db))
	})

	t.Run("unknown account", func(t *testing.T) {
		ts, _ := newTestTransactionService(t)
		ghost := authz.Subject{ID: "missing", Roles: []authz.Role{authz.RoleUser}}

		_, err := ts.Create(ctx, ghost, CreateTransactionRequest{
			Type: models.TransactionDeposit, Amount: dec("1"), Currency: currency.USD,
		})
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestTransactionService_RateProviderFailure(t *testing.T) {
	ctx := context.Background()
	db, dialect := newTestDB(t)
	rates := &MockRateProvider{}
	rates.On("Rate", currency.EUR).Return(decimal.Zero, currency.ErrUnsupportedCurrency)

	ts := NewTransactionService(NewLedgerService(db, dialect, rates), nil)
	user := seedAccount(t, db, dialect, "Awa", "10")

	_, err := ts.Create(ctx, user.Subject(), CreateTransactionRequest{
		Type: models.TransactionDeposit, Amount: dec("5"), Currency: currency.EUR,
	})
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.True(t, reloadBalance(t, db, dialect, user.ID).Equal(dec("10")))
	rates.AssertExpectations(t)
}

func TestTransactionService_Deposit(t *testing.T) {
	ctx := context.Background()
	ts, ledger := newTestTransactionService(t)
	admin := seedAccount(t, ledger.db, dialectOf(ledger), "Admin", "0", authz.RoleAdmin)
	user := seedAccount(t, ledger.db, dialectOf(ledger), "Awa", "0")

	t.Run("admin credits the target and records it", func(t *testing.T) {
		resp, err := ts.Deposit(ctx, admin.Subject(), user.ID, DepositRequest{Amount: dec("50"), Currency: currency.EUR})
		require.NoError(t, err)
		assert.True(t, resp.Account.Balance.Equal(dec("59")))
		assert.Equal(t, models.TransactionDeposit, resp.Transaction.Type)
		assert.Equal(t, user.ID, resp.Transaction.UserID)

		records, err := ts.ListMine(ctx, user.Subject())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, resp.Transaction.ID, records[0].ID)
	})

	t.Run("omitted currency defaults to XOF", func(t *testing.T) {
		resp, err := ts.Deposit(ctx, admin.Subject(), user.ID, DepositRequest{Amount: dec("1000")})
		require.NoError(t, err)
		assert.Equal(t, currency.XOF, resp.Transaction.Currency)
		assert.True(t, resp.Account.Balance.Equal(dec("60.8")))
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		_, err := ts.Deposit(ctx, user.Subject(), user.ID, DepositRequest{Amount: dec("1"), Currency: currency.USD})
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := ts.Deposit(ctx, admin.Subject(), "missing", DepositRequest{Amount: dec("1"), Currency: currency.USD})
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestTransactionService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves funds and records both parties", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "50")
		b := seedAccount(t, ledger.db, dialectOf(ledger), "B", "0")

		resp, err := ts.Transfer(ctx, a.Subject(), b.ID, TransferRequest{Amount: dec("20"), Currency: currency.USD})
		require.NoError(t, err)
		assert.True(t, resp.Sender.Balance.Equal(dec("30")))
		assert.True(t, resp.Receiver.Balance.Equal(dec("20")))

		record := resp.Transaction
		assert.Equal(t, models.TransactionTransfer, record.Type)
		assert.Equal(t, a.ID, record.UserID)
		require.NotNil(t, record.SenderID)
		require.NotNil(t, record.ReceiverID)
		assert.Equal(t, a.ID, *record.SenderID)
		assert.Equal(t, b.ID, *record.ReceiverID)

		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), a.ID).Equal(dec("30")))
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), b.ID).Equal(dec("20")))
		assert.Equal(t, 1, countTransactions(t, ledger.db))

		stored, err := ts.Details(ctx, b.Subject(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, *stored.SenderID)
	})

	t.Run("missing receiver changes nothing", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "50")

		_, err := ts.Transfer(ctx, a.Subject(), "missing", TransferRequest{Amount: dec("20"), Currency: currency.USD})
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), a.ID).Equal(dec("50")))
		assert.Zero(t, countTransactions(t, ledger.db))
	})

	t.Run("insufficient funds changes nothing", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "10")
		b := seedAccount(t, ledger.db, dialectOf(ledger), "B", "5")

		_, err := ts.Transfer(ctx, a.Subject(), b.ID, TransferRequest{Amount: dec("10"), Currency: currency.EUR})
		assert.Equal(t, KindInsufficientFunds, KindOf(err))
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), a.ID).Equal(dec("10")))
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), b.ID).Equal(dec("5")))
		assert.Zero(t, countTransactions(t, ledger.db))
	})

	t.Run("omitted currency defaults to XOF", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "1")
		b := seedAccount(t, ledger.db, dialectOf(ledger), "B", "0")

		resp, err := ts.Transfer(ctx, a.Subject(), b.ID, TransferRequest{Amount: dec("500")})
		require.NoError(t, err)
		assert.Equal(t, currency.XOF, resp.Transaction.Currency)
		assert.True(t, resp.Sender.Balance.Equal(dec("0.1")))
		assert.True(t, resp.Receiver.Balance.Equal(dec("0.9")))
	})

	t.Run("self transfer is rejected", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "10")

		_, err := ts.Transfer(ctx, a.Subject(), a.ID, TransferRequest{Amount: dec("1"), Currency: currency.USD})
		assert.Equal(t, KindInvalidInput, KindOf(err))
	})

	t.Run("opposite transfers run concurrently", func(t *testing.T) {
		ts, ledger := newTestTransactionService(t)
		a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "100")
		b := seedAccount(t, ledger.db, dialectOf(ledger), "B", "100")

		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := ts.Transfer(ctx, a.Subject(), b.ID, TransferRequest{Amount: dec("1"), Currency: currency.USD})
				errs <- err
			}()
			go func() {
				defer wg.Done()
				_, err := ts.Transfer(ctx, b.Subject(), a.ID, TransferRequest{Amount: dec("2"), Currency: currency.USD})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		total := reloadBalance(t, ledger.db, dialectOf(ledger), a.ID).Add(reloadBalance(t, ledger.db, dialectOf(ledger), b.ID))
		assert.True(t, total.Equal(dec("200")), "total %s", total)
		assert.True(t, reloadBalance(t, ledger.db, dialectOf(ledger), a.ID).Equal(dec("110")))
		assert.Equal(t, 20, countTransactions(t, ledger.db))
	})
}

func TestTransactionService_Reads(t *testing.T) {
	ctx := context.Background()
	ts, ledger := newTestTransactionService(t)
	admin := seedAccount(t, ledger.db, dialectOf(ledger), "Admin", "0", authz.RoleAdmin)
	a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "100")
	b := seedAccount(t, ledger.db, dialectOf(ledger), "B", "0")
	c := seedAccount(t, ledger.db, dialectOf(ledger), "C", "0")

	older := models.NewTransaction(models.TransactionDeposit, dec("100"), currency.USD, a)
	older.Date = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, ledger.transactions.Insert(ctx, ledger.db, older))

	transfer, err := ts.Transfer(ctx, a.Subject(), b.ID, TransferRequest{Amount: dec("10"), Currency: currency.USD})
	require.NoError(t, err)

	t.Run("list all is admin only", func(t *testing.T) {
		records, err := ts.List(ctx, admin.Subject())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, transfer.Transaction.ID, records[0].ID, "newest first")
		assert.Equal(t, older.ID, records[1].ID)

		_, err = ts.List(ctx, a.Subject())
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("list by user", func(t *testing.T) {
		records, err := ts.ListByUser(ctx, admin.Subject(), a.ID)
		require.NoError(t, err)
		assert.Len(t, records, 2)

		records, err = ts.ListByUser(ctx, admin.Subject(), c.ID)
		require.NoError(t, err)
		assert.Empty(t, records)

		_, err = ts.ListByUser(ctx, admin.Subject(), "missing")
		assert.Equal(t, KindNotFound, KindOf(err))

		_, err = ts.ListByUser(ctx, a.Subject(), b.ID)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("receiver sees incoming transfers", func(t *testing.T) {
		records, err := ts.ListMine(ctx, b.Subject())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, transfer.Transaction.ID, records[0].ID)
	})

	t.Run("details", func(t *testing.T) {
		_, err := ts.Details(ctx, a.Subject(), older.ID)
		assert.NoError(t, err)

		_, err = ts.Details(ctx, admin.Subject(), transfer.Transaction.ID)
		assert.NoError(t, err)

		_, err = ts.Details(ctx, c.Subject(), transfer.Transaction.ID)
		assert.Equal(t, KindForbidden, KindOf(err))

		_, err = ts.Details(ctx, admin.Subject(), "missing")
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestTransactionService_DeletingAccountCascades(t *testing.T) {
	ctx := context.Background()
	ts, ledger := newTestTransactionService(t)
	admin := seedAccount(t, ledger.db, dialectOf(ledger), "Admin", "0", authz.RoleAdmin)
	a := seedAccount(t, ledger.db, dialectOf(ledger), "A", "100")
	b := seedAccount(t, ledger.db, dialectOf(ledger), "B", "0")

	_, err := ts.Transfer(ctx, a.Subject(), b.ID, TransferRequest{Amount: dec("10"), Currency: currency.USD})
	require.NoError(t, err)
	require.Equal(t, 1, countTransactions(t, ledger.db))

	users := NewUserService(ledger.db, dialectOf(ledger))
	require.NoError(t, users.Delete(ctx, admin.Subject(), b.ID))
	assert.Zero(t, countTransactions(t, ledger.db))
}
