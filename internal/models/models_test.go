package models

import (
	"encoding/json"
	"testing"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestRoles_ValueScan(t *testing.T) {
	t.Run("value joins roles", func(t *testing.T) {
		v, err := Roles{authz.RoleAdmin, authz.RoleUser}.Value()
		require.NoError(t, err)
		assert.Equal(t, "ADMIN,USER", v)
	})

	t.Run("empty roles store as USER", func(t *testing.T) {
		v, err := Roles{}.Value()
		require.NoError(t, err)
		assert.Equal(t, "USER", v)
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		_, err := Roles{"ROOT"}.Value()
		assert.Error(t, err)
	})

	t.Run("scan from bytes", func(t *testing.T) {
		var r Roles
		require.NoError(t, r.Scan([]byte("ADMIN, USER")))
		assert.True(t, r.Has(authz.RoleAdmin))
		assert.True(t, r.Has(authz.RoleUser))
	})

	t.Run("scan nil defaults to USER", func(t *testing.T) {
		var r Roles
		require.NoError(t, r.Scan(nil))
		assert.Equal(t, DefaultRoles(), r)
	})

	t.Run("scan unknown role fails", func(t *testing.T) {
		var r Roles
		assert.Error(t, r.Scan("ROOT"))
	})

	t.Run("scan unsupported type fails", func(t *testing.T) {
		var r Roles
		assert.Error(t, r.Scan(42))
	})
}

func TestTransaction_CheckParties(t *testing.T) {
	alice := &Account{ID: "alice"}
	bob := &Account{ID: "bob"}

	t.Run("deposit has no counterparties", func(t *testing.T) {
		tx := NewTransaction(TransactionDeposit, dec("10"), currency.USD, alice)
		assert.NoError(t, tx.CheckParties())
		assert.Equal(t, []string{"alice"}, tx.Parties())
	})

	t.Run("withdrawal with a receiver is invalid", func(t *testing.T) {
		tx := NewTransaction(TransactionWithdrawal, dec("10"), currency.USD, alice)
		tx.ReceiverID = &bob.ID
		assert.Error(t, tx.CheckParties())
	})

	t.Run("transfer is recorded against the sender", func(t *testing.T) {
		tx := NewTransfer(dec("20"), currency.EUR, alice, bob)
		require.NoError(t, tx.CheckParties())
		assert.Equal(t, "alice", tx.UserID)
		assert.Equal(t, "alice", *tx.SenderID)
		assert.Equal(t, "bob", *tx.ReceiverID)
		assert.Equal(t, []string{"alice", "alice", "bob"}, tx.Parties())
		assert.Equal(t, currency.EUR, tx.Currency)
	})

	t.Run("transfer without receiver is invalid", func(t *testing.T) {
		tx := NewTransfer(dec("20"), currency.USD, alice, bob)
		tx.ReceiverID = nil
		assert.Error(t, tx.CheckParties())
	})

	t.Run("transfer recorded against a third party is invalid", func(t *testing.T) {
		tx := NewTransfer(dec("20"), currency.USD, alice, bob)
		tx.UserID = "carol"
		assert.Error(t, tx.CheckParties())
	})
}
