package services

import (
	"context"
	"testing"

	"github.com/fxledger/backend/internal/authz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	db, dialect := newTestDB(t)
	service := NewUserService(db, dialect)

	admin := seedAccount(t, db, dialect, "Admin", "0", authz.RoleAdmin)
	awa := seedAccount(t, db, dialect, "Awa", "12.5")
	moussa := seedAccount(t, db, dialect, "Moussa", "0")

	t.Run("profile", func(t *testing.T) {
		payload, err := service.Profile(ctx, awa.Subject())
		require.NoError(t, err)
		assert.Equal(t, awa.ID, payload.ID)
		assert.True(t, payload.Balance.Equal(dec("12.5")))
	})

	t.Run("list is admin only", func(t *testing.T) {
		payloads, err := service.List(ctx, admin.Subject())
		require.NoError(t, err)
		assert.Len(t, payloads, 3)

		_, err = service.List(ctx, awa.Subject())
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("get", func(t *testing.T) {
		_, err := service.Get(ctx, awa.Subject(), awa.ID)
		assert.NoError(t, err)

		_, err = service.Get(ctx, admin.Subject(), moussa.ID)
		assert.NoError(t, err)

		_, err = service.Get(ctx, awa.Subject(), moussa.ID)
		assert.Equal(t, KindForbidden, KindOf(err))

		_, err = service.Get(ctx, admin.Subject(), "missing")
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("update own profile", func(t *testing.T) {
		payload, err := service.Update(ctx, awa.Subject(), awa.ID, UpdateUserRequest{
			Name:  strPtr("Awa D."),
			Email: strPtr("  AWA.NEW@example.com "),
		})
		require.NoError(t, err)
		assert.Equal(t, "Awa D.", payload.Name)
		assert.Equal(t, "awa.new@example.com", payload.Email)
		assert.Equal(t, awa.Phone, payload.Phone)
		assert.True(t, payload.Balance.Equal(dec("12.5")))

		stored, err := service.accounts.FindByID(ctx, db, awa.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Version)
	})

	t.Run("padded fields are trimmed before validation", func(t *testing.T) {
		payload, err := service.Update(ctx, admin.Subject(), moussa.ID, UpdateUserRequest{
			Name:  strPtr("  Moussa "),
			Phone: strPtr(" +221771234567 "),
		})
		require.NoError(t, err)
		assert.Equal(t, "Moussa", payload.Name)
		assert.Equal(t, "+221771234567", payload.Phone)

		_, err = service.Update(ctx, admin.Subject(), moussa.ID, UpdateUserRequest{Name: strPtr("  M  ")})
		assert.Equal(t, KindInvalidInput, KindOf(err))
	})

	t.Run("update conflicts on a taken email", func(t *testing.T) {
		_, err := service.Update(ctx, admin.Subject(), moussa.ID, UpdateUserRequest{Email: strPtr("awa.new@example.com")})
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("update rejects invalid input", func(t *testing.T) {
		_, err := service.Update(ctx, moussa.Subject(), moussa.ID, UpdateUserRequest{Email: strPtr("nope")})
		assert.Equal(t, KindInvalidInput, KindOf(err))
	})

	t.Run("update of another account is forbidden", func(t *testing.T) {
		_, err := service.Update(ctx, moussa.Subject(), awa.ID, UpdateUserRequest{Name: strPtr("Hijack")})
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("delete", func(t *testing.T) {
		err := service.Delete(ctx, moussa.Subject(), awa.ID)
		assert.Equal(t, KindForbidden, KindOf(err))

		require.NoError(t, service.Delete(ctx, admin.Subject(), moussa.ID))

		err = service.Delete(ctx, admin.Subject(), moussa.ID)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}
