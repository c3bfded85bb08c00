package models

import (
	"time"

	"github.com/fxledger/backend/internal/authz"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// Account is a registered user together with the balance they hold. The
// balance is expressed in the canonical unit and is only written through
// Credit and Debit.
type Account struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Email     string          `json:"email" db:"email"`
	Phone     string          `json:"phone" db:"phone"`
	Password  string          `json:"-" db:"password"`
	Roles     Roles           `json:"roles" db:"roles"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Version   int             `json:"-" db:"version"` // for optimistic locking
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// AccountPayload is the public view of an account.
type AccountPayload struct {
	ID        string          `json:"id" example:"3f1c0d8e-6c1b-4a4e-9a57-0c6f3e1b9a10"`
	Name      string          `json:"name" example:"Awa Diallo"`
	Email     string          `json:"email" example:"awa@example.com"`
	Phone     string          `json:"phone" example:"+221770000000"`
	Roles     []authz.Role    `json:"roles" example:"USER"`
	Balance   decimal.Decimal `json:"balance" swaggertype:"string" example:"120.50"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PayloadClaims are the JWT claims issued for an account.
type PayloadClaims struct {
	AccountPayload
	jwt.RegisteredClaims
}

// ToPayload strips the password hash and internal bookkeeping.
func (a *Account) ToPayload() AccountPayload {
	roles := make([]authz.Role, len(a.Roles))
	copy(roles, a.Roles)
	return AccountPayload{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Roles:     roles,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// Subject returns the authorization identity of the account.
func (a *Account) Subject() authz.Subject {
	return authz.Subject{ID: a.ID, Roles: []authz.Role(a.Roles)}
}
