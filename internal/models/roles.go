package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/fxledger/backend/internal/authz"
)

// Roles is the set of roles held by an account. It is stored as a comma
// separated column.
type Roles []authz.Role

// DefaultRoles is assigned at registration.
func DefaultRoles() Roles {
	return Roles{authz.RoleUser}
}

func (r Roles) Has(role authz.Role) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer for Roles
func (r Roles) Value() (driver.Value, error) {
	if len(r) == 0 {
		return string(authz.RoleUser), nil
	}
	parts := make([]string, 0, len(r))
	for _, role := range r {
		if !role.Valid() {
			return nil, fmt.Errorf("invalid role %q", role)
		}
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner for Roles
func (r *Roles) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*r = DefaultRoles()
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return errors.New("type assertion to string failed")
	}

	roles := Roles{}
	for _, part := range strings.Split(raw, ",") {
		role := authz.Role(strings.TrimSpace(part))
		if role == "" {
			continue
		}
		if !role.Valid() {
			return fmt.Errorf("invalid role %q", role)
		}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		roles = DefaultRoles()
	}
	*r = roles
	return nil
}
