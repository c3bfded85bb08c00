// Package authz decides what an authenticated caller may do. Decisions are
// pure functions of the caller's roles and the parties owning a resource.
package authz

import "context"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type Action string

const (
	ListAllTransactions  Action = "transactions:list"
	ListUserTransactions Action = "transactions:list-user"
	TargetedDeposit      Action = "transactions:deposit"
	ViewTransaction      Action = "transactions:view"
	ListUsers            Action = "users:list"
	ViewUser             Action = "users:view"
	UpdateUser           Action = "users:update"
	DeleteUser           Action = "users:delete"
)

// Subject is the authenticated caller.
type Subject struct {
	ID    string
	Roles []Role
}

func (s Subject) HasRole(role Role) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Resource carries the ids of the accounts that own the target. It is empty
// for collection-level actions.
type Resource struct {
	Parties []string
}

func (r Resource) includes(id string) bool {
	if id == "" {
		return false
	}
	for _, p := range r.Parties {
		if p == id {
			return true
		}
	}
	return false
}

// Allow reports whether subject may perform action on resource.
func Allow(subject Subject, action Action, resource Resource) bool {
	if subject.HasRole(RoleAdmin) {
		return true
	}
	if !subject.HasRole(RoleUser) {
		return false
	}

	switch action {
	case ViewTransaction, ViewUser, UpdateUser:
		return resource.includes(subject.ID)
	default:
		return false
	}
}

type contextKey struct{}

// WithSubject returns a copy of ctx carrying subject.
func WithSubject(ctx context.Context, subject Subject) context.Context {
	return context.WithValue(ctx, contextKey{}, subject)
}

// SubjectFrom extracts the subject stored by WithSubject.
func SubjectFrom(ctx context.Context) (Subject, bool) {
	subject, ok := ctx.Value(contextKey{}).(Subject)
	return subject, ok && subject.ID != ""
}
