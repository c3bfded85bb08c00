package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/models"
	"go.uber.org/zap"
)

// UserService manages account profiles. Balances are never written here.
type UserService struct {
	db        *sql.DB
	accounts  *AccountRepository
	validator *ValidationHelper
}

// UpdateUserRequest represents a profile update. Omitted fields keep their
// current value.
// @Description Profile update request
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100" example:"Awa Diallo"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=200" example:"awa@example.com"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=6,max=15" example:"+221770000000"`
}

// normalize trims every provided field and lower-cases the email so the
// validator sees the values that will be stored.
func (r *UpdateUserRequest) normalize() {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	r.Name = trim(r.Name)
	r.Phone = trim(r.Phone)
	if email := trim(r.Email); email != nil {
		lower := strings.ToLower(*email)
		r.Email = &lower
	}
}

func NewUserService(db *sql.DB, dialect database.Dialect) *UserService {
	return &UserService{
		db:        db,
		accounts:  NewAccountRepository(dialect),
		validator: NewValidationHelper(),
	}
}

// Profile returns the caller's own account.
func (s *UserService) Profile(ctx context.Context, subject authz.Subject) (models.AccountPayload, error) {
	account, err := s.find(ctx, subject.ID)
	if err != nil {
		return models.AccountPayload{}, err
	}
	return account.ToPayload(), nil
}

// List returns every account. Administrators only.
func (s *UserService) List(ctx context.Context, subject authz.Subject) ([]models.AccountPayload, error) {
	if !authz.Allow(subject, authz.ListUsers, authz.Resource{}) {
		return nil, forbidden()
	}

	accounts, err := s.accounts.List(ctx, s.db)
	if err != nil {
		zap.L().Error("Failed to list accounts", zap.Error(err))
		return nil, unexpected(err)
	}

	payloads := make([]models.AccountPayload, 0, len(accounts))
	for _, a := range accounts {
		payloads = append(payloads, a.ToPayload())
	}
	return payloads, nil
}

// Get returns one account to its owner or to an administrator.
func (s *UserService) Get(ctx context.Context, subject authz.Subject, id string) (models.AccountPayload, error) {
	if !authz.Allow(subject, authz.ViewUser, authz.Resource{Parties: []string{id}}) {
		return models.AccountPayload{}, forbidden()
	}
	account, err := s.find(ctx, id)
	if err != nil {
		return models.AccountPayload{}, err
	}
	return account.ToPayload(), nil
}

// Update changes the name, email or phone of an account.
func (s *UserService) Update(ctx context.Context, subject authz.Subject, id string, req UpdateUserRequest) (models.AccountPayload, error) {
	if !authz.Allow(subject, authz.UpdateUser, authz.Resource{Parties: []string{id}}) {
		return models.AccountPayload{}, forbidden()
	}
	req.normalize()
	if err := s.validator.ValidateStruct(&req); err != nil {
		return models.AccountPayload{}, validationFailed(err)
	}

	account, err := s.find(ctx, id)
	if err != nil {
		return models.AccountPayload{}, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}

	exists, err := s.accounts.Exists(ctx, s.db, account.Email, account.Phone, account.ID)
	if err != nil {
		return models.AccountPayload{}, unexpected(err)
	}
	if exists {
		return models.AccountPayload{}, conflict("Email or phone already in use", nil)
	}

	if err := s.accounts.UpdateProfile(ctx, s.db, account); err != nil {
		return models.AccountPayload{}, classify(err)
	}

	zap.L().Info("Account updated", zap.String("user_id", account.ID), zap.String("by", subject.ID))
	return account.ToPayload(), nil
}

// Delete removes an account together with every transaction it took part
// in. Administrators only.
func (s *UserService) Delete(ctx context.Context, subject authz.Subject, id string) error {
	if !authz.Allow(subject, authz.DeleteUser, authz.Resource{Parties: []string{id}}) {
		return forbidden()
	}

	if err := s.accounts.Delete(ctx, s.db, id); err != nil {
		if isNoRows(err) {
			return notFound("User %s not found", id)
		}
		zap.L().Error("Failed to delete account", zap.String("user_id", id), zap.Error(err))
		return unexpected(err)
	}

	zap.L().Info("Account deleted", zap.String("user_id", id), zap.String("by", subject.ID))
	return nil
}

func (s *UserService) find(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, s.db, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("User %s not found", id)
		}
		zap.L().Error("Failed to load account", zap.String("user_id", id), zap.Error(err))
		return nil, unexpected(err)
	}
	return account, nil
}
