package services

import (
	"context"
	cryptorand "crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/config"
	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

type AuthService struct {
	db        *sql.DB
	accounts  *AccountRepository
	redis     *redis.Client
	limiter   *LoginLimiter
	validator *ValidationHelper
	cfg       *config.AppConfig
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"awa@example.com"` // Account email
	Password string `json:"password" validate:"required" example:"password123"`        // Account password
}

// RegisterRequest represents the registration request payload
// @Description Registration request structure
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100" example:"Awa Diallo"`                  // Display name
	Email           string `json:"email" validate:"required,email,max=200" example:"awa@example.com"`            // Account email
	Phone           string `json:"phone" validate:"required,min=6,max=15" example:"+221770000000"`               // Phone number
	Password        string `json:"password" validate:"required,min=6,max=100" example:"password123"`             // Account password
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password" example:"password123"` // Must match password
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Message     string                `json:"message" example:"Login successful"`
	AccessToken string                `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT token
	User        models.AccountPayload `json:"user"`                                                          // Account information
}

// NewAccount describes an account created outside the registration flow.
type NewAccount struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Roles    models.Roles
}

func NewAuthService(db *sql.DB, dialect database.Dialect, redisClient *redis.Client, cfg *config.AppConfig) *AuthService {
	return &AuthService{
		db:        db,
		accounts:  NewAccountRepository(dialect),
		redis:     redisClient,
		limiter:   NewLoginLimiter(redisClient, cfg.LoginLimit),
		validator: NewValidationHelper(),
		cfg:       cfg,
	}
}

// normalize trims the identity fields and lower-cases the email before
// validation. Passwords are taken as typed.
func (r *RegisterRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
}

// Register creates a USER account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.normalize()
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, validationFailed(err)
	}

	account, err := s.CreateAccount(ctx, NewAccount{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Roles:    models.DefaultRoles(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.generateJWT(account)
	if err != nil {
		zap.L().Error("JWT generation failed", zap.String("user_id", account.ID), zap.Error(err))
		return nil, unexpected(err)
	}

	zap.L().Info("User registered", zap.String("user_id", account.ID))
	return &AuthResponse{Message: "User registered successfully", AccessToken: token, User: account.ToPayload()}, nil
}

// CreateAccount stores a new account with a zero balance. Email and phone
// must not be in use.
func (s *AuthService) CreateAccount(ctx context.Context, na NewAccount) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(na.Email))
	phone := strings.TrimSpace(na.Phone)

	exists, err := s.accounts.Exists(ctx, s.db, email, phone, "")
	if err != nil {
		return nil, unexpected(err)
	}
	if exists {
		return nil, conflict("Email or phone already in use", nil)
	}

	hashedPassword, err := hashPassword(na.Password, s.cfg.Argon2)
	if err != nil {
		zap.L().Error("Password hashing failed", zap.Error(err))
		return nil, unexpected(err)
	}

	roles := na.Roles
	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}
	now := time.Now().UTC()
	account := &models.Account{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(na.Name),
		Email:     email,
		Phone:     phone,
		Password:  hashedPassword,
		Roles:     roles,
		Balance:   decimal.Zero,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accounts.Create(ctx, s.db, account); err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("Email or phone already in use", err)
		}
		zap.L().Error("Account creation failed", zap.Error(err))
		return nil, unexpected(err)
	}
	return account, nil
}

// Login checks the credentials and signs a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, validationFailed(err)
	}

	email := req.Email
	if err := s.limiter.Check(ctx, email); err != nil {
		zap.L().Warn("Login throttled", zap.String("email", email))
		return nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, s.db, email)
	if err != nil {
		if !isNoRows(err) {
			zap.L().Error("Login lookup failed", zap.Error(err))
			return nil, unexpected(err)
		}
		zap.L().Info("Login failed, unknown email")
		s.limiter.Fail(ctx, email)
		return nil, unauthorized("Invalid credentials")
	}

	if !verifyPassword(req.Password, account.Password, s.cfg.Argon2) {
		zap.L().Info("Login failed, invalid password", zap.String("user_id", account.ID))
		s.limiter.Fail(ctx, email)
		return nil, unauthorized("Invalid credentials")
	}
	s.limiter.Reset(ctx, email)

	token, err := s.generateJWT(account)
	if err != nil {
		zap.L().Error("JWT generation failed", zap.String("user_id", account.ID), zap.Error(err))
		return nil, unexpected(err)
	}

	zap.L().Info("Login successful", zap.String("user_id", account.ID))
	return &AuthResponse{Message: "Login successful", AccessToken: token, User: account.ToPayload()}, nil
}

// Logout blacklists token until it would have expired. Without Redis the
// token simply runs out.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.redis == nil || token == "" {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKey(token), "1", s.cfg.JWT.Expiry).Err(); err != nil {
		zap.L().Error("Failed to blacklist token", zap.Error(err))
		return unexpected(err)
	}
	return nil
}

// ParseToken validates token and returns the caller it was issued to. The
// account must still exist.
func (s *AuthService) ParseToken(ctx context.Context, token string) (authz.Subject, error) {
	claims := &models.PayloadClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return authz.Subject{}, unauthorized("Invalid token")
	}

	if s.redis != nil {
		n, err := s.redis.Exists(ctx, blacklistKey(token)).Result()
		if err != nil {
			zap.L().Error("Failed to check token blacklist", zap.Error(err))
			return authz.Subject{}, unexpected(err)
		}
		if n > 0 {
			return authz.Subject{}, unauthorized("Token has been revoked")
		}
	}

	// roles come from the stored account, not from the claims
	account, err := s.accounts.FindByID(ctx, s.db, claims.AccountPayload.ID)
	if err != nil {
		if isNoRows(err) {
			return authz.Subject{}, unauthorized("Account not found")
		}
		zap.L().Error("Failed to load token account", zap.Error(err))
		return authz.Subject{}, unexpected(err)
	}
	return account.Subject(), nil
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func (s *AuthService) generateJWT(account *models.Account) (string, error) {
	now := time.Now()
	claims := models.PayloadClaims{
		AccountPayload: account.ToPayload(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.Expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

func hashPassword(password string, params config.Argon2Config) (string, error) {
	salt := make([]byte, params.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func verifyPassword(password, hashedPassword string, params config.Argon2Config) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computedHash) == 1
}

var errNoSubject = errors.New("no authenticated subject in context")

// SubjectFromContext returns the caller stored by the auth middleware.
func SubjectFromContext(ctx context.Context) (authz.Subject, error) {
	subject, ok := authz.SubjectFrom(ctx)
	if !ok {
		return authz.Subject{}, &Error{Kind: KindUnauthorized, Message: "Unauthorized", Err: errNoSubject}
	}
	return subject, nil
}
