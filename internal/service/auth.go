package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/productapp/api/internal/model"
	"github.com/productapp/api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailInUse = errors.New("email in use")
	// ErrInvalidCredentials is deliberately identical for an unknown email,
	// an unverified account and a wrong password, so login failures never
	// reveal which condition was hit.
	ErrInvalidCredentials = errors.New("email or password is wrong")
	ErrAlreadyVerified    = errors.New("verification has already been passed")
	ErrNotAuthorized      = errors.New("not authorized")
)

// Notifier dispatches verification emails. Delivery failures are the
// collaborator's problem; signup and reissue never fail on them.
type Notifier interface {
	SendVerification(email, code string) error
}

// AuthService orchestrates the identity lifecycle: signup, login, logout,
// email verification, and resolving bearer tokens back to accounts.
type AuthService struct {
	accounts repository.AccountRepository
	notifier Notifier
	issuer   *TokenIssuer
}

func NewAuthService(accounts repository.AccountRepository, notifier Notifier, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		accounts: accounts,
		notifier: notifier,
		issuer:   issuer,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// ComparePassword reports whether password matches hash. A mismatch is a
// false result, not an error.
func (s *AuthService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateVerificationCode returns a high-entropy opaque URL-safe code.
func (s *AuthService) GenerateVerificationCode() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Signup creates an unverified account and dispatches a verification email.
// It does not log the account in. The returned account has its password
// hash blanked.
func (s *AuthService) Signup(email, password string) (*model.Account, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	avatarURL := DeriveAvatarURL(email)
	account := &model.Account{
		ID:               uuid.New().String(),
		Email:            email,
		PasswordHash:     hash,
		Subscription:     model.SubscriptionStarter,
		AvatarURL:        &avatarURL,
		Verified:         false,
		VerificationCode: &code,
		CreatedAt:        time.Now(),
	}

	err = s.accounts.Create(account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	err = s.notifier.SendVerification(account.Email, code)
	if err != nil {
		slog.Warn("failed to send verification email", "error", err, "email", account.Email)
	}

	slog.Info("account created", "account_id", account.ID, "email", account.Email)

	account.PasswordHash = ""
	return account, nil
}

// Login authenticates the account and issues a bearer token, persisting it
// as the account's single active token. A second login overwrites the first.
func (s *AuthService) Login(email, password string) (string, *model.Account, error) {
	account, err := s.accounts.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !account.Verified {
		return "", nil, ErrInvalidCredentials
	}

	if !s.ComparePassword(password, account.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(account.ID, account.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	err = s.accounts.SetToken(account.ID, token)
	if err != nil {
		return "", nil, fmt.Errorf("failed to store token: %w", err)
	}

	slog.Info("account logged in", "account_id", account.ID)

	account.PasswordHash = ""
	return token, account, nil
}

// Logout clears the active token. Idempotent: logging out an already
// logged-out account is a no-op.
func (s *AuthService) Logout(accountID string) error {
	err := s.accounts.ClearToken(accountID)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	slog.Info("account logged out", "account_id", accountID)
	return nil
}

// ResolveFromToken maps a presented bearer token to a live account. It fails
// closed (ErrNotAuthorized) on a missing, malformed, expired or tampered
// token, on an unknown account, and when the token is not the account's
// current active one — so logout truly revokes access even before the
// token's cryptographic expiry.
func (s *AuthService) ResolveFromToken(token string) (*model.Account, error) {
	if token == "" {
		return nil, ErrNotAuthorized
	}

	claims, err := s.issuer.Validate(token)
	if err != nil {
		return nil, ErrNotAuthorized
	}

	account, err := s.accounts.ByEmail(claims.Email)
	if err != nil {
		return nil, ErrNotAuthorized
	}

	if account.Token == nil || *account.Token != token {
		return nil, ErrNotAuthorized
	}

	account.PasswordHash = ""
	return account, nil
}

// VerifyEmail consumes a verification code: the matching unverified account
// becomes verified and the code is cleared, atomically. A consumed or
// unknown code reports not-found. Verification is not reversible.
func (s *AuthService) VerifyEmail(code string) (*model.Account, error) {
	account, err := s.accounts.ConsumeVerificationCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return nil, repository.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}

	slog.Info("email verified", "account_id", account.ID)

	account.PasswordHash = ""
	return account, nil
}

// ResendVerification overwrites the pending verification code with a fresh
// one and dispatches it. Errors if the account is already verified.
func (s *AuthService) ResendVerification(email string) error {
	account, err := s.accounts.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return repository.ErrAccountNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	if account.Verified {
		return ErrAlreadyVerified
	}

	code, err := s.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	err = s.accounts.SetVerificationCode(account.ID, code)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	err = s.notifier.SendVerification(account.Email, code)
	if err != nil {
		slog.Warn("failed to send verification email", "error", err, "email", account.Email)
	}

	return nil
}
