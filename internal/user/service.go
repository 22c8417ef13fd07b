package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/platform/crypto"
	"bookcatalog/internal/platform/logger"
)

const (
	confirmationCodeLength = 32
	defaultTokenTTL        = 24 * time.Hour
)

// TokenConfig controls the access tokens issued by Login.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type Service struct {
	repo   Repository
	mailer Mailer
	tokens TokenConfig
}

// NewService creates a user service. mailer may be nil; a non-positive
// token TTL means 24h.
func NewService(repo Repository, mailer Mailer, tokens TokenConfig) *Service {
	if tokens.TTL <= 0 {
		tokens.TTL = defaultTokenTTL
	}
	return &Service{repo: repo, mailer: mailer, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a disabled reader account and sends its confirmation
// code. A mail failure is logged; the account is still created.
func (s *Service) Register(ctx context.Context, in Registration) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return User{}, apperr.New(apperr.KindFieldValidation, "email is required").WithField("email")
	}
	if in.Password == "" {
		return User{}, apperr.New(apperr.KindFieldValidation, "password is required").WithField("password")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	code, err := crypto.RandomCode(confirmationCodeLength)
	if err != nil {
		return User{}, fmt.Errorf("confirmation code: %w", err)
	}

	u := &User{
		Email:            email,
		PasswordHash:     hash,
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Role:             RoleUser,
		Enabled:          false,
		ConfirmationCode: code,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}

	log := logger.C(ctx)
	log.Info().Int64("user_id", u.ID).Str("email", u.Email).Msg("user registered")

	if s.mailer != nil {
		if err := s.mailer.SendConfirmation(ctx, u.Email, u.DisplayName(), code); err != nil {
			log.Warn().Err(err).Str("email", u.Email).Msg("confirmation email not sent")
		}
	}
	return *u, nil
}

// Confirm enables the account holding code. Unknown codes and accounts
// that are already enabled are rejected.
func (s *Service) Confirm(ctx context.Context, code string) (User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return User{}, ErrInvalidCode
	}

	u, err := s.repo.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCode
		}
		return User{}, err
	}
	if u.Enabled {
		return User{}, ErrInvalidCode
	}

	if err := s.repo.Enable(ctx, u.ID); err != nil {
		return User{}, fmt.Errorf("enable user: %w", err)
	}
	u.Enabled = true
	u.ConfirmationCode = ""

	logger.C(ctx).Info().Int64("user_id", u.ID).Str("email", u.Email).Msg("user confirmed")
	return u, nil
}

// Login checks the credentials of a confirmed account and returns a signed
// access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return "", User{}, ErrInvalidCredentials
	}
	if !u.Enabled {
		return "", User{}, ErrNotConfirmed
	}

	token, _, err := crypto.GenerateToken(s.tokens.Secret, strconv.FormatInt(u.ID, 10), u.Email, u.Role, s.tokens.TTL)
	if err != nil {
		return "", User{}, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

// EnsureAdmin creates an enabled ADMIN account for email unless one with
// that email already exists. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	u := &User{Email: email, PasswordHash: hash, Role: RoleAdmin, Enabled: true}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	logger.Named("user").Info().Int64("user_id", u.ID).Str("email", u.Email).Msg("admin account created")
	return true, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
