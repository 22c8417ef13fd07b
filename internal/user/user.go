package user

import (
	"time"

	"bookcatalog/internal/apperr"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	ErrNotFound           = apperr.New(apperr.KindNotFound, "user not found")
	ErrAlreadyExists      = apperr.New(apperr.KindConflict, "email already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid email or password")
	ErrNotConfirmed       = apperr.New(apperr.KindUnauthorized, "account has not been confirmed")
	ErrInvalidCode        = apperr.New(apperr.KindFieldValidation, "invalid or already used confirmation code")
)

// User is a registered account. Comments reference users by Email.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FirstName        string    `json:"first_name,omitempty"`
	LastName         string    `json:"last_name,omitempty"`
	Role             string    `json:"role"`
	Enabled          bool      `json:"enabled"`
	ConfirmationCode string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// DisplayName is the first name when known, otherwise the email.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

// Registration is the input for creating a reader account.
type Registration struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,password_strength"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}
