package user

import (
	"context"
)

type Repository interface {
	// Create stores u and fills in its ID and CreatedAt. A duplicate email
	// yields ErrAlreadyExists.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByConfirmationCode(ctx context.Context, code string) (User, error)
	// Enable marks the account confirmed and clears its confirmation code.
	Enable(ctx context.Context, id int64) error
}

// Mailer delivers account confirmation codes.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, name, code string) error
}
