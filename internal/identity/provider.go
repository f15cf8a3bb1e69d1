package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when an identity-provider token fails
// verification or cannot be decoded.
var ErrInvalidToken = errors.New("identity token is not valid")

// Account is the subset of identity-provider profile claims the backend
// cares about.
type Account struct {
	Email    string
	Name     string
	PhotoURL string
}

// Provider is the external identity service. Login verifies a provider
// ID token once; user removal asks the provider to delete the account
// best-effort.
type Provider interface {
	// VerifyToken checks an ID token and returns the account it asserts.
	VerifyToken(ctx context.Context, idToken string) (*Account, error)
	// DeleteAccount removes the provider-side account for the email.
	// Callers treat failures as non-fatal.
	DeleteAccount(ctx context.Context, email string) error
}
