package storage

import (
	"context"

	"github.com/worldsmp/worlds-server/internal/model"
)

// AccountStore defines the interface to the credential store backing
// authentication: a key-value service mapping usernames to account records.
type AccountStore interface {
	// GetAccount returns the account for a username, or
	// model.ErrAccountNotFound if no such account exists.
	GetAccount(ctx context.Context, username string) (*model.Account, error)

	// PutAccount saves an account unconditionally.
	PutAccount(ctx context.Context, username string, account *model.Account) error

	// CreateAccount saves an account only if the username is unclaimed.
	// Returns model.ErrUsernameTaken if an account already exists; the
	// check-and-reserve is atomic so concurrent registrations of the same
	// username cannot both succeed.
	CreateAccount(ctx context.Context, username string, account *model.Account) error
}
