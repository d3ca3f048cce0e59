package ledger

import (
	"context"

	"flowcash/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionStore persists per-user ledger entries. ListTransactions
	// returns an empty slice (not an error) when the user has no data yet or
	// the store denies access; that state is indistinguishable from first use.
	TransactionStore interface {
		ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
		SaveTransaction(ctx context.Context, userID string, tx core.Transaction) error
		DeleteTransaction(ctx context.Context, userID, txID string) error
	}

	// ProfileStore persists user profiles. LoadProfile returns nil when the
	// profile is absent. SaveProfile has upsert/merge semantics: fields left
	// empty in p must not erase existing values.
	ProfileStore interface {
		LoadProfile(ctx context.Context, userID string) (*core.Profile, error)
		SaveProfile(ctx context.Context, userID string, p core.Profile) error
	}

	// UserStore holds authentication accounts.
	UserStore interface {
		CreateUser(ctx context.Context, u Account) error
		UserByEmail(ctx context.Context, email string) (*Account, error)
		UserByID(ctx context.Context, id string) (*Account, error)
	}
)

// Account is an authentication record; profile data lives separately.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}
