package repository

import (
	"context"
	"errors"

	"github.com/alvropena/kakeiboo/internal/model"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("repository: not found")

// Session is the result of a successful sign-in. Token material stays
// inside the SDK client; callers only ever need the owner id that scopes
// their rows.
type Session struct {
	OwnerID string
	Email   string
}

// Identity is the authentication collaborator.
type Identity interface {
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// CurrentSession returns the active session, or (nil, nil) when
	// signed out.
	CurrentSession(ctx context.Context) (*Session, error)
}

// Store is the relational collaborator over the users and transactions
// tables. Every operation is scoped by owner id; implementations must
// never let one owner's call touch another owner's rows.
type Store interface {
	// GetTransactions returns all rows for the owner ordered by date
	// descending.
	GetTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error)
	// CreateTransaction inserts description, amount and owner; the
	// returned row carries the server-assigned id and date.
	CreateTransaction(ctx context.Context, t *model.Transaction) (*model.Transaction, error)
	// DeleteTransaction deletes the row matching both id and owner.
	DeleteTransaction(ctx context.Context, id, ownerID string) error
	// DeleteAllTransactions deletes every row belonging to the owner.
	DeleteAllTransactions(ctx context.Context, ownerID string) error

	// GetProfile returns the owner's users row, or ErrNotFound before
	// onboarding has completed.
	GetProfile(ctx context.Context, ownerID string) (*model.UserProfile, error)
	// UpsertProfile writes the profile row keyed by id and returns the
	// stored row.
	UpsertProfile(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error)
}
