package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/alvropena/kakeiboo/internal/model"
	"github.com/alvropena/kakeiboo/internal/repository"
	"github.com/alvropena/kakeiboo/internal/validate"
)

// TransactionStore keeps the owner-scoped transaction list in memory,
// synchronized with the remote table. The list is sorted by date
// descending after every successful FetchAll; Add prepends the
// server-assigned row, which preserves that order because dates are
// assigned at insert time.
type TransactionStore struct {
	repo   repository.Store
	owner  OwnerSource
	logger *slog.Logger

	mu   sync.Mutex
	list []model.Transaction
}

func NewTransactionStore(repo repository.Store, owner OwnerSource, logger *slog.Logger) *TransactionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionStore{
		repo:   repo,
		owner:  owner,
		logger: logger.With("component", "transactions"),
	}
}

// FetchAll replaces the list with the owner's rows, newest first. It
// returns nil without a remote call when no owner is known. On failure
// the prior list is kept and the error is returned. A response that
// arrives after the owner changed is discarded.
func (s *TransactionStore) FetchAll(ctx context.Context) error {
	owner, ok := s.owner.OwnerID()
	if !ok {
		return nil
	}

	rows, err := s.repo.GetTransactions(ctx, owner)
	if err != nil {
		s.logger.Error("fetch failed", "owner", owner, "err", err)
		return fmt.Errorf("fetch transactions: %w", err)
	}
	if s.stale(owner) {
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	s.mu.Lock()
	s.list = rows
	s.mu.Unlock()
	return nil
}

// Add submits a new row with the given description and signed cents and
// prepends the server-assigned record to the list.
func (s *TransactionStore) Add(ctx context.Context, description string, cents int64) (*model.Transaction, error) {
	owner, ok := s.owner.OwnerID()
	if !ok {
		return nil, ErrNoOwner
	}
	if !validate.ValidDescription(description) {
		return nil, ErrInvalidDescription
	}

	t := &model.Transaction{OwnerID: owner, Description: description}
	t.SetCents(cents)
	created, err := s.repo.CreateTransaction(ctx, t)
	if err != nil {
		s.logger.Error("add failed", "owner", owner, "err", err)
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	if s.stale(owner) {
		return created, nil
	}

	s.mu.Lock()
	s.list = append([]model.Transaction{*created}, s.list...)
	s.mu.Unlock()
	return created, nil
}

// Delete removes the row matching id, filtered by the current owner so
// a guessed id can never touch someone else's row.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	owner, ok := s.owner.OwnerID()
	if !ok {
		return ErrNoOwner
	}

	if err := s.repo.DeleteTransaction(ctx, id, owner); err != nil {
		s.logger.Error("delete failed", "owner", owner, "id", id, "err", err)
		return fmt.Errorf("delete transaction: %w", err)
	}
	if s.stale(owner) {
		return nil
	}

	s.mu.Lock()
	for i, t := range s.list {
		if t.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Clear deletes every row belonging to the current owner and empties
// the list.
func (s *TransactionStore) Clear(ctx context.Context) error {
	owner, ok := s.owner.OwnerID()
	if !ok {
		return ErrNoOwner
	}

	if err := s.repo.DeleteAllTransactions(ctx, owner); err != nil {
		s.logger.Error("clear failed", "owner", owner, "err", err)
		return fmt.Errorf("clear transactions: %w", err)
	}
	if s.stale(owner) {
		return nil
	}

	s.mu.Lock()
	s.list = nil
	s.mu.Unlock()
	return nil
}

// List returns a copy of the in-memory list.
func (s *TransactionStore) List() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Transaction, len(s.list))
	copy(out, s.list)
	return out
}

// Reset drops the in-memory list without touching the remote table.
// Called when the session ends.
func (s *TransactionStore) Reset() {
	s.mu.Lock()
	s.list = nil
	s.mu.Unlock()
}

// stale reports whether the owner captured at call start no longer
// matches the current one, meaning the response belongs to a session
// that has since ended.
func (s *TransactionStore) stale(owner string) bool {
	current, ok := s.owner.OwnerID()
	return !ok || current != owner
}
