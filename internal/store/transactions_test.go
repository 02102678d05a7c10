package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/alvropena/kakeiboo/internal/model"
	"github.com/alvropena/kakeiboo/internal/repository"
	"github.com/alvropena/kakeiboo/internal/session"
)

// TransactionStoreSuite exercises the store against the in-memory
// repository with a real session watcher providing the owner id.
type TransactionStoreSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *repository.MemoryRepository
	watcher *session.Watcher
	store   *TransactionStore
}

func (s *TransactionStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = repository.NewMemoryRepository()

	// Deterministic, strictly increasing server clock.
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.repo.SetNow(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.watcher = session.NewWatcher(s.repo, logger)
	s.store = NewTransactionStore(s.repo, s.watcher, logger)
	s.watcher.Subscribe(func(ev session.Event) {
		if ev.Status == session.StatusSignedOut {
			s.store.Reset()
		}
	})
	s.watcher.Start(s.ctx)

	require.NoError(s.T(), s.watcher.SignUp(s.ctx, "alice@example.com", "password123"))
	require.NoError(s.T(), s.watcher.SignUp(s.ctx, "bob@example.com", "password123"))
	require.NoError(s.T(), s.watcher.SignIn(s.ctx, "alice@example.com", "password123"))
}

func (s *TransactionStoreSuite) TestAddThenFetchAll() {
	_, err := s.store.Add(s.ctx, "Coffee", -450)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.store.FetchAll(s.ctx))

	list := s.store.List()
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "Coffee", list[0].Description)
	assert.Equal(s.T(), int64(-450), list[0].Cents())
	assert.NotEmpty(s.T(), list[0].ID, "server must assign an id")
	assert.False(s.T(), list[0].Date.IsZero(), "server must assign a date")
}

func (s *TransactionStoreSuite) TestAddPrependsNewestFirst() {
	_, err := s.store.Add(s.ctx, "Older", -100)
	require.NoError(s.T(), err)
	_, err = s.store.Add(s.ctx, "Newer", 200)
	require.NoError(s.T(), err)

	list := s.store.List()
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "Newer", list[0].Description)
	assert.Equal(s.T(), "Older", list[1].Description)

	// FetchAll must agree with the incrementally built order.
	require.NoError(s.T(), s.store.FetchAll(s.ctx))
	list = s.store.List()
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "Newer", list[0].Description)
}

func (s *TransactionStoreSuite) TestFetchAllOrdersByDateDescending() {
	for _, d := range []string{"First", "Second", "Third"} {
		_, err := s.store.Add(s.ctx, d, -100)
		require.NoError(s.T(), err)
	}

	require.NoError(s.T(), s.store.FetchAll(s.ctx))

	list := s.store.List()
	require.Len(s.T(), list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(s.T(), list[i].Date.After(list[i-1].Date),
			"list must be date-descending")
	}
	assert.Equal(s.T(), "Third", list[0].Description)
}

func (s *TransactionStoreSuite) TestDeleteRemovesExactlyOne() {
	kept, err := s.store.Add(s.ctx, "Keep", -100)
	require.NoError(s.T(), err)
	doomed, err := s.store.Add(s.ctx, "Remove", -200)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.store.Delete(s.ctx, doomed.ID))

	list := s.store.List()
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), kept.ID, list[0].ID)
}

func (s *TransactionStoreSuite) TestDeleteIsOwnerScoped() {
	// A row belonging to another owner, inserted behind the store's
	// back.
	other := &model.Transaction{OwnerID: "someone-else", Description: "Not yours"}
	other.SetCents(-999)
	created, err := s.repo.CreateTransaction(s.ctx, other)
	require.NoError(s.T(), err)

	// Deleting it through alice's store must affect zero rows.
	require.NoError(s.T(), s.store.Delete(s.ctx, created.ID))
	assert.Equal(s.T(), 1, s.repo.TransactionCount("someone-else"))
}

func (s *TransactionStoreSuite) TestClearEmptiesOwnRowsOnly() {
	_, err := s.store.Add(s.ctx, "Mine", -100)
	require.NoError(s.T(), err)

	other := &model.Transaction{OwnerID: "someone-else", Description: "Theirs"}
	other.SetCents(-50)
	_, err = s.repo.CreateTransaction(s.ctx, other)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.store.Clear(s.ctx))

	assert.Empty(s.T(), s.store.List())
	owner, _ := s.watcher.OwnerID()
	assert.Zero(s.T(), s.repo.TransactionCount(owner))
	assert.Equal(s.T(), 1, s.repo.TransactionCount("someone-else"))
}

func (s *TransactionStoreSuite) TestOwnerSwitchNeverLeaksData() {
	_, err := s.store.Add(s.ctx, "Coffee", -450)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), s.store.List())

	// Session ends: the in-memory list must go before anything renders
	// for the next owner.
	require.NoError(s.T(), s.watcher.SignOut(s.ctx))
	assert.Empty(s.T(), s.store.List())

	require.NoError(s.T(), s.watcher.SignIn(s.ctx, "bob@example.com", "password123"))
	require.NoError(s.T(), s.store.FetchAll(s.ctx))
	assert.Empty(s.T(), s.store.List(), "bob must never see alice's rows")
}

func (s *TransactionStoreSuite) TestRemoteFailureKeepsPriorState() {
	_, err := s.store.Add(s.ctx, "Coffee", -450)
	require.NoError(s.T(), err)
	before := s.store.List()

	s.repo.SetErr(errors.New("backend down"))

	assert.Error(s.T(), s.store.FetchAll(s.ctx))
	assert.Equal(s.T(), before, s.store.List())

	_, err = s.store.Add(s.ctx, "Tea", -300)
	assert.Error(s.T(), err)
	assert.Equal(s.T(), before, s.store.List())

	assert.Error(s.T(), s.store.Delete(s.ctx, before[0].ID))
	assert.Equal(s.T(), before, s.store.List())

	assert.Error(s.T(), s.store.Clear(s.ctx))
	assert.Equal(s.T(), before, s.store.List())
}

func (s *TransactionStoreSuite) TestOperationsWithoutOwner() {
	require.NoError(s.T(), s.watcher.SignOut(s.ctx))

	// FetchAll without an owner is a quiet no-op.
	assert.NoError(s.T(), s.store.FetchAll(s.ctx))
	assert.Empty(s.T(), s.store.List())

	_, err := s.store.Add(s.ctx, "Coffee", -450)
	assert.ErrorIs(s.T(), err, ErrNoOwner)
	assert.ErrorIs(s.T(), s.store.Delete(s.ctx, "some-id"), ErrNoOwner)
	assert.ErrorIs(s.T(), s.store.Clear(s.ctx), ErrNoOwner)
}

func (s *TransactionStoreSuite) TestAddRejectsBadDescriptions() {
	_, err := s.store.Add(s.ctx, "", -100)
	assert.ErrorIs(s.T(), err, ErrInvalidDescription)

	long := make([]byte, 61)
	for i := range long {
		long[i] = 'x'
	}
	_, err = s.store.Add(s.ctx, string(long), -100)
	assert.ErrorIs(s.T(), err, ErrInvalidDescription)

	assert.Empty(s.T(), s.store.List())
}

func TestTransactionStoreSuite(t *testing.T) {
	suite.Run(t, new(TransactionStoreSuite))
}
