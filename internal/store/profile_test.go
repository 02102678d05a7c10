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

	"github.com/alvropena/kakeiboo/internal/repository"
	"github.com/alvropena/kakeiboo/internal/session"
)

type ProfileStoreSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *repository.MemoryRepository
	watcher *session.Watcher
	store   *ProfileStore
}

func (s *ProfileStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = repository.NewMemoryRepository()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.watcher = session.NewWatcher(s.repo, logger)
	s.store = NewProfileStore(s.repo, s.watcher, logger)
	s.watcher.Subscribe(func(ev session.Event) {
		if ev.Status == session.StatusSignedOut {
			s.store.Reset()
		}
	})
	s.watcher.Start(s.ctx)

	require.NoError(s.T(), s.watcher.SignUp(s.ctx, "alice@example.com", "password123"))
	require.NoError(s.T(), s.watcher.SignIn(s.ctx, "alice@example.com", "password123"))
}

func (s *ProfileStoreSuite) adultBirthday() time.Time {
	return time.Now().AddDate(-30, 0, 0)
}

func (s *ProfileStoreSuite) TestRefreshBeforeOnboardingLeavesProfileAbsent() {
	require.NoError(s.T(), s.store.Refresh(s.ctx))

	_, ok := s.store.Current()
	assert.False(s.T(), ok, "not-found must resolve to absent, not an error")
}

func (s *ProfileStoreSuite) TestFinalizeOnboardingPersistsAndLoads() {
	saved, err := s.store.FinalizeOnboarding(s.ctx, "Alice", s.adultBirthday(), "female", "EUR")
	require.NoError(s.T(), err)

	owner, _ := s.watcher.OwnerID()
	assert.Equal(s.T(), owner, saved.ID)
	assert.Equal(s.T(), "Alice", saved.Name)
	assert.Equal(s.T(), "EUR", saved.Currency)

	current, ok := s.store.Current()
	require.True(s.T(), ok)
	assert.Equal(s.T(), *saved, current)
	assert.Equal(s.T(), "€", s.store.CurrencySymbol())

	// A fresh refresh reads the same row back.
	s.store.Reset()
	require.NoError(s.T(), s.store.Refresh(s.ctx))
	current, ok = s.store.Current()
	require.True(s.T(), ok)
	assert.Equal(s.T(), "Alice", current.Name)
}

func (s *ProfileStoreSuite) TestFinalizeOnboardingValidation() {
	adult := s.adultBirthday()

	_, err := s.store.FinalizeOnboarding(s.ctx, "  ", adult, "male", "USD")
	assert.ErrorIs(s.T(), err, ErrEmptyName)

	twelve := time.Now().AddDate(-13, 0, 1)
	_, err = s.store.FinalizeOnboarding(s.ctx, "Kid", twelve, "male", "USD")
	assert.ErrorIs(s.T(), err, ErrUnderage)

	_, err = s.store.FinalizeOnboarding(s.ctx, "Alice", adult, "", "USD")
	assert.ErrorIs(s.T(), err, ErrInvalidGender)

	_, err = s.store.FinalizeOnboarding(s.ctx, "Alice", adult, "female", "ZZZ")
	assert.ErrorIs(s.T(), err, ErrUnknownCurrency)

	_, ok := s.store.Current()
	assert.False(s.T(), ok, "rejected onboarding must not set a profile")
}

func (s *ProfileStoreSuite) TestFinalizeExactlyThirteenPasses() {
	thirteen := time.Now().AddDate(-13, 0, 0)
	_, err := s.store.FinalizeOnboarding(s.ctx, "Teen", thirteen, "other", "USD")
	assert.NoError(s.T(), err)
}

func (s *ProfileStoreSuite) TestRefreshWithoutOwnerIsNoOp() {
	_, err := s.store.FinalizeOnboarding(s.ctx, "Alice", s.adultBirthday(), "female", "USD")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.watcher.SignOut(s.ctx))
	_, ok := s.store.Current()
	assert.False(s.T(), ok, "sign-out must clear the profile")

	require.NoError(s.T(), s.store.Refresh(s.ctx))
	_, ok = s.store.Current()
	assert.False(s.T(), ok)
}

func (s *ProfileStoreSuite) TestRemoteFailureKeepsPriorProfile() {
	_, err := s.store.FinalizeOnboarding(s.ctx, "Alice", s.adultBirthday(), "female", "USD")
	require.NoError(s.T(), err)

	s.repo.SetErr(errors.New("backend down"))
	assert.Error(s.T(), s.store.Refresh(s.ctx))

	current, ok := s.store.Current()
	require.True(s.T(), ok, "failed refresh must keep the prior profile")
	assert.Equal(s.T(), "Alice", current.Name)
}

func (s *ProfileStoreSuite) TestCurrencySymbolFallsBack() {
	assert.Equal(s.T(), "$", s.store.CurrencySymbol())
}

func TestProfileStoreSuite(t *testing.T) {
	suite.Run(t, new(ProfileStoreSuite))
}
