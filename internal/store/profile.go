package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alvropena/kakeiboo/internal/model"
	"github.com/alvropena/kakeiboo/internal/repository"
	"github.com/alvropena/kakeiboo/internal/validate"
)

// ProfileStore mirrors the owner's users row. The profile is absent
// until onboarding completes and after sign-out.
type ProfileStore struct {
	repo   repository.Store
	owner  OwnerSource
	logger *slog.Logger

	mu      sync.Mutex
	profile *model.UserProfile
}

func NewProfileStore(repo repository.Store, owner OwnerSource, logger *slog.Logger) *ProfileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileStore{
		repo:   repo,
		owner:  owner,
		logger: logger.With("component", "profile"),
	}
}

// Refresh fetches the current owner's profile row. It is a no-op when
// no owner is known. A missing row clears the profile instead of
// failing: signed in but not yet onboarded is a normal state. Any other
// failure keeps the prior profile and returns the error.
func (s *ProfileStore) Refresh(ctx context.Context) error {
	owner, ok := s.owner.OwnerID()
	if !ok {
		return nil
	}

	p, err := s.repo.GetProfile(ctx, owner)
	if errors.Is(err, repository.ErrNotFound) {
		if !s.stale(owner) {
			s.set(nil)
		}
		return nil
	}
	if err != nil {
		s.logger.Error("refresh failed", "owner", owner, "err", err)
		return fmt.Errorf("refresh profile: %w", err)
	}
	if s.stale(owner) {
		return nil
	}
	s.set(p)
	return nil
}

// FinalizeOnboarding validates the assembled onboarding answers,
// persists them as the owner's users row, and makes the saved row
// current. This is the single place the profile gets written.
func (s *ProfileStore) FinalizeOnboarding(ctx context.Context, name string, birthday time.Time, gender, currency string) (*model.UserProfile, error) {
	owner, ok := s.owner.OwnerID()
	if !ok {
		return nil, ErrNoOwner
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if !validate.IsAtLeastAge(birthday, validate.MinAgeYears, time.Now()) {
		return nil, ErrUnderage
	}
	if strings.TrimSpace(gender) == "" {
		return nil, ErrInvalidGender
	}
	if _, ok := model.CurrencyByCode(currency); !ok {
		return nil, ErrUnknownCurrency
	}

	p := &model.UserProfile{
		ID:       owner,
		Name:     strings.TrimSpace(name),
		Birthday: birthday.Format(model.BirthdayLayout),
		Gender:   gender,
		Currency: currency,
	}
	saved, err := s.repo.UpsertProfile(ctx, p)
	if err != nil {
		s.logger.Error("finalize onboarding failed", "owner", owner, "err", err)
		return nil, fmt.Errorf("finalize onboarding: %w", err)
	}
	if !s.stale(owner) {
		s.set(saved)
	}
	return saved, nil
}

// Current returns a copy of the profile and whether one is loaded.
func (s *ProfileStore) Current() (model.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return model.UserProfile{}, false
	}
	return *s.profile, true
}

// CurrencySymbol returns the symbol of the profile's currency, falling
// back to "$" before onboarding.
func (s *ProfileStore) CurrencySymbol() string {
	p, ok := s.Current()
	if !ok {
		return "$"
	}
	if c, ok := model.CurrencyByCode(p.Currency); ok {
		return c.Symbol
	}
	return "$"
}

// Reset drops the in-memory profile. Called when the session ends.
func (s *ProfileStore) Reset() {
	s.set(nil)
}

func (s *ProfileStore) set(p *model.UserProfile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

func (s *ProfileStore) stale(owner string) bool {
	current, ok := s.owner.OwnerID()
	return !ok || current != owner
}
