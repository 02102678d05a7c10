// Package session tracks the tri-state authentication status and fans
// out transitions to the stores that depend on it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alvropena/kakeiboo/internal/repository"
)

// Status is the client-side authentication state. Dependent surfaces
// must render nothing while it is StatusUnknown; only the first
// resolution may leave that state.
type Status int

const (
	StatusUnknown Status = iota
	StatusSignedOut
	StatusSignedIn
)

func (s Status) String() string {
	switch s {
	case StatusSignedOut:
		return "signed-out"
	case StatusSignedIn:
		return "signed-in"
	default:
		return "unknown"
	}
}

// Event describes a status transition. OwnerID is set only when the new
// status is StatusSignedIn.
type Event struct {
	Status  Status
	OwnerID string
}

// Watcher owns the status and is the single mediator for sign-in and
// sign-out, standing in for the identity SDK's change subscription.
// Subscribers are invoked synchronously, in registration order, on every
// transition.
type Watcher struct {
	identity repository.Identity
	logger   *slog.Logger

	mu     sync.Mutex
	status Status
	owner  string
	subs   []func(Event)
}

func NewWatcher(identity repository.Identity, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		identity: identity,
		logger:   logger.With("component", "session"),
	}
}

// Subscribe registers fn for every subsequent transition. Register
// before Start to observe the initial resolution.
func (w *Watcher) Subscribe(fn func(Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subs = append(w.subs, fn)
}

// Start resolves the initial StatusUnknown from the current-session
// lookup. A lookup failure resolves to signed-out so the client never
// stays stuck rendering nothing.
func (w *Watcher) Start(ctx context.Context) {
	sess, err := w.identity.CurrentSession(ctx)
	if err != nil {
		w.logger.Warn("current session lookup failed", "err", err)
	}
	if sess != nil {
		w.transition(StatusSignedIn, sess.OwnerID)
		return
	}
	w.transition(StatusSignedOut, "")
}

// Status returns the current state.
func (w *Watcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// OwnerID returns the authenticated owner id, and whether one is known.
func (w *Watcher) OwnerID() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.owner, w.status == StatusSignedIn
}

// SignUp registers a new account. No transition happens; the caller
// follows up with SignIn, which may fail until the address is confirmed.
func (w *Watcher) SignUp(ctx context.Context, email, password string) error {
	if err := w.identity.SignUp(ctx, email, password); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}

// SignIn authenticates and, on success, transitions to StatusSignedIn.
// Failure leaves the current state untouched.
func (w *Watcher) SignIn(ctx context.Context, email, password string) error {
	sess, err := w.identity.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	w.logger.Info("signed in", "owner", sess.OwnerID)
	w.transition(StatusSignedIn, sess.OwnerID)
	return nil
}

// SignOut always transitions to StatusSignedOut, even when remote token
// revocation fails; local state must not survive the session.
func (w *Watcher) SignOut(ctx context.Context) error {
	err := w.identity.SignOut(ctx)
	if err != nil {
		w.logger.Warn("remote sign out failed", "err", err)
	}
	w.transition(StatusSignedOut, "")
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (w *Watcher) transition(status Status, owner string) {
	w.mu.Lock()
	if w.status == status && w.owner == owner {
		w.mu.Unlock()
		return
	}
	w.status = status
	w.owner = owner
	subs := make([]func(Event), len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	ev := Event{Status: status, OwnerID: owner}
	for _, fn := range subs {
		fn(ev)
	}
}
