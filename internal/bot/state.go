package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/alvropena/kakeiboo/internal/money"
	"github.com/alvropena/kakeiboo/internal/repository"
	"github.com/alvropena/kakeiboo/internal/session"
	"github.com/alvropena/kakeiboo/internal/store"
)

// chatState is where a chat currently is in its conversation flow.
type chatState int

const (
	stateIdle chatState = iota
	stateLoginEmail
	stateLoginPassword
	stateSignupEmail
	stateSignupPassword
	stateSignupConfirm
	stateOnboardName
	stateOnboardBirthday
	stateOnboardGender
	stateOnboardCurrency
	stateAmount
	stateDescription
)

// chatApp is one chat's application instance: its own session watcher
// and stores over a repository that carries that chat's auth token, plus
// the conversation bookkeeping.
type chatApp struct {
	watcher      *session.Watcher
	profiles     *store.ProfileStore
	transactions *store.TransactionStore

	state chatState

	// pending auth flow input
	email    string
	password string

	// pending onboarding answers
	name     string
	birthday time.Time
	gender   string

	// keypad entry in progress
	entry        *money.Entry
	keypadMsgID  int
	pendingCents int64

	// re-entrancy guard for remote mutations
	busy bool
}

func newChatApp(identity repository.Identity, tables repository.Store, logger *slog.Logger) *chatApp {
	watcher := session.NewWatcher(identity, logger)
	profiles := store.NewProfileStore(tables, watcher, logger)
	transactions := store.NewTransactionStore(tables, watcher, logger)

	watcher.Subscribe(func(ev session.Event) {
		switch ev.Status {
		case session.StatusSignedIn:
			if err := profiles.Refresh(context.Background()); err != nil {
				logger.Warn("profile refresh on sign-in failed", "err", err)
			}
		case session.StatusSignedOut:
			profiles.Reset()
			transactions.Reset()
		}
	})

	return &chatApp{
		watcher:      watcher,
		profiles:     profiles,
		transactions: transactions,
	}
}

// resetFlow drops any half-finished conversation input.
func (a *chatApp) resetFlow() {
	a.state = stateIdle
	a.email = ""
	a.password = ""
	a.name = ""
	a.birthday = time.Time{}
	a.gender = ""
	a.entry = nil
	a.keypadMsgID = 0
	a.pendingCents = 0
}
