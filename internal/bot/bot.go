// Package bot is the Telegram front end: it maps the keypad, onboarding
// and history screens of the app onto chat messages and inline
// keyboards. Each chat gets its own session and stores, so two users
// never share state.
package bot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alvropena/kakeiboo/internal/charts"
	"github.com/alvropena/kakeiboo/internal/config"
	"github.com/alvropena/kakeiboo/internal/repository"
	"github.com/alvropena/kakeiboo/internal/session"
)

const (
	menuNewEntry = "➕ New entry"
	menuHistory  = "🕓 History"
	menuProfile  = "👤 Profile"
	menuChart    = "📈 Chart"
	menuSignOut  = "🚪 Sign out"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    *config.Config
	logger *slog.Logger
	charts *charts.Generator

	mu   sync.Mutex
	apps map[int64]*chatApp
}

func NewBot(cfg *config.Config, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	return &Bot{
		api:    api,
		cfg:    cfg,
		logger: logger.With("component", "bot"),
		charts: charts.NewGenerator(),
		apps:   make(map[int64]*chatApp),
	}, nil
}

// Start runs the long-polling loop. Update handling errors are logged
// and polling continues.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			b.logger.Error("handling update failed", "err", err)
		}
	}

	return nil
}

// HandleWebhook processes a single webhook-delivered update.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to parse update: %w", err)
	}
	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	return b.handleMessage(update.Message)
}

// app returns the chat's application instance, creating it on first
// contact. Every chat gets its own Supabase client so session tokens
// stay isolated.
func (b *Bot) app(chatID int64) (*chatApp, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a, ok := b.apps[chatID]; ok {
		return a, nil
	}

	repo, err := repository.NewSupabaseRepository(b.cfg.SupabaseURL, b.cfg.SupabaseAnonKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}
	a := newChatApp(repo, repo, b.logger)
	b.apps[chatID] = a
	return a, nil
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	app, err := b.app(message.Chat.ID)
	if err != nil {
		return err
	}

	switch message.Command() {
	case "start":
		if app.watcher.Status() == session.StatusUnknown {
			app.watcher.Start(contextForUpdate())
		}
		b.routeHome(app, message.Chat.ID)
	case "new":
		b.startAmountEntry(app, message.Chat.ID)
	case "history":
		b.showHistory(app, message.Chat.ID)
	case "profile":
		b.showProfile(app, message.Chat.ID)
	case "chart":
		b.showChart(app, message.Chat.ID)
	case "logout":
		b.signOut(app, message.Chat.ID)
	}
	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	app, err := b.app(message.Chat.ID)
	if err != nil {
		return err
	}

	switch message.Text {
	case menuNewEntry:
		b.startAmountEntry(app, message.Chat.ID)
		return nil
	case menuHistory:
		b.showHistory(app, message.Chat.ID)
		return nil
	case menuProfile:
		b.showProfile(app, message.Chat.ID)
		return nil
	case menuChart:
		b.showChart(app, message.Chat.ID)
		return nil
	case menuSignOut:
		b.signOut(app, message.Chat.ID)
		return nil
	}

	return b.handleFlowMessage(app, message)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	if callback.Message == nil {
		return nil
	}
	chatID := callback.Message.Chat.ID
	app, err := b.app(chatID)
	if err != nil {
		return err
	}

	notice := ""
	data := callback.Data
	switch {
	case data == "auth_login":
		b.startLogin(app, chatID)
	case data == "auth_signup":
		b.startSignup(app, chatID)
	case strings.HasPrefix(data, "kp_"):
		notice = b.handleKeypadPress(app, chatID, strings.TrimPrefix(data, "kp_"))
	case strings.HasPrefix(data, "gender_"):
		b.handleGenderPick(app, chatID, strings.TrimPrefix(data, "gender_"))
	case strings.HasPrefix(data, "curpage_"):
		b.handleCurrencyPage(app, callback, strings.TrimPrefix(data, "curpage_"))
	case strings.HasPrefix(data, "cur_"):
		b.handleCurrencyPick(app, chatID, strings.TrimPrefix(data, "cur_"))
	case strings.HasPrefix(data, "del_"):
		notice = b.handleDelete(app, callback, strings.TrimPrefix(data, "del_"))
	case data == "clear_all":
		b.askClearConfirm(callback)
	case data == "clear_yes":
		notice = b.handleClear(app, callback)
	case data == "clear_no":
		b.refreshHistoryMessage(app, callback)
	}

	// Answering stops the client's loading spinner; notice shows as a
	// toast when set.
	response := tgbotapi.NewCallback(callback.ID, notice)
	if _, err := b.api.Request(response); err != nil {
		b.logger.Warn("callback answer failed", "err", err)
	}
	return nil
}

// routeHome sends whatever the chat should see for its session state.
func (b *Bot) routeHome(app *chatApp, chatID int64) {
	switch app.watcher.Status() {
	case session.StatusUnknown:
		// Nothing renders until the state is known.
	case session.StatusSignedOut:
		b.showWelcome(app, chatID)
	case session.StatusSignedIn:
		if _, ok := app.profiles.Current(); !ok {
			b.startOnboarding(app, chatID)
			return
		}
		b.showMainMenu(app, chatID, "What did you spend or earn?")
	}
}

func (b *Bot) showMainMenu(app *chatApp, chatID int64, text string) {
	app.state = stateIdle
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainKeyboard()
	b.send(msg)
}

func (b *Bot) signOut(app *chatApp, chatID int64) {
	if err := app.watcher.SignOut(contextForUpdate()); err != nil {
		b.logger.Warn("sign out failed", "err", err)
	}
	app.resetFlow()
	msg := tgbotapi.NewMessage(chatID, "Signed out. See you soon!")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	b.send(msg)
	b.showWelcome(app, chatID)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, "❌ "+text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("send failed", "err", err)
	}
}
