package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alvropena/kakeiboo/internal/model"
	"github.com/alvropena/kakeiboo/internal/session"
	"github.com/alvropena/kakeiboo/internal/validate"
)

// contextForUpdate is the request context for remote calls made while
// handling a single update.
func contextForUpdate() context.Context {
	return context.Background()
}

func (b *Bot) showWelcome(app *chatApp, chatID int64) {
	app.state = stateIdle
	msg := tgbotapi.NewMessage(chatID,
		"Welcome to Kakeiboo! 💰\n\n"+
			"Track what you spend and earn, one entry at a time.\n\n"+
			"Log in or create an account to get started.")
	msg.ReplyMarkup = welcomeKeyboard()
	b.send(msg)
}

func (b *Bot) startLogin(app *chatApp, chatID int64) {
	app.resetFlow()
	app.state = stateLoginEmail
	b.send(tgbotapi.NewMessage(chatID, "What's your email?"))
}

func (b *Bot) startSignup(app *chatApp, chatID int64) {
	app.resetFlow()
	app.state = stateSignupEmail
	b.send(tgbotapi.NewMessage(chatID, "Let's create your account. What's your email?"))
}

// handleFlowMessage advances whatever conversation the chat is in with
// the user's free-text reply.
func (b *Bot) handleFlowMessage(app *chatApp, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	text := message.Text

	switch app.state {
	case stateLoginEmail, stateSignupEmail:
		if !validate.ValidEmail(text) {
			b.send(tgbotapi.NewMessage(chatID, "That doesn't look like an email address. Try again:"))
			return nil
		}
		app.email = text
		if app.state == stateLoginEmail {
			app.state = stateLoginPassword
			b.send(tgbotapi.NewMessage(chatID, "And your password?"))
		} else {
			app.state = stateSignupPassword
			b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Pick a password (at least %d characters):", validate.MinPasswordLen)))
		}

	case stateLoginPassword:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "Password can't be empty. Try again:"))
			return nil
		}
		b.finishLogin(app, chatID, app.email, text)

	case stateSignupPassword:
		if !validate.ValidPassword(text) {
			b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Too short. Use at least %d characters:", validate.MinPasswordLen)))
			return nil
		}
		app.password = text
		app.state = stateSignupConfirm
		b.send(tgbotapi.NewMessage(chatID, "Type it once more to confirm:"))

	case stateSignupConfirm:
		if text != app.password {
			app.state = stateSignupPassword
			b.send(tgbotapi.NewMessage(chatID, "Those didn't match. Pick a password:"))
			return nil
		}
		b.finishSignup(app, chatID, app.email, app.password)

	case stateOnboardName:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "What should we call you?"))
			return nil
		}
		app.name = text
		app.state = stateOnboardBirthday
		b.send(tgbotapi.NewMessage(chatID, "When's your birthday? (YYYY-MM-DD)"))

	case stateOnboardBirthday:
		birthday, err := time.Parse(model.BirthdayLayout, text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Please use YYYY-MM-DD, e.g. 2000-01-31:"))
			return nil
		}
		if !validate.IsAtLeastAge(birthday, validate.MinAgeYears, time.Now()) {
			b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("You must be at least %d years old to use Kakeiboo.", validate.MinAgeYears)))
			return nil
		}
		app.birthday = birthday
		app.state = stateOnboardGender
		msg := tgbotapi.NewMessage(chatID, "How do you identify?")
		msg.ReplyMarkup = genderKeyboard()
		b.send(msg)

	case stateOnboardGender:
		// Free text here is the self-described option.
		if text == "" {
			return nil
		}
		b.askCurrency(app, chatID, text)

	case stateDescription:
		b.finishEntry(app, chatID, text)

	default:
		if app.watcher.Status() == session.StatusSignedIn {
			b.routeHome(app, chatID)
		} else {
			b.showWelcome(app, chatID)
		}
	}
	return nil
}

func (b *Bot) finishLogin(app *chatApp, chatID int64, email, password string) {
	if err := app.watcher.SignIn(contextForUpdate(), email, password); err != nil {
		b.logger.Warn("sign in failed", "err", err)
		b.sendErrorMessage(chatID, "Could not sign in. Check your email and password, then /start again.")
		app.resetFlow()
		return
	}
	app.resetFlow()
	b.routeHome(app, chatID)
}

func (b *Bot) finishSignup(app *chatApp, chatID int64, email, password string) {
	ctx := contextForUpdate()
	if err := app.watcher.SignUp(ctx, email, password); err != nil {
		b.logger.Warn("sign up failed", "err", err)
		b.sendErrorMessage(chatID, "Could not create the account. Try /start again.")
		app.resetFlow()
		return
	}
	if err := app.watcher.SignIn(ctx, email, password); err != nil {
		// Most likely the project requires email confirmation first.
		b.send(tgbotapi.NewMessage(chatID, "Account created! Confirm your email, then log in."))
		app.resetFlow()
		b.showWelcome(app, chatID)
		return
	}
	app.resetFlow()
	b.routeHome(app, chatID)
}

func (b *Bot) startOnboarding(app *chatApp, chatID int64) {
	app.resetFlow()
	app.state = stateOnboardName
	b.send(tgbotapi.NewMessage(chatID, "Let's set up your profile. What's your name?"))
}

func (b *Bot) handleGenderPick(app *chatApp, chatID int64, pick string) {
	if app.state != stateOnboardGender {
		return
	}
	switch pick {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
		b.askCurrency(app, chatID, pick)
	case "custom":
		b.send(tgbotapi.NewMessage(chatID, "Type how you identify:"))
	}
}

func (b *Bot) askCurrency(app *chatApp, chatID int64, gender string) {
	app.gender = gender
	app.state = stateOnboardCurrency
	msg := tgbotapi.NewMessage(chatID, "Which currency do you use?")
	msg.ReplyMarkup = currencyKeyboard(0)
	b.send(msg)
}

func (b *Bot) handleCurrencyPage(app *chatApp, callback *tgbotapi.CallbackQuery, pageText string) {
	if app.state != stateOnboardCurrency {
		return
	}
	page, err := strconv.Atoi(pageText)
	if err != nil {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(
		callback.Message.Chat.ID, callback.Message.MessageID, currencyKeyboard(page))
	b.send(edit)
}

func (b *Bot) handleCurrencyPick(app *chatApp, chatID int64, code string) {
	if app.state != stateOnboardCurrency {
		return
	}
	profile, err := app.profiles.FinalizeOnboarding(
		contextForUpdate(), app.name, app.birthday, app.gender, code)
	if err != nil {
		b.logger.Warn("finalize onboarding failed", "err", err)
		b.sendErrorMessage(chatID, "Couldn't save your profile. Pick your currency again.")
		return
	}
	app.resetFlow()
	b.showMainMenu(app, chatID, fmt.Sprintf("You're all set, %s! What did you spend or earn?", profile.Name))
}
