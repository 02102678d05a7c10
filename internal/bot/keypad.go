package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alvropena/kakeiboo/internal/money"
	"github.com/alvropena/kakeiboo/internal/session"
	"github.com/alvropena/kakeiboo/internal/validate"
)

// startAmountEntry opens the keypad: a message showing the running
// display value with digit buttons underneath.
func (b *Bot) startAmountEntry(app *chatApp, chatID int64) {
	if app.watcher.Status() != session.StatusSignedIn {
		b.showWelcome(app, chatID)
		return
	}

	app.resetFlow()
	app.state = stateAmount
	app.entry = money.NewEntry(app.profiles.CurrencySymbol())

	msg := tgbotapi.NewMessage(chatID, app.entry.Display())
	msg.ReplyMarkup = keypadKeyboard()
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Warn("keypad send failed", "err", err)
		return
	}
	app.keypadMsgID = sent.MessageID
}

// handleKeypadPress applies one key and refreshes the display. The
// returned string becomes the callback toast, empty for none.
func (b *Bot) handleKeypadPress(app *chatApp, chatID int64, key string) string {
	if app.state != stateAmount || app.entry == nil {
		return ""
	}

	if key == "ok" {
		// The zero seed is not a submittable amount.
		if app.entry.Zero() {
			return "Enter an amount first"
		}
		app.pendingCents = app.entry.Cents()
		app.state = stateDescription
		edit := tgbotapi.NewEditMessageText(chatID, app.keypadMsgID, app.entry.Display())
		b.send(edit)
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"What was it for? (up to %d characters)", validate.MaxDescriptionLen)))
		return ""
	}

	before := app.entry.Display()
	applyKeypadKey(app.entry, key)
	after := app.entry.Display()
	if after == before {
		// Editing with identical text would make the API complain.
		return ""
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, app.keypadMsgID, after, keypadKeyboard())
	b.send(edit)
	return ""
}

// applyKeypadKey mutates the entry for a single keypad key. Unknown
// keys are ignored.
func applyKeypadKey(e *money.Entry, key string) {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		e.AppendDigit(int(key[0] - '0'))
	case "point":
		e.AppendPoint()
	case "sign":
		e.ToggleSign()
	case "del":
		e.DeleteDigit()
	}
}

// finishEntry submits the pending amount with the given description.
func (b *Bot) finishEntry(app *chatApp, chatID int64, description string) {
	if !validate.ValidDescription(description) {
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"Keep it between 1 and %d characters:", validate.MaxDescriptionLen)))
		return
	}
	if app.busy {
		b.send(tgbotapi.NewMessage(chatID, "Still saving the last one, give it a second..."))
		return
	}

	app.busy = true
	created, err := app.transactions.Add(contextForUpdate(), description, app.pendingCents)
	app.busy = false
	if err != nil {
		b.sendErrorMessage(chatID, "Couldn't save that. Send the description again to retry.")
		return
	}

	symbol := app.profiles.CurrencySymbol()
	app.resetFlow()
	b.showMainMenu(app, chatID, fmt.Sprintf(
		"Saved ✅\n%s  %s", money.FormatCents(created.Cents(), symbol), created.Description))
}
