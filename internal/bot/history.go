package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alvropena/kakeiboo/internal/model"
	"github.com/alvropena/kakeiboo/internal/money"
	"github.com/alvropena/kakeiboo/internal/session"
)

// historyLimit caps how many rows get delete buttons; Telegram keyboards
// get unwieldy beyond this.
const historyLimit = 10

func (b *Bot) showHistory(app *chatApp, chatID int64) {
	if app.watcher.Status() != session.StatusSignedIn {
		b.showWelcome(app, chatID)
		return
	}

	if err := app.transactions.FetchAll(contextForUpdate()); err != nil {
		b.sendErrorMessage(chatID, "Couldn't load your history. Try again in a moment.")
		return
	}

	list := app.transactions.List()
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Nothing new here. Add your expenses now!"))
		return
	}

	text, markup := historyView(list, app.profiles.CurrencySymbol())
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	b.send(msg)
}

// historyView renders the newest rows as text plus a delete button per
// row and a clear-all action.
func historyView(list []model.Transaction, symbol string) (string, tgbotapi.InlineKeyboardMarkup) {
	shown := list
	if len(shown) > historyLimit {
		shown = shown[:historyLimit]
	}

	var text strings.Builder
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, t := range shown {
		fmt.Fprintf(&text, "%d. %s  %s\n    %s\n",
			i+1,
			money.FormatCents(t.Cents(), symbol),
			t.Description,
			t.Date.Format("Jan 2, 2006 3:04 PM"))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 %d", i+1), "del_"+t.ID),
		))
	}
	if len(list) > historyLimit {
		fmt.Fprintf(&text, "…and %d more\n", len(list)-historyLimit)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🧹 Clear all", "clear_all"),
	))
	return text.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) handleDelete(app *chatApp, callback *tgbotapi.CallbackQuery, id string) string {
	if app.watcher.Status() != session.StatusSignedIn {
		return ""
	}
	if app.busy {
		return "Still working..."
	}

	app.busy = true
	err := app.transactions.Delete(contextForUpdate(), id)
	app.busy = false
	if err != nil {
		return "Delete failed, try again"
	}

	b.refreshHistoryMessage(app, callback)
	return "Deleted"
}

func (b *Bot) askClearConfirm(callback *tgbotapi.CallbackQuery) {
	edit := tgbotapi.NewEditMessageReplyMarkup(
		callback.Message.Chat.ID, callback.Message.MessageID,
		tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Yes, delete everything", "clear_yes"),
				tgbotapi.NewInlineKeyboardButtonData("Keep it", "clear_no"),
			),
		))
	b.send(edit)
}

func (b *Bot) handleClear(app *chatApp, callback *tgbotapi.CallbackQuery) string {
	if app.watcher.Status() != session.StatusSignedIn {
		return ""
	}
	if app.busy {
		return "Still working..."
	}

	app.busy = true
	err := app.transactions.Clear(contextForUpdate())
	app.busy = false
	if err != nil {
		return "Clear failed, try again"
	}

	edit := tgbotapi.NewEditMessageText(
		callback.Message.Chat.ID, callback.Message.MessageID,
		"History cleared.")
	b.send(edit)
	return ""
}

// refreshHistoryMessage re-renders the history message in place after a
// mutation.
func (b *Bot) refreshHistoryMessage(app *chatApp, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	list := app.transactions.List()
	if len(list) == 0 {
		edit := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID,
			"Nothing new here. Add your expenses now!")
		b.send(edit)
		return
	}
	text, markup := historyView(list, app.profiles.CurrencySymbol())
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID, text, markup)
	b.send(edit)
}

func (b *Bot) showProfile(app *chatApp, chatID int64) {
	if app.watcher.Status() != session.StatusSignedIn {
		b.showWelcome(app, chatID)
		return
	}

	profile, ok := app.profiles.Current()
	if !ok {
		b.startOnboarding(app, chatID)
		return
	}

	birthday := profile.Birthday
	if d, err := profile.BirthdayDate(); err == nil {
		birthday = d.Format("January 2, 2006")
	}
	text := fmt.Sprintf(
		"👤 %s\n\nBirthday: %s\nGender: %s\nCurrency: %s",
		profile.Name, birthday, profile.Gender, profile.Currency)
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) showChart(app *chatApp, chatID int64) {
	if app.watcher.Status() != session.StatusSignedIn {
		b.showWelcome(app, chatID)
		return
	}

	if err := app.transactions.FetchAll(contextForUpdate()); err != nil {
		b.sendErrorMessage(chatID, "Couldn't load your history. Try again in a moment.")
		return
	}

	png, err := b.charts.BalanceHistory(app.transactions.List(), app.profiles.CurrencySymbol())
	if err != nil {
		b.logger.Warn("chart render failed", "err", err)
		b.sendErrorMessage(chatID, "Couldn't draw the chart.")
		return
	}
	if png == nil {
		b.send(tgbotapi.NewMessage(chatID, "Not enough history to draw a chart yet."))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "balance.png", Bytes: png})
	photo.Caption = "Your running balance"
	b.send(photo)
}
