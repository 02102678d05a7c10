package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alvropena/kakeiboo/internal/model"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuNewEntry),
			tgbotapi.NewKeyboardButton(menuHistory),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuProfile),
			tgbotapi.NewKeyboardButton(menuChart),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuSignOut),
		),
	)
}

func welcomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 Log in", "auth_login"),
			tgbotapi.NewInlineKeyboardButtonData("✨ Sign up", "auth_signup"),
		),
	)
}

// keypadKeyboard lays the digits out like the phone screen: 7-8-9 on
// top, sign/zero/delete at the bottom, then the submit row.
func keypadKeyboard() tgbotapi.InlineKeyboardMarkup {
	digit := func(d string) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(d, "kp_"+d)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(digit("7"), digit("8"), digit("9")),
		tgbotapi.NewInlineKeyboardRow(digit("4"), digit("5"), digit("6")),
		tgbotapi.NewInlineKeyboardRow(digit("1"), digit("2"), digit("3")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("±", "kp_sign"),
			digit("0"),
			tgbotapi.NewInlineKeyboardButtonData("⌫", "kp_del"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("·", "kp_point"),
			tgbotapi.NewInlineKeyboardButtonData("✓ Continue", "kp_ok"),
		),
	)
}

func genderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Male", "gender_"+model.GenderMale),
			tgbotapi.NewInlineKeyboardButtonData("Female", "gender_"+model.GenderFemale),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Other", "gender_"+model.GenderOther),
			tgbotapi.NewInlineKeyboardButtonData("✍️ In my own words", "gender_custom"),
		),
	)
}

// currencyPageSize keeps the currency picker at four rows of codes per
// page.
const currencyPageSize = 12

// currencyKeyboard renders one page of the currency reference list with
// prev/next navigation.
func currencyKeyboard(page int) tgbotapi.InlineKeyboardMarkup {
	total := (len(model.Currencies) + currencyPageSize - 1) / currencyPageSize
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}

	start := page * currencyPageSize
	end := start + currencyPageSize
	if end > len(model.Currencies) {
		end = len(model.Currencies)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range model.Currencies[start:end] {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %s", c.Symbol, c.Code), "cur_"+c.Code))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	nav := []tgbotapi.InlineKeyboardButton{}
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("‹ Prev", fmt.Sprintf("curpage_%d", page-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d/%d", page+1, total), fmt.Sprintf("curpage_%d", page)))
	if page < total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ›", fmt.Sprintf("curpage_%d", page+1)))
	}
	rows = append(rows, nav)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
