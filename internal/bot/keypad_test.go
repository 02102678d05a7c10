package bot

import (
	"strings"
	"testing"

	"github.com/alvropena/kakeiboo/internal/money"
)

func TestApplyKeypadKeySequence(t *testing.T) {
	e := money.NewEntry("$")
	for _, key := range []string{"4", "5", "point", "0", "sign"} {
		applyKeypadKey(e, key)
	}
	if got := e.Display(); got != "+$4.50" {
		t.Errorf("display = %q, want +$4.50", got)
	}

	applyKeypadKey(e, "del")
	if got := e.Display(); got != "+$0.45" {
		t.Errorf("after delete: %q, want +$0.45", got)
	}
}

func TestApplyKeypadKeyIgnoresUnknown(t *testing.T) {
	e := money.NewEntry("$")
	applyKeypadKey(e, "5")
	before := e.Display()
	applyKeypadKey(e, "bogus")
	if got := e.Display(); got != before {
		t.Errorf("unknown key changed display: %q != %q", got, before)
	}
}

func TestCurrencyKeyboardPaging(t *testing.T) {
	first := currencyKeyboard(0)
	if len(first.InlineKeyboard) == 0 {
		t.Fatal("empty keyboard")
	}

	// Out-of-range pages clamp instead of panicking.
	low := currencyKeyboard(-5)
	high := currencyKeyboard(999)
	if len(low.InlineKeyboard) == 0 || len(high.InlineKeyboard) == 0 {
		t.Error("clamped pages should still render")
	}

	// Every code button must carry the cur_ prefix the callback router
	// expects.
	for _, row := range first.InlineKeyboard[:len(first.InlineKeyboard)-1] {
		for _, btn := range row {
			if btn.CallbackData == nil || !strings.HasPrefix(*btn.CallbackData, "cur_") {
				t.Fatalf("unexpected callback data in currency row: %v", btn.CallbackData)
			}
		}
	}
}

func TestHistoryViewLimitsButtons(t *testing.T) {
	list := historyTestTransactions(15)

	text, markup := historyView(list, "$")

	if !strings.Contains(text, "and 5 more") {
		t.Errorf("overflow note missing from:\n%s", text)
	}
	// One delete row per shown transaction plus the clear-all row.
	if got := len(markup.InlineKeyboard); got != historyLimit+1 {
		t.Errorf("keyboard rows = %d, want %d", got, historyLimit+1)
	}
}
