package bot

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alvropena/kakeiboo/internal/model"
)

func historyTestTransactions(n int) []model.Transaction {
	out := make([]model.Transaction, n)
	for i := range out {
		t := model.Transaction{
			ID:          fmt.Sprintf("id-%d", i),
			OwnerID:     "owner",
			Description: fmt.Sprintf("Entry %d", i),
			Date:        time.Date(2026, time.March, 30-i, 12, 0, 0, 0, time.UTC),
		}
		t.SetCents(int64(-100 * (i + 1)))
		out[i] = t
	}
	return out
}

func TestHistoryViewRendersRows(t *testing.T) {
	list := historyTestTransactions(2)
	list[0].Description = "Coffee"
	list[0].SetCents(-450)

	text, markup := historyView(list, "$")

	if !strings.Contains(text, "-$4.50") || !strings.Contains(text, "Coffee") {
		t.Errorf("row missing from:\n%s", text)
	}
	if !strings.Contains(text, "Mar 30, 2026") {
		t.Errorf("date missing from:\n%s", text)
	}

	// Delete buttons carry the row ids; the last row is clear-all.
	rows := markup.InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("keyboard rows = %d, want 3", len(rows))
	}
	if data := rows[0][0].CallbackData; data == nil || *data != "del_id-0" {
		t.Errorf("first delete button = %v, want del_id-0", data)
	}
	if data := rows[2][0].CallbackData; data == nil || *data != "clear_all" {
		t.Errorf("last row = %v, want clear_all", data)
	}
}
