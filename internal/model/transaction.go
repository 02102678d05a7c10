package model

import (
	"math"
	"time"
)

// Transaction mirrors a row of the remote "transactions" table. The sign
// of the amount encodes the kind of entry: negative for an expense,
// positive for income. ID and Date are assigned by the remote store at
// insert time and are never set by the client.
type Transaction struct {
	ID          string    `json:"id,omitempty"`
	OwnerID     string    `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date,omitempty"`
}

// Cents returns the amount as signed integer cents. The remote column is
// decimal dollars; rounding half away from zero absorbs any noise picked
// up on the wire.
func (t Transaction) Cents() int64 {
	return int64(math.Round(t.Amount * 100))
}

// SetCents stores signed integer cents as the wire amount.
func (t *Transaction) SetCents(cents int64) {
	t.Amount = float64(cents) / 100
}
