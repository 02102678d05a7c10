// Package money implements the keypad amount entry engine and currency
// display formatting. All arithmetic is integer cents; floating point
// appears only at the wire boundary of the repository.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when a display string does not contain a
// parseable amount.
var ErrInvalidAmount = errors.New("money: invalid amount")

// Entry is the state behind the amount keypad: an unsigned cents value
// plus a sign flag. Digits shift in from the right, so typing 4 5 0
// reads as $4.50.
type Entry struct {
	cents    int64
	positive bool
	symbol   string
}

// NewEntry seeds the expense-first default: zero cents with a negative
// sign, displayed as "-$0.00". An empty symbol falls back to "$".
func NewEntry(symbol string) *Entry {
	if symbol == "" {
		symbol = "$"
	}
	return &Entry{symbol: symbol}
}

// AppendDigit shifts d into the lowest cents position. Digits outside
// 0-9 and digits that would overflow int64 are ignored.
func (e *Entry) AppendDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	if e.cents > (math.MaxInt64-int64(d))/10 {
		return
	}
	e.cents = e.cents*10 + int64(d)
}

// AppendPoint is a no-op: amounts are tracked as integer cents, so the
// decimal point carries no information. The keypad still exposes the key
// for familiarity.
func (e *Entry) AppendPoint() {}

// DeleteDigit drops the lowest digit. Deleting at zero stays at zero.
func (e *Entry) DeleteDigit() {
	e.cents /= 10
}

// ToggleSign flips between expense and income without touching the
// magnitude.
func (e *Entry) ToggleSign() {
	e.positive = !e.positive
}

// Zero reports whether no amount has been entered yet. The submit
// control stays disabled while it holds.
func (e *Entry) Zero() bool {
	return e.cents == 0
}

// Cents returns the signed amount.
func (e *Entry) Cents() int64 {
	if e.positive {
		return e.cents
	}
	return -e.cents
}

// Display renders the current state, e.g. "-$1,234.56". Unlike
// FormatCents it keeps the toggled sign even at zero, so a positive
// zero shows as "+$0.00".
func (e *Entry) Display() string {
	sign := "-"
	if e.positive {
		sign = "+"
	}
	return render(sign, e.cents, e.symbol)
}

// FormatCents renders signed cents as a currency string with thousands
// separators and exactly two fraction digits. Zero renders with a minus,
// matching the keypad seed.
func FormatCents(cents int64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	sign := "-"
	abs := cents
	if cents > 0 {
		sign = "+"
	} else {
		abs = -abs
	}
	return render(sign, abs, symbol)
}

func render(sign string, absCents int64, symbol string) string {
	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(symbol)
	b.WriteString(group(absCents / 100))
	b.WriteByte('.')
	frac := absCents % 100
	b.WriteByte(byte('0' + frac/10))
	b.WriteByte(byte('0' + frac%10))
	return b.String()
}

// group inserts comma thousands separators into a non-negative integer.
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseDisplay strips currency symbols and separators from a display
// string and parses what remains into signed cents. A third fractional
// digit rounds half up; anything that is not a single decimal number
// after stripping fails with ErrInvalidAmount.
func ParseDisplay(s string) (int64, error) {
	negative := false
	var cleaned strings.Builder
	seenSign := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			cleaned.WriteRune(r)
			seenSign = true
		case (r == '-' || r == '+') && !seenSign:
			negative = r == '-'
			seenSign = true
		}
	}

	parts := strings.Split(cleaned.String(), ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxWhole = math.MaxInt64 / 100
	if whole > maxWhole {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	cents := whole*100 + frac
	if negative {
		cents = -cents
	}
	return cents, nil
}
