package model

import "testing"

func TestTransactionCentsRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, -450, 123456, -999999999999}
	for _, cents := range values {
		var tx Transaction
		tx.SetCents(cents)
		if got := tx.Cents(); got != cents {
			t.Errorf("round trip %d -> %f -> %d", cents, tx.Amount, got)
		}
	}
}

func TestTransactionCentsAbsorbsWireNoise(t *testing.T) {
	tx := Transaction{Amount: -4.4999999999999996}
	if got := tx.Cents(); got != -450 {
		t.Errorf("Cents() = %d, want -450", got)
	}
}

func TestCurrencyByCode(t *testing.T) {
	c, ok := CurrencyByCode("EUR")
	if !ok || c.Symbol != "€" {
		t.Errorf("EUR lookup = %+v, %v", c, ok)
	}
	if _, ok := CurrencyByCode("ZZZ"); ok {
		t.Error("unknown code should not resolve")
	}
}

func TestBirthdayDate(t *testing.T) {
	p := UserProfile{Birthday: "2000-02-29"}
	d, err := p.BirthdayDate()
	if err != nil {
		t.Fatalf("BirthdayDate: %v", err)
	}
	if d.Year() != 2000 || d.Day() != 29 {
		t.Errorf("parsed %v", d)
	}
	if _, err := (UserProfile{Birthday: "garbage"}).BirthdayDate(); err == nil {
		t.Error("expected parse error")
	}
}
