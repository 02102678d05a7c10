package model

import "time"

// Gender values stored in the users table. GenderOther may be replaced
// by free text the user typed themselves.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// BirthdayLayout is the wire format of the birthday date column.
const BirthdayLayout = "2006-01-02"

// UserProfile mirrors a row of the remote "users" table. ID matches the
// authenticated user id. The record is written once by the onboarding
// flow and read on every session change.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Birthday  string    `json:"birthday"`
	Gender    string    `json:"gender"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// BirthdayDate parses the stored birthday.
func (p UserProfile) BirthdayDate() (time.Time, error) {
	return time.Parse(BirthdayLayout, p.Birthday)
}
