// Package store holds the client-side state that mirrors the remote
// tables: the owner-scoped transaction list and the single profile row.
// Every remote failure is returned to the caller and leaves the
// in-memory state exactly as it was.
package store

import "errors"

// OwnerSource reports the authenticated owner id. Implemented by
// session.Watcher.
type OwnerSource interface {
	OwnerID() (string, bool)
}

var (
	// ErrNoOwner is returned by mutations that require a signed-in
	// owner.
	ErrNoOwner = errors.New("store: no authenticated owner")
	// ErrInvalidDescription is returned when a description falls
	// outside the 1-60 character rule.
	ErrInvalidDescription = errors.New("store: description must be 1-60 characters")
	// ErrEmptyName rejects onboarding without a display name.
	ErrEmptyName = errors.New("store: name is required")
	// ErrUnderage rejects onboarding below the minimum age.
	ErrUnderage = errors.New("store: must be at least 13 years old")
	// ErrUnknownCurrency rejects currency codes outside the reference
	// list.
	ErrUnknownCurrency = errors.New("store: unknown currency code")
	// ErrInvalidGender rejects an empty gender value.
	ErrInvalidGender = errors.New("store: gender is required")
)
