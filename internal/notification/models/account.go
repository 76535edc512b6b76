// Package models holds the canonical account record and the notification
// payload variants built from it. These are pure data structures; builders and
// the pipeline live in the parent packages.
package models

// AccountType classifies the account tier known to the identity provider.
type AccountType string

const (
	AccountTypeFull AccountType = "full"
	AccountTypeLite AccountType = "lite"
)

// AccountRecord is the canonical representation of a user account as supplied
// by the identity provider per event. UID is immutable once assigned and
// uniquely identifies the record for the lifetime of the account. The record
// is never cached or mutated by the relay; every payload construction is a
// pure read.
//
// Password is plaintext only in-transit during merge and password-update
// operations and is never persisted by this core.
type AccountRecord struct {
	UID              string      `json:"uid"`
	Email            string      `json:"email"`
	Username         string      `json:"username"`
	LegacyUsername   string      `json:"legacyUsername,omitempty"`
	PreviousEmail    string      `json:"previousEmail,omitempty"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Company          string      `json:"company"`
	City             string      `json:"city"`
	Country          string      `json:"country"`
	MarketingConsent *bool       `json:"marketingConsent,omitempty"`
	Password         string      `json:"password,omitempty"`
	Member           string      `json:"member,omitempty"`
	AccountType      AccountType `json:"accountType,omitempty"`
}

// ConsentOrDefault projects the marketing-consent flag, defaulting to false
// when the provider omitted it.
func (r AccountRecord) ConsentOrDefault() bool {
	return r.MarketingConsent != nil && *r.MarketingConsent
}
