package models

import "log/slog"

// Type discriminators are fixed at construction from this table and never
// recomputed. Downstream subscribers dispatch on the value, so it must stay
// wire-compatible with the provider's event names.
const (
	TypeRegistration   = "accountRegistered"
	TypeUpdate         = "accountUpdated"
	TypeMerge          = "accountMerged"
	TypePasswordUpdate = "accountPasswordUpdated"
)

// Payload is the tagged union handed to the publisher. Each variant is a
// JSON-serializable record carrying its immutable type discriminator.
type Payload interface {
	// PayloadType returns the fixed discriminator set at construction.
	PayloadType() string
	// AccountUID returns the subject account, used as the partition key.
	AccountUID() string
}

// ProfilePayload projects identity and profile fields for registration and
// update notifications. It carries no credential.
type ProfilePayload struct {
	Type             string `json:"type"`
	UID              string `json:"uid"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	LegacyUsername   string `json:"legacyUsername,omitempty"`
	PreviousEmail    string `json:"previousEmail,omitempty"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Company          string `json:"company"`
	City             string `json:"city"`
	Country          string `json:"country"`
	MarketingConsent bool   `json:"marketingConsent"`
	Member           string `json:"member,omitempty"`
	// Provider is set only for federated registrations (oidc or saml).
	Provider string `json:"provider,omitempty"`
}

func (p ProfilePayload) PayloadType() string { return p.Type }
func (p ProfilePayload) AccountUID() string  { return p.UID }

// MergePayload projects identity, profile, and the account's password value.
// The downstream merge consumer needs the credential to re-authenticate the
// merged identity. In-transit only: never persisted to disk or logs in
// plaintext.
type MergePayload struct {
	Type             string `json:"type"`
	UID              string `json:"uid"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	LegacyUsername   string `json:"legacyUsername,omitempty"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Company          string `json:"company"`
	City             string `json:"city"`
	Country          string `json:"country"`
	MarketingConsent bool   `json:"marketingConsent"`
	Password         string `json:"password"`
}

func (p MergePayload) PayloadType() string { return p.Type }
func (p MergePayload) AccountUID() string  { return p.UID }

// LogValue keeps the credential out of structured logs.
func (p MergePayload) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", p.Type),
		slog.String("uid", p.UID),
		slog.String("password", "[REDACTED]"),
	)
}

// PasswordUpdatePayload is the minimal payload for the single downstream
// consumer that performs the credential update.
type PasswordUpdatePayload struct {
	Type        string `json:"type"`
	UID         string `json:"uid"`
	NewPassword string `json:"newPassword"`
}

func (p PasswordUpdatePayload) PayloadType() string { return p.Type }
func (p PasswordUpdatePayload) AccountUID() string  { return p.UID }

// LogValue keeps the credential out of structured logs.
func (p PasswordUpdatePayload) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", p.Type),
		slog.String("uid", p.UID),
		slog.String("newPassword", "[REDACTED]"),
	)
}
