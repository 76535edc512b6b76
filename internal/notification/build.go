// Package notification builds typed notification payloads from canonical
// account records. Builders are pure: they read only their arguments, apply
// explicit defaults, and fix the type discriminator at construction.
package notification

import (
	"errors"
	"fmt"

	"idrelay/internal/event"
	"idrelay/internal/notification/models"
)

// ErrMissingCredential is returned when a merge or password-update payload is
// requested from a record without a password. Merge consumers rely on a
// non-empty credential to complete re-authentication, so the precondition
// violation is reported rather than silently building an empty string.
var ErrMissingCredential = errors.New("missing credential")

// Build dispatches to the builder matching the classification. Unrecognized
// classifications have no payload; callers drop the event before reaching
// here.
func Build(class event.Classification, record models.AccountRecord) (models.Payload, error) {
	switch class.Kind {
	case event.KindRegistration:
		return BuildRegistration(record), nil
	case event.KindFederationRegistration:
		return BuildFederatedRegistration(record, class.Provider), nil
	case event.KindUpdate:
		return BuildUpdate(record), nil
	case event.KindMerge:
		return BuildMerge(record)
	case event.KindPasswordUpdate:
		return BuildPasswordUpdate(record)
	default:
		return nil, fmt.Errorf("no payload for classification %q", class.Kind)
	}
}

// BuildRegistration projects identity and profile fields for a new account.
func BuildRegistration(record models.AccountRecord) models.ProfilePayload {
	p := profileProjection(record)
	p.Type = models.TypeRegistration
	return p
}

// BuildFederatedRegistration is BuildRegistration plus the federation provider
// sub-tag downstream routing depends on.
func BuildFederatedRegistration(record models.AccountRecord, provider event.Provider) models.ProfilePayload {
	p := BuildRegistration(record)
	p.Provider = string(provider)
	return p
}

// BuildUpdate projects identity and profile fields for a changed account.
// PreviousEmail is set only during an email change and projects as absent
// otherwise.
func BuildUpdate(record models.AccountRecord) models.ProfilePayload {
	p := profileProjection(record)
	p.Type = models.TypeUpdate
	return p
}

// BuildMerge projects identity, profile, and the in-transit password.
func BuildMerge(record models.AccountRecord) (models.MergePayload, error) {
	if record.Password == "" {
		return models.MergePayload{}, fmt.Errorf("%w: merge for uid %s", ErrMissingCredential, record.UID)
	}
	return models.MergePayload{
		Type:             models.TypeMerge,
		UID:              record.UID,
		Email:            record.Email,
		Username:         record.Username,
		LegacyUsername:   record.LegacyUsername,
		FirstName:        record.FirstName,
		LastName:         record.LastName,
		Company:          record.Company,
		City:             record.City,
		Country:          record.Country,
		MarketingConsent: record.ConsentOrDefault(),
		Password:         record.Password,
	}, nil
}

// BuildPasswordUpdate projects the minimal {uid, newPassword} payload.
func BuildPasswordUpdate(record models.AccountRecord) (models.PasswordUpdatePayload, error) {
	if record.Password == "" {
		return models.PasswordUpdatePayload{}, fmt.Errorf("%w: password update for uid %s", ErrMissingCredential, record.UID)
	}
	return models.PasswordUpdatePayload{
		Type:        models.TypePasswordUpdate,
		UID:         record.UID,
		NewPassword: record.Password,
	}, nil
}

func profileProjection(record models.AccountRecord) models.ProfilePayload {
	return models.ProfilePayload{
		UID:              record.UID,
		Email:            record.Email,
		Username:         record.Username,
		LegacyUsername:   record.LegacyUsername,
		PreviousEmail:    record.PreviousEmail,
		FirstName:        record.FirstName,
		LastName:         record.LastName,
		Company:          record.Company,
		City:             record.City,
		Country:          record.Country,
		MarketingConsent: record.ConsentOrDefault(),
		Member:           record.Member,
	}
}
