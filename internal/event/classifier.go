// Package event maps raw identity-provider event names into the relay's
// internal event taxonomy.
package event

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFederationProvider is returned when a federation-flagged event
// carries no recognizable provider tag. Downstream routing depends on the tag,
// so the event is rejected rather than guessed at.
var ErrUnknownFederationProvider = errors.New("unknown federation provider")

// Kind is the internal event taxonomy. Unrecognized is terminal: the pipeline
// drops the event and no payload is built.
type Kind string

const (
	KindRegistration           Kind = "registration"
	KindUpdate                 Kind = "update"
	KindMerge                  Kind = "merge"
	KindPasswordUpdate         Kind = "password_update"
	KindFederationRegistration Kind = "federation_registration"
	KindUnrecognized           Kind = "unrecognized"
)

// Provider tags the federation protocol a registration was delegated to.
type Provider string

const (
	ProviderOIDC Provider = "oidc"
	ProviderSAML Provider = "saml"
)

// Context carries event metadata that refines classification. Federated is set
// when the provider flags the registration as delegated authentication.
type Context struct {
	Federated bool
	Provider  string
}

// Classification is the classifier's output. Provider is set only for
// KindFederationRegistration.
type Classification struct {
	Kind     Kind
	Provider Provider
}

// kinds is the exact-match dispatch table for known provider event names.
// Unlisted names classify as Unrecognized so forward-compatible provider event
// additions never crash the pipeline.
var kinds = map[string]Kind{
	"accountRegistered":      KindRegistration,
	"accountCreated":         KindUpdate,
	"accountUpdated":         KindUpdate,
	"accountMerged":          KindMerge,
	"accountPasswordUpdated": KindPasswordUpdate,
}

// Classify maps a raw event name into the taxonomy. Deterministic: repeated
// calls with the same input yield the same value. The only failure mode is a
// federation-flagged registration with a missing or unrecognized provider tag.
func Classify(rawEventName string, fctx Context) (Classification, error) {
	kind, ok := kinds[rawEventName]
	if !ok {
		return Classification{Kind: KindUnrecognized}, nil
	}

	if kind == KindRegistration && fctx.Federated {
		provider, err := parseProvider(fctx.Provider)
		if err != nil {
			return Classification{}, err
		}
		return Classification{Kind: KindFederationRegistration, Provider: provider}, nil
	}

	return Classification{Kind: kind}, nil
}

func parseProvider(raw string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(raw))) {
	case ProviderOIDC:
		return ProviderOIDC, nil
	case ProviderSAML:
		return ProviderSAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFederationProvider, raw)
	}
}
