package datacenter

import (
	"errors"
	"fmt"
)

// ErrUnknownSecretPair is returned when a (data center, category) pair is not
// registered. It indicates a caller or configuration bug and should be logged
// loudly by callers, never papered over with a fallback name.
var ErrUnknownSecretPair = errors.New("unknown secret pair")

// SecretCategory identifies which logical secret to resolve for a data center.
type SecretCategory string

const (
	// SecretSigning is the primary key used to verify inbound event signatures.
	SecretSigning SecretCategory = "signing"
	// SecretSecondarySigning is the signing key of the region's failover peer.
	SecretSecondarySigning SecretCategory = "secondary-signing"
	// SecretRecaptchaV2 and SecretRecaptchaV3 back the registration challenge flows.
	SecretRecaptchaV2 SecretCategory = "recaptcha-v2"
	SecretRecaptchaV3 SecretCategory = "recaptcha-v3"
	// SecretReporting is the reduced-privilege key used by reporting jobs.
	SecretReporting SecretCategory = "reporting"
)

// Categories lists every registered secret category.
func Categories() []SecretCategory {
	return []SecretCategory{
		SecretSigning,
		SecretSecondarySigning,
		SecretRecaptchaV2,
		SecretRecaptchaV3,
		SecretReporting,
	}
}

// secretNames maps each registered (data center, category) pair to the logical
// name resolved against the external secret store. The table is total over
// All() x Categories(); it never performs I/O.
var secretNames = map[DataCenter]map[SecretCategory]string{
	US: {
		SecretSigning:          "idp/us/signing-key",
		SecretSecondarySigning: "idp/eu/signing-key",
		SecretRecaptchaV2:      "idp/us/recaptcha-v2",
		SecretRecaptchaV3:      "idp/us/recaptcha-v3",
		SecretReporting:        "idp/us/reporting-key",
	},
	EU: {
		SecretSigning:          "idp/eu/signing-key",
		SecretSecondarySigning: "idp/us/signing-key",
		SecretRecaptchaV2:      "idp/eu/recaptcha-v2",
		SecretRecaptchaV3:      "idp/eu/recaptcha-v3",
		SecretReporting:        "idp/eu/reporting-key",
	},
	AU: {
		SecretSigning:          "idp/au/signing-key",
		SecretSecondarySigning: "idp/us/signing-key",
		SecretRecaptchaV2:      "idp/au/recaptcha-v2",
		SecretRecaptchaV3:      "idp/au/recaptcha-v3",
		SecretReporting:        "idp/au/reporting-key",
	},
	CN: {
		SecretSigning:          "idp/cn/signing-key",
		SecretSecondarySigning: "idp/cn/signing-key",
		SecretRecaptchaV2:      "idp/cn/recaptcha-v2",
		SecretRecaptchaV3:      "idp/cn/recaptcha-v3",
		SecretReporting:        "idp/cn/reporting-key",
	},
}

// SecretName returns the logical secret name for the pair. Naming is separated
// from retrieval: the external secret store collaborator fetches the value.
func SecretName(dc DataCenter, category SecretCategory) (string, error) {
	byCategory, ok := secretNames[dc]
	if !ok {
		return "", fmt.Errorf("%w: data center %q", ErrUnknownSecretPair, dc)
	}
	name, ok := byCategory[category]
	if !ok {
		return "", fmt.Errorf("%w: data center %q, category %q", ErrUnknownSecretPair, dc, category)
	}
	return name, nil
}
