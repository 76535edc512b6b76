// Package datacenter models the identity provider's regional deployments and
// names the per-region secrets the relay needs to verify inbound events.
package datacenter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDataCenter is returned when a region token cannot be parsed. It is
// fatal to the single request, never to the process.
var ErrInvalidDataCenter = errors.New("invalid data center")

// DataCenter identifies an isolated regional deployment of the identity
// provider. Each region holds its own signing secret.
type DataCenter string

const (
	US DataCenter = "us"
	EU DataCenter = "eu"
	AU DataCenter = "au"
	CN DataCenter = "cn"
)

// All lists every recognized data center. The slice is fixed at process start
// and safe for unsynchronized concurrent reads.
func All() []DataCenter {
	return []DataCenter{US, EU, AU, CN}
}

var labels = map[DataCenter]string{
	US: "United States",
	EU: "Europe",
	AU: "Australia",
	CN: "China",
}

// Parse resolves a region token case-insensitively. Unknown tokens fail with
// ErrInvalidDataCenter rather than defaulting to any region.
func Parse(raw string) (DataCenter, error) {
	dc := DataCenter(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := labels[dc]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDataCenter, raw)
	}
	return dc, nil
}

// Label returns the descriptive display name for the data center.
func (dc DataCenter) Label() string {
	return labels[dc]
}

func (dc DataCenter) String() string {
	return string(dc)
}
