package datacenter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretName(t *testing.T) {
	t.Run("total over the registered product set", func(t *testing.T) {
		seen := make(map[string]DataCenter)
		for _, dc := range All() {
			for _, category := range Categories() {
				name, err := SecretName(dc, category)
				require.NoError(t, err, "SecretName(%s, %s)", dc, category)
				require.NotEmpty(t, name)

				// Primary signing keys must be distinct per region.
				if category == SecretSigning {
					if prev, ok := seen[name]; ok {
						t.Fatalf("signing key %q shared by %s and %s", name, prev, dc)
					}
					seen[name] = dc
				}
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := SecretName(US, SecretSigning)
		require.NoError(t, err)
		second, err := SecretName(US, SecretSigning)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("unregistered pair errors, no fallback", func(t *testing.T) {
		_, err := SecretName(DataCenter("xx"), SecretSigning)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownSecretPair))

		_, err = SecretName(US, SecretCategory("tls"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownSecretPair))
	})

	t.Run("cn secondary stays in region", func(t *testing.T) {
		name, err := SecretName(CN, SecretSecondarySigning)
		require.NoError(t, err)
		assert.Equal(t, "idp/cn/signing-key", name)
	})
}
