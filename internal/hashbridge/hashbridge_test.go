package hashbridge

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "idrelay/pkg/domain-errors"
)

var legacyPattern = regexp.MustCompile(`^MD5:[0-9A-F]{32}$`)

func TestDigest(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Digest("p@ss"), Digest("p@ss"))
	})

	t.Run("distinct inputs yield distinct digests", func(t *testing.T) {
		assert.NotEqual(t, Digest("p@ss"), Digest("p@sS"))
	})

	t.Run("output format", func(t *testing.T) {
		for _, input := range []string{"", "p@ss", "a longer credential with spaces", "ünïcödé"} {
			assert.Regexp(t, legacyPattern, Digest(input), "Digest(%q)", input)
		}
	})

	t.Run("known vector", func(t *testing.T) {
		// md5("abc") = 900150983cd24fb0d6963f7d28e17f72
		assert.Equal(t, "MD5:900150983CD24FB0D6963F7D28E17F72", Digest("abc"))
	})
}

func TestMatchesLegacy(t *testing.T) {
	stored := Digest("p@ss")
	assert.True(t, MatchesLegacy("p@ss", stored))
	assert.False(t, MatchesLegacy("wrong", stored))
	assert.True(t, IsLegacy(stored))
	assert.False(t, IsLegacy("$2a$10$abcdefghijklmnopqrstuv"))
}

func TestHashAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := Hash("p@ss")
		require.NoError(t, err)
		require.NoError(t, Verify("p@ss", hash))
	})

	t.Run("mismatch is unauthorized", func(t *testing.T) {
		hash, err := Hash("p@ss")
		require.NoError(t, err)
		err = Verify("other", hash)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("empty credential rejected", func(t *testing.T) {
		_, err := Hash("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
