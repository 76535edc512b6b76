// Package hashbridge keeps two credential stores in agreement about a
// password's identity across a provider migration without storing plaintext.
//
// Digest reproduces the legacy store's algorithm-tagged MD5 format for equality
// comparison against values already stored under that scheme. It applies no
// salt and MUST NOT be used for new secret storage; Hash/Verify carry the
// migration-target bcrypt scheme for newly captured credentials.
package hashbridge

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	dErrors "idrelay/pkg/domain-errors"
)

// legacyAlgorithm tags legacy digests so comparison code elsewhere can tell
// them apart from digests produced by the stronger scheme.
const legacyAlgorithm = "md5"

// Digest computes the legacy one-way digest of a credential string:
// MD5 over the UTF-8 bytes, rendered as hex, with the whole
// "<ALGORITHM>:<HEXDIGEST>" string uppercased. Deterministic and saltless.
func Digest(secret string) string {
	sum := md5.Sum([]byte(secret))
	return strings.ToUpper(legacyAlgorithm + ":" + hex.EncodeToString(sum[:]))
}

// IsLegacy reports whether a stored digest was produced by Digest.
func IsLegacy(stored string) bool {
	return strings.HasPrefix(stored, strings.ToUpper(legacyAlgorithm)+":")
}

// MatchesLegacy compares a plaintext credential against a stored legacy digest.
func MatchesLegacy(secret, stored string) bool {
	return Digest(secret) == stored
}

// Hash creates a bcrypt hash of the provided credential under the
// migration-target scheme.
func Hash(secret string) (string, error) {
	if secret == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "credential cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "credential is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash credential")
	}
	return string(hashed), nil
}

// Verify checks a plaintext credential against a bcrypt hash.
func Verify(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "credential mismatch")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify credential")
	}
	return nil
}
