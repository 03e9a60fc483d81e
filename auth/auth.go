// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"
)

// CredentialCheck identifies which comparison path verified a credential.
type CredentialCheck int

const (
	// CheckHashed means the stored value was a sha256 digest.
	CheckHashed CredentialCheck = iota
	// CheckPlaintextLegacy means the stored value was compared verbatim.
	// Legacy/demo rows only; see package docs.
	CheckPlaintextLegacy
)

func (c CredentialCheck) String() string {
	if c == CheckPlaintextLegacy {
		return "plaintext-legacy"
	}
	return "hashed"
}

// NewID returns a random identifier for a database record.
func NewID() string {
	return uuid.NewString()
}

// HashCredential returns the hex-encoded sha256 digest of a credential.
func HashCredential(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

// VerifyCredential compares a supplied credential against the stored value.
// A stored value that looks like a sha256 digest is compared against the
// digest of the supplied credential; anything else is treated as a legacy
// plaintext credential and compared verbatim. An empty stored value never
// verifies.
func VerifyCredential(stored, supplied string) (CredentialCheck, bool) {
	if stored == "" {
		return CheckPlaintextLegacy, false
	}
	if isSHA256Hex(stored) {
		digest := HashCredential(supplied)
		ok := subtle.ConstantTimeCompare([]byte(stored), []byte(digest)) == 1
		return CheckHashed, ok
	}
	ok := subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
	return CheckPlaintextLegacy, ok
}

func isSHA256Hex(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
