// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential verification and ID generation.

# Credential Verification

Voter and admin credentials are stored as hex-encoded sha256 digests:

	stored := auth.HashCredential(password)
	check, ok := auth.VerifyCredential(stored, supplied)

Some pre-seeded demo rows store the credential verbatim instead of a digest.
VerifyCredential keeps that path working but tags the result so callers can
tell which comparison matched:

  - CheckHashed: stored value was a 64-char hex digest
  - CheckPlaintextLegacy: stored value was compared verbatim

The plaintext path is a known weakness inherited from the seed data. It is
deliberately kept visible as a tagged variant rather than silently removed;
operators should migrate legacy rows by rehashing. Both comparisons are
constant-time.

# ID Generation

Database record IDs are random UUIDs:

	id := auth.NewID()
*/
package auth
