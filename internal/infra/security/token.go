package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const resetTokenBytes = 32

// GenerateResetToken returns a fresh random reset token in hex form
// together with its digest. Only the digest is persisted; the raw token
// travels to the account holder and is re-digested on redemption.
func GenerateResetToken() (raw, digest string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, DigestToken(raw), nil
}

// DigestToken computes the hex-encoded SHA-256 digest of a raw token.
func DigestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
