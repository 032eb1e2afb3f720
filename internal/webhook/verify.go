// Package webhook receives GitHub issue_comment events in the long-running
// server mode and turns triggering comments into relay runs.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// VerifySignature checks the X-Hub-Signature-256 payload signature using
// HMAC SHA-256 and constant-time comparison.
func VerifySignature(payload []byte, signature, secret string) bool {
	receivedHash, ok := strings.CutPrefix(signature, "sha256=")
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expectedHash := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(receivedHash), []byte(expectedHash))
}

// ValidateSignatureHeader rejects missing or malformed signature headers
// before any HMAC work happens.
func ValidateSignatureHeader(header string) error {
	if header == "" {
		return fmt.Errorf("missing X-Hub-Signature-256 header")
	}
	if !strings.HasPrefix(header, "sha256=") {
		return fmt.Errorf("invalid signature format, expected 'sha256=<hash>'")
	}
	return nil
}
