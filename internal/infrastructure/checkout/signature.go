package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader is set by the processor on every webhook delivery.
const SignatureHeader = "X-Checkout-Signature"

// Sign computes the hex HMAC-SHA256 of the raw body under the shared
// webhook secret. Exported so tests and local tooling can forge valid
// deliveries.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook delivery against the raw request body.
// It must be called before the body is parsed or any row is read.
func VerifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := Sign(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
