package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature returns the hex HMAC-SHA256 digest the gateway computes over
// "<orderID>|<paymentID>" with the shared key secret.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature authenticates a payment callback. The comparison is
// constant-time; a digest differing anywhere, including case, fails.
func VerifySignature(secret, orderID, paymentID, supplied string) bool {
	expected := Signature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
