// Package signature implements the gateway's payment signature scheme:
// HMAC-SHA256 over "<order_id>|<payment_id>" keyed with the key secret,
// hex encoded.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

func Compute(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the expected signature server-side and compares it with
// the client-supplied one in constant time. The supplied value is never used
// for anything except this comparison.
func Verify(secret, orderID, paymentID, supplied string) bool {
	expected := Compute(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
