package security

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// SignatureVerifier checks the authenticity of inbound gateway
// notifications. The gateway signs each callback with
// SHA-512(order_id + status_code + gross_amount + server_key), hex-encoded;
// both sides must use exactly this field order.
type SignatureVerifier struct {
	serverKey string
}

func NewSignatureVerifier(serverKey string) *SignatureVerifier {
	return &SignatureVerifier{serverKey: serverKey}
}

// Expected recomputes the signature for the given notification fields.
func (v *SignatureVerifier) Expected(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + v.serverKey))
	return hex.EncodeToString(sum[:])
}

// Verify compares the supplied signature against the recomputed one in
// constant time.
func (v *SignatureVerifier) Verify(orderID, statusCode, grossAmount, signature string) bool {
	expected := v.Expected(orderID, statusCode, grossAmount)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
