package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"hash"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var signatureFields = []string{"order_id", "status_code", "gross_amount", "signature_key"}

// Verifier authenticates webhook notifications with the merchant server key.
type Verifier struct {
	serverKey string
	newHash   func() hash.Hash
}

// NewVerifier fails with KindConfiguration on an empty key, so an empty
// signature can never verify against a vacuous secret.
func NewVerifier(serverKey string) (*Verifier, error) {
	if serverKey == "" {
		return nil, newError(KindConfiguration, "server key is required for signature verification", nil)
	}
	return &Verifier{serverKey: serverKey, newHash: sha512.New}, nil
}

// Signature computes hex(SHA-512(orderID + statusCode + grossAmount + serverKey)).
// Fields are concatenated exactly as given.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	return digest(sha512.New(), orderID, statusCode, grossAmount, serverKey)
}

// Verify returns nil only when signature_key matches the expected digest.
// Every other outcome is an *Error: KindConfiguration for a Verifier built
// without a key, KindValidation for missing fields,
// KindInvalidSignature for a mismatch and KindVerification for anything else.
func (v *Verifier) Verify(n Notification) error {
	if v == nil || v.serverKey == "" {
		return newError(KindConfiguration, "verifier has no server key; use NewVerifier", nil)
	}
	if missing := missingSignatureFields(n); len(missing) > 0 {
		return &Error{
			Kind:           KindValidation,
			Message:        "missing required fields for signature verification",
			HTTPStatusCode: http.StatusBadRequest,
			Err:            errors.Errorf("missing fields: %s", strings.Join(missing, ", ")),
		}
	}

	fields := make([]string, len(signatureFields))
	for i, name := range signatureFields {
		s, ok := n[name].(string)
		if !ok {
			return verificationError(errors.Errorf("field %s must be a string, got %T", name, n[name]))
		}
		fields[i] = s
	}

	newHash := v.newHash
	if newHash == nil {
		newHash = sha512.New
	}
	expected := digest(newHash(), fields[0], fields[1], fields[2], v.serverKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(fields[3])) != 1 {
		return &Error{
			Kind:           KindInvalidSignature,
			Message:        "invalid signature key",
			HTTPStatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

// VerifyBody parses a raw webhook body and verifies it.
func (v *Verifier) VerifyBody(body []byte) (Notification, error) {
	n, err := ParseNotification(body)
	if err != nil {
		return nil, err
	}
	if err := v.Verify(n); err != nil {
		return nil, err
	}
	return n, nil
}

func digest(h hash.Hash, parts ...string) string {
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func verificationError(err error) error {
	if _, ok := AsError(err); ok {
		return err
	}
	return &Error{
		Kind:           KindVerification,
		Message:        "failed to verify webhook signature",
		HTTPStatusCode: http.StatusInternalServerError,
		Err:            err,
	}
}

func missingSignatureFields(n Notification) []string {
	var missing []string
	for _, name := range signatureFields {
		if isFalsy(n[name]) {
			missing = append(missing, name)
		}
	}
	return missing
}

// isFalsy treats absent, null, empty string, false and numeric zero as missing.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	case float64:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	default:
		return false
	}
}
