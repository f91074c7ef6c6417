package midtrans

import (
	"encoding/json"
)

// Notification is a webhook body exactly as the gateway sent it. It is an
// open map so passthrough fields survive, and numbers stay json.Number.
// Treat every value in it as untrusted until Verify succeeds.
type Notification map[string]any

// ParseNotification decodes a webhook body. Anything other than a JSON
// object fails with KindMalformedInput.
func ParseNotification(body []byte) (Notification, error) {
	p, err := decodeObject(body)
	if err != nil {
		return nil, newError(KindMalformedInput, "failed to parse notification JSON", err)
	}
	return Notification(p), nil
}

// NotificationFrom accepts a JSON string, bytes, a map or a struct.
func NotificationFrom(v any) (Notification, error) {
	switch n := v.(type) {
	case nil:
		return nil, newError(KindValidation, "notification is required", nil)
	case Notification:
		return n, nil
	case Payload:
		return Notification(n), nil
	case map[string]any:
		return Notification(n), nil
	case string:
		return ParseNotification([]byte(n))
	case []byte:
		return ParseNotification(n)
	case json.RawMessage:
		return ParseNotification(n)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, newError(KindMalformedInput, "failed to encode notification", err)
		}
		return ParseNotification(b)
	}
}

func (n Notification) OrderID() string           { return Payload(n).String("order_id") }
func (n Notification) StatusCode() string        { return Payload(n).String("status_code") }
func (n Notification) GrossAmount() string       { return Payload(n).String("gross_amount") }
func (n Notification) SignatureKey() string      { return Payload(n).String("signature_key") }
func (n Notification) TransactionID() string     { return Payload(n).String("transaction_id") }
func (n Notification) TransactionStatus() string { return Payload(n).String("transaction_status") }

// Decode binds the notification into a typed view such as WebhookBody.
func (n Notification) Decode(v any) error {
	return Payload(n).Decode(v)
}
