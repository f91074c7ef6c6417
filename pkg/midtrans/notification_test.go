package midtrans

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWebhook = `{
	"transaction_time": "2024-01-01 10:00:00",
	"transaction_status": "settlement",
	"transaction_id": "9aed5972-5b6a-401e-894b-a32c91ed1a3a",
	"status_message": "midtrans payment notification",
	"status_code": "200",
	"signature_key": "abc",
	"payment_type": "bank_transfer",
	"order_id": "ORDER-1",
	"merchant_id": "G141532850",
	"gross_amount": "10000.00",
	"currency": "IDR",
	"va_numbers": [{"bank": "bca", "va_number": "12345"}],
	"expiry_time": "2024-01-02 10:00:00"
}`

func TestNotificationFrom(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		n, err := NotificationFrom(sampleWebhook)
		require.NoError(t, err)
		assert.Equal(t, "ORDER-1", n.OrderID())
		assert.Equal(t, "10000.00", n.GrossAmount())
		assert.Equal(t, "settlement", n.TransactionStatus())
	})

	t.Run("Map", func(t *testing.T) {
		n, err := NotificationFrom(map[string]any{"transaction_id": "t-1"})
		require.NoError(t, err)
		assert.Equal(t, "t-1", n.TransactionID())
	})

	t.Run("Struct", func(t *testing.T) {
		n, err := NotificationFrom(WebhookBody{OrderID: "ORDER-2", StatusCode: "201"})
		require.NoError(t, err)
		assert.Equal(t, "ORDER-2", n.OrderID())
		assert.Equal(t, "201", n.StatusCode())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := NotificationFrom("{not json")
		assert.ErrorIs(t, err, ErrMalformedInput)

		_, err = NotificationFrom(`["array"]`)
		assert.ErrorIs(t, err, ErrMalformedInput)

		_, err = NotificationFrom(nil)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestWebhookBody_Extra(t *testing.T) {
	var body WebhookBody
	require.NoError(t, json.Unmarshal([]byte(sampleWebhook), &body))

	assert.Equal(t, "ORDER-1", body.OrderID)
	assert.Equal(t, "G141532850", body.MerchantID)
	assert.Len(t, body.Extra, 2)
	assert.Equal(t, "2024-01-02 10:00:00", body.Extra["expiry_time"])
	assert.NotNil(t, body.Extra["va_numbers"])

	n, err := ParseNotification([]byte(sampleWebhook))
	require.NoError(t, err)
	var fromNotification WebhookBody
	require.NoError(t, n.Decode(&fromNotification))
	assert.Equal(t, body, fromNotification)
}
