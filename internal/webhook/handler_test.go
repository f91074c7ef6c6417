package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"midtrans-go/pkg/midtrans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const serverKey = "SB-Mid-server-abc"

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Notification(ctx context.Context, notification any) (*midtrans.TransactionStatusResponse, error) {
	args := m.Called(ctx, notification)
	if res := args.Get(0); res != nil {
		return res.(*midtrans.TransactionStatusResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func signedPayload(t *testing.T) map[string]any {
	t.Helper()
	return map[string]any{
		"transaction_id":     "t-1",
		"transaction_status": "pending",
		"order_id":           "ORDER-1",
		"status_code":        "201",
		"gross_amount":       "10000.00",
		"signature_key":      midtrans.Signature("ORDER-1", "201", "10000.00", serverKey),
		"payment_type":       "bank_transfer",
	}
}

func newRequest(t *testing.T, payload any) *http.Request {
	t.Helper()
	var body []byte
	switch p := payload.(type) {
	case string:
		body = []byte(p)
	default:
		var err error
		body, err = json.Marshal(p)
		require.NoError(t, err)
	}
	return httptest.NewRequest(http.MethodPost, "/webhook/midtrans", bytes.NewReader(body))
}

func TestHandler_WebhookHandler(t *testing.T) {
	verifier, err := midtrans.NewVerifier(serverKey)
	require.NoError(t, err)

	t.Run("Success_WithoutResolver", func(t *testing.T) {
		h := NewWebhookHandler(verifier, nil)
		w := httptest.NewRecorder()

		h.WebhookHandler(w, newRequest(t, signedPayload(t)))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ORDER-1", resp.OrderID)
		assert.Equal(t, "pending", resp.TransactionStatus)
		assert.True(t, resp.Verified)
	})

	t.Run("Success_ResolvesStatus", func(t *testing.T) {
		resolver := new(MockResolver)
		h := NewWebhookHandler(verifier, resolver)
		w := httptest.NewRecorder()

		resolver.On("Notification", mock.Anything, mock.MatchedBy(func(n any) bool {
			notification, ok := n.(midtrans.Notification)
			return ok && notification.TransactionID() == "t-1"
		})).Return(&midtrans.TransactionStatusResponse{
			TransactionID:     "t-1",
			TransactionStatus: "settlement",
			FraudStatus:       "accept",
		}, nil)

		h.WebhookHandler(w, newRequest(t, signedPayload(t)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"order_id": "ORDER-1",
			"transaction_id": "t-1",
			"transaction_status": "settlement",
			"fraud_status": "accept",
			"verified": true
		}`, w.Body.String())
		resolver.AssertExpectations(t)
	})

	t.Run("Tampered_Signature", func(t *testing.T) {
		resolver := new(MockResolver)
		h := NewWebhookHandler(verifier, resolver)
		w := httptest.NewRecorder()

		payload := signedPayload(t)
		payload["gross_amount"] = "1.00"

		h.WebhookHandler(w, newRequest(t, payload))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resolver.AssertNotCalled(t, "Notification", mock.Anything, mock.Anything)
	})

	t.Run("Missing_Field", func(t *testing.T) {
		h := NewWebhookHandler(verifier, nil)
		w := httptest.NewRecorder()

		payload := signedPayload(t)
		delete(payload, "signature_key")

		h.WebhookHandler(w, newRequest(t, payload))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing required fields")
	})

	t.Run("Invalid_JSON", func(t *testing.T) {
		h := NewWebhookHandler(verifier, nil)
		w := httptest.NewRecorder()

		h.WebhookHandler(w, newRequest(t, "{not json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Resolver_Error", func(t *testing.T) {
		resolver := new(MockResolver)
		h := NewWebhookHandler(verifier, resolver)
		w := httptest.NewRecorder()

		resolver.On("Notification", mock.Anything, mock.Anything).
			Return(nil, &midtrans.Error{Kind: midtrans.KindTransport, Message: "API request failed"})

		h.WebhookHandler(w, newRequest(t, signedPayload(t)))

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})

	t.Run("Resolver_API_Error_Hides_Upstream_Body", func(t *testing.T) {
		resolver := new(MockResolver)
		h := NewWebhookHandler(verifier, resolver)
		w := httptest.NewRecorder()

		upstream := `{"status_code":"500","status_message":"internal merchant detail"}`
		resolver.On("Notification", mock.Anything, mock.Anything).
			Return(nil, &midtrans.Error{
				Kind:           midtrans.KindAPI,
				Message:        "API is returning API error. HTTP status code: 500. API response: " + upstream,
				HTTPStatusCode: 500,
				RawBody:        []byte(upstream),
			})

		h.WebhookHandler(w, newRequest(t, signedPayload(t)))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "internal merchant detail")
		assert.Contains(t, w.Body.String(), "transaction status lookup rejected")
		resolver.AssertExpectations(t)
	})

	t.Run("Method_Not_Allowed", func(t *testing.T) {
		h := NewWebhookHandler(verifier, nil)
		w := httptest.NewRecorder()

		h.WebhookHandler(w, httptest.NewRequest(http.MethodGet, "/webhook/midtrans", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestMessageFor(t *testing.T) {
	for _, kind := range []midtrans.Kind{
		midtrans.KindValidation, midtrans.KindMalformedInput, midtrans.KindInvalidSignature,
		midtrans.KindAPI, midtrans.KindTransport, midtrans.KindVerification,
	} {
		err := &midtrans.Error{Kind: kind, Message: "secret upstream text"}
		assert.NotContains(t, messageFor(err), "secret", kind.String())
		assert.NotEmpty(t, messageFor(err), kind.String())
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[midtrans.Kind]int{
		midtrans.KindValidation:       http.StatusBadRequest,
		midtrans.KindMalformedInput:   http.StatusBadRequest,
		midtrans.KindInvalidSignature: http.StatusUnauthorized,
		midtrans.KindAPI:              http.StatusBadGateway,
		midtrans.KindTransport:        http.StatusGatewayTimeout,
		midtrans.KindVerification:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, statusFor(&midtrans.Error{Kind: kind}), kind.String())
	}
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
