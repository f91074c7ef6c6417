package webhook

import (
	"context"
	"io"
	"net/http"

	"midtrans-go/internal/logger"
	"midtrans-go/internal/utils"
	"midtrans-go/pkg/midtrans"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Verifier authenticates a raw notification body.
type Verifier interface {
	VerifyBody(body []byte) (midtrans.Notification, error)
}

// StatusResolver fetches the authoritative status for a notification.
type StatusResolver interface {
	Notification(ctx context.Context, notification any) (*midtrans.TransactionStatusResponse, error)
}

// Response is written back to the gateway once a notification is accepted.
type Response struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id,omitempty"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	Verified          bool   `json:"verified"`
}

type Handler struct {
	Verifier Verifier
	Resolver StatusResolver
}

// NewWebhookHandler builds a handler. resolver may be nil, in which case the
// verified notification's own status is reported.
func NewWebhookHandler(verifier Verifier, resolver StatusResolver) *Handler {
	return &Handler{
		Verifier: verifier,
		Resolver: resolver,
	}
}

func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		utils.WriteJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Warn("failed to read notification body", zap.Error(err))
		utils.WriteJSONError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	n, err := h.Verifier.VerifyBody(body)
	if err != nil {
		log.Warn("notification rejected",
			zap.String("kind", midtrans.KindOf(err).String()),
			zap.Error(err),
		)
		utils.WriteJSONError(w, messageFor(err), statusFor(err))
		return
	}

	log = log.With(zap.String("order_id", n.OrderID()))

	resp := Response{
		OrderID:           n.OrderID(),
		TransactionID:     n.TransactionID(),
		TransactionStatus: n.TransactionStatus(),
		FraudStatus:       midtrans.Payload(n).String("fraud_status"),
		Verified:          true,
	}

	if h.Resolver != nil {
		status, err := h.Resolver.Notification(r.Context(), n)
		if err != nil {
			log.Error("failed to resolve transaction status", zap.Error(err))
			utils.WriteJSONError(w, messageFor(err), statusFor(err))
			return
		}
		resp.TransactionID = status.TransactionID
		resp.TransactionStatus = status.TransactionStatus
		resp.FraudStatus = status.FraudStatus
	}

	log.Info("notification verified",
		zap.String("transaction_id", resp.TransactionID),
		zap.String("transaction_status", resp.TransactionStatus),
	)

	utils.WriteJSON(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	switch midtrans.KindOf(err) {
	case midtrans.KindValidation, midtrans.KindMalformedInput:
		return http.StatusBadRequest
	case midtrans.KindInvalidSignature:
		return http.StatusUnauthorized
	case midtrans.KindAPI:
		return http.StatusBadGateway
	case midtrans.KindTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// messageFor is what the caller sees. Upstream bodies stay in the log.
func messageFor(err error) string {
	switch midtrans.KindOf(err) {
	case midtrans.KindValidation:
		return "missing required fields"
	case midtrans.KindMalformedInput:
		return "malformed notification body"
	case midtrans.KindInvalidSignature:
		return "invalid signature"
	case midtrans.KindAPI:
		return "transaction status lookup rejected"
	case midtrans.KindTransport:
		return "transaction status lookup unavailable"
	default:
		return "internal error"
	}
}
