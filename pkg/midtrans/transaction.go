package midtrans

import (
	"context"
	"net/url"
)

// Transaction wraps the Core API /v2/{id}/... endpoints.
type Transaction struct {
	client *Client
}

func (t *Transaction) url(transactionID, action string) (string, error) {
	if transactionID == "" {
		return "", newError(KindValidation, "transaction id is required", nil)
	}
	return t.client.config.CoreAPIBaseURL() + "/v2/" + url.PathEscape(transactionID) + "/" + action, nil
}

func (t *Transaction) Status(ctx context.Context, transactionID string) (*TransactionStatusResponse, error) {
	u, err := t.url(transactionID, "status")
	if err != nil {
		return nil, err
	}
	var res TransactionStatusResponse
	raw, err := t.client.get(ctx, u, &res)
	if err != nil {
		return nil, err
	}
	res.Raw = raw
	return &res, nil
}

// StatusB2B returns the raw payload; its shape differs per merchant setup.
func (t *Transaction) StatusB2B(ctx context.Context, transactionID string) (Payload, error) {
	u, err := t.url(transactionID, "status/b2b")
	if err != nil {
		return nil, err
	}
	return t.client.get(ctx, u, nil)
}

func (t *Transaction) Approve(ctx context.Context, transactionID string) (Payload, error) {
	return t.action(ctx, transactionID, "approve", nil)
}

func (t *Transaction) Deny(ctx context.Context, transactionID string) (Payload, error) {
	return t.action(ctx, transactionID, "deny", nil)
}

func (t *Transaction) Cancel(ctx context.Context, transactionID string) (*CancelTransactionResponse, error) {
	u, err := t.url(transactionID, "cancel")
	if err != nil {
		return nil, err
	}
	var res CancelTransactionResponse
	raw, err := t.client.post(ctx, u, nil, &res)
	if err != nil {
		return nil, err
	}
	res.Raw = raw
	return &res, nil
}

func (t *Transaction) Expire(ctx context.Context, transactionID string) (Payload, error) {
	return t.action(ctx, transactionID, "expire", nil)
}

// Refund accepts a RefundRequest, a map or a JSON string.
func (t *Transaction) Refund(ctx context.Context, transactionID string, params any) (Payload, error) {
	return t.action(ctx, transactionID, "refund", params)
}

func (t *Transaction) RefundDirect(ctx context.Context, transactionID string, params any) (Payload, error) {
	return t.action(ctx, transactionID, "refund/online/direct", params)
}

// Notification reads transaction_id from a webhook notification and fetches
// the authoritative status for it. The notification itself is not trusted.
func (t *Transaction) Notification(ctx context.Context, notification any) (*TransactionStatusResponse, error) {
	n, err := NotificationFrom(notification)
	if err != nil {
		return nil, err
	}
	id := n.TransactionID()
	if id == "" {
		return nil, newError(KindValidation, "notification has no transaction_id", nil)
	}
	return t.Status(ctx, id)
}

func (t *Transaction) action(ctx context.Context, transactionID, action string, body any) (Payload, error) {
	u, err := t.url(transactionID, action)
	if err != nil {
		return nil, err
	}
	return t.client.post(ctx, u, body, nil)
}
