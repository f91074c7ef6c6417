package midtrans

import "context"

// Snap wraps the Snap checkout API.
type Snap struct {
	client *Client
}

// CreateTransaction accepts a SnapRequest, a map or a JSON string.
func (s *Snap) CreateTransaction(ctx context.Context, params any) (*SnapResponse, error) {
	var res SnapResponse
	raw, err := s.client.post(ctx, s.client.config.SnapAPIBaseURL()+"/transactions", params, &res)
	if err != nil {
		return nil, err
	}
	res.Raw = raw
	return &res, nil
}

func (s *Snap) CreateTransactionToken(ctx context.Context, params any) (string, error) {
	res, err := s.CreateTransaction(ctx, params)
	if err != nil {
		return "", err
	}
	return res.Token, nil
}

func (s *Snap) CreateTransactionRedirectURL(ctx context.Context, params any) (string, error) {
	res, err := s.CreateTransaction(ctx, params)
	if err != nil {
		return "", err
	}
	return res.RedirectURL, nil
}
