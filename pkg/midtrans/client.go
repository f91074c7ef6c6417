package midtrans

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client groups the API facades over one Config and one Executor.
type Client struct {
	config   Config
	executor *Executor

	Transaction *Transaction
	Snap        *Snap
	Invoice     *Invoice
	Verifier    *Verifier
}

func NewClient(cfg Config, opts ...ExecutorOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	verifier, err := NewVerifier(cfg.ServerKey)
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:   cfg,
		executor: NewExecutor(opts...),
		Verifier: verifier,
	}
	c.Transaction = &Transaction{client: c}
	c.Snap = &Snap{client: c}
	c.Invoice = &Invoice{client: c}
	return c, nil
}

func (c *Client) Config() Config { return c.config }

func (c *Client) post(ctx context.Context, url string, body any, out any) (Payload, error) {
	return c.call(ctx, http.MethodPost, url, body, out)
}

func (c *Client) get(ctx context.Context, url string, out any) (Payload, error) {
	return c.call(ctx, http.MethodGet, url, nil, out)
}

// call executes the request and, on success, binds the payload into out.
// The typed view is best effort: a field whose wire type differs from the
// struct stays zero and the call still succeeds. Callers read such fields from
// the Raw payload every typed response carries.
func (c *Client) call(ctx context.Context, method, url string, arg any, out any) (Payload, error) {
	payload, err := c.executor.Execute(ctx, method, c.config.ServerKey, url, arg, nil)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := payload.Decode(out); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return payload, newError(KindMalformedInput, "cannot bind API response", err)
			}
			c.executor.logger.Debug("response field type differs from typed view",
				zap.String("field", typeErr.Field),
				zap.String("wire_type", typeErr.Value),
			)
		}
	}
	return payload, nil
}
