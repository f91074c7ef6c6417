package midtrans

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const Version = "1.0.0"

const defaultUserAgent = "midtrans-go/" + Version

// statusCodeNotError is the body status_code the gateway uses for a
// non-error condition even though it is above 400.
const statusCodeNotError = 407

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Executor performs one authenticated call to the gateway and classifies the
// outcome. It holds no per-call state and is safe for concurrent use.
type Executor struct {
	client    HTTPDoer
	logger    *zap.Logger
	userAgent string
}

type ExecutorOption func(*Executor)

// WithHTTPClient sets the client used for every call. Timeouts belong to it.
func WithHTTPClient(c HTTPDoer) ExecutorOption {
	return func(e *Executor) {
		if c != nil {
			e.client = c
		}
	}
}

func WithLogger(l *zap.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithUserAgent(ua string) ExecutorOption {
	return func(e *Executor) {
		if ua != "" {
			e.userAgent = ua
		}
	}
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		client:    &http.Client{},
		logger:    zap.NewNop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute sends one request. For GET, first holds query parameters and second
// the body; for every other method the order is reversed. Each argument may be
// nil, a map or struct used as-is, or a JSON document as string or bytes.
func (e *Executor) Execute(ctx context.Context, method, serverKey, requestURL string, first, second any) (Payload, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	bodyArg, queryArg := first, second
	if method == http.MethodGet {
		bodyArg, queryArg = second, first
	}

	body, err := normalizeArg(bodyArg)
	if err != nil {
		return nil, newError(KindMalformedInput, "failed to parse request body JSON", err)
	}
	query, err := normalizeQuery(queryArg)
	if err != nil {
		return nil, newError(KindMalformedInput, "failed to parse query parameter JSON", err)
	}

	req, err := e.newRequest(ctx, method, serverKey, requestURL, body, query)
	if err != nil {
		return nil, newError(KindMalformedInput, "failed to build request", err)
	}

	log := e.logger.With(zap.String("method", method), zap.String("path", req.URL.Path))

	resp, err := e.client.Do(req)
	if err != nil {
		log.Debug("midtrans request failed without response", zap.Error(err))
		return nil, newError(KindTransport, "API request failed, HTTP response not found, likely connection failure", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug("failed reading midtrans response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, &Error{
			Kind:           KindTransport,
			Message:        "failed to read API response",
			HTTPStatusCode: resp.StatusCode,
			Err:            err,
		}
	}

	log.Debug("midtrans response received", zap.Int("status", resp.StatusCode))

	return classify(resp.StatusCode, raw)
}

func (e *Executor) newRequest(ctx context.Context, method, serverKey, requestURL string, body any, query Payload) (*http.Request, error) {
	u, err := url.Parse(requestURL)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, errors.Errorf("request url %q is not absolute", requestURL)
	}
	if len(query) > 0 {
		q := u.Query()
		encodeQuery(q, query)
		u.RawQuery = q.Encode()
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(serverKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", e.userAgent)

	return req, nil
}

func classify(status int, raw []byte) (Payload, error) {
	var payload Payload
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		payload, decodeErr = decodeObject(raw)
	}

	if status >= http.StatusBadRequest {
		return nil, apiError(status, payload, raw)
	}

	if decodeErr != nil {
		return nil, &Error{
			Kind:           KindAPI,
			Message:        fmt.Sprintf("API response is not a JSON object. HTTP status code: %d", status),
			HTTPStatusCode: status,
			RawBody:        raw,
			Err:            decodeErr,
		}
	}

	if code, ok := payload.isErrorCode(); ok {
		return nil, apiError(code, payload, raw)
	}

	if payload == nil {
		payload = Payload{}
	}
	return payload, nil
}

func apiError(code int, payload Payload, raw []byte) *Error {
	return &Error{
		Kind:           KindAPI,
		Message:        fmt.Sprintf("API is returning API error. HTTP status code: %d. API response: %s", code, raw),
		HTTPStatusCode: code,
		APIResponse:    payload,
		RawBody:        raw,
	}
}

func normalizeArg(v any) (any, error) {
	switch a := v.(type) {
	case nil:
		return nil, nil
	case string:
		return parseJSON([]byte(a))
	case []byte:
		return parseJSON(a)
	case json.RawMessage:
		return parseJSON(a)
	default:
		return v, nil
	}
}

func normalizeQuery(v any) (Payload, error) {
	switch a := v.(type) {
	case nil:
		return nil, nil
	case Payload:
		return a, nil
	case map[string]any:
		return Payload(a), nil
	case string:
		return decodeObject([]byte(a))
	case []byte:
		return decodeObject(a)
	case json.RawMessage:
		return decodeObject(a)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return decodeObject(b)
	}
}

func parseJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	return out, nil
}

func encodeQuery(q url.Values, params Payload) {
	for key, v := range params {
		switch val := v.(type) {
		case nil:
		case []any:
			for _, item := range val {
				q.Add(key, queryValue(item))
			}
		default:
			q.Set(key, queryValue(val))
		}
	}
}

func queryValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
