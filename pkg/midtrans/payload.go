package midtrans

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Payload is an open JSON object. Numbers are kept as json.Number so values
// such as "10000.00" and 10000.00 survive without reformatting.
type Payload map[string]any

// Decode binds the payload into a typed value.
func (p Payload) Decode(v any) error {
	b, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode payload")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return errors.Wrap(dec.Decode(v), "decode payload")
}

// String returns the field as a string when it is one.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// StatusCode returns the domain status_code embedded in the body. The gateway
// sends it either as a JSON string or a number. Values outside the int32 range,
// infinities included, saturate to the nearest bound so they keep their sign.
func (p Payload) StatusCode() (int, bool) {
	v, ok := p["status_code"]
	if !ok {
		return 0, false
	}
	f, ok := numericValue(v)
	if !ok {
		return 0, false
	}
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32, true
	case f <= math.MinInt32:
		return math.MinInt32, true
	}
	return int(f), true
}

// isErrorCode compares on the float so fractional codes like 407.5 are not
// truncated onto the 407 sentinel.
func (p Payload) isErrorCode() (int, bool) {
	f, ok := numericValue(p["status_code"])
	if !ok || f < http.StatusBadRequest || f == statusCodeNotError {
		return 0, false
	}
	code, _ := p.StatusCode()
	return code, true
}

func numericValue(v any) (float64, bool) {
	var f float64
	var err error
	switch n := v.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(string(n), 64)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, false
	}
	// ParseFloat reports overflow as ErrRange with f set to ±Inf.
	var numErr *strconv.NumError
	if err != nil && !(errors.As(err, &numErr) && numErr.Err == strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func decodeObject(b []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON object")
	}
	if p == nil {
		return nil, errors.New("JSON value is not an object")
	}
	return p, nil
}
