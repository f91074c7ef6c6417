package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateInvoiceNumber returns INV-YYYYMMDD-HHMMSS-mmm-RRRR in UTC.
func GenerateInvoiceNumber() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	// 4-digit cryptographic random
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("INV-%s-%03d-%04d", datePart, millis, n.Int64())
}

// GenerateOrderID returns ORDER-<12 hex chars>. The gateway caps order_id at 50 chars.
func GenerateOrderID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ORDER-" + strings.ToUpper(id[:12])
}
