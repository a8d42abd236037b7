package domain

import (
	"fmt"
	"io"
)

const (
	orderNumberPrefix   = "ORD-"
	orderNumberLength   = 8
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOrderNumber draws 8 uppercase alphanumeric characters from rnd and
// prefixes them with "ORD-". Collisions are not checked here; the orders
// table enforces uniqueness and callers retry on conflict.
func NewOrderNumber(rnd io.Reader) (string, error) {
	buf := make([]byte, orderNumberLength)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return "", fmt.Errorf("order number: read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return orderNumberPrefix + string(buf), nil
}
