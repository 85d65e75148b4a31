package kafka

import (
	"errors"
	"fmt"
)

// ErrPoison tags a message that can never be processed. The consumer commits its offset
// instead of waiting for a redelivery.
var ErrPoison = errors.New("poison message")

// Permanent tags err with ErrPoison.
func Permanent(err error) error {
	if err == nil {
		return ErrPoison
	}
	return fmt.Errorf("%w: %w", ErrPoison, err)
}

// IsPermanent reports whether err carries ErrPoison.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPoison)
}
