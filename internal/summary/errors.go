package summary

import (
	"errors"
	"fmt"
)

// Summarization failures. Any failing chunk aborts the whole call with one of these.
var (
	ErrAuthenticationFailed = errors.New("language model rejected the API key")
	ErrRateLimited          = errors.New("language model rate limit reached")
	ErrTransport            = errors.New("language model request failed")
	ErrEmptyInput           = errors.New("nothing to summarize")
)

// classify wraps err in ErrTransport unless it already carries a summarization kind.
func classify(err error) error {
	for _, known := range []error{ErrAuthenticationFailed, ErrRateLimited, ErrTransport} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
