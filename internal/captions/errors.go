package captions

import (
	"errors"
	"fmt"
)

// Resolution failures. Every error returned by a Resolver wraps exactly one of these.
var (
	ErrNoCaptions    = errors.New("no captions available for this video")
	ErrQuotaExceeded = errors.New("YouTube API quota exceeded")
	ErrAccessDenied  = errors.New("access to captions denied")
	ErrVideoNotFound = errors.New("video not found")
	ErrTransport     = errors.New("caption retrieval failed")
)

// Reason is the machine-readable failure reason a Platform reports.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonQuotaExceeded
	ReasonForbidden
	ReasonNotFound
)

func (r Reason) String() string {
	switch r {
	case ReasonQuotaExceeded:
		return "quotaExceeded"
	case ReasonForbidden:
		return "forbidden"
	case ReasonNotFound:
		return "notFound"
	}
	return "unknown"
}

// PlatformError is the typed failure a Platform returns.
type PlatformError struct {
	Reason  Reason
	Status  int
	Message string
}

func (e *PlatformError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform error %d (%s)", e.Status, e.Reason)
	}
	return fmt.Sprintf("platform error %d (%s): %s", e.Status, e.Reason, e.Message)
}

// reasonErrors maps platform reasons onto the resolution taxonomy.
var reasonErrors = map[Reason]error{
	ReasonQuotaExceeded: ErrQuotaExceeded,
	ReasonForbidden:     ErrAccessDenied,
	ReasonNotFound:      ErrVideoNotFound,
}

// Classify wraps err in the resolution failure it belongs to.
// PlatformError reasons map one-to-one; anything else is ErrTransport.
// Errors already classified pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrNoCaptions, ErrQuotaExceeded, ErrAccessDenied, ErrVideoNotFound, ErrTransport} {
		if errors.Is(err, known) {
			return err
		}
	}
	var pe *PlatformError
	if errors.As(err, &pe) {
		if mapped, ok := reasonErrors[pe.Reason]; ok {
			return fmt.Errorf("%w: %w", mapped, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
