package cryptology

import (
	"context"

	"github.com/pkg/errors"
)

// Error kinds shared by every package. Callers classify failures with errors.Is;
// the wrapped message carries the offending values.
var (
	// ErrInvalidArgument reports input outside an operation's domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports a search that exhausted its space without a solution.
	ErrNotFound = errors.New("no solution found")

	// ErrBoundExceeded reports a search stopped by its iteration bound.
	ErrBoundExceeded = errors.New("search bound exceeded")

	// ErrVerification reports a signature or proof that does not verify.
	ErrVerification = errors.New("verification failed")
)

// Status maps a search error onto its SearchStatus. ErrInvalidArgument maps to
// Invalid; any other unclassified error counts as NotFound.
func Status(err error) SearchStatus {
	switch {
	case err == nil:
		return Found
	case errors.Is(err, ErrInvalidArgument):
		return Invalid
	case errors.Is(err, ErrBoundExceeded):
		return BoundExceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Cancelled
	default:
		return NotFound
	}
}
