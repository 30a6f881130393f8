package llm

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrProviderUnavailable indicates the completion backend is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrProviderError indicates the backend answered with an error status.
	ErrProviderError = errors.New("llm provider returned an error")

	// ErrEmptyResponse indicates the backend answered without any text.
	ErrEmptyResponse = errors.New("llm returned empty text")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)

// classify maps a transport-level failure to one of the sentinel errors.
// ctx is the per-call context carrying the task timeout.
func classify(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrProviderError),
		errors.Is(err, ErrTimeout), errors.Is(err, ErrProviderUnavailable):
		return err
	case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(err):
		return ErrProviderUnavailable
	default:
		return errors.Join(ErrProviderError, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrProviderError):
		return "PROVIDER_ERROR"
	default:
		return "UNKNOWN"
	}
}
