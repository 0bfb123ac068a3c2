package llm

import (
	"errors"
	"fmt"
	"time"
)

// maxErrorBody bounds how much of a provider error body is carried in errors.
const maxErrorBody = 300

var ErrEmptyResponse = errors.New("llm: empty response")

// UpstreamError is a non-2xx answer from the provider, or a transport
// failure before any answer (Status 0).
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("llm upstream error (%d): %s", e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("llm upstream error (%d)", e.Status)
	case e.Err != nil:
		return "llm upstream error: " + e.Err.Error()
	default:
		return "llm upstream error"
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("llm call timed out after %s", e.After)
}

func truncateBody(b []byte) string {
	r := []rune(string(b))
	if len(r) > maxErrorBody {
		r = r[:maxErrorBody]
	}
	return string(r)
}
