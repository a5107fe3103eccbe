package tacomail

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tacomail/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrEmailNotFound is returned when a message ID does not exist in the inbox.
	ErrEmailNotFound = errors.New("email not found")

	// ErrNoDomains is returned when the service publishes no domains to
	// compose a random address from.
	ErrNoDomains = errors.New("no domains available")
)

// APIError represents a non-2xx HTTP response from the Tacomail API.
// The client never swallows or downgrades these; they propagate unchanged.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	if e.StatusCode == http.StatusNotFound {
		return target == ErrEmailNotFound
	}
	return false
}

// wrapError converts internal transport errors to public errors so that
// errors.As and errors.Is work against the package's exported types.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Body,
		}
	}

	return err
}
