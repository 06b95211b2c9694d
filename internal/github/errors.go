package github

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/cockroachdb/errors"
)

// Error kinds returned by FetchCodeScanningAlerts. Match with errors.Is.
var (
	ErrTimeout           = errors.New("github api request timed out")
	ErrMalformedResponse = errors.New("malformed github api response")
)

// StatusError is returned when the API answers with anything but 200 OK.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("query failed to run by returning code of %d. %s", e.StatusCode, e.Body)
}

// classifyQueryError maps an error from the GraphQL client onto the error kinds above.
func classifyQueryError(err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Mark(errors.Wrap(err, "executing code scanning query"), ErrTimeout)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.Wrap(err, "executing code scanning query")
	}

	// Decoding failures and GraphQL error payloads.
	return errors.Mark(errors.Wrap(err, "decoding code scanning response"), ErrMalformedResponse)
}
