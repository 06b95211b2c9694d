package github

import (
	"io"
	"net/http"
)

// apiTransport sets the headers the code scanning API expects and turns
// non-200 responses into a *StatusError before the GraphQL layer sees them.
type apiTransport struct {
	base http.RoundTripper
}

func newAPITransport(base http.RoundTripper) *apiTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &apiTransport{base: base}
}

func (t *apiTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("Content-Type", ContentType)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return resp, nil
}
