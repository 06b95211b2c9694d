package github

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/cockroachdb/errors"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// AlertsClient defines the interface for fetching code scanning alerts.
// This interface allows for easy mocking in tests.
type AlertsClient interface {
	FetchCodeScanningAlerts(ctx context.Context, owner, name string) ([]CodeScanningAlert, error)
}

// Client wraps the GitHub GraphQL client.
type Client struct {
	graphql *githubv4.Client
}

// Ensure Client implements AlertsClient.
var _ AlertsClient = (*Client)(nil)

// NewClient creates a client that authenticates with a bearer token.
// A zero timeout leaves the HTTP client unbounded.
func NewClient(token, graphqlURL string, timeout time.Duration) *Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	rt := &oauth2.Transport{Source: src, Base: http.DefaultTransport}

	return newClient(rt, graphqlURL, timeout)
}

// NewClientFromApp creates a client using GitHub App installation authentication.
// Installation tokens are requested from the REST API that serves graphqlURL.
func NewClientFromApp(appID, installationID int64, privateKey []byte, graphqlURL string, timeout time.Duration) (*Client, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GitHub App transport")
	}
	itr.BaseURL = RESTBaseURL(graphqlURL)

	return newClient(itr, graphqlURL, timeout), nil
}

// NewClientWithHTTP creates a client on top of an existing HTTP client (for testing).
func NewClientWithHTTP(httpClient *http.Client, graphqlURL string) *Client {
	return newClient(httpClient.Transport, graphqlURL, httpClient.Timeout)
}

// RESTBaseURL derives the REST API base URL from a GraphQL endpoint:
// https://api.github.com/graphql maps to https://api.github.com and
// https://ghe.example.com/api/graphql to https://ghe.example.com/api/v3.
func RESTBaseURL(graphqlURL string) string {
	if graphqlURL == "" {
		return DefaultBaseURL
	}
	base := strings.TrimSuffix(strings.TrimRight(graphqlURL, "/"), "/graphql")
	if strings.HasSuffix(base, "/api") {
		base += "/v3"
	}
	return base
}

func newClient(rt http.RoundTripper, graphqlURL string, timeout time.Duration) *Client {
	if graphqlURL == "" {
		graphqlURL = DefaultGraphQLURL
	}
	httpClient := &http.Client{
		Transport: newAPITransport(rt),
		Timeout:   timeout,
	}
	return &Client{
		graphql: githubv4.NewEnterpriseClient(graphqlURL, httpClient),
	}
}

// FetchCodeScanningAlerts issues a single query for the first MaxAlerts code
// scanning alerts of owner/name and returns them in API order.
//
// Errors are a *StatusError for non-200 responses, ErrTimeout when the request
// deadline passes and ErrMalformedResponse when the body does not have the
// expected shape.
func (c *Client) FetchCodeScanningAlerts(ctx context.Context, owner, name string) ([]CodeScanningAlert, error) {
	var query CodeScanningAlertsQuery
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}

	if err := c.graphql.Query(ctx, &query, variables); err != nil {
		return nil, classifyQueryError(err)
	}

	if query.Repository == nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "repository %s/%s missing from response", owner, name)
	}

	nodes := query.Repository.CodeScanningAlerts.Nodes
	for i, alert := range nodes {
		if alert.SecurityVulnerability == nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "alert %d has no security vulnerability", i+1)
		}
	}

	return nodes, nil
}
