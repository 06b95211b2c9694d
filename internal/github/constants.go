package github

// API configuration.
const (
	DefaultBaseURL    = "https://api.github.com"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	AcceptHeader      = "application/vnd.github.vixen-preview+json"
	ContentType       = "application/json"
)

// MaxAlerts is the page size of the alerts query. Only one page is fetched.
const MaxAlerts = 100
