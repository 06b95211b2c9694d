// Package github provides GraphQL client functionality for GitHub API.
package github

import "github.com/shurcooL/githubv4"

// CodeScanningAlertsQuery is the GraphQL query for fetching the first page of
// code scanning alerts of a repository. The page size matches MaxAlerts.
type CodeScanningAlertsQuery struct {
	Repository *struct {
		CodeScanningAlerts struct {
			Nodes []CodeScanningAlert
		} `graphql:"codeScanningAlerts(first: 100)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// CodeScanningAlert represents a single code scanning alert.
// SecurityVulnerability is a pointer so a null node can be told apart from
// an empty one.
type CodeScanningAlert struct {
	CreatedAt githubv4.DateTime
	Closed    bool
	Rule      struct {
		Name string
	}
	SecurityVulnerability *SecurityVulnerability
}

// SecurityVulnerability links an alert to the vulnerable package and its advisory.
type SecurityVulnerability struct {
	Package struct {
		Name string
	}
	Advisory Advisory
}

// Advisory holds the advisory fields rendered in the report.
type Advisory struct {
	Summary  string
	Severity githubv4.SecurityAdvisorySeverity // LOW, MODERATE, HIGH, CRITICAL
}

// PackageName returns the vulnerable package name, or "" if the alert has no vulnerability.
func (a CodeScanningAlert) PackageName() string {
	if a.SecurityVulnerability == nil {
		return ""
	}
	return a.SecurityVulnerability.Package.Name
}

// Severity returns the advisory severity, or "" if the alert has no vulnerability.
func (a CodeScanningAlert) Severity() string {
	if a.SecurityVulnerability == nil {
		return ""
	}
	return string(a.SecurityVulnerability.Advisory.Severity)
}

// Summary returns the advisory summary, or "" if the alert has no vulnerability.
func (a CodeScanningAlert) Summary() string {
	if a.SecurityVulnerability == nil {
		return ""
	}
	return a.SecurityVulnerability.Advisory.Summary
}
