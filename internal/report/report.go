// Package report renders code scanning alerts as a markdown table.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/locktivity/codescanning-report/internal/github"
)

// DefaultFilename is the file the report is written to when no path is configured.
const DefaultFilename = "codescanning_vulnerability_report.md"

// Header lines. The trailing space after the last pipe is part of the format.
const (
	Title     = "## Code Scanning Alerts Report"
	Header    = "| S.No | Org/Repo Name | Package Name | Severity | Summary | "
	Separator = "| ---- | ------------- | ------------ | -------- | ------- | "
)

// Render builds the markdown report for the alerts of org/repo.
// Rows are numbered from 1 in slice order. Cell values are not escaped.
func Render(org, repo string, alerts []github.CodeScanningAlert) string {
	lines := make([]string, 0, len(alerts)+3)
	lines = append(lines, Title, Header, Separator)

	for i, alert := range alerts {
		lines = append(lines, fmt.Sprintf("| %d | %s/%s | %s | %s | %s |",
			i+1, org, repo, alert.PackageName(), alert.Severity(), alert.Summary()))
	}

	return strings.Join(lines, "\n")
}

// WriteFile writes content to path, replacing any existing file.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write report to %s", path)
	}
	return nil
}
