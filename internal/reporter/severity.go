package reporter

import (
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"

	"github.com/locktivity/codescanning-report/internal/github"
)

// SeverityCounts tallies alerts per advisory severity. It is logged after a
// run and never rendered into the report.
type SeverityCounts struct {
	Critical int
	High     int
	Moderate int
	Low      int
	Other    int
	Closed   int
}

// countSeverities tallies alerts by advisory severity and closed state.
func countSeverities(alerts []github.CodeScanningAlert) SeverityCounts {
	var counts SeverityCounts
	for _, alert := range alerts {
		if alert.Closed {
			counts.Closed++
		}

		switch githubv4.SecurityAdvisorySeverity(alert.Severity()) {
		case githubv4.SecurityAdvisorySeverityCritical:
			counts.Critical++
		case githubv4.SecurityAdvisorySeverityHigh:
			counts.High++
		case githubv4.SecurityAdvisorySeverityModerate:
			counts.Moderate++
		case githubv4.SecurityAdvisorySeverityLow:
			counts.Low++
		default:
			counts.Other++
		}
	}
	return counts
}

// Fields returns the counts as zap fields.
func (s SeverityCounts) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("critical", s.Critical),
		zap.Int("high", s.High),
		zap.Int("moderate", s.Moderate),
		zap.Int("low", s.Low),
		zap.Int("other", s.Other),
		zap.Int("closed", s.Closed),
	}
}
