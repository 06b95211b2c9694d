package reporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/locktivity/codescanning-report/internal/github"
	"github.com/locktivity/codescanning-report/internal/report"
)

// NoAlertsMessage is printed instead of a report when the repository has no alerts.
const NoAlertsMessage = "No code scanning alerts to report."

// Reporter runs the fetch, render and write pipeline for one repository.
type Reporter struct {
	client github.AlertsClient
	config Config
	logger *zap.Logger
}

// Result describes what a run produced.
type Result struct {
	Alerts     int
	OutputPath string // empty when no report was written
	Severities SeverityCounts
}

// New creates a Reporter with the given configuration.
// It supports two authentication methods:
//   - GitHub App: set AppID, InstallationID and PrivateKey
//   - Token: set GitHubToken
func New(config Config, logger *zap.Logger) (*Reporter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var client github.AlertsClient
	if config.hasAppAuth() {
		appClient, err := github.NewClientFromApp(
			config.AppID,
			config.InstallationID,
			[]byte(config.PrivateKey),
			config.GraphQLURL,
			config.Timeout,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create GitHub App client")
		}
		client = appClient
	} else {
		client = github.NewClient(config.GitHubToken, config.GraphQLURL, config.Timeout)
	}

	return NewWithClient(config, client, logger), nil
}

// NewWithClient creates a Reporter with a custom client (for testing).
func NewWithClient(config Config, client github.AlertsClient, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		client: client,
		config: config,
		logger: logger,
	}
}

// status reports a status update.
func (r *Reporter) status(message string) {
	if r.config.OnStatus != nil {
		r.config.OnStatus(message)
	}
}

func (r *Reporter) out() io.Writer {
	if r.config.Out != nil {
		return r.config.Out
	}
	return os.Stdout
}

// Run fetches the alerts and, when there are any, prints the markdown report
// and writes it to the configured output path. No alerts is not an error: the
// notice is printed and the output file is left untouched.
func (r *Reporter) Run(ctx context.Context) (*Result, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	org, repo := r.config.Organization, r.config.Repository
	log := r.logger.With(zap.String("repository", org+"/"+repo))

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	r.status(fmt.Sprintf("Querying code scanning alerts for %s/%s...", org, repo))

	alerts, err := r.client.FetchCodeScanningAlerts(ctx, org, repo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch code scanning alerts")
	}

	result := &Result{
		Alerts:     len(alerts),
		Severities: countSeverities(alerts),
	}

	if len(alerts) == 0 {
		log.Info("no alerts found, skipping report")
		if _, err := fmt.Fprintln(r.out(), NoAlertsMessage); err != nil {
			return nil, errors.Wrap(err, "failed to print notice")
		}
		return result, nil
	}

	content := report.Render(org, repo, alerts)

	if _, err := fmt.Fprintln(r.out(), content); err != nil {
		return nil, errors.Wrap(err, "failed to print report")
	}

	r.status(fmt.Sprintf("Writing report to %s", r.config.OutputPath))
	if err := report.WriteFile(r.config.OutputPath, content); err != nil {
		return nil, err
	}
	result.OutputPath = r.config.OutputPath

	log.Info("report complete", append([]zap.Field{
		zap.Int("alerts", result.Alerts),
		zap.String("path", result.OutputPath),
	}, result.Severities.Fields()...)...)

	return result, nil
}
