// Package reporter fetches code scanning alerts for a repository and writes
// them out as a markdown report.
package reporter

import (
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/locktivity/codescanning-report/internal/github"
	"github.com/locktivity/codescanning-report/internal/report"
)

// EnvPrefix is the prefix of every environment variable the reporter reads.
const EnvPrefix = "INPUT"

// DefaultTimeout bounds the GraphQL request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Configuration keys. With EnvPrefix they map to INPUT_ORG_NAME and so on.
const (
	KeyOrgName        = "org-name"
	KeyRepoName       = "repo-name"
	KeyGitHubToken    = "github-token"
	KeyAppID          = "app-id"
	KeyInstallationID = "installation-id"
	KeyAppPrivateKey  = "app-private-key"
	KeyGraphQLURL     = "graphql-url"
	KeyOutput         = "output"
	KeyTimeout        = "timeout"
	KeyLogLevel       = "log-level"
)

// ErrInvalidConfig is returned when the configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// StatusFunc is called to report status updates.
type StatusFunc func(message string)

// Config holds the reporter configuration. It is built once at process entry.
type Config struct {
	Organization   string `validate:"required"`
	Repository     string `validate:"required"`
	GitHubToken    string
	AppID          int64
	InstallationID int64
	PrivateKey     string
	GraphQLURL     string        `validate:"required,url"`
	OutputPath     string        `validate:"required"`
	Timeout        time.Duration `validate:"gt=0"`

	// Out receives the report and console notices. Defaults to os.Stdout.
	Out io.Writer
	// OnStatus is optional, set by main to log progress.
	OnStatus StatusFunc
}

// NewViper returns a viper instance reading INPUT_* environment variables
// with defaults for every optional key.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyGraphQLURL, github.DefaultGraphQLURL)
	v.SetDefault(KeyOutput, report.DefaultFilename)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	return v
}

// LoadConfig reads a Config from v. Non-numeric App or installation IDs are
// reported as ErrInvalidConfig.
func LoadConfig(v *viper.Viper) (Config, error) {
	appID, err := getInt64(v, KeyAppID)
	if err != nil {
		return Config{}, err
	}
	installationID, err := getInt64(v, KeyInstallationID)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Organization:   v.GetString(KeyOrgName),
		Repository:     v.GetString(KeyRepoName),
		GitHubToken:    v.GetString(KeyGitHubToken),
		AppID:          appID,
		InstallationID: installationID,
		PrivateKey:     v.GetString(KeyAppPrivateKey),
		GraphQLURL:     v.GetString(KeyGraphQLURL),
		OutputPath:     v.GetString(KeyOutput),
		Timeout:        v.GetDuration(KeyTimeout),
	}, nil
}

// getInt64 reads key as an int64. Unset and blank values yield 0.
func getInt64(v *viper.Viper, key string) (int64, error) {
	raw := v.Get(key)
	if raw == nil {
		return 0, nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return 0, nil
	}

	n, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "invalid %s", key), ErrInvalidConfig)
	}
	return n, nil
}

// Validate checks required fields and the authentication settings.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Mark(errors.Wrap(err, "invalid config"), ErrInvalidConfig)
	}
	if c.AppID != 0 && c.PrivateKey != "" && c.InstallationID == 0 {
		return errors.Mark(
			errors.New("installation_id is required when using GitHub App authentication"),
			ErrInvalidConfig,
		)
	}
	if !c.hasAppAuth() && c.GitHubToken == "" {
		return errors.Mark(
			errors.New("authentication required: provide github_token or app_id + installation_id + app_private_key"),
			ErrInvalidConfig,
		)
	}
	return nil
}

// hasAppAuth reports whether GitHub App credentials are configured.
func (c Config) hasAppAuth() bool {
	return c.AppID != 0 && c.InstallationID != 0 && c.PrivateKey != ""
}
