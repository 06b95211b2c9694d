// codescanning-report writes the code scanning alerts of a GitHub repository
// to a markdown report.
//
// It is designed to run as a GitHub Action step: inputs arrive as INPUT_*
// environment variables and every input can also be passed as a flag.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/locktivity/codescanning-report/internal/github"
	"github.com/locktivity/codescanning-report/internal/logging"
	"github.com/locktivity/codescanning-report/internal/report"
	"github.com/locktivity/codescanning-report/internal/reporter"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	os.Exit(execute(newRootCmd(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs cmd and returns the process exit code. Every error is printed
// to stderr here and nowhere else.
func execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	v := reporter.NewViper()
	var envFile string

	cmd := &cobra.Command{
		Use:           "codescanning-report",
		Short:         "Write the code scanning alerts of a repository to a markdown report",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return errors.Wrapf(err, "failed to load env file %s", envFile)
				}
			}
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", "", "dotenv file to load before reading INPUT_* variables")
	flags.String(reporter.KeyOrgName, "", "repository owner (INPUT_ORG_NAME)")
	flags.String(reporter.KeyRepoName, "", "repository name (INPUT_REPO_NAME)")
	flags.String(reporter.KeyGitHubToken, "", "token used as bearer credential (INPUT_GITHUB_TOKEN)")
	flags.Int64(reporter.KeyAppID, 0, "GitHub App ID (INPUT_APP_ID)")
	flags.Int64(reporter.KeyInstallationID, 0, "GitHub App installation ID (INPUT_INSTALLATION_ID)")
	flags.String(reporter.KeyAppPrivateKey, "", "GitHub App private key in PEM format (INPUT_APP_PRIVATE_KEY)")
	flags.String(reporter.KeyGraphQLURL, github.DefaultGraphQLURL, "GraphQL endpoint (INPUT_GRAPHQL_URL)")
	flags.StringP(reporter.KeyOutput, "o", report.DefaultFilename, "report file (INPUT_OUTPUT)")
	flags.Duration(reporter.KeyTimeout, reporter.DefaultTimeout, "request timeout (INPUT_TIMEOUT)")
	flags.String(reporter.KeyLogLevel, logging.DefaultLevel, "log level (INPUT_LOG_LEVEL)")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "env-file" {
			return
		}
		// Only fails for a nil flag.
		_ = v.BindPFlag(f.Name, f)
	})

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	logger, err := logging.NewWithWriter(v.GetString(reporter.KeyLogLevel), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	config, err := reporter.LoadConfig(v)
	if err != nil {
		return err
	}
	config.Out = cmd.OutOrStdout()
	config.OnStatus = func(message string) {
		logger.Info(message)
	}

	r, err := reporter.New(config, logger)
	if err != nil {
		return err
	}

	_, err = r.Run(cmd.Context())
	return err
}
