// Package cmd implements the factiva command line tool, a thin front end over
// the client helper packages.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dowjones/factiva-core-go/config"
	"github.com/dowjones/factiva-core-go/observability"
	"github.com/dowjones/factiva-core-go/observability/types"
	"github.com/dowjones/factiva-core-go/request"
	"github.com/dowjones/factiva-core-go/tools"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

var rootCmd = &cobra.Command{
	Use:   "factiva",
	Short: "A CLI helper for the Factiva news-data API",
	Long: `factiva is a small command-line helper over the Factiva snapshot,
extraction and taxonomy endpoints.

The account API key is read from the FACTIVA_USERKEY environment variable
(or a .env file in the working directory).

Examples:
  factiva taxonomy
  factiva taxonomy download industries csv --dir ./taxonomies
  factiva download https://api.dowjones.com/alpha/taxonomies/regions/csv --name regions --ext csv`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// deps bundles everything a command invocation needs.
type deps struct {
	client  *request.Client
	headers map[string]string
	host    string
	obs     types.Provider
}

// buildDeps resolves configuration and constructs the shared dispatcher plus
// the authentication headers for a command invocation.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	provider, err := config.NewEnvProvider()
	if err != nil {
		return nil, err
	}

	userKey, err := config.LoadVariable(provider, config.KeyUserKey)
	if err != nil {
		return nil, fmt.Errorf("%w (set FACTIVA_USERKEY)", err)
	}

	logLevel := config.LoadVariableDefault(provider, config.KeyLogLevel, "warn")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}

	obs := observability.NewProvider(observability.Config{
		ServiceName: "factiva_cli",
		LogLevel:    logLevel,
		LogOutput:   os.Stderr,
	})

	dimColor.Fprintf(os.Stderr, "using key %s\n", tools.MaskWordDefault(userKey))

	return &deps{
		client:  request.NewClient(request.DefaultClientConfig(), provider, obs),
		headers: map[string]string{request.UserKeyHeader: userKey},
		host:    config.LoadVariableDefault(provider, config.KeyAPIHost, request.DefaultAPIHost),
		obs:     obs,
	}, nil
}

func fail(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
