// Package cli wires the repocat commands.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/repocat-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/repocat-cli/internal/connectors/github"
	"github.com/custodia-labs/repocat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/repocat-cli/internal/core/services"
	"github.com/custodia-labs/repocat-cli/internal/logger"
)

var version = "0.1.0"

// Ports injected at wire-up. Tests pre-set these with fakes.
var (
	documentBuilder driving.DocumentBuilder
	quotaReporter   driving.QuotaReporter

	// clientCloser tears down the connection pool once the command exits.
	clientCloser interface{ Close() }
)

var (
	flagVerbose bool
	flagToken   string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "repocat",
	Short: "Flatten a GitHub repository into one prompt-ready text file",
	Long: `repocat mirrors a GitHub repository's directory tree and the contents
of its text files into a single flattened document, suitable for feeding
to a consumer that wants the whole repo in one blob.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return wire(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if clientCloser != nil {
			clientCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"Enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "",
		"GitHub access token (defaults to $GITHUB_TOKEN or the config file)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Path to the config file (default ~/.repocat/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// wire builds the production dependency graph. It leaves pre-set ports
// alone so tests can inject fakes.
func wire(cmd *cobra.Command) error {
	if documentBuilder != nil {
		return nil
	}

	settings, err := file.Load(flagConfig)
	if err != nil {
		return err
	}

	client := github.NewClient(
		resolveToken(cmd, settings),
		github.WithThrottle(settings.RequestsPerSecond),
	)
	documentBuilder = services.NewBuilder(client, services.BuilderOptions{
		Walker: services.WalkerOptions{
			Extensions: settings.Extensions,
			Exclude:    settings.Exclude,
			Gate:       settings.Concurrency,
			Inline:     settings.InlineContent,
		},
		MinRemaining: settings.MinRemaining,
	})
	quotaReporter = client
	clientCloser = client
	return nil
}

// resolveToken picks the token: flag, then environment, then config
// file, then an interactive prompt.
func resolveToken(cmd *cobra.Command, settings file.Settings) string {
	if flagToken != "" {
		return flagToken
	}
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return env
	}
	if settings.Token != "" {
		return settings.Token
	}
	return promptToken(cmd)
}

// promptToken asks for a token without echo. Non-interactive runs get an
// empty token and proceed unauthenticated.
func promptToken(cmd *cobra.Command) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ""
	}

	cmd.Print("GitHub token (blank for unauthenticated access): ")
	raw, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
