// Package cli implements the pepystats command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pepystats/pkg/buildinfo"
	"github.com/matzehuels/pepystats/pkg/config"
	"github.com/matzehuels/pepystats/pkg/errors"
	"github.com/matzehuels/pepystats/pkg/integrations/pepy"
	"github.com/matzehuels/pepystats/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "pepystats"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives rendered tables; Err receives status lines and the spinner.
	Out io.Writer
	Err io.Writer
	In  io.Reader

	// Clock supplies "now" for the months-back window.
	Clock clockwork.Clock

	// Interactive enables the spinner and the --plot view.
	Interactive bool

	global globalFlags
	cfg    *config.Config
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		Out:         os.Stdout,
		Err:         w,
		In:          os.Stdin,
		Clock:       clockwork.NewRealClock(),
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "pepy.tech download statistics from the command line",
		Long:              `pepystats fetches PyPI download statistics from pepy.tech and prints them as tables or a terminal chart.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	c.bindGlobalFlags(root)

	// Register all subcommands
	root.AddCommand(c.overallCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client & Runner Factory
// =============================================================================

// config returns the loaded configuration, or an empty one before preRun.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return &config.Config{}
	}
	return c.cfg
}

// newClient builds the pepy.tech client from flags, environment and config.
func (c *CLI) newClient(apiKey string) (*pepy.Client, error) {
	cfg := c.config()

	api, err := pepy.ParseAPIVersion(firstNonEmpty(c.global.api, cfg.API))
	if err != nil {
		return nil, err
	}
	base := firstNonEmpty(c.global.baseURL, cfg.BaseURL, pepy.DefaultBaseURL)
	if err := errors.ValidateURL(base); err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	return pepy.NewClient(pepy.Options{
		BaseURL: base,
		API:     api,
		APIKey:  pepy.ResolveAPIKey(apiKey, cfg.APIKey),
		Timeout: timeout,
	}), nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(f pipeline.Fetcher, logger *log.Logger) *pipeline.Runner {
	return pipeline.NewRunner(f, c.Clock, logger)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
