package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pepystats/pkg/config"
	"github.com/matzehuels/pepystats/pkg/integrations/pepy"
	"github.com/matzehuels/pepystats/pkg/observability"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	api        string
	baseURL    string
	output     string
}

func (c *CLI) bindGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&c.global.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pepystats/config.toml)")
	pf.StringVar(&c.global.api, "api", "", "pepy.tech API generation: v2 or pro (default v2)")
	pf.StringVar(&c.global.baseURL, "base-url", "", "pepy.tech API base URL (default "+pepy.DefaultBaseURL+")")
	pf.StringVarP(&c.global.output, "output", "o", "", "write the table to this file instead of stdout")

	_ = root.RegisterFlagCompletionFunc("api", cobra.FixedCompletions(
		[]string{string(pepy.APIv2), string(pepy.APIPro)}, cobra.ShellCompDirectiveNoFileComp))
}

// preRun loads the config file, registers the debug-log hooks and attaches
// the logger to the command context.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, including every HTTP request
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.global.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	for _, k := range cfg.Unknown {
		c.Logger.Warn("unknown config key", "key", k)
	}

	hooks := &logHooks{logger: c.Logger}
	observability.SetHTTPHooks(hooks)
	observability.SetPipelineHooks(hooks)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}
