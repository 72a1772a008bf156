package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/errors"
	"github.com/matzehuels/pepystats/pkg/integrations/pepy"
	"github.com/matzehuels/pepystats/pkg/pipeline"
	"github.com/matzehuels/pepystats/pkg/render/table"
)

// statsFlags holds the flags shared by overall and versions.
type statsFlags struct {
	months      int
	granularity string
	noCI        bool
	apiKey      string
	format      string
	plot        bool
	versions    []string
}

func (f *statsFlags) bind(cmd *cobra.Command) {
	f.bindRender(cmd, pipeline.DefaultMonths)
	fl := cmd.Flags()
	fl.BoolVar(&f.noCI, "no-ci", false, "exclude CI downloads (pro API only)")
	fl.StringVar(&f.apiKey, "api-key", "", "pepy.tech API key (defaults to $"+pepy.EnvAPIKey+")")
}

// bindRender registers the flags that shape rows after they are fetched.
func (f *statsFlags) bindRender(cmd *cobra.Command, months int) {
	fl := cmd.Flags()
	fl.IntVar(&f.months, "months", months, "how many months back (0 for all time)")
	fl.StringVar(&f.granularity, "granularity", string(pipeline.DefaultGranularity), "bucket width: daily, weekly, monthly or yearly")
	fl.StringVar(&f.format, "fmt", string(table.FormatPlain), "table format: plain, md or csv")
	fl.BoolVar(&f.plot, "plot", false, "plot the series in the terminal")

	granularities := make([]string, len(downloads.Granularities))
	for i, g := range downloads.Granularities {
		granularities[i] = string(g)
	}
	formats := make([]string, len(table.Formats))
	for i, fm := range table.Formats {
		formats[i] = string(fm)
	}
	_ = cmd.RegisterFlagCompletionFunc("granularity", cobra.FixedCompletions(granularities, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("fmt", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))
}

// applyConfig fills flags the user did not set from the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, f *statsFlags) {
	cfg := c.config()
	changed := cmd.Flags().Changed
	if !changed("months") {
		f.months = cfg.Months(f.months)
	}
	if !changed("granularity") {
		f.granularity = cfg.Granularity(f.granularity)
	}
	if !changed("fmt") {
		f.format = cfg.Format(f.format)
	}
	if !changed("no-ci") && cmd.Flags().Lookup("no-ci") != nil {
		f.noCI = !cfg.IncludeCI(!f.noCI)
	}
}

// overallCommand creates the overall command.
func (c *CLI) overallCommand() *cobra.Command {
	var f statsFlags

	cmd := &cobra.Command{
		Use:   "overall <project>",
		Short: "Overall downloads across all versions",
		Long: `Print daily downloads summed over every version of a PyPI project.

Examples:
  pepystats overall requests
  pepystats overall requests --months 12 --granularity monthly --fmt md
  pepystats overall requests --months 0 --fmt csv -o requests.csv`,
		Args: projectArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &f)
			return c.runStats(cmd, pipeline.Options{Project: args[0], Mode: pipeline.ModeOverall}, &f)
		},
	}
	f.bind(cmd)
	return cmd
}

// versionsCommand creates the versions command.
func (c *CLI) versionsCommand() *cobra.Command {
	var f statsFlags

	cmd := &cobra.Command{
		Use:   "versions <project> --versions V [V ...]",
		Short: "Per-version downloads for specified versions",
		Long: `Print daily downloads for selected versions of a PyPI project, one
column per version.

Versions may be repeated, comma-separated, or listed after --versions:
  pepystats versions requests --versions 2.32.3 2.32.2
  pepystats versions requests --versions 2.32.3,2.32.2 --granularity weekly`,
		Args: projectArgs(1, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("versions") {
				return errors.Argument("versions requires --versions (one or more version strings)")
			}
			versions := cleanVersions(append(append([]string(nil), f.versions...), args[1:]...))
			if len(versions) == 0 {
				return errors.Argument("--versions needs at least one non-empty version")
			}
			c.applyConfig(cmd, &f)
			return c.runStats(cmd, pipeline.Options{Project: args[0], Mode: pipeline.ModeVersions, Versions: versions}, &f)
		},
	}
	f.bind(cmd)
	cmd.Flags().StringSliceVar(&f.versions, "versions", nil, "one or more version strings")
	return cmd
}

// runStats executes the pipeline and writes the table, then the plot.
// Nothing is written to the output when any stage fails.
func (c *CLI) runStats(cmd *cobra.Command, opts pipeline.Options, f *statsFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	g, err := downloads.ParseGranularity(f.granularity)
	if err != nil {
		return err
	}
	format, err := table.ParseFormat(f.format)
	if err != nil {
		return err
	}
	client, err := c.newClient(f.apiKey)
	if err != nil {
		return err
	}
	if f.noCI && client.API() == pepy.APIv2 {
		logger.Debug("--no-ci has no effect on the v2 API")
	}

	opts.Months = f.months
	opts.Granularity = g
	opts.ExcludeCI = f.noCI

	prog := newProgress(logger)
	var spin *Spinner
	if c.Interactive {
		spin = newSpinnerWithContext(ctx, c.Err, fmt.Sprintf("Fetching %s downloads...", opts.Project))
		spin.Start()
	}
	res, err := c.newRunner(client, logger).Execute(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Fetched %s: %d rows", res.Project, len(res.Rows)))
	if c.Interactive && res.TotalDownloads > 0 {
		printInfo(c.Err, "%s all-time downloads of %s", StyleNumber.Render(fmt.Sprint(res.TotalDownloads)), res.Project)
	}

	if err := c.writeTable(res.Rows, format); err != nil {
		return err
	}
	return c.plot(ctx, f.plot, res.Project, res.Rows)
}

// plot opens the chart view when requested and there is something to draw.
func (c *CLI) plot(ctx context.Context, want bool, title string, rows downloads.Rows) error {
	if !want || len(rows) == 0 {
		return nil
	}
	if !c.Interactive {
		printWarning(c.Err, "--plot needs an interactive terminal, skipped")
		return nil
	}
	return runPlot(ctx, c.In, c.Out, title, rows)
}

func (c *CLI) writeTable(rows downloads.Rows, format table.Format) error {
	if c.global.output == "" {
		return table.Write(c.Out, rows, format)
	}

	file, err := os.Create(c.global.output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "create %s", c.global.output)
	}
	if err := table.Write(file, rows, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	printSuccess(c.Err, "Wrote %s", c.global.output)
	return nil
}

// projectArgs validates positional arguments; max < 0 means unbounded.
func projectArgs(min, max int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < min {
			return errors.Argument("missing project name")
		}
		if max >= 0 && len(args) > max {
			return errors.Argument("expected one project name, got %d arguments", len(args))
		}
		return nil
	}
}

// cleanVersions trims and de-duplicates versions, keeping first-seen order.
func cleanVersions(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
