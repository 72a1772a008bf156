package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/errors"
	"github.com/matzehuels/pepystats/pkg/render/table"
)

// replayCommand creates the replay command, which re-renders a saved CSV.
func (c *CLI) replayCommand() *cobra.Command {
	var f statsFlags

	cmd := &cobra.Command{
		Use:   "replay <file.csv>",
		Short: "Re-render downloads saved with --fmt csv",
		Long: `Read a table written with --fmt csv and print it again, optionally
trimmed, resampled or in another format. No request is made.

Examples:
  pepystats overall requests --months 0 --fmt csv -o requests.csv
  pepystats replay requests.csv --granularity monthly --fmt md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &f)
			if !cmd.Flags().Changed("months") {
				f.months = 0
			}
			return c.runReplay(cmd, args[0], &f)
		},
	}
	f.bindRender(cmd, 0)
	return cmd
}

func (c *CLI) runReplay(cmd *cobra.Command, path string, f *statsFlags) error {
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

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "open %s", path)
	}
	defer file.Close()

	rows, err := table.ParseCSV(file)
	if err != nil {
		return err
	}
	rows = downloads.NonZero(rows)
	logger.Debug("read saved table", "path", path, "rows", len(rows))

	runner := c.newRunner(nil, logger)
	rows = runner.Trim(ctx, rows, f.months)
	rows = runner.Resample(ctx, rows, g)

	if err := c.writeTable(rows, format); err != nil {
		return err
	}
	return c.plot(ctx, f.plot, path, rows)
}
