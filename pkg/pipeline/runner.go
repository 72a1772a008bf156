package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/integrations/pepy"
	"github.com/matzehuels/pepystats/pkg/observability"
)

// Fetcher retrieves a raw statistics payload. *pepy.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, project string, p pepy.Params) (*pepy.Response, error)
}

// Runner executes the pipeline.
//
// The Runner is stateless apart from its collaborators, so one Runner can
// serve any number of runs.
type Runner struct {
	Fetcher Fetcher
	Clock   clockwork.Clock
	Logger  *log.Logger
}

// NewRunner creates a runner.
// If clock is nil, the real clock is used.
// If logger is nil, log output is discarded.
func NewRunner(f Fetcher, clock clockwork.Clock, logger *log.Logger) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Fetcher: f,
		Clock:   clock,
		Logger:  logger,
	}
}

// Execute runs fetch → normalize → trim → resample.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, opts.Project)
	start := r.Clock.Now()
	resp, err := r.Fetcher.Fetch(ctx, opts.Project, opts.Params())
	elapsed := r.Clock.Since(start)
	if err != nil {
		hooks.OnFetchComplete(ctx, opts.Project, 0, elapsed, err)
		return nil, err
	}
	rows := r.Normalize(resp, opts)
	hooks.OnFetchComplete(ctx, opts.Project, len(rows), elapsed, nil)

	r.Logger.Debug("fetched payload",
		"project", opts.Project,
		"envelope", resp.Envelope,
		"versions", len(resp.VersionNames()),
		"duration", elapsed.Round(time.Millisecond))

	result := &Result{
		Project:        opts.Project,
		TotalDownloads: resp.TotalDownloads,
		Envelope:       resp.Envelope,
		Stats:          Stats{FetchTime: elapsed, Fetched: len(rows)},
	}
	if resp.Project != "" {
		result.Project = resp.Project
	}

	rows = r.Trim(ctx, rows, opts.Months)
	result.Stats.Trimmed = len(rows)
	if opts.Months > 0 {
		result.Cutoff = downloads.Cutoff(r.Clock.Now(), opts.Months)
	}

	rows = r.Resample(ctx, rows, opts.Granularity)
	result.Stats.Resampled = len(rows)
	result.Rows = rows

	r.Logger.Debug("prepared downloads",
		"project", result.Project,
		"rows", len(rows),
		"labels", len(downloads.Labels(rows)))
	return result, nil
}

// Overall is Execute in ModeOverall, returning only the rows.
func (r *Runner) Overall(ctx context.Context, project string, opts Options) (downloads.Rows, error) {
	opts.Project, opts.Mode = project, ModeOverall
	res, err := r.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Versions is Execute in ModeVersions, returning only the rows.
func (r *Runner) Versions(ctx context.Context, project string, versions []string, opts Options) (downloads.Rows, error) {
	opts.Project, opts.Mode, opts.Versions = project, ModeVersions, versions
	res, err := r.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Normalize reduces resp to the rows opts asks for.
func (r *Runner) Normalize(resp *pepy.Response, opts Options) downloads.Rows {
	if opts.Mode == ModeVersions {
		rows := resp.Versions(opts.Versions)
		present := make(map[string]bool)
		for _, l := range downloads.Labels(rows) {
			present[l] = true
		}
		for _, v := range opts.Versions {
			if !present[v] {
				r.Logger.Warn("version has no downloads in response", "version", v)
			}
		}
		return rows
	}
	return resp.Overall()
}

// Trim applies the months-back window against the runner's clock.
func (r *Runner) Trim(ctx context.Context, rows downloads.Rows, months int) downloads.Rows {
	out := downloads.Trim(rows, months, r.Clock)
	observability.Pipeline().OnStage(ctx, "trim", len(rows), len(out))
	return out
}

// Resample buckets rows at g.
func (r *Runner) Resample(ctx context.Context, rows downloads.Rows, g downloads.Granularity) downloads.Rows {
	if !g.Valid() {
		r.Logger.Warn("unknown granularity, rows left as daily", "granularity", g)
	}
	out := downloads.Resample(rows, g)
	observability.Pipeline().OnStage(ctx, "resample", len(rows), len(out))
	return out
}
