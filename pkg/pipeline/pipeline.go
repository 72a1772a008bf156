// Package pipeline provides the fetch → normalize → trim → resample pipeline
// behind every pepystats command.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: One GET against pepy.tech
//  2. Normalize: Reduce the payload to (date, downloads, label) rows
//  3. Trim: Keep rows within the last N calendar months of "now"
//  4. Resample: Sum rows into weekly, monthly or yearly buckets per label
//
// Rendering is left to the caller (see the render packages).
//
// # Usage
//
//	runner := pipeline.NewRunner(pepy.NewClient(pepy.Options{}), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Project:     "requests",
//	    Months:      3,
//	    Granularity: downloads.Weekly,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Rows)
package pipeline

import (
	"strings"
	"time"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/errors"
	"github.com/matzehuels/pepystats/pkg/integrations/pepy"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMonths is the default months-back window.
	DefaultMonths = 3

	// DefaultGranularity is the default bucket width.
	DefaultGranularity = downloads.Daily
)

// Mode selects which series a run produces.
type Mode string

const (
	// ModeOverall produces one "total" series.
	ModeOverall Mode = "overall"

	// ModeVersions produces one series per requested version.
	ModeVersions Mode = "versions"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the configuration for one pipeline run.
type Options struct {
	Project  string
	Mode     Mode
	Versions []string // required for ModeVersions

	// Months is the months-back window; <= 0 keeps everything.
	Months int

	// Granularity defaults to daily. Unknown values leave rows unbucketed.
	Granularity downloads.Granularity

	// ExcludeCI drops CI-attributed downloads where the endpoint supports it.
	ExcludeCI bool

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Rows is the trimmed, resampled row set.
	Rows downloads.Rows

	// Project is the project id reported upstream, or the requested name.
	Project string

	// TotalDownloads is the all-time count reported upstream, if any.
	TotalDownloads int64

	// Envelope is the detected payload shape.
	Envelope pepy.Envelope

	// Cutoff is the first day kept by Trim; zero when nothing was trimmed.
	Cutoff time.Time

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Fetched   int // rows after normalization
	Trimmed   int // rows after the window filter
	Resampled int // rows after bucketing
	FetchTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Project = strings.TrimSpace(o.Project)
	if err := errors.ValidateProjectName(o.Project); err != nil {
		return err
	}
	if o.Mode == "" {
		o.Mode = ModeOverall
	}
	switch o.Mode {
	case ModeOverall:
	case ModeVersions:
		if len(o.Versions) == 0 {
			return errors.Argument("at least one version is required")
		}
		for _, v := range o.Versions {
			if err := errors.ValidateVersion(v); err != nil {
				return err
			}
		}
	default:
		return errors.Argument("invalid mode %q (must be overall or versions)", o.Mode)
	}
	if o.Granularity == "" {
		o.Granularity = DefaultGranularity
	}
	o.validated = true
	return nil
}

// Params returns the upstream request hints for these options.
func (o *Options) Params() pepy.Params {
	p := pepy.Params{
		TimeRange:   pepy.TimeRange(o.Months),
		Granularity: o.Granularity,
		IncludeCI:   !o.ExcludeCI,
	}
	if o.Mode == ModeVersions {
		p.Versions = o.Versions
		p.Category = "version"
	}
	return p
}
