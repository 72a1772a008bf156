// Package pkg provides the libraries behind pepystats.
//
// # Overview
//
// pepystats turns pepy.tech download statistics into tables and terminal
// charts. The pkg directory is organized into these areas:
//
//  1. [downloads] - The row model and its date arithmetic (trim, resample, pivot)
//  2. [integrations] - HTTP clients, with the pepy.tech client in [integrations/pepy]
//  3. [pipeline] - Orchestration (fetch → normalize → trim → resample)
//  4. [render] - Table and chart output
//  5. [config], [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The data flow for one invocation:
//
//	pepy.tech JSON
//	      ↓
//	 [integrations/pepy] (fetch, detect envelope, normalize)
//	      ↓
//	 [downloads] (trim to N months, resample per label)
//	      ↓
//	 [render/table] or [render/chart]
//
// # Quick Start
//
//	client := pepy.NewClient(pepy.Options{APIKey: os.Getenv(pepy.EnvAPIKey)})
//	runner := pipeline.NewRunner(client, nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Project:     "requests",
//	    Months:      3,
//	    Granularity: downloads.Weekly,
//	})
//	if err != nil {
//	    return err
//	}
//	out, _ := table.CSV(res.Rows)
//
// [downloads]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/downloads
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/integrations
// [integrations/pepy]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/integrations/pepy
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/render
// [render/table]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/render/table
// [render/chart]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/render/chart
// [config]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pepystats/pkg/buildinfo
package pkg
