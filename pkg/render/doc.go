// Package render groups the output renderers for download rows.
//
// # Overview
//
//   - Tables (in [table] subpackage): plain, Markdown and CSV text
//   - Charts (in [chart] subpackage): a terminal line chart, one line per label
//
// Both consume [downloads.Rows] as produced by the pipeline package and
// apply their own ordering; neither assumes sorted input.
//
// [downloads.Rows]: github.com/matzehuels/pepystats/pkg/downloads.Rows
package render
