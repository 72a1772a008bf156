// Package downloads holds the row model for download-count time series and
// the transformations applied to it.
//
// # Rows
//
// A [Row] is one (date, downloads, label) triple. Label is either
// [LabelTotal] for the aggregate series or a version string. A [Rows]
// value is a table, not an ordered list: functions that care about order
// sort explicitly.
//
// # Transformations
//
//   - [Trim]: keep the last N calendar months relative to a [Clock]
//   - [Resample]: sum daily counts into weekly, monthly or yearly buckets
//   - [Pivot]: reshape into a dense date × label [Matrix]
//
// Dates are always UTC calendar days; use [Day] to normalize a timestamp
// and [ParseDate] to read one from an API payload.
package downloads
