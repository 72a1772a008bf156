package downloads

import (
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/pepystats/pkg/errors"
)

// Granularity is the bucket width used when resampling a daily series.
type Granularity string

// Supported granularities.
const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Granularities lists the supported values in increasing bucket width.
var Granularities = []Granularity{Daily, Weekly, Monthly, Yearly}

// ParseGranularity validates s (case-insensitive).
func ParseGranularity(s string) (Granularity, error) {
	if g := Granularity(strings.ToLower(strings.TrimSpace(s))); g.Valid() {
		return g, nil
	}
	return "", errors.Argument("invalid granularity %q (must be daily, weekly, monthly or yearly)", s)
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	for _, v := range Granularities {
		if g == v {
			return true
		}
	}
	return false
}

// Bucket returns the reporting date of the bucket containing day.
// Weeks run Sunday through Saturday and report their closing Saturday;
// months and years report their first day. Daily and unknown values
// return the day itself.
func (g Granularity) Bucket(day time.Time) time.Time {
	day = Day(day)
	switch g {
	case Weekly:
		return day.AddDate(0, 0, int(time.Saturday-day.Weekday()))
	case Monthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// Resample sums downloads per label into g-sized buckets. Buckets without
// contributing rows are omitted. Output is ordered by label, then date.
//
// Daily is a passthrough. An unknown granularity also returns rows
// unchanged; callers that take user input validate with ParseGranularity.
func Resample(rows Rows, g Granularity) Rows {
	switch g {
	case Weekly, Monthly, Yearly:
	default:
		return rows
	}
	if len(rows) == 0 {
		return rows
	}

	byLabel := make(map[string]Rows)
	for _, r := range rows {
		byLabel[r.Label] = append(byLabel[r.Label], r)
	}

	out := make(Rows, 0, len(rows))
	for _, label := range Labels(rows) {
		part := byLabel[label]
		sort.SliceStable(part, func(i, j int) bool { return part[i].Date.Before(part[j].Date) })

		start := len(out)
		for _, r := range part {
			b := g.Bucket(r.Date)
			if n := len(out); n > start && out[n-1].Date.Equal(b) {
				out[n-1].Downloads += r.Downloads
				continue
			}
			out = append(out, Row{Date: b, Downloads: r.Downloads, Label: label})
		}
	}
	return out
}
