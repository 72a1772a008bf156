package downloads

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// LabelTotal marks the aggregate series summed across all versions.
const LabelTotal = "total"

// DateLayout is the wire and display format of a calendar day.
const DateLayout = "2006-01-02"

// Row is a single download count for one label on one UTC calendar day.
type Row struct {
	Date      time.Time // Midnight UTC of the calendar day
	Downloads int64     // Non-negative count
	Label     string    // LabelTotal or a version string
}

// String formats the row as "2025-08-08 15 total".
func (r Row) String() string {
	return fmt.Sprintf("%s %d %s", FormatDate(r.Date), r.Downloads, r.Label)
}

// Rows is a collection of download rows.
type Rows []Row

// Day truncates t to midnight of its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a calendar day. Plain "YYYY-MM-DD" is expected; RFC 3339
// timestamps are accepted and truncated to their UTC day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return Day(t), nil
}

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

type rowKey struct {
	date  time.Time
	label string
}

// Aggregate merges rows sharing a (date, label) pair by summing their
// downloads. The first occurrence of each pair fixes its position.
func Aggregate(rows Rows) Rows {
	if len(rows) == 0 {
		return rows
	}
	index := make(map[rowKey]int, len(rows))
	out := make(Rows, 0, len(rows))
	for _, r := range rows {
		r.Date = Day(r.Date)
		k := rowKey{r.Date, r.Label}
		if i, ok := index[k]; ok {
			out[i].Downloads += r.Downloads
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}

// SortByLabelDate returns a copy of rows ordered by label, then date.
func SortByLabelDate(rows Rows) Rows {
	out := make(Rows, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Labels returns the distinct labels in rows, sorted.
func Labels(rows Rows) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range rows {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Dates returns the distinct calendar days in rows, ascending.
func Dates(rows Rows) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, r := range rows {
		d := Day(r.Date)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Total sums downloads across all rows.
func (rs Rows) Total() int64 {
	var n int64
	for _, r := range rs {
		n += r.Downloads
	}
	return n
}

// NonZero returns the rows with a positive download count. A pivot
// zero-fills missing cells, so this recovers the sparse rows it came from.
func NonZero(rows Rows) Rows {
	out := make(Rows, 0, len(rows))
	for _, r := range rows {
		if r.Downloads > 0 {
			out = append(out, r)
		}
	}
	return out
}
