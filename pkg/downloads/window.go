package downloads

import "time"

// Clock supplies the current time. clockwork.Clock satisfies it.
type Clock interface {
	Now() time.Time
}

// SubtractMonths moves t back n calendar months, keeping the day of month
// and clamping it to the last day of the target month. The result is a
// UTC calendar day.
func SubtractMonths(t time.Time, n int) time.Time {
	y, m, d := t.UTC().Date()
	idx := y*12 + int(m) - 1 - n
	ty, tm := idx/12, time.Month(idx%12+1)
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Cutoff returns the first day kept by a months-back window ending today.
func Cutoff(now time.Time, months int) time.Time {
	return SubtractMonths(Day(now), months)
}

// Trim keeps rows dated on or after the day that lies months calendar
// months before today (UTC). A non-positive months returns rows unchanged.
func Trim(rows Rows, months int, clock Clock) Rows {
	if months <= 0 || len(rows) == 0 {
		return rows
	}
	cutoff := Cutoff(clock.Now(), months)
	out := make(Rows, 0, len(rows))
	for _, r := range rows {
		if !Day(r.Date).Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}
