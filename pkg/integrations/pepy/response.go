package pepy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/pepystats/pkg/downloads"
)

// Envelope identifies which upstream payload shape a Response was decoded from.
type Envelope string

const (
	// EnvelopeEmpty marks a payload carrying no download data.
	EnvelopeEmpty Envelope = "empty"

	// EnvelopeDateKeyed is {"downloads": {date: {version: count}}}. A bare
	// number in place of the version map is a per-date total.
	EnvelopeDateKeyed Envelope = "date-keyed"

	// EnvelopeSeries is {"overall": {...}, "versions": [{version, dailyDownloads}]}.
	EnvelopeSeries Envelope = "series"
)

// Response is a decoded statistics payload. Both upstream envelopes decode
// into the same per-date totals and per-version series, so Overall and
// Versions do not care which endpoint produced them.
type Response struct {
	// Project is the canonical project id reported upstream, if any.
	Project string

	// TotalDownloads is the all-time count reported upstream, if any.
	TotalDownloads int64

	// Envelope records the detected payload shape.
	Envelope Envelope

	totals   []point
	versions map[string][]point
}

type point struct {
	date  time.Time
	count int64
}

// Overall returns one "total" row per date present in the payload.
// Date-keyed payloads sum each date's version counts; series payloads use
// the overall series when present and otherwise sum the version series.
func (r *Response) Overall() downloads.Rows {
	var rows downloads.Rows
	switch {
	case r.Envelope == EnvelopeDateKeyed || len(r.totals) > 0:
		for _, p := range r.totals {
			rows = append(rows, downloads.Row{Date: p.date, Downloads: p.count, Label: downloads.LabelTotal})
		}
	default:
		for _, v := range r.VersionNames() {
			for _, p := range r.versions[v] {
				rows = append(rows, downloads.Row{Date: p.date, Downloads: p.count, Label: downloads.LabelTotal})
			}
		}
	}
	return downloads.Aggregate(rows)
}

// Versions returns one row per (date, version) present in the payload,
// restricted to want when it is non-empty. Versions absent upstream
// produce no rows.
func (r *Response) Versions(want []string) downloads.Rows {
	keep := make(map[string]bool, len(want))
	for _, v := range want {
		keep[v] = true
	}
	var rows downloads.Rows
	for _, v := range r.VersionNames() {
		if len(keep) > 0 && !keep[v] {
			continue
		}
		for _, p := range r.versions[v] {
			rows = append(rows, downloads.Row{Date: p.date, Downloads: p.count, Label: v})
		}
	}
	return downloads.Aggregate(rows)
}

// VersionNames lists the versions carrying data, sorted lexically.
func (r *Response) VersionNames() []string {
	names := make([]string, 0, len(r.versions))
	for v := range r.versions {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// UnmarshalJSON detects the envelope and decodes it.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             string          `json:"id"`
		TotalDownloads count           `json:"total_downloads"`
		Downloads      json.RawMessage `json:"downloads"`
		Overall        json.RawMessage `json:"overall"`
		Versions       json.RawMessage `json:"versions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Response{
		Project:        raw.ID,
		TotalDownloads: int64(raw.TotalDownloads),
		Envelope:       EnvelopeEmpty,
		versions:       make(map[string][]point),
	}

	if isObject(raw.Downloads) {
		r.Envelope = EnvelopeDateKeyed
		return r.decodeDateKeyed(raw.Downloads)
	}

	series, err := seriesVersions(raw.Versions)
	if err != nil {
		return err
	}
	if !isPresent(raw.Overall) && series == nil {
		return nil
	}
	r.Envelope = EnvelopeSeries
	if isPresent(raw.Overall) {
		if r.totals, err = decodeOverall(raw.Overall); err != nil {
			return err
		}
	}
	for _, s := range series {
		pts, err := s.Daily.points()
		if err != nil {
			return fmt.Errorf("version %q: %w", s.Version, err)
		}
		r.versions[s.Version] = append(r.versions[s.Version], pts...)
	}
	return nil
}

func (r *Response) decodeDateKeyed(data []byte) error {
	var byDate map[string]json.RawMessage
	if err := json.Unmarshal(data, &byDate); err != nil {
		return err
	}
	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		day, err := downloads.ParseDate(k)
		if err != nil {
			return err
		}
		v := byDate[k]
		if !isObject(v) {
			var c count
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("date %s: %w", k, err)
			}
			r.totals = append(r.totals, point{date: day, count: int64(c)})
			continue
		}

		var perVersion map[string]count
		if err := json.Unmarshal(v, &perVersion); err != nil {
			return fmt.Errorf("date %s: %w", k, err)
		}
		var total int64
		for ver, c := range perVersion {
			total += int64(c)
			r.versions[ver] = append(r.versions[ver], point{date: day, count: int64(c)})
		}
		r.totals = append(r.totals, point{date: day, count: total})
	}
	return nil
}

type seriesVersion struct {
	Version string     `json:"version"`
	Daily   dailySlice `json:"dailyDownloads"`
}

type dailyPoint struct {
	Date      string `json:"date"`
	Downloads count  `json:"downloads"`
}

type dailySlice []dailyPoint

func (d dailySlice) points() ([]point, error) {
	out := make([]point, 0, len(d))
	for _, p := range d {
		day, err := downloads.ParseDate(p.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, point{date: day, count: int64(p.Downloads)})
	}
	return out, nil
}

// seriesVersions decodes a "versions" array of series objects. The v2
// payload uses the same key for a plain list of version names, which
// carries no counts and yields nil.
func seriesVersions(data json.RawMessage) ([]seriesVersion, error) {
	if !isPresent(data) {
		return nil, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}
	if len(elems) == 0 || !isObject(elems[0]) {
		return nil, nil
	}
	var out []seriesVersion
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}
	return out, nil
}

// decodeOverall accepts {"dailyDownloads": [...]} or a bare series array.
func decodeOverall(data json.RawMessage) ([]point, error) {
	var daily dailySlice
	if isObject(data) {
		var wrapped struct {
			Daily dailySlice `json:"dailyDownloads"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("overall: %w", err)
		}
		daily = wrapped.Daily
	} else if err := json.Unmarshal(data, &daily); err != nil {
		return nil, fmt.Errorf("overall: %w", err)
	}
	pts, err := daily.points()
	if err != nil {
		return nil, fmt.Errorf("overall: %w", err)
	}
	return pts, nil
}

// count is a download count that tolerates null, floats, and numeric
// strings. Negative values clamp to zero.
type count int64

func (c *count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*c = 0
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
		if s == "" {
			*c = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
			return fmt.Errorf("invalid download count %s", data)
		}
		n = int64(f)
	}
	if n < 0 {
		n = 0
	}
	*c = count(n)
	return nil
}

func isPresent(data json.RawMessage) bool {
	d := bytes.TrimSpace(data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

func isObject(data json.RawMessage) bool {
	d := bytes.TrimSpace(data)
	return len(d) > 0 && d[0] == '{'
}
