package table

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/errors"
)

// CSV renders the pivoted rows with a "date,<label>..." header.
// An empty row set renders as the empty string.
func CSV(rows downloads.Rows) (string, error) {
	m := downloads.Pivot(rows)
	if m.Empty() {
		return "", nil
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(header(m)); err != nil {
		return "", err
	}
	if err := w.WriteAll(body(m)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ParseCSV reads a table written by CSV back into long-form rows, one per
// cell. Zero-filled cells come back as zero-count rows.
func ParseCSV(r io.Reader) (downloads.Rows, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read csv")
	}
	if len(records) == 0 {
		return nil, nil
	}

	head := records[0]
	if len(head) == 0 || head[0] != dateHeader {
		return nil, errors.New(errors.ErrCodeDecode, "csv header must start with %q", dateHeader)
	}
	labels := head[1:]

	var rows downloads.Rows
	for line, rec := range records[1:] {
		date, err := downloads.ParseDate(rec[0])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "csv line %d", line+2)
		}
		for j, label := range labels {
			n, err := strconv.ParseInt(strings.TrimSpace(rec[j+1]), 10, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeDecode, err, "csv line %d column %q", line+2, label)
			}
			rows = append(rows, downloads.Row{Date: date, Downloads: n, Label: label})
		}
	}
	return rows, nil
}
