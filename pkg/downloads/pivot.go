package downloads

import "time"

// Matrix is a dense date × label view of a row set. Missing combinations
// hold zero.
type Matrix struct {
	Dates  []time.Time // Ascending
	Labels []string    // Sorted
	Values [][]int64   // Values[dateIdx][labelIdx]
}

// Pivot reshapes rows into a Matrix, summing duplicate (date, label) cells.
func Pivot(rows Rows) *Matrix {
	m := &Matrix{
		Dates:  Dates(rows),
		Labels: Labels(rows),
	}
	dateIdx := make(map[time.Time]int, len(m.Dates))
	for i, d := range m.Dates {
		dateIdx[d] = i
	}
	labelIdx := make(map[string]int, len(m.Labels))
	for i, l := range m.Labels {
		labelIdx[l] = i
	}

	m.Values = make([][]int64, len(m.Dates))
	for i := range m.Values {
		m.Values[i] = make([]int64, len(m.Labels))
	}
	for _, r := range rows {
		m.Values[dateIdx[Day(r.Date)]][labelIdx[r.Label]] += r.Downloads
	}
	return m
}

// Empty reports whether the matrix has no cells.
func (m *Matrix) Empty() bool {
	return len(m.Dates) == 0 || len(m.Labels) == 0
}

// Series returns the column for label in date order, or nil if absent.
func (m *Matrix) Series(label string) []int64 {
	for j, l := range m.Labels {
		if l != label {
			continue
		}
		col := make([]int64, len(m.Dates))
		for i := range m.Dates {
			col[i] = m.Values[i][j]
		}
		return col
	}
	return nil
}

// Rows flattens the matrix back into long form. Zero-filled cells become
// rows too.
func (m *Matrix) Rows() Rows {
	out := make(Rows, 0, len(m.Dates)*len(m.Labels))
	for i, d := range m.Dates {
		for j, l := range m.Labels {
			out = append(out, Row{Date: d, Downloads: m.Values[i][j], Label: l})
		}
	}
	return out
}
