package downloads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-08-08")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-08-08T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-09", FormatDate(d))

	_, err = ParseDate("08/08/2025")
	assert.Error(t, err)
}

func TestAggregate_SumsDuplicates(t *testing.T) {
	rows := Rows{
		{Date: day("2025-08-08"), Downloads: 10, Label: "total"},
		{Date: day("2025-08-09"), Downloads: 1, Label: "total"},
		{Date: day("2025-08-08"), Downloads: 5, Label: "total"},
		{Date: day("2025-08-08"), Downloads: 7, Label: "1.0"},
	}

	got := Aggregate(rows)
	assert.Equal(t, Rows{
		{Date: day("2025-08-08"), Downloads: 15, Label: "total"},
		{Date: day("2025-08-09"), Downloads: 1, Label: "total"},
		{Date: day("2025-08-08"), Downloads: 7, Label: "1.0"},
	}, got)
}

func TestSortByLabelDate(t *testing.T) {
	rows := Rows{
		{Date: day("2025-08-09"), Downloads: 1, Label: "B"},
		{Date: day("2025-08-09"), Downloads: 2, Label: "A"},
		{Date: day("2025-08-08"), Downloads: 3, Label: "A"},
	}

	got := SortByLabelDate(rows)
	assert.Equal(t, "A", got[0].Label)
	assert.Equal(t, "2025-08-08", FormatDate(got[0].Date))
	assert.Equal(t, "B", got[2].Label)
	assert.Equal(t, "B", rows[0].Label, "input must not be reordered")
}

func TestLabelsAndDates(t *testing.T) {
	rows := Rows{
		{Date: day("2025-08-09"), Label: "2.0"},
		{Date: day("2025-08-08"), Label: "1.0"},
		{Date: day("2025-08-09"), Label: "1.0"},
	}

	assert.Equal(t, []string{"1.0", "2.0"}, Labels(rows))
	dates := Dates(rows)
	require.Len(t, dates, 2)
	assert.True(t, dates[0].Before(dates[1]))
	assert.Equal(t, int64(0), rows.Total())
}

func TestPivot(t *testing.T) {
	rows := Rows{
		{Date: day("2025-08-08"), Downloads: 1, Label: "A"},
		{Date: day("2025-08-08"), Downloads: 2, Label: "B"},
		{Date: day("2025-08-09"), Downloads: 3, Label: "A"},
		{Date: day("2025-08-09"), Downloads: 4, Label: "A"},
	}

	m := Pivot(rows)
	assert.Equal(t, []string{"A", "B"}, m.Labels)
	require.Len(t, m.Dates, 2)
	assert.Equal(t, [][]int64{{1, 2}, {7, 0}}, m.Values)
	assert.Equal(t, []int64{2, 0}, m.Series("B"))
	assert.Nil(t, m.Series("C"))
	assert.Len(t, m.Rows(), 4)
	assert.False(t, m.Empty())
	assert.True(t, Pivot(nil).Empty())
}

func TestNonZeroUndoesPivotFill(t *testing.T) {
	rows := Rows{
		{Date: day("2025-08-08"), Downloads: 5, Label: "A"},
		{Date: day("2025-08-09"), Downloads: 4, Label: "B"},
	}
	filled := Pivot(rows).Rows()
	require.Len(t, filled, 4)

	assert.Equal(t, rows, SortByLabelDate(NonZero(filled)))
}
