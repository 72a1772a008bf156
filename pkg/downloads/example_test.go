package downloads_test

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/pepystats/pkg/downloads"
)

func ExampleResample() {
	start := time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)
	var rows downloads.Rows
	for i := 0; i < 10; i++ {
		rows = append(rows, downloads.Row{Date: start.AddDate(0, 0, i), Downloads: 1, Label: "total"})
	}

	for _, r := range downloads.Resample(rows, downloads.Weekly) {
		fmt.Println(r)
	}
	// Output:
	// 2025-08-09 7 total
	// 2025-08-16 3 total
}

func ExampleTrim() {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC))
	rows := downloads.Rows{
		{Date: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), Downloads: 1, Label: "total"},
		{Date: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), Downloads: 2, Label: "total"},
	}

	for _, r := range downloads.Trim(rows, 1, clock) {
		fmt.Println(r)
	}
	// Output:
	// 2025-07-10 2 total
}
