package table_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/render/table"
)

func ExampleCSV() {
	rows := downloads.Rows{
		{Date: time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC), Downloads: 10, Label: "2.3.0"},
		{Date: time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC), Downloads: 5, Label: "2.2.0"},
		{Date: time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC), Downloads: 4, Label: "2.3.0"},
	}
	out, _ := table.CSV(rows)
	fmt.Print(out)
	// Output:
	// date,2.2.0,2.3.0
	// 2025-08-08,5,10
	// 2025-08-09,0,4
}
