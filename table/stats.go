package table

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// AggregateScores derives the two ranking key columns from raw judge
// scores, prepending "avg" (mean) and "std" (population standard
// deviation) so that the table sorts by highest average first and
// breaks ties in favor of the most consistent scores. Every judge
// column must be numeric throughout.
func AggregateScores(t *Table, judgeCols []string) error {
	if len(judgeCols) == 0 {
		return fmt.Errorf("no judge columns given")
	}
	cols := make([]Column, len(judgeCols))
	for i, name := range judgeCols {
		c, ok := t.Column(name)
		if !ok {
			return fmt.Errorf("no judge column %q", name)
		}
		cols[i] = c
	}

	n := t.Rows()
	avg := make([]Value, n)
	std := make([]Value, n)
	sample := make([]float64, len(cols))
	for row := 0; row < n; row++ {
		for i, c := range cols {
			v := c.Cells[row]
			if !v.IsNumber() {
				return fmt.Errorf("judge column %q at row %d: score %q is not numeric", c.Name, row, v.String())
			}
			sample[i] = v.Float()
		}
		mean, err := stats.Mean(sample)
		if err != nil {
			return fmt.Errorf("judge scores at row %d: %w", row, err)
		}
		sd, err := stats.StandardDeviation(sample)
		if err != nil {
			return fmt.Errorf("judge scores at row %d: %w", row, err)
		}
		avg[row] = Number(mean)
		std[row] = Number(sd)
	}

	if err := t.InsertColumn(0, "avg", avg); err != nil {
		return err
	}
	return t.InsertColumn(1, "std", std)
}
