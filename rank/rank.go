// Package rank assigns competition-style ranks to table rows from the
// first two columns: primary key descending, secondary key ascending.
package rank

import (
	"fmt"
	"sort"

	"github.com/aerissecure/deckgen/table"
)

// Options configures rank computation.
type Options struct {
	// EmptyAsZero treats empty cells in the two sorting columns as 0
	// instead of failing. Off by default; callers opt in.
	EmptyAsZero bool
}

// InvalidColumnError reports a sorting column that cannot be ranked.
// Row is the zero-based data row index, or -1 when the table itself is
// malformed.
type InvalidColumnError struct {
	Row    int
	Column string
	Reason string
}

func (e *InvalidColumnError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("invalid ranking column: %s", e.Reason)
	}
	return fmt.Sprintf("invalid ranking column %q at row %d: %s", e.Column, e.Row, e.Reason)
}

// Compute returns one rank per row, in input row order.
//
// Rows are ordered by the first column descending, then the second
// column ascending. Ranks follow standard competition ("1224")
// numbering: rows with an identical key pair share a rank, and the next
// distinct pair picks up after the tie group. Tie detection compares
// float values exactly; callers wanting fuzzy ties pre-round their keys.
func Compute(t *table.Table, opts Options) ([]int, error) {
	if t.Cols() < 2 {
		return nil, &InvalidColumnError{Row: -1, Reason: "table needs at least two sorting columns"}
	}

	n := t.Rows()
	primary, err := sortKeys(t.ColumnAt(0), opts)
	if err != nil {
		return nil, err
	}
	secondary, err := sortKeys(t.ColumnAt(1), opts)
	if err != nil {
		return nil, err
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if primary[i] != primary[j] {
			return primary[i] > primary[j]
		}
		return secondary[i] < secondary[j]
	})

	ranks := make([]int, n)
	for pos, i := range order {
		if pos > 0 {
			prev := order[pos-1]
			if primary[i] == primary[prev] && secondary[i] == secondary[prev] {
				ranks[i] = ranks[prev]
				continue
			}
		}
		ranks[i] = pos + 1
	}
	return ranks, nil
}

// Annotate computes ranks and writes them into the reserved rank
// column. The returned slice matches input row order.
func Annotate(t *table.Table, opts Options) ([]int, error) {
	ranks, err := Compute(t, opts)
	if err != nil {
		return nil, err
	}
	cells := make([]table.Value, len(ranks))
	for i, r := range ranks {
		cells[i] = table.Number(float64(r))
	}
	if err := t.AddColumn(table.RankColumn, cells); err != nil {
		return nil, err
	}
	return ranks, nil
}

func sortKeys(col table.Column, opts Options) ([]float64, error) {
	keys := make([]float64, len(col.Cells))
	for row, v := range col.Cells {
		switch {
		case v.IsNumber():
			keys[row] = v.Float()
		case v.IsEmpty():
			if !opts.EmptyAsZero {
				return nil, &InvalidColumnError{Row: row, Column: col.Name, Reason: "sorting columns cannot contain empty values"}
			}
			keys[row] = 0
		default:
			return nil, &InvalidColumnError{Row: row, Column: col.Name, Reason: "sorting columns cannot contain text"}
		}
	}
	return keys, nil
}
