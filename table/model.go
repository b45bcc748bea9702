package table

import (
	"fmt"
	"strconv"
)

// Intermediate representation for parsed judging data.
//
// A Table is an ordered sequence of named columns of equal length. Cell
// values are either numeric or textual; numbers keep their float64 value
// so ranking and formatting never re-parse display strings.

// RankColumn is the reserved name of the synthetic rank column. It must
// not appear in input data; the ranking engine writes it.
const RankColumn = "r"

// TemplateColumn names the column that selects the slide template for
// each row.
const TemplateColumn = "template"

// Value is a single cell: numeric or text.
type Value struct {
	num   float64
	text  string
	isNum bool
}

// Number returns a numeric cell value.
func Number(f float64) Value { return Value{num: f, isNum: true} }

// Text returns a textual cell value.
func Text(s string) Value { return Value{text: s} }

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return v.isNum }

// IsEmpty reports whether the value is empty text.
func (v Value) IsEmpty() bool { return !v.isNum && v.text == "" }

// Float returns the numeric value, or 0 for text values.
func (v Value) Float() float64 { return v.num }

// String returns the display form: numbers print with the shortest
// representation that round-trips, text passes through verbatim.
func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// Fixed returns the numeric value with a fixed number of decimals.
// Text values pass through verbatim.
func (v Value) Fixed(decimals int) string {
	if !v.isNum {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'f', decimals, 64)
}

// Column is a named sequence of cell values, one per row.
type Column struct {
	Name  string
	Cells []Value
}

func (c Column) String() string {
	return fmt.Sprintf("Name: %s, Cells: %d", c.Name, len(c.Cells))
}

// DuplicateColumnError indicates two columns share a name.
type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Name)
}

// ReservedColumnError indicates input data carries a column name that is
// written by the pipeline itself.
type ReservedColumnError struct {
	Name string
}

func (e *ReservedColumnError) Error() string {
	return fmt.Sprintf("column %q is reserved and must not appear in input data", e.Name)
}

// Table is the column model. The zero value is empty and usable.
type Table struct {
	cols  []Column
	index map[string]int
}

// New returns an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// Cols returns the number of columns.
func (t *Table) Cols() int { return len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// AddColumn appends a column. The name must be unique and the cell count
// must match the existing row count.
func (t *Table) AddColumn(name string, cells []Value) error {
	return t.InsertColumn(len(t.cols), name, cells)
}

// InsertColumn inserts a column at position i, shifting later columns
// right. Used to prepend derived ranking keys.
func (t *Table) InsertColumn(i int, name string, cells []Value) error {
	if _, ok := t.index[name]; ok {
		return &DuplicateColumnError{Name: name}
	}
	if len(t.cols) > 0 && len(cells) != t.Rows() {
		return fmt.Errorf("column %q has %d cells, want %d", name, len(cells), t.Rows())
	}
	if i < 0 || i > len(t.cols) {
		return fmt.Errorf("column position %d out of range", i)
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.cols = append(t.cols, Column{})
	copy(t.cols[i+1:], t.cols[i:])
	t.cols[i] = Column{Name: name, Cells: cells}
	for j := i; j < len(t.cols); j++ {
		t.index[t.cols[j].Name] = j
	}
	return nil
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// ColumnAt returns the column at position i.
func (t *Table) ColumnAt(i int) Column { return t.cols[i] }

// SetCell replaces a single cell value.
func (t *Table) SetCell(name string, row int, v Value) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("no column %q", name)
	}
	if row < 0 || row >= t.Rows() {
		return fmt.Errorf("row %d out of range", row)
	}
	t.cols[i].Cells[row] = v
	return nil
}

// Row returns a view of one row as a name to value mapping, including
// the synthetic rank column once it has been annotated.
func (t *Table) Row(i int) map[string]Value {
	row := make(map[string]Value, len(t.cols))
	for _, c := range t.cols {
		row[c.Name] = c.Cells[i]
	}
	return row
}
