package table

import (
	"errors"
	"io"
	"strconv"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ErrNoValidSheet indicates no sheet in the workbook has a usable
// header row.
var ErrNoValidSheet = errors.New("no sheet with a usable header row")

// errUnusable marks a sheet that should be skipped, not reported.
var errUnusable = errors.New("sheet not usable")

// ParseTable reads an XLSX workbook from r/size and builds the column
// model from the first usable sheet. A sheet is usable when its header
// row has at least two columns, one of them named "template", and at
// least one data row follows. The first two columns are the ranking
// keys by convention; they are validated by the ranking engine, not
// here.
func ParseTable(r io.ReaderAt, size int64) (*Table, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, err
	}

	for _, sheet := range wb.Sheets() {
		t, err := parseSheet(sheet)
		if errors.Is(err, errUnusable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, ErrNoValidSheet
}

func parseSheet(sheet spreadsheet.Sheet) (*Table, error) {
	rows := sheet.Rows()
	if len(rows) < 2 {
		return nil, errUnusable
	}

	// ---- header row ----
	// Cells may be sparse; place each by its column reference like any
	// other sheet walk.
	header := make(map[int]string)
	maxCol := -1
	for _, cell := range rows[0].Cells() {
		colName, err := cell.Column()
		if err != nil {
			continue
		}
		idx := int(reference.ColumnToIndex(colName))
		name := cell.GetFormattedValue()
		if name == "" {
			continue
		}
		header[idx] = name
		if idx > maxCol {
			maxCol = idx
		}
	}
	if len(header) < 2 {
		return nil, errUnusable
	}

	names := make([]string, 0, len(header))
	colIdx := make([]int, 0, len(header))
	hasTemplate := false
	for i := 0; i <= maxCol; i++ {
		name, ok := header[i]
		if !ok {
			continue
		}
		names = append(names, name)
		colIdx = append(colIdx, i)
		if name == TemplateColumn {
			hasTemplate = true
		}
	}
	if !hasTemplate {
		return nil, errUnusable
	}

	// ---- data rows ----
	grid := make([][]Value, len(names))
	for i := range grid {
		grid[i] = make([]Value, len(rows)-1)
	}
	for ri, row := range rows[1:] {
		byIdx := make(map[int]Value)
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			byIdx[int(reference.ColumnToIndex(colName))] = cellValue(cell)
		}
		for ci, idx := range colIdx {
			if v, ok := byIdx[idx]; ok {
				grid[ci][ri] = v
			} else {
				grid[ci][ri] = Text("")
			}
		}
	}

	t := New()
	for ci, name := range names {
		if name == RankColumn {
			return nil, &ReservedColumnError{Name: name}
		}
		if err := t.AddColumn(name, grid[ci]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// cellValue converts a sheet cell into a tagged value. Numbers are
// detected by float conversion of the formatted value, so numeric text
// pasted as text still ranks and formats like a number.
func cellValue(cell spreadsheet.Cell) Value {
	raw := cell.GetFormattedValue()
	if raw == "" {
		return Text("")
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(f)
	}
	return Text(raw)
}
