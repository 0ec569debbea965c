package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// DefaultCategoryColumn is the column rows are grouped by.
const DefaultCategoryColumn = "Class"

var errNoColumns = errors.New("no columns to parse from file")

// Roster is a loaded table that is known to carry the category column.
type Roster struct {
	Table      *Table
	Category   Column
	Categories []Value
}

// Load reads the file at path and validates that categoryColumn is present.
// Failures are always *LoadError.
func Load(path, categoryColumn string) (*Roster, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError(path, err)
		}
		return nil, parseError(path, err)
	}
	if info.IsDir() {
		return nil, parseError(path, fmt.Errorf("%s is a directory", path))
	}

	var table *Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = readWorkbook(path)
	default:
		table, err = readDelimited(path)
	}
	if err != nil {
		return nil, parseError(path, err)
	}

	col, err := table.Column(categoryColumn)
	if err != nil {
		return nil, schemaError(path, categoryColumn)
	}

	return &Roster{
		Table:      table,
		Category:   col,
		Categories: distinctSorted(table, col),
	}, nil
}

func readDelimited(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseDelimited(file)
}

func parseDelimited(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := checkUTF8(header, 1); err != nil {
		return nil, err
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := checkUTF8(record, line); err != nil {
			return nil, err
		}
		padded, err := padRecord(record, len(header), line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, toRow(padded))
	}
	return NewTable(header, rows), nil
}

func checkUTF8(fields []string, line int) error {
	for _, f := range fields {
		if !utf8.ValidString(f) {
			return fmt.Errorf("invalid UTF-8 on line %d", line)
		}
	}
	return nil
}

func readWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook does not contain any sheets")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errNoColumns
	}

	header := rows[0]
	out := make([]Row, 0, len(rows)-1)
	for i, record := range rows[1:] {
		// excelize trims trailing empty cells
		padded, err := padRecord(record, len(header), i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, toRow(padded))
	}
	return NewTable(header, out), nil
}

// padRecord fills a short record with empty cells. Longer records are an error.
func padRecord(record []string, width, line int) ([]string, error) {
	if len(record) > width {
		return nil, fmt.Errorf("expected %d fields on line %d, saw %d", width, line, len(record))
	}
	if len(record) == width {
		return record, nil
	}
	padded := make([]string, width)
	copy(padded, record)
	return padded, nil
}

func toRow(record []string) Row {
	row := make(Row, len(record))
	for i, s := range record {
		row[i] = NewValue(s)
	}
	return row
}

func distinctSorted(t *Table, col Column) []Value {
	seen := make(map[string]struct{})
	var values []Value
	for _, r := range t.Rows {
		v := col.Value(r)
		if v.IsEmpty() {
			continue
		}
		if _, ok := seen[v.Raw]; ok {
			continue
		}
		seen[v.Raw] = struct{}{}
		values = append(values, v)
	}
	sortValues(values)
	return values
}

// sortValues orders by magnitude when every value is numeric, otherwise
// lexically by the raw text.
func sortValues(values []Value) {
	numeric := true
	for _, v := range values {
		if _, ok := v.Number(); !ok {
			numeric = false
			break
		}
	}
	sort.SliceStable(values, func(i, j int) bool {
		if numeric && values[i].num != values[j].num {
			return values[i].num < values[j].num
		}
		return values[i].Raw < values[j].Raw
	})
}
