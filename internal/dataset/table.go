package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Row maps column names to cell values.
type Row map[string]string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	clone := make(Row, len(r))
	for column, value := range r {
		clone[column] = value
	}
	return clone
}

// Table is an ordered collection of rows with a fixed column order.
type Table struct {
	columns []string
	rows    []Row
}

// New returns an empty table with the given column order.
func New(columns []string) *Table {
	return &Table{columns: append([]string(nil), columns...)}
}

// Load reads a header-row CSV file into a table.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s has no header row", path)
	}

	table := New(records[0])
	for _, record := range records[1:] {
		row := make(Row, len(table.columns))
		for i, column := range table.columns {
			row[column] = record[i]
		}
		table.rows = append(table.rows, row)
	}
	return table, nil
}

// LoadOrNew reads the table at path, or returns an empty table with the given
// columns when the file does not exist.
func LoadOrNew(path string, columns []string) (*Table, error) {
	table, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(columns), nil
		}
		return nil, err
	}
	return table, nil
}

// Save rewrites the whole table to path.
func (t *Table) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(t.columns); err != nil {
		file.Close()
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, column := range t.columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			file.Close()
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("flush table %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close table %s: %w", path, err)
	}
	return nil
}

// Columns returns the column order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns a copy of the row at index i.
func (t *Table) Row(i int) Row {
	return t.rows[i].Clone()
}

// Value returns the cell at row i for the given column.
func (t *Table) Value(i int, column string) string {
	return t.rows[i][column]
}

// Append adds a row. Values for unknown columns are dropped.
func (t *Table) Append(row Row) {
	kept := make(Row, len(t.columns))
	for _, column := range t.columns {
		kept[column] = row[column]
	}
	t.rows = append(t.rows, kept)
}

// RemoveLast removes and returns the final row.
func (t *Table) RemoveLast() (Row, bool) {
	if len(t.rows) == 0 {
		return nil, false
	}
	last := t.rows[len(t.rows)-1]
	t.rows = t.rows[:len(t.rows)-1]
	return last, true
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, column := range t.columns {
		if column == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the subset of names absent from the table.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// EnsureColumn appends an empty column when the table lacks it.
func (t *Table) EnsureColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.columns = append(t.columns, name)
	for _, row := range t.rows {
		row[name] = ""
	}
}

// ContainsValue reports whether any row holds value in the given column.
func (t *Table) ContainsValue(column, value string) bool {
	for _, row := range t.rows {
		if row[column] == value {
			return true
		}
	}
	return false
}

// FilterEqual returns a new table containing only rows whose column equals
// value.
func (t *Table) FilterEqual(column, value string) *Table {
	filtered := New(t.columns)
	for _, row := range t.rows {
		if row[column] == value {
			filtered.rows = append(filtered.rows, row.Clone())
		}
	}
	return filtered
}

// CountValues tallies the distinct values of a column.
func (t *Table) CountValues(column string) map[string]int {
	counts := make(map[string]int)
	for _, row := range t.rows {
		counts[row[column]]++
	}
	return counts
}
