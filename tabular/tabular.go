// Package tabular implements the row and table model shared by the
// pipeline stages. A table is an ordered list of records over an ordered
// column set; stages never mutate a table in place, every transformation
// returns a new one.
package tabular

// Value is a single cell: a string or null. Empty cells in raw sources
// load as null so that downstream stages can tell "missing" from "empty".
type Value struct {
	Str   string
	Valid bool
}

// String wraps a string into a valid value.
func String(s string) Value {
	return Value{Str: s, Valid: true}
}

// Null is the missing value.
func Null() Value {
	return Value{}
}

// Record maps column names to values. Column order lives on the Table.
type Record map[string]Value

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Table is an ordered sequence of records sharing a column schema.
type Table struct {
	Columns []string
	Rows    []Record
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

// HasColumn reports whether the table schema contains a column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn appends a column to the schema if absent.
func (t *Table) EnsureColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a record to the table.
func (t *Table) Append(r Record) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.Columns...)
	c.Rows = make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		c.Rows = append(c.Rows, r.Clone())
	}
	return c
}

// RenameColumns applies a strict key-for-key column rename. All renames
// are resolved against the original schema at once, so a chained mapping
// like {a: b, b: c} moves both columns simultaneously instead of
// cascading in map order. Empty source or target names are skipped, so a
// no-op mapping like {"": ""} renames nothing.
func (t *Table) RenameColumns(rename map[string]string) *Table {
	subst := func(name string) string {
		if to, ok := rename[name]; ok && name != "" && to != "" {
			return to
		}
		return name
	}
	c := New()
	for _, col := range t.Columns {
		c.Columns = append(c.Columns, subst(col))
	}
	for _, row := range t.Rows {
		r := make(Record, len(row))
		for k, v := range row {
			r[subst(k)] = v
		}
		c.Append(r)
	}
	return c
}
