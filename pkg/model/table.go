// pkg/model/table.go
package model

// Table is an ordered collection of records loaded from one source file.
// KeyField names the primary key column; Columns preserves source order.
type Table struct {
	Name     string
	KeyField string
	Columns  []string
	Records  []Record
}

// NewTable creates an empty table with the given shape.
func NewTable(name, keyField string, columns []string) *Table {
	return &Table{
		Name:     name,
		KeyField: keyField,
		Columns:  append([]string(nil), columns...),
		Records:  make([]Record, 0),
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Append adds a record to the end of the table.
func (t *Table) Append(r Record) {
	t.Records = append(t.Records, r)
}

// Key returns the key-field value of record i.
func (t *Table) Key(i int) interface{} {
	return t.Records[i].Get(t.KeyField)
}

// HasColumn reports whether the table declares a column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn declares a new column; existing records keep it unset (nil).
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
}

// DropColumn removes a column declaration and its values from every record.
// Used for temporary join columns that must not reach the sink.
func (t *Table) DropColumn(name string) {
	for i, c := range t.Columns {
		if c == name {
			t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
			break
		}
	}
	for i := range t.Records {
		delete(t.Records[i].Values, name)
	}
}
