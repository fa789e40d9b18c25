// pkg/sink/schema.go
package sink

import (
	"fmt"
	"strings"
	"time"

	"github.com/retailops/etl/pkg/model"
)

// ColumnKind selects how a column value is coerced before binding.
type ColumnKind int

const (
	KindInt ColumnKind = iota
	KindFloat
	KindText
	KindDate
)

// Column describes one destination column.
type Column struct {
	Name    string
	SQLType string
	Kind    ColumnKind
}

// TableSchema describes one destination table: its columns in DDL order
// and the primary key that makes reloads idempotent.
type TableSchema struct {
	Name    string
	Key     string
	Columns []Column
}

// Destination schemas for the three datasets.
var (
	ProductsSchema = TableSchema{
		Name: "products",
		Key:  "product_id",
		Columns: []Column{
			{Name: "product_id", SQLType: "INTEGER", Kind: KindInt},
			{Name: "name", SQLType: "TEXT", Kind: KindText},
			{Name: "price", SQLType: "NUMERIC(10,2)", Kind: KindFloat},
			{Name: "category", SQLType: "TEXT", Kind: KindText},
		},
	}

	EmployeesSchema = TableSchema{
		Name: "employees",
		Key:  "employee_id",
		Columns: []Column{
			{Name: "employee_id", SQLType: "INTEGER", Kind: KindInt},
			{Name: "name", SQLType: "TEXT", Kind: KindText},
			{Name: "job_title", SQLType: "TEXT", Kind: KindText},
			{Name: "age", SQLType: "INTEGER", Kind: KindInt},
		},
	}

	SalesSchema = TableSchema{
		Name: "sales",
		Key:  "sale_id",
		Columns: []Column{
			{Name: "sale_id", SQLType: "INTEGER", Kind: KindInt},
			{Name: "date", SQLType: "DATE", Kind: KindDate},
			{Name: "product_id", SQLType: "INTEGER", Kind: KindInt},
			{Name: "employee_id", SQLType: "INTEGER", Kind: KindInt},
			{Name: "quantity", SQLType: "INTEGER", Kind: KindInt},
			{Name: "unit_value", SQLType: "NUMERIC(10,2)", Kind: KindFloat},
			{Name: "total_value", SQLType: "NUMERIC(10,2)", Kind: KindFloat},
		},
	}
)

// ColumnNames returns the column names in DDL order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// CreateSQL renders the CREATE TABLE statement for the destination.
func (s TableSchema) CreateSQL() string {
	defs := make([]string, 0, len(s.Columns)+1)
	for _, c := range s.Columns {
		defs = append(defs, fmt.Sprintf("%s %s", c.Name, c.SQLType))
	}
	defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", s.Key))
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		s.Name, strings.Join(defs, ",\n\t"))
}

// InsertSQL renders a multi-row insert for rowCount rows. The conflict
// clause makes reloads of already-persisted keys a no-op.
func (s TableSchema) InsertSQL(rowCount int) string {
	cols := s.ColumnNames()
	placeholders := make([]string, rowCount)
	for i := 0; i < rowCount; i++ {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = fmt.Sprintf("$%d", i*len(cols)+j+1)
		}
		placeholders[i] = fmt.Sprintf("(%s)", strings.Join(row, ", "))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s ON CONFLICT (%s) DO NOTHING",
		s.Name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		s.Key)
}

// Validate checks that a repaired table carries every destination column.
func (s TableSchema) Validate(t *model.Table) error {
	var missing []string
	for _, c := range s.Columns {
		if !t.HasColumn(c.Name) {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return &SchemaMismatchError{Table: s.Name, Missing: missing}
	}
	return nil
}

// BindValue coerces a record value for its destination column. Missing
// values bind as NULL.
func (c Column) BindValue(v interface{}) (interface{}, error) {
	if model.IsMissing(v) {
		return nil, nil
	}
	switch c.Kind {
	case KindInt:
		return model.AsInt(v)
	case KindFloat:
		return model.AsFloat(v)
	case KindDate:
		t, err := time.Parse(model.DateLayout, model.AsString(v))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		return t, nil
	default:
		return model.AsString(v), nil
	}
}
