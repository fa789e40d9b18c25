package sink

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/etl/pkg/model"
)

func TestCreateSQL(t *testing.T) {
	sql := ProductsSchema.CreateSQL()

	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS products")
	assert.Contains(t, sql, "product_id INTEGER")
	assert.Contains(t, sql, "price NUMERIC(10,2)")
	assert.Contains(t, sql, "PRIMARY KEY (product_id)")
}

func TestInsertSQLPlaceholdersAndConflictClause(t *testing.T) {
	sql := EmployeesSchema.InsertSQL(2)

	assert.Contains(t, sql, "INSERT INTO employees (employee_id, name, job_title, age)")
	assert.Contains(t, sql, "($1, $2, $3, $4), ($5, $6, $7, $8)")
	assert.Contains(t, sql, "ON CONFLICT (employee_id) DO NOTHING")
}

func TestValidateReportsMissingColumns(t *testing.T) {
	tbl := model.NewTable("sales", "sale_id", []string{"sale_id", "date"})

	err := SalesSchema.Validate(tbl)
	require.Error(t, err)

	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "sales", mismatch.Table)
	assert.Contains(t, mismatch.Missing, "unit_value")
	assert.NotContains(t, mismatch.Missing, "date")
}

func TestValidateAcceptsCompleteTable(t *testing.T) {
	tbl := model.NewTable("products", "product_id",
		[]string{"product_id", "name", "price", "category"})

	assert.NoError(t, ProductsSchema.Validate(tbl))
}

func TestBindValueCoercions(t *testing.T) {
	intCol := Column{Name: "quantity", Kind: KindInt}
	v, err := intCol.BindValue("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	floatCol := Column{Name: "unit_value", Kind: KindFloat}
	v, err = floatCol.BindValue("19,90")
	require.NoError(t, err)
	assert.Equal(t, 19.90, v)

	dateCol := Column{Name: "date", Kind: KindDate}
	v, err = dateCol.BindValue("25/12/2024")
	require.NoError(t, err)
	parsed, ok := v.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.December, parsed.Month())

	_, err = dateCol.BindValue("2024-12-25")
	assert.Error(t, err)
}

func TestBindValueMissingBecomesNull(t *testing.T) {
	col := Column{Name: "price", Kind: KindFloat}

	v, err := col.BindValue(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = col.BindValue("  ")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := &PersistenceError{Table: "sales", Op: "insert batch", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "sales")
}
