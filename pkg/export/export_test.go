package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/model"
	"github.com/retailops/etl/pkg/repair"
)

func sampleTables() (*model.Table, *model.Table, *model.Table) {
	products := model.NewTable("products", "product_id", repair.ProductColumns)
	products.Append(model.NewRecord(map[string]interface{}{
		"product_id": int64(1), "name": "Product 1", "price": 19.90, "category": "Tools",
	}))

	employees := model.NewTable("employees", "employee_id", repair.EmployeeColumns)
	employees.Append(model.NewRecord(map[string]interface{}{
		"employee_id": int64(1), "name": "Employee 1", "job_title": "Analyst", "age": int64(33),
	}))

	sales := model.NewTable("sales", "sale_id", repair.SaleColumns)
	sales.Append(model.NewRecord(map[string]interface{}{
		"sale_id": int64(1), "date": "10/04/2024", "product_id": int64(1),
		"employee_id": int64(1), "quantity": int64(2), "unit_value": 19.90, "total_value": 39.80,
	}))
	sales.Append(model.NewRecord(map[string]interface{}{
		"sale_id": int64(2), "date": "11/04/2024", "product_id": nil,
		"employee_id": int64(1), "quantity": int64(1), "unit_value": nil, "total_value": nil,
	}))

	return products, employees, sales
}

func TestWriteParquetCreatesSnapshotFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	products, employees, sales := sampleTables()

	err := NewExporter(zap.NewNop()).WriteParquet(dir, products, employees, sales)
	require.NoError(t, err)

	for _, name := range []string{"products.parquet", "employees.parquet", "sales.parquet"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteParquetRoundTripsSales(t *testing.T) {
	dir := t.TempDir()
	products, employees, sales := sampleTables()

	require.NoError(t, NewExporter(zap.NewNop()).WriteParquet(dir, products, employees, sales))

	fr, err := local.NewLocalFileReader(filepath.Join(dir, "sales.parquet"))
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(saleRow), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.Equal(t, int64(2), pr.GetNumRows())

	rows := make([]saleRow, 2)
	require.NoError(t, pr.Read(&rows))

	assert.Equal(t, int64(1), rows[0].SaleID)
	assert.Equal(t, "10/04/2024", rows[0].Date)
	require.NotNil(t, rows[0].UnitValue)
	assert.Equal(t, 19.90, *rows[0].UnitValue)

	assert.Nil(t, rows[1].ProductID, "missing values survive as nulls")
	assert.Nil(t, rows[1].UnitValue)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	summaries := []repair.TableSummary{
		{
			Table:   "products",
			Records: 3,
			Fields: []repair.FieldSummary{
				{Field: "price", Imputed: 2, ImputedPct: 66.67},
			},
			Numeric: []repair.NumericSummary{
				{Field: "price", Min: 10, Max: 30, Mean: 20, Median: 20},
			},
		},
		{Table: "employees", Records: 5},
	}

	err := NewExporter(zap.NewNop()).WriteReport(path, summaries...)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"products", "employees"}, f.GetSheetList())

	records, err := f.GetCellValue("products", "B1")
	require.NoError(t, err)
	assert.Equal(t, "3", records)

	field, err := f.GetCellValue("products", "A4")
	require.NoError(t, err)
	assert.Equal(t, "price", field)

	pct, err := f.GetCellValue("products", "C4")
	require.NoError(t, err)
	assert.Equal(t, "66.67", pct)
}
