package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/etl/pkg/model"
)

func TestRepairProductsEndToEnd(t *testing.T) {
	tbl := newTestTable("products", "product_id", ProductColumns, []map[string]interface{}{
		{"product_id": int64(1), "name": "Product 1", "price": 10.0, "category": "Tools"},
		{"product_id": int64(2), "name": "mislabeled", "price": 30.0, "category": "Tools"},
		{"product_id": int64(1), "name": "dup", "price": 99.0, "category": "Tools"},
		{"product_id": nil, "name": nil, "price": nil, "category": nil},
	})

	summary := testRepairer().RepairProducts(tbl)

	require.Equal(t, 3, tbl.Len(), "one duplicate removed, blank-key row kept")
	assert.Equal(t, int64(3), tbl.Key(2), "fresh key past the max")
	assert.Equal(t, "Product 3", tbl.Records[2].Get("name"))
	assert.Equal(t, "Unknown", tbl.Records[2].Get("category"))
	assert.Equal(t, 20.0, tbl.Records[2].Get("price"), "global median of 10 and 30")

	assert.Equal(t, "products", summary.Table)
	assert.Equal(t, 3, summary.Records)
}

func TestRepairEmployeesEndToEnd(t *testing.T) {
	tbl := newTestTable("employees", "employee_id", EmployeeColumns, []map[string]interface{}{
		{"employee_id": int64(1), "name": "Grace Hopper", "job_title": "Engineer", "age": int64(30)},
		{"employee_id": int64(2), "name": nil, "job_title": "Engineer", "age": int64(40)},
		{"employee_id": int64(3), "name": "Alan Kay", "job_title": nil, "age": nil},
		{"employee_id": int64(4), "name": "Barbara Liskov", "job_title": "Engineer", "age": int64(130)},
	})

	testRepairer().RepairEmployees(tbl)

	assert.Equal(t, "Grace Hopper", tbl.Records[0].Get("name"))
	assert.Equal(t, "Employee 2", tbl.Records[1].Get("name"))
	assert.Equal(t, "Not Informed", tbl.Records[2].Get("job_title"))
	assert.Equal(t, int64(70), tbl.Records[3].Get("age"), "clamped to the upper bound")

	age, err := model.AsInt(tbl.Records[2].Get("age"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, age, int64(MinEmployeeAge))
	assert.LessOrEqual(t, age, int64(MaxEmployeeAge))
}

func TestRepairEmployeesReplacesUnparseableAge(t *testing.T) {
	tbl := newTestTable("employees", "employee_id", EmployeeColumns, []map[string]interface{}{
		{"employee_id": int64(1), "name": "a", "job_title": "Engineer", "age": int64(30)},
		{"employee_id": int64(2), "name": "b", "job_title": "Engineer", "age": int64(40)},
		{"employee_id": int64(3), "name": "c", "job_title": "Engineer", "age": "abc"},
	})

	testRepairer().RepairEmployees(tbl)

	age, err := model.AsInt(tbl.Records[2].Get("age"))
	require.NoError(t, err, "no non-numeric age survives the repair")
	assert.Equal(t, int64(35), age)
	assert.GreaterOrEqual(t, age, int64(MinEmployeeAge))
	assert.LessOrEqual(t, age, int64(MaxEmployeeAge))
}

func TestRepairSalesEndToEnd(t *testing.T) {
	products := newTestTable("products", "product_id", ProductColumns, []map[string]interface{}{
		{"product_id": int64(1), "name": "Product 1", "price": 10.0, "category": "Tools"},
	})
	lookup := model.BuildCategoryLookup(products, ProductCategoryColumn)

	sales := newTestTable("sales", "sale_id", SaleColumns, []map[string]interface{}{
		{"sale_id": int64(1), "date": "10/04/2024", "product_id": int64(1), "employee_id": int64(1), "quantity": int64(2), "unit_value": 12.5, "total_value": nil},
		{"sale_id": int64(2), "date": nil, "product_id": int64(1), "employee_id": int64(1), "quantity": int64(1), "unit_value": nil, "total_value": nil},
	})

	before := sales.Len()
	summary := testRepairer().RepairSales(sales, lookup)

	assert.Equal(t, before, sales.Len())
	assert.Equal(t, "10/04/2024", sales.Records[1].Get("date"))
	assert.Equal(t, 12.5, sales.Records[1].Get("unit_value"))
	assert.Equal(t, 25.0, sales.Records[0].Get("total_value"))
	assert.Equal(t, 12.5, sales.Records[1].Get("total_value"))
	assert.False(t, sales.HasColumn("_category"))
	assert.Equal(t, before, summary.Records)
}

func TestSummarizeCountsMethodsAndGaps(t *testing.T) {
	tbl := newTestTable("products", "product_id", ProductColumns, []map[string]interface{}{
		{"product_id": int64(1), "price": 10.0, "category": "Tools"},
		{"product_id": int64(2), "price": nil, "category": "Tools"},
		{"product_id": int64(3), "price": nil, "category": nil},
	})

	testRepairer().ImputeNumeric(tbl, "price", NumericImputeOptions{GroupField: "category", Precision: 2})
	summary := Summarize(tbl, "price")

	var priceSummary *FieldSummary
	for i := range summary.Fields {
		if summary.Fields[i].Field == "price" {
			priceSummary = &summary.Fields[i]
		}
	}
	require.NotNil(t, priceSummary)
	assert.Equal(t, 2, priceSummary.Imputed)
	assert.InDelta(t, 66.67, priceSummary.ImputedPct, 1e-9)
	assert.Equal(t, 0, priceSummary.Missing)

	require.Len(t, summary.Numeric, 1)
	assert.Equal(t, 10.0, summary.Numeric[0].Min)
}
