package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNamesOverwritesMismatches(t *testing.T) {
	tbl := newTestTable("products", "product_id", ProductColumns, []map[string]interface{}{
		{"product_id": int64(1), "name": "Product 1"},
		{"product_id": int64(2), "name": "Wrong Name"},
		{"product_id": int64(3), "name": nil},
	})

	testRepairer().NormalizeNames(tbl, "name", "Product")

	assert.Equal(t, "Product 1", tbl.Records[0].Get("name"))
	assert.Equal(t, "Product 2", tbl.Records[1].Get("name"))
	assert.Equal(t, "Product 3", tbl.Records[2].Get("name"))
}

func TestNormalizeNamesIsIdempotent(t *testing.T) {
	tbl := newTestTable("products", "product_id", ProductColumns, []map[string]interface{}{
		{"product_id": int64(8), "name": "anything"},
	})

	r := testRepairer()
	r.NormalizeNames(tbl, "name", "Product")
	first := tbl.Records[0].Get("name")
	r.NormalizeNames(tbl, "name", "Product")

	assert.Equal(t, first, tbl.Records[0].Get("name"))
}

func TestFillBlankNamesKeepsRealNames(t *testing.T) {
	tbl := newTestTable("employees", "employee_id", EmployeeColumns, []map[string]interface{}{
		{"employee_id": int64(1), "name": "Ada Lovelace"},
		{"employee_id": int64(2), "name": "   "},
		{"employee_id": int64(3), "name": nil},
	})

	testRepairer().FillBlankNames(tbl, "name", "Employee")

	assert.Equal(t, "Ada Lovelace", tbl.Records[0].Get("name"))
	assert.Equal(t, "Employee 2", tbl.Records[1].Get("name"))
	assert.Equal(t, "Employee 3", tbl.Records[2].Get("name"))
}

func TestFillSentinel(t *testing.T) {
	tbl := newTestTable("employees", "employee_id", EmployeeColumns, []map[string]interface{}{
		{"employee_id": int64(1), "job_title": "Analyst"},
		{"employee_id": int64(2), "job_title": nil},
	})

	testRepairer().FillSentinel(tbl, "job_title", "Not Informed")

	assert.Equal(t, "Analyst", tbl.Records[0].Get("job_title"))
	assert.Equal(t, "Not Informed", tbl.Records[1].Get("job_title"))
}
