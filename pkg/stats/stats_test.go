package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/etl/pkg/model"
)

func ageTable(rows []map[string]interface{}) *model.Table {
	t := model.NewTable("employees", "employee_id", []string{"employee_id", "job_title", "age"})
	for _, row := range rows {
		t.Append(model.NewRecord(row))
	}
	return t
}

func TestMedianOddCount(t *testing.T) {
	tbl := ageTable([]map[string]interface{}{
		{"employee_id": int64(1), "age": int64(30)},
		{"employee_id": int64(2), "age": int64(50)},
		{"employee_id": int64(3), "age": int64(40)},
	})

	m, ok := Median(tbl, "age", MedianOptions{ExcludeIndex: -1})
	require.True(t, ok)
	assert.Equal(t, 40.0, m)
}

func TestMedianEvenCountAveragesMiddles(t *testing.T) {
	tbl := ageTable([]map[string]interface{}{
		{"employee_id": int64(1), "age": int64(30)},
		{"employee_id": int64(2), "age": int64(40)},
	})

	m, ok := Median(tbl, "age", MedianOptions{ExcludeIndex: -1})
	require.True(t, ok)
	assert.Equal(t, 35.0, m)
}

func TestMedianGrouped(t *testing.T) {
	tbl := ageTable([]map[string]interface{}{
		{"employee_id": int64(1), "job_title": "Analyst", "age": int64(30)},
		{"employee_id": int64(2), "job_title": "Analyst", "age": int64(40)},
		{"employee_id": int64(3), "job_title": "Manager", "age": int64(60)},
		{"employee_id": int64(4), "job_title": "Analyst", "age": nil},
	})

	m, ok := Median(tbl, "age", MedianOptions{GroupField: "job_title", GroupValue: "Analyst", ExcludeIndex: -1})
	require.True(t, ok)
	assert.Equal(t, 35.0, m)
}

func TestMedianExcludesSelf(t *testing.T) {
	tbl := ageTable([]map[string]interface{}{
		{"employee_id": int64(1), "age": int64(30)},
		{"employee_id": int64(2), "age": int64(90)},
		{"employee_id": int64(3), "age": int64(40)},
	})

	m, ok := Median(tbl, "age", MedianOptions{ExcludeIndex: 1})
	require.True(t, ok)
	assert.Equal(t, 35.0, m)
}

func TestMedianNoValuesInScope(t *testing.T) {
	tbl := ageTable([]map[string]interface{}{
		{"employee_id": int64(1), "job_title": "Intern", "age": nil},
		{"employee_id": int64(2), "job_title": "Intern", "age": "  "},
	})

	_, ok := Median(tbl, "age", MedianOptions{GroupField: "job_title", GroupValue: "Intern", ExcludeIndex: -1})
	assert.False(t, ok)
}

func TestMedianPrecision(t *testing.T) {
	tbl := model.NewTable("products", "product_id", []string{"product_id", "price"})
	tbl.Append(model.NewRecord(map[string]interface{}{"product_id": int64(1), "price": 10.005}))
	tbl.Append(model.NewRecord(map[string]interface{}{"product_id": int64(2), "price": 10.006}))

	m, ok := Median(tbl, "price", MedianOptions{ExcludeIndex: -1, Precision: 2})
	require.True(t, ok)
	assert.InDelta(t, 10.01, m, 1e-9)
}

func TestMeanSkipsMissing(t *testing.T) {
	tbl := ageTable([]map[string]interface{}{
		{"employee_id": int64(1), "age": int64(20)},
		{"employee_id": int64(2), "age": nil},
		{"employee_id": int64(3), "age": int64(40)},
	})

	m, ok := Mean(tbl, "age")
	require.True(t, ok)
	assert.Equal(t, 30.0, m)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 35.0, Round(34.5, 0))
	assert.Equal(t, 12.35, Round(12.345, 2))
	assert.Equal(t, -2.5, Round(-2.46, 1))
}
