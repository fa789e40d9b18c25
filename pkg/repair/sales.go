// pkg/repair/sales.go
package repair

import (
	"github.com/retailops/etl/pkg/model"
)

// Sales table columns.
const (
	SaleKeyColumn       = "sale_id"
	SaleDateColumn      = "date"
	SaleProductColumn   = "product_id"
	SaleEmployeeColumn  = "employee_id"
	SaleQuantityColumn  = "quantity"
	SaleUnitValueColumn = "unit_value"
	SaleTotalColumn     = "total_value"
)

// SaleColumns is the expected source column order for sales.
var SaleColumns = []string{
	SaleKeyColumn,
	SaleDateColumn,
	SaleProductColumn,
	SaleEmployeeColumn,
	SaleQuantityColumn,
	SaleUnitValueColumn,
	SaleTotalColumn,
}

// RepairSales runs the full sales repair sequence in place and returns
// the audit summary. The category lookup comes from the products table
// repaired earlier in the same run, so product repair must precede this.
func (r *Repairer) RepairSales(t *model.Table, categories model.CategoryLookup) TableSummary {
	r.Dedupe(t)
	r.FillMissingKeys(t)
	r.ImputeDates(t, SaleDateColumn, SaleEmployeeColumn)
	r.ImputeUnitValues(t, SaleUnitValueColumn, SaleProductColumn, categories)
	r.DeriveTotals(t, SaleTotalColumn, SaleQuantityColumn, SaleUnitValueColumn)
	return Summarize(t, SaleUnitValueColumn, SaleTotalColumn)
}
