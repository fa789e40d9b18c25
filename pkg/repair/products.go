// pkg/repair/products.go
package repair

import (
	"github.com/retailops/etl/pkg/model"
)

// Product table columns.
const (
	ProductKeyColumn      = "product_id"
	ProductNameColumn     = "name"
	ProductPriceColumn    = "price"
	ProductCategoryColumn = "category"
)

// ProductColumns is the expected source column order for products.
var ProductColumns = []string{
	ProductKeyColumn,
	ProductNameColumn,
	ProductPriceColumn,
	ProductCategoryColumn,
}

// RepairProducts runs the full product repair sequence in place and
// returns the audit summary. Names are fully derived from the key, so any
// source name that disagrees is overwritten.
func (r *Repairer) RepairProducts(t *model.Table) TableSummary {
	r.Dedupe(t)
	r.FillMissingKeys(t)
	r.NormalizeNames(t, ProductNameColumn, "Product")
	r.FillSentinel(t, ProductCategoryColumn, "Unknown")
	r.ImputeNumeric(t, ProductPriceColumn, NumericImputeOptions{
		GroupField: ProductCategoryColumn,
		Precision:  2,
	})
	return Summarize(t, ProductPriceColumn)
}
