// pkg/repair/numeric.go
package repair

import (
	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/model"
	"github.com/retailops/etl/pkg/stats"
)

// NumericImputeOptions shapes a numeric imputation pass.
type NumericImputeOptions struct {
	// GroupField selects the peer-group column for the first strategy;
	// empty skips straight to the global median.
	GroupField string
	// Precision is the decimal precision of imputed values.
	Precision int
	// AsInt coerces imputed values to int64 (ages).
	AsInt bool
}

// ImputeNumeric fills missing values of a numeric field. Non-parseable
// values become missing first, then the strategy order applies: median
// of the record's peer group (same GroupField value, the record itself
// excluded), then the global median of the field. A field with no
// computable basis at all is left unset and logged as a gap; the record
// itself is never dropped.
func (r *Repairer) ImputeNumeric(t *model.Table, field string, opts NumericImputeOptions) {
	// Non-parseable values count as missing, so they flow through the
	// same imputation strategies as blanks.
	coerced := 0
	for i := range t.Records {
		v := t.Records[i].Get(field)
		if model.IsMissing(v) {
			continue
		}
		if _, err := model.AsFloat(v); err != nil {
			t.Records[i].Set(field, nil)
			coerced++
		}
	}
	if coerced > 0 {
		r.logger.Warn("coerced non-numeric values to missing",
			zap.String("table", t.Name),
			zap.String("field", field),
			zap.Int("coerced", coerced))
	}

	byGroup, byGlobal, gaps := 0, 0, 0
	for i := range t.Records {
		rec := &t.Records[i]
		if !model.IsMissing(rec.Get(field)) {
			continue
		}

		if opts.GroupField != "" {
			group := model.AsString(rec.Get(opts.GroupField))
			if group != "" {
				m, ok := stats.Median(t, field, stats.MedianOptions{
					GroupField:   opts.GroupField,
					GroupValue:   group,
					ExcludeIndex: i,
					Precision:    opts.Precision,
				})
				if ok {
					r.setImputed(rec, field, m, opts.AsInt, model.MethodMedianByGroup)
					byGroup++
					continue
				}
			}
		}

		m, ok := stats.Median(t, field, stats.MedianOptions{
			ExcludeIndex: i,
			Precision:    opts.Precision,
		})
		if ok {
			r.setImputed(rec, field, m, opts.AsInt, model.MethodMedianGlobal)
			byGlobal++
			continue
		}

		gaps++
		r.logger.Warn("no basis to impute value",
			zap.String("table", t.Name),
			zap.String("field", field),
			zap.String("key", model.AsString(t.Key(i))))
	}
	r.logger.Info("numeric imputation complete",
		zap.String("table", t.Name),
		zap.String("field", field),
		zap.Int("by_group", byGroup),
		zap.Int("by_global", byGlobal),
		zap.Int("gaps", gaps))
}

func (r *Repairer) setImputed(rec *model.Record, field string, v float64, asInt bool, method model.ImputeMethod) {
	if asInt {
		rec.Set(field, int64(stats.Round(v, 0)))
	} else {
		rec.Set(field, v)
	}
	rec.MarkImputed(field, method)
}

// ClampRange forces a numeric field into [min, max], marking clamped
// values as adjusted. The field is coerced to int64 in the same pass.
func (r *Repairer) ClampRange(t *model.Table, field string, min, max int64) {
	clamped := 0
	for i := range t.Records {
		rec := &t.Records[i]
		v := rec.Get(field)
		if model.IsMissing(v) {
			continue
		}
		n, err := model.AsInt(v)
		if err != nil {
			continue
		}
		switch {
		case n < min:
			rec.Set(field, min)
			rec.MarkAdjusted(field)
			clamped++
		case n > max:
			rec.Set(field, max)
			rec.MarkAdjusted(field)
			clamped++
		default:
			rec.Set(field, n)
		}
	}
	if clamped > 0 {
		r.logger.Info("clamped out-of-range values",
			zap.String("table", t.Name),
			zap.String("field", field),
			zap.Int64("min", min),
			zap.Int64("max", max),
			zap.Int("clamped", clamped))
	}
}

// categoryColumn is a temporary join column attached to sales during
// unit-value imputation and dropped before the table leaves the stage.
const categoryColumn = "_category"

// ImputeUnitValues fills missing sales unit values using the median unit
// value of sales for products in the same category, falling back to the
// global median. The category comes from the repaired products table via
// the lookup.
func (r *Repairer) ImputeUnitValues(sales *model.Table, field, productField string, categories model.CategoryLookup) {
	sales.AddColumn(categoryColumn)
	for i := range sales.Records {
		if cat, ok := categories.Category(sales.Records[i].Get(productField)); ok {
			sales.Records[i].Set(categoryColumn, cat)
		}
	}

	r.ImputeNumeric(sales, field, NumericImputeOptions{
		GroupField: categoryColumn,
		Precision:  2,
	})

	sales.DropColumn(categoryColumn)
}

// DeriveTotals recomputes total = quantity * unit value for every record
// where both factors are present. Rows with a missing factor keep their
// total untouched.
func (r *Repairer) DeriveTotals(t *model.Table, totalField, quantityField, unitField string) {
	derived := 0
	for i := range t.Records {
		rec := &t.Records[i]
		q, errQ := model.AsFloat(rec.Get(quantityField))
		u, errU := model.AsFloat(rec.Get(unitField))
		if errQ != nil || errU != nil {
			continue
		}
		rec.Set(totalField, stats.Round(q*u, 2))
		derived++
	}
	r.logger.Info("derived totals",
		zap.String("table", t.Name),
		zap.String("field", totalField),
		zap.Int("derived", derived))
}
