// pkg/repair/audit.go
package repair

import (
	"sort"

	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/model"
	"github.com/retailops/etl/pkg/stats"
)

// FieldSummary aggregates the repair audit of one field across a table.
type FieldSummary struct {
	Field   string
	Imputed int
	// ImputedPct is Imputed as a percentage of the table's records,
	// rounded to two decimals.
	ImputedPct float64
	Adjusted   int
	// ByMethod counts imputations per strategy.
	ByMethod map[model.ImputeMethod]int
	// Missing counts values still absent after repair (computation gaps).
	Missing int
}

// NumericSummary carries post-repair descriptive statistics of a field.
type NumericSummary struct {
	Field  string
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// TableSummary is the audit trail of one repaired table.
type TableSummary struct {
	Table   string
	Records int
	Fields  []FieldSummary
	Numeric []NumericSummary
}

// Summarize walks a repaired table and aggregates its audit entries.
// numericFields selects the columns that get descriptive statistics.
func Summarize(t *model.Table, numericFields ...string) TableSummary {
	s := TableSummary{Table: t.Name, Records: t.Len()}

	byField := make(map[string]*FieldSummary)
	for _, col := range t.Columns {
		byField[col] = &FieldSummary{Field: col, ByMethod: make(map[model.ImputeMethod]int)}
	}
	for i := range t.Records {
		rec := t.Records[i]
		for _, col := range t.Columns {
			fs := byField[col]
			if model.IsMissing(rec.Get(col)) {
				fs.Missing++
			}
			a, ok := rec.Audit(col)
			if !ok {
				continue
			}
			if a.Imputed {
				fs.Imputed++
				fs.ByMethod[a.Method]++
			}
			if a.Adjusted {
				fs.Adjusted++
			}
		}
	}
	for _, col := range t.Columns {
		fs := byField[col]
		if fs.Imputed > 0 || fs.Adjusted > 0 || fs.Missing > 0 {
			if s.Records > 0 {
				fs.ImputedPct = stats.Round(100*float64(fs.Imputed)/float64(s.Records), 2)
			}
			s.Fields = append(s.Fields, *fs)
		}
	}
	sort.Slice(s.Fields, func(a, b int) bool { return s.Fields[a].Field < s.Fields[b].Field })

	for _, col := range numericFields {
		ns, ok := describeNumeric(t, col)
		if ok {
			s.Numeric = append(s.Numeric, ns)
		}
	}
	return s
}

func describeNumeric(t *model.Table, field string) (NumericSummary, bool) {
	values := make([]float64, 0, t.Len())
	for i := range t.Records {
		v := t.Records[i].Get(field)
		if model.IsMissing(v) {
			continue
		}
		f, err := model.AsFloat(v)
		if err != nil {
			continue
		}
		values = append(values, f)
	}
	if len(values) == 0 {
		return NumericSummary{}, false
	}
	sort.Float64s(values)
	mean, _ := stats.Mean(t, field)
	median, _ := stats.Median(t, field, stats.MedianOptions{ExcludeIndex: -1, Precision: 2})
	return NumericSummary{
		Field:  field,
		Min:    values[0],
		Max:    values[len(values)-1],
		Mean:   stats.Round(mean, 2),
		Median: median,
	}, true
}

// LogSummary emits the audit trail through the logger, one line per field.
func (s TableSummary) LogSummary(logger *zap.Logger) {
	logger.Info("repair summary",
		zap.String("table", s.Table),
		zap.Int("records", s.Records))
	for _, fs := range s.Fields {
		fields := []zap.Field{
			zap.String("table", s.Table),
			zap.String("field", fs.Field),
			zap.Int("imputed", fs.Imputed),
			zap.Float64("imputed_pct", fs.ImputedPct),
			zap.Int("adjusted", fs.Adjusted),
			zap.Int("missing", fs.Missing),
		}
		for method, n := range fs.ByMethod {
			fields = append(fields, zap.Int(string(method), n))
		}
		logger.Info("field audit", fields...)
	}
	for _, ns := range s.Numeric {
		logger.Info("field statistics",
			zap.String("table", s.Table),
			zap.String("field", ns.Field),
			zap.Float64("min", ns.Min),
			zap.Float64("max", ns.Max),
			zap.Float64("mean", ns.Mean),
			zap.Float64("median", ns.Median))
	}
}
