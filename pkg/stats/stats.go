// pkg/stats/stats.go
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/retailops/etl/pkg/model"
)

// MedianOptions restricts which records contribute to a median.
type MedianOptions struct {
	// GroupField/GroupValue restrict the scope to records whose group
	// field equals the value. Empty GroupField means the whole table.
	GroupField string
	GroupValue string
	// ExcludeIndex drops one record from scope so a record never
	// influences its own fallback. Negative means none.
	ExcludeIndex int
	// Precision is the number of decimal places of the result
	// (0 for ages, 2 for currency).
	Precision int
}

// Median computes the median of the non-missing numeric values of a field,
// restricted by opts. For even counts the two middle values are averaged.
// The second return is false when no value is in scope.
func Median(t *model.Table, field string, opts MedianOptions) (float64, bool) {
	values := collect(t, field, opts)
	if len(values) == 0 {
		return 0, false
	}
	sort.Float64s(values)
	n := len(values)
	var m float64
	if n%2 == 1 {
		m = values[n/2]
	} else {
		m = (values[n/2-1] + values[n/2]) / 2
	}
	return Round(m, opts.Precision), true
}

// Mean computes the mean of the non-missing numeric values of a field.
func Mean(t *model.Table, field string) (float64, bool) {
	values := collect(t, field, MedianOptions{ExcludeIndex: -1})
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

func collect(t *model.Table, field string, opts MedianOptions) []float64 {
	values := make([]float64, 0, t.Len())
	for i := range t.Records {
		if i == opts.ExcludeIndex {
			continue
		}
		rec := t.Records[i]
		if opts.GroupField != "" {
			if model.AsString(rec.Get(opts.GroupField)) != opts.GroupValue {
				continue
			}
		}
		v := rec.Get(field)
		if model.IsMissing(v) {
			continue
		}
		f, err := model.AsFloat(v)
		if err != nil {
			continue
		}
		values = append(values, f)
	}
	return values
}
