// pkg/repair/date.go
package repair

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/model"
)

// DateLayout is the canonical DD/MM/YYYY wire format for dates. Every
// date leaving a repair stage is rendered in this layout.
const DateLayout = model.DateLayout

// ParseDate parses a value in the canonical layout. time.Parse alone
// accepts normalized oddities, so the round-trip check rejects inputs
// like "31/02/2024" that name a day the month does not have.
func ParseDate(v interface{}) (time.Time, bool) {
	s := model.AsString(v)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(DateLayout) != s {
		return time.Time{}, false
	}
	return t, true
}

// ImputeDates fills missing values of a date field and repairs invalid
// ones. Strategy order for a missing date: median of the dates the same
// group (same groupField value) carried before imputation started, then
// the global median of those original dates, then the current date. All
// medians are computed against a snapshot taken up front, so a date
// imputed for one record never feeds another record's median. Values
// that are present but not a real calendar date are replaced with the
// current date in a final pass that supersedes any earlier tag.
func (r *Repairer) ImputeDates(t *model.Table, field, groupField string) {
	byGroup, byGlobal, byClock, invalid := 0, 0, 0, 0
	today := r.now().Format(DateLayout)

	// Snapshot of the dates that were valid on entry, plus the records
	// needing imputation.
	valid := make(map[int]time.Time, t.Len())
	var unresolved []int
	for i := range t.Records {
		v := t.Records[i].Get(field)
		if model.IsMissing(v) {
			unresolved = append(unresolved, i)
			continue
		}
		if d, ok := ParseDate(v); ok {
			valid[i] = d
		}
	}

	var rest []int
	for _, i := range unresolved {
		rec := &t.Records[i]
		group := model.AsString(rec.Get(groupField))
		if group != "" {
			if m, ok := groupMedianDate(t, valid, groupField, group, i); ok {
				rec.Set(field, m.Format(DateLayout))
				rec.MarkImputed(field, model.MethodMedianEmployee)
				byGroup++
				continue
			}
		}
		rest = append(rest, i)
	}

	globalDates := make([]time.Time, 0, len(valid))
	for _, d := range valid {
		globalDates = append(globalDates, d)
	}
	global, haveGlobal := medianTime(globalDates)

	for _, i := range rest {
		rec := &t.Records[i]
		if haveGlobal {
			rec.Set(field, global.Format(DateLayout))
			rec.MarkImputed(field, model.MethodMedianGlobal)
			byGlobal++
			continue
		}
		rec.Set(field, today)
		rec.MarkImputed(field, model.MethodCurrentDate)
		byClock++
	}

	// Validation pass: anything still unparseable gets the current date.
	for i := range t.Records {
		rec := &t.Records[i]
		if _, ok := ParseDate(rec.Get(field)); ok {
			continue
		}
		r.logger.Warn("replacing invalid date",
			zap.String("table", t.Name),
			zap.String("field", field),
			zap.String("key", model.AsString(t.Key(i))),
			zap.String("value", model.AsString(rec.Get(field))))
		rec.Set(field, today)
		rec.MarkImputed(field, model.MethodInvalidFormat)
		invalid++
	}

	r.logger.Info("date imputation complete",
		zap.String("table", t.Name),
		zap.String("field", field),
		zap.Int("by_group", byGroup),
		zap.Int("by_global", byGlobal),
		zap.Int("by_current_date", byClock),
		zap.Int("invalid_replaced", invalid))
}

// groupMedianDate computes the median of the snapshot dates belonging to
// the same group, excluding record excludeIndex.
func groupMedianDate(t *model.Table, valid map[int]time.Time, groupField, groupValue string, excludeIndex int) (time.Time, bool) {
	dates := make([]time.Time, 0, len(valid))
	for i, d := range valid {
		if i == excludeIndex {
			continue
		}
		if model.AsString(t.Records[i].Get(groupField)) != groupValue {
			continue
		}
		dates = append(dates, d)
	}
	return medianTime(dates)
}

// medianTime returns the chronological median. Even counts resolve to
// the earlier of the two middle dates so the result is always a date
// that actually occurs in the data.
func medianTime(dates []time.Time) (time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })
	return dates[(len(dates)-1)/2], true
}
