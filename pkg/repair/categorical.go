// pkg/repair/categorical.go
package repair

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/model"
)

// NormalizeNames overwrites a name field with "<prefix> <key>" for every
// record, regardless of what the source carried. The operation is
// idempotent: a second pass changes nothing.
func (r *Repairer) NormalizeNames(t *model.Table, field, prefix string) {
	changed := 0
	for i := range t.Records {
		want := fmt.Sprintf("%s %s", prefix, model.AsString(t.Key(i)))
		if model.AsString(t.Records[i].Get(field)) != want {
			changed++
		}
		t.Records[i].Set(field, want)
	}
	r.logger.Info("normalized names",
		zap.String("table", t.Name),
		zap.String("field", field),
		zap.Int("rewritten", changed))
}

// FillBlankNames sets "<prefix> <key>" only where the name is missing,
// leaving legitimate names untouched.
func (r *Repairer) FillBlankNames(t *model.Table, field, prefix string) {
	filled := 0
	for i := range t.Records {
		if !model.IsMissing(t.Records[i].Get(field)) {
			continue
		}
		t.Records[i].Set(field, fmt.Sprintf("%s %s", prefix, model.AsString(t.Key(i))))
		filled++
	}
	if filled > 0 {
		r.logger.Info("filled blank names",
			zap.String("table", t.Name),
			zap.String("field", field),
			zap.Int("filled", filled))
	}
}

// FillSentinel replaces missing values of a categorical field with a
// fixed sentinel such as "Unknown" or "Not Informed".
func (r *Repairer) FillSentinel(t *model.Table, field, sentinel string) {
	filled := 0
	for i := range t.Records {
		if !model.IsMissing(t.Records[i].Get(field)) {
			continue
		}
		t.Records[i].Set(field, sentinel)
		filled++
	}
	if filled > 0 {
		r.logger.Info("filled categorical sentinel",
			zap.String("table", t.Name),
			zap.String("field", field),
			zap.String("sentinel", sentinel),
			zap.Int("filled", filled))
	}
}
