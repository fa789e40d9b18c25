// pkg/repair/identifier.go
package repair

import (
	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/model"
)

// Dedupe removes records whose key value repeats an earlier record's key,
// keeping the first occurrence. Records with a missing key are never
// treated as duplicates of each other; FillMissingKeys assigns them fresh
// identifiers afterwards.
func (r *Repairer) Dedupe(t *model.Table) {
	seen := make(map[int64]bool, t.Len())
	kept := make([]model.Record, 0, t.Len())
	var removed []int64
	for i := range t.Records {
		key := t.Key(i)
		if model.IsMissing(key) {
			kept = append(kept, t.Records[i])
			continue
		}
		k, err := model.AsInt(key)
		if err != nil {
			kept = append(kept, t.Records[i])
			continue
		}
		if seen[k] {
			removed = append(removed, k)
			continue
		}
		seen[k] = true
		kept = append(kept, t.Records[i])
	}
	t.Records = kept
	if len(removed) > 0 {
		r.logger.Info("removed duplicate keys",
			zap.String("table", t.Name),
			zap.Int64s("keys", removed),
			zap.Int("removed", len(removed)),
			zap.Int("remaining", t.Len()))
	}
}

// FillMissingKeys assigns sequential identifiers to records with a missing
// key, starting one past the current maximum. An all-missing key column
// starts at 1. Existing keys are normalized to int64 in the same pass.
func (r *Repairer) FillMissingKeys(t *model.Table) {
	var max int64
	for i := range t.Records {
		key := t.Key(i)
		if model.IsMissing(key) {
			continue
		}
		k, err := model.AsInt(key)
		if err != nil {
			continue
		}
		t.Records[i].Set(t.KeyField, k)
		if k > max {
			max = k
		}
	}

	next := max + 1
	filled := 0
	for i := range t.Records {
		if !model.IsMissing(t.Key(i)) {
			continue
		}
		t.Records[i].Set(t.KeyField, next)
		t.Records[i].MarkImputed(t.KeyField, model.MethodSequential)
		next++
		filled++
	}
	if filled > 0 {
		r.logger.Info("assigned sequential keys",
			zap.String("table", t.Name),
			zap.String("field", t.KeyField),
			zap.Int("assigned", filled),
			zap.Int64("first", max+1))
	}
}
