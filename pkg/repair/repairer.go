// pkg/repair/repairer.go
package repair

import (
	"time"

	"go.uber.org/zap"
)

// Repairer applies the per-dataset repair stages. It owns no data; every
// method receives the table it operates on and mutates it in place while
// preserving the record count.
type Repairer struct {
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Repairer with the given logger.
func New(logger *zap.Logger) *Repairer {
	return &Repairer{
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the clock used by the current-date fallback.
func (r *Repairer) WithClock(now func() time.Time) *Repairer {
	r.now = now
	return r
}
