package datagen

import (
	"sync/atomic"

	"github.com/dmartlab/martgen/internal/logging"
)

// ProgressReporter tracks and reports long-running per-entity progress.
// Update is safe to call from concurrent workers.
type ProgressReporter struct {
	entity   string
	total    int64
	current  atomic.Int64
	interval int64
}

// NewProgressReporter creates a progress reporter that logs every interval
// records.
func NewProgressReporter(entity string, total, interval int64) *ProgressReporter {
	if interval <= 0 {
		interval = 10000
	}
	return &ProgressReporter{
		entity:   entity,
		total:    total,
		interval: interval,
	}
}

// Update advances the counter and logs if an interval boundary was crossed.
func (p *ProgressReporter) Update(records int64) {
	current := p.current.Add(records)
	old := current - records

	if current/p.interval > old/p.interval {
		pct := float64(current) / float64(p.total) * 100
		logging.Info().
			Str("entity", p.entity).
			Int64("records", current).
			Int64("total", p.total).
			Float64("percent", pct).
			Msg("Progress")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("entity", p.entity).
		Int64("records", p.current.Load()).
		Msg("Complete")
}
