package kinematics

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.uber.org/atomic"
)

var (
	rollbackMeasure  = stats.Int64("chainik/rollbacks", "solutions discarded by the obstacle guard", stats.UnitDimensionless)
	iterationMeasure = stats.Int64("chainik/iterations", "FABRIK rounds run in a frame", stats.UnitDimensionless)

	chainKey = tag.MustNewKey("chain")

	// RollbackView counts discarded solutions per chain. Hosts that export metrics register it
	// with view.Register.
	RollbackView = &view.View{
		Name:        "chainik/rollbacks",
		Measure:     rollbackMeasure,
		Description: "solutions discarded by the obstacle guard",
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{chainKey},
	}
	// IterationView is the distribution of FABRIK rounds per solved frame.
	IterationView = &view.View{
		Name:        "chainik/iterations",
		Measure:     iterationMeasure,
		Description: "FABRIK rounds run in a frame",
		Aggregation: view.Distribution(0, 1, 2, 5, 10, 20, 50, 100),
		TagKeys:     []tag.Key{chainKey},
	}
)

// Stats counts what happened across frames. Counters are atomic so another goroutine may read
// them while the solver runs.
type Stats struct {
	frames      atomic.Int64
	skipped     atomic.Int64
	reinits     atomic.Int64
	unreachable atomic.Int64
	rollbacks   atomic.Int64
	grounded    atomic.Int64
	iterations  atomic.Int64
}

// StatsSnapshot is a point in time copy of Stats.
type StatsSnapshot struct {
	Frames            int64
	Skipped           int64
	Reinitializations int64
	Unreachable       int64
	Rollbacks         int64
	Grounded          int64
	Iterations        int64
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Frames:            s.frames.Load(),
		Skipped:           s.skipped.Load(),
		Reinitializations: s.reinits.Load(),
		Unreachable:       s.unreachable.Load(),
		Rollbacks:         s.rollbacks.Load(),
		Grounded:          s.grounded.Load(),
		Iterations:        s.iterations.Load(),
	}
}

func (s *Stats) record(ctx context.Context, chain string, report FrameReport) {
	s.frames.Inc()
	if report.Skipped {
		s.skipped.Inc()
		return
	}
	if report.Reinitialized {
		s.reinits.Inc()
	}
	if report.Grounded {
		s.grounded.Inc()
		return
	}
	if !report.Reachable {
		s.unreachable.Inc()
	}
	if report.RolledBack {
		s.rollbacks.Inc()
	}
	s.iterations.Add(int64(report.Iterations))

	tagged, err := tag.New(ctx, tag.Upsert(chainKey, chain))
	if err != nil {
		tagged = ctx
	}
	stats.Record(tagged, iterationMeasure.M(int64(report.Iterations)))
	if report.RolledBack {
		stats.Record(tagged, rollbackMeasure.M(1))
	}
}
