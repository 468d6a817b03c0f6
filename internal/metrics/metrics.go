// internal/metrics/metrics.go
// Package metrics collects call-latency statistics for a benchmark run.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/factorylens/hazardbench/internal/logging"
)

// Stage names used by the benchmark runner. The two-round stage
// includes the clarification wait, not just model time.
const (
	StageSinglePass = "single_pass"
	StageTwoRound   = "two_round"
	StageJudge      = "judge"
)

// RunningStat tracks a single latency statistic using Welford's online
// algorithm. Values are milliseconds.
type RunningStat struct {
	Count int     `json:"count"`
	Min   float64 `json:"min_ms"`
	Max   float64 `json:"max_ms"`
	Mean  float64 `json:"mean_ms"`
	m2    float64
}

func (rs *RunningStat) update(value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.m2 += delta * delta2
}

// StdDev returns the sample standard deviation in milliseconds.
func (rs *RunningStat) StdDev() float64 {
	if rs.Count < 2 {
		return 0
	}
	return math.Sqrt(rs.m2 / float64(rs.Count-1))
}

// Aggregator collects per-stage latency statistics for one run. It is
// safe for concurrent use, though the benchmark records sequentially.
type Aggregator struct {
	mutex  sync.Mutex
	stages map[string]*RunningStat
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{stages: make(map[string]*RunningStat)}
}

// Observe records one call duration under the named stage.
func (a *Aggregator) Observe(stage string, d time.Duration) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	stat, exists := a.stages[stage]
	if !exists {
		stat = &RunningStat{}
		a.stages[stage] = stat
	}
	stat.update(float64(d) / float64(time.Millisecond))
}

// Stat returns a copy of the named stage's statistics and whether the
// stage has been observed at all.
func (a *Aggregator) Stat(stage string) (RunningStat, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	stat, exists := a.stages[stage]
	if !exists {
		return RunningStat{}, false
	}
	return *stat, true
}

// LogSummary writes one log line per observed stage, in stable order.
func (a *Aggregator) LogSummary() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	names := make([]string, 0, len(a.stages))
	for name := range a.stages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		stat := a.stages[name]
		logging.LogEvent("[METRICS] stage=%s calls=%d mean=%.0fms min=%.0fms max=%.0fms stddev=%.0fms",
			name, stat.Count, stat.Mean, stat.Min, stat.Max, stat.StdDev())
	}
}
