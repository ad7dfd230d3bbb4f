// Package perf accumulates average durations for the per-tick phases and
// reports them through the performance logger at shutdown.
package perf

import (
	"sort"
	"time"

	"github.com/gregjohnson2017/overlay-clock/pkg/log"
)

type average struct {
	// nanoseconds
	total int64
	// recordings
	count int64
}

var enabled bool
var averages = make(map[string]average)

// StopWatch is a time.Time with stopping methods
type StopWatch struct {
	t time.Time
}

// Start returns a newly started stopwatch
func Start() StopWatch {
	return StopWatch{time.Now()}
}

// StopRecordAverage records the elapsed time under key.
func (sw StopWatch) StopRecordAverage(key string) {
	RecordAverageTime(key, time.Since(sw.t).Nanoseconds())
}

func RecordAverageTime(key string, nanos int64) {
	if !enabled {
		return
	}

	var avg average
	if v, ok := averages[key]; ok {
		avg = v
	}

	avg.total += nanos
	avg.count++
	averages[key] = avg
}

func SetMetricsEnabled(enable bool) {
	enabled = enable
}

func LogMetrics() {
	if !enabled || len(averages) == 0 {
		return
	}

	log.Perff("average metrics")
	keys := make([]string, 0, len(averages))
	for k := range averages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v, ok := averages[k]; ok {
			avg := time.Duration(v.total / v.count)
			log.Perff("- %v = %v", k, avg)
		}
	}
}
