package bench

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/smallmem/flatbench/internal/dataset"
	"github.com/smallmem/flatbench/internal/models"
)

// Runner drives the benchmark suite: each strategy runs against a generated
// document for every configured teamsheet size, and each trial is measured
// for wall-clock time and heap allocation.
type Runner struct {
	// Counts are the teamsheet sizes to generate, in run order.
	Counts []int
	// Iterations is how many times each strategy runs per size; reported
	// numbers are per-iteration averages. Values below 1 mean 1.
	Iterations int
	// Verbose enables progress logging to Log.
	Verbose bool
	// Log receives progress output; nil means no logging.
	Log io.Writer
}

// Run executes all trials and returns one result per strategy per size.
// A failing trial is recorded with its error and does not abort the suite;
// the computation is deterministic, so it is not retried either.
func (r Runner) Run(strategies []Strategy) []models.TrialResult {
	iterations := r.Iterations
	if iterations < 1 {
		iterations = 1
	}

	var results []models.TrialResult
	for _, count := range r.Counts {
		r.logf("--- Running benchmarks for %d players ---\n", count)
		doc := dataset.Generate(count)

		for _, s := range strategies {
			r.logf("  %s...\n", s.Name())
			result := Measure(s, doc, iterations)
			result.NumPlayers = count
			results = append(results, result)
		}
	}
	return results
}

// Measure runs one strategy against one document the given number of times
// and averages the measurements. Every iteration gets its own deep copy of
// the document, taken outside the measured region, so strategies that
// consume their input do not contaminate each other.
func Measure(s Strategy, doc models.JSONObject, iterations int) models.TrialResult {
	result := models.TrialResult{Strategy: s.Name()}

	var (
		elapsed    time.Duration
		allocBytes uint64
		allocs     uint64
		before     runtime.MemStats
		after      runtime.MemStats
	)

	runtime.GC()
	for i := 0; i < iterations; i++ {
		clone := dataset.Clone(doc).(models.JSONObject)

		runtime.ReadMemStats(&before)
		start := time.Now()
		rows, err := s.Rows(clone)
		elapsed += time.Since(start)
		runtime.ReadMemStats(&after)

		if err != nil {
			result.Err = err.Error()
			return result
		}

		allocBytes += after.TotalAlloc - before.TotalAlloc
		allocs += after.Mallocs - before.Mallocs
		result.Rows = len(rows)
	}

	n := uint64(iterations)
	result.Seconds = elapsed.Seconds() / float64(iterations)
	result.AllocBytes = allocBytes / n
	result.Allocs = allocs / n
	return result
}

func (r Runner) logf(format string, args ...interface{}) {
	if !r.Verbose || r.Log == nil {
		return
	}
	fmt.Fprintf(r.Log, format, args...)
}
