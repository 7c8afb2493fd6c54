// Package report formats benchmark trial results: per-size tables sorted by
// memory use, an aggregate summary per strategy, and JSON/CSV export for
// further analysis.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/smallmem/flatbench/internal/models"
)

// PrintResults writes one table per teamsheet size, each sorted by
// allocated bytes ascending, so the cheapest strategy tops its table.
func PrintResults(w io.Writer, results []models.TrialResult) {
	for _, count := range sizes(results) {
		fmt.Fprintf(w, "=== %d players ===\n\n", count)
		printTable(w, bySize(results, count))
		fmt.Fprintln(w)
	}
}

// PrintAggregate writes all trials in one table, ordered by size then by
// allocated bytes, mirroring the per-size tables at a glance.
func PrintAggregate(w io.Writer, results []models.TrialResult) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "AGGREGATED BENCHMARK RESULTS - by memory usage")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	ordered := make([]models.TrialResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].NumPlayers != ordered[j].NumPlayers {
			return ordered[i].NumPlayers < ordered[j].NumPlayers
		}
		return ordered[i].AllocBytes < ordered[j].AllocBytes
	})

	fmt.Fprintf(w, "%-11s | %-10s | %-12s | %-12s | %-10s\n",
		"Players", "Strategy", "Time", "Memory", "Allocs")
	fmt.Fprintln(w, strings.Repeat("-", 66))
	for _, r := range ordered {
		if r.Failed() {
			fmt.Fprintf(w, "%-11d | %-10s | failed: %s\n", r.NumPlayers, r.Strategy, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-11d | %-10s | %-12s | %-12s | %-10d\n",
			r.NumPlayers, r.Strategy, formatSeconds(r.Seconds), formatBytes(r.AllocBytes), r.Allocs)
	}
	fmt.Fprintln(w)
}

// PrintSummary writes per-strategy statistics over every size that ran:
// how each strategy's time and memory behave across the whole suite.
func PrintSummary(w io.Writer, results []models.TrialResult) {
	fmt.Fprintln(w, "=== Per-strategy summary ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s | %-12s | %-12s | %-12s | %-12s\n",
		"Strategy", "Median Time", "Max Time", "Median Mem", "Max Mem")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, name := range strategies(results) {
		var seconds, allocs []float64
		for _, r := range results {
			if r.Strategy != name || r.Failed() {
				continue
			}
			seconds = append(seconds, r.Seconds)
			allocs = append(allocs, float64(r.AllocBytes))
		}
		timeStats := Compute(seconds)
		memStats := Compute(allocs)
		fmt.Fprintf(w, "%-10s | %-12s | %-12s | %-12s | %-12s\n",
			name,
			formatSeconds(timeStats.Median), formatSeconds(timeStats.Max),
			formatBytes(uint64(memStats.Median)), formatBytes(uint64(memStats.Max)))
	}
	fmt.Fprintln(w)
}

func printTable(w io.Writer, rows []models.TrialResult) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AllocBytes < rows[j].AllocBytes
	})

	fmt.Fprintf(w, "%-10s | %-8s | %-12s | %-12s | %-10s\n",
		"Strategy", "Rows", "Time", "Memory", "Allocs")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	for _, r := range rows {
		if r.Failed() {
			fmt.Fprintf(w, "%-10s | failed: %s\n", r.Strategy, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-10s | %-8d | %-12s | %-12s | %-10d\n",
			r.Strategy, r.Rows, formatSeconds(r.Seconds), formatBytes(r.AllocBytes), r.Allocs)
	}
}

// sizes returns the distinct player counts in first-seen order.
func sizes(results []models.TrialResult) []int {
	var out []int
	seen := make(map[int]bool)
	for _, r := range results {
		if !seen[r.NumPlayers] {
			seen[r.NumPlayers] = true
			out = append(out, r.NumPlayers)
		}
	}
	return out
}

// strategies returns the distinct strategy names in first-seen order.
func strategies(results []models.TrialResult) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !seen[r.Strategy] {
			seen[r.Strategy] = true
			out = append(out, r.Strategy)
		}
	}
	return out
}

func bySize(results []models.TrialResult, count int) []models.TrialResult {
	var out []models.TrialResult
	for _, r := range results {
		if r.NumPlayers == count {
			out = append(out, r)
		}
	}
	return out
}

// formatSeconds renders a duration in the unit that keeps it readable.
func formatSeconds(s float64) string {
	switch {
	case s >= 1:
		return fmt.Sprintf("%.3f s", s)
	case s >= 1e-3:
		return fmt.Sprintf("%.3f ms", s*1e3)
	default:
		return fmt.Sprintf("%.1f µs", s*1e6)
	}
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(b uint64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.2f MiB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2f KiB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
