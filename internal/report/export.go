package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/smallmem/flatbench/internal/errors"
	"github.com/smallmem/flatbench/internal/models"
)

// Export writes the results to path in the given format ("json" or "csv").
func Export(path, format string, results []models.TrialResult) error {
	if len(results) == 0 {
		return errors.NewReportError("nothing to export", errors.ErrNoTrials)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create '%s'", path), err)
	}
	defer file.Close()

	switch format {
	case "json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write JSON to '%s'", path), err)
		}
	case "csv":
		if err := writeCSV(file, results); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write CSV to '%s'", path), err)
		}
	default:
		return errors.NewReportError(fmt.Sprintf("format %q", format), errors.ErrUnknownFormat)
	}
	return nil
}

func writeCSV(file *os.File, results []models.TrialResult) error {
	w := csv.NewWriter(file)
	if err := w.Write([]string{"num_players", "strategy", "rows", "time_in_s", "alloc_bytes", "allocs", "error"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			strconv.Itoa(r.NumPlayers),
			r.Strategy,
			strconv.Itoa(r.Rows),
			strconv.FormatFloat(r.Seconds, 'g', -1, 64),
			strconv.FormatUint(r.AllocBytes, 10),
			strconv.FormatUint(r.Allocs, 10),
			r.Err,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
