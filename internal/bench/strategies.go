package bench

import (
	"sort"
	"strconv"
	"strings"

	"github.com/smallmem/flatbench/internal/dataset"
	"github.com/smallmem/flatbench/internal/errors"
	"github.com/smallmem/flatbench/internal/flatten"
	"github.com/smallmem/flatbench/internal/models"
)

// rowOptions is the per-player flattening configuration: stats keys are
// joined with underscores so they read as column names, not paths.
func rowOptions() flatten.Options {
	opts := flatten.DefaultOptions()
	opts.Separator = "_"
	return opts
}

// manualStrategy is the static baseline: every column is spelled out by
// hand, nothing is derived from the document's shape. It only knows about
// the fields the generated dataset carries.
type manualStrategy struct{}

func (manualStrategy) Name() string { return "manual" }

func (manualStrategy) Rows(doc models.JSONObject) ([]models.PlayerRow, error) {
	players := teamsheet(doc)
	rows := make([]models.PlayerRow, 0, len(players))
	for _, p := range players {
		player, ok := p.(models.JSONObject)
		if !ok {
			return nil, errors.NewBenchError("teamsheet entry is not an object", nil)
		}
		stats, _ := player["match_stats"].(models.JSONObject)

		row := make(models.PlayerRow, len(dataset.IdentityFields)+len(dataset.StatFields))
		for _, f := range dataset.IdentityFields {
			row[f] = player[f]
		}
		for _, f := range dataset.StatFields {
			if stats != nil {
				row[f] = stats[f]
			} else {
				row[f] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// eagerStrategy flattens each player's match_stats with the eager variant
// and merges the result into the player's identity fields.
type eagerStrategy struct{}

func (eagerStrategy) Name() string { return "eager" }

func (eagerStrategy) Rows(doc models.JSONObject) ([]models.PlayerRow, error) {
	players := teamsheet(doc)
	opts := rowOptions()
	rows := make([]models.PlayerRow, 0, len(players))
	for _, p := range players {
		player, ok := p.(models.JSONObject)
		if !ok {
			return nil, errors.NewBenchError("teamsheet entry is not an object", nil)
		}

		row := make(models.PlayerRow, len(player)+len(dataset.StatFields))
		for k, v := range player {
			if k == "match_stats" {
				continue
			}
			row[columnName(k)] = v
		}

		if stats, present := player["match_stats"]; present {
			flat, err := flatten.Flatten(stats, opts)
			if err != nil {
				return nil, errors.NewBenchError("flattening match_stats", err)
			}
			for k, v := range flat {
				if k == "" {
					k = "match_stats"
				}
				row[columnName(k)] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// lazyStrategy is eagerStrategy with the cursor variant: stats pairs are
// consumed one at a time instead of materializing an intermediate record.
type lazyStrategy struct{}

func (lazyStrategy) Name() string { return "lazy" }

func (lazyStrategy) Rows(doc models.JSONObject) ([]models.PlayerRow, error) {
	players := teamsheet(doc)
	opts := rowOptions()
	rows := make([]models.PlayerRow, 0, len(players))
	for _, p := range players {
		player, ok := p.(models.JSONObject)
		if !ok {
			return nil, errors.NewBenchError("teamsheet entry is not an object", nil)
		}

		row := make(models.PlayerRow, len(player)+len(dataset.StatFields))
		for k, v := range player {
			if k == "match_stats" {
				continue
			}
			row[columnName(k)] = v
		}

		if stats, present := player["match_stats"]; present {
			cur, err := flatten.NewCursor(stats, opts)
			if err != nil {
				return nil, errors.NewBenchError("flattening match_stats", err)
			}
			for pair, ok := cur.Next(); ok; pair, ok = cur.Next() {
				k := pair.Key
				if k == "" {
					k = "match_stats"
				}
				row[columnName(k)] = pair.Value
			}
			if err := cur.Err(); err != nil {
				return nil, errors.NewBenchError("flattening match_stats", err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// teamsheetPrefix locates player leaves in a whole-document flat record.
const teamsheetPrefix = "home.teamsheet."

// documentStrategy flattens the entire match document in one eager pass and
// regroups the teamsheet leaves into player rows afterwards.
type documentStrategy struct{}

func (documentStrategy) Name() string { return "document" }

func (documentStrategy) Rows(doc models.JSONObject) ([]models.PlayerRow, error) {
	rec, err := flatten.Flatten(doc, flatten.DefaultOptions())
	if err != nil {
		return nil, errors.NewBenchError("flattening document", err)
	}

	grouped := make(map[int]models.PlayerRow)
	for key, v := range rec {
		if err := addLeaf(grouped, key, v); err != nil {
			return nil, err
		}
	}
	return orderRows(grouped), nil
}

// streamStrategy is documentStrategy on the cursor: rows fill in as leaves
// stream out of the traversal, without the whole-document record in between.
type streamStrategy struct{}

func (streamStrategy) Name() string { return "stream" }

func (streamStrategy) Rows(doc models.JSONObject) ([]models.PlayerRow, error) {
	cur, err := flatten.NewCursor(doc, flatten.DefaultOptions())
	if err != nil {
		return nil, errors.NewBenchError("flattening document", err)
	}

	grouped := make(map[int]models.PlayerRow)
	for pair, ok := cur.Next(); ok; pair, ok = cur.Next() {
		if err := addLeaf(grouped, pair.Key, pair.Value); err != nil {
			return nil, err
		}
	}
	if err := cur.Err(); err != nil {
		return nil, errors.NewBenchError("flattening document", err)
	}
	return orderRows(grouped), nil
}

// addLeaf routes one whole-document leaf into the row of the player it
// belongs to. Leaves outside the home teamsheet are match metadata and are
// not part of the tabular output.
func addLeaf(grouped map[int]models.PlayerRow, key string, v models.JSONValue) error {
	rest, ok := strings.CutPrefix(key, teamsheetPrefix)
	if !ok {
		return nil
	}

	dot := strings.IndexByte(rest, '.')
	if dot == -1 {
		// A scalar directly at a teamsheet position; the document contract
		// has objects there, so there is no column to file it under.
		return nil
	}

	idx, err := strconv.Atoi(rest[:dot])
	if err != nil {
		return errors.NewBenchError("unexpected teamsheet path "+key, err)
	}

	col := rest[dot+1:]
	col = strings.TrimPrefix(col, "match_stats.")
	col = strings.ReplaceAll(col, ".", "_")

	row := grouped[idx]
	if row == nil {
		row = make(models.PlayerRow)
		grouped[idx] = row
	}
	row[columnName(col)] = v
	return nil
}

// orderRows turns the per-index groups back into teamsheet order.
func orderRows(grouped map[int]models.PlayerRow) []models.PlayerRow {
	indices := make([]int, 0, len(grouped))
	for i := range grouped {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	rows := make([]models.PlayerRow, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, grouped[i])
	}
	return rows
}
