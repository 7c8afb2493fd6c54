// Package bench runs the flattening strategies against generated match
// documents and measures how long they take and how much they allocate.
// Every strategy answers the same question, turning the home teamsheet into
// one flat row per player, so their outputs are directly comparable.
package bench

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/smallmem/flatbench/internal/errors"
	"github.com/smallmem/flatbench/internal/models"
)

// Strategy is one competing way of flattening a match document into
// tabular player rows.
type Strategy interface {
	// Name identifies the strategy in results and on the command line.
	Name() string
	// Rows flattens the document's home teamsheet into one row per player.
	// The strategy may mutate doc; callers hand each trial its own copy.
	Rows(doc models.JSONObject) ([]models.PlayerRow, error)
}

// All returns every registered strategy in presentation order.
func All() []Strategy {
	return []Strategy{
		manualStrategy{},
		eagerStrategy{},
		lazyStrategy{},
		documentStrategy{},
		streamStrategy{},
	}
}

// Lookup resolves strategy names to strategies, preserving order. An empty
// list selects all of them.
func Lookup(names []string) ([]Strategy, error) {
	if len(names) == 0 {
		return All(), nil
	}

	byName := make(map[string]Strategy)
	for _, s := range All() {
		byName[s.Name()] = s
	}

	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		s, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, errors.NewBenchError(fmt.Sprintf("strategy %q", name), errors.ErrUnknownStrategy)
		}
		out = append(out, s)
	}
	return out, nil
}

// teamsheet pulls the home side's player list out of a match document.
// Missing sections yield an empty list, matching how the original API
// payload degrades for a side with no data.
func teamsheet(doc models.JSONObject) models.JSONArray {
	home, ok := doc["home"].(models.JSONObject)
	if !ok {
		return nil
	}
	players, _ := home["teamsheet"].(models.JSONArray)
	return players
}

// columnName normalizes a flattened path into a snake_case column label,
// so rows from every strategy carry identical headers.
func columnName(key string) string {
	return strcase.ToSnake(key)
}
