// Package dataset builds the sample rugby match document the benchmark
// runs against. The document imitates a real-life sports statistics API
// payload: match metadata, a home side with a teamsheet of players, each
// carrying a nested match_stats object, and an empty away side.
package dataset

import (
	"fmt"
	"math"

	"github.com/smallmem/flatbench/internal/models"
)

// StatFields lists the match_stats keys every generated player carries,
// in the order the tabular strategies emit them as columns.
var StatFields = []string{
	"points",
	"tries",
	"turnovers_conceded",
	"offload",
	"dominant_tackles",
	"missed_tackles",
	"tackle_success",
	"tackle_try_saver",
	"tackle_turnover",
	"penalty_goals",
	"missed_penalty_goals",
	"conversion_goals",
	"missed_conversion_goals",
	"drop_goals_converted",
	"drop_goal_missed",
	"runs",
	"metres",
	"clean_breaks",
	"defenders_beaten",
	"try_assists",
	"passes",
	"bad_passes",
	"rucks_won",
	"rucks_lost",
	"lineouts_won",
	"penalties_conceded",
}

// IdentityFields lists the per-player keys outside match_stats.
var IdentityFields = []string{"player_id", "name", "position", "substitute"}

// Generate builds a deterministic match document with the given number of
// players on the home teamsheet. Players 1-8 are forwards, 9-15 backs,
// and anyone beyond 15 a substitute.
func Generate(numPlayers int) models.JSONObject {
	players := make(models.JSONArray, 0, numPlayers)
	for i := 1; i <= numPlayers; i++ {
		var position string
		switch {
		case i <= 8:
			position = "Forward"
		case i <= 15:
			position = "Back"
		default:
			position = "Substitute"
		}

		player := models.JSONObject{
			"player_id":  i,
			"name":       fmt.Sprintf("Player %d", i),
			"position":   position,
			"substitute": i > 15,
			"match_stats": models.JSONObject{
				"points":                  (i % 3) * 5,
				"tries":                   i % 3,
				"turnovers_conceded":      i % 4,
				"offload":                 i % 5,
				"dominant_tackles":        i % 10,
				"missed_tackles":          i % 5,
				"tackle_success":          round2(0.85 + float64(i%15)/100),
				"tackle_try_saver":        i % 2,
				"tackle_turnover":         i % 3,
				"penalty_goals":           i % 2,
				"missed_penalty_goals":    i % 2,
				"conversion_goals":        i % 4,
				"missed_conversion_goals": i % 4,
				"drop_goals_converted":    0,
				"drop_goal_missed":        i % 2,
				"runs":                    i%20 + 5,
				"metres":                  (i%20 + 5) * 8,
				"clean_breaks":            i % 4,
				"defenders_beaten":        i % 6,
				"try_assists":             i % 2,
				"passes":                  i%30 + 10,
				"bad_passes":              i % 5,
				"rucks_won":               i % 15,
				"rucks_lost":              i % 3,
				"lineouts_won":            i % 4,
				"penalties_conceded":      i % 3,
			},
		}
		players = append(players, player)
	}

	return models.JSONObject{
		"match_id": 12345,
		"date":     "2025-07-27",
		"venue":    "Small Mem Stadium",
		"home": models.JSONObject{
			"team_id":   101,
			"team_name": "The Bloody Ingestors",
			"teamsheet": players,
		},
		"away": models.JSONObject{},
	}
}

// Clone deep-copies a JSON value so that a strategy mutating its input
// cannot leak changes into the next trial.
func Clone(v models.JSONValue) models.JSONValue {
	switch vv := v.(type) {
	case models.JSONObject:
		out := make(models.JSONObject, len(vv))
		for k, val := range vv {
			out[k] = Clone(val)
		}
		return out
	case models.JSONArray:
		out := make(models.JSONArray, len(vv))
		for i, val := range vv {
			out[i] = Clone(val)
		}
		return out
	default:
		return vv
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
