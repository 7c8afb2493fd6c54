package dataset

import (
	"testing"

	"github.com/smallmem/flatbench/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Shape(t *testing.T) {
	doc := Generate(23)

	assert.Equal(t, 12345, doc["match_id"])
	assert.Equal(t, "Small Mem Stadium", doc["venue"])
	assert.Equal(t, models.JSONObject{}, doc["away"])

	home, ok := doc["home"].(models.JSONObject)
	require.True(t, ok)
	teamsheet, ok := home["teamsheet"].(models.JSONArray)
	require.True(t, ok)
	require.Len(t, teamsheet, 23)

	first, ok := teamsheet[0].(models.JSONObject)
	require.True(t, ok)
	assert.Equal(t, 1, first["player_id"])
	assert.Equal(t, "Forward", first["position"])
	assert.Equal(t, false, first["substitute"])

	stats, ok := first["match_stats"].(models.JSONObject)
	require.True(t, ok)
	assert.Len(t, stats, len(StatFields))
	for _, field := range StatFields {
		assert.Contains(t, stats, field)
	}
}

func TestGenerate_Positions(t *testing.T) {
	doc := Generate(20)
	teamsheet := doc["home"].(models.JSONObject)["teamsheet"].(models.JSONArray)

	position := func(i int) string {
		return teamsheet[i].(models.JSONObject)["position"].(string)
	}
	substitute := func(i int) bool {
		return teamsheet[i].(models.JSONObject)["substitute"].(bool)
	}

	assert.Equal(t, "Forward", position(7))    // player 8
	assert.Equal(t, "Back", position(8))       // player 9
	assert.Equal(t, "Back", position(14))      // player 15
	assert.Equal(t, "Substitute", position(15)) // player 16
	assert.False(t, substitute(14))
	assert.True(t, substitute(15))
}

func TestGenerate_Deterministic(t *testing.T) {
	assert.Equal(t, Generate(23), Generate(23))
}

func TestClone_Independent(t *testing.T) {
	doc := Generate(3)
	copied := Clone(doc).(models.JSONObject)
	assert.Equal(t, models.JSONValue(doc), models.JSONValue(copied))

	// Mutating the clone must not touch the original.
	player := copied["home"].(models.JSONObject)["teamsheet"].(models.JSONArray)[0].(models.JSONObject)
	delete(player, "match_stats")

	original := doc["home"].(models.JSONObject)["teamsheet"].(models.JSONArray)[0].(models.JSONObject)
	assert.Contains(t, original, "match_stats")
}
