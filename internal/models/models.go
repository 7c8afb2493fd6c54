package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
// The types are aliases so that values decoded straight into
// map[string]interface{} / []interface{} interoperate with them freely.
type JSONValue = interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject = map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray = []JSONValue

// FlatRecord is the output of one eager flatten call: a mapping from
// rendered path string to the scalar found at that path. Keys are unique
// by construction; the record is produced fresh per input document and
// owned by the caller afterwards.
type FlatRecord map[string]JSONValue

// PlayerRow is one tabular record produced by a flattening strategy:
// a player's identity fields plus their match stats, all at one level.
type PlayerRow map[string]JSONValue

// TrialResult holds the measurements of one benchmark trial: one strategy
// run against a document of a given size.
type TrialResult struct {
	Strategy   string  `json:"strategy"`
	NumPlayers int     `json:"num_players"`
	Rows       int     `json:"rows"`
	Seconds    float64 `json:"time_in_s"`
	AllocBytes uint64  `json:"alloc_bytes"`
	Allocs     uint64  `json:"allocs"`
	Err        string  `json:"error,omitempty"`
}

// Failed reports whether the trial ended in an error rather than a result.
func (r TrialResult) Failed() bool {
	return r.Err != ""
}
