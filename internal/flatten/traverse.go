package flatten

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/smallmem/flatbench/internal/models"
)

// frame is one pending entry on the explicit depth-first work-list: a value
// together with the rendered path prefix that leads to it. A frame with a
// non-zero unmark field is a sentinel that removes a container from the
// visited set once its whole subtree has been traversed.
type frame struct {
	key    string
	val    models.JSONValue
	unmark uintptr
}

// expand turns a container frame into its child frames, in the order they
// must be pushed so that popping yields depth-first visit order. For an
// empty container it may instead produce a single pair to emit, depending
// on the empty-container policy. The container is marked in visited for the
// duration of its subtree; revisiting a marked container means the input
// holds a cycle.
func expand(f frame, opts Options, visited map[uintptr]struct{}) (children []frame, emit *Pair, err error) {
	if obj, ok := asObject(f.val); ok {
		if len(obj) == 0 {
			if opts.EmptyContainers == EmitEmpty {
				return nil, &Pair{Key: f.key, Value: f.val}, nil
			}
			return nil, nil, nil
		}

		ptr := reflect.ValueOf(obj).Pointer()
		if _, seen := visited[ptr]; seen {
			return nil, nil, fmt.Errorf("%w: object revisited at %q", ErrCycleDetected, f.key)
		}
		visited[ptr] = struct{}{}

		keys := sortedKeys(obj)
		children = make([]frame, 0, len(keys)+1)
		children = append(children, frame{unmark: ptr})
		for i := len(keys) - 1; i >= 0; i-- {
			k := keys[i]
			children = append(children, frame{key: opts.fieldKey(f.key, k), val: obj[k]})
		}
		return children, nil, nil
	}

	if arr, ok := asArray(f.val); ok {
		if len(arr) == 0 {
			if opts.EmptyContainers == EmitEmpty {
				return nil, &Pair{Key: f.key, Value: f.val}, nil
			}
			return nil, nil, nil
		}

		ptr := reflect.ValueOf(arr).Pointer()
		if _, seen := visited[ptr]; seen {
			return nil, nil, fmt.Errorf("%w: array revisited at %q", ErrCycleDetected, f.key)
		}
		visited[ptr] = struct{}{}

		children = make([]frame, 0, len(arr)+1)
		children = append(children, frame{unmark: ptr})
		for i := len(arr) - 1; i >= 0; i-- {
			children = append(children, frame{key: opts.indexKey(f.key, i), val: arr[i]})
		}
		return children, nil, nil
	}

	return nil, nil, fmt.Errorf("%w: %T at %q", ErrUnsupportedValueType, f.val, f.key)
}

// asObject reports whether v is a JSON object. models.JSONObject is an
// alias for the raw decoder type, so one assertion covers both.
func asObject(v models.JSONValue) (models.JSONObject, bool) {
	obj, ok := v.(models.JSONObject)
	return obj, ok
}

// asArray reports whether v is a JSON array.
func asArray(v models.JSONValue) (models.JSONArray, bool) {
	arr, ok := v.(models.JSONArray)
	return arr, ok
}

// isScalar reports whether v is a leaf value: null, boolean, string or any
// numeric representation the decoder (or a Go caller) may hand us.
func isScalar(v models.JSONValue) bool {
	switch v.(type) {
	case nil, bool, string, json.Number,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

// sortedKeys returns the object's keys in sorted order. Go maps have no
// defined iteration order, so sorting is what makes traversal (and with it
// the eager/lazy equivalence) deterministic.
func sortedKeys(obj map[string]models.JSONValue) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
