// Package flatten converts one decoded JSON value into a flat mapping from
// rendered path strings to scalar values. It offers an eager variant that
// materializes the whole record before returning, and a lazy cursor that
// produces one (path, scalar) pair at a time over an explicit work-list, so
// peak memory stays bounded by the consumed prefix rather than the whole
// output.
//
// Traversal is depth-first with object keys visited in sorted order, which
// makes both variants produce identical pairs in identical order for the
// same input and options.
package flatten

import (
	"errors"
	"fmt"

	"github.com/smallmem/flatbench/internal/models"
)

// Sentinel errors surfaced by flattening and unflattening. All of them are
// fatal to the current call; retrying the same input yields the same error.
var (
	// ErrCycleDetected means the input graph is not a tree: some container
	// is its own ancestor. Values decoded from JSON text are acyclic by
	// construction, but hand-built Go values may not be.
	ErrCycleDetected = errors.New("cycle detected in input value")

	// ErrKeyCollision means two distinct leaves rendered to the same path
	// string, which happens when field names contain the separator or
	// bracket syntax. The call fails rather than silently dropping a value.
	ErrKeyCollision = errors.New("rendered path collision")

	// ErrUnsupportedValueType means the input holds a value outside the
	// JSON union of null, boolean, number, string, object and array.
	ErrUnsupportedValueType = errors.New("unsupported value type")

	// ErrPathConflict means a flat record cannot be reassembled into a
	// nested value: one rendered path is a prefix of another, or an array
	// position is missing.
	ErrPathConflict = errors.New("conflicting paths in flat record")
)

// Flatten eagerly traverses v and returns the complete flat record. The
// input is not mutated; the returned record is owned by the caller.
func Flatten(v models.JSONValue, opts Options) (models.FlatRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	out := make(models.FlatRecord)
	visited := make(map[uintptr]struct{})
	stack := []frame{{val: v}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.unmark != 0 {
			delete(visited, f.unmark)
			continue
		}

		if isScalar(f.val) {
			if _, dup := out[f.key]; dup {
				return nil, fmt.Errorf("%w: two leaves rendered to %q", ErrKeyCollision, f.key)
			}
			out[f.key] = f.val
			continue
		}

		children, emit, err := expand(f, opts, visited)
		if err != nil {
			return nil, err
		}
		if emit != nil {
			if _, dup := out[emit.Key]; dup {
				return nil, fmt.Errorf("%w: two leaves rendered to %q", ErrKeyCollision, emit.Key)
			}
			out[emit.Key] = emit.Value
		}
		stack = append(stack, children...)
	}

	return out, nil
}
