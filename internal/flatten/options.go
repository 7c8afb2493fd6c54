package flatten

import (
	"fmt"
	"strconv"
	"strings"
)

// IndexStyle selects how sequence indices are rendered into path keys.
type IndexStyle string

const (
	// IndexDotted renders indices as plain path components: "tries.0".
	IndexDotted IndexStyle = "dotted"
	// IndexBracket renders indices inline in brackets: "tries[0]".
	IndexBracket IndexStyle = "bracket"
)

// EmptyPolicy selects what happens to empty objects and arrays.
type EmptyPolicy string

const (
	// OmitEmpty drops empty containers from the output entirely.
	OmitEmpty EmptyPolicy = "omit"
	// EmitEmpty emits the empty container itself as the value for its path.
	EmitEmpty EmptyPolicy = "emit_empty"
)

// Options controls path rendering and empty-container handling for one
// flatten call. The zero value is not valid; use DefaultOptions.
//
// Field names in the input must not themselves contain the separator (or
// bracket characters when IndexStyle is IndexBracket); rendered keys are
// only guaranteed unique under that constraint, and violations surface as
// ErrKeyCollision rather than silent overwrites.
type Options struct {
	Separator       string
	IndexStyle      IndexStyle
	EmptyContainers EmptyPolicy
}

// DefaultOptions returns the baseline configuration: dot separator,
// dotted indices, empty containers omitted.
func DefaultOptions() Options {
	return Options{
		Separator:       ".",
		IndexStyle:      IndexDotted,
		EmptyContainers: OmitEmpty,
	}
}

// Validate checks the options for internal consistency.
func (o Options) Validate() error {
	if o.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}
	switch o.IndexStyle {
	case IndexDotted, IndexBracket:
	default:
		return fmt.Errorf("invalid index style %q", o.IndexStyle)
	}
	if o.IndexStyle == IndexBracket && strings.ContainsAny(o.Separator, "[]") {
		return fmt.Errorf("separator %q conflicts with bracket index style", o.Separator)
	}
	switch o.EmptyContainers {
	case OmitEmpty, EmitEmpty:
	default:
		return fmt.Errorf("invalid empty-container policy %q", o.EmptyContainers)
	}
	return nil
}

// fieldKey renders a mapping key appended to the given path prefix.
func (o Options) fieldKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + o.Separator + name
}

// indexKey renders a sequence index appended to the given path prefix.
func (o Options) indexKey(prefix string, i int) string {
	if o.IndexStyle == IndexBracket {
		return prefix + "[" + strconv.Itoa(i) + "]"
	}
	return o.fieldKey(prefix, strconv.Itoa(i))
}
