package flatten

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smallmem/flatbench/internal/models"
)

// segment is one parsed component of a rendered path: either an object
// field name or an array index.
type segment struct {
	name  string
	index int
	isIdx bool
}

// Unflatten reverses the path-rendering rule and rebuilds a nested value
// from a flat record. Under the dotted index style a segment consisting
// solely of digits (with no leading zero) is taken to be an array index;
// an object whose keys look like indices therefore round-trips as an array.
// The bracket style has no such ambiguity.
func Unflatten(rec models.FlatRecord, opts Options) (models.JSONValue, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if v, ok := rec[""]; ok {
		// A root-level scalar (or an emitted empty root container)
		// flattens to the single empty key.
		if len(rec) > 1 {
			return nil, fmt.Errorf("%w: root value alongside nested paths", ErrPathConflict)
		}
		return v, nil
	}

	root := &node{}
	for _, key := range sortedKeys(rec) {
		segs, err := parseKey(key, opts)
		if err != nil {
			return nil, err
		}
		if err := root.insert(key, segs, rec[key]); err != nil {
			return nil, err
		}
	}

	return root.finalize()
}

// parseKey splits a rendered path back into its segments.
func parseKey(key string, opts Options) ([]segment, error) {
	var segs []segment
	for _, part := range strings.Split(key, opts.Separator) {
		if opts.IndexStyle == IndexBracket {
			sub, err := parseBracketed(key, part)
			if err != nil {
				return nil, err
			}
			segs = append(segs, sub...)
			continue
		}
		if i, ok := parseIndex(part); ok {
			segs = append(segs, segment{index: i, isIdx: true})
		} else {
			segs = append(segs, segment{name: part})
		}
	}
	return segs, nil
}

// parseBracketed splits one separator-delimited part into a field name and
// any trailing [i][j]... index segments.
func parseBracketed(key, part string) ([]segment, error) {
	var segs []segment
	open := strings.IndexByte(part, '[')
	if open != 0 {
		name := part
		if open > 0 {
			name = part[:open]
		}
		segs = append(segs, segment{name: name})
	}
	for open != -1 {
		rest := part[open+1:]
		close := strings.IndexByte(rest, ']')
		if close == -1 {
			return nil, fmt.Errorf("%w: unterminated index in %q", ErrPathConflict, key)
		}
		i, ok := parseIndex(rest[:close])
		if !ok {
			return nil, fmt.Errorf("%w: invalid index %q in %q", ErrPathConflict, rest[:close], key)
		}
		segs = append(segs, segment{index: i, isIdx: true})
		part = rest[close+1:]
		open = strings.IndexByte(part, '[')
		if open > 0 {
			return nil, fmt.Errorf("%w: text between indices in %q", ErrPathConflict, key)
		}
		if open == -1 && part != "" {
			return nil, fmt.Errorf("%w: text after index in %q", ErrPathConflict, key)
		}
	}
	return segs, nil
}

// parseIndex reports whether s is a canonical rendering of a non-negative
// index, i.e. digits with no leading zero.
func parseIndex(s string) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 || strconv.Itoa(i) != s {
		return 0, false
	}
	return i, true
}

// node is one position in the nested value being rebuilt. Exactly one of
// leaf, obj or arr is populated once the node has been touched.
type node struct {
	leaf  bool
	value models.JSONValue
	obj   map[string]*node
	arr   map[int]*node
}

func (n *node) insert(key string, segs []segment, v models.JSONValue) error {
	if len(segs) == 0 {
		if n.leaf || n.obj != nil || n.arr != nil {
			return fmt.Errorf("%w: %q already occupied", ErrPathConflict, key)
		}
		n.leaf = true
		n.value = v
		return nil
	}
	if n.leaf {
		return fmt.Errorf("%w: %q descends through a scalar", ErrPathConflict, key)
	}

	seg := segs[0]
	if seg.isIdx {
		if n.obj != nil {
			return fmt.Errorf("%w: %q mixes index and field segments", ErrPathConflict, key)
		}
		if n.arr == nil {
			n.arr = make(map[int]*node)
		}
		child := n.arr[seg.index]
		if child == nil {
			child = &node{}
			n.arr[seg.index] = child
		}
		return child.insert(key, segs[1:], v)
	}

	if n.arr != nil {
		return fmt.Errorf("%w: %q mixes field and index segments", ErrPathConflict, key)
	}
	if n.obj == nil {
		n.obj = make(map[string]*node)
	}
	child := n.obj[seg.name]
	if child == nil {
		child = &node{}
		n.obj[seg.name] = child
	}
	return child.insert(key, segs[1:], v)
}

func (n *node) finalize() (models.JSONValue, error) {
	switch {
	case n.leaf:
		return n.value, nil
	case n.arr != nil:
		arr := make(models.JSONArray, len(n.arr))
		for i := range arr {
			child, ok := n.arr[i]
			if !ok {
				return nil, fmt.Errorf("%w: array index %d missing", ErrPathConflict, i)
			}
			v, err := child.finalize()
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	default:
		obj := make(models.JSONObject, len(n.obj))
		for k, child := range n.obj {
			v, err := child.finalize()
			if err != nil {
				return nil, err
			}
			obj[k] = v
		}
		return obj, nil
	}
}
