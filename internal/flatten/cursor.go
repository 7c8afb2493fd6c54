package flatten

import (
	"fmt"
	"iter"

	"github.com/smallmem/flatbench/internal/models"
)

// Pair is one flattened leaf: a rendered path and the scalar found there.
type Pair struct {
	Key   string
	Value models.JSONValue
}

// Cursor is the lazy counterpart of Flatten. Each call to Next advances the
// traversal just far enough to produce the next leaf, so a caller that stops
// consuming pays only for the prefix it read. A cursor is single-pass and
// not restartable; create a new one to traverse the same value again.
//
// A Cursor is not safe for concurrent use, but independent cursors over
// independent values need no coordination.
type Cursor struct {
	opts    Options
	stack   []frame
	visited map[uintptr]struct{}
	emitted map[string]struct{}
	err     error
	done    bool
}

// NewCursor prepares a lazy traversal of v. No traversal work happens until
// the first call to Next.
func NewCursor(v models.JSONValue, opts Options) (*Cursor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Cursor{
		opts:    opts,
		stack:   []frame{{val: v}},
		visited: make(map[uintptr]struct{}),
		emitted: make(map[string]struct{}),
	}, nil
}

// Next returns the next (path, scalar) pair, or ok=false when the traversal
// is exhausted or has failed. After a failure the pairs already returned
// remain valid; Err reports what went wrong.
func (c *Cursor) Next() (Pair, bool) {
	if c.done || c.err != nil {
		return Pair{}, false
	}

	for len(c.stack) > 0 {
		f := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		if f.unmark != 0 {
			delete(c.visited, f.unmark)
			continue
		}

		if isScalar(f.val) {
			return c.emit(Pair{Key: f.key, Value: f.val})
		}

		children, emit, err := expand(f, c.opts, c.visited)
		if err != nil {
			c.err = err
			return Pair{}, false
		}
		c.stack = append(c.stack, children...)
		if emit != nil {
			return c.emit(*emit)
		}
	}

	c.done = true
	return Pair{}, false
}

func (c *Cursor) emit(p Pair) (Pair, bool) {
	if _, dup := c.emitted[p.Key]; dup {
		c.err = fmt.Errorf("%w: two leaves rendered to %q", ErrKeyCollision, p.Key)
		return Pair{}, false
	}
	c.emitted[p.Key] = struct{}{}
	return p, true
}

// Err returns the error that terminated the traversal, if any. A nil error
// after Next returns false means the input was fully consumed.
func (c *Cursor) Err() error {
	return c.err
}

// All adapts the cursor to a range-over-func sequence. Breaking out of the
// range loop abandons the remaining traversal without doing its work; the
// caller should still check Err afterwards.
func (c *Cursor) All() iter.Seq2[string, models.JSONValue] {
	return func(yield func(string, models.JSONValue) bool) {
		for p, ok := c.Next(); ok; p, ok = c.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Collect drains the cursor into a flat record, mirroring what Flatten
// would have produced for the same input and options.
func (c *Cursor) Collect() (models.FlatRecord, error) {
	out := make(models.FlatRecord)
	for p, ok := c.Next(); ok; p, ok = c.Next() {
		out[p.Key] = p.Value
	}
	if c.err != nil {
		return nil, c.err
	}
	return out, nil
}
