// Package fieldtree implements the schema-less field value store carried by
// every workflow step. A Tree maps string keys to scalars, nested maps, or
// repeatable groups (ordered lists of maps, one map per physical unit such as
// a container or a truck).
//
// Trees are addressed by string paths. A numeric path segment indexes into a
// repeatable group. Unknown keys are always accepted: the step's field schema
// is advisory and never enforced at this layer.
//
// Trees survive a JSON round trip (they persist as jsonb), so helpers accept
// both Tree/map[string]any for maps and []any/[]map[string]any for groups.
package fieldtree

import (
	"fmt"
	"strconv"
)

// Tree is a nested field-value document. Values are scalars
// (string, bool, float64, int), nested maps, or repeatable groups.
type Tree map[string]any

// New returns an empty Tree.
func New() Tree {
	return Tree{}
}

// asMap normalizes a value to a mutable map, accepting Tree and the
// map[string]any shape produced by JSON decoding.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

// asGroup normalizes a value to a list of row maps, accepting the []any
// shape produced by JSON decoding as well as typed slices.
func asGroup(v any) ([]map[string]any, bool) {
	switch g := v.(type) {
	case []map[string]any:
		return g, true
	case []Tree:
		rows := make([]map[string]any, len(g))
		for i, r := range g {
			rows[i] = r
		}
		return rows, true
	case []any:
		rows := make([]map[string]any, 0, len(g))
		for _, e := range g {
			m, ok := asMap(e)
			if !ok {
				return nil, false
			}
			rows = append(rows, m)
		}
		return rows, true
	default:
		return nil, false
	}
}

// Get walks the path and returns the value found there.
// The second result is false when any segment is missing.
func (t Tree) Get(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var cur any = map[string]any(t)
	for _, seg := range path {
		if m, ok := asMap(cur); ok {
			v, exists := m[seg]
			if !exists {
				return nil, false
			}
			cur = v
			continue
		}
		if rows, ok := asGroup(cur); ok {
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(rows) {
				return nil, false
			}
			cur = rows[idx]
			continue
		}
		return nil, false
	}

	return cur, true
}

// String returns the value at path as a string, or "" when the path is
// missing or not a string scalar.
func (t Tree) String(path ...string) string {
	v, ok := t.Get(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Bool returns the boolean at path. Absent or non-boolean values are false.
func (t Tree) Bool(path ...string) bool {
	v, ok := t.Get(path...)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Set writes value at path, creating intermediate maps as needed. Setting
// through a numeric segment extends the repeatable group with empty rows up
// to that index. Returns an error when the path traverses a scalar.
func (t Tree) Set(value any, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("fieldtree: empty path")
	}

	parent, err := t.ensureParent(path[:len(path)-1])
	if err != nil {
		return err
	}
	parent[path[len(path)-1]] = value
	return nil
}

// ensureParent walks/builds the container that holds the final path segment.
func (t Tree) ensureParent(path []string) (map[string]any, error) {
	cur := map[string]any(t)
	for i := 0; i < len(path); i++ {
		seg := path[i]

		// A numeric next segment means the current key holds a repeatable group.
		nextIsIndex := false
		if i+1 < len(path) {
			if _, err := strconv.Atoi(path[i+1]); err == nil {
				nextIsIndex = true
			}
		}

		v, exists := cur[seg]
		if nextIsIndex {
			rows, ok := asGroup(v)
			if !exists {
				rows = nil
			} else if !ok {
				return nil, fmt.Errorf("fieldtree: %q is not a repeatable group", seg)
			}
			idx, _ := strconv.Atoi(path[i+1])
			if idx < 0 {
				return nil, fmt.Errorf("fieldtree: negative row index %d", idx)
			}
			for len(rows) <= idx {
				rows = append(rows, map[string]any{})
			}
			cur[seg] = rows
			cur = rows[idx]
			i++ // consume the index segment
			continue
		}

		if !exists {
			next := map[string]any{}
			cur[seg] = next
			cur = next
			continue
		}
		m, ok := asMap(v)
		if !ok {
			return nil, fmt.Errorf("fieldtree: %q is not a map", seg)
		}
		cur = m
	}
	return cur, nil
}

// Remove deletes the value at path. Removing a missing path is a no-op:
// callers distinguish "remove this key" from "leave untouched" by whether
// they pass the path at all.
func (t Tree) Remove(path ...string) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		delete(t, path[0])
		return
	}

	v, ok := t.Get(path[:len(path)-1]...)
	if !ok {
		return
	}
	if m, isMap := asMap(v); isMap {
		delete(m, path[len(path)-1])
	}
}

// Merge deep-merges patch into the tree. Maps merge recursively, scalars
// overwrite, and repeatable groups merge row-by-row by position (patch rows
// beyond the existing group are appended). Keys absent from the patch are
// left untouched.
func (t Tree) Merge(patch Tree) {
	mergeMaps(t, patch)
}

func mergeMaps(dst, patch map[string]any) {
	for k, pv := range patch {
		dv, exists := dst[k]
		if !exists {
			dst[k] = pv
			continue
		}

		dm, dIsMap := asMap(dv)
		pm, pIsMap := asMap(pv)
		if dIsMap && pIsMap {
			mergeMaps(dm, pm)
			continue
		}

		dRows, dIsGroup := asGroup(dv)
		pRows, pIsGroup := asGroup(pv)
		if dIsGroup && pIsGroup {
			for i, pRow := range pRows {
				if i < len(dRows) {
					mergeMaps(dRows[i], pRow)
				} else {
					dRows = append(dRows, pRow)
				}
			}
			dst[k] = dRows
			continue
		}

		dst[k] = pv
	}
}

// Rows projects the repeatable group under key into a slice of Trees.
// Returns nil when the key is absent or not a group.
func (t Tree) Rows(key string) []Tree {
	v, ok := t[key]
	if !ok {
		return nil
	}
	raw, ok := asGroup(v)
	if !ok {
		return nil
	}
	rows := make([]Tree, len(raw))
	for i, r := range raw {
		rows[i] = Tree(r)
	}
	return rows
}

// Row returns row idx of the group under key, zero-filling when the group
// is shorter than idx+1. The returned Tree is never nil.
func (t Tree) Row(key string, idx int) Tree {
	rows := t.Rows(key)
	if idx < 0 || idx >= len(rows) {
		return Tree{}
	}
	return rows[idx]
}

// Clone returns a deep copy of the tree. Scalars are shared (they are
// immutable); maps and groups are copied.
func (t Tree) Clone() Tree {
	return Tree(cloneMap(t))
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := asMap(v); ok {
		return cloneMap(m)
	}
	if rows, ok := asGroup(v); ok {
		cloned := make([]map[string]any, len(rows))
		for i, r := range rows {
			cloned[i] = cloneMap(r)
		}
		return cloned
	}
	return v
}

// IsEmptyValue reports whether v carries no user-entered data:
// nil, "", false, and zero numbers are all empty.
func IsEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	default:
		return false
	}
}
