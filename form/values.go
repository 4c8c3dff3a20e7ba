package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/devshahoriar/custom-form/upload"
)

var (
	// ErrPath is returned when a path cannot be resolved in the tree.
	ErrPath = errors.New("form: invalid path")
	// ErrNotArray is returned by array operations on non-array paths.
	ErrNotArray = errors.New("form: path is not an array")
)

// Values is the nested value tree. Objects are map[string]any and arrays
// are []any. Paths address nodes with dot-separated segments where array
// elements use their decimal index: "professionalExperience.0.companyName".
type Values map[string]any

// SplitPath splits a dotted path into segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// JoinPath joins segments into a dotted path, skipping empty ones.
func JoinPath(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}

// IndexPath returns "path.i".
func IndexPath(path string, i int) string {
	return JoinPath(path, strconv.Itoa(i))
}

// HasPrefix reports whether path equals prefix or lies beneath it.
func HasPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+".")
}

// Get returns the value at path.
func (v Values) Get(path string) (any, bool) {
	var node any = map[string]any(v)
	for _, seg := range SplitPath(path) {
		switch n := node.(type) {
		case map[string]any:
			next, ok := n[seg]
			if !ok {
				return nil, false
			}
			node = next
		case Values:
			next, ok := n[seg]
			if !ok {
				return nil, false
			}
			node = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			node = n[i]
		default:
			return nil, false
		}
	}
	return node, true
}

// Set stores val at path, creating intermediate objects as needed. Array
// elements must already exist; use Append to grow an array.
func (v Values) Set(path string, val any) error {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return fmt.Errorf("%w: empty path", ErrPath)
	}

	var node any = map[string]any(v)
	for i, seg := range segs {
		last := i == len(segs)-1
		switch n := node.(type) {
		case map[string]any:
			if last {
				n[seg] = val
				return nil
			}
			next, ok := n[seg]
			if !ok || next == nil {
				next = map[string]any{}
				n[seg] = next
			}
			node = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n) {
				return fmt.Errorf("%w: %q has no element %q", ErrPath, JoinPath(segs[:i]...), seg)
			}
			if last {
				n[idx] = val
				return nil
			}
			if n[idx] == nil {
				n[idx] = map[string]any{}
			}
			node = n[idx]
		default:
			return fmt.Errorf("%w: %q is not a container", ErrPath, JoinPath(segs[:i]...))
		}
	}
	return nil
}

// Array returns the array stored at path.
func (v Values) Array(path string) ([]any, error) {
	raw, ok := v.Get(path)
	if !ok || raw == nil {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrNotArray, path, raw)
	}
	return arr, nil
}

// Clone returns a deep copy of the tree. Leaf values are copied by value;
// descriptor slices are copied so edits to the clone never alias.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	return Values(cloneMap(v))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = cloneValue(val)
	}
	return out
}

func cloneValue(val any) any {
	switch x := val.(type) {
	case map[string]any:
		return cloneMap(x)
	case Values:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), x...)
	case []upload.File:
		return append([]upload.File(nil), x...)
	default:
		return val
	}
}
