package schema

import (
	"strconv"
	"strings"
)

// Wildcard matches any array index in a path pattern.
const Wildcard = "*"

// normalize replaces numeric segments with the wildcard so concrete paths
// can be matched against schema-level patterns.
func normalize(path string) string {
	if path == "" {
		return ""
	}
	segs := strings.Split(path, ".")
	for i, s := range segs {
		if _, err := strconv.Atoi(s); err == nil {
			segs[i] = Wildcard
		}
	}
	return strings.Join(segs, ".")
}

func join(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

// lookup resolves a concrete path in a decoded tree.
func lookup(root map[string]any, path string) (any, bool) {
	var node any = root
	if path == "" {
		return node, true
	}
	for _, seg := range strings.Split(path, ".") {
		switch n := node.(type) {
		case map[string]any:
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

// expand lists the concrete paths in root matching pattern. Wildcard
// segments fan out over array elements.
func expand(root map[string]any, pattern string) []string {
	if pattern == "" {
		return []string{""}
	}
	var out []string
	var walk func(node any, segs []string, prefix string)
	walk = func(node any, segs []string, prefix string) {
		if len(segs) == 0 {
			out = append(out, prefix)
			return
		}
		seg := segs[0]
		switch n := node.(type) {
		case map[string]any:
			next, ok := n[seg]
			if !ok {
				return
			}
			walk(next, segs[1:], join(prefix, seg))
		case []any:
			if seg == Wildcard {
				for i, e := range n {
					walk(e, segs[1:], join(prefix, strconv.Itoa(i)))
				}
				return
			}
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return
			}
			walk(n[i], segs[1:], join(prefix, seg))
		}
	}
	walk(root, strings.Split(pattern, "."), "")
	return out
}
