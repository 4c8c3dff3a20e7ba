package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Issue codes.
const (
	CodeRequired              = "required"
	CodeInvalidType           = "invalid_type"
	CodeTooShort              = "too_short"
	CodeTooLong               = "too_long"
	CodeTooSmall              = "too_small"
	CodeTooBig                = "too_big"
	CodePattern               = "pattern"
	CodeInvalidEnum           = "invalid_enum"
	CodeInvalidFormat         = "invalid_format"
	CodeInvalidLiteral        = "invalid_literal"
	CodeCustom                = "custom"
	CodeUniqueness            = "uniqueness"
	CodeDependencyUnavailable = "dependency_unavailable"
)

// Issue is a single validation failure attached to a value-tree path.
type Issue struct {
	Path    string
	Code    string
	Message string
	Hint    string
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "(root)"
	}
	s := path + ": " + i.Message
	if i.Hint != "" {
		s += " (" + i.Hint + ")"
	}
	return s
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(iss)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Result is the outcome of one validation run. A Result is produced fresh
// on each run and never merged with earlier ones.
type Result struct {
	Issues Issues
}

// Valid reports whether no issue was found.
func (r Result) Valid() bool { return len(r.Issues) == 0 }

// Err returns the issues as an error, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Issues
}

// At returns the first issue attached exactly to path.
func (r Result) At(path string) (Issue, bool) {
	for _, is := range r.Issues {
		if is.Path == path {
			return is, true
		}
	}
	return Issue{}, false
}

// Errors maps each failing path to its first message.
func (r Result) Errors() map[string]string {
	out := make(map[string]string, len(r.Issues))
	for _, is := range r.Issues {
		if _, seen := out[is.Path]; !seen {
			out[is.Path] = is.Message
		}
	}
	return out
}

// Under returns the issues whose path equals or lies beneath any prefix.
// No prefixes selects every issue.
func (r Result) Under(prefixes ...string) Issues {
	if len(prefixes) == 0 {
		return r.Issues
	}
	var out Issues
	for _, is := range r.Issues {
		for _, p := range prefixes {
			if hasPrefix(is.Path, p) {
				out = append(out, is)
				break
			}
		}
	}
	return out
}

// Paths returns the distinct failing paths in order.
func (r Result) Paths() []string {
	seen := make(map[string]bool, len(r.Issues))
	var out []string
	for _, is := range r.Issues {
		if !seen[is.Path] {
			seen[is.Path] = true
			out = append(out, is.Path)
		}
	}
	return out
}

func hasPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+".")
}

func sortIssues(iss Issues) {
	sort.SliceStable(iss, func(i, j int) bool { return iss[i].Path < iss[j].Path })
}
