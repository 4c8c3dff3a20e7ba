// Package schema validates value trees against a JSON Schema document plus
// Go-side refinements.
//
// The document carries the declarative shape (types, lengths, patterns,
// enums). Messages are attached with two annotation keywords that the JSON
// Schema validator ignores:
//
//	"x-message":  "First Name is required"          // any failure at this node
//	"x-messages": {"pattern": "Phone number is not valid"} // per keyword
//
// Rules that JSON Schema cannot express (password character classes,
// cross-field constraints, directory lookups) are registered as Checks,
// Refinements and AsyncChecks.
package schema

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// Check is a synchronous per-path rule. Path may contain wildcard segments
// for array elements. A Check only runs when the document produced no
// issue at the same path.
type Check struct {
	Path    string
	Code    string
	Message string
	Fn      func(v any) bool
}

// Refinement inspects the whole tree and reports cross-field issues.
type Refinement func(root map[string]any) Issues

// AsyncCheck is a per-path rule that may block on an external service. It
// runs only during full validation and only when the path is otherwise
// valid. Fn returning an error yields a dependency_unavailable issue.
type AsyncCheck struct {
	Path    string
	Code    string
	Message string
	Fn      func(ctx context.Context, v any) (bool, error)
}

// Option configures a Schema.
type Option func(*Schema)

// WithCheck registers synchronous per-path rules.
func WithCheck(checks ...Check) Option {
	return func(s *Schema) { s.checks = append(s.checks, checks...) }
}

// WithRefinement registers cross-field refinements.
func WithRefinement(refs ...Refinement) Option {
	return func(s *Schema) { s.refinements = append(s.refinements, refs...) }
}

// WithAsyncCheck registers asynchronous per-path rules.
func WithAsyncCheck(checks ...AsyncCheck) Option {
	return func(s *Schema) { s.async = append(s.async, checks...) }
}

// Schema is a compiled document plus refinements. It is safe for
// concurrent use once compiled.
type Schema struct {
	doc         []byte
	compiled    *gojsonschema.Schema
	messages    map[string]map[string]string
	enums       map[string][]string
	checks      []Check
	refinements []Refinement
	async       []AsyncCheck
}

// Compile parses and compiles a JSON Schema document.
func Compile(doc []byte, opts ...Option) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	var root map[string]any
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("decoding schema annotations: %w", err)
	}

	s := &Schema{
		doc:      doc,
		compiled: compiled,
		messages: make(map[string]map[string]string),
		enums:    make(map[string][]string),
	}
	s.collect(root, root, "", 0)
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Document returns the raw JSON Schema document.
func (s *Schema) Document() []byte { return s.doc }

// Enum returns the allowed values declared at path, if any.
func (s *Schema) Enum(path string) []string { return s.enums[normalize(path)] }

// ValidateSync runs the document and synchronous rules.
func (s *Schema) ValidateSync(values map[string]any) Result {
	iss := s.validateDocument(values)
	iss = append(iss, s.runChecks(values, iss)...)
	for _, ref := range s.refinements {
		iss = append(iss, ref(values)...)
	}
	sortIssues(iss)
	return Result{Issues: iss}
}

// Validate runs everything, including asynchronous checks. Async checks run
// sequentially and stop early when ctx is done.
func (s *Schema) Validate(ctx context.Context, values map[string]any) Result {
	res := s.ValidateSync(values)
	iss := res.Issues

	failing := make(map[string]bool, len(iss))
	for _, is := range iss {
		failing[is.Path] = true
	}

	for _, ac := range s.async {
		for _, path := range expand(values, ac.Path) {
			if failing[path] {
				continue
			}
			if err := ctx.Err(); err != nil {
				iss = append(iss, Issue{Path: path, Code: CodeDependencyUnavailable, Message: "Validation was cancelled"})
				failing[path] = true
				continue
			}
			v, _ := lookup(values, path)
			ok, err := ac.Fn(ctx, v)
			switch {
			case err != nil:
				iss = append(iss, Issue{
					Path:    path,
					Code:    CodeDependencyUnavailable,
					Message: "Could not verify value",
					Hint:    err.Error(),
				})
				failing[path] = true
			case !ok:
				iss = append(iss, Issue{Path: path, Code: codeOr(ac.Code, CodeCustom), Message: ac.Message})
				failing[path] = true
			}
		}
	}

	sortIssues(iss)
	return Result{Issues: iss}
}

func (s *Schema) validateDocument(values map[string]any) Issues {
	data, err := json.Marshal(values)
	if err != nil {
		return Issues{{Code: CodeInvalidType, Message: fmt.Sprintf("value tree cannot be encoded: %v", err)}}
	}
	res, err := s.compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Issues{{Code: CodeInvalidType, Message: fmt.Sprintf("validating value tree: %v", err)}}
	}
	if res.Valid() {
		return nil
	}

	var iss Issues
	for _, re := range res.Errors() {
		is, ok := s.translate(re)
		if ok {
			iss = append(iss, is)
		}
	}
	return iss
}

func (s *Schema) runChecks(values map[string]any, prior Issues) Issues {
	failing := make(map[string]bool, len(prior))
	for _, is := range prior {
		failing[is.Path] = true
	}

	var iss Issues
	for _, c := range s.checks {
		for _, path := range expand(values, c.Path) {
			if failing[path] {
				continue
			}
			v, _ := lookup(values, path)
			if !c.Fn(v) {
				iss = append(iss, Issue{Path: path, Code: codeOr(c.Code, CodeCustom), Message: c.Message})
				failing[path] = true
			}
		}
	}
	return iss
}

func codeOr(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
