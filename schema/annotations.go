package schema

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xeipuuv/gojsonschema"
)

const rootField = "(root)"

// keywordFor maps gojsonschema error types to the JSON Schema keyword used
// for message lookup and the issue code reported to callers. Composite
// errors (allOf, anyOf, if/then) are dropped; their nested errors carry
// the detail.
func keywordFor(errType string) (keyword, code string, ok bool) {
	switch errType {
	case "required":
		return "required", CodeRequired, true
	case "invalid_type":
		return "type", CodeInvalidType, true
	case "string_gte":
		return "minLength", CodeTooShort, true
	case "string_lte":
		return "maxLength", CodeTooLong, true
	case "pattern":
		return "pattern", CodePattern, true
	case "enum":
		return "enum", CodeInvalidEnum, true
	case "const":
		return "const", CodeInvalidLiteral, true
	case "format":
		return "format", CodeInvalidFormat, true
	case "array_min_items":
		return "minItems", CodeTooSmall, true
	case "array_max_items":
		return "maxItems", CodeTooBig, true
	case "number_gte":
		return "minimum", CodeTooSmall, true
	case "number_gt":
		return "exclusiveMinimum", CodeTooSmall, true
	case "number_lte":
		return "maximum", CodeTooBig, true
	case "number_lt":
		return "exclusiveMaximum", CodeTooBig, true
	case "additional_property_not_allowed":
		return "additionalProperties", CodeInvalidType, true
	default:
		return "", "", false
	}
}

// collect walks the document and records message annotations and enum
// values by normalized path.
func (s *Schema) collect(root, node map[string]any, path string, depth int) {
	if node == nil || depth > 32 {
		return
	}

	if msg, ok := node["x-message"].(string); ok {
		s.setMessage(path, "*", msg)
	}
	if msgs, ok := node["x-messages"].(map[string]any); ok {
		for kw, m := range msgs {
			if msg, ok := m.(string); ok {
				s.setMessage(path, kw, msg)
			}
		}
	}
	if ref, ok := node["$ref"].(string); ok {
		if target := resolveRef(root, ref); target != nil {
			s.collect(root, target, path, depth+1)
		}
	}

	if enum, ok := node["enum"].([]any); ok {
		vals := make([]string, 0, len(enum))
		for _, e := range enum {
			vals = append(vals, fmt.Sprint(e))
		}
		s.enums[path] = vals
	}

	if props, ok := node["properties"].(map[string]any); ok {
		for name, child := range props {
			if c, ok := child.(map[string]any); ok {
				s.collect(root, c, join(path, name), depth+1)
			}
		}
	}
	if items, ok := node["items"].(map[string]any); ok {
		s.collect(root, items, join(path, Wildcard), depth+1)
	}
	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		if subs, ok := node[kw].([]any); ok {
			for _, sub := range subs {
				if c, ok := sub.(map[string]any); ok {
					s.collect(root, c, path, depth+1)
				}
			}
		}
	}
}

func (s *Schema) setMessage(path, keyword, msg string) {
	m, ok := s.messages[path]
	if !ok {
		m = make(map[string]string)
		s.messages[path] = m
	}
	// The first annotation wins so a property-level message overrides the
	// one inherited from a shared definition.
	if _, exists := m[keyword]; !exists {
		m[keyword] = msg
	}
}

func resolveRef(root map[string]any, ref string) map[string]any {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	var node any = root
	for _, seg := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = m[seg]
	}
	m, _ := node.(map[string]any)
	return m
}

func (s *Schema) message(path, keyword string) (string, bool) {
	m, ok := s.messages[normalize(path)]
	if !ok {
		return "", false
	}
	if msg, ok := m[keyword]; ok {
		return msg, true
	}
	msg, ok := m["*"]
	return msg, ok
}

func (s *Schema) translate(re gojsonschema.ResultError) (Issue, bool) {
	keyword, code, ok := keywordFor(re.Type())
	if !ok {
		return Issue{}, false
	}

	field := re.Field()
	if field == rootField {
		field = ""
	}
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			field = join(field, prop)
		}
	}

	msg, ok := s.message(field, keyword)
	if !ok {
		msg = re.Description()
	}

	is := Issue{Path: field, Code: code, Message: msg}
	if code == CodeInvalidEnum {
		if got, ok := re.Value().(string); ok {
			is.Hint = suggest(got, s.Enum(field))
		}
	}
	return is, true
}

// suggest returns a "did you mean" hint for the option closest to got.
func suggest(got string, options []string) string {
	if got == "" || len(options) == 0 {
		return ""
	}
	best, bestDist := "", -1
	for _, opt := range options {
		d := levenshtein.ComputeDistance(strings.ToLower(got), strings.ToLower(opt))
		if bestDist < 0 || d < bestDist {
			best, bestDist = opt, d
		}
	}
	limit := len(best) / 2
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return "expected one of " + strings.Join(options, ", ")
	}
	return fmt.Sprintf("did you mean %q?", best)
}
