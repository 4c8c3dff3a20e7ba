package schema

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode"
)

const personDoc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "phone": {
      "type": "string",
      "pattern": "^\\d{10}$",
      "x-messages": {"pattern": "Phone number is not valid"}
    }
  },
  "required": ["name", "role", "phones"],
  "properties": {
    "name": {"type": "string", "minLength": 2, "x-message": "Name is required"},
    "role": {"type": "string", "enum": ["admin", "member"], "x-message": "Role is required"},
    "agree": {"const": true, "x-message": "You must agree"},
    "phones": {
      "type": "array",
      "items": {"$ref": "#/definitions/phone"}
    },
    "jobs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {"title": {"type": "string", "minLength": 2, "x-message": "Title is required"}}
      }
    }
  }
}`

func validPerson() map[string]any {
	return map[string]any{
		"name":   "Ada",
		"role":   "admin",
		"agree":  true,
		"phones": []any{"0123456789"},
		"jobs":   []any{map[string]any{"title": "Engineer"}},
	}
}

func mustCompile(t *testing.T, opts ...Option) *Schema {
	t.Helper()
	s, err := Compile([]byte(personDoc), opts...)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return s
}

func TestCompile_InvalidDocument(t *testing.T) {
	if _, err := Compile([]byte(`{"type": 12}`)); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestValidateSync_Valid(t *testing.T) {
	res := mustCompile(t).ValidateSync(validPerson())
	if !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Issues)
	}
	if res.Err() != nil {
		t.Errorf("Err() should be nil for a valid result")
	}
}

func TestValidateSync_MessagesByPath(t *testing.T) {
	v := validPerson()
	v["name"] = "A"
	delete(v, "role")
	v["agree"] = false
	v["phones"] = []any{"0123456789", "12"}
	v["jobs"] = []any{map[string]any{"title": "Engineer"}, map[string]any{}}

	res := mustCompile(t).ValidateSync(v)
	want := map[string]string{
		"name":         "Name is required",
		"role":         "Role is required",
		"agree":        "You must agree",
		"phones.1":     "Phone number is not valid",
		"jobs.1.title": "Title is required",
	}
	got := res.Errors()
	if len(got) != len(want) {
		t.Fatalf("expected %d failing paths, got %d: %v", len(want), len(got), got)
	}
	for path, msg := range want {
		if got[path] != msg {
			t.Errorf("%s: got %q, want %q", path, got[path], msg)
		}
	}

	is, ok := res.At("role")
	if !ok || is.Code != CodeRequired {
		t.Errorf("expected required issue at role, got %+v", is)
	}
}

func TestValidateSync_EnumHint(t *testing.T) {
	v := validPerson()
	v["role"] = "admn"
	res := mustCompile(t).ValidateSync(v)
	is, ok := res.At("role")
	if !ok {
		t.Fatalf("expected issue at role, got %v", res.Issues)
	}
	if is.Code != CodeInvalidEnum {
		t.Errorf("expected invalid_enum, got %s", is.Code)
	}
	if is.Hint != `did you mean "admin"?` {
		t.Errorf("unexpected hint %q", is.Hint)
	}

	v["role"] = "zzzzzzzzzz"
	is, _ = mustCompile(t).ValidateSync(v).At("role")
	if !strings.HasPrefix(is.Hint, "expected one of") {
		t.Errorf("expected option list hint, got %q", is.Hint)
	}
}

func TestChecks_RunOnlyOnOtherwiseValidPaths(t *testing.T) {
	calls := 0
	s := mustCompile(t, WithCheck(Check{
		Path:    "name",
		Message: "Name must start with an uppercase letter",
		Fn: func(v any) bool {
			calls++
			str, _ := v.(string)
			return str != "" && unicode.IsUpper(rune(str[0]))
		},
	}))

	v := validPerson()
	v["name"] = "ada"
	res := s.ValidateSync(v)
	if msg := res.Errors()["name"]; msg != "Name must start with an uppercase letter" {
		t.Errorf("unexpected message %q", msg)
	}

	calls = 0
	v["name"] = "a"
	res = s.ValidateSync(v)
	if calls != 0 {
		t.Errorf("check ran on a path that already failed")
	}
	if msg := res.Errors()["name"]; msg != "Name is required" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestChecks_Wildcard(t *testing.T) {
	s := mustCompile(t, WithCheck(Check{
		Path:    "jobs.*.title",
		Message: "Title must not be Boss",
		Fn:      func(v any) bool { return v != "Boss" },
	}))
	v := validPerson()
	v["jobs"] = []any{map[string]any{"title": "Engineer"}, map[string]any{"title": "Boss"}}
	res := s.ValidateSync(v)
	if _, ok := res.At("jobs.1.title"); !ok {
		t.Fatalf("expected issue at jobs.1.title, got %v", res.Issues)
	}
	if _, ok := res.At("jobs.0.title"); ok {
		t.Errorf("unexpected issue at jobs.0.title")
	}
}

func TestRefinement(t *testing.T) {
	s := mustCompile(t, WithRefinement(func(root map[string]any) Issues {
		if root["role"] == "admin" && root["agree"] != true {
			return Issues{{Path: "agree", Code: CodeCustom, Message: "Admins must agree"}}
		}
		return nil
	}))
	v := validPerson()
	delete(v, "agree")
	res := s.ValidateSync(v)
	if res.Errors()["agree"] != "Admins must agree" {
		t.Errorf("expected refinement issue, got %v", res.Issues)
	}
}

func TestValidate_AsyncChecks(t *testing.T) {
	taken := map[string]bool{"Ada": true}
	calls := 0
	s := mustCompile(t, WithAsyncCheck(AsyncCheck{
		Path:    "name",
		Code:    CodeUniqueness,
		Message: "Name already exists",
		Fn: func(ctx context.Context, v any) (bool, error) {
			calls++
			return !taken[v.(string)], nil
		},
	}))

	v := validPerson()
	if !s.ValidateSync(v).Valid() {
		t.Fatal("sync validation must not run async checks")
	}
	if calls != 0 {
		t.Fatalf("async check ran during sync validation")
	}

	res := s.Validate(context.Background(), v)
	is, ok := res.At("name")
	if !ok || is.Code != CodeUniqueness || is.Message != "Name already exists" {
		t.Fatalf("expected uniqueness issue, got %v", res.Issues)
	}

	v["name"] = "Grace"
	if res := s.Validate(context.Background(), v); !res.Valid() {
		t.Errorf("expected valid, got %v", res.Issues)
	}
}

func TestValidate_AsyncDependencyFailure(t *testing.T) {
	s := mustCompile(t, WithAsyncCheck(AsyncCheck{
		Path:    "name",
		Message: "Name already exists",
		Fn: func(context.Context, any) (bool, error) {
			return false, errors.New("directory offline")
		},
	}))
	res := s.Validate(context.Background(), validPerson())
	is, ok := res.At("name")
	if !ok || is.Code != CodeDependencyUnavailable || is.Hint != "directory offline" {
		t.Fatalf("expected dependency issue, got %+v", res.Issues)
	}
}

func TestValidate_CancelledContext(t *testing.T) {
	s := mustCompile(t, WithAsyncCheck(AsyncCheck{
		Path: "name",
		Fn: func(context.Context, any) (bool, error) {
			t.Fatal("async check must not run with a cancelled context")
			return true, nil
		},
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := s.Validate(ctx, validPerson())
	if is, ok := res.At("name"); !ok || is.Code != CodeDependencyUnavailable {
		t.Fatalf("expected cancellation issue, got %v", res.Issues)
	}
}

func TestResult_Under(t *testing.T) {
	res := Result{Issues: Issues{
		{Path: "a.b", Message: "1"},
		{Path: "ab", Message: "2"},
		{Path: "c", Message: "3"},
	}}
	under := res.Under("a")
	if len(under) != 1 || under[0].Path != "a.b" {
		t.Errorf("Under(a) = %v", under)
	}
	if len(res.Under()) != 3 {
		t.Errorf("Under() should return all issues")
	}
	if got := res.Paths(); len(got) != 3 {
		t.Errorf("Paths() = %v", got)
	}
}

func TestIssues_Error(t *testing.T) {
	iss := Issues{
		{Path: "a", Code: CodeRequired},
		{Path: "b", Code: CodePattern},
		{Path: "c", Code: CodeCustom},
		{Path: "d", Code: CodeCustom},
	}
	got := iss.Error()
	if !strings.Contains(got, "required at a") || !strings.Contains(got, "total 4") {
		t.Errorf("unexpected summary %q", got)
	}
}
