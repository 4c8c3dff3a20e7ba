package form

import (
	"errors"
	"testing"

	"github.com/devshahoriar/custom-form/upload"
)

func TestValues_GetSet(t *testing.T) {
	v := Values{}
	if err := v.Set("personal.name", "Ada"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := v.Get("personal.name")
	if !ok || got != "Ada" {
		t.Fatalf("Get = %v, %v", got, ok)
	}

	if err := v.Set("jobs", []any{map[string]any{"title": "x"}}); err != nil {
		t.Fatalf("Set array: %v", err)
	}
	if err := v.Set("jobs.0.title", "Engineer"); err != nil {
		t.Fatalf("Set element: %v", err)
	}
	if got, _ := v.Get("jobs.0.title"); got != "Engineer" {
		t.Errorf("jobs.0.title = %v", got)
	}

	if err := v.Set("jobs.3.title", "x"); !errors.Is(err, ErrPath) {
		t.Errorf("expected ErrPath for missing element, got %v", err)
	}
	if err := v.Set("", "x"); !errors.Is(err, ErrPath) {
		t.Errorf("expected ErrPath for empty path, got %v", err)
	}
	if err := v.Set("personal.name.first", "x"); !errors.Is(err, ErrPath) {
		t.Errorf("expected ErrPath through a leaf, got %v", err)
	}
	if _, ok := v.Get("missing.path"); ok {
		t.Errorf("Get on a missing path should report false")
	}
}

func TestValues_Array(t *testing.T) {
	v := Values{"name": "Ada", "jobs": []any{"a"}}
	arr, err := v.Array("jobs")
	if err != nil || len(arr) != 1 {
		t.Fatalf("Array = %v, %v", arr, err)
	}
	if arr, err := v.Array("missing"); err != nil || arr != nil {
		t.Errorf("missing array should be nil, got %v, %v", arr, err)
	}
	if _, err := v.Array("name"); !errors.Is(err, ErrNotArray) {
		t.Errorf("expected ErrNotArray, got %v", err)
	}
}

func TestValues_CloneIsDeep(t *testing.T) {
	orig := Values{
		"personal": map[string]any{"name": "Ada"},
		"jobs":     []any{map[string]any{"title": "Engineer"}},
		"images":   []upload.File{{ID: "1", URL: "mem://1/a.png"}},
	}
	cp := orig.Clone()
	if err := cp.Set("personal.name", "Grace"); err != nil {
		t.Fatal(err)
	}
	if err := cp.Set("jobs.0.title", "Manager"); err != nil {
		t.Fatal(err)
	}
	cp["images"].([]upload.File)[0].ID = "2"

	if got, _ := orig.Get("personal.name"); got != "Ada" {
		t.Errorf("clone aliased personal.name: %v", got)
	}
	if got, _ := orig.Get("jobs.0.title"); got != "Engineer" {
		t.Errorf("clone aliased jobs.0.title: %v", got)
	}
	if orig["images"].([]upload.File)[0].ID != "1" {
		t.Errorf("clone aliased images")
	}
}

func TestPathHelpers(t *testing.T) {
	if got := JoinPath("a", "", "b"); got != "a.b" {
		t.Errorf("JoinPath = %q", got)
	}
	if got := IndexPath("jobs", 2); got != "jobs.2" {
		t.Errorf("IndexPath = %q", got)
	}
	if SplitPath("") != nil {
		t.Errorf("SplitPath(\"\") should be nil")
	}
	tests := []struct {
		path, prefix string
		want         bool
	}{
		{"a.b", "a", true},
		{"a", "a", true},
		{"ab", "a", false},
		{"a.b", "", true},
		{"a", "a.b", false},
	}
	for _, tt := range tests {
		if got := HasPrefix(tt.path, tt.prefix); got != tt.want {
			t.Errorf("HasPrefix(%q, %q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
		}
	}
}
