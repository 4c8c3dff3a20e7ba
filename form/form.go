// Package form binds a value tree to a validation schema and tracks the
// per-path state (dirty, touched, errors) that decides what a widget shows.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/devshahoriar/custom-form/logging"
	"github.com/devshahoriar/custom-form/schema"
)

// ErrInvalid is returned by Submit when the tree fails validation.
var ErrInvalid = errors.New("form: validation failed")

// Validator is the schema contract a Form needs.
type Validator interface {
	ValidateSync(values map[string]any) schema.Result
	Validate(ctx context.Context, values map[string]any) schema.Result
}

// SubmitHandler receives the decoded record after a successful validation.
type SubmitHandler[T any] func(ctx context.Context, record T) error

// Mode selects when validation runs.
type Mode int

const (
	// ModeOnChange validates after every change.
	ModeOnChange Mode = iota
	// ModeOnSubmit validates on submit only, then on every change once a
	// submit has been attempted.
	ModeOnSubmit
)

func (m Mode) String() string {
	switch m {
	case ModeOnChange:
		return "onChange"
	case ModeOnSubmit:
		return "onSubmit"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "onChange", "change":
		return ModeOnChange, nil
	case "onSubmit", "submit":
		return ModeOnSubmit, nil
	default:
		return 0, fmt.Errorf("unknown validation mode %q", s)
	}
}

// Option configures a Form.
type Option func(*settings)

type settings struct {
	mode          Mode
	logger        logging.Logger
	resetOnSubmit bool
}

// WithMode sets the validation mode. Default ModeOnChange.
func WithMode(m Mode) Option {
	return func(s *settings) { s.mode = m }
}

// WithLogger sets the logger used for submit failures.
func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithResetOnSubmit restores the defaults after a successful submit.
func WithResetOnSubmit() Option {
	return func(s *settings) { s.resetOnSubmit = true }
}

// Form owns a value tree and its validation state. It is not safe for
// concurrent use.
type Form[T any] struct {
	validator Validator
	handler   SubmitHandler[T]
	settings  settings

	defaults Values
	values   Values

	dirty     map[string]bool
	touched   map[string]bool
	triggered map[string]bool
	errors    map[string]string
	issues    schema.Issues
	rows      map[string][]string

	submitted   bool
	submitCount int
	submitErr   error
}

// New creates a Form over a copy of defaults.
func New[T any](v Validator, defaults Values, handler SubmitHandler[T], opts ...Option) *Form[T] {
	s := settings{mode: ModeOnChange, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(&s)
	}
	f := &Form[T]{
		validator: v,
		handler:   handler,
		settings:  s,
		defaults:  defaults.Clone(),
	}
	f.Reset(nil)
	return f
}

// Mode returns the validation mode.
func (f *Form[T]) Mode() Mode { return f.settings.mode }

// Reset replaces the tree wholesale and clears all state. A nil tree
// restores the defaults.
func (f *Form[T]) Reset(values Values) {
	if values == nil {
		values = f.defaults
	}
	f.values = values.Clone()
	f.dirty = make(map[string]bool)
	f.touched = make(map[string]bool)
	f.triggered = make(map[string]bool)
	f.errors = make(map[string]string)
	f.issues = nil
	f.rows = make(map[string][]string)
	f.submitted = false
	f.submitErr = nil
}

// Values returns a copy of the tree.
func (f *Form[T]) Values() Values { return f.values.Clone() }

// Value returns the value at path, or nil.
func (f *Form[T]) Value(path string) any {
	v, _ := f.values.Get(path)
	return v
}

// SetValue stores v at path and marks it dirty.
func (f *Form[T]) SetValue(path string, v any) error {
	if err := f.values.Set(path, v); err != nil {
		return err
	}
	f.dirty[path] = true
	f.afterChange()
	return nil
}

// Touch marks path as visited.
func (f *Form[T]) Touch(path string) { f.touched[path] = true }

// Dirty reports whether path was changed since the last reset.
func (f *Form[T]) Dirty(path string) bool { return f.dirty[path] }

// Touched reports whether path was visited since the last reset.
func (f *Form[T]) Touched(path string) bool { return f.touched[path] }

// Submitted reports whether a submit was attempted since the last reset.
func (f *Form[T]) Submitted() bool { return f.submitted }

// SubmitCount returns the number of submit attempts since New.
func (f *Form[T]) SubmitCount() int { return f.submitCount }

// SubmitErr returns the error raised by the submit handler on the last
// attempt. It is never attached to a field.
func (f *Form[T]) SubmitErr() error { return f.submitErr }

// Error returns the message to display for path. A message is shown only
// once the path was touched, changed or explicitly triggered, or after a
// submit attempt.
func (f *Form[T]) Error(path string) string {
	msg, ok := f.errors[path]
	if !ok {
		return ""
	}
	if f.submitted || f.dirty[path] || f.touched[path] || f.wasTriggered(path) {
		return msg
	}
	return ""
}

// Issues returns the issues of the latest validation run.
func (f *Form[T]) Issues() schema.Issues { return f.issues }

// ErrorsUnder returns the displayable messages at or beneath prefix.
func (f *Form[T]) ErrorsUnder(prefix string) map[string]string {
	out := make(map[string]string)
	for path := range f.errors {
		if !HasPrefix(path, prefix) {
			continue
		}
		if msg := f.Error(path); msg != "" {
			out[path] = msg
		}
	}
	return out
}

// Trigger validates the tree synchronously and reports whether no issue
// falls under prefixes. No prefixes means the whole tree. Errors under the
// prefixes become displayable.
func (f *Form[T]) Trigger(prefixes ...string) bool {
	res := f.validator.ValidateSync(map[string]any(f.values))
	f.apply(res)
	if len(prefixes) == 0 {
		f.triggered[""] = true
	}
	for _, p := range prefixes {
		f.triggered[p] = true
	}
	return len(res.Under(prefixes...)) == 0
}

// Submit validates the whole tree, asynchronous checks included. On
// success the record is decoded and handed to the submit handler. Errors
// from the handler are logged and kept in SubmitErr.
func (f *Form[T]) Submit(ctx context.Context) error {
	f.submitted = true
	f.submitCount++
	f.submitErr = nil

	res := f.validator.Validate(ctx, map[string]any(f.values))
	f.apply(res)
	if !res.Valid() {
		f.settings.logger.Debug("submit rejected", map[string]any{
			"issues": len(res.Issues),
			"paths":  res.Paths(),
		})
		return fmt.Errorf("%w: %w", ErrInvalid, res.Issues)
	}

	record, err := f.Decode()
	if err != nil {
		f.submitErr = err
		f.settings.logger.Error("decoding record", map[string]any{"error": err})
		return err
	}

	if f.handler != nil {
		if err := f.handler(ctx, record); err != nil {
			f.submitErr = err
			f.settings.logger.Error("submit handler failed", map[string]any{"error": err})
			return fmt.Errorf("submit handler: %w", err)
		}
	}

	f.settings.logger.Info("record submitted", nil)
	if f.settings.resetOnSubmit {
		f.Reset(nil)
	}
	return nil
}

// Decode converts the tree to T through its JSON encoding.
func (f *Form[T]) Decode() (T, error) {
	var record T
	data, err := json.Marshal(f.values)
	if err != nil {
		return record, fmt.Errorf("encoding value tree: %w", err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("decoding value tree: %w", err)
	}
	return record, nil
}

// Len returns the length of the array at path.
func (f *Form[T]) Len(path string) int {
	arr, _ := f.values.Array(path)
	return len(arr)
}

// Append adds v to the end of the array at path. A missing array is
// created.
func (f *Form[T]) Append(path string, v any) error {
	arr, err := f.values.Array(path)
	if err != nil {
		return err
	}
	arr = append(arr, cloneValue(v))
	if err := f.values.Set(path, arr); err != nil {
		return err
	}
	f.Rows(path)
	f.dirty[path] = true
	f.afterChange()
	return nil
}

// Remove deletes element i of the array at path. State recorded for later
// elements moves down one index so it stays with its element.
func (f *Form[T]) Remove(path string, i int) error {
	arr, err := f.values.Array(path)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(arr) {
		return fmt.Errorf("%w: %q has no element %d", ErrPath, path, i)
	}
	keys := f.Rows(path)

	next := make([]any, 0, len(arr)-1)
	next = append(next, arr[:i]...)
	next = append(next, arr[i+1:]...)
	if err := f.values.Set(path, next); err != nil {
		return err
	}

	rowKeys := make([]string, 0, len(keys)-1)
	rowKeys = append(rowKeys, keys[:i]...)
	f.rows[path] = append(rowKeys, keys[i+1:]...)

	f.dirty = shiftBools(f.dirty, path, i)
	f.touched = shiftBools(f.touched, path, i)
	f.triggered = shiftBools(f.triggered, path, i)
	f.errors = shiftStrings(f.errors, path, i)
	f.rows = shiftRows(f.rows, path, i)
	f.dirty[path] = true
	f.afterChange()
	return nil
}

// Rows returns a stable key per element of the array at path. Keys follow
// their element across removals.
func (f *Form[T]) Rows(path string) []string {
	n := f.Len(path)
	keys := f.rows[path]
	if len(keys) > n {
		keys = keys[:n]
	}
	for len(keys) < n {
		keys = append(keys, uuid.NewString())
	}
	f.rows[path] = keys
	return keys
}

// afterChange revalidates in onChange mode, and in onSubmit mode once a
// submit or trigger made errors visible.
func (f *Form[T]) afterChange() {
	if f.settings.mode == ModeOnChange || f.submitted || len(f.triggered) > 0 {
		f.apply(f.validator.ValidateSync(map[string]any(f.values)))
	}
}

// apply replaces the error map with the result of one run.
func (f *Form[T]) apply(res schema.Result) {
	f.issues = res.Issues
	f.errors = res.Errors()
}

func (f *Form[T]) wasTriggered(path string) bool {
	for p := range f.triggered {
		if HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// shiftPath renumbers key after element removed of the array at arr was
// deleted. It reports false when key belonged to the removed element.
func shiftPath(key, arr string, removed int) (string, bool) {
	if arr == "" || len(key) <= len(arr) || !HasPrefix(key, arr) {
		return key, true
	}
	rest := SplitPath(key[len(arr)+1:])
	idx, err := strconv.Atoi(rest[0])
	if err != nil {
		return key, true
	}
	switch {
	case idx == removed:
		return "", false
	case idx > removed:
		rest[0] = strconv.Itoa(idx - 1)
		return JoinPath(arr, JoinPath(rest...)), true
	default:
		return key, true
	}
}

func shiftBools(m map[string]bool, arr string, removed int) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		if nk, ok := shiftPath(k, arr, removed); ok {
			out[nk] = v
		}
	}
	return out
}

func shiftStrings(m map[string]string, arr string, removed int) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if nk, ok := shiftPath(k, arr, removed); ok {
			out[nk] = v
		}
	}
	return out
}

func shiftRows(m map[string][]string, arr string, removed int) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		if nk, ok := shiftPath(k, arr, removed); ok {
			out[nk] = v
		}
	}
	return out
}
