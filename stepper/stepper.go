// Package stepper implements the cursor state machine behind multi-step forms.
//
// A Stepper owns a 1-based cursor over a fixed sequence of steps. Moving
// forward asks the active step's Validator first; moving back never
// validates. Completing the last step fires a callback once.
package stepper

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSteps is returned when a stepper is created without steps.
	ErrNoSteps = errors.New("stepper: at least one step is required")
	// ErrInitialStep is returned when the initial cursor is outside [1, N].
	ErrInitialStep = errors.New("stepper: initial step out of range")
)

// Result is the canonical outcome of a step Validator.
type Result struct {
	OK      bool
	Message string
}

// Pass returns a passing result.
func Pass() Result { return Result{OK: true} }

// Fail returns a failing result carrying msg for display.
func Fail(msg string) Result { return Result{Message: msg} }

// Validator gates the forward transition out of a step. A nil Validator
// always passes.
type Validator func() Result

// Step is one position in the sequence.
type Step[T any] struct {
	Payload  T
	Validate Validator
}

// Action is a transition request passed to Dispatch.
type Action int

const (
	ActionNext Action = iota
	ActionBack
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionBack:
		return "back"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Outcome reports what a transition did.
type Outcome struct {
	From      int
	To        int
	Moved     bool
	Completed bool
	Result    Result
}

// Option configures a Stepper.
type Option func(*options)

type options struct {
	initial    int
	onComplete func()
}

// WithInitialStep sets the starting cursor (1-based). Default 1.
func WithInitialStep(n int) Option {
	return func(o *options) { o.initial = n }
}

// WithOnComplete registers the completion callback.
func WithOnComplete(fn func()) Option {
	return func(o *options) { o.onComplete = fn }
}

// Stepper is the cursor state machine. It is not safe for concurrent use.
type Stepper[T any] struct {
	steps      []Step[T]
	current    int
	completed  bool
	lastErr    string
	onComplete func()
}

// New creates a Stepper over steps. The step count is fixed for the
// lifetime of the instance.
func New[T any](steps []Step[T], opts ...Option) (*Stepper[T], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	o := options{initial: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.initial < 1 || o.initial > len(steps) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInitialStep, o.initial, len(steps))
	}

	cp := make([]Step[T], len(steps))
	copy(cp, steps)
	return &Stepper[T]{
		steps:      cp,
		current:    o.initial,
		onComplete: o.onComplete,
	}, nil
}

// Current returns the 1-based cursor.
func (s *Stepper[T]) Current() int { return s.current }

// Total returns the number of steps.
func (s *Stepper[T]) Total() int { return len(s.steps) }

// Active returns the step under the cursor.
func (s *Stepper[T]) Active() Step[T] { return s.steps[s.current-1] }

// At returns the step at 1-based index i.
func (s *Stepper[T]) At(i int) (Step[T], bool) {
	if i < 1 || i > len(s.steps) {
		var zero Step[T]
		return zero, false
	}
	return s.steps[i-1], true
}

// IsFirst reports whether the cursor is on the first step.
func (s *Stepper[T]) IsFirst() bool { return s.current == 1 }

// IsLast reports whether the cursor is on the last step.
func (s *Stepper[T]) IsLast() bool { return s.current == len(s.steps) }

// Completed reports whether the completion callback has fired since the
// last Retreat or Reopen.
func (s *Stepper[T]) Completed() bool { return s.completed }

// Err returns the message of the last failed forward transition, or "".
func (s *Stepper[T]) Err() string { return s.lastErr }

// Advance validates the active step and moves forward. On the last step a
// passing Advance completes the sequence instead of moving.
func (s *Stepper[T]) Advance() Outcome {
	out := Outcome{From: s.current, To: s.current}

	res := Pass()
	if v := s.steps[s.current-1].Validate; v != nil {
		res = v()
	}
	out.Result = res
	if !res.OK {
		s.lastErr = res.Message
		return out
	}
	s.lastErr = ""

	if s.current < len(s.steps) {
		s.current++
		out.To = s.current
		out.Moved = true
		return out
	}

	out.Completed = s.Complete()
	return out
}

// Retreat moves back one step without validation. It returns false when
// the cursor is already on the first step.
func (s *Stepper[T]) Retreat() bool {
	s.lastErr = ""
	s.completed = false
	if s.current <= 1 {
		return false
	}
	s.current--
	return true
}

// Complete fires the completion callback. It returns false if the sequence
// was already completed.
func (s *Stepper[T]) Complete() bool {
	if s.completed {
		return false
	}
	s.completed = true
	if s.onComplete != nil {
		s.onComplete()
	}
	return true
}

// Reopen re-arms completion, e.g. after the completed data was rejected
// downstream.
func (s *Stepper[T]) Reopen() {
	s.completed = false
}

// Dispatch applies an action and reports the outcome.
func (s *Stepper[T]) Dispatch(a Action) Outcome {
	switch a {
	case ActionNext:
		return s.Advance()
	case ActionBack:
		from := s.current
		moved := s.Retreat()
		return Outcome{From: from, To: s.current, Moved: moved, Result: Pass()}
	default:
		return Outcome{From: s.current, To: s.current, Result: Fail("unknown action " + a.String())}
	}
}
