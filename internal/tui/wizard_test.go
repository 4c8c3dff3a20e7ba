package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devshahoriar/custom-form/form"
	"github.com/devshahoriar/custom-form/stepper"
)

type fakeStep struct {
	title  string
	prefix string
	result stepper.Result
	keys   int
	others int
	inits  int
	closed bool
}

func (s *fakeStep) Title() string            { return s.title }
func (s *fakeStep) Icon() string             { return "•" }
func (s *fakeStep) Init() tea.Cmd            { s.inits++; return nil }
func (s *fakeStep) Summary() string          { return "" }
func (s *fakeStep) View(int) string          { return "body of " + s.title + "\n" }
func (s *fakeStep) Prefixes() []string       { return []string{s.prefix} }
func (s *fakeStep) Validate() stepper.Result { return s.result }
func (s *fakeStep) Close()                   { s.closed = true }

func (s *fakeStep) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		s.keys++
	} else {
		s.others++
	}
	return nil
}

type fakeSubmitter struct {
	err     error
	invalid map[string]bool
	calls   int
}

func (f *fakeSubmitter) Submit(context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeSubmitter) ErrorsUnder(prefix string) map[string]string {
	if f.invalid[prefix] {
		return map[string]string{prefix + ".x": "bad"}
	}
	return nil
}

func newSteps(n int) []*fakeStep {
	out := make([]*fakeStep, n)
	for i := range out {
		out[i] = &fakeStep{
			title:  fmt.Sprintf("Step %d", i+1),
			prefix: fmt.Sprintf("s%d", i+1),
			result: stepper.Pass(),
		}
	}
	return out
}

func newWizard(t *testing.T, steps []*fakeStep, sub Submitter, opts ...WizardOption) WizardModel {
	t.Helper()
	in := make([]Step, len(steps))
	for i, s := range steps {
		in[i] = s
	}
	w, err := NewWizardModel(DarkTheme, in, sub, opts...)
	if err != nil {
		t.Fatalf("NewWizardModel: %v", err)
	}
	return w
}

func send(w WizardModel, msg tea.Msg) (WizardModel, tea.Cmd) {
	m, cmd := w.Update(msg)
	return m.(WizardModel), cmd
}

var (
	nextKey = tea.KeyMsg{Type: tea.KeyCtrlN}
	backKey = tea.KeyMsg{Type: tea.KeyCtrlP}
)

// results runs cmd and returns every message it produces.
func results(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, results(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func submitResult(t *testing.T, cmd tea.Cmd) SubmitResultMsg {
	t.Helper()
	for _, msg := range results(cmd) {
		if r, ok := msg.(SubmitResultMsg); ok {
			return r
		}
	}
	t.Fatal("command produced no SubmitResultMsg")
	return SubmitResultMsg{}
}

func quits(cmd tea.Cmd) bool {
	for _, msg := range results(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestWizard_BlockedStepShowsMessage(t *testing.T) {
	steps := newSteps(5)
	steps[1].result = stepper.Fail("This is error")
	w := newWizard(t, steps, &fakeSubmitter{})

	w, _ = send(w, nextKey)
	if w.Current() != 2 {
		t.Fatalf("current = %d, want 2", w.Current())
	}
	w, _ = send(w, nextKey)
	if w.Current() != 2 {
		t.Fatalf("failing step must block, current = %d", w.Current())
	}
	if !strings.Contains(w.View(), "This is error") {
		t.Error("view should show the blocking message")
	}

	steps[1].result = stepper.Pass()
	w, _ = send(w, StepCompleteMsg{})
	if w.Current() != 3 {
		t.Errorf("current = %d, want 3", w.Current())
	}
	if strings.Contains(w.View(), "This is error") {
		t.Error("message should clear after a successful transition")
	}
}

func TestWizard_BackClampsAtFirst(t *testing.T) {
	steps := newSteps(3)
	w := newWizard(t, steps, &fakeSubmitter{}, WithInitialStep(2))

	w, _ = send(w, backKey)
	w, _ = send(w, StepBackMsg{})
	if w.Current() != 1 {
		t.Errorf("current = %d, want 1", w.Current())
	}
	if steps[0].inits == 0 {
		t.Error("retreating should init the step it lands on")
	}
}

func TestWizard_InvalidInitialStep(t *testing.T) {
	_, err := NewWizardModel(DarkTheme, []Step{&fakeStep{}}, &fakeSubmitter{}, WithInitialStep(3))
	if !errors.Is(err, stepper.ErrInitialStep) {
		t.Fatalf("err = %v", err)
	}
}

func TestWizard_SubmitSuccess(t *testing.T) {
	steps := newSteps(2)
	sub := &fakeSubmitter{}
	w := newWizard(t, steps, sub, WithInitialStep(2))

	w, cmd := send(w, nextKey)
	if !w.Submitting() {
		t.Fatal("completing the last step should start a submission")
	}
	if strings.Contains(w.View(), "body of") {
		t.Error("steps must not render while submitting")
	}

	// Keys other than ctrl+c are dropped while submitting.
	w, _ = send(w, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if steps[1].keys != 0 {
		t.Error("key reached a step during submission")
	}

	w, cmd = send(w, submitResult(t, cmd))
	if !w.Done() || w.Err() != nil {
		t.Fatalf("done = %v, err = %v", w.Done(), w.Err())
	}
	if !quits(cmd) {
		t.Error("a successful submission should quit")
	}
	if sub.calls != 1 {
		t.Errorf("Submit called %d times", sub.calls)
	}
	if !steps[0].closed || !steps[1].closed {
		t.Error("steps should be closed on quit")
	}
}

func TestWizard_InvalidSubmitReturnsToFirstFailingStep(t *testing.T) {
	steps := newSteps(4)
	sub := &fakeSubmitter{
		err:     fmt.Errorf("%w: required at s2.x", form.ErrInvalid),
		invalid: map[string]bool{"s2": true, "s3": true},
	}
	w := newWizard(t, steps, sub, WithInitialStep(4))

	w, cmd := send(w, nextKey)
	w, _ = send(w, submitResult(t, cmd))

	if w.Submitting() || w.Done() {
		t.Fatal("rejected submission should leave the wizard open")
	}
	if w.Current() != 2 {
		t.Errorf("current = %d, want 2", w.Current())
	}
	if w.Notice() == "" {
		t.Error("expected a notice")
	}

	// Completion is re-armed: walking forward submits again.
	sub.err = nil
	w, _ = send(w, nextKey)
	w, _ = send(w, nextKey)
	w, cmd = send(w, nextKey)
	if !w.Submitting() {
		t.Fatal("second completion should submit again")
	}
	w, _ = send(w, submitResult(t, cmd))
	if !w.Done() || sub.calls != 2 {
		t.Errorf("done = %v, calls = %d", w.Done(), sub.calls)
	}
}

func TestWizard_HandlerErrorShowsNotice(t *testing.T) {
	steps := newSteps(1)
	sub := &fakeSubmitter{err: errors.New("directory offline")}
	w := newWizard(t, steps, sub)

	w, cmd := send(w, nextKey)
	w, cmd = send(w, submitResult(t, cmd))
	if quits(cmd) || w.Done() {
		t.Fatal("handler failure must not quit")
	}
	if !strings.Contains(w.View(), "directory offline") {
		t.Error("handler error should be shown")
	}
}

func TestWizard_MessageRouting(t *testing.T) {
	steps := newSteps(3)
	w := newWizard(t, steps, &fakeSubmitter{})

	w, _ = send(w, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if steps[0].keys != 1 || steps[1].keys != 0 {
		t.Error("keys should only reach the active step")
	}

	type continuation struct{}
	w, _ = send(w, continuation{})
	for i, s := range steps {
		if s.others != 1 {
			t.Errorf("step %d saw %d non-key messages, want 1", i+1, s.others)
		}
	}
}

func TestWizard_HoldsContinuationsWhileSubmitting(t *testing.T) {
	type uploaded struct{}

	tests := []struct {
		name string
		err  error
		// finish ends the submission.
		finish func(t *testing.T, w WizardModel, cmd tea.Cmd) (WizardModel, tea.Cmd)
	}{
		{
			name: "rejected",
			err:  fmt.Errorf("%w: required at s1.x", form.ErrInvalid),
			finish: func(t *testing.T, w WizardModel, cmd tea.Cmd) (WizardModel, tea.Cmd) {
				return send(w, submitResult(t, cmd))
			},
		},
		{
			name: "handler error",
			err:  errors.New("directory offline"),
			finish: func(t *testing.T, w WizardModel, cmd tea.Cmd) (WizardModel, tea.Cmd) {
				return send(w, submitResult(t, cmd))
			},
		},
		{
			name: "cancelled",
			finish: func(_ *testing.T, w WizardModel, _ tea.Cmd) (WizardModel, tea.Cmd) {
				return send(w, tea.KeyMsg{Type: tea.KeyCtrlC})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := newSteps(2)
			sub := &fakeSubmitter{err: tt.err, invalid: map[string]bool{"s1": true}}
			w := newWizard(t, steps, sub, WithInitialStep(2))

			w, cmd := send(w, nextKey)
			if !w.Submitting() {
				t.Fatal("expected a submission")
			}
			w, _ = send(w, uploaded{})
			if w.Held() != 1 {
				t.Errorf("held = %d, want 1", w.Held())
			}
			if steps[0].others != 0 || steps[1].others != 0 {
				t.Fatal("continuation reached a step while submitting")
			}

			w, _ = tt.finish(t, w, cmd)
			if w.Held() != 0 {
				t.Errorf("held = %d after the submission ended", w.Held())
			}
			for i, s := range steps {
				if s.others != 1 {
					t.Errorf("step %d saw %d continuations, want 1", i+1, s.others)
				}
			}
		})
	}
}

func TestWizard_QuitCancels(t *testing.T) {
	steps := newSteps(2)
	w := newWizard(t, steps, &fakeSubmitter{})

	w, cmd := send(w, tea.KeyMsg{Type: tea.KeyEsc})
	if !errors.Is(w.Err(), ErrCancelled) || !quits(cmd) {
		t.Fatalf("err = %v", w.Err())
	}
	if !steps[0].closed {
		t.Error("steps should be closed on quit")
	}
}

func TestRenderProgress(t *testing.T) {
	steps := newSteps(3)
	in := []Step{steps[0], steps[1], steps[2]}
	inds := []stepper.Indicator{
		{Index: 1, State: stepper.StateCompleted, HasBar: true, BarFilled: true},
		{Index: 2, State: stepper.StateCurrent, HasBar: true},
		{Index: 3, State: stepper.StatePending},
	}
	out := RenderProgress(in, inds, NewStyleSet(DarkTheme), 80)
	for _, want := range []string{"✓", " 2 ", " 3 ", "━━", "──", "Step 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress missing %q:\n%s", want, out)
		}
	}
}

func TestDetectTheme(t *testing.T) {
	t.Setenv(ThemeEnv, "")
	t.Setenv("COLORFGBG", "")

	if DetectTheme("light").Name != "light" {
		t.Error("flag should win")
	}
	t.Setenv(ThemeEnv, "light")
	if DetectTheme("auto").Name != "light" {
		t.Error("env should apply when the flag is auto")
	}
	t.Setenv(ThemeEnv, "")
	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme("").Name != "light" {
		t.Error("COLORFGBG light background should be detected")
	}
	t.Setenv("COLORFGBG", "15;0")
	if DetectTheme("").Name != "dark" {
		t.Error("default should be dark")
	}
}

func TestRenderBanner(t *testing.T) {
	out := RenderBanner(NewStyleSet(LightTheme), "", 80)
	if !strings.Contains(out, "vdev") || !strings.Contains(out, "Add new Employee") {
		t.Errorf("banner = %q", out)
	}
}
