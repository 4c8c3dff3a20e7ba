package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devshahoriar/custom-form/form"
	"github.com/devshahoriar/custom-form/logging"
	"github.com/devshahoriar/custom-form/stepper"
)

// ErrCancelled is returned by Err when the user quit before submitting.
var ErrCancelled = errors.New("wizard cancelled")

// Submitter is the form the wizard submits once the last step completes.
type Submitter interface {
	Submit(ctx context.Context) error
	ErrorsUnder(prefix string) map[string]string
}

// WizardOption configures a WizardModel.
type WizardOption func(*wizardOptions)

type wizardOptions struct {
	initial int
	version string
	logger  logging.Logger
}

// WithInitialStep starts the wizard on step n (1-based).
func WithInitialStep(n int) WizardOption {
	return func(o *wizardOptions) { o.initial = n }
}

// WithVersion sets the version shown in the banner.
func WithVersion(v string) WizardOption {
	return func(o *wizardOptions) { o.version = v }
}

// WithLogger sets the wizard logger.
func WithLogger(l logging.Logger) WizardOption {
	return func(o *wizardOptions) { o.logger = l }
}

// WizardModel is the top-level bubbletea model that orchestrates the wizard.
//
// While a submission is in flight the form belongs to the submit command:
// View does not render steps, Update drops every key except ctrl+c, and
// continuations are held until the result arrives.
type WizardModel struct {
	styles  *StyleSet
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	steps   *stepper.Stepper[Step]
	form    Submitter
	logger  logging.Logger
	version string
	width   int
	height  int

	submitting bool
	held       []tea.Msg
	cancel     context.CancelFunc
	notice     string
	done       bool
	err        error
}

// NewWizardModel creates a wizard over steps that submits sub when the last
// step completes.
func NewWizardModel(theme TermTheme, steps []Step, sub Submitter, opts ...WizardOption) (WizardModel, error) {
	o := wizardOptions{initial: 1, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}

	seq := make([]stepper.Step[Step], len(steps))
	for i, s := range steps {
		seq[i] = stepper.Step[Step]{Payload: s, Validate: s.Validate}
	}
	logger := o.logger
	st, err := stepper.New(seq,
		stepper.WithInitialStep(o.initial),
		stepper.WithOnComplete(func() { logger.Info("wizard completed", nil) }),
	)
	if err != nil {
		return WizardModel{}, fmt.Errorf("creating wizard: %w", err)
	}

	styles := NewStyleSet(theme)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentTxt

	h := help.New()
	h.Styles.ShortKey = styles.KbdDesc.Bold(true)
	h.Styles.ShortDesc = styles.KbdDesc
	h.Styles.ShortSeparator = styles.DimTxt

	return WizardModel{
		styles:  styles,
		keys:    DefaultKeyMap(),
		help:    h,
		spinner: sp,
		steps:   st,
		form:    sub,
		logger:  logger,
		version: o.version,
		width:   80,
		height:  24,
	}, nil
}

// Init initializes the active step.
func (w WizardModel) Init() tea.Cmd {
	return w.active().Init()
}

func (w WizardModel) active() Step { return w.steps.Active().Payload }

func (w WizardModel) all() []Step {
	out := make([]Step, w.steps.Total())
	for i := range out {
		s, _ := w.steps.At(i + 1)
		out[i] = s.Payload
	}
	return out
}

// Current returns the 1-based index of the active step.
func (w WizardModel) Current() int { return w.steps.Current() }

// Submitting reports whether a submission is in flight.
func (w WizardModel) Submitting() bool { return w.submitting }

// Notice returns the banner message shown above the active step.
func (w WizardModel) Notice() string { return w.notice }

// Err returns ErrCancelled when the user quit, nil otherwise.
func (w WizardModel) Err() error { return w.err }

// Done returns true if the record was submitted successfully.
func (w WizardModel) Done() bool { return w.done }

// Update handles messages for the wizard.
func (w WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = ws.Width
		w.height = ws.Height
		w.help.Width = ws.Width
		return w, nil
	}

	if w.submitting {
		return w.updateSubmitting(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, w.keys.Quit):
			return w.quit(ErrCancelled)
		case key.Matches(msg, w.keys.Next):
			return w, w.next()
		case key.Matches(msg, w.keys.Back):
			return w, w.back()
		}
		return w, w.active().Update(msg)

	case StepCompleteMsg:
		return w, w.next()

	case StepBackMsg:
		return w, w.back()

	case SubmitResultMsg:
		// Late result of a submission that was already abandoned.
		return w, nil
	}

	return w, w.broadcast(msg)
}

// broadcast hands msg to every step. Continuations, ticks and blinks may
// belong to any of them.
func (w WizardModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, s := range w.all() {
		cmds = append(cmds, s.Update(msg))
	}
	return tea.Batch(cmds...)
}

// replay delivers the messages held during a submission.
func (w *WizardModel) replay() tea.Cmd {
	held := w.held
	w.held = nil
	var cmds []tea.Cmd
	for _, msg := range held {
		cmds = append(cmds, w.broadcast(msg))
	}
	return tea.Batch(cmds...)
}

// Held returns the number of messages waiting for the submission to end.
func (w WizardModel) Held() int { return len(w.held) }

func (w WizardModel) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmitResultMsg:
		return w.submitted(msg.Err)
	case spinner.TickMsg:
		if msg.ID == w.spinner.ID() {
			var cmd tea.Cmd
			w.spinner, cmd = w.spinner.Update(msg)
			return w, cmd
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return w.quit(ErrCancelled)
		}
		return w, nil
	}
	// The submit command reads the tree concurrently; steps may not write
	// to it until the result is in.
	w.held = append(w.held, msg)
	return w, nil
}

func (w *WizardModel) next() tea.Cmd {
	w.notice = ""
	out := w.steps.Advance()
	switch {
	case out.Moved:
		w.logger.Debug("step advanced", map[string]any{"from": out.From, "to": out.To})
		return w.active().Init()
	case out.Completed:
		return w.submit()
	}
	if !out.Result.OK {
		w.logger.Debug("step blocked", map[string]any{"step": out.From, "reason": out.Result.Message})
	}
	return nil
}

func (w *WizardModel) back() tea.Cmd {
	w.notice = ""
	if !w.steps.Retreat() {
		return nil
	}
	return w.active().Init()
}

func (w *WizardModel) submit() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	w.submitting = true
	w.cancel = cancel
	sub := w.form
	run := func() tea.Msg {
		return SubmitResultMsg{Err: sub.Submit(ctx)}
	}
	return tea.Batch(run, w.spinner.Tick)
}

func (w WizardModel) submitted(err error) (tea.Model, tea.Cmd) {
	w.submitting = false
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}

	switch {
	case err == nil:
		w.done = true
		return w.quit(nil)

	case errors.Is(err, form.ErrInvalid):
		replay := w.replay()
		w.steps.Reopen()
		w.notice = "Please fix the highlighted fields"
		target := w.firstInvalidStep()
		for w.steps.Current() > target {
			w.steps.Retreat()
		}
		w.logger.Info("submission rejected", map[string]any{"step": w.steps.Current()})
		return w, tea.Batch(replay, w.active().Init())

	default:
		replay := w.replay()
		w.steps.Reopen()
		w.notice = "Could not save employee: " + err.Error()
		w.logger.Error("submission failed", map[string]any{"error": err})
		return w, replay
	}
}

// firstInvalidStep returns the first step owning a failing path, or the
// active step when none does.
func (w WizardModel) firstInvalidStep() int {
	for i, s := range w.all() {
		for _, p := range s.Prefixes() {
			if len(w.form.ErrorsUnder(p)) > 0 {
				return i + 1
			}
		}
	}
	return w.steps.Current()
}

func (w WizardModel) quit(err error) (tea.Model, tea.Cmd) {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.err = err
	for _, s := range w.all() {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
	// Closed steps treat held continuations as stale and clean them up.
	return w, tea.Batch(w.replay(), tea.Quit)
}

// View renders the entire wizard UI.
func (w WizardModel) View() string {
	out := "\n" + RenderBanner(w.styles, w.version, w.width)
	out += RenderProgress(w.all(), w.steps.Indicators(), w.styles, w.width)
	out += "\n"

	if w.done {
		return out + "  " + w.styles.SuccessTxt.Render("✓ Employee added") + "\n"
	}
	if w.submitting {
		return out + "  " + w.spinner.View() + " " + w.styles.SecondaryTxt.Render("Saving employee…") + "\n"
	}

	if w.notice != "" {
		out += "  " + w.styles.WarningTxt.Render("! "+w.notice) + "\n\n"
	}
	out += w.active().View(w.width)
	if msg := w.steps.Err(); msg != "" {
		out += "\n  " + w.styles.ErrorTxt.Render("✗ "+msg) + "\n"
	}
	out += "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(w.help.View(w.keys)) + "\n"
	return out
}
