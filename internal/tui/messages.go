package tui

// StepBackMsg asks the wizard to retreat one step.
type StepBackMsg struct{}

// StepCompleteMsg asks the wizard to advance, validating the active step.
type StepCompleteMsg struct{}

// SubmitResultMsg carries the outcome of the submission started when the
// last step completed.
type SubmitResultMsg struct {
	Err error
}
