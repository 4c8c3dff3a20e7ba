package stepper

// IndicatorState is the visual state of one progress marker.
type IndicatorState int

const (
	StatePending IndicatorState = iota
	StateCurrent
	StateCompleted
)

func (s IndicatorState) String() string {
	switch s {
	case StateCurrent:
		return "current"
	case StateCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// Indicator describes the progress marker of one step and the bar to its
// right. The last step has no bar (HasBar is false).
type Indicator struct {
	Index     int
	State     IndicatorState
	HasBar    bool
	BarFilled bool
}

// Indicators returns one Indicator per step, in order.
func (s *Stepper[T]) Indicators() []Indicator {
	out := make([]Indicator, len(s.steps))
	for i := range s.steps {
		idx := i + 1
		state := StatePending
		switch {
		case idx == s.current:
			state = StateCurrent
		case idx < s.current:
			state = StateCompleted
		}
		out[i] = Indicator{
			Index:     idx,
			State:     state,
			HasBar:    idx < len(s.steps),
			BarFilled: idx < len(s.steps) && state == StateCompleted,
		}
	}
	return out
}
