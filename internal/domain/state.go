package domain

import "fmt"

// State is a step of a transfer's lifecycle.
//
//	Idle → Fetching → Storing → Done
//	          ↓          ↓
//	        Failed     Failed
type State int

const (
	StateIdle State = iota
	StateFetching
	StateStoring
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateStoring:
		return "storing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:     {StateFetching, StateFailed},
	StateFetching: {StateStoring, StateFailed},
	StateStoring:  {StateDone, StateFailed},
}

// CanTransition reports whether from → to is a legal step.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
