package translation

import (
	"sync"

	"github.com/cpgkit/cpgkit/internal/cpgerr"
)

// State is one phase of a translation's lifecycle (spec.md §4.H).
type State int

const (
	Idle State = iota
	Parsing
	Passing
	Finalizing
	Done
	Failed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Parsing:
		return "Parsing"
	case Passing:
		return "Passing"
	case Finalizing:
		return "Finalizing"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// legalNext tables the only transitions advance permits. Failed and
// Cancelled are terminal: "a Failed or Cancelled translation may not be
// resumed" (spec.md §4.H).
var legalNext = map[State]map[State]bool{
	Idle:       {Parsing: true, Failed: true, Cancelled: true},
	Parsing:    {Passing: true, Failed: true, Cancelled: true},
	Passing:    {Finalizing: true, Failed: true, Cancelled: true},
	Finalizing: {Done: true, Failed: true, Cancelled: true},
}

// stateMachine guards a translation's State with monotonic transitions.
type stateMachine struct {
	mu      sync.Mutex
	current State
}

func newStateMachine() *stateMachine {
	return &stateMachine{current: Idle}
}

func (m *stateMachine) get() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// advance transitions to next, returning an InternalError if the
// transition is not in legalNext for the current state.
func (m *stateMachine) advance(next State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	allowed := legalNext[m.current]
	if !allowed[next] {
		return &cpgerr.InternalError{
			Component: "translation.stateMachine",
			Reason:    "illegal transition " + m.current.String() + " -> " + next.String(),
		}
	}
	m.current = next
	return nil
}
