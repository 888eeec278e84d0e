package agent

import (
	"fmt"
	"sync"

	"github.com/milk9111/stealth/prefabs"
)

// Transitions is a compiled from -> event -> to table.
type Transitions struct {
	Initial State
	table   [numStates]map[Event]State
}

// Next returns the state ev leads to from from, if any.
func (t *Transitions) Next(from State, ev Event) (State, bool) {
	if t == nil || from >= numStates {
		return from, false
	}
	to, ok := t.table[from][ev]
	return to, ok
}

func CompileTransitions(spec prefabs.FSMSpec) (*Transitions, error) {
	if spec.Initial == "" {
		return nil, fmt.Errorf("fsm: missing initial state")
	}
	initial, err := ParseState(spec.Initial)
	if err != nil {
		return nil, fmt.Errorf("fsm: initial: %w", err)
	}
	if initial == Down {
		return nil, fmt.Errorf("fsm: initial state cannot be %s", Down)
	}

	t := &Transitions{Initial: initial}
	for from, events := range spec.Transitions {
		fromState, err := ParseState(from)
		if err != nil {
			return nil, fmt.Errorf("fsm: transitions: %w", err)
		}
		if fromState == Down && len(events) > 0 {
			return nil, fmt.Errorf("fsm: %s is terminal but lists %d transitions", Down, len(events))
		}
		m := make(map[Event]State, len(events))
		for evName, to := range events {
			ev, err := ParseEvent(evName)
			if err != nil {
				return nil, fmt.Errorf("fsm: %s: %w", from, err)
			}
			toState, err := ParseState(to)
			if err != nil {
				return nil, fmt.Errorf("fsm: %s.%s: %w", from, evName, err)
			}
			m[ev] = toState
		}
		t.table[fromState] = m
	}
	return t, nil
}

func LoadTransitions(name string) (*Transitions, error) {
	spec, err := prefabs.LoadFSMSpec(name)
	if err != nil {
		return nil, err
	}
	return CompileTransitions(*spec)
}

var (
	defaultOnce  sync.Once
	defaultTable *Transitions
)

// DefaultTransitions compiles the embedded transition table. The embedded
// file is covered by tests, so a failure here is a build defect.
func DefaultTransitions() *Transitions {
	defaultOnce.Do(func() {
		data, err := prefabs.LoadEmbedded(prefabs.FSMSpecFile)
		if err != nil {
			panic("agent: load embedded fsm: " + err.Error())
		}
		spec, err := prefabs.DecodeSpec[prefabs.FSMSpec](prefabs.FSMSpecFile, data)
		if err != nil {
			panic("agent: " + err.Error())
		}
		defaultTable, err = CompileTransitions(spec)
		if err != nil {
			panic("agent: compile embedded fsm: " + err.Error())
		}
	})
	return defaultTable
}
