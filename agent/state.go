package agent

import (
	"errors"
	"fmt"
)

// State is an agent's behavioral state.
type State uint8

const (
	Explore State = iota
	Scan
	Chase
	Flank
	Lost
	Escape
	Down
	numStates
)

var stateNames = [numStates]string{
	Explore: "explore",
	Scan:    "scan",
	Chase:   "chase",
	Flank:   "flank",
	Lost:    "lost",
	Escape:  "escape",
	Down:    "down",
}

var (
	ErrUnknownState = errors.New("agent: unknown state")
	ErrUnknownEvent = errors.New("agent: unknown event")
)

func (s State) String() string {
	if s < numStates {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownState, name)
}

// Event drives a state transition.
type Event string

const (
	EventRecognized         Event = "recognized"
	EventLostTimeout        Event = "lost_timeout"
	EventThreatened         Event = "threatened"
	EventArrived            Event = "arrived"
	EventScanDone           Event = "scan_done"
	EventRecognitionDropped Event = "recognition_dropped"
	EventKnockedOut         Event = "knocked_out"
)

var knownEvents = map[Event]bool{
	EventRecognized:         true,
	EventLostTimeout:        true,
	EventThreatened:         true,
	EventArrived:            true,
	EventScanDone:           true,
	EventRecognitionDropped: true,
	EventKnockedOut:         true,
}

func ParseEvent(name string) (Event, error) {
	ev := Event(name)
	if !knownEvents[ev] {
		return "", fmt.Errorf("%w %q", ErrUnknownEvent, name)
	}
	return ev, nil
}
