package sim

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/agent"
	"github.com/milk9111/stealth/maze"
)

// AgentView is what a presenter needs to draw one agent.
type AgentView struct {
	ID         string
	Cell       maze.Point
	World      cp.Vector
	Heading    float64
	State      agent.State
	Recognized bool
	Goal       maze.Point
	Uncertain  bool
	Path       []maze.Point
}

type Snapshot struct {
	Tick    int
	Elapsed float64
	Agents  []AgentView
}

func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    w.tick,
		Elapsed: w.elapsed,
		Agents:  make([]AgentView, 0, len(w.agents)),
	}
	for _, a := range w.agents {
		s.Agents = append(s.Agents, AgentView{
			ID:         a.ID(),
			Cell:       a.Cell(),
			World:      a.WorldPos(),
			Heading:    a.Heading(),
			State:      a.State(),
			Recognized: a.Recognized(),
			Goal:       a.Goal(),
			Uncertain:  a.Uncertain(),
			Path:       append([]maze.Point(nil), a.Path()...),
		})
	}
	return s
}
