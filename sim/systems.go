package sim

import (
	"log"

	"github.com/milk9111/stealth/agent"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in the order they were added.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if system != nil {
			system.Update(w)
		}
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// AgentSystem updates agents one after another. A later agent observes the
// already updated state of an earlier one.
type AgentSystem struct{}

func (AgentSystem) Update(w *World) {
	for i, a := range w.agents {
		for _, intent := range a.Update(w.dt, w.enemyOf(i)) {
			w.events.Push(Event{Tick: w.tick, Intent: intent})
		}
	}
}

// KnockoutSystem applies queued knockouts in the order they were raised. A
// knockout from an agent that went down earlier in the same drain is
// dropped, so the first agent to update wins a simultaneous knockout.
type KnockoutSystem struct{}

func (KnockoutSystem) Update(w *World) {
	for _, evt := range w.events.Drain() {
		if evt.Intent.Kind != agent.IntentKnockout {
			continue
		}
		source := w.Agent(evt.Intent.Source)
		target := w.Agent(evt.Intent.Target)
		if source == nil || target == nil {
			continue
		}
		if source.State() == agent.Down {
			if w.debug {
				log.Printf("sim: tick %d knockout %s -> %s dropped, issuer is down", w.tick, source.ID(), target.ID())
			}
			continue
		}
		if target.Knockout() && w.debug {
			log.Printf("sim: tick %d agent %s knocked out %s", w.tick, source.ID(), target.ID())
		}
	}
}

// TransitionLog logs every agent state change since the previous tick.
type TransitionLog struct {
	last map[string]agent.State
}

func (t *TransitionLog) Update(w *World) {
	if t.last == nil {
		t.last = make(map[string]agent.State, len(w.agents))
	}
	for _, a := range w.agents {
		prev, ok := t.last[a.ID()]
		if ok && prev != a.State() {
			log.Printf("sim: tick %d agent %s %s -> %s", w.tick, a.ID(), prev, a.State())
		}
		t.last[a.ID()] = a.State()
	}
}
