package agent

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/maze"
	"github.com/milk9111/stealth/nav"
)

// Enemy is the read-only view one agent has of the other.
type Enemy interface {
	ID() string
	Cell() maze.Point
	Heading() float64
	State() State
	Recognized() bool
}

type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentKnockout
)

// Intent is a request an agent makes against another agent. The
// simulation root decides whether it is applied.
type Intent struct {
	Kind   IntentKind
	Source string
	Target string
}

// Agent is one autonomous navigator with its perception timers and path.
type Agent struct {
	id    string
	cfg   Config
	nav   *nav.Navigator
	table *Transitions

	cell    maze.Point
	world   cp.Vector
	heading float64
	state   State

	path     []maze.Point
	progress int
	goal     maze.Point

	queue []maze.Point

	visibilityTimer float64
	lostTimer       float64
	recognized      bool
	lastSeen        maze.Point
	hasLastSeen     bool

	scanTimer float64
	scanStep  int
	uncertain bool
}

// New places an agent on start, which must be a floor cell, and builds its
// shuffled exploration queue from rng.
func New(id string, start maze.Point, navigator *nav.Navigator, table *Transitions, cfg Config, rng *rand.Rand) *Agent {
	if table == nil {
		table = DefaultTransitions()
	}
	a := &Agent{
		id:    id,
		cfg:   cfg,
		nav:   navigator,
		table: table,
		cell:  start,
		state: table.Initial,
		goal:  start,
	}
	a.world = a.toWorld(start)
	a.queue = buildExplorationQueue(navigator.Grid(), rng)
	return a
}

func buildExplorationQueue(grid maze.Grid, rng *rand.Rand) []maze.Point {
	queue := make([]maze.Point, 0, grid.FloorCount())
	for _, p := range grid.FloorCells() {
		if p.X >= 1 && p.Y >= 1 {
			queue = append(queue, p)
		}
	}
	rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	return queue
}

func (a *Agent) ID() string          { return a.id }
func (a *Agent) Cell() maze.Point    { return a.cell }
func (a *Agent) WorldPos() cp.Vector { return a.world }
func (a *Agent) Heading() float64    { return a.heading }
func (a *Agent) State() State        { return a.state }
func (a *Agent) Recognized() bool    { return a.recognized }

// Goal is the cell the agent is currently navigating toward.
func (a *Agent) Goal() maze.Point { return a.goal }

// LastSeen is the enemy cell captured at the last recognition.
func (a *Agent) LastSeen() (maze.Point, bool) { return a.lastSeen, a.hasLastSeen }

// Uncertain is set while the agent searches the last known enemy position.
func (a *Agent) Uncertain() bool { return a.uncertain }

// Path returns the remaining cells of the current path, starting with the
// cell last reached.
func (a *Agent) Path() []maze.Point {
	if a.progress >= len(a.path) {
		return nil
	}
	return a.path[a.progress:]
}

// SetHeading turns the agent in place. Path following and scanning
// overwrite it.
func (a *Agent) SetHeading(h float64) { a.heading = common.WrapAngle(h) }

func (a *Agent) VisibilityTimer() float64 { return a.visibilityTimer }
func (a *Agent) LostTimer() float64       { return a.lostTimer }

// Knockout moves the agent into the terminal Down state. It reports whether
// the state changed.
func (a *Agent) Knockout() bool {
	return a.fire(EventKnockedOut)
}

// Update advances the agent by dt seconds against enemy. It returns the
// intents the agent raised this tick; a Down agent does nothing.
func (a *Agent) Update(dt float64, enemy Enemy) []Intent {
	if a.state == Down {
		return nil
	}

	a.perceive(dt, enemy)

	switch a.state {
	case Explore:
		a.explore(dt)
	case Scan:
		a.scan(dt)
	case Chase, Flank:
		return a.chase(dt, enemy)
	case Lost:
		a.searchLastSeen(dt)
	case Escape:
		a.escape(dt)
	}
	return nil
}

func (a *Agent) fire(ev Event) bool {
	next, ok := a.table.Next(a.state, ev)
	if !ok || next == a.state {
		return false
	}
	prev := a.state
	a.state = next
	a.enter(prev)
	return true
}

func (a *Agent) enter(prev State) {
	if prev == Lost {
		a.uncertain = false
	}
	switch a.state {
	case Scan:
		a.resetScan()
	case Lost:
		a.resetScan()
		a.goal = a.lastSeen
		a.setPath(a.nav.PathTo(a.cell, a.lastSeen))
	case Down:
		a.setPath(nil)
	}
}

func (a *Agent) setPath(path []maze.Point) {
	a.path = path
	a.progress = 0
}

func (a *Agent) resetScan() {
	a.scanTimer = 0
	a.scanStep = 0
}

func (a *Agent) toWorld(p maze.Point) cp.Vector {
	return maze.CellCenter(p, a.cfg.CellSize, a.nav.Grid().Size())
}
