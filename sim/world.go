package sim

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/agent"
	"github.com/milk9111/stealth/maze"
	"github.com/milk9111/stealth/nav"
)

var (
	ErrInvalidStart = errors.New("sim: invalid start")
	ErrNoStarts     = errors.New("sim: no start cells far enough apart")
)

// maxStartAttempts bounds the resampling of the second start per floor cell.
const maxStartAttempts = 64

// World owns the grid, the shared navigator and the agents.
type World struct {
	cfg       Config
	seed      int64
	rng       *rand.Rand
	grid      maze.Grid
	nav       *nav.Navigator
	agents    []*agent.Agent
	scheduler *Scheduler
	events    EventQueue
	debug     bool

	tick    int
	elapsed float64
	dt      float64
}

type options struct {
	seed     int64
	hasSeed  bool
	grid     maze.Grid
	starts   []maze.Point
	headings []float64
	table    *agent.Transitions
	debug    bool
}

type Option func(*options)

func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithGrid skips generation and uses grid as is.
func WithGrid(grid maze.Grid) Option {
	return func(o *options) { o.grid = grid }
}

// WithStarts places the agents instead of sampling random floor cells.
func WithStarts(a, b maze.Point) Option {
	return func(o *options) { o.starts = []maze.Point{a, b} }
}

// WithHeadings sets the initial headings of the agents, in radians.
func WithHeadings(a, b float64) Option {
	return func(o *options) { o.headings = []float64{a, b} }
}

func WithTransitions(t *agent.Transitions) Option {
	return func(o *options) { o.table = t }
}

// WithDebug logs state transitions and knockouts.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

func New(cfg Config, opts ...Option) (*World, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasSeed {
		o.seed = time.Now().UnixNano()
	}
	if cfg.MaxDT <= 0 {
		return nil, fmt.Errorf("sim: max dt must be positive, got %v", cfg.MaxDT)
	}
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("sim: cell size must be positive, got %v", cfg.CellSize)
	}
	cfg.Agent.CellSize = cfg.CellSize

	rng := rand.New(rand.NewSource(o.seed))

	grid := o.grid
	if grid == nil {
		mo := cfg.Maze
		mo.Size = cfg.GridSize
		grid = maze.GenerateWithOptions(mo, rng)
	}
	if grid.FloorCount() < 2 {
		return nil, fmt.Errorf("%w: grid has %d floor cells", ErrNoStarts, grid.FloorCount())
	}

	navigator := nav.NewNavigator(grid, rng)
	if cfg.FleeDistance > 0 {
		navigator.FleeDistance = cfg.FleeDistance
	}

	table := o.table
	if table == nil {
		var err error
		table, err = loadTransitions(cfg.FSM)
		if err != nil {
			return nil, err
		}
	}

	starts := o.starts
	if starts == nil {
		var err error
		starts, err = sampleStarts(navigator, cfg.MinStartDistanceSq)
		if err != nil {
			return nil, err
		}
	} else if err := validateStarts(grid, starts); err != nil {
		return nil, err
	}

	w := &World{
		cfg:   cfg,
		seed:  o.seed,
		rng:   rng,
		grid:  grid,
		nav:   navigator,
		debug: o.debug,
	}
	for i, id := range []string{"A", "B"} {
		a := agent.New(id, starts[i], navigator, table, cfg.Agent, rng)
		if o.headings != nil {
			a.SetHeading(o.headings[i])
		}
		w.agents = append(w.agents, a)
	}

	w.scheduler = NewScheduler(AgentSystem{}, KnockoutSystem{})
	if w.debug {
		tl := &TransitionLog{}
		tl.Update(w)
		w.scheduler.Add(tl)
		log.Printf("sim: seed %d grid %d agents A %v B %v", w.seed, grid.Size(), starts[0], starts[1])
	}
	return w, nil
}

func loadTransitions(name string) (*agent.Transitions, error) {
	if name == "" {
		return agent.DefaultTransitions(), nil
	}
	t, err := agent.LoadTransitions(name)
	if err != nil {
		return nil, fmt.Errorf("sim: transitions %s: %w", name, err)
	}
	return t, nil
}

// sampleStarts picks a random floor cell for A and resamples B until it is
// at least minDistSq away.
func sampleStarts(n *nav.Navigator, minDistSq int) ([]maze.Point, error) {
	a := n.RandomFloor()
	attempts := maxStartAttempts * n.Grid().FloorCount()
	for i := 0; i < attempts; i++ {
		b := n.RandomFloor()
		if b != a && a.DistSq(b) >= minDistSq {
			return []maze.Point{a, b}, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNoStarts, minDistSq)
}

func validateStarts(grid maze.Grid, starts []maze.Point) error {
	for i, p := range starts {
		if !grid.IsFloor(p) {
			return fmt.Errorf("%w: agent %d at %v is not a floor cell", ErrInvalidStart, i, p)
		}
	}
	if starts[0] == starts[1] {
		return fmt.Errorf("%w: both agents at %v", ErrInvalidStart, starts[0])
	}
	return nil
}

// Step advances the simulation by dt seconds, clamped to [0, MaxDT].
func (w *World) Step(dt float64) {
	if w == nil {
		return
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	w.dt = math.Min(dt, w.cfg.MaxDT)
	w.tick++
	w.elapsed += w.dt
	w.scheduler.Update(w)
}

// enemyOf returns the agent that agent i perceives.
func (w *World) enemyOf(i int) agent.Enemy {
	return w.agents[(i+1)%len(w.agents)]
}

func (w *World) Agent(id string) *agent.Agent {
	for _, a := range w.agents {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

func (w *World) Agents() []*agent.Agent {
	return append([]*agent.Agent(nil), w.agents...)
}

func (w *World) Config() Config            { return w.cfg }
func (w *World) Seed() int64               { return w.seed }
func (w *World) Grid() maze.Grid           { return w.grid }
func (w *World) Navigator() *nav.Navigator { return w.nav }
func (w *World) Events() *EventQueue       { return &w.events }
func (w *World) Scheduler() *Scheduler     { return w.scheduler }
func (w *World) Tick() int                 { return w.tick }
func (w *World) Elapsed() float64          { return w.elapsed }
func (w *World) Debug() bool               { return w.debug }

// CellCenter maps a grid cell to its world position.
func (w *World) CellCenter(p maze.Point) cp.Vector {
	return maze.CellCenter(p, w.cfg.CellSize, w.grid.Size())
}

// Done reports whether any agent is down.
func (w *World) Done() bool {
	for _, a := range w.agents {
		if a.State() == agent.Down {
			return true
		}
	}
	return false
}
