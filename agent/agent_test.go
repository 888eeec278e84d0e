package agent

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/stealth/maze"
	"github.com/milk9111/stealth/nav"
	"github.com/milk9111/stealth/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnemy struct {
	id         string
	cell       maze.Point
	heading    float64
	state      State
	recognized bool
}

func (f *fakeEnemy) ID() string       { return f.id }
func (f *fakeEnemy) Cell() maze.Point { return f.cell }
func (f *fakeEnemy) Heading() float64 { return f.heading }
func (f *fakeEnemy) State() State     { return f.state }
func (f *fakeEnemy) Recognized() bool { return f.recognized }

// hidden sits on a border wall, so line of sight to it always fails.
func hidden() *fakeEnemy {
	return &fakeEnemy{id: "B", cell: maze.Point{0, 0}}
}

func openGrid(size int) maze.Grid {
	g := maze.NewGrid(size)
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			g[y][x] = maze.Floor
		}
	}
	return g
}

func corridor(width int) maze.Grid {
	g := maze.NewGrid(width)
	for x := 1; x < width-1; x++ {
		g[1][x] = maze.Floor
	}
	return g
}

func newTestAgent(grid maze.Grid, start maze.Point) *Agent {
	rng := rand.New(rand.NewSource(1))
	return New("A", start, nav.NewNavigator(grid, rng), nil, DefaultConfig(), rng)
}

func TestNewAgent(t *testing.T) {
	g := openGrid(8)
	a := newTestAgent(g, maze.Point{2, 3})

	assert.Equal(t, Explore, a.State())
	assert.Equal(t, maze.Point{2, 3}, a.Cell())
	assert.Equal(t, maze.Point{2, 3}, a.Goal())
	assert.Equal(t, maze.CellCenter(maze.Point{2, 3}, 1.4, 8), a.WorldPos())
	assert.False(t, a.Recognized())
	assert.Len(t, a.queue, g.FloorCount())
	for _, p := range a.queue {
		assert.True(t, g.IsFloor(p))
	}
}

func TestCanSee(t *testing.T) {
	g := openGrid(20)
	g[5][10] = maze.Wall
	a := newTestAgent(g, maze.Point{10, 2})

	cases := []struct {
		name   string
		target maze.Point
		want   bool
	}{
		{"straight_ahead", maze.Point{10, 4}, true},
		{"at_view_distance", maze.Point{12, 9}, true},
		{"beyond_view_distance", maze.Point{12, 11}, false},
		{"inside_cone", maze.Point{12, 6}, true},
		{"outside_cone", maze.Point{14, 6}, false},
		{"behind", maze.Point{10, 1}, false},
		{"behind_wall", maze.Point{10, 8}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, a.CanSee(c.target))
		})
	}
}

func TestRecognitionHysteresis(t *testing.T) {
	g := openGrid(12)
	a := newTestAgent(g, maze.Point{5, 2})
	enemy := &fakeEnemy{id: "B", cell: maze.Point{5, 6}}
	const dt = 0.25

	for i := 1; i <= 7; i++ {
		a.perceive(dt, enemy)
		require.False(t, a.Recognized(), "tick %d", i)
	}
	a.perceive(dt, enemy)
	require.True(t, a.Recognized(), "2.0s of visibility recognizes")
	assert.Equal(t, Chase, a.State())
	seen, ok := a.LastSeen()
	assert.True(t, ok)
	assert.Equal(t, maze.Point{5, 6}, seen)

	// Step out of the view cone.
	enemy.cell = maze.Point{1, 2}
	for i := 1; i <= 11; i++ {
		a.perceive(dt, enemy)
		require.True(t, a.Recognized(), "still recognized after %.2fs", float64(i)*dt)
		require.Equal(t, Chase, a.State())
	}
	a.perceive(dt, enemy)
	assert.False(t, a.Recognized())
	assert.Equal(t, Lost, a.State())
	assert.Equal(t, maze.Point{5, 6}, a.Goal())
	path := a.Path()
	require.NotEmpty(t, path)
	assert.Equal(t, maze.Point{5, 2}, path[0])
	assert.Equal(t, maze.Point{5, 6}, path[len(path)-1])
}

func TestVisibilityDecaysAtHalfRate(t *testing.T) {
	g := openGrid(12)
	a := newTestAgent(g, maze.Point{5, 2})
	visible := &fakeEnemy{id: "B", cell: maze.Point{5, 6}}
	const dt = 0.25

	for i := 0; i < 4; i++ {
		a.perceive(dt, visible)
	}
	assert.InDelta(t, 1.0, a.VisibilityTimer(), 1e-9)
	for i := 0; i < 4; i++ {
		a.perceive(dt, hidden())
	}
	assert.InDelta(t, 0.5, a.VisibilityTimer(), 1e-9)
	assert.InDelta(t, 1.0, a.LostTimer(), 1e-9)

	for i := 0; i < 5; i++ {
		a.perceive(dt, visible)
	}
	assert.False(t, a.Recognized())
	assert.Zero(t, a.LostTimer())
	a.perceive(dt, visible)
	assert.True(t, a.Recognized())

	for i := 0; i < 40; i++ {
		a.perceive(dt, hidden())
	}
	assert.Zero(t, a.VisibilityTimer(), "floored at zero")
}

func TestFollowPath(t *testing.T) {
	g := corridor(8)
	a := newTestAgent(g, maze.Point{1, 1})
	a.setPath(a.nav.PathTo(maze.Point{1, 1}, maze.Point{4, 1}))
	require.Len(t, a.Path(), 4)

	ticks := 0
	for !a.follow(0.05) {
		ticks++
		require.Less(t, ticks, 1000)
		require.True(t, g.IsFloor(a.Cell()))
	}
	// Three cells at one cell per second.
	assert.InDelta(t, 60, ticks, 3)
	assert.Equal(t, maze.Point{4, 1}, a.Cell())
	assert.Equal(t, maze.CellCenter(maze.Point{4, 1}, 1.4, 8), a.WorldPos())
	assert.InDelta(t, math.Pi/2, a.Heading(), 1e-9, "moving +x")
	assert.Empty(t, a.Path())

	assert.True(t, a.follow(0.05), "no path reports arrival")
}

func TestScanCycle(t *testing.T) {
	g := openGrid(8)
	a := newTestAgent(g, maze.Point{3, 3})
	a.state = Scan
	a.resetScan()
	a.heading = 1

	for i := 0; i < 12; i++ {
		a.Update(0.25, hidden())
		require.Equal(t, Scan, a.State(), "tick %d", i)
	}
	assert.Less(t, a.Heading(), 1.0)
	a.Update(0.25, hidden())
	assert.Equal(t, Explore, a.State())
}

func TestExploreScanLoop(t *testing.T) {
	g := openGrid(7)
	a := newTestAgent(g, maze.Point{1, 1})

	seen := map[State]int{}
	prev := a.State()
	for i := 0; i < 3000; i++ {
		a.Update(0.05, hidden())
		require.True(t, g.IsFloor(a.Cell()), "tick %d cell %v", i, a.Cell())
		if a.State() != prev {
			seen[a.State()]++
			prev = a.State()
		}
	}
	assert.Greater(t, seen[Scan], 1)
	assert.Greater(t, seen[Explore], 1)
	assert.Len(t, seen, 2, "only explore and scan without an enemy")
}

func TestChaseKnockout(t *testing.T) {
	g := openGrid(10)
	a := newTestAgent(g, maze.Point{5, 4})
	a.state = Chase
	a.recognized = true
	a.visibilityTimer = 2

	enemy := &fakeEnemy{id: "B", cell: maze.Point{5, 5}, state: Explore}
	intents := a.Update(0.016, enemy)
	require.Len(t, intents, 1)
	assert.Equal(t, Intent{Kind: IntentKnockout, Source: "A", Target: "B"}, intents[0])
	assert.Equal(t, Flank, a.State(), "already on the flank point")

	// Facing the chaser: no knockout.
	enemy.heading = math.Pi
	a.state = Chase
	assert.Empty(t, a.Update(0.016, enemy))
}

func TestChaseWithoutRecognitionExplores(t *testing.T) {
	g := openGrid(10)
	a := newTestAgent(g, maze.Point{5, 4})
	a.state = Flank
	a.Update(0.016, hidden())
	assert.Equal(t, Explore, a.State())
}

func TestDownIsTerminal(t *testing.T) {
	g := openGrid(10)
	a := newTestAgent(g, maze.Point{5, 4})
	enemy := &fakeEnemy{id: "B", cell: maze.Point{5, 6}, state: Chase, recognized: true}

	require.True(t, a.Knockout())
	assert.Equal(t, Down, a.State())
	assert.False(t, a.Knockout())

	cell, world, heading := a.Cell(), a.WorldPos(), a.Heading()
	for i := 0; i < 50; i++ {
		assert.Nil(t, a.Update(0.05, enemy))
	}
	assert.Equal(t, Down, a.State())
	assert.Equal(t, cell, a.Cell())
	assert.Equal(t, world, a.WorldPos())
	assert.Equal(t, heading, a.Heading())
	assert.Zero(t, a.VisibilityTimer())
}

func TestEscapeWhenHunted(t *testing.T) {
	g := corridor(11)
	a := newTestAgent(g, maze.Point{5, 1})
	a.heading = -math.Pi / 2
	a.recognized = true
	threat := &fakeEnemy{id: "B", cell: maze.Point{3, 1}, state: Chase, recognized: true}

	a.Update(0.016, threat)
	assert.Equal(t, Escape, a.State())
	assert.False(t, a.Recognized())

	path := a.Path()
	require.NotEmpty(t, path)
	assert.Equal(t, maze.Point{5, 1}, path[0])
	assert.GreaterOrEqual(t, a.Goal().X, 8)
	for i := 1; i < len(path); i++ {
		assert.GreaterOrEqual(t, path[i].DistSq(threat.cell), path[i-1].DistSq(threat.cell))
	}

	// Once the flee point is reached the agent goes back to exploring.
	for i := 0; i < 1000 && a.State() == Escape; i++ {
		a.Update(0.05, hidden())
	}
	assert.Equal(t, Explore, a.State())
}

func TestNoEscapeWhenThreatUnseen(t *testing.T) {
	g := corridor(11)
	a := newTestAgent(g, maze.Point{5, 1})
	a.heading = math.Pi / 2 // facing away
	threat := &fakeEnemy{id: "B", cell: maze.Point{3, 1}, state: Chase, recognized: true}

	a.Update(0.016, threat)
	assert.NotEqual(t, Escape, a.State())
}

func TestLostSearchesLastSeen(t *testing.T) {
	g := openGrid(14)
	a := newTestAgent(g, maze.Point{2, 2})
	a.state = Chase
	a.recognized = true
	a.lastSeen, a.hasLastSeen = maze.Point{5, 2}, true
	a.lostTimer = 2.9

	a.Update(0.25, hidden())
	require.Equal(t, Lost, a.State())
	assert.True(t, a.Uncertain())
	assert.Equal(t, maze.Point{5, 2}, a.Goal())

	reached := false
	for i := 0; i < 2000 && a.State() == Lost; i++ {
		a.Update(0.05, hidden())
		if a.Cell() == (maze.Point{5, 2}) {
			reached = true
		}
		if a.State() == Lost {
			require.True(t, a.Uncertain())
		}
	}
	assert.True(t, reached)
	assert.Equal(t, Explore, a.State())
	assert.False(t, a.Uncertain())
}

func TestDefaultTransitions(t *testing.T) {
	tr := DefaultTransitions()
	require.NotNil(t, tr)
	assert.Equal(t, Explore, tr.Initial)

	cases := []struct {
		from State
		ev   Event
		to   State
		ok   bool
	}{
		{Explore, EventRecognized, Chase, true},
		{Explore, EventArrived, Scan, true},
		{Scan, EventScanDone, Explore, true},
		{Chase, EventArrived, Flank, true},
		{Flank, EventRecognized, Chase, true},
		{Chase, EventRecognitionDropped, Explore, true},
		{Lost, EventScanDone, Explore, true},
		{Escape, EventArrived, Explore, true},
		{Escape, EventRecognized, Escape, false},
		{Scan, EventThreatened, Escape, true},
		{Chase, EventLostTimeout, Lost, true},
		{Down, EventRecognized, Down, false},
		{Down, EventKnockedOut, Down, false},
	}
	for _, c := range cases {
		t.Run(c.from.String()+"_"+string(c.ev), func(t *testing.T) {
			to, ok := tr.Next(c.from, c.ev)
			assert.Equal(t, c.ok, ok)
			if ok {
				assert.Equal(t, c.to, to)
			}
		})
	}

	for s := Explore; s < Down; s++ {
		to, ok := tr.Next(s, EventKnockedOut)
		assert.True(t, ok, "%s must be knockable", s)
		assert.Equal(t, Down, to)
	}
}

func TestCompileTransitionsErrors(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.FSMSpec
	}{
		{"missing_initial", prefabs.FSMSpec{}},
		{"unknown_initial", prefabs.FSMSpec{Initial: "sleep"}},
		{"initial_down", prefabs.FSMSpec{Initial: "down"}},
		{"unknown_from", prefabs.FSMSpec{Initial: "explore", Transitions: map[string]map[string]string{
			"sleep": {"arrived": "scan"},
		}}},
		{"unknown_event", prefabs.FSMSpec{Initial: "explore", Transitions: map[string]map[string]string{
			"explore": {"teleported": "scan"},
		}}},
		{"unknown_to", prefabs.FSMSpec{Initial: "explore", Transitions: map[string]map[string]string{
			"explore": {"arrived": "nap"},
		}}},
		{"down_not_terminal", prefabs.FSMSpec{Initial: "explore", Transitions: map[string]map[string]string{
			"down": {"recognized": "chase"},
		}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := CompileTransitions(c.spec)
			assert.Error(t, err)
		})
	}

	tr, err := LoadTransitions("")
	require.NoError(t, err)
	to, ok := tr.Next(Explore, EventArrived)
	assert.True(t, ok)
	assert.Equal(t, Scan, to)
}

func TestParseState(t *testing.T) {
	for s := Explore; s <= Down; s++ {
		got, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseState("hiding")
	assert.ErrorIs(t, err, ErrUnknownState)
	_, err = ParseEvent("sneezed")
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Equal(t, "state(42)", State(42).String())
}

func TestConfigFromEmbeddedSpec(t *testing.T) {
	data, err := prefabs.LoadEmbedded(prefabs.SimSpecFile)
	require.NoError(t, err)
	spec, err := prefabs.DecodeSpec[prefabs.SimSpec](prefabs.SimSpecFile, data)
	require.NoError(t, err)

	got := ConfigFromSpec(spec.Agent, spec.CellSize)
	want := DefaultConfig()
	assert.InDelta(t, want.Speed, got.Speed, 1e-9)
	assert.InDelta(t, want.CellSize, got.CellSize, 1e-9)
	assert.InDelta(t, want.FOV, got.FOV, 1e-9)
	assert.InDelta(t, want.ViewDistance, got.ViewDistance, 1e-9)
	assert.InDelta(t, want.RecognizeAfter, got.RecognizeAfter, 1e-9)
	assert.InDelta(t, want.ForgetAfter, got.ForgetAfter, 1e-9)
	assert.InDelta(t, want.VisibilityDecay, got.VisibilityDecay, 1e-9)
	assert.InDeltaSlice(t, want.ScanHeadings, got.ScanHeadings, 1e-9)
	assert.InDelta(t, want.ScanHold, got.ScanHold, 1e-9)
	assert.InDelta(t, want.ScanTurnRate, got.ScanTurnRate, 1e-9)
	assert.InDelta(t, want.KnockoutRange, got.KnockoutRange, 1e-9)
	assert.InDelta(t, want.KnockoutArc, got.KnockoutArc, 1e-9)
	assert.InDelta(t, want.ArriveEpsilon, got.ArriveEpsilon, 1e-9)
}
