package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/prefabs"
	"github.com/milk9111/stealth/sim"
	"golang.design/x/clipboard"
)

const (
	baseWindowSize = 800
	statusDuration = 2 * time.Second
)

type Game struct {
	cfg   sim.Config
	seed  int64
	size  int
	debug bool

	world *sim.World
	view  view
	board *ebiten.Image

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	watcher        *prefabs.Watcher
	clipboardReady bool

	status      string
	statusUntil time.Time
}

func NewGame(seed int64, size int, debug, watch bool) (*Game, error) {
	cfg, err := loadConfig(size)
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, size: size, debug: debug}
	if err := g.rebuild(seed); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("viewer: clipboard unavailable: %v", err)
	} else {
		g.clipboardReady = true
	}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("viewer: watch %s: %v", prefabs.Dir, err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func loadConfig(size int) (sim.Config, error) {
	cfg, err := sim.LoadConfig()
	if err != nil {
		return sim.Config{}, err
	}
	if size > 0 {
		cfg.GridSize = size
	}
	return cfg, nil
}

// rebuild replaces the world with a fresh one generated from seed.
func (g *Game) rebuild(seed int64) error {
	w, err := sim.New(g.cfg, sim.WithSeed(seed), sim.WithDebug(g.debug))
	if err != nil {
		return fmt.Errorf("viewer: new world: %w", err)
	}
	g.seed = seed
	g.world = w
	g.view = newView(w.Grid().Size(), g.cfg.CellSize)
	if g.board != nil {
		g.board.Deallocate()
	}
	g.board = g.view.drawBoard(w.Grid())
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		if g.paused {
			g.pauseUI = NewPauseUI(g)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyMaze()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	if g.quit {
		return ebiten.Termination
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	dt := 1.0 / 60
	if tps := ebiten.ActualTPS(); tps > 0 {
		dt = 1 / tps
	}
	g.world.Step(dt)
	return nil
}

func (g *Game) regenerate() {
	seed := time.Now().UnixNano()
	if err := g.rebuild(seed); err != nil {
		log.Printf("viewer: %v", err)
		return
	}
	g.setStatus(fmt.Sprintf("new maze, seed %d", seed))
}

func (g *Game) copyMaze() {
	if !g.clipboardReady {
		g.setStatus("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.world.Grid().String()))
	g.setStatus("maze copied")
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("viewer: watch: %v", err)
		default:
			return
		}
	}
}

// reload rebuilds the world with the same seed after a prefab changed.
func (g *Game) reload(name string) {
	if name != prefabs.SimSpecFile && name != g.cfg.FSM {
		return
	}
	cfg, err := loadConfig(g.size)
	if err != nil {
		log.Printf("viewer: reload %s: %v", name, err)
		g.setStatus("reload failed: " + name)
		return
	}
	prev := g.cfg
	g.cfg = cfg
	if err := g.rebuild(g.seed); err != nil {
		log.Printf("viewer: reload %s: %v", name, err)
		g.cfg = prev
		return
	}
	log.Printf("viewer: reloaded %s", name)
	g.setStatus("reloaded " + name)
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusUntil = time.Now().Add(statusDuration)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(boardBackground)
	screen.DrawImage(g.board, nil)

	snap := g.world.Snapshot()
	for i, a := range snap.Agents {
		g.view.drawAgent(screen, a, g.cfg.Agent, agentColor(i), g.debug)
	}

	hud := fmt.Sprintf("seed %d  tick %d  %.1fs  FPS %.0f", g.seed, snap.Tick, snap.Elapsed, ebiten.ActualFPS())
	if g.debug {
		for _, a := range snap.Agents {
			hud += fmt.Sprintf("\n%s %-6s recognized=%t goal=%v", a.ID, a.State, a.Recognized, a.Goal)
		}
	}
	if g.status != "" && time.Now().Before(g.statusUntil) {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)
	ebitenutil.DebugPrintAt(screen, "P pause  R new maze  C copy maze  D debug", 4, common.BaseHeight-16)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
