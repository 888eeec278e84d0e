package agent

import (
	"math"

	"github.com/milk9111/stealth/common"
)

func (a *Agent) explore(dt float64) {
	if len(a.path) == 0 && len(a.queue) > 0 {
		next := a.queue[0]
		a.queue = append(a.queue[1:], next)
		a.goal = next
		a.setPath(a.nav.PathTo(a.cell, next))
	}
	if a.follow(dt) {
		a.fire(EventArrived)
	}
}

// turnScan eases the heading toward the current scan heading and reports
// whether every heading has been held.
func (a *Agent) turnScan(dt float64) bool {
	headings := a.cfg.ScanHeadings
	if a.scanStep >= len(headings) {
		return true
	}
	a.scanTimer += dt
	a.heading = common.Approach(a.heading, headings[a.scanStep], a.cfg.ScanTurnRate)
	if a.scanTimer >= a.cfg.ScanHold {
		a.scanStep++
		a.scanTimer = 0
	}
	return a.scanStep >= len(headings)
}

func (a *Agent) scan(dt float64) {
	if a.scanStep >= len(a.cfg.ScanHeadings) {
		a.fire(EventScanDone)
		return
	}
	a.turnScan(dt)
}

func (a *Agent) chase(dt float64, enemy Enemy) []Intent {
	if !a.recognized {
		a.fire(EventRecognitionDropped)
		return nil
	}

	e := enemy.Cell()
	ox, oy := offsetBehind(enemy.Heading())
	goal := a.nav.ClampToFloor(float64(e.X)+ox, float64(e.Y)+oy)
	a.goal = goal
	if path := a.nav.PathTo(a.cell, goal); len(path) > 0 {
		a.setPath(path)
	}
	if a.follow(dt) {
		a.fire(EventArrived)
	}

	if a.behind(enemy) {
		return []Intent{{Kind: IntentKnockout, Source: a.id, Target: enemy.ID()}}
	}
	return nil
}

func (a *Agent) searchLastSeen(dt float64) {
	a.uncertain = true
	if !a.follow(dt) {
		return
	}
	if a.turnScan(dt) {
		a.fire(EventScanDone)
	}
}

func (a *Agent) escape(dt float64) {
	if a.follow(dt) {
		a.fire(EventArrived)
	}
}

// follow moves the agent along its path at constant speed. It reports true
// once the final cell is reached or when there is no path to follow.
func (a *Agent) follow(dt float64) bool {
	if a.progress+1 >= len(a.path) {
		a.setPath(nil)
		return true
	}
	next := a.path[a.progress+1]
	target := a.toWorld(next)

	delta := target.Sub(a.world)
	dist := delta.Length()
	if dist > 0 {
		step := math.Min(a.cfg.Speed*a.cfg.CellSize*dt, dist)
		dir := delta.Mult(1 / dist)
		a.world = a.world.Add(dir.Mult(step))
		a.heading = math.Atan2(dir.X, dir.Y)
	}

	if a.world.Distance(target) < a.cfg.ArriveEpsilon {
		a.world = target
		a.progress++
		a.cell = next
		if a.progress >= len(a.path)-1 {
			a.setPath(nil)
			return true
		}
	}
	return false
}
