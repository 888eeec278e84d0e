package agent

import (
	"math"

	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/maze"
)

// CanSee reports whether target is within view distance, inside the view
// cone around the heading, and not hidden behind a wall.
func (a *Agent) CanSee(target maze.Point) bool {
	dx := float64(target.X - a.cell.X)
	dy := float64(target.Y - a.cell.Y)
	if math.Hypot(dx, dy) > a.cfg.ViewDistance {
		return false
	}
	bearing := math.Atan2(dx, dy)
	if math.Abs(common.WrapAngle(bearing-a.heading)) > a.cfg.FOV/2 {
		return false
	}
	return a.nav.LineOfSight(a.cell, target)
}

// perceive updates the visibility timers and applies the recognition,
// lost and fear rules, in that order.
func (a *Agent) perceive(dt float64, enemy Enemy) {
	visible := a.CanSee(enemy.Cell())

	if visible {
		a.visibilityTimer += dt
		a.lostTimer = 0
	} else {
		a.visibilityTimer = math.Max(0, a.visibilityTimer-dt*a.cfg.VisibilityDecay)
		a.lostTimer += dt
	}

	if a.visibilityTimer >= a.cfg.RecognizeAfter {
		a.recognized = true
		a.lastSeen = enemy.Cell()
		a.hasLastSeen = true
		a.fire(EventRecognized)
	}

	if a.recognized && a.lostTimer >= a.cfg.ForgetAfter {
		a.recognized = false
		a.fire(EventLostTimeout)
	}

	if visible && enemy.Recognized() && enemy.State() == Chase {
		a.recognized = false
		a.fire(EventThreatened)
		if a.state == Escape {
			path := a.nav.PathAwayFrom(a.cell, enemy.Cell())
			a.goal = a.cell
			if len(path) > 0 {
				a.goal = path[len(path)-1]
			}
			a.setPath(path)
		}
	}
}

// behind reports whether the agent stands within knockout range of enemy
// and inside the arc directly behind its heading.
func (a *Agent) behind(enemy Enemy) bool {
	e := enemy.Cell()
	dx := float64(a.cell.X - e.X)
	dy := float64(a.cell.Y - e.Y)
	if math.Hypot(dx, dy) > a.cfg.KnockoutRange {
		return false
	}
	back := enemy.Heading() + math.Pi
	diff := common.WrapAngle(math.Atan2(dx, dy) - back)
	return math.Abs(diff) < a.cfg.KnockoutArc
}

// offsetBehind is the unit vector pointing opposite heading.
func offsetBehind(heading float64) (x, y float64) {
	return -math.Sin(heading), -math.Cos(heading)
}
