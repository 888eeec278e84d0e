package agent

import (
	"math"

	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/prefabs"
)

// Config holds the fixed behavior constants of an agent.
type Config struct {
	Speed        float64 // cells per second
	CellSize     float64
	FOV          float64 // radians, full cone
	ViewDistance float64 // cells

	RecognizeAfter  float64 // seconds of accumulated visibility
	ForgetAfter     float64 // seconds of continuous invisibility
	VisibilityDecay float64 // accumulator decay per second while unseen

	ScanHeadings []float64 // radians
	ScanHold     float64   // seconds per heading
	ScanTurnRate float64   // fraction of the remaining turn per tick

	KnockoutRange float64 // cells
	KnockoutArc   float64 // radians either side of directly behind

	ArriveEpsilon float64 // world units
}

func DefaultConfig() Config {
	return Config{
		Speed:           1,
		CellSize:        1.4,
		FOV:             common.DegToRad(70),
		ViewDistance:    8,
		RecognizeAfter:  2,
		ForgetAfter:     3,
		VisibilityDecay: 0.5,
		ScanHeadings:    []float64{0, math.Pi / 2, -math.Pi / 2},
		ScanHold:        1,
		ScanTurnRate:    0.1,
		KnockoutRange:   1,
		KnockoutArc:     math.Pi / 3,
		ArriveEpsilon:   0.05,
	}
}

// ConfigFromSpec converts the YAML form. cellSize comes from the
// simulation, not the agent section.
func ConfigFromSpec(spec prefabs.AgentSpec, cellSize float64) Config {
	headings := make([]float64, len(spec.ScanHeadingsDegrees))
	for i, d := range spec.ScanHeadingsDegrees {
		headings[i] = common.DegToRad(d)
	}
	return Config{
		Speed:           spec.Speed,
		CellSize:        cellSize,
		FOV:             common.DegToRad(spec.FOVDegrees),
		ViewDistance:    spec.ViewDistance,
		RecognizeAfter:  spec.RecognizeAfter,
		ForgetAfter:     spec.ForgetAfter,
		VisibilityDecay: spec.VisibilityDecay,
		ScanHeadings:    headings,
		ScanHold:        spec.ScanHold,
		ScanTurnRate:    spec.ScanTurnRate,
		KnockoutRange:   spec.KnockoutRange,
		KnockoutArc:     common.DegToRad(spec.KnockoutArcDegrees),
		ArriveEpsilon:   spec.ArriveEpsilon,
	}
}
