package sim

import (
	"github.com/milk9111/stealth/agent"
	"github.com/milk9111/stealth/maze"
	"github.com/milk9111/stealth/nav"
	"github.com/milk9111/stealth/prefabs"
)

// Config holds the fixed constants of one simulation.
type Config struct {
	GridSize           int
	CellSize           float64
	MaxDT              float64 // seconds
	MinStartDistanceSq int     // cells squared
	FleeDistance       int     // cells

	Maze  maze.Options
	Agent agent.Config

	// FSM names the transition table prefab. Empty means the embedded default.
	FSM string
}

func DefaultConfig() Config {
	return Config{
		GridSize:           32,
		CellSize:           1.4,
		MaxDT:              0.05,
		MinStartDistanceSq: 25,
		FleeDistance:       nav.DefaultFleeDistance,
		Maze:               maze.DefaultOptions(32),
		Agent:              agent.DefaultConfig(),
		FSM:                prefabs.FSMSpecFile,
	}
}

func ConfigFromSpec(spec prefabs.SimSpec) Config {
	return Config{
		GridSize:           spec.GridSize,
		CellSize:           spec.CellSize,
		MaxDT:              spec.MaxDT,
		MinStartDistanceSq: spec.MinStartDistanceSq,
		FleeDistance:       spec.Agent.FleeDistance,
		Maze: maze.Options{
			Size:          spec.GridSize,
			PocketFactor:  spec.Maze.PocketFactor,
			CoverFactor:   spec.Maze.CoverFactor,
			CoverChance:   spec.Maze.CoverChance,
			ValidateCover: spec.Maze.ValidateCover,
		},
		Agent: agent.ConfigFromSpec(spec.Agent, spec.CellSize),
		FSM:   spec.FSM,
	}
}

// LoadConfig reads the simulation prefab, preferring a copy on disk.
func LoadConfig() (Config, error) {
	spec, err := prefabs.LoadSimSpec()
	if err != nil {
		return Config{}, err
	}
	return ConfigFromSpec(*spec), nil
}
