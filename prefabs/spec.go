package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	SimSpecFile = "stealth.yaml"
	FSMSpecFile = "agent_fsm.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	return DecodeSpec[T](filename, data)
}

func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// SimSpec is the on-disk form of the simulation constants.
type SimSpec struct {
	Name               string    `yaml:"name"`
	GridSize           int       `yaml:"grid_size"`
	CellSize           float64   `yaml:"cell_size"`
	MaxDT              float64   `yaml:"max_dt"`
	MinStartDistanceSq int       `yaml:"min_start_distance_sq"`
	Maze               MazeSpec  `yaml:"maze"`
	Agent              AgentSpec `yaml:"agent"`
	FSM                string    `yaml:"fsm"`
}

type MazeSpec struct {
	PocketFactor  int     `yaml:"pocket_factor"`
	CoverFactor   int     `yaml:"cover_factor"`
	CoverChance   float64 `yaml:"cover_chance"`
	ValidateCover bool    `yaml:"validate_cover"`
}

type AgentSpec struct {
	Speed               float64   `yaml:"speed"`
	FOVDegrees          float64   `yaml:"fov_degrees"`
	ViewDistance        float64   `yaml:"view_distance"`
	RecognizeAfter      float64   `yaml:"recognize_after"`
	ForgetAfter         float64   `yaml:"forget_after"`
	VisibilityDecay     float64   `yaml:"visibility_decay"`
	ScanHeadingsDegrees []float64 `yaml:"scan_headings_degrees"`
	ScanHold            float64   `yaml:"scan_hold"`
	ScanTurnRate        float64   `yaml:"scan_turn_rate"`
	KnockoutRange       float64   `yaml:"knockout_range"`
	KnockoutArcDegrees  float64   `yaml:"knockout_arc_degrees"`
	FleeDistance        int       `yaml:"flee_distance"`
	ArriveEpsilon       float64   `yaml:"arrive_epsilon"`
}

func LoadSimSpec() (*SimSpec, error) {
	spec, err := LoadSpec[SimSpec](SimSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// FSMSpec lists, per state, which event leads to which state.
type FSMSpec struct {
	Initial     string                       `yaml:"initial"`
	Transitions map[string]map[string]string `yaml:"transitions"`
}

func LoadFSMSpec(name string) (*FSMSpec, error) {
	if name == "" {
		name = FSMSpecFile
	}
	spec, err := LoadSpec[FSMSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
