package feather2d

import (
	"errors"
	"fmt"
	"os"

	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	BROAD_PHASE_SAP   = "sap"
	BROAD_PHASE_BRUTE = "brute"
	BROAD_PHASE_GRID  = "grid"
)

// DEFAULT_MAX_TIME_STEP bounds a single step, larger steps destabilize the solver
const DEFAULT_MAX_TIME_STEP = 1.0 / 15.0

var ErrInvalidConfig = errors.New("invalid config")

// GridConfig sizes the hashed grid of the "grid" broad phase
type GridConfig struct {
	CellSize  float64 `yaml:"cell_size"`
	CellCount int     `yaml:"cell_count"`
}

// Config holds every tuning value of a World
type Config struct {
	// Gravity acceleration (m/s²)
	Gravity      mgl64.Vec2             `yaml:"gravity"`
	MaxTimeStep  float64                `yaml:"max_time_step"`
	Coefficients constraint.Coefficients `yaml:"coefficients"`
	BroadPhase   string                 `yaml:"broad_phase"`
	Grid         GridConfig             `yaml:"grid"`
	// Debug enables draw requests and texts toward the attached DebugSink
	Debug bool `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:      mgl64.Vec2{0, -9.8},
		MaxTimeStep:  DEFAULT_MAX_TIME_STEP,
		Coefficients: constraint.DefaultCoefficients(),
		BroadPhase:   BROAD_PHASE_SAP,
		Grid: GridConfig{
			CellSize:  2.0,
			CellCount: 1024,
		},
	}
}

// ParseConfig reads a yaml document on top of DefaultConfig, missing keys keep their default value
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads and parses a yaml config file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return ParseConfig(data)
}

// Validate checks the values that would make a step diverge or fail
func (c Config) Validate() error {
	if c.MaxTimeStep <= 0 {
		return fmt.Errorf("%w: max_time_step must be positive, got %v", ErrInvalidConfig, c.MaxTimeStep)
	}

	coefficients := c.Coefficients
	if coefficients.Elasticity < 0 || coefficients.Elasticity > 1 {
		return fmt.Errorf("%w: elasticity must be in [0, 1], got %v", ErrInvalidConfig, coefficients.Elasticity)
	}
	if coefficients.Friction < 0 {
		return fmt.Errorf("%w: friction must be positive, got %v", ErrInvalidConfig, coefficients.Friction)
	}
	if coefficients.Damping < 0 || coefficients.Damping > 1 {
		return fmt.Errorf("%w: damping must be in [0, 1], got %v", ErrInvalidConfig, coefficients.Damping)
	}

	switch c.BroadPhase {
	case BROAD_PHASE_SAP, BROAD_PHASE_BRUTE:
	case BROAD_PHASE_GRID:
		if c.Grid.CellSize <= 0 || c.Grid.CellCount <= 0 {
			return fmt.Errorf("%w: grid needs a positive cell_size and cell_count", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown broad_phase %q", ErrInvalidConfig, c.BroadPhase)
	}

	return nil
}
