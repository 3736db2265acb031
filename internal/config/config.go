package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/flockworks/boids/internal/flock"
	"github.com/flockworks/boids/internal/physics"
)

// Backends accepted by [render] backend.
const (
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Flocking   FlockingConfig   `toml:"flocking"`
	Render     RenderConfig     `toml:"render"`
	Scenario   ScenarioConfig   `toml:"scenario"`
	Script     ScriptConfig     `toml:"script"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	BoundX        float64       `toml:"bound_x"`
	BoundY        float64       `toml:"bound_y"`
	FrameInterval time.Duration `toml:"frame_interval"` // pulse period of ticker-driven backends
	NominalFrame  time.Duration `toml:"nominal_frame"`  // delta of the first tick after resume
	Frames        int           `toml:"frames"`         // headless run length; 0 = until interrupted
	Seed          uint64        `toml:"seed"`           // 0 = seed from the clock
	SpawnBatch    int           `toml:"spawn_batch"`    // boids added per spawn key press
	SpawnSpeedMin float64       `toml:"spawn_speed_min"`
	SpawnSpeedMax float64       `toml:"spawn_speed_max"`
}

type FlockingConfig struct {
	SpeedLimit             float64 `toml:"speed_limit"`
	SeparationRadius       float64 `toml:"separation_radius"`
	AlignmentRadius        float64 `toml:"alignment_radius"`
	CohesionRadius         float64 `toml:"cohesion_radius"`
	SeparationFactor       float64 `toml:"separation_factor"`
	VelocityFactor         float64 `toml:"velocity_factor"`
	CohesionFactor         float64 `toml:"cohesion_factor"`
	PredatorDetectionRange float64 `toml:"predator_detection_range"`
	PredatorFactor         float64 `toml:"predator_factor"`
	AttackFactor           float64 `toml:"attack_factor"`
	NudgeFactor            float64 `toml:"nudge_factor"`
	Margin                 float64 `toml:"margin"`
}

type RenderConfig struct {
	Backend    string  `toml:"backend"` // "ebiten", "terminal" or "headless"
	Title      string  `toml:"title"`
	Scale      float64 `toml:"scale"`      // window pixels per field unit
	Background string  `toml:"background"` // "#rrggbb"
	Language   string  `toml:"language"`   // BCP 47 tag for HUD number formatting
	HUD        bool    `toml:"hud"`
}

type ScenarioConfig struct {
	Path string `toml:"path"` // empty = spawn Boids/Predators across the field
	// Used only without a scenario file.
	Boids     int `toml:"boids"`
	Predators int `toml:"predators"`
}

type ScriptConfig struct {
	Path string `toml:"path"` // file or directory; empty disables scripting
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config { return defaults() }

func defaults() *Config {
	p := flock.DefaultParams()
	size := p.Bounds.Size()
	return &Config{
		Simulation: SimulationConfig{
			BoundX:        size.X,
			BoundY:        size.Y,
			FrameInterval: 16 * time.Millisecond,
			NominalFrame:  33 * time.Millisecond,
			SpawnBatch:    10,
			SpawnSpeedMin: 10,
			SpawnSpeedMax: p.SpeedLimit,
		},
		Flocking: FlockingConfig{
			SpeedLimit:             p.SpeedLimit,
			SeparationRadius:       p.SeparationRadius,
			AlignmentRadius:        p.AlignmentRadius,
			CohesionRadius:         p.CohesionRadius,
			SeparationFactor:       p.SeparationFactor,
			VelocityFactor:         p.VelocityFactor,
			CohesionFactor:         p.CohesionFactor,
			PredatorDetectionRange: p.PredatorDetectionRange,
			PredatorFactor:         p.PredatorFactor,
			AttackFactor:           p.AttackFactor,
			NudgeFactor:            p.NudgeFactor,
			Margin:                 p.Margin,
		},
		Render: RenderConfig{
			Backend:    BackendEbiten,
			Title:      "boids",
			Scale:      2,
			Background: "#ffffff",
			Language:   "en",
			HUD:        true,
		},
		Scenario: ScenarioConfig{
			Boids:     50,
			Predators: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Bounds is the simulation field.
func (s SimulationConfig) Bounds() physics.Bounds {
	return physics.NewBounds(s.BoundX, s.BoundY)
}

// Params converts the section to flocking parameters over bounds.
func (f FlockingConfig) Params(bounds physics.Bounds) flock.Params {
	return flock.Params{
		Bounds:                 bounds,
		SpeedLimit:             f.SpeedLimit,
		SeparationRadius:       f.SeparationRadius,
		AlignmentRadius:        f.AlignmentRadius,
		CohesionRadius:         f.CohesionRadius,
		SeparationFactor:       f.SeparationFactor,
		VelocityFactor:         f.VelocityFactor,
		CohesionFactor:         f.CohesionFactor,
		PredatorDetectionRange: f.PredatorDetectionRange,
		PredatorFactor:         f.PredatorFactor,
		AttackFactor:           f.AttackFactor,
		NudgeFactor:            f.NudgeFactor,
		Margin:                 f.Margin,
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	s := c.Simulation
	if s.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("simulation.frame_interval must be positive, got %s", s.FrameInterval))
	}
	if s.NominalFrame <= 0 {
		errs = append(errs, fmt.Errorf("simulation.nominal_frame must be positive, got %s", s.NominalFrame))
	}
	if s.Frames < 0 || s.SpawnBatch < 0 {
		errs = append(errs, errors.New("simulation.frames and simulation.spawn_batch must not be negative"))
	}
	if s.SpawnSpeedMin < 0 || s.SpawnSpeedMax < s.SpawnSpeedMin {
		errs = append(errs, fmt.Errorf("simulation spawn speed range [%g, %g] is invalid", s.SpawnSpeedMin, s.SpawnSpeedMax))
	}
	if err := c.Flocking.Params(s.Bounds()).Validate(); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains([]string{BackendEbiten, BackendTerminal, BackendHeadless}, c.Render.Backend) {
		errs = append(errs, fmt.Errorf("render.backend %q is not one of ebiten, terminal, headless", c.Render.Backend))
	}
	if c.Render.Scale <= 0 {
		errs = append(errs, fmt.Errorf("render.scale must be positive, got %g", c.Render.Scale))
	}
	if c.Scenario.Boids < 0 || c.Scenario.Predators < 0 || c.Scenario.Predators > c.Scenario.Boids {
		errs = append(errs, fmt.Errorf("scenario: need 0 <= predators (%d) <= boids (%d)", c.Scenario.Predators, c.Scenario.Boids))
	}
	return errors.Join(errs...)
}
