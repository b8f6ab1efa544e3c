package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Archetype sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Simulation holds all configuration for a battle run.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Loop
	TickInterval time.Duration `yaml:"tick_interval"`
	// Realtime paces ticks on the wall clock; otherwise the battle runs headless.
	Realtime bool `yaml:"realtime"`
	MaxSteps int  `yaml:"max_steps"` // headless only

	// Loot RNG seed; 0 picks a random seed
	Seed uint64 `yaml:"seed"`

	ProjectileCapacity int `yaml:"projectile_capacity"` // 0 = unlimited

	Archetypes ArchetypeConfig `yaml:"archetypes"`
	Database   DatabaseConfig  `yaml:"database"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
	Lane       LaneConfig      `yaml:"lane"`
}

// ArchetypeConfig selects where archetypes are loaded from.
type ArchetypeConfig struct {
	Source string `yaml:"source"` // embedded | file | database
	Path   string `yaml:"path"`   // file source only
	// Seed stores the embedded archetypes into an empty database.
	Seed bool `yaml:"seed"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TelemetryConfig controls OpenTelemetry tracing.
// Exporter endpoint and headers come from OTEL_* environment variables.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LaneConfig describes the battlefield: defenders placed at start and enemy waves.
type LaneConfig struct {
	Defenders []DefenderEntry `yaml:"defenders"`
	Waves     []WaveEntry     `yaml:"waves"`
}

// DefenderEntry places one player character.
type DefenderEntry struct {
	Archetype string  `yaml:"archetype"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

// WaveEntry spawns Count characters of one archetype.
type WaveEntry struct {
	Archetype string  `yaml:"archetype"`
	Count     int     `yaml:"count"`
	Delay     float64 `yaml:"delay"`    // seconds
	Interval  float64 `yaml:"interval"` // seconds
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Direction float64 `yaml:"direction"` // 0 = by faction
}

// Default returns Simulation config with sensible defaults.
func Default() Simulation {
	return Simulation{
		LogLevel:           "info",
		TickInterval:       50 * time.Millisecond,
		Realtime:           false,
		MaxSteps:           12000,
		ProjectileCapacity: 64,
		Archetypes: ArchetypeConfig{
			Source: SourceEmbedded,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "forestguard",
			Password: "forestguard",
			DBName:   "forestguard",
			SSLMode:  "disable",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			SampleRatio: 1,
		},
		Lane: LaneConfig{
			Defenders: []DefenderEntry{
				{Archetype: "tree_root", X: -3},
				{Archetype: "soldier", X: 0},
				{Archetype: "soldier", X: 0.5, Y: 0.2},
			},
			Waves: []WaveEntry{
				{Archetype: "lumberjack1", Count: 3, Delay: 0, Interval: 4, X: 20},
				{Archetype: "hunter", Count: 1, Delay: 6, X: 24},
				{Archetype: "wood_sawyer1", Count: 2, Delay: 10, Interval: 5, X: 20},
				{Archetype: "doctor", Count: 1, Delay: 14, X: 24},
			},
		},
	}
}

// Validate checks values that would make the run meaningless.
func (s Simulation) Validate() error {
	var errs []error

	if s.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", s.TickInterval))
	}
	if !s.Realtime && s.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("max_steps must be positive in headless mode, got %d", s.MaxSteps))
	}
	if s.ProjectileCapacity < 0 {
		errs = append(errs, fmt.Errorf("projectile_capacity must not be negative, got %d", s.ProjectileCapacity))
	}

	switch s.Archetypes.Source {
	case SourceEmbedded, SourceDatabase:
	case SourceFile:
		if s.Archetypes.Path == "" {
			errs = append(errs, errors.New("archetypes.path is required for file source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown archetypes.source %q", s.Archetypes.Source))
	}

	if s.Telemetry.SampleRatio < 0 || s.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be in [0,1], got %v", s.Telemetry.SampleRatio))
	}

	for i, w := range s.Lane.Waves {
		if w.Archetype == "" {
			errs = append(errs, fmt.Errorf("lane.waves[%d]: archetype is required", i))
		}
		if w.Count < 0 || w.Delay < 0 || w.Interval < 0 {
			errs = append(errs, fmt.Errorf("lane.waves[%d]: count, delay and interval must not be negative", i))
		}
	}
	for i, d := range s.Lane.Defenders {
		if d.Archetype == "" {
			errs = append(errs, fmt.Errorf("lane.defenders[%d]: archetype is required", i))
		}
	}

	return errors.Join(errs...)
}

// Load loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulation, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
