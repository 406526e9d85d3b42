// Package config provides configuration loading and access for the arena.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all arena configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Combatant CombatantConfig `yaml:"combatant"`
	Dash      DashConfig      `yaml:"dash"`
	Physics   PhysicsConfig   `yaml:"physics"`
	PowerUps  PowerUpConfig   `yaml:"powerups"`
	Particles ParticleConfig  `yaml:"particles"`
	AI        AIConfig        `yaml:"ai"`
	Round     RoundConfig     `yaml:"round"`
	Shake     ShakeConfig     `yaml:"shake"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Palette   [][3]uint8      `yaml:"palette"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the shrinking platform parameters.
type ArenaConfig struct {
	StartRadius  float64 `yaml:"start_radius"`
	MinRadius    float64 `yaml:"min_radius"`
	ShrinkRate   float64 `yaml:"shrink_rate"`    // units per second once shrinking
	ShrinkStart  float64 `yaml:"shrink_start"`   // ms of round time before shrink begins
	ShrinkWarn   float64 `yaml:"shrink_warn"`    // ms before shrink start to warn collaborators
	SpawnRadius  float64 `yaml:"spawn_radius"`   // spawn ring radius around center
	DangerMargin float64 `yaml:"danger_margin"`  // edge band width for presentation
}

// CombatantConfig holds per-combatant movement parameters.
type CombatantConfig struct {
	Radius       float64 `yaml:"radius"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Accel        float64 `yaml:"accel"`         // exponential approach constant (1/s)
	Friction     float64 `yaml:"friction"`      // per-frame velocity multiplier
	MaxVelocity  float64 `yaml:"max_velocity"`  // safety ceiling against impulse stacking
	BoundsBuffer float64 `yaml:"bounds_buffer"` // overflow allowed past screen edges
}

// DashConfig holds the dash state machine parameters.
type DashConfig struct {
	Speed        float64 `yaml:"speed"`
	Duration     float64 `yaml:"duration"`      // ms
	Cooldown     float64 `yaml:"cooldown"`      // ms per charge regenerated
	StartCharges int     `yaml:"start_charges"`
	MaxCharges   int     `yaml:"max_charges"`
	BufferWindow float64 `yaml:"buffer_window"` // ms a dash input waits for movement intent
}

// PhysicsConfig holds collision resolution tuning.
type PhysicsConfig struct {
	GridCellSize float64 `yaml:"grid_cell_size"`
	Restitution  float64 `yaml:"restitution"`
	Correction   float64 `yaml:"correction"`    // positional correction factor (soft)
	PushForce    float64 `yaml:"push_force"`    // gameplay impulse along the normal
	TangentForce float64 `yaml:"tangent_force"` // chaos impulse perpendicular to the normal
}

// PowerUpConfig holds power-up spawn scheduling and effect parameters.
type PowerUpConfig struct {
	SpawnInterval   float64 `yaml:"spawn_interval"`    // ms between spawn attempts
	MaxActive       int     `yaml:"max_active"`
	Lifetime        float64 `yaml:"lifetime"`          // ms before an unclaimed pickup despawns
	Radius          float64 `yaml:"radius"`
	EffectDuration  float64 `yaml:"effect_duration"`   // ms a timed effect record lives
	SpawnRadiusFrac float64 `yaml:"spawn_radius_frac"` // fraction of current platform radius
}

// ParticleConfig holds the effect pool parameters.
type ParticleConfig struct {
	PoolSize int `yaml:"pool_size"`
}

// AIConfig holds autonomous agent tuning.
type AIConfig struct {
	Difficulty      string  `yaml:"difficulty"`
	DangerThreshold float64 `yaml:"danger_threshold"` // edge-distance fraction triggering Survival
	ThreatRadius    float64 `yaml:"threat_radius"`    // nearby-opponent radius for state assessment
	DefenseRadius   float64 `yaml:"defense_radius"`   // threat centroid radius for Defensive
	PredictionTime  float64 `yaml:"prediction_time"`  // ms of linear target extrapolation
}

// RoundConfig holds round and match flow parameters.
type RoundConfig struct {
	Combatants        int     `yaml:"combatants"`
	Bots              int     `yaml:"bots"`
	CountdownTicks    int     `yaml:"countdown_ticks"`
	CountdownInterval float64 `yaml:"countdown_interval"` // ms per countdown tick
	RoundsToWin       int     `yaml:"rounds_to_win"`
}

// ShakeConfig holds the trauma/hit-stop collaborator parameters.
type ShakeConfig struct {
	TraumaDecay  float64 `yaml:"trauma_decay"`  // trauma lost per second
	MaxOffset    float64 `yaml:"max_offset"`    // pixels at full trauma
	Frequency    float64 `yaml:"frequency"`     // oscillation speed
	HitstopScale float64 `yaml:"hitstop_scale"` // dt multiplier during a freeze frame
}

// AudioConfig holds the sound collaborator parameters.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// TelemetryConfig holds experiment output parameters.
type TelemetryConfig struct {
	ImpactWindow int `yaml:"impact_window"` // max impact samples retained per round
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	CenterX   float32 // platform center, fixed for the match
	CenterY   float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.CenterX = float32(c.Screen.Width) / 2
	c.Derived.CenterY = float32(c.Screen.Height) / 2
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
