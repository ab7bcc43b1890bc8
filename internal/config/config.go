// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// ShatterConfig contains all configuration for the Shatter brick game.
type ShatterConfig struct {
	Physics    ShatterPhysics   `yaml:"physics"`
	Paddle     ShatterPaddle    `yaml:"paddle"`
	Gameplay   ShatterGameplay  `yaml:"gameplay"`
	Obstacles  ShatterObstacles `yaml:"obstacles"`
	PowerUps   ShatterPowerUps  `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShatterPhysics defines motion parameters for Shatter.
// Speeds are in playfield cells per second.
type ShatterPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	BallRadius   float64 `yaml:"ball_radius"`
	PickupFall   float64 `yaml:"pickup_fall"`
	LaserSpeed   float64 `yaml:"laser_speed"`
}

// ShatterPaddle defines paddle dimensions for Shatter.
type ShatterPaddle struct {
	Width       float64 `yaml:"width"`
	MinWidth    float64 `yaml:"min_width"`
	MaxWidth    float64 `yaml:"max_width"`
	WidenAmount float64 `yaml:"widen_amount"`
}

// ShatterGameplay defines round flow parameters for Shatter.
type ShatterGameplay struct {
	Lives      int `yaml:"lives"`
	ServeDelay int `yaml:"serve_delay"` // Ticks before serving is allowed after a miss
}

// ShatterObstacles defines obstacle behavior parameters for Shatter.
type ShatterObstacles struct {
	FadeTicks      int     `yaml:"fade_ticks"`      // Destroying fade-out duration
	CycleTicks     int     `yaml:"cycle_ticks"`     // Cycling bonus rotation interval
	BlastScale     float64 `yaml:"blast_scale"`     // Blast radius as a multiple of obstacle width
	GlideSpeed     float64 `yaml:"glide_speed"`     // Relocating obstacle glide, cells per second
	SampleAttempts int     `yaml:"sample_attempts"` // Placement sampling attempts before giving up
	SamplePadding  float64 `yaml:"sample_padding"`  // Clearance kept around sampled positions
	SampleMinDist  float64 `yaml:"sample_min_dist"` // Minimum jump distance from the origin
	DuplicateCap   int     `yaml:"duplicate_cap"`   // Live duplicates allowed per duplicator root
	CatalystTicks  int     `yaml:"catalyst_ticks"`  // Guaranteed-drop window duration
}

// ShatterPowerUps defines pickup drop odds, effect durations (in ticks),
// and relative drop weights for Shatter.
type ShatterPowerUps struct {
	DropChance    float64 `yaml:"drop_chance"` // Per-destruction drop probability, 0..1
	MultiCount    int     `yaml:"multi_count"` // Extra balls per Multi pickup
	LaserInterval int     `yaml:"laser_interval"`
	SlowScale     float64 `yaml:"slow_scale"` // Ball speed multiplier while Slow is active

	WeightWiden  int `yaml:"weight_widen"`
	WeightSlow   int `yaml:"weight_slow"`
	WeightMega   int `yaml:"weight_mega"`
	WeightLaser  int `yaml:"weight_laser"`
	WeightDouble int `yaml:"weight_double"`
	WeightMulti  int `yaml:"weight_multi"`
	WeightLife   int `yaml:"weight_life"`

	DurationWiden  int `yaml:"duration_widen"`
	DurationSlow   int `yaml:"duration_slow"`
	DurationMega   int `yaml:"duration_mega"`
	DurationLaser  int `yaml:"duration_laser"`
	DurationDouble int `yaml:"duration_double"`
}

// BounceConfig contains all configuration for the Bounce platform jumper.
type BounceConfig struct {
	Physics    BouncePhysics    `yaml:"physics"`
	Platforms  BouncePlatforms  `yaml:"platforms"`
	Spawner    BounceSpawner    `yaml:"spawner"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BouncePhysics defines motion parameters for Bounce.
// Speeds are in cells per second, gravity in cells per second squared.
type BouncePhysics struct {
	Gravity      float64 `yaml:"gravity"`
	BounceSpeed  float64 `yaml:"bounce_speed"` // Upward speed leaving a platform
	PropelSpeed  float64 `yaml:"propel_speed"` // Upward speed leaving a propulsive platform
	SteerSpeed   float64 `yaml:"steer_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BallRadius   float64 `yaml:"ball_radius"`
}

// BouncePlatforms defines platform dimensions and effect durations.
type BouncePlatforms struct {
	Width        float64 `yaml:"width"`
	GravityTicks int     `yaml:"gravity_ticks"` // Inverted gravity duration per flip
	MoverSpeed   float64 `yaml:"mover_speed"`   // Horizontal drift of moving platforms
}

// BounceSpawner defines how new platforms are generated above the camera.
type BounceSpawner struct {
	MinGap      int     `yaml:"min_gap"` // Vertical spacing between platforms, cells
	MaxGap      int     `yaml:"max_gap"`
	MoverShare  float64 `yaml:"mover_share"`  // Fraction of platforms that drift sideways
	HazardBoost int     `yaml:"hazard_boost"` // Extra breakable weight at max difficulty

	WeightNormal     int `yaml:"weight_normal"`
	WeightBreakable  int `yaml:"weight_breakable"`
	WeightPropulsive int `yaml:"weight_propulsive"`
	WeightGravity    int `yaml:"weight_gravity"`
	WeightSplitting  int `yaml:"weight_splitting"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
