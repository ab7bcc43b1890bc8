package config

import (
	_ "embed"
)

//go:embed defaults/shatter.yaml
var defaultShatterYAML []byte

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

// DefaultShatterConfig returns the default Shatter configuration.
func DefaultShatterConfig() ShatterConfig {
	return ShatterConfig{
		Physics: ShatterPhysics{
			BallSpeed:    22.0,
			MaxBallSpeed: 45.0,
			PaddleSpeed:  110.0,
			BallRadius:   0.5,
			PickupFall:   9.0,
			LaserSpeed:   40.0,
		},
		Paddle: ShatterPaddle{
			Width:       8,
			MinWidth:    4,
			MaxWidth:    16,
			WidenAmount: 4,
		},
		Gameplay: ShatterGameplay{
			Lives:      3,
			ServeDelay: 60,
		},
		Obstacles: ShatterObstacles{
			FadeTicks:      18,
			CycleTicks:     30,
			BlastScale:     1.5,
			GlideSpeed:     14.0,
			SampleAttempts: 50,
			SamplePadding:  1.0,
			SampleMinDist:  6.0,
			DuplicateCap:   3,
			CatalystTicks:  600,
		},
		PowerUps: ShatterPowerUps{
			DropChance:    0.18,
			MultiCount:    2,
			LaserInterval: 20,
			SlowScale:     0.6,

			WeightWiden:  20,
			WeightSlow:   18,
			WeightMega:   10,
			WeightLaser:  12,
			WeightDouble: 14,
			WeightMulti:  16,
			WeightLife:   6,

			DurationWiden:  600,
			DurationSlow:   480,
			DurationMega:   360,
			DurationLaser:  420,
			DurationDouble: 540,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.5,
				GapReduction:     0,
				SpacingReduction: 0,
			},
		},
	}
}

// DefaultBounceConfig returns the default Bounce configuration.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Physics: BouncePhysics{
			Gravity:      45.0,
			BounceSpeed:  26.0,
			PropelSpeed:  42.0,
			SteerSpeed:   28.0,
			MaxFallSpeed: 40.0,
			BallRadius:   0.5,
		},
		Platforms: BouncePlatforms{
			Width:        7,
			GravityTicks: 300,
			MoverSpeed:   6.0,
		},
		Spawner: BounceSpawner{
			MinGap:      4,
			MaxGap:      7,
			MoverShare:  0.2,
			HazardBoost: 25,

			WeightNormal:     50,
			WeightBreakable:  18,
			WeightPropulsive: 14,
			WeightGravity:    8,
			WeightSplitting:  10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.4,
				GapReduction:     2,
				SpacingReduction: 0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "shatter":
		return defaultShatterYAML
	case "bounce":
		return defaultBounceYAML
	default:
		return nil
	}
}
