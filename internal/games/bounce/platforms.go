package bounce

import (
	"github.com/tetraplane/ricochet/internal/config"
	"github.com/tetraplane/ricochet/internal/sim"
)

// PlatformKind represents the different platform variants.
type PlatformKind int

const (
	PlatformNormal     PlatformKind = iota // Standard bounce
	PlatformBreakable                      // Crumbles after one bounce
	PlatformPropulsive                     // Launches the ball extra high
	PlatformGravity                        // Inverts gravity for the ball
	PlatformSplitting                      // Clones the ball on contact
)

// String returns a human-readable name for the platform kind.
func (k PlatformKind) String() string {
	switch k {
	case PlatformNormal:
		return "Normal"
	case PlatformBreakable:
		return "Breakable"
	case PlatformPropulsive:
		return "Propulsive"
	case PlatformGravity:
		return "Gravity"
	case PlatformSplitting:
		return "Splitting"
	default:
		return "Unknown"
	}
}

// PlatformMeta holds the per-platform state attached to a store entity.
// A platform is consumed by its first contact: the touch scores exactly
// once, after which the platform keeps bouncing balls without awarding
// points until the camera leaves it behind.
type PlatformMeta struct {
	Kind     PlatformKind
	Consumed bool
}

// PointsFor returns the base score for the first touch of a platform.
// Riskier landings are worth more.
func PointsFor(kind PlatformKind) int {
	switch kind {
	case PlatformNormal:
		return 10
	case PlatformBreakable:
		return 15
	case PlatformPropulsive:
		return 20
	case PlatformGravity:
		return 25
	case PlatformSplitting:
		return 30
	default:
		return 0
	}
}

// minNormalWeight keeps plain platforms in the rotation even at max
// difficulty, so a climb never degenerates into hazards only.
const minNormalWeight = 10

// rollPlatformKind picks a variant for a freshly spawned platform.
// Weights shift toward the tricky kinds as the difficulty level (0..1)
// rises, draining the plain-platform weight in step.
func rollPlatformKind(rng *sim.RNG, cfg config.BounceSpawner, level float64) PlatformKind {
	boost := int(level * float64(cfg.HazardBoost))
	normal := cfg.WeightNormal - boost
	if normal < minNormalWeight {
		normal = minNormalWeight
	}

	t := sim.NewWeightedTable[PlatformKind]()
	t.Add(PlatformNormal, normal)
	t.Add(PlatformBreakable, cfg.WeightBreakable+boost)
	t.Add(PlatformPropulsive, cfg.WeightPropulsive)
	t.Add(PlatformGravity, cfg.WeightGravity+boost)
	t.Add(PlatformSplitting, cfg.WeightSplitting+boost)

	kind, ok := t.Pick(rng)
	if !ok {
		return PlatformNormal
	}
	return kind
}

// platformData extracts the PlatformMeta from a store entity.
// Panics if the entity does not carry platform state, since that
// indicates corrupted bookkeeping rather than a recoverable error.
func platformData(e *sim.Entity) *PlatformMeta {
	m, ok := e.Data.(*PlatformMeta)
	if !ok {
		panic("bounce: platform entity without platform data")
	}
	return m
}
