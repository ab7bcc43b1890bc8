package shatter

import (
	"github.com/tetraplane/ricochet/internal/sim"
)

// ObstacleKind represents the different obstacle variants.
type ObstacleKind int

const (
	ObstacleStandard       ObstacleKind = iota // Destroyed in one hit
	ObstacleReinforced                         // Requires 2 hits
	ObstacleHeavy                              // Requires 3 hits
	ObstacleIndestructible                     // Cannot be destroyed
	ObstaclePowerDrop                          // Always drops a power-up
	ObstacleDetonator                          // Explodes, damaging neighbors
	ObstacleCyclingBonus                       // Point value cycles over time
	ObstacleRelocating                         // Jumps to a new position on first hit
	ObstacleDuplicator                         // Spawns a copy on first hit
	ObstacleCatalyst                           // Opens a score multiplier window
)

// String returns a human-readable name for the obstacle kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleStandard:
		return "Standard"
	case ObstacleReinforced:
		return "Reinforced"
	case ObstacleHeavy:
		return "Heavy"
	case ObstacleIndestructible:
		return "Indestructible"
	case ObstaclePowerDrop:
		return "PowerDrop"
	case ObstacleDetonator:
		return "Detonator"
	case ObstacleCyclingBonus:
		return "CyclingBonus"
	case ObstacleRelocating:
		return "Relocating"
	case ObstacleDuplicator:
		return "Duplicator"
	case ObstacleCatalyst:
		return "Catalyst"
	default:
		return "Unknown"
	}
}

// ObstaclePhase tracks an obstacle's lifecycle.
// Intact obstacles collide and take damage. Destroying obstacles are
// already dead for gameplay purposes and only linger for the fade-out,
// after which the entity is removed from the store.
type ObstaclePhase int

const (
	PhaseIntact ObstaclePhase = iota
	PhaseDestroying
	PhaseDestroyed
)

// cyclingPickups are the pickups a CyclingBonus obstacle rotates through.
// The glyph of the current slot is displayed and the current pickup is
// granted when the obstacle is destroyed.
var cyclingPickups = []PickupKind{
	PickupWiden,
	PickupSlow,
	PickupMega,
	PickupLaser,
	PickupDouble,
	PickupMulti,
	PickupLife,
}

// cycleTicksDefault is the bonus rotation interval before config is applied.
const cycleTicksDefault = 30

// Obstacle holds the per-obstacle state attached to a store entity.
type Obstacle struct {
	Kind  ObstacleKind
	Phase ObstaclePhase
	Hits  int // Hits remaining before destruction (-1 = indestructible)
	Fade  int // Destroying countdown in ticks

	// CyclingBonus state
	Cycle int // Ticks until the displayed pickup advances
	Slot  int // Current index into cyclingPickups

	// Payload is the pre-assigned pickup a PowerDrop obstacle releases,
	// rolled once when the obstacle is created.
	Payload PickupKind

	// Relocating state: while Gliding the obstacle interpolates toward
	// Target at a fixed speed and still collides normally.
	Target  sim.Vec2
	Gliding bool

	// Duplicator bookkeeping. Copies spawned from a root carry the
	// root's ID in Origin; the root tracks its live copies so the
	// spawn cap can be enforced across the whole family.
	Origin     sim.ID
	Copies     []sim.ID
	Duplicated bool // Whether this obstacle's first-hit split already fired
}

// HitsFor returns the hit budget for an obstacle kind.
// Indestructible obstacles return -1 and never take damage.
func HitsFor(kind ObstacleKind) int {
	switch kind {
	case ObstacleReinforced, ObstacleRelocating, ObstacleDuplicator:
		return 2
	case ObstacleHeavy:
		return 3
	case ObstacleIndestructible:
		return -1
	default:
		return 1
	}
}

// PointsFor returns the base score for destroying an obstacle.
func PointsFor(kind ObstacleKind) int {
	switch kind {
	case ObstacleStandard:
		return 10
	case ObstacleReinforced:
		return 20
	case ObstacleHeavy:
		return 30
	case ObstaclePowerDrop:
		return 15
	case ObstacleDetonator:
		return 25
	case ObstacleCyclingBonus:
		return 20
	case ObstacleRelocating:
		return 40
	case ObstacleDuplicator:
		return 15
	case ObstacleCatalyst:
		return 50
	default:
		return 0
	}
}

// NewObstacle creates obstacle state for the given kind.
func NewObstacle(kind ObstacleKind) *Obstacle {
	return &Obstacle{
		Kind:  kind,
		Phase: PhaseIntact,
		Hits:  HitsFor(kind),
		Cycle: cycleTicksDefault,
	}
}

// Destructible reports whether the obstacle can ever be destroyed.
func (o *Obstacle) Destructible() bool {
	return o.Kind != ObstacleIndestructible
}

// CurrentPickup returns the pickup a CyclingBonus obstacle would grant
// if destroyed right now.
func (o *Obstacle) CurrentPickup() PickupKind {
	return cyclingPickups[o.Slot%len(cyclingPickups)]
}

// AdvanceCycle ticks the pickup rotation for CyclingBonus obstacles.
func (o *Obstacle) AdvanceCycle(interval int) {
	if o.Kind != ObstacleCyclingBonus || o.Phase != PhaseIntact {
		return
	}
	o.Cycle--
	if o.Cycle <= 0 {
		o.Cycle = interval
		o.Slot = (o.Slot + 1) % len(cyclingPickups)
	}
}

// rollRandomKind resolves a '?' layout cell to a concrete variant. Weights
// shift toward tougher kinds as the difficulty level (0..1) rises.
func rollRandomKind(rng *sim.RNG, level float64) ObstacleKind {
	t := sim.NewWeightedTable[ObstacleKind]()
	t.Add(ObstacleStandard, 10-int(8*level))
	t.Add(ObstacleReinforced, 3+int(3*level))
	t.Add(ObstacleHeavy, 1+int(4*level))
	t.Add(ObstaclePowerDrop, 2-int(level))
	t.Add(ObstacleDetonator, 2+int(2*level))
	t.Add(ObstacleCyclingBonus, 2)
	t.Add(ObstacleRelocating, 1+int(3*level))
	t.Add(ObstacleDuplicator, 1+int(3*level))
	t.Add(ObstacleCatalyst, 1)
	kind, ok := t.Pick(rng)
	if !ok {
		return ObstacleStandard
	}
	return kind
}

// PruneCopies drops IDs of copies that no longer exist in the store.
func (o *Obstacle) PruneCopies(store *sim.Store) {
	if len(o.Copies) == 0 {
		return
	}
	live := o.Copies[:0]
	for _, id := range o.Copies {
		if _, ok := store.Get(id); ok {
			live = append(live, id)
		}
	}
	o.Copies = live
}

// RemoveCopy drops a single copy ID from the root's tracking list.
func (o *Obstacle) RemoveCopy(id sim.ID) {
	for i, c := range o.Copies {
		if c == id {
			o.Copies = append(o.Copies[:i], o.Copies[i+1:]...)
			return
		}
	}
}

// obstacleData extracts the Obstacle state from a store entity.
// Panics if the entity does not carry obstacle state, since that
// indicates corrupted bookkeeping rather than a recoverable error.
func obstacleData(e *sim.Entity) *Obstacle {
	o, ok := e.Data.(*Obstacle)
	if !ok {
		panic("shatter: obstacle entity without obstacle data")
	}
	return o
}
