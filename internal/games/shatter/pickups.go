package shatter

import (
	"github.com/tetraplane/ricochet/internal/config"
	"github.com/tetraplane/ricochet/internal/sim"
)

// PickupKind represents the different power-up pickups.
type PickupKind int

const (
	PickupWiden  PickupKind = iota // Wider paddle
	PickupSlow                     // Slower balls
	PickupMega                     // Balls smash through destructible obstacles
	PickupLaser                    // Paddle fires projectiles
	PickupDouble                   // Double score
	PickupMulti                    // Split every live ball (instant)
	PickupLife                     // Extra life (instant)
)

// String returns a human-readable name for the pickup.
func (p PickupKind) String() string {
	switch p {
	case PickupWiden:
		return "Widen"
	case PickupSlow:
		return "Slow"
	case PickupMega:
		return "Mega"
	case PickupLaser:
		return "Laser"
	case PickupDouble:
		return "Double"
	case PickupMulti:
		return "Multi"
	case PickupLife:
		return "Life"
	default:
		return "Unknown"
	}
}

// Glyph returns the character used to render the falling pickup.
func (p PickupKind) Glyph() rune {
	switch p {
	case PickupWiden:
		return 'W'
	case PickupSlow:
		return 'S'
	case PickupMega:
		return 'M'
	case PickupLaser:
		return 'L'
	case PickupDouble:
		return '$'
	case PickupMulti:
		return '3'
	case PickupLife:
		return '+'
	default:
		return '?'
	}
}

// Timed effect handles for the session's effect set. Catalyst has no
// pickup; it is granted by destroying a Catalyst obstacle.
const (
	EffectWiden sim.EffectRef = iota + 1
	EffectSlow
	EffectMega
	EffectLaser
	EffectDouble
	EffectCatalyst
)

// EffectName returns a short label for HUD display.
func EffectName(ref sim.EffectRef) string {
	switch ref {
	case EffectWiden:
		return "WIDE"
	case EffectSlow:
		return "SLOW"
	case EffectMega:
		return "MEGA"
	case EffectLaser:
		return "LASER"
	case EffectDouble:
		return "2X"
	case EffectCatalyst:
		return "CATALYST"
	default:
		return "?"
	}
}

// effectFor maps a timed pickup to its effect handle.
// Instant pickups (Multi, Life) return 0.
func effectFor(kind PickupKind) sim.EffectRef {
	switch kind {
	case PickupWiden:
		return EffectWiden
	case PickupSlow:
		return EffectSlow
	case PickupMega:
		return EffectMega
	case PickupLaser:
		return EffectLaser
	case PickupDouble:
		return EffectDouble
	default:
		return 0
	}
}

// durationFor returns the effect duration in ticks for a timed pickup.
func durationFor(cfg config.ShatterPowerUps, kind PickupKind) int {
	switch kind {
	case PickupWiden:
		return cfg.DurationWiden
	case PickupSlow:
		return cfg.DurationSlow
	case PickupMega:
		return cfg.DurationMega
	case PickupLaser:
		return cfg.DurationLaser
	case PickupDouble:
		return cfg.DurationDouble
	default:
		return 0
	}
}

// buildDropTable constructs the weighted pickup table from config.
// Zero or negative weights disable a pickup entirely.
func buildDropTable(cfg config.ShatterPowerUps) *sim.WeightedTable[PickupKind] {
	t := sim.NewWeightedTable[PickupKind]()
	t.Add(PickupWiden, cfg.WeightWiden)
	t.Add(PickupSlow, cfg.WeightSlow)
	t.Add(PickupMega, cfg.WeightMega)
	t.Add(PickupLaser, cfg.WeightLaser)
	t.Add(PickupDouble, cfg.WeightDouble)
	t.Add(PickupMulti, cfg.WeightMulti)
	t.Add(PickupLife, cfg.WeightLife)
	return t
}

// pickupData extracts the PickupKind from a store entity.
func pickupData(e *sim.Entity) PickupKind {
	k, ok := e.Data.(PickupKind)
	if !ok {
		panic("shatter: pickup entity without pickup data")
	}
	return k
}
