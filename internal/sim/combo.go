package sim

import "math"

// ComboWindow is how long a combo survives without a new hit, in ticks (2s).
const ComboWindow = 120

// comboCap bounds the combo-driven multiplier component.
const comboCap = 3.0

// Combo accumulates score with a decaying hit-streak multiplier. One
// instance belongs to one session; nothing here is global.
type Combo struct {
	Score      int
	Count      int     // Consecutive hits inside the decay window
	Multiplier float64 // External score multiplier from power-ups, 1 when none
	Window     int     // Decay window in ticks

	decay int // Ticks of window left; combo resets the tick after it hits 0
}

// NewCombo creates a combo engine with the standard window.
func NewCombo() *Combo {
	return &Combo{Multiplier: 1, Window: ComboWindow}
}

// RegisterHit scores one hit: the combo grows, the decay window restarts,
// and floor(base × min(1+(combo-1)×0.1, 3) × Multiplier) points are added.
// Returns the awarded amount for popup feedback.
func (c *Combo) RegisterHit(base int) int {
	c.Count++
	c.decay = c.Window

	streak := 1 + 0.1*float64(c.Count-1)
	if streak > comboCap {
		streak = comboCap
	}
	award := int(math.Floor(float64(base) * streak * c.Multiplier))
	c.Score += award
	return award
}

// Tick advances the decay timer. The combo count resets to zero exactly one
// tick after the timer reaches zero with no intervening hit; it never resets
// while the timer is still positive.
func (c *Combo) Tick() {
	if c.Count == 0 {
		return
	}
	if c.decay <= 0 {
		c.Count = 0
		return
	}
	c.decay--
}

// DecayRemaining returns the ticks left before the combo is eligible to
// reset. Render-only.
func (c *Combo) DecayRemaining() int {
	if c.Count == 0 {
		return 0
	}
	return c.decay
}

// SetDecay restores the decay timer when loading a snapshot.
func (c *Combo) SetDecay(ticks int) {
	c.decay = ticks
}

// ResetForNewAttempt zeroes the combo and its timer without touching the
// score. Used on life loss and level transitions.
func (c *Combo) ResetForNewAttempt() {
	c.Count = 0
	c.decay = 0
}

// ResetAll zeroes score, combo, and the external multiplier. Used when a
// new run starts.
func (c *Combo) ResetAll() {
	c.Score = 0
	c.Multiplier = 1
	c.ResetForNewAttempt()
}
