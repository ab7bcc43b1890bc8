package sim

// FixedStep is the simulation timestep in seconds. All gameplay logic
// advances in these uniform increments regardless of render frame timing.
const FixedStep = 1.0 / 60.0

// MaxFrameDelta caps the wall-clock delta accepted per rendered frame.
// A stall (window drag, debugger pause) otherwise floods the accumulator
// and the simulation spirals trying to catch up.
const MaxFrameDelta = 0.1

// Clock converts variable render-frame deltas into whole fixed steps.
// Leftover time stays in the accumulator and carries into the next frame.
// Rendering always uses the latest simulated state; there is no
// interpolation between steps.
type Clock struct {
	accumulator float64
	step        float64
	maxDelta    float64
}

// NewClock creates a clock with the standard fixed step and frame cap.
func NewClock() *Clock {
	return &Clock{step: FixedStep, maxDelta: MaxFrameDelta}
}

// Advance accumulates a frame delta and returns how many fixed steps the
// caller must simulate for this frame. May return zero.
func (c *Clock) Advance(frameDt float64) int {
	if frameDt < 0 {
		frameDt = 0
	}
	if frameDt > c.maxDelta {
		frameDt = c.maxDelta
	}
	c.accumulator += frameDt

	steps := 0
	for c.accumulator >= c.step {
		c.accumulator -= c.step
		steps++
	}
	return steps
}

// Reset drops any accumulated fraction, for level transitions where catching
// up on stale time would be wrong.
func (c *Clock) Reset() {
	c.accumulator = 0
}

// Accumulated returns the leftover fraction of a step, in seconds.
func (c *Clock) Accumulated() float64 {
	return c.accumulator
}

// Seconds converts a duration in seconds to a whole number of fixed ticks.
func Seconds(s float64) int {
	return int(s/FixedStep + 0.5)
}
