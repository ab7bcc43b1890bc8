package sim

import "testing"

func TestClockWholeSteps(t *testing.T) {
	c := NewClock()

	// Exactly three fixed steps worth of time.
	steps := c.Advance(3 * FixedStep)
	if steps != 3 {
		t.Errorf("Expected 3 steps, got %d", steps)
	}
	if c.Accumulated() > 1e-9 {
		t.Errorf("Expected empty accumulator, got %v", c.Accumulated())
	}
}

func TestClockCarriesRemainder(t *testing.T) {
	c := NewClock()

	// Half a step: nothing runs, the fraction carries.
	if steps := c.Advance(FixedStep / 2); steps != 0 {
		t.Errorf("Expected 0 steps for a half frame, got %d", steps)
	}
	// Another half completes one step.
	if steps := c.Advance(FixedStep / 2); steps != 1 {
		t.Errorf("Expected the carried fraction to complete 1 step, got %d", steps)
	}
}

func TestClockClampsStalls(t *testing.T) {
	c := NewClock()

	// A 2-second stall must be clamped to MaxFrameDelta (6 steps at 1/60),
	// not replayed in full.
	steps := c.Advance(2.0)
	want := int(MaxFrameDelta / FixedStep)
	if steps != want {
		t.Errorf("Expected %d clamped steps after a stall, got %d", want, steps)
	}
}

func TestClockIgnoresNegativeDelta(t *testing.T) {
	c := NewClock()
	if steps := c.Advance(-1); steps != 0 {
		t.Errorf("Negative deltas must not run steps, got %d", steps)
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock()
	c.Advance(FixedStep / 2)
	c.Reset()
	if c.Accumulated() != 0 {
		t.Errorf("Reset must drop the accumulator, got %v", c.Accumulated())
	}
}

func TestSecondsConversion(t *testing.T) {
	if got := Seconds(2); got != 120 {
		t.Errorf("2s should be 120 ticks, got %d", got)
	}
	if got := Seconds(0.1); got != 6 {
		t.Errorf("0.1s should be 6 ticks, got %d", got)
	}
}
