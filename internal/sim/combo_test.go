package sim

import "testing"

func TestComboFirstHitHasNoBonus(t *testing.T) {
	c := NewCombo()

	award := c.RegisterHit(100)
	if award != 100 {
		t.Errorf("Combo 1 at multiplier 1 must award floor(100x1)=100, got %d", award)
	}
	if c.Score != 100 {
		t.Errorf("Score should be 100, got %d", c.Score)
	}
}

func TestComboStreakMultiplier(t *testing.T) {
	c := NewCombo()

	// Hits 1..5: multipliers 1.0, 1.1, 1.2, 1.3, 1.4.
	wants := []int{100, 110, 120, 130, 140}
	for i, want := range wants {
		if got := c.RegisterHit(100); got != want {
			t.Errorf("Hit %d: expected %d, got %d", i+1, want, got)
		}
	}
}

func TestComboMultiplierCapsAtThree(t *testing.T) {
	c := NewCombo()

	// Hit 21 would be 1 + 20x0.1 = 3.0; hit 30 stays capped there.
	for i := 0; i < 29; i++ {
		c.RegisterHit(10)
	}
	if got := c.RegisterHit(100); got != 300 {
		t.Errorf("Streak multiplier must cap at 3, got %d", got)
	}
}

func TestComboExternalMultiplierStacksWithCap(t *testing.T) {
	c := NewCombo()
	c.Multiplier = 2

	// Drive the streak component to its cap, then score: floor(100x3x2).
	for i := 0; i < 25; i++ {
		c.RegisterHit(10)
	}
	if got := c.RegisterHit(100); got != 600 {
		t.Errorf("Capped streak x external 2 must award 600, got %d", got)
	}
}

func TestComboAwardIsFloored(t *testing.T) {
	c := NewCombo()

	c.RegisterHit(10)              // combo 1
	if got := c.RegisterHit(5); got != 5 { // floor(5 x 1.1) = 5
		t.Errorf("Awards must floor, expected 5, got %d", got)
	}
}

func TestComboResetsOneTickAfterWindow(t *testing.T) {
	c := NewCombo()
	c.RegisterHit(10)

	// The full window passes: timer counts down to zero but the combo holds.
	for i := 0; i < c.Window; i++ {
		c.Tick()
		if c.Count == 0 {
			t.Fatalf("Combo reset early at tick %d with timer still live", i+1)
		}
	}

	// One more tick past the expired window resets the count.
	c.Tick()
	if c.Count != 0 {
		t.Errorf("Combo must reset one tick after the window expires, count=%d", c.Count)
	}
	if c.Score == 0 {
		t.Error("Score must survive a combo decay")
	}
}

func TestComboHitRestartsWindow(t *testing.T) {
	c := NewCombo()
	c.RegisterHit(10)

	for i := 0; i < c.Window-1; i++ {
		c.Tick()
	}
	c.RegisterHit(10) // Restarts the decay window at combo 2

	for i := 0; i < c.Window; i++ {
		c.Tick()
	}
	if c.Count != 2 {
		t.Errorf("Refreshed window must keep the streak alive, count=%d", c.Count)
	}
}

func TestComboResetForNewAttempt(t *testing.T) {
	c := NewCombo()
	c.Multiplier = 2
	c.RegisterHit(100)
	c.RegisterHit(100)

	score := c.Score
	c.ResetForNewAttempt()

	if c.Count != 0 {
		t.Errorf("ResetForNewAttempt must zero the combo, got %d", c.Count)
	}
	if c.Score != score {
		t.Error("ResetForNewAttempt must not touch the score")
	}
	if c.Multiplier != 2 {
		t.Error("ResetForNewAttempt must not touch the external multiplier")
	}
}

func TestComboResetAll(t *testing.T) {
	c := NewCombo()
	c.Multiplier = 2
	c.RegisterHit(100)

	c.ResetAll()
	if c.Score != 0 || c.Count != 0 || c.Multiplier != 1 {
		t.Errorf("ResetAll must zero everything, got score=%d count=%d mult=%v",
			c.Score, c.Count, c.Multiplier)
	}
}
