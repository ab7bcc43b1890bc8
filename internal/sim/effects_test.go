package sim

import "testing"

const (
	testEffectA EffectRef = iota
	testEffectB
)

func TestEffectActivateAndExpire(t *testing.T) {
	s := NewEffectSet()

	if fresh := s.Activate(testEffectA, 3); !fresh {
		t.Error("First activation must report a new effect")
	}
	if !s.Active(testEffectA) {
		t.Error("Effect should be active")
	}

	s.Tick()
	s.Tick()
	if expired := s.Tick(); len(expired) != 1 || expired[0] != testEffectA {
		t.Errorf("Effect must expire on its final tick, got %v", expired)
	}
	if s.Active(testEffectA) {
		t.Error("Expired effect must be inactive")
	}
}

func TestEffectRefreshDoesNotStack(t *testing.T) {
	s := NewEffectSet()

	s.Activate(testEffectA, 5)
	s.Tick()
	s.Tick()

	// Re-collecting resets the remaining duration; no second timer exists.
	if fresh := s.Activate(testEffectA, 5); fresh {
		t.Error("Re-activation must report a refresh, not a new effect")
	}
	if got := s.Remaining(testEffectA); got != 5 {
		t.Errorf("Refresh must reset remaining to 5, got %d", got)
	}

	// The refreshed timer expires exactly once.
	total := 0
	for i := 0; i < 10; i++ {
		total += len(s.Tick())
	}
	if total != 1 {
		t.Errorf("A refreshed effect must expire exactly once, got %d expiries", total)
	}
}

func TestEffectZeroDurationIsInstant(t *testing.T) {
	s := NewEffectSet()

	if fresh := s.Activate(testEffectB, 0); !fresh {
		t.Error("Instant effects report as new so the caller applies them")
	}
	if s.Active(testEffectB) {
		t.Error("Instant effects are not tracked as ongoing")
	}
}

func TestEffectClearDropsTimersSilently(t *testing.T) {
	s := NewEffectSet()
	s.Activate(testEffectA, 10)
	s.Activate(testEffectB, 10)

	s.Clear()
	if s.Active(testEffectA) || s.Active(testEffectB) {
		t.Error("Clear must cancel every effect")
	}
	if expired := s.Tick(); len(expired) != 0 {
		t.Errorf("Cleared effects must not emit expiries, got %v", expired)
	}
}

func TestWeightedTablePick(t *testing.T) {
	var tbl WeightedTable[string]
	tbl.Add("common", 80)
	tbl.Add("rare", 20)
	tbl.Add("never", 0) // Zero weight is dropped entirely

	rng := NewRNG(7)
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		item, ok := tbl.Pick(rng)
		if !ok {
			t.Fatal("Pick must succeed on a non-empty table")
		}
		counts[item]++
	}

	if counts["never"] != 0 {
		t.Errorf("Zero-weight items must never be picked, got %d", counts["never"])
	}
	if counts["common"] <= counts["rare"] {
		t.Errorf("Weighting broken: common=%d rare=%d", counts["common"], counts["rare"])
	}
	if counts["rare"] == 0 {
		t.Error("Positive-weight items must be reachable")
	}
}

func TestWeightedTableEmpty(t *testing.T) {
	var tbl WeightedTable[int]
	if _, ok := tbl.Pick(NewRNG(1)); ok {
		t.Error("Empty table must report no pick")
	}
}
