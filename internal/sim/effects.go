package sim

// EffectSet tracks the timed modifiers active on one session. At most one
// timer exists per effect kind: re-activating a running effect resets its
// remaining duration to the new value instead of stacking a second timer.
type EffectSet struct {
	remaining map[EffectRef]int
	order     []EffectRef // Activation order, for deterministic expiry
}

// NewEffectSet creates an empty effect set.
func NewEffectSet() *EffectSet {
	return &EffectSet{remaining: make(map[EffectRef]int)}
}

// Activate starts or refreshes an effect. A duration of zero means the
// effect applies instantaneously and is not tracked; the caller applies its
// modifier immediately. Returns true when the effect was newly started,
// false when an active timer was refreshed.
func (s *EffectSet) Activate(kind EffectRef, ticks int) bool {
	if ticks <= 0 {
		return true
	}
	if _, active := s.remaining[kind]; active {
		s.remaining[kind] = ticks
		return false
	}
	s.remaining[kind] = ticks
	s.order = append(s.order, kind)
	return true
}

// Tick decrements every active timer and returns the kinds that expired
// this tick, in activation order, so their modifiers can be reverted.
func (s *EffectSet) Tick() []EffectRef {
	var expired []EffectRef
	kept := s.order[:0]
	for _, kind := range s.order {
		s.remaining[kind]--
		if s.remaining[kind] <= 0 {
			delete(s.remaining, kind)
			expired = append(expired, kind)
			continue
		}
		kept = append(kept, kind)
	}
	s.order = kept
	return expired
}

// Active reports whether an effect of the kind is currently running.
func (s *EffectSet) Active(kind EffectRef) bool {
	_, ok := s.remaining[kind]
	return ok
}

// ActiveKinds returns the active effect kinds in activation order.
func (s *EffectSet) ActiveKinds() []EffectRef {
	out := make([]EffectRef, len(s.order))
	copy(out, s.order)
	return out
}

// Remaining returns the ticks left for a kind, or 0 when inactive.
func (s *EffectSet) Remaining(kind EffectRef) int {
	return s.remaining[kind]
}

// Clear cancels every active effect without emitting expiries. Used on
// level reset and life loss, where timers must not outlive the attempt.
func (s *EffectSet) Clear() {
	for kind := range s.remaining {
		delete(s.remaining, kind)
	}
	s.order = s.order[:0]
}

// WeightedTable selects items with probability proportional to weight.
// Used for pickup kinds in the brick game and platform kinds in the jumper.
type WeightedTable[T any] struct {
	items   []T
	weights []int
	total   int
}

// NewWeightedTable creates an empty weighted table.
func NewWeightedTable[T any]() *WeightedTable[T] {
	return &WeightedTable[T]{}
}

// Add registers an item with a relative weight. Non-positive weights are
// ignored so configs can zero out an entry to disable it.
func (t *WeightedTable[T]) Add(item T, weight int) {
	if weight <= 0 {
		return
	}
	t.items = append(t.items, item)
	t.weights = append(t.weights, weight)
	t.total += weight
}

// Pick samples one item. Returns false when the table is empty.
func (t *WeightedTable[T]) Pick(rng *RNG) (T, bool) {
	var zero T
	if t.total <= 0 {
		return zero, false
	}
	roll := rng.Intn(t.total)
	cumulative := 0
	for i, w := range t.weights {
		cumulative += w
		if roll < cumulative {
			return t.items[i], true
		}
	}
	return zero, false
}

// Len reports how many items the table holds.
func (t *WeightedTable[T]) Len() int {
	return len(t.items)
}
