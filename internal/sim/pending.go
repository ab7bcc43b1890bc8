package sim

// DetonationStagger is the delay before a chained blast fires, in ticks
// (~100ms). The stagger is presentation pacing only: deferred blasts
// re-validate against live state, so the final set of destroyed obstacles
// matches an instantaneous chain.
const DetonationStagger = 6

// Deferred is a side effect scheduled for a later tick. Target identifies
// the entity the effect acts on; by the due tick it may already be
// destroyed, in which case the processor must silently skip it.
type Deferred struct {
	DueTick int
	Target  ID
	At      Vec2
	Radius  float64
}

// DeferredQueue holds side effects waiting for their tick, replacing
// free-standing timers: entries are inspectable, ordered, and cancelled
// wholesale on reset, so no effect outlives the attempt that scheduled it.
type DeferredQueue struct {
	entries []Deferred
}

// Schedule queues an effect to run at the given tick.
func (q *DeferredQueue) Schedule(d Deferred) {
	q.entries = append(q.entries, d)
}

// Due removes and returns every entry due at or before the tick, in
// scheduling order.
func (q *DeferredQueue) Due(tick int) []Deferred {
	var due []Deferred
	kept := q.entries[:0]
	for _, d := range q.entries {
		if d.DueTick <= tick {
			due = append(due, d)
			continue
		}
		kept = append(kept, d)
	}
	q.entries = kept
	return due
}

// Clear cancels every pending effect. Called on level reset and life loss.
func (q *DeferredQueue) Clear() {
	q.entries = q.entries[:0]
}

// Entries returns a copy of the pending effects in scheduling order, for
// snapshots.
func (q *DeferredQueue) Entries() []Deferred {
	out := make([]Deferred, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len reports how many effects are pending.
func (q *DeferredQueue) Len() int {
	return len(q.entries)
}
