package sim

// IntentKind names a queued player intent.
type IntentKind int

const (
	IntentMove    IntentKind = iota // Horizontal steering, Dir is -1 or +1
	IntentLaunch                    // Release a served ball
	IntentPause                     // Toggle pause
	IntentRestart                   // Restart after game over
)

// Intent is a player input decoupled from device mapping. The platform
// layer translates keys into intents; the session consumes them on the next
// fixed step.
type Intent struct {
	Kind IntentKind
	Dir  int
}

// IntentQueue buffers intents between injection and the next fixed step.
type IntentQueue struct {
	pending []Intent
}

// Push queues an intent for the next fixed step.
func (q *IntentQueue) Push(in Intent) {
	q.pending = append(q.pending, in)
}

// Drain returns all queued intents in arrival order and empties the queue.
func (q *IntentQueue) Drain() []Intent {
	out := q.pending
	q.pending = nil
	return out
}

// Clear drops all queued intents, for resets.
func (q *IntentQueue) Clear() {
	q.pending = nil
}
