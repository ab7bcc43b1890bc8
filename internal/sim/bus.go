package sim

// Bus is a synchronous publish/subscribe channel for outcome records.
// Dispatch is single-threaded and in registration order: Publish calls every
// subscriber before returning, so subscribers observe outcomes in exactly
// the order the simulation produced them. Sessions publish each record they
// also return from Advance; external collaborators subscribe for side
// channels (sound cues, popups) without the session knowing about them.
type Bus struct {
	subscribers []func(Outcome)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler invoked for every published outcome.
// Handlers filter by type switch.
func (b *Bus) Subscribe(fn func(Outcome)) {
	b.subscribers = append(b.subscribers, fn)
}

// Publish delivers one outcome to every subscriber in registration order.
func (b *Bus) Publish(o Outcome) {
	for _, fn := range b.subscribers {
		fn(o)
	}
}

// PublishAll delivers a batch in order.
func (b *Bus) PublishAll(batch []Outcome) {
	for _, o := range batch {
		b.Publish(o)
	}
}
