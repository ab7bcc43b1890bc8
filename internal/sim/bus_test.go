package sim

import "testing"

func TestBusDispatchOrder(t *testing.T) {
	b := NewBus()

	var order []string
	b.Subscribe(func(o Outcome) { order = append(order, "first") })
	b.Subscribe(func(o Outcome) { order = append(order, "second") })

	b.Publish(ScoreOutcome{Points: 10})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Subscribers must run in registration order, got %v", order)
	}
}

func TestBusBatchKeepsOutcomeOrder(t *testing.T) {
	b := NewBus()

	var points []int
	b.Subscribe(func(o Outcome) {
		if s, ok := o.(ScoreOutcome); ok {
			points = append(points, s.Points)
		}
	})

	b.PublishAll([]Outcome{
		ScoreOutcome{Points: 1},
		LifeLostOutcome{Remaining: 2},
		ScoreOutcome{Points: 3},
	})

	if len(points) != 2 || points[0] != 1 || points[1] != 3 {
		t.Errorf("Batch publish must keep simulation order, got %v", points)
	}
}

func TestIntentQueueDrainOrder(t *testing.T) {
	var q IntentQueue
	q.Push(Intent{Kind: IntentMove, Dir: -1})
	q.Push(Intent{Kind: IntentLaunch})

	got := q.Drain()
	if len(got) != 2 || got[0].Kind != IntentMove || got[1].Kind != IntentLaunch {
		t.Errorf("Drain must return intents in arrival order, got %v", got)
	}
	if len(q.Drain()) != 0 {
		t.Error("Queue must be empty after a drain")
	}
}

func TestDeferredQueueDue(t *testing.T) {
	var q DeferredQueue
	q.Schedule(Deferred{DueTick: 10, Target: 1})
	q.Schedule(Deferred{DueTick: 5, Target: 2})
	q.Schedule(Deferred{DueTick: 10, Target: 3})

	if due := q.Due(4); len(due) != 0 {
		t.Errorf("Nothing is due before its tick, got %v", due)
	}
	if due := q.Due(5); len(due) != 1 || due[0].Target != 2 {
		t.Errorf("Expected only target 2 due at tick 5, got %v", due)
	}

	// Entries sharing a tick pop in scheduling order.
	due := q.Due(10)
	if len(due) != 2 || due[0].Target != 1 || due[1].Target != 3 {
		t.Errorf("Expected targets 1,3 due at tick 10, got %v", due)
	}
	if q.Len() != 0 {
		t.Errorf("Queue should be drained, %d remain", q.Len())
	}
}

func TestDeferredQueueClear(t *testing.T) {
	var q DeferredQueue
	q.Schedule(Deferred{DueTick: 10, Target: 1})
	q.Clear()
	if q.Len() != 0 {
		t.Error("Clear must cancel pending effects")
	}
	if due := q.Due(100); len(due) != 0 {
		t.Errorf("Cleared effects must never fire, got %v", due)
	}
}
