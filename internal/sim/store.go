package sim

import "fmt"

// ID identifies a live entity. An ID is valid only between creation and
// destruction; after an instance is recycled the slot carries a new ID, so
// holding a stale ID is always detectable via Get.
type ID uint64

// Kind tags the simulated role of an entity.
type Kind int

const (
	KindBall Kind = iota
	KindPaddle
	KindObstacle
	KindPlatform
	KindPickup
	KindProjectile
	KindParticle
	KindCount // Sentinel for counting kinds
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindObstacle:
		return "obstacle"
	case KindPlatform:
		return "platform"
	case KindPickup:
		return "pickup"
	case KindProjectile:
		return "projectile"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Entity is any simulated object. Shape is either a circle (Radius > 0) or
// an axis-aligned box (W/H). Data carries the variant-specific lifecycle
// state owned by the game layer (obstacle phase, platform kind, pickup
// payload); the store itself never inspects it.
type Entity struct {
	ID     ID
	Kind   Kind
	Pos    Vec2 // Circle center, or box top-left corner
	Vel    Vec2
	Radius float64
	W, H   float64
	Data   any
}

// Box returns the entity's rectangle. Valid for box-shaped entities.
func (e *Entity) Box() Box {
	return Box{X: e.Pos.X, Y: e.Pos.Y, W: e.W, H: e.H}
}

// Circle returns the entity's circle. Valid for circle-shaped entities.
func (e *Entity) Circle() Circle {
	return Circle{Center: e.Pos, R: e.Radius}
}

// Store owns every live entity and recycles destroyed instances through a
// per-kind free list. External systems hold IDs, never entities, across
// ticks: a recycled slot is reissued under a fresh ID and lookups with the
// old one simply miss.
type Store struct {
	entities map[ID]*Entity
	order    map[Kind][]ID // Live IDs per kind, oldest first
	free     map[Kind][]*Entity
	caps     map[Kind]int
	nextID   ID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entities: make(map[ID]*Entity),
		order:    make(map[Kind][]ID),
		free:     make(map[Kind][]*Entity),
		caps:     make(map[Kind]int),
	}
}

// SetCap installs a soft cap for a kind. Creating past the cap evicts the
// oldest live entity of that kind instead of failing. Zero removes the cap.
func (s *Store) SetCap(kind Kind, limit int) {
	if limit <= 0 {
		delete(s.caps, kind)
		return
	}
	s.caps[kind] = limit
}

// Create issues a live entity of the given kind, reusing a pooled instance
// when one is available. Mutable fields are zeroed either way.
func (s *Store) Create(kind Kind) *Entity {
	if limit, ok := s.caps[kind]; ok && len(s.order[kind]) >= limit {
		// Soft cap: make room by dropping the oldest live instance.
		s.Destroy(s.order[kind][0])
	}

	var e *Entity
	if freed := s.free[kind]; len(freed) > 0 {
		e = freed[len(freed)-1]
		s.free[kind] = freed[:len(freed)-1]
		if _, live := s.entities[e.ID]; live {
			panic(fmt.Sprintf("sim: pooled %s instance still live as id %d", kind, e.ID))
		}
		*e = Entity{}
	} else {
		e = &Entity{}
	}

	s.nextID++
	e.ID = s.nextID
	e.Kind = kind
	s.entities[e.ID] = e
	s.order[kind] = append(s.order[kind], e.ID)
	return e
}

// Destroy returns an entity to its kind's pool. Destroying an unknown or
// already-destroyed ID is a no-op, never an error.
func (s *Store) Destroy(id ID) {
	e, ok := s.entities[id]
	if !ok {
		return
	}
	delete(s.entities, id)

	ids := s.order[e.Kind]
	for i, oid := range ids {
		if oid == id {
			s.order[e.Kind] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	s.free[e.Kind] = append(s.free[e.Kind], e)
}

// Get returns the live entity for id, or false for destroyed/unknown IDs.
func (s *Store) Get(id ID) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Query calls fn for every live entity of the kind, oldest first. Never
// yields destroyed entities. fn may destroy the current entity but must not
// create or destroy others mid-iteration; batch such changes instead.
func (s *Store) Query(kind Kind, fn func(*Entity) bool) {
	ids := s.order[kind]
	// Iterate over a stable copy so fn destroying the current entity
	// cannot skip its successor.
	snapshot := make([]ID, len(ids))
	copy(snapshot, ids)
	for _, id := range snapshot {
		e, ok := s.entities[id]
		if !ok {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// All returns the live entities of a kind, oldest first.
func (s *Store) All(kind Kind) []*Entity {
	ids := s.order[kind]
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Len reports how many live entities of a kind exist.
func (s *Store) Len(kind Kind) int {
	return len(s.order[kind])
}

// Total reports the number of live entities across all kinds.
func (s *Store) Total() int {
	return len(s.entities)
}

// Clear destroys every live entity, returning all instances to their pools.
func (s *Store) Clear() {
	for kind, ids := range s.order {
		for _, id := range ids {
			if e, ok := s.entities[id]; ok {
				delete(s.entities, id)
				s.free[kind] = append(s.free[kind], e)
			}
		}
		s.order[kind] = s.order[kind][:0]
	}
}
