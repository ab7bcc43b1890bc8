package bounce

import (
	"math"

	"github.com/tetraplane/ricochet/internal/sim"
)

// snapScale converts cell coordinates to fixed-point milli-cells so the
// snapshot holds only integers.
const snapScale = 1000

func fix(v float64) int {
	return int(math.Round(v * snapScale))
}

func unfix(v int) float64 {
	return float64(v) / snapScale
}

const (
	ballStride     = 6 // X, Y, VX, VY, Invert, Flags
	platformStride = 6 // Kind, Flags, X, Y, W, VX
)

const ballFlagClone = 1 << 0

const platFlagConsumed = 1 << 0

// Snapshot contains the complete session state for replay/save/determinism
// checks. Uses primitive types only for stable serialization. Platforms
// carry no cross-references, so no entity IDs need to survive the trip.
type Snapshot struct {
	Tick   uint64
	State  string
	CamY   int // Fixed-point
	StartY int // Fixed-point
	Best   int // Fixed-point
	NextY  int // Fixed-point spawner cursor

	Score      int
	ComboCount int
	ComboDecay int
	Multiplier int // Fixed-point

	// Balls, flattened at ballStride ints each
	BallCount int
	BallData  []int

	// Platforms, flattened at platformStride ints each
	PlatformCount int
	PlatformData  []int

	RNGState uint64
}

// Snapshot returns the current session state. Particles are cosmetic and
// excluded.
func (s *Session) Snapshot() Snapshot {
	balls := s.store.All(sim.KindBall)
	ballData := make([]int, len(balls)*ballStride)
	for i, ball := range balls {
		meta := ballMeta(ball)
		flags := 0
		if meta.Clone {
			flags |= ballFlagClone
		}
		idx := i * ballStride
		ballData[idx] = fix(ball.Pos.X)
		ballData[idx+1] = fix(ball.Pos.Y)
		ballData[idx+2] = fix(ball.Vel.X)
		ballData[idx+3] = fix(ball.Vel.Y)
		ballData[idx+4] = meta.Invert
		ballData[idx+5] = flags
	}

	platforms := s.store.All(sim.KindPlatform)
	platformFlat := make([]int, len(platforms)*platformStride)
	for i, plat := range platforms {
		meta := platformData(plat)
		flags := 0
		if meta.Consumed {
			flags |= platFlagConsumed
		}
		idx := i * platformStride
		platformFlat[idx] = int(meta.Kind)
		platformFlat[idx+1] = flags
		platformFlat[idx+2] = fix(plat.Pos.X)
		platformFlat[idx+3] = fix(plat.Pos.Y)
		platformFlat[idx+4] = fix(plat.W)
		platformFlat[idx+5] = fix(plat.Vel.X)
	}

	return Snapshot{
		Tick:   uint64(s.tick), //#nosec G115 -- tick count is always positive
		State:  s.state,
		CamY:   fix(s.camY),
		StartY: fix(s.startY),
		Best:   fix(s.best),
		NextY:  fix(s.spawn.NextY),

		Score:      s.combo.Score,
		ComboCount: s.combo.Count,
		ComboDecay: s.combo.DecayRemaining(),
		Multiplier: fix(s.combo.Multiplier),

		BallCount:     len(balls),
		BallData:      ballData,
		PlatformCount: len(platforms),
		PlatformData:  platformFlat,

		RNGState: s.rng.State(),
	}
}

// ApplySnapshot restores session state from a snapshot taken with the
// same configuration.
func (s *Session) ApplySnapshot(snap Snapshot) {
	s.tick = int(snap.Tick) //#nosec G115 -- tick count fits in int
	s.state = snap.State
	s.camY = unfix(snap.CamY)
	s.startY = unfix(snap.StartY)
	s.best = unfix(snap.Best)
	s.spawn.NextY = unfix(snap.NextY)
	s.steer = 0

	s.combo.Score = snap.Score
	s.combo.Count = snap.ComboCount
	s.combo.Multiplier = unfix(snap.Multiplier)
	s.combo.SetDecay(snap.ComboDecay)

	s.clearKind(sim.KindBall)
	s.clearKind(sim.KindPlatform)
	s.clearKind(sim.KindParticle)

	for i := range snap.BallCount {
		idx := i * ballStride
		if idx+ballStride-1 >= len(snap.BallData) {
			break
		}
		ball := s.store.Create(sim.KindBall)
		ball.Radius = s.cfg.Physics.BallRadius
		ball.Pos = sim.Vec2{X: unfix(snap.BallData[idx]), Y: unfix(snap.BallData[idx+1])}
		ball.Vel = sim.Vec2{X: unfix(snap.BallData[idx+2]), Y: unfix(snap.BallData[idx+3])}
		ball.Data = &BallMeta{
			Invert: snap.BallData[idx+4],
			Clone:  snap.BallData[idx+5]&ballFlagClone != 0,
		}
	}

	for i := range snap.PlatformCount {
		idx := i * platformStride
		if idx+platformStride-1 >= len(snap.PlatformData) {
			break
		}
		plat := s.store.Create(sim.KindPlatform)
		plat.H = 1
		plat.Pos = sim.Vec2{X: unfix(snap.PlatformData[idx+2]), Y: unfix(snap.PlatformData[idx+3])}
		plat.W = unfix(snap.PlatformData[idx+4])
		plat.Vel.X = unfix(snap.PlatformData[idx+5])
		plat.Data = &PlatformMeta{
			Kind:     PlatformKind(snap.PlatformData[idx]),
			Consumed: snap.PlatformData[idx+1]&platFlagConsumed != 0,
		}
	}

	s.intents.Clear()
	s.rng.Restore(snap.RNGState)
}

// clearKind destroys every entity of the given kind.
func (s *Session) clearKind(kind sim.Kind) {
	for _, e := range s.store.All(kind) {
		s.store.Destroy(e.ID)
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)
	h = h*31 + uint64(snap.CamY)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.StartY)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Best)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NextY)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ComboCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ComboDecay)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Multiplier)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCount)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlatformCount) //#nosec G115 -- hash computation

	for _, v := range snap.BallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.PlatformData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
