package shatter

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

// Obstacle stride in ObstacleData: ID, Kind, Phase, Hits, Fade, Cycle,
// Slot, Payload, Origin, Flags, X, Y, W, H, TargetX, TargetY.
const obstacleStride = 16

const (
	obFlagGliding    = 1 << 0
	obFlagDuplicated = 1 << 1
)

// Snapshot contains the complete session state for replay/save/determinism
// checks. Uses primitive types only for stable serialization. Duplicate
// bookkeeping survives through the stored entity IDs: restore remaps them
// and rebuilds each root's copy list.
type Snapshot struct {
	Tick         uint64
	State        string
	Mode         int // 0=Campaign, 1=Endless
	Lives        int
	LevelIndex   int
	StartIndex   int
	EndlessCycle int
	SpeedBonus   int // Fixed-point
	ServeDelay   int
	LaserCool    int

	Score      int
	ComboCount int
	ComboDecay int
	Multiplier int // Fixed-point

	PaddleX     int // Fixed-point
	PaddleWidth int // Fixed-point

	// Each ball is 5 ints: X, Y, VX, VY, Stuck
	BallCount int
	BallData  []int

	// Each pickup is 5 ints: Kind, X, Y, VX, VY
	PickupCount int
	PickupData  []int

	// Each projectile is 4 ints: X, Y, VX, VY
	ProjectileCount int
	ProjectileData  []int

	// Obstacles, flattened at obstacleStride ints each
	ObstacleCount int
	ObstacleData  []int

	// Each active effect is 2 ints: Ref, Remaining (activation order)
	EffectCount int
	EffectData  []int

	// Each pending blast is 5 ints: DueTick, Target, X, Y, Radius
	PendingCount int
	PendingData  []int

	RNGState uint64
}

// Snapshot returns the current session state. Particles are cosmetic and
// excluded.
func (s *Session) Snapshot() Snapshot {
	balls := s.store.All(sim.KindBall)
	ballData := make([]int, len(balls)*5)
	for i, ball := range balls {
		idx := i * 5
		ballData[idx] = fix(ball.Pos.X)
		ballData[idx+1] = fix(ball.Pos.Y)
		ballData[idx+2] = fix(ball.Vel.X)
		ballData[idx+3] = fix(ball.Vel.Y)
		if ballMeta(ball).Stuck {
			ballData[idx+4] = 1
		}
	}

	pickups := s.store.All(sim.KindPickup)
	pickupFlat := make([]int, len(pickups)*5)
	for i, pk := range pickups {
		idx := i * 5
		pickupFlat[idx] = int(pickupData(pk))
		pickupFlat[idx+1] = fix(pk.Pos.X)
		pickupFlat[idx+2] = fix(pk.Pos.Y)
		pickupFlat[idx+3] = fix(pk.Vel.X)
		pickupFlat[idx+4] = fix(pk.Vel.Y)
	}

	shots := s.store.All(sim.KindProjectile)
	shotData := make([]int, len(shots)*4)
	for i, shot := range shots {
		idx := i * 4
		shotData[idx] = fix(shot.Pos.X)
		shotData[idx+1] = fix(shot.Pos.Y)
		shotData[idx+2] = fix(shot.Vel.X)
		shotData[idx+3] = fix(shot.Vel.Y)
	}

	obstacles := s.store.All(sim.KindObstacle)
	obstacleFlat := make([]int, len(obstacles)*obstacleStride)
	for i, e := range obstacles {
		ob := obstacleData(e)
		flags := 0
		if ob.Gliding {
			flags |= obFlagGliding
		}
		if ob.Duplicated {
			flags |= obFlagDuplicated
		}
		idx := i * obstacleStride
		obstacleFlat[idx] = int(e.ID) //#nosec G115 -- entity IDs fit in int
		obstacleFlat[idx+1] = int(ob.Kind)
		obstacleFlat[idx+2] = int(ob.Phase)
		obstacleFlat[idx+3] = ob.Hits
		obstacleFlat[idx+4] = ob.Fade
		obstacleFlat[idx+5] = ob.Cycle
		obstacleFlat[idx+6] = ob.Slot
		obstacleFlat[idx+7] = int(ob.Payload)
		obstacleFlat[idx+8] = int(ob.Origin) //#nosec G115 -- entity IDs fit in int
		obstacleFlat[idx+9] = flags
		obstacleFlat[idx+10] = fix(e.Pos.X)
		obstacleFlat[idx+11] = fix(e.Pos.Y)
		obstacleFlat[idx+12] = fix(e.W)
		obstacleFlat[idx+13] = fix(e.H)
		obstacleFlat[idx+14] = fix(ob.Target.X)
		obstacleFlat[idx+15] = fix(ob.Target.Y)
	}

	active := s.effects.ActiveKinds()
	effectData := make([]int, len(active)*2)
	for i, ref := range active {
		idx := i * 2
		effectData[idx] = int(ref)
		effectData[idx+1] = s.effects.Remaining(ref)
	}

	pendings := s.pending.Entries()
	pendingData := make([]int, len(pendings)*5)
	for i, d := range pendings {
		idx := i * 5
		pendingData[idx] = d.DueTick
		pendingData[idx+1] = int(d.Target) //#nosec G115 -- entity IDs fit in int
		pendingData[idx+2] = fix(d.At.X)
		pendingData[idx+3] = fix(d.At.Y)
		pendingData[idx+4] = fix(d.Radius)
	}

	p := s.Paddle()
	return Snapshot{
		Tick:         uint64(s.tick), //#nosec G115 -- tick count is always positive
		State:        s.state,
		Mode:         int(s.mode),
		Lives:        s.lives,
		LevelIndex:   s.levelIndex,
		StartIndex:   s.startIndex,
		EndlessCycle: s.endlessCycle,
		SpeedBonus:   fix(s.speedBonus),
		ServeDelay:   s.serveDelay,
		LaserCool:    s.laserCool,

		Score:      s.combo.Score,
		ComboCount: s.combo.Count,
		ComboDecay: s.combo.DecayRemaining(),
		Multiplier: fix(s.combo.Multiplier),

		PaddleX:     fix(p.Pos.X),
		PaddleWidth: fix(p.W),

		BallCount:       len(balls),
		BallData:        ballData,
		PickupCount:     len(pickups),
		PickupData:      pickupFlat,
		ProjectileCount: len(shots),
		ProjectileData:  shotData,
		ObstacleCount:   len(obstacles),
		ObstacleData:    obstacleFlat,
		EffectCount:     len(active),
		EffectData:      effectData,
		PendingCount:    len(pendings),
		PendingData:     pendingData,

		RNGState: s.rng.State(),
	}
}

// ApplySnapshot restores session state from a snapshot taken with the same
// configuration and level set.
func (s *Session) ApplySnapshot(snap Snapshot) {
	s.tick = int(snap.Tick) //#nosec G115 -- tick count fits in int
	s.state = snap.State
	s.mode = GameMode(snap.Mode)
	s.lives = snap.Lives
	s.levelIndex = snap.LevelIndex
	s.startIndex = snap.StartIndex
	s.endlessCycle = snap.EndlessCycle
	s.speedBonus = unfix(snap.SpeedBonus)
	s.serveDelay = snap.ServeDelay
	s.laserCool = snap.LaserCool

	s.combo.Score = snap.Score
	s.combo.Count = snap.ComboCount
	s.combo.Multiplier = unfix(snap.Multiplier)
	s.combo.SetDecay(snap.ComboDecay)

	p := s.Paddle()
	p.Pos.X = unfix(snap.PaddleX)
	p.W = unfix(snap.PaddleWidth)

	s.clearKind(sim.KindBall)
	s.clearKind(sim.KindPickup)
	s.clearKind(sim.KindProjectile)
	s.clearKind(sim.KindParticle)
	s.clearKind(sim.KindObstacle)

	for i := range snap.BallCount {
		idx := i * 5
		if idx+4 >= len(snap.BallData) {
			break
		}
		ball := s.store.Create(sim.KindBall)
		ball.Radius = s.cfg.Physics.BallRadius
		ball.Pos = sim.Vec2{X: unfix(snap.BallData[idx]), Y: unfix(snap.BallData[idx+1])}
		ball.Vel = sim.Vec2{X: unfix(snap.BallData[idx+2]), Y: unfix(snap.BallData[idx+3])}
		ball.Data = &BallMeta{Stuck: snap.BallData[idx+4] == 1}
	}

	for i := range snap.PickupCount {
		idx := i * 5
		if idx+4 >= len(snap.PickupData) {
			break
		}
		pk := s.store.Create(sim.KindPickup)
		pk.Radius = 0.5
		pk.Pos = sim.Vec2{X: unfix(snap.PickupData[idx+1]), Y: unfix(snap.PickupData[idx+2])}
		pk.Vel = sim.Vec2{X: unfix(snap.PickupData[idx+3]), Y: unfix(snap.PickupData[idx+4])}
		pk.Data = PickupKind(snap.PickupData[idx])
	}

	for i := range snap.ProjectileCount {
		idx := i * 4
		if idx+3 >= len(snap.ProjectileData) {
			break
		}
		shot := s.store.Create(sim.KindProjectile)
		shot.W = shotW
		shot.H = shotH
		shot.Pos = sim.Vec2{X: unfix(snap.ProjectileData[idx]), Y: unfix(snap.ProjectileData[idx+1])}
		shot.Vel = sim.Vec2{X: unfix(snap.ProjectileData[idx+2]), Y: unfix(snap.ProjectileData[idx+3])}
	}

	// Obstacles come back under fresh IDs; the stored ones are only used to
	// reconnect duplicates to their roots.
	remap := make(map[sim.ID]sim.ID, snap.ObstacleCount)
	restored := make([]*sim.Entity, 0, snap.ObstacleCount)
	for i := range snap.ObstacleCount {
		idx := i * obstacleStride
		if idx+obstacleStride-1 >= len(snap.ObstacleData) {
			break
		}
		e := s.store.Create(sim.KindObstacle)
		e.Pos = sim.Vec2{X: unfix(snap.ObstacleData[idx+10]), Y: unfix(snap.ObstacleData[idx+11])}
		e.W = unfix(snap.ObstacleData[idx+12])
		e.H = unfix(snap.ObstacleData[idx+13])
		flags := snap.ObstacleData[idx+9]
		e.Data = &Obstacle{
			Kind:       ObstacleKind(snap.ObstacleData[idx+1]),
			Phase:      ObstaclePhase(snap.ObstacleData[idx+2]),
			Hits:       snap.ObstacleData[idx+3],
			Fade:       snap.ObstacleData[idx+4],
			Cycle:      snap.ObstacleData[idx+5],
			Slot:       snap.ObstacleData[idx+6],
			Payload:    PickupKind(snap.ObstacleData[idx+7]),
			Origin:     sim.ID(snap.ObstacleData[idx+8]), //#nosec G115 -- round trip of a stored ID
			Gliding:    flags&obFlagGliding != 0,
			Duplicated: flags&obFlagDuplicated != 0,
			Target:     sim.Vec2{X: unfix(snap.ObstacleData[idx+14]), Y: unfix(snap.ObstacleData[idx+15])},
		}
		remap[sim.ID(snap.ObstacleData[idx])] = e.ID //#nosec G115 -- round trip of a stored ID
		restored = append(restored, e)
	}
	for _, e := range restored {
		ob := obstacleData(e)
		if ob.Origin == 0 {
			continue
		}
		rootID, ok := remap[ob.Origin]
		if !ok {
			ob.Origin = 0
			continue
		}
		ob.Origin = rootID
		if rootEnt, live := s.store.Get(rootID); live {
			rootOb := obstacleData(rootEnt)
			rootOb.Copies = append(rootOb.Copies, e.ID)
		}
	}

	s.effects.Clear()
	for i := range snap.EffectCount {
		idx := i * 2
		if idx+1 >= len(snap.EffectData) {
			break
		}
		s.effects.Activate(sim.EffectRef(snap.EffectData[idx]), snap.EffectData[idx+1])
	}

	s.pending.Clear()
	for i := range snap.PendingCount {
		idx := i * 5
		if idx+4 >= len(snap.PendingData) {
			break
		}
		target := sim.ID(snap.PendingData[idx+1]) //#nosec G115 -- round trip of a stored ID
		if mapped, ok := remap[target]; ok {
			target = mapped
		}
		s.pending.Schedule(sim.Deferred{
			DueTick: snap.PendingData[idx],
			Target:  target,
			At:      sim.Vec2{X: unfix(snap.PendingData[idx+2]), Y: unfix(snap.PendingData[idx+3])},
			Radius:  unfix(snap.PendingData[idx+4]),
		})
	}

	s.intents.Clear()
	s.rng.Restore(snap.RNGState)
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Entity IDs are excluded so two sessions that evolved identically hash
// identically even if their allocation orders briefly diverged.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)
	h = h*31 + uint64(snap.Mode)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.StartIndex)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EndlessCycle) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpeedBonus)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ServeDelay)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LaserCool)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ComboCount)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ComboDecay)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Multiplier)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleWidth)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PickupCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EffectCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PendingCount) //#nosec G115 -- hash computation

	for _, v := range snap.BallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.PickupData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.ProjectileData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for i, v := range snap.ObstacleData {
		// Skip the ID and Origin columns.
		if col := i % obstacleStride; col == 0 || col == 8 {
			continue
		}
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.EffectData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for i, v := range snap.PendingData {
		// Skip the Target column.
		if i%5 == 1 {
			continue
		}
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
