package shatter

import (
	"fmt"
	"math"

	"github.com/tetraplane/ricochet/internal/config"
	"github.com/tetraplane/ricochet/internal/sim"
)

// Session state constants
const (
	StateServe    = "serve"    // Ball on paddle, waiting for launch
	StatePlaying  = "playing"  // Ball in play
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // All levels completed (campaign only)
	StatePaused   = "paused"   // Game paused
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through levels, win at end
	ModeEndless                  // Cycle levels forever, score until game over
)

// particleCap bounds the debris pool; creating past it evicts the oldest.
const particleCap = 200

// Laser shot dimensions in cells.
const (
	shotW = 0.6
	shotH = 1.0
)

// BallMeta is the per-ball state attached to a store entity.
type BallMeta struct {
	Stuck bool // Ball rides the paddle until launched
}

// ParticleMeta is the per-particle state attached to a store entity.
type ParticleMeta struct {
	TTL   int
	Glyph rune
}

// hitSource tells the damage pipeline where a hit came from, because a
// detonator killed by another blast defers its own blast instead of
// firing it in the same pass.
type hitSource int

const (
	hitSourceBall hitSource = iota
	hitSourceProjectile
	hitSourceBlast
)

// Session owns the complete simulation state of one Shatter run: the
// entity store, clock, RNG, combo engine, effect set, and pending-effect
// queue. Each run constructs its own session; there is no shared state
// between sessions. All methods must be called from a single goroutine.
type Session struct {
	cfg        config.ShatterConfig
	difficulty *config.DifficultyManager
	mode       GameMode
	seed       int64

	width  float64 // Playfield width in cells
	height float64 // Playfield height in cells

	clock   *sim.Clock
	store   *sim.Store
	rng     *sim.RNG
	combo   *sim.Combo
	effects *sim.EffectSet
	pending *sim.DeferredQueue
	intents *sim.IntentQueue
	bus     *sim.Bus
	drops   *sim.WeightedTable[PickupKind]

	levels []*Level
	paddle sim.ID

	state        string
	lives        int
	levelIndex   int
	startIndex   int // First level of the run; restarts return here
	endlessCycle int
	tick         int
	serveDelay   int
	laserCool    int
	speedBonus   float64 // Extra base speed from endless cycles

	outcomes []sim.Outcome
}

// NewSession creates a session for the given playfield size and seed.
// A nil levels slice selects the built-in level set.
func NewSession(cfg config.ShatterConfig, mode GameMode, width, height int, seed int64, levels []*Level) *Session {
	if levels == nil {
		levels = BuiltinLevels()
	}
	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		mode:       mode,
		seed:       seed,
		width:      float64(width),
		height:     float64(height),
		clock:      sim.NewClock(),
		store:      sim.NewStore(),
		rng:        sim.NewRNG(seed),
		combo:      sim.NewCombo(),
		effects:    sim.NewEffectSet(),
		pending:    &sim.DeferredQueue{},
		intents:    &sim.IntentQueue{},
		bus:        sim.NewBus(),
		levels:     levels,
		lives:      cfg.Gameplay.Lives,
	}
	s.store.SetCap(sim.KindParticle, particleCap)
	s.drops = buildDropTable(cfg.PowerUps)

	p := s.store.Create(sim.KindPaddle)
	p.W = cfg.Paddle.Width
	p.H = 1
	p.Pos = sim.Vec2{X: (s.width - p.W) / 2, Y: s.height - 2}
	s.paddle = p.ID

	s.loadLevel(0)
	// The first serve of a run is never delayed.
	s.serveDelay = 0
	return s
}

// Bus returns the session's outcome channel for external subscribers.
func (s *Session) Bus() *sim.Bus {
	return s.bus
}

// Inject buffers a player intent; the next fixed step consumes it.
func (s *Session) Inject(in sim.Intent) {
	s.intents.Push(in)
}

// Advance accumulates frame time and simulates every whole fixed step it
// covers. Returns the batch of outcome records produced, in order; the
// same records are published on the session bus.
func (s *Session) Advance(dt float64) []sim.Outcome {
	steps := s.clock.Advance(dt)
	for range steps {
		s.step()
	}
	batch := s.outcomes
	s.outcomes = nil
	s.bus.PublishAll(batch)
	return batch
}

// State returns the current flow state (serve, playing, ...).
func (s *Session) State() string { return s.state }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.combo.Score }

// Lives returns the remaining attempts.
func (s *Session) Lives() int { return s.lives }

// LevelIndex returns the zero-based current level index.
func (s *Session) LevelIndex() int { return s.levelIndex }

// StartAtLevel restarts the run at the given zero-based level index. The
// selection sticks, so restarting after game over returns to the same
// level rather than the first one.
func (s *Session) StartAtLevel(index int) {
	if n := len(s.levels); n > 0 {
		s.startIndex = ((index % n) + n) % n
	}
	s.restart()
}

// LevelCount returns how many levels this session cycles through.
func (s *Session) LevelCount() int { return len(s.levels) }

// EndlessCycle returns how many times the level set has wrapped.
func (s *Session) EndlessCycle() int { return s.endlessCycle }

// Tick returns the current simulation tick.
func (s *Session) Tick() int { return s.tick }

// Combo returns the current combo count.
func (s *Session) Combo() int { return s.combo.Count }

// ServeDelay returns the remaining serve lockout in ticks.
func (s *Session) ServeDelay() int { return s.serveDelay }

// Effects exposes the active effect set for HUD rendering.
func (s *Session) Effects() *sim.EffectSet { return s.effects }

// Store exposes the entity store for rendering.
func (s *Session) Store() *sim.Store { return s.store }

// Paddle returns the paddle entity.
func (s *Session) Paddle() *sim.Entity {
	p, ok := s.store.Get(s.paddle)
	if !ok {
		panic("shatter: paddle entity missing from store")
	}
	return p
}

// emit appends an outcome to the batch under construction.
func (s *Session) emit(o sim.Outcome) {
	s.outcomes = append(s.outcomes, o)
}

// step advances the simulation by exactly one fixed tick.
func (s *Session) step() {
	s.handleIntents()

	if s.state == StatePaused || s.state == StateGameOver || s.state == StateWin {
		return
	}

	s.tick++

	if s.serveDelay > 0 {
		s.serveDelay--
	}

	if s.state == StateServe {
		s.followPaddle()
		return
	}

	s.expireEffects()
	s.updateObstacles()
	s.fireDeferred()
	s.updateLasers()
	s.updateProjectiles()
	s.updatePickups()
	s.updateBalls()
	s.updateFades()
	s.updateParticles()
	s.combo.Tick()

	if s.store.Len(sim.KindBall) == 0 {
		s.loseLife()
		return
	}
	if s.intactDestructible() == 0 {
		s.clearLevel()
	}
}

// handleIntents drains and applies queued player intents.
func (s *Session) handleIntents() {
	for _, in := range s.intents.Drain() {
		switch in.Kind {
		case sim.IntentMove:
			if s.state == StateServe || s.state == StatePlaying {
				s.movePaddle(in.Dir)
			}
		case sim.IntentLaunch:
			if s.state == StateServe && s.serveDelay <= 0 {
				s.launchBalls()
			}
		case sim.IntentPause:
			switch s.state {
			case StatePlaying:
				s.state = StatePaused
			case StatePaused:
				s.state = StatePlaying
			}
		case sim.IntentRestart:
			if s.state == StateGameOver || s.state == StateWin {
				s.restart()
			}
		}
	}
}

// movePaddle steers the paddle one tick's worth in the given direction.
func (s *Session) movePaddle(dir int) {
	p := s.Paddle()
	p.Pos.X += float64(dir) * s.cfg.Physics.PaddleSpeed * sim.FixedStep
	if p.Pos.X < 0 {
		p.Pos.X = 0
	}
	if p.Pos.X+p.W > s.width {
		p.Pos.X = s.width - p.W
	}
	if s.state == StateServe {
		s.followPaddle()
	}
}

// followPaddle keeps stuck balls riding the paddle.
func (s *Session) followPaddle() {
	p := s.Paddle()
	for _, ball := range s.store.All(sim.KindBall) {
		if meta := ballMeta(ball); meta.Stuck {
			ball.Pos = sim.Vec2{X: p.Pos.X + p.W/2, Y: p.Pos.Y - ball.Radius}
		}
	}
}

// launchBalls releases every stuck ball and enters play.
func (s *Session) launchBalls() {
	speed := s.ballSpeed()
	for _, ball := range s.store.All(sim.KindBall) {
		meta := ballMeta(ball)
		if !meta.Stuck {
			continue
		}
		meta.Stuck = false
		ball.Vel = sim.Vec2{X: speed / 4, Y: -speed}
	}
	s.state = StatePlaying
}

// ballSpeed returns the current nominal ball speed: config base plus
// endless-cycle bonus, scaled by difficulty and the Slow effect, clamped.
func (s *Session) ballSpeed() float64 {
	speed := s.difficulty.Speed(s.cfg.Physics.BallSpeed+s.speedBonus, s.combo.Score, s.tick)
	if s.effects.Active(EffectSlow) {
		speed *= s.cfg.PowerUps.SlowScale
	}
	if speed > s.cfg.Physics.MaxBallSpeed {
		speed = s.cfg.Physics.MaxBallSpeed
	}
	return speed
}

// expireEffects ticks the effect set and reverts expired modifiers.
func (s *Session) expireEffects() {
	for _, ref := range s.effects.Tick() {
		s.emit(sim.EffectExpiredOutcome{Effect: ref})
		switch ref {
		case EffectWiden:
			s.applyPaddleWidth()
		case EffectSlow:
			s.rescaleBalls(1 / s.cfg.PowerUps.SlowScale)
		case EffectDouble:
			s.applyMultiplier()
		}
	}
}

// applyPaddleWidth recomputes paddle width from the active effect set.
func (s *Session) applyPaddleWidth() {
	p := s.Paddle()
	width := s.cfg.Paddle.Width
	if s.effects.Active(EffectWiden) {
		width += s.cfg.Paddle.WidenAmount
	}
	if width < s.cfg.Paddle.MinWidth {
		width = s.cfg.Paddle.MinWidth
	}
	if width > s.cfg.Paddle.MaxWidth {
		width = s.cfg.Paddle.MaxWidth
	}
	center := p.Pos.X + p.W/2
	p.W = width
	p.Pos.X = center - width/2
	if p.Pos.X < 0 {
		p.Pos.X = 0
	}
	if p.Pos.X+p.W > s.width {
		p.Pos.X = s.width - p.W
	}
}

// applyMultiplier recomputes the external score multiplier from effects.
func (s *Session) applyMultiplier() {
	if s.effects.Active(EffectDouble) {
		s.combo.Multiplier = 2
	} else {
		s.combo.Multiplier = 1
	}
}

// rescaleBalls multiplies every live ball velocity, preserving direction.
func (s *Session) rescaleBalls(factor float64) {
	for _, ball := range s.store.All(sim.KindBall) {
		if !ballMeta(ball).Stuck {
			ball.Vel = ball.Vel.Scale(factor)
		}
	}
}

// updateObstacles advances cycling bonuses and relocating glides.
func (s *Session) updateObstacles() {
	for _, e := range s.store.All(sim.KindObstacle) {
		ob := obstacleData(e)
		ob.AdvanceCycle(s.cfg.Obstacles.CycleTicks)
		if ob.Gliding {
			s.glide(e, ob)
		}
	}
}

// glide moves a relocating obstacle toward its target at fixed speed.
func (s *Session) glide(e *sim.Entity, ob *Obstacle) {
	delta := ob.Target.Sub(e.Pos)
	stride := s.cfg.Obstacles.GlideSpeed * sim.FixedStep
	if delta.Len() <= stride {
		e.Pos = ob.Target
		ob.Gliding = false
		return
	}
	e.Pos = e.Pos.Add(delta.Scale(stride / delta.Len()))
}

// fireDeferred runs blasts whose stagger delay has elapsed. Each blast
// resolves against the store as it is now, not as it was when scheduled.
func (s *Session) fireDeferred() {
	for _, d := range s.pending.Due(s.tick) {
		s.blast(d.At, d.Radius, d.Target)
	}
}

// updateLasers fires paddle projectiles while the Laser effect is active.
func (s *Session) updateLasers() {
	if !s.effects.Active(EffectLaser) {
		return
	}
	s.laserCool--
	if s.laserCool > 0 {
		return
	}
	s.laserCool = s.cfg.PowerUps.LaserInterval

	p := s.Paddle()
	for _, x := range []float64{p.Pos.X + 0.5, p.Pos.X + p.W - 0.5} {
		shot := s.store.Create(sim.KindProjectile)
		shot.W = shotW
		shot.H = shotH
		shot.Pos = sim.Vec2{X: x - shotW/2, Y: p.Pos.Y - 1}
		shot.Vel = sim.Vec2{Y: -s.cfg.Physics.LaserSpeed}
		s.emit(sim.SpawnOutcome{Entity: shot.ID, Kind: sim.KindProjectile, At: shot.Pos})
	}
}

// updateProjectiles moves laser shots and applies their damage.
func (s *Session) updateProjectiles() {
	for _, shot := range s.store.All(sim.KindProjectile) {
		shot.Pos = shot.Pos.Add(shot.Vel.Scale(sim.FixedStep))
		if shot.Pos.Y+shot.H < 0 {
			s.store.Destroy(shot.ID)
			continue
		}
		if target, _, ok := sim.ResolveProjectile(shot, s.collidables()); ok {
			s.store.Destroy(shot.ID)
			s.damage(target.ID, hitSourceProjectile)
		}
	}
}

// updatePickups drops pickups toward the paddle and handles catches.
func (s *Session) updatePickups() {
	p := s.Paddle()
	for _, pk := range s.store.All(sim.KindPickup) {
		pk.Pos = pk.Pos.Add(pk.Vel.Scale(sim.FixedStep))
		if pk.Pos.Y-pk.Radius > s.height {
			s.store.Destroy(pk.ID)
			continue
		}
		if _, ok := sim.CircleVsBox(pk.Circle(), p.Box()); ok {
			kind := pickupData(pk)
			s.store.Destroy(pk.ID)
			s.emit(sim.PickupCollectedOutcome{Pickup: sim.PickupRef(kind), At: pk.Pos})
			s.activatePickup(kind)
		}
	}
}

// updateBalls integrates ball motion and resolves all ball collisions.
func (s *Session) updateBalls() {
	mega := s.effects.Active(EffectMega)
	obstacles := s.collidables()

	for _, ball := range s.store.All(sim.KindBall) {
		if ballMeta(ball).Stuck {
			continue
		}

		ball.Pos = ball.Pos.Add(ball.Vel.Scale(sim.FixedStep))

		// Side and top walls reflect; the floor costs the ball.
		r := ball.Radius
		if ball.Pos.X-r < 0 {
			ball.Pos.X = r
			ball.Vel.X = math.Abs(ball.Vel.X)
		}
		if ball.Pos.X+r > s.width {
			ball.Pos.X = s.width - r
			ball.Vel.X = -math.Abs(ball.Vel.X)
		}
		if ball.Pos.Y-r < 0 {
			ball.Pos.Y = r
			ball.Vel.Y = math.Abs(ball.Vel.Y)
		}
		if ball.Pos.Y-r > s.height {
			s.store.Destroy(ball.ID)
			continue
		}

		if s.bounceOffPaddle(ball) {
			continue
		}

		if target, _, ok := sim.ResolveMover(ball, obstacles, mega); ok {
			s.damage(target.ID, hitSourceBall)
			// The struck obstacle may be gone or moved; rebuild for
			// the next ball so it cannot hit a ghost.
			obstacles = s.collidables()
		}
	}
}

// bounceOffPaddle reflects a descending ball off the paddle with english:
// the contact offset from the paddle center steers the outgoing angle.
func (s *Session) bounceOffPaddle(ball *sim.Entity) bool {
	p := s.Paddle()
	if ball.Vel.Y <= 0 {
		return false
	}
	if _, ok := sim.CircleVsBox(ball.Circle(), p.Box()); !ok {
		return false
	}
	if ball.Pos.Y >= p.Box().Center().Y {
		return false
	}

	speed := s.ballSpeed()
	half := p.W / 2
	offset := (ball.Pos.X - (p.Pos.X + half)) / half
	if offset < -1 {
		offset = -1
	}
	if offset > 1 {
		offset = 1
	}

	vx := offset * speed * 0.75
	vy := -math.Sqrt(speed*speed - vx*vx)
	ball.Vel = sim.Vec2{X: vx, Y: vy}
	ball.Pos.Y = p.Pos.Y - ball.Radius
	return true
}

// collidables builds the resolver's view of obstacles that still collide.
// Destroying obstacles are already dead and excluded.
func (s *Session) collidables() []sim.Collidable {
	out := make([]sim.Collidable, 0, s.store.Len(sim.KindObstacle))
	for _, e := range s.store.All(sim.KindObstacle) {
		ob := obstacleData(e)
		if ob.Phase != PhaseIntact {
			continue
		}
		out = append(out, sim.Collidable{
			ID:           e.ID,
			Box:          e.Box(),
			Destructible: ob.Destructible(),
		})
	}
	return out
}

// damage applies one hit to an obstacle. Stale IDs and already-destroying
// targets are silent no-ops; an indestructible target shrugs the hit off.
func (s *Session) damage(id sim.ID, source hitSource) {
	e, ok := s.store.Get(id)
	if !ok {
		return
	}
	ob := obstacleData(e)
	if ob.Phase != PhaseIntact || !ob.Destructible() {
		return
	}
	if ob.Hits <= 0 {
		panic(fmt.Sprintf("shatter: obstacle %d hit budget underflow", id))
	}

	ob.Hits--
	if ob.Hits > 0 {
		s.survivingHit(e, ob)
		return
	}
	s.destroyObstacle(e, ob, source, 1)
}

// survivingHit runs the first-hit behaviors of obstacles that outlive a hit.
func (s *Session) survivingHit(e *sim.Entity, ob *Obstacle) {
	switch ob.Kind {
	case ObstacleRelocating:
		s.relocate(e, ob)
	case ObstacleDuplicator:
		if !ob.Duplicated {
			ob.Duplicated = true
			s.duplicate(e, ob)
		}
	}
}

// relocate samples a fresh position and starts the glide toward it.
// Sampling exhaustion silently leaves the obstacle where it is.
func (s *Session) relocate(e *sim.Entity, ob *Obstacle) {
	target, ok := s.samplePlacement(e.W, e.H, e.Box().Center(), e.ID)
	if !ok {
		return
	}
	from := e.Box().Center()
	ob.Target = target
	ob.Gliding = true
	to := sim.Box{X: target.X, Y: target.Y, W: e.W, H: e.H}.Center()
	s.emit(sim.RelocationOutcome{Obstacle: e.ID, From: from, To: to})
}

// duplicate spawns a copy of a duplicator obstacle, subject to the root's
// live-copy cap. Copies belong to the original root: duplicating a copy
// still counts against the same family budget.
func (s *Session) duplicate(e *sim.Entity, ob *Obstacle) {
	rootID := e.ID
	rootOb := ob
	if ob.Origin != 0 {
		rootEnt, ok := s.store.Get(ob.Origin)
		if !ok {
			// The family root is gone; the orphan cannot enforce the
			// cap, so it simply stops duplicating.
			return
		}
		rootID = rootEnt.ID
		rootOb = obstacleData(rootEnt)
	}

	rootOb.PruneCopies(s.store)
	if len(rootOb.Copies) >= s.cfg.Obstacles.DuplicateCap {
		return
	}

	pos, ok := s.samplePlacement(e.W, e.H, e.Box().Center(), e.ID)
	if !ok {
		return
	}

	clone := s.store.Create(sim.KindObstacle)
	clone.W = e.W
	clone.H = e.H
	clone.Pos = pos
	cloneOb := NewObstacle(ObstacleDuplicator)
	cloneOb.Cycle = s.cfg.Obstacles.CycleTicks
	cloneOb.Origin = rootID
	clone.Data = cloneOb

	rootOb.Copies = append(rootOb.Copies, clone.ID)
	s.emit(sim.DuplicationOutcome{Origin: rootID, Clone: clone.ID, At: clone.Box().Center()})
}

// samplePlacement tries up to the configured number of uniform positions in
// the playfield's upper half. A candidate is rejected when it would overlap
// any settled obstacle (with padding) or land too close to the origin of
// the jump. Returns false when every attempt fails.
func (s *Session) samplePlacement(w, h float64, origin sim.Vec2, self sim.ID) (sim.Vec2, bool) {
	pad := s.cfg.Obstacles.SamplePadding
	minDist := s.cfg.Obstacles.SampleMinDist
	maxX := s.width - pad - w
	maxY := s.height/2 - h
	if maxX <= pad || maxY <= 1 {
		return sim.Vec2{}, false
	}

	for range s.cfg.Obstacles.SampleAttempts {
		pos := sim.Vec2{
			X: s.rng.Range(pad, maxX),
			Y: s.rng.Range(1, maxY),
		}
		candidate := sim.Box{X: pos.X, Y: pos.Y, W: w, H: h}
		if candidate.Center().DistSq(origin) < minDist*minDist {
			continue
		}
		if s.placementBlocked(candidate.Expand(pad), self) {
			continue
		}
		return pos, true
	}
	return sim.Vec2{}, false
}

// placementBlocked reports whether a candidate box overlaps any settled
// obstacle. Gliding obstacles are ignored; they will be elsewhere soon.
func (s *Session) placementBlocked(candidate sim.Box, self sim.ID) bool {
	blocked := false
	s.store.Query(sim.KindObstacle, func(e *sim.Entity) bool {
		if e.ID == self {
			return true
		}
		ob := obstacleData(e)
		if ob.Phase != PhaseIntact || ob.Gliding {
			return true
		}
		if _, overlap := sim.BoxVsBox(candidate, e.Box()); overlap {
			blocked = true
			return false
		}
		return true
	})
	return blocked
}

// destroyObstacle moves an obstacle to Destroying, scores it, and runs its
// on-destruction effects. bonusScale doubles the base points when a root is
// dragged down by its duplicate.
func (s *Session) destroyObstacle(e *sim.Entity, ob *Obstacle, source hitSource, bonusScale int) {
	ob.Phase = PhaseDestroying
	ob.Fade = s.cfg.Obstacles.FadeTicks
	ob.Gliding = false

	center := e.Box().Center()
	award := s.combo.RegisterHit(PointsFor(ob.Kind) * bonusScale)
	s.emit(sim.ScoreOutcome{Points: award, Combo: s.combo.Count, At: center})
	s.spawnDebris(center)

	switch ob.Kind {
	case ObstaclePowerDrop:
		s.spawnPickup(center, ob.Payload)
	case ObstacleCyclingBonus:
		// The displayed pickup is granted directly, no catch required.
		s.emit(sim.PickupCollectedOutcome{Pickup: sim.PickupRef(ob.CurrentPickup()), At: center})
		s.activatePickup(ob.CurrentPickup())
	case ObstacleDetonator:
		radius := s.cfg.Obstacles.BlastScale * e.W
		if source == hitSourceBlast {
			// Chained explosion: fire after the stagger, against
			// whatever the playfield looks like then.
			s.pending.Schedule(sim.Deferred{
				DueTick: s.tick + sim.DetonationStagger,
				Target:  e.ID,
				At:      center,
				Radius:  radius,
			})
		} else {
			s.blast(center, radius, e.ID)
		}
	case ObstacleCatalyst:
		s.effects.Activate(EffectCatalyst, s.cfg.Obstacles.CatalystTicks)
		s.emit(sim.CatalystOutcome{Ticks: s.cfg.Obstacles.CatalystTicks})
	case ObstacleDuplicator:
		s.duplicatorDestroyed(e, ob, source)
	}

	if ob.Kind != ObstaclePowerDrop && ob.Kind != ObstacleCyclingBonus {
		s.maybeDrop(center)
	}
}

// duplicatorDestroyed untracks a dying copy and, if its root still stands,
// drags the root down with it for double points.
func (s *Session) duplicatorDestroyed(e *sim.Entity, ob *Obstacle, source hitSource) {
	if ob.Origin == 0 {
		return
	}
	rootEnt, ok := s.store.Get(ob.Origin)
	if !ok {
		return
	}
	rootOb := obstacleData(rootEnt)
	rootOb.RemoveCopy(e.ID)
	if rootOb.Phase != PhaseIntact {
		return
	}
	s.emit(sim.OriginDestroyedOutcome{Origin: rootEnt.ID, Bonus: 2 * PointsFor(ObstacleDuplicator)})
	rootOb.Hits = 0
	s.destroyObstacle(rootEnt, rootOb, source, 2)
}

// maybeDrop rolls the per-destruction pickup chance. While the catalyst
// window is armed every destruction drops.
func (s *Session) maybeDrop(at sim.Vec2) {
	guaranteed := s.effects.Active(EffectCatalyst)
	if !guaranteed && s.rng.Float64() >= s.cfg.PowerUps.DropChance {
		return
	}
	kind, ok := s.drops.Pick(s.rng)
	if !ok {
		return
	}
	s.spawnPickup(at, kind)
}

// spawnPickup creates a falling pickup entity.
func (s *Session) spawnPickup(at sim.Vec2, kind PickupKind) {
	pk := s.store.Create(sim.KindPickup)
	pk.Radius = 0.5
	pk.Pos = at
	pk.Vel = sim.Vec2{Y: s.cfg.Physics.PickupFall}
	pk.Data = kind
	s.emit(sim.PickupDropOutcome{Pickup: sim.PickupRef(kind), At: at})
}

// spawnDebris scatters short-lived particles from a destruction point.
func (s *Session) spawnDebris(at sim.Vec2) {
	glyphs := []rune{'*', '+', '·', '˟'}
	count := 4 + s.rng.Intn(3)
	for i := 0; i < count; i++ {
		p := s.store.Create(sim.KindParticle)
		p.Pos = at
		p.Vel = sim.Vec2{
			X: s.rng.Range(-8, 8),
			Y: s.rng.Range(-10, 2),
		}
		p.Data = &ParticleMeta{
			TTL:   18 + s.rng.Intn(12),
			Glyph: glyphs[s.rng.Intn(len(glyphs))],
		}
	}
}

// blast applies one damage step to every intact obstacle within the radius.
// Detonators killed by the blast defer their own explosions, so a chain
// advances one stagger at a time and terminates naturally.
func (s *Session) blast(at sim.Vec2, radius float64, source sim.ID) {
	s.emit(sim.DetonationOutcome{Source: source, At: at, Radius: radius})

	var victims []sim.ID
	for _, e := range s.store.All(sim.KindObstacle) {
		if e.ID == source {
			continue
		}
		ob := obstacleData(e)
		if ob.Phase != PhaseIntact || !ob.Destructible() {
			continue
		}
		if e.Box().Center().DistSq(at) <= radius*radius {
			victims = append(victims, e.ID)
		}
	}
	for _, id := range victims {
		s.damage(id, hitSourceBlast)
	}
}

// activatePickup applies a caught or granted pickup.
func (s *Session) activatePickup(kind PickupKind) {
	switch kind {
	case PickupMulti:
		s.splitBalls(s.cfg.PowerUps.MultiCount)
		return
	case PickupLife:
		s.lives++
		return
	}

	ref := effectFor(kind)
	duration := durationFor(s.cfg.PowerUps, kind)
	wasSlow := s.effects.Active(EffectSlow)
	newly := s.effects.Activate(ref, duration)
	s.emit(sim.EffectStartedOutcome{Effect: ref, Refreshed: !newly})

	switch kind {
	case PickupWiden:
		s.applyPaddleWidth()
	case PickupSlow:
		if !wasSlow {
			s.rescaleBalls(s.cfg.PowerUps.SlowScale)
		}
	case PickupLaser:
		if newly {
			s.laserCool = 0
		}
	case PickupDouble:
		s.applyMultiplier()
	}
}

// splitBalls clones extra balls off the first live one, fanning the copies
// out at spread angles.
func (s *Session) splitBalls(count int) {
	var source *sim.Entity
	for _, ball := range s.store.All(sim.KindBall) {
		if !ballMeta(ball).Stuck {
			source = ball
			break
		}
	}
	if source == nil {
		return
	}

	speed := source.Vel.Len()
	if speed == 0 {
		speed = s.ballSpeed()
	}
	angle := math.Atan2(source.Vel.Y, source.Vel.X)

	for i := 0; i < count; i++ {
		spread := 0.5 * float64(i+1)
		if i%2 == 1 {
			spread = -spread
		}
		clone := s.store.Create(sim.KindBall)
		clone.Radius = source.Radius
		clone.Pos = source.Pos
		clone.Vel = sim.Vec2{
			X: speed * math.Cos(angle+spread),
			Y: speed * math.Sin(angle+spread),
		}
		clone.Data = &BallMeta{}
		s.emit(sim.SpawnOutcome{Entity: clone.ID, Kind: sim.KindBall, At: clone.Pos})
	}
}

// updateFades counts down destroying obstacles and removes finished ones.
func (s *Session) updateFades() {
	for _, e := range s.store.All(sim.KindObstacle) {
		ob := obstacleData(e)
		if ob.Phase != PhaseDestroying {
			continue
		}
		ob.Fade--
		if ob.Fade <= 0 {
			ob.Phase = PhaseDestroyed
			s.store.Destroy(e.ID)
		}
	}
}

// updateParticles ages debris with a touch of gravity.
func (s *Session) updateParticles() {
	for _, p := range s.store.All(sim.KindParticle) {
		meta := particleMeta(p)
		meta.TTL--
		if meta.TTL <= 0 || p.Pos.Y > s.height {
			s.store.Destroy(p.ID)
			continue
		}
		p.Vel.Y += 30 * sim.FixedStep
		p.Pos = p.Pos.Add(p.Vel.Scale(sim.FixedStep))
	}
}

// intactDestructible counts obstacles that still need destroying.
func (s *Session) intactDestructible() int {
	count := 0
	for _, e := range s.store.All(sim.KindObstacle) {
		ob := obstacleData(e)
		if ob.Phase == PhaseIntact && ob.Destructible() {
			count++
		}
	}
	return count
}

// loseLife handles the last ball leaving the playfield.
func (s *Session) loseLife() {
	s.lives--
	s.emit(sim.LifeLostOutcome{Remaining: s.lives})

	if s.lives <= 0 {
		s.state = StateGameOver
		s.emit(sim.GameOverOutcome{Score: s.combo.Score})
		return
	}
	s.resetAttempt()
}

// resetAttempt rebuilds the serve state after a lost life: volatile
// entities and timers are dropped, obstacles and score survive.
func (s *Session) resetAttempt() {
	s.clearKind(sim.KindBall)
	s.clearKind(sim.KindPickup)
	s.clearKind(sim.KindProjectile)
	s.clearKind(sim.KindParticle)

	// Mid-fade obstacles finish instantly; the new attempt starts clean.
	for _, e := range s.store.All(sim.KindObstacle) {
		if obstacleData(e).Phase == PhaseDestroying {
			s.store.Destroy(e.ID)
		}
	}

	s.combo.ResetForNewAttempt()
	s.effects.Clear()
	s.pending.Clear()
	s.intents.Clear()
	s.laserCool = 0
	s.applyPaddleWidth()
	s.applyMultiplier()

	s.placeBallOnPaddle()
	s.state = StateServe
	s.serveDelay = s.cfg.Gameplay.ServeDelay
}

// clearKind destroys every live entity of a kind.
func (s *Session) clearKind(kind sim.Kind) {
	for _, e := range s.store.All(kind) {
		s.store.Destroy(e.ID)
	}
}

// placeBallOnPaddle creates a fresh stuck ball riding the paddle.
func (s *Session) placeBallOnPaddle() {
	p := s.Paddle()
	ball := s.store.Create(sim.KindBall)
	ball.Radius = s.cfg.Physics.BallRadius
	ball.Pos = sim.Vec2{X: p.Pos.X + p.W/2, Y: p.Pos.Y - ball.Radius}
	ball.Data = &BallMeta{Stuck: true}
}

// clearLevel advances to the next level, or wins the campaign.
func (s *Session) clearLevel() {
	s.emit(sim.LevelClearOutcome{Level: s.levelIndex})
	s.levelIndex++

	if s.levelIndex >= len(s.levels) {
		if s.mode == ModeCampaign {
			s.state = StateWin
			s.emit(sim.GameOverOutcome{Score: s.combo.Score})
			return
		}
		// Endless: wrap around and speed the base ball up a notch.
		s.levelIndex = 0
		s.endlessCycle++
		s.speedBonus += 1.5
	}

	s.loadLevel(s.levelIndex)
}

// loadLevel instantiates a level layout into the store and enters serve.
func (s *Session) loadLevel(index int) {
	s.clearKind(sim.KindObstacle)
	s.clearKind(sim.KindBall)
	s.clearKind(sim.KindPickup)
	s.clearKind(sim.KindProjectile)
	s.clearKind(sim.KindParticle)

	s.combo.ResetForNewAttempt()
	s.effects.Clear()
	s.pending.Clear()
	s.intents.Clear()
	s.laserCool = 0
	s.applyPaddleWidth()
	s.applyMultiplier()

	lvl := s.levels[index%len(s.levels)]
	brickW := s.width / float64(lvl.Width)
	diffLevel := s.difficulty.Level(s.combo.Score, s.tick)

	for row := range lvl.Height {
		for col := range lvl.Width {
			cell := lvl.At(row, col)
			if cell.Empty {
				continue
			}
			kind := cell.Kind
			if kind == obstacleRandomMarker {
				kind = rollRandomKind(s.rng, diffLevel)
			}

			e := s.store.Create(sim.KindObstacle)
			e.W = brickW
			e.H = 1
			e.Pos = sim.Vec2{X: float64(col) * brickW, Y: 1 + float64(row)}
			ob := NewObstacle(kind)
			ob.Cycle = s.cfg.Obstacles.CycleTicks
			if kind == ObstaclePowerDrop {
				if payload, ok := s.drops.Pick(s.rng); ok {
					ob.Payload = payload
				}
			}
			e.Data = ob
		}
	}

	s.placeBallOnPaddle()
	s.state = StateServe
	s.serveDelay = s.cfg.Gameplay.ServeDelay
}

// restart begins a brand-new run with the original seed, so restarting
// replays identically given identical inputs.
func (s *Session) restart() {
	s.rng = sim.NewRNG(s.seed)
	s.combo.ResetAll()
	s.lives = s.cfg.Gameplay.Lives
	s.levelIndex = s.startIndex
	s.endlessCycle = 0
	s.speedBonus = 0
	s.tick = 0
	s.clock.Reset()

	p := s.Paddle()
	p.W = s.cfg.Paddle.Width
	p.Pos = sim.Vec2{X: (s.width - p.W) / 2, Y: s.height - 2}

	s.loadLevel(s.startIndex)
	s.serveDelay = 0
}

// ballMeta extracts the BallMeta from a store entity.
func ballMeta(e *sim.Entity) *BallMeta {
	m, ok := e.Data.(*BallMeta)
	if !ok {
		panic("shatter: ball entity without ball data")
	}
	return m
}

// particleMeta extracts the ParticleMeta from a store entity.
func particleMeta(e *sim.Entity) *ParticleMeta {
	m, ok := e.Data.(*ParticleMeta)
	if !ok {
		panic("shatter: particle entity without particle data")
	}
	return m
}
