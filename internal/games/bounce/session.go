package bounce

import (
	"github.com/tetraplane/ricochet/internal/config"
	"github.com/tetraplane/ricochet/internal/sim"
)

// Flow states for a Bounce run.
const (
	StateReady    = "ready"    // Ball resting on the base platform
	StatePlaying  = "playing"  // Climbing
	StateGameOver = "gameover" // Every ball fell out of view
	StatePaused   = "paused"   // Game paused
)

// particleCap bounds the debris pool; creating past it evicts the oldest.
const particleCap = 120

// camFollowFrac places the camera's follow line this far down from the
// view top. A ball climbing past the line drags the camera with it.
const camFollowFrac = 0.4

// cullMargin is how far below the view a platform may trail before it is
// removed for good.
const cullMargin = 2.0

// baseWidth is the width of the guaranteed starting platform.
const baseWidth = 12.0

// steerDamping bleeds horizontal speed on ticks without input.
const steerDamping = 0.85

// BallMeta is the per-ball state attached to a store entity.
type BallMeta struct {
	Clone  bool // Spawned by a splitting platform; clones never split again
	Invert int  // Remaining inverted-gravity ticks
}

// ParticleMeta is the per-particle state attached to a store entity.
type ParticleMeta struct {
	TTL   int
	Glyph rune
}

// Session is one run of the Bounce climb. It owns the rules plus the
// entity store, clock, RNG, combo engine, camera, and platform spawner.
// Each run constructs its own session; there is no shared state between
// sessions. All methods must be called from a single goroutine.
type Session struct {
	cfg        config.BounceConfig
	difficulty *config.DifficultyManager
	seed       int64

	width float64 // Playfield width in cells
	viewH float64 // Visible playfield height in cells

	clock   *sim.Clock
	store   *sim.Store
	rng     *sim.RNG
	combo   *sim.Combo
	intents *sim.IntentQueue
	bus     *sim.Bus
	spawn   Spawner

	state  string
	tick   int
	camY   float64 // World Y of the view's top edge; only ever decreases
	startY float64 // Ball's starting height, the zero point of the climb
	best   float64 // Smallest world Y any ball has reached
	steer  int     // Horizontal input this tick: -1, 0, or +1

	outcomes []sim.Outcome
}

// NewSession creates a session for the given playfield size and seed.
func NewSession(cfg config.BounceConfig, width, height int, seed int64) *Session {
	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		seed:       seed,
		width:      float64(width),
		viewH:      float64(height),
		clock:      sim.NewClock(),
		store:      sim.NewStore(),
		rng:        sim.NewRNG(seed),
		combo:      sim.NewCombo(),
		intents:    &sim.IntentQueue{},
		bus:        sim.NewBus(),
	}
	s.store.SetCap(sim.KindParticle, particleCap)
	s.seedWorld()
	return s
}

// seedWorld builds the opening scene: the wide base platform, the ball
// resting on it, and enough tower above to fill the view.
func (s *Session) seedWorld() {
	s.camY = 0

	baseY := s.viewH - 3
	base := s.store.Create(sim.KindPlatform)
	base.W = baseWidth
	base.H = 1
	base.Pos = sim.Vec2{X: (s.width - baseWidth) / 2, Y: baseY}
	base.Data = &PlatformMeta{Kind: PlatformNormal}

	ball := s.store.Create(sim.KindBall)
	ball.Radius = s.cfg.Physics.BallRadius
	ball.Pos = sim.Vec2{X: s.width / 2, Y: baseY - ball.Radius}
	ball.Data = &BallMeta{}

	s.startY = ball.Pos.Y
	s.best = ball.Pos.Y

	s.spawn.NextY = baseY - float64(s.platformGap())
	s.topUpPlatforms()

	s.state = StateReady
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

// State returns the current flow state (ready, playing, ...).
func (s *Session) State() string { return s.state }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.combo.Score }

// Tick returns the current simulation tick.
func (s *Session) Tick() int { return s.tick }

// Combo returns the current combo count.
func (s *Session) Combo() int { return s.combo.Count }

// Height returns how many cells the run has climbed above the start.
func (s *Session) Height() int {
	h := int(s.startY - s.best)
	if h < 0 {
		h = 0
	}
	return h
}

// CameraY returns the world Y of the view's top edge.
func (s *Session) CameraY() float64 { return s.camY }

// Balls returns how many balls are still in play.
func (s *Session) Balls() int { return s.store.Len(sim.KindBall) }

// Store exposes the entity store for rendering.
func (s *Session) Store() *sim.Store { return s.store }

// emit appends an outcome to the batch under construction.
func (s *Session) emit(o sim.Outcome) {
	s.outcomes = append(s.outcomes, o)
}

// step advances the simulation by exactly one fixed tick.
func (s *Session) step() {
	s.handleIntents()

	if s.state == StatePaused || s.state == StateGameOver {
		return
	}

	s.tick++

	if s.state == StateReady {
		return
	}

	s.updateBalls()
	s.contactPlatforms()
	s.updateMovers()
	s.updateCamera()
	s.cullBelow()
	s.topUpPlatforms()
	s.updateParticles()
	s.combo.Tick()

	if s.store.Len(sim.KindBall) == 0 {
		s.finish()
	}
}

// handleIntents drains and applies queued player intents.
func (s *Session) handleIntents() {
	for _, in := range s.intents.Drain() {
		switch in.Kind {
		case sim.IntentMove:
			if s.state == StatePlaying {
				s.steer = in.Dir
			}
		case sim.IntentLaunch:
			if s.state == StateReady {
				s.launch()
			}
		case sim.IntentPause:
			switch s.state {
			case StatePlaying:
				s.state = StatePaused
			case StatePaused:
				s.state = StatePlaying
			}
		case sim.IntentRestart:
			if s.state == StateGameOver {
				s.restart()
			}
		}
	}
}

// launch gives every resting ball its first bounce and enters play.
func (s *Session) launch() {
	for _, ball := range s.store.All(sim.KindBall) {
		ball.Vel.Y = -s.cfg.Physics.BounceSpeed
	}
	s.state = StatePlaying
}

// updateBalls applies steering, gravity, and integration to every ball.
func (s *Session) updateBalls() {
	for _, ball := range s.store.All(sim.KindBall) {
		meta := ballMeta(ball)

		if s.steer != 0 {
			ball.Vel.X = float64(s.steer) * s.cfg.Physics.SteerSpeed
		} else {
			ball.Vel.X *= steerDamping
			if ball.Vel.X > -0.5 && ball.Vel.X < 0.5 {
				ball.Vel.X = 0
			}
		}

		if meta.Invert > 0 {
			meta.Invert--
			ball.Vel.Y -= s.cfg.Physics.Gravity * sim.FixedStep
			if ball.Vel.Y < -s.cfg.Physics.MaxFallSpeed {
				ball.Vel.Y = -s.cfg.Physics.MaxFallSpeed
			}
		} else {
			ball.Vel.Y += s.cfg.Physics.Gravity * sim.FixedStep
			if ball.Vel.Y > s.cfg.Physics.MaxFallSpeed {
				ball.Vel.Y = s.cfg.Physics.MaxFallSpeed
			}
		}

		ball.Pos = ball.Pos.Add(ball.Vel.Scale(sim.FixedStep))

		// The playfield wraps horizontally.
		if ball.Pos.X < 0 {
			ball.Pos.X += s.width
		}
		if ball.Pos.X >= s.width {
			ball.Pos.X -= s.width
		}

		if ball.Pos.Y < s.best {
			s.best = ball.Pos.Y
		}
	}
	s.steer = 0
}

// contactPlatforms lands descending balls on the first platform they
// overlap. A ball sweeping upward passes straight through.
func (s *Session) contactPlatforms() {
	for _, ball := range s.store.All(sim.KindBall) {
		for _, plat := range s.store.All(sim.KindPlatform) {
			if _, ok := sim.PlatformContact(ball, plat.Box()); !ok {
				continue
			}
			s.land(ball, plat)
			break
		}
	}
}

// land applies one platform contact: separation, first-touch scoring, the
// bounce itself, and the kind's side effect.
func (s *Session) land(ball, plat *sim.Entity) {
	meta := platformData(plat)
	bm := ballMeta(ball)

	ball.Pos.Y = plat.Pos.Y - ball.Radius

	if !meta.Consumed {
		meta.Consumed = true
		pts := s.combo.RegisterHit(PointsFor(meta.Kind))
		s.emit(sim.ScoreOutcome{Points: pts, Combo: s.combo.Count, At: plat.Box().Center()})
	}

	if meta.Kind == PlatformPropulsive {
		ball.Vel.Y = -s.cfg.Physics.PropelSpeed
	} else {
		ball.Vel.Y = -s.cfg.Physics.BounceSpeed
	}

	switch meta.Kind {
	case PlatformBreakable:
		s.emit(sim.PlatformBrokenOutcome{Platform: plat.ID, At: plat.Box().Center()})
		s.spawnDebris(plat.Box().Center())
		s.store.Destroy(plat.ID)
	case PlatformGravity:
		// Re-contact restarts the countdown rather than stacking.
		bm.Invert = s.cfg.Platforms.GravityTicks
		s.emit(sim.GravityFlipOutcome{Ball: ball.ID, Ticks: bm.Invert})
	case PlatformSplitting:
		if !bm.Clone {
			s.split(ball)
		}
	}
}

// split clones a ball with mirrored horizontal velocity. Clones never
// split again, so one landing cannot cascade into a swarm.
func (s *Session) split(parent *sim.Entity) {
	clone := s.store.Create(sim.KindBall)
	clone.Radius = parent.Radius
	clone.Pos = parent.Pos
	clone.Vel = sim.Vec2{X: -parent.Vel.X, Y: parent.Vel.Y}
	clone.Data = &BallMeta{Clone: true}
	s.emit(sim.SpawnOutcome{Entity: clone.ID, Kind: sim.KindBall, At: clone.Pos})
	s.emit(sim.SplitOutcome{Parent: parent.ID, Clone: clone.ID})
}

// updateMovers drifts moving platforms and reverses them at the edges.
func (s *Session) updateMovers() {
	for _, plat := range s.store.All(sim.KindPlatform) {
		if plat.Vel.X == 0 {
			continue
		}
		plat.Pos.X += plat.Vel.X * sim.FixedStep
		if plat.Pos.X < 0 {
			plat.Pos.X = 0
			plat.Vel.X = -plat.Vel.X
		}
		if plat.Pos.X+plat.W > s.width {
			plat.Pos.X = s.width - plat.W
			plat.Vel.X = -plat.Vel.X
		}
	}
}

// updateCamera scrolls the view upward to chase the highest ball. The
// camera never scrolls back down, so height surrendered is height lost.
func (s *Session) updateCamera() {
	top, ok := s.highestBall()
	if !ok {
		return
	}
	lead := s.viewH * camFollowFrac
	if top < s.camY+lead {
		s.camY = top - lead
	}
}

// highestBall returns the smallest world Y among live balls.
func (s *Session) highestBall() (float64, bool) {
	best := 0.0
	found := false
	for _, ball := range s.store.All(sim.KindBall) {
		if !found || ball.Pos.Y < best {
			best = ball.Pos.Y
			found = true
		}
	}
	return best, found
}

// cullBelow removes what the camera has left behind: platforms a short
// margin under the view, and any ball that has fallen out entirely.
func (s *Session) cullBelow() {
	floor := s.camY + s.viewH
	for _, plat := range s.store.All(sim.KindPlatform) {
		if plat.Pos.Y > floor+cullMargin {
			s.store.Destroy(plat.ID)
		}
	}
	for _, ball := range s.store.All(sim.KindBall) {
		if ball.Pos.Y-ball.Radius > floor {
			s.store.Destroy(ball.ID)
			if left := s.store.Len(sim.KindBall); left > 0 {
				s.emit(sim.LifeLostOutcome{Remaining: left})
			}
		}
	}
}

// finish ends the run once the last ball is gone.
func (s *Session) finish() {
	s.state = StateGameOver
	s.emit(sim.GameOverOutcome{Score: s.combo.Score})
}

// updateParticles ages debris and drops what the camera left behind.
func (s *Session) updateParticles() {
	floor := s.camY + s.viewH
	for _, p := range s.store.All(sim.KindParticle) {
		meta := particleMeta(p)
		meta.TTL--
		if meta.TTL <= 0 || p.Pos.Y > floor {
			s.store.Destroy(p.ID)
			continue
		}
		p.Vel.Y += 30 * sim.FixedStep
		p.Pos = p.Pos.Add(p.Vel.Scale(sim.FixedStep))
	}
}

// spawnDebris scatters short-lived particles from a crumbling platform.
func (s *Session) spawnDebris(at sim.Vec2) {
	glyphs := []rune{'·', '+', ',', '*'}
	count := 3 + s.rng.Intn(3)
	for i := 0; i < count; i++ {
		p := s.store.Create(sim.KindParticle)
		p.Pos = at
		p.Vel = sim.Vec2{
			X: s.rng.Range(-6, 6),
			Y: s.rng.Range(-4, 6),
		}
		p.Data = &ParticleMeta{
			TTL:   14 + s.rng.Intn(10),
			Glyph: glyphs[s.rng.Intn(len(glyphs))],
		}
	}
}

// restart begins a brand-new run with the original seed, so restarting
// replays identically given identical inputs.
func (s *Session) restart() {
	s.rng = sim.NewRNG(s.seed)
	s.combo.ResetAll()
	s.tick = 0
	s.steer = 0
	s.clock.Reset()
	s.store.Clear()
	s.spawn = Spawner{}
	s.seedWorld()
}

// ballMeta extracts the BallMeta from a store entity.
func ballMeta(e *sim.Entity) *BallMeta {
	m, ok := e.Data.(*BallMeta)
	if !ok {
		panic("bounce: ball entity without ball data")
	}
	return m
}

// particleMeta extracts the ParticleMeta from a store entity.
func particleMeta(e *sim.Entity) *ParticleMeta {
	m, ok := e.Data.(*ParticleMeta)
	if !ok {
		panic("bounce: particle entity without particle data")
	}
	return m
}
