package bounce

import (
	"sort"
	"testing"

	"github.com/tetraplane/ricochet/internal/config"
	"github.com/tetraplane/ricochet/internal/sim"
)

// newTestSession builds a session on a 40x22 playfield with a fixed seed.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.DefaultBounceConfig()
	return NewSession(cfg, 40, 22, 7)
}

// clearPlatforms empties the tower so a test can stage its own scene.
// The spawner cursor is already past its stock limit, so nothing
// respawns until the camera rises.
func clearPlatforms(s *Session) {
	for _, e := range s.store.All(sim.KindPlatform) {
		s.store.Destroy(e.ID)
	}
}

func placePlatform(s *Session, kind PlatformKind, x, y, w float64) *sim.Entity {
	e := s.store.Create(sim.KindPlatform)
	e.W = w
	e.H = 1
	e.Pos = sim.Vec2{X: x, Y: y}
	e.Data = &PlatformMeta{Kind: kind}
	return e
}

func soloBall(t *testing.T, s *Session) *sim.Entity {
	t.Helper()
	balls := s.store.All(sim.KindBall)
	if len(balls) != 1 {
		t.Fatalf("ball count = %d, want 1", len(balls))
	}
	return balls[0]
}

func countOutcomes(s *Session, match func(sim.Outcome) bool) int {
	n := 0
	for _, o := range s.outcomes {
		if match(o) {
			n++
		}
	}
	return n
}

func TestReadyBallRestsUntilLaunch(t *testing.T) {
	s := newTestSession(t)
	if s.state != StateReady {
		t.Fatalf("initial state = %q, want %q", s.state, StateReady)
	}

	ball := soloBall(t, s)
	y0 := ball.Pos.Y
	for range 10 {
		s.step()
	}
	if ball.Pos.Y != y0 {
		t.Errorf("resting ball moved: y = %v, want %v", ball.Pos.Y, y0)
	}
	if s.tick != 10 {
		t.Errorf("tick = %d, want 10", s.tick)
	}

	s.Inject(sim.Intent{Kind: sim.IntentLaunch})
	s.step()
	if s.state != StatePlaying {
		t.Errorf("state after launch = %q, want %q", s.state, StatePlaying)
	}
	// Launch fires at the top of the tick, so one tick of gravity has
	// already eaten into the bounce speed.
	want := -s.cfg.Physics.BounceSpeed + s.cfg.Physics.Gravity*sim.FixedStep
	if ball.Vel.Y != want {
		t.Errorf("ball vy after launch = %v, want %v", ball.Vel.Y, want)
	}
	if ball.Pos.Y >= y0 {
		t.Errorf("launched ball did not rise: y = %v", ball.Pos.Y)
	}
}

func TestFirstTouchScoresOnce(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	base := placePlatform(s, PlatformNormal, 14, 19, 12)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}

	s.step()

	if !platformData(base).Consumed {
		t.Fatal("platform not consumed by first touch")
	}
	if s.combo.Score != PointsFor(PlatformNormal) {
		t.Errorf("score = %d, want %d", s.combo.Score, PointsFor(PlatformNormal))
	}
	if ball.Vel.Y != -s.cfg.Physics.BounceSpeed {
		t.Errorf("vy after bounce = %v, want %v", ball.Vel.Y, -s.cfg.Physics.BounceSpeed)
	}
	if ball.Pos.Y != base.Pos.Y-ball.Radius {
		t.Errorf("ball not separated onto the platform: y = %v", ball.Pos.Y)
	}

	// A consumed platform keeps bouncing but never scores again.
	ball.Pos = sim.Vec2{X: 20, Y: 18.4}
	ball.Vel = sim.Vec2{Y: 8}
	s.step()

	if s.combo.Score != PointsFor(PlatformNormal) {
		t.Errorf("score after re-touch = %d, want %d", s.combo.Score, PointsFor(PlatformNormal))
	}
	if ball.Vel.Y != -s.cfg.Physics.BounceSpeed {
		t.Errorf("consumed platform stopped bouncing: vy = %v", ball.Vel.Y)
	}
	scores := countOutcomes(s, func(o sim.Outcome) bool {
		_, ok := o.(sim.ScoreOutcome)
		return ok
	})
	if scores != 1 {
		t.Errorf("score outcomes = %d, want 1", scores)
	}
}

func TestAscendingBallPassesThrough(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	base := placePlatform(s, PlatformNormal, 14, 19, 12)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: 19.2}
	ball.Vel = sim.Vec2{Y: -10}

	s.step()

	if platformData(base).Consumed {
		t.Error("rising ball consumed a platform")
	}
	if s.combo.Score != 0 {
		t.Errorf("score = %d, want 0", s.combo.Score)
	}
	want := -10 + s.cfg.Physics.Gravity*sim.FixedStep
	if ball.Vel.Y != want {
		t.Errorf("vy = %v, want %v (no bounce)", ball.Vel.Y, want)
	}
}

func TestPropulsivePlatformLaunchesHigher(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformPropulsive, 14, 19, 7)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 17, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}

	s.step()

	if ball.Vel.Y != -s.cfg.Physics.PropelSpeed {
		t.Errorf("vy = %v, want %v", ball.Vel.Y, -s.cfg.Physics.PropelSpeed)
	}
	if s.combo.Score != PointsFor(PlatformPropulsive) {
		t.Errorf("score = %d, want %d", s.combo.Score, PointsFor(PlatformPropulsive))
	}
}

func TestBreakablePlatformCrumblesAfterBounce(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformBreakable, 14, 19, 7)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 17, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}

	s.step()

	// The bounce is granted before the platform goes.
	if ball.Vel.Y != -s.cfg.Physics.BounceSpeed {
		t.Errorf("vy = %v, want %v", ball.Vel.Y, -s.cfg.Physics.BounceSpeed)
	}
	if n := s.store.Len(sim.KindPlatform); n != 0 {
		t.Errorf("platforms left = %d, want 0", n)
	}
	broken := countOutcomes(s, func(o sim.Outcome) bool {
		_, ok := o.(sim.PlatformBrokenOutcome)
		return ok
	})
	if broken != 1 {
		t.Errorf("broken outcomes = %d, want 1", broken)
	}
	if s.combo.Score != PointsFor(PlatformBreakable) {
		t.Errorf("score = %d, want %d", s.combo.Score, PointsFor(PlatformBreakable))
	}
	if s.store.Len(sim.KindParticle) == 0 {
		t.Error("no crumble debris spawned")
	}
}

func TestGravityPlatformInvertsFall(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformGravity, 14, 19, 7)
	ball := soloBall(t, s)
	meta := ballMeta(ball)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 17, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}

	s.step()

	if meta.Invert != s.cfg.Platforms.GravityTicks {
		t.Fatalf("invert ticks = %d, want %d", meta.Invert, s.cfg.Platforms.GravityTicks)
	}
	flips := countOutcomes(s, func(o sim.Outcome) bool {
		_, ok := o.(sim.GravityFlipOutcome)
		return ok
	})
	if flips != 1 {
		t.Errorf("flip outcomes = %d, want 1", flips)
	}

	// Inverted gravity accelerates the climb instead of braking it.
	want := ball.Vel.Y
	for range 10 {
		want -= s.cfg.Physics.Gravity * sim.FixedStep
		s.step()
	}
	if ball.Vel.Y != want {
		t.Errorf("vy after 10 inverted ticks = %v, want %v", ball.Vel.Y, want)
	}
	if meta.Invert != s.cfg.Platforms.GravityTicks-10 {
		t.Errorf("invert ticks = %d, want %d", meta.Invert, s.cfg.Platforms.GravityTicks-10)
	}
}

func TestGravityRecontactResetsCountdown(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformGravity, 14, 19, 7)
	ball := soloBall(t, s)
	meta := ballMeta(ball)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 17, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}
	s.step()

	// Nearly expired, then touch the same platform again.
	meta.Invert = 7
	ball.Pos = sim.Vec2{X: 17, Y: 18.4}
	ball.Vel = sim.Vec2{Y: 8}
	s.step()

	if meta.Invert != s.cfg.Platforms.GravityTicks {
		t.Errorf("invert ticks after re-contact = %d, want %d", meta.Invert, s.cfg.Platforms.GravityTicks)
	}
	scores := countOutcomes(s, func(o sim.Outcome) bool {
		_, ok := o.(sim.ScoreOutcome)
		return ok
	})
	if scores != 1 {
		t.Errorf("score outcomes = %d, want 1 (consumed platform re-scored)", scores)
	}
}

func TestSplittingPlatformClonesBall(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformSplitting, 14, 19, 7)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 17, Y: 18.5}
	ball.Vel = sim.Vec2{X: 12, Y: 8}

	s.step()

	if got := s.Balls(); got != 2 {
		t.Fatalf("balls = %d, want 2", got)
	}
	var clone *sim.Entity
	for _, b := range s.store.All(sim.KindBall) {
		if ballMeta(b).Clone {
			clone = b
		}
	}
	if clone == nil {
		t.Fatal("no clone ball found")
	}
	if clone.Vel.X != -ball.Vel.X {
		t.Errorf("clone vx = %v, want mirrored %v", clone.Vel.X, -ball.Vel.X)
	}
	if clone.Vel.Y != ball.Vel.Y {
		t.Errorf("clone vy = %v, want %v", clone.Vel.Y, ball.Vel.Y)
	}
	if clone.Pos != ball.Pos {
		t.Errorf("clone pos = %v, want %v", clone.Pos, ball.Pos)
	}
	splits := countOutcomes(s, func(o sim.Outcome) bool {
		_, ok := o.(sim.SplitOutcome)
		return ok
	})
	if splits != 1 {
		t.Errorf("split outcomes = %d, want 1", splits)
	}
}

func TestCloneBallNeverSplits(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformSplitting, 14, 19, 7)
	ball := soloBall(t, s)
	ballMeta(ball).Clone = true
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 17, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}

	s.step()

	if got := s.Balls(); got != 1 {
		t.Errorf("balls = %d, want 1 (clone split again)", got)
	}
	// The touch itself still bounces and scores.
	if ball.Vel.Y != -s.cfg.Physics.BounceSpeed {
		t.Errorf("vy = %v, want %v", ball.Vel.Y, -s.cfg.Physics.BounceSpeed)
	}
	if s.combo.Score != PointsFor(PlatformSplitting) {
		t.Errorf("score = %d, want %d", s.combo.Score, PointsFor(PlatformSplitting))
	}
}

func TestCameraChasesHighestBall(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: 5}
	ball.Vel = sim.Vec2{Y: -26}

	s.step()

	if s.camY >= 0 {
		t.Fatalf("camera did not rise: camY = %v", s.camY)
	}
	// Falling back never scrolls the camera down.
	camBefore := s.camY
	clearPlatforms(s)
	ball.Vel = sim.Vec2{Y: 20}
	for range 20 {
		s.step()
	}
	if s.camY != camBefore {
		t.Errorf("camY = %v, want %v (camera scrolled back)", s.camY, camBefore)
	}
}

func TestTrailingPlatformsCulled(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformNormal, 14, 19, 12)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: 0}
	s.camY = -10

	s.step()

	floor := s.camY + s.viewH
	for _, plat := range s.store.All(sim.KindPlatform) {
		if plat.Pos.Y > floor+cullMargin {
			t.Errorf("platform at y=%v survived below the cull line %v", plat.Pos.Y, floor+cullMargin)
		}
	}
}

func TestLastBallBelowViewEndsRun(t *testing.T) {
	s := newTestSession(t)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: s.camY + s.viewH + 3}
	ball.Vel = sim.Vec2{Y: 10}

	s.step()

	if s.state != StateGameOver {
		t.Fatalf("state = %q, want %q", s.state, StateGameOver)
	}
	overs := countOutcomes(s, func(o sim.Outcome) bool {
		_, ok := o.(sim.GameOverOutcome)
		return ok
	})
	if overs != 1 {
		t.Errorf("gameover outcomes = %d, want 1", overs)
	}

	// A finished run is frozen.
	tick := s.tick
	s.step()
	if s.tick != tick {
		t.Errorf("tick advanced after game over: %d -> %d", tick, s.tick)
	}
}

func TestSpareBallKeepsRunAlive(t *testing.T) {
	s := newTestSession(t)
	ball := soloBall(t, s)
	s.state = StatePlaying

	spare := s.store.Create(sim.KindBall)
	spare.Radius = s.cfg.Physics.BallRadius
	spare.Pos = sim.Vec2{X: 10, Y: 5}
	spare.Data = &BallMeta{Clone: true}

	ball.Pos = sim.Vec2{X: 20, Y: s.camY + s.viewH + 3}
	ball.Vel = sim.Vec2{Y: 10}

	s.step()

	if s.state != StatePlaying {
		t.Fatalf("state = %q, want %q", s.state, StatePlaying)
	}
	if got := s.Balls(); got != 1 {
		t.Errorf("balls = %d, want 1", got)
	}
	lost := countOutcomes(s, func(o sim.Outcome) bool {
		v, ok := o.(sim.LifeLostOutcome)
		return ok && v.Remaining == 1
	})
	if lost != 1 {
		t.Errorf("ball-lost outcomes = %d, want 1", lost)
	}
}

func TestHorizontalWrap(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	ball := soloBall(t, s)
	s.state = StatePlaying

	ball.Pos = sim.Vec2{X: 0.1, Y: 10}
	ball.Vel = sim.Vec2{X: -28}
	s.step()
	if ball.Pos.X < 39 || ball.Pos.X >= 40 {
		t.Errorf("left exit wrapped to x = %v, want in [39, 40)", ball.Pos.X)
	}

	ball.Pos = sim.Vec2{X: 39.9, Y: 10}
	ball.Vel = sim.Vec2{X: 28}
	s.step()
	if ball.Pos.X < 0 || ball.Pos.X >= 1 {
		t.Errorf("right exit wrapped to x = %v, want in [0, 1)", ball.Pos.X)
	}
}

func TestMoverReversesAtEdges(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	ball := soloBall(t, s)
	ball.Pos = sim.Vec2{X: 20, Y: 15}
	s.state = StatePlaying

	p := placePlatform(s, PlatformNormal, 33.5, 10, 7)
	p.Vel.X = 6
	s.step()
	if p.Vel.X != -6 {
		t.Errorf("vx at right edge = %v, want -6", p.Vel.X)
	}
	if p.Pos.X != s.width-p.W {
		t.Errorf("x at right edge = %v, want %v", p.Pos.X, s.width-p.W)
	}

	p.Pos.X = 0.05
	p.Vel.X = -6
	s.step()
	if p.Vel.X != 6 {
		t.Errorf("vx at left edge = %v, want 6", p.Vel.X)
	}
	if p.Pos.X != 0 {
		t.Errorf("x at left edge = %v, want 0", p.Pos.X)
	}
}

func TestComboChainsAcrossQuickTouches(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformNormal, 14, 19, 12)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}
	s.step()

	if s.combo.Count != 1 || s.combo.Score != 10 {
		t.Fatalf("after first touch: combo = %d score = %d, want 1 and 10", s.combo.Count, s.combo.Score)
	}

	// A second fresh platform inside the combo window chains.
	placePlatform(s, PlatformNormal, 14, 10, 12)
	ball.Pos = sim.Vec2{X: 20, Y: 9.4}
	ball.Vel = sim.Vec2{Y: 8}
	s.step()

	if s.combo.Count != 2 {
		t.Errorf("combo = %d, want 2", s.combo.Count)
	}
	if s.combo.Score != 21 {
		t.Errorf("score = %d, want 21 (10 + 10*1.1 floored)", s.combo.Score)
	}
}

func TestSpawnerFillsAboveCamera(t *testing.T) {
	s := newTestSession(t)

	if n := s.store.Len(sim.KindPlatform); n < 3 {
		t.Fatalf("platforms at start = %d, want at least 3", n)
	}
	if s.spawn.NextY > s.camY-spawnAhead {
		t.Errorf("spawner cursor = %v, want <= %v", s.spawn.NextY, s.camY-spawnAhead)
	}

	// Successive platform heights differ by a gap inside the configured
	// range. The base platform at the bottom is part of the ladder.
	var ys []float64
	for _, plat := range s.store.All(sim.KindPlatform) {
		ys = append(ys, plat.Pos.Y)
	}
	sort.Float64s(ys)
	minGap := float64(s.cfg.Spawner.MinGap)
	maxGap := float64(s.cfg.Spawner.MaxGap)
	for i := 1; i < len(ys); i++ {
		d := ys[i] - ys[i-1]
		if d < minGap || d > maxGap {
			t.Errorf("gap between %v and %v = %v, want in [%v, %v]", ys[i-1], ys[i], d, minGap, maxGap)
		}
	}

	// Fresh-spawn width follows the difficulty manager (full width at the
	// start of a run).
	for _, plat := range s.store.All(sim.KindPlatform) {
		if plat.Pos.Y == s.viewH-3 {
			continue // the wide base platform
		}
		if plat.W != s.cfg.Platforms.Width {
			t.Errorf("spawned platform width = %v, want %v", plat.W, s.cfg.Platforms.Width)
		}
	}
}

func TestSpawnerTopsUpAsCameraRises(t *testing.T) {
	s := newTestSession(t)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: -20}
	ball.Vel = sim.Vec2{Y: -26}

	s.step()

	if s.spawn.NextY > s.camY-spawnAhead {
		t.Errorf("spawner cursor = %v, want <= %v after the camera rose", s.spawn.NextY, s.camY-spawnAhead)
	}
	top := 0.0
	for _, plat := range s.store.All(sim.KindPlatform) {
		if plat.Pos.Y < top {
			top = plat.Pos.Y
		}
	}
	if top > -10 {
		t.Errorf("highest platform at y = %v, want well above the old view", top)
	}
}

func TestDifficultyNarrowsPlatforms(t *testing.T) {
	s := newTestSession(t)
	if w := s.platformWidth(); w != s.cfg.Platforms.Width {
		t.Errorf("width at level 0 = %v, want %v", w, s.cfg.Platforms.Width)
	}

	s.combo.Score = s.cfg.Difficulty.Progression.MaxAt
	want := s.cfg.Platforms.Width - float64(s.cfg.Difficulty.Scaling.GapReduction)
	if w := s.platformWidth(); w != want {
		t.Errorf("width at max difficulty = %v, want %v", w, want)
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() (uint64, int) {
		s := NewSession(config.DefaultBounceConfig(), 40, 22, 99)
		s.Inject(sim.Intent{Kind: sim.IntentLaunch})
		for i := range 400 {
			switch {
			case i%7 == 0:
				s.Inject(sim.Intent{Kind: sim.IntentMove, Dir: -1})
			case i%11 == 0:
				s.Inject(sim.Intent{Kind: sim.IntentMove, Dir: 1})
			}
			s.Advance(sim.FixedStep)
		}
		snap := s.Snapshot()
		return snap.Hash(), s.Score()
	}

	h1, score1 := run()
	h2, score2 := run()
	if h1 != h2 {
		t.Errorf("hashes differ: %d vs %d", h1, h2)
	}
	if score1 != score2 {
		t.Errorf("scores differ: %d vs %d", score1, score2)
	}
}

func TestRestartRebuildsIdenticalWorld(t *testing.T) {
	s := newTestSession(t)
	fresh := s.Snapshot()

	s.Inject(sim.Intent{Kind: sim.IntentLaunch})
	for range 50 {
		s.Advance(sim.FixedStep)
	}
	for _, ball := range s.store.All(sim.KindBall) {
		ball.Pos.Y = s.camY + s.viewH + 5
		ball.Vel.Y = 20
	}
	s.Advance(sim.FixedStep)
	if s.state != StateGameOver {
		t.Fatalf("state = %q, want %q", s.state, StateGameOver)
	}

	s.Inject(sim.Intent{Kind: sim.IntentRestart})
	s.Advance(sim.FixedStep)

	if s.state != StateReady {
		t.Fatalf("state after restart = %q, want %q", s.state, StateReady)
	}
	again := s.Snapshot()
	if again.Score != 0 || again.CamY != 0 {
		t.Errorf("restart kept score %d camY %d, want zeros", again.Score, again.CamY)
	}
	if again.PlatformCount != fresh.PlatformCount {
		t.Fatalf("platform count = %d, want %d", again.PlatformCount, fresh.PlatformCount)
	}
	for i, v := range fresh.PlatformData {
		if again.PlatformData[i] != v {
			t.Fatalf("platform data differs at %d: %d vs %d (same seed should rebuild the same tower)", i, again.PlatformData[i], v)
		}
	}
	if again.RNGState != fresh.RNGState {
		t.Errorf("rng state differs after restart")
	}
}

func TestAdvanceAccumulatesPartialFrames(t *testing.T) {
	s := newTestSession(t)
	s.Advance(sim.FixedStep / 2)
	if s.tick != 0 {
		t.Errorf("tick after half frame = %d, want 0", s.tick)
	}
	s.Advance(sim.FixedStep / 2)
	if s.tick != 1 {
		t.Errorf("tick after two half frames = %d, want 1", s.tick)
	}
}

func TestAdvanceBatchesAndPublishes(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	placePlatform(s, PlatformNormal, 14, 19, 12)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Pos = sim.Vec2{X: 20, Y: 18.5}
	ball.Vel = sim.Vec2{Y: 8}

	var published []sim.Outcome
	s.Bus().Subscribe(func(o sim.Outcome) {
		published = append(published, o)
	})

	batch := s.Advance(sim.FixedStep)
	if len(batch) == 0 {
		t.Fatal("no outcomes from a scoring tick")
	}
	if len(published) != len(batch) {
		t.Errorf("published %d outcomes, batch has %d", len(published), len(batch))
	}
	if s.outcomes != nil {
		t.Error("outcome buffer not cleared after Advance")
	}
}

func TestPauseFreezesClimb(t *testing.T) {
	s := newTestSession(t)
	s.Inject(sim.Intent{Kind: sim.IntentLaunch})
	s.step()
	ball := soloBall(t, s)

	s.Inject(sim.Intent{Kind: sim.IntentPause})
	s.step()
	if s.state != StatePaused {
		t.Fatalf("state = %q, want %q", s.state, StatePaused)
	}
	frozen := ball.Pos
	tick := s.tick
	for range 10 {
		s.step()
	}
	if ball.Pos != frozen {
		t.Errorf("ball moved while paused: %v -> %v", frozen, ball.Pos)
	}
	if s.tick != tick {
		t.Errorf("tick advanced while paused: %d -> %d", tick, s.tick)
	}

	s.Inject(sim.Intent{Kind: sim.IntentPause})
	s.step()
	if s.state != StatePlaying {
		t.Errorf("state after unpause = %q, want %q", s.state, StatePlaying)
	}
	s.step()
	if ball.Pos == frozen {
		t.Error("ball still frozen after unpause")
	}
}

func TestHeightTracksBestAscent(t *testing.T) {
	s := newTestSession(t)
	clearPlatforms(s)
	ball := soloBall(t, s)
	s.state = StatePlaying
	ball.Vel = sim.Vec2{Y: -26}

	for range 30 {
		s.step()
	}
	h := s.Height()
	if h <= 0 {
		t.Fatalf("height = %d, want > 0 after a climb", h)
	}

	// Falling back down does not give height back.
	for range 35 {
		s.step()
	}
	if s.Height() != h {
		t.Errorf("height = %d, want %d (height is a high-water mark)", s.Height(), h)
	}
	if s.state != StatePlaying {
		t.Fatalf("ball fell out of view during the test: state = %q", s.state)
	}
}
