package bounce

import (
	"github.com/tetraplane/ricochet/internal/sim"
)

// spawnAhead is how far above the visible top (in cells) the spawner keeps
// the tower stocked, so platforms never pop in on screen.
const spawnAhead = 8.0

// Mover share grows with difficulty but is capped so a slice of every
// screen stays stationary.
const (
	moverShareRamp = 0.3
	maxMoverShare  = 0.6
)

// Spawner tracks where the next platform goes. World Y decreases upward,
// so NextY walks toward negative infinity as the tower grows.
type Spawner struct {
	NextY float64
}

// topUpPlatforms extends the tower until the stocked region reaches
// spawnAhead cells above the camera. Called once at setup and again every
// tick, so a rising camera continuously pulls new platforms into range.
func (s *Session) topUpPlatforms() {
	level := s.difficulty.Level(s.combo.Score, s.tick)
	limit := s.camY - spawnAhead
	for s.spawn.NextY > limit {
		s.spawnPlatform(s.spawn.NextY, level)
		s.spawn.NextY -= float64(s.platformGap())
	}
}

// spawnPlatform creates one platform at the given height. The draw order
// (kind, position, mover, drift direction) is fixed so identically seeded
// sessions build identical towers.
func (s *Session) spawnPlatform(y, level float64) {
	kind := rollPlatformKind(s.rng, s.cfg.Spawner, level)
	w := s.platformWidth()

	e := s.store.Create(sim.KindPlatform)
	e.W = w
	e.H = 1
	e.Pos = sim.Vec2{X: s.rng.Range(0, s.width-w), Y: y}
	e.Data = &PlatformMeta{Kind: kind}

	share := s.cfg.Spawner.MoverShare + level*moverShareRamp
	if share > maxMoverShare {
		share = maxMoverShare
	}
	if s.rng.Float64() < share {
		speed := s.difficulty.Speed(s.cfg.Platforms.MoverSpeed, s.combo.Score, s.tick)
		if s.rng.Float64() < 0.5 {
			speed = -speed
		}
		e.Vel.X = speed
	}
}

// platformGap rolls the vertical spacing to the next platform, in cells.
func (s *Session) platformGap() int {
	span := s.cfg.Spawner.MaxGap - s.cfg.Spawner.MinGap + 1
	return s.cfg.Spawner.MinGap + s.rng.Intn(span)
}

// platformWidth returns the landing width for new platforms. Difficulty
// narrows it, squeezing the safe window as a run progresses.
func (s *Session) platformWidth() float64 {
	return float64(s.difficulty.GapSize(int(s.cfg.Platforms.Width), s.combo.Score, s.tick))
}
