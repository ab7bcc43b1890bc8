package sim

// Outcome is a record of a side effect produced during a fixed step.
// Sessions return the batch from Advance and publish each record on their
// bus; external collaborators (renderer, audio, persistence) decide what to
// do with each one. One concrete type per effect keeps call sites on an
// exhaustive type switch instead of optional fields.
type Outcome interface {
	outcome()
}

// EffectRef identifies a timed-effect kind. Games declare their own
// constants of this type; the core treats it as opaque.
type EffectRef int

// PickupRef identifies a pickup kind, opaque to the core like EffectRef.
type PickupRef int

// ScoreOutcome reports points awarded for a hit, with the combo count after
// the hit and the playfield position for popup placement.
type ScoreOutcome struct {
	Points int
	Combo  int
	At     Vec2
}

func (ScoreOutcome) outcome() {}

// SpawnOutcome reports an entity created mid-play (extra ball, clone,
// duplicate obstacle, projectile).
type SpawnOutcome struct {
	Entity ID
	Kind   Kind
	At     Vec2
}

func (SpawnOutcome) outcome() {}

// PickupDropOutcome reports a pickup released by a destroyed obstacle.
type PickupDropOutcome struct {
	Pickup PickupRef
	At     Vec2
}

func (PickupDropOutcome) outcome() {}

// PickupCollectedOutcome reports a falling pickup caught by the paddle.
type PickupCollectedOutcome struct {
	Pickup PickupRef
	At     Vec2
}

func (PickupCollectedOutcome) outcome() {}

// EffectStartedOutcome reports a timed effect turning on (or refreshing).
type EffectStartedOutcome struct {
	Effect    EffectRef
	Refreshed bool
}

func (EffectStartedOutcome) outcome() {}

// EffectExpiredOutcome reports a timed effect running out, so the
// corresponding modifier can be reverted.
type EffectExpiredOutcome struct {
	Effect EffectRef
}

func (EffectExpiredOutcome) outcome() {}

// DetonationOutcome reports a blast applied around a destroyed obstacle.
type DetonationOutcome struct {
	Source ID
	At     Vec2
	Radius float64
}

func (DetonationOutcome) outcome() {}

// RelocationOutcome reports an obstacle starting to glide to a new spot.
type RelocationOutcome struct {
	Obstacle ID
	From, To Vec2
}

func (RelocationOutcome) outcome() {}

// DuplicationOutcome reports a duplicate obstacle spawned by a duplicator.
type DuplicationOutcome struct {
	Origin ID
	Clone  ID
	At     Vec2
}

func (DuplicationOutcome) outcome() {}

// OriginDestroyedOutcome reports a duplicator origin forced to destruction
// because one of its duplicates died, with the doubled point bonus.
type OriginDestroyedOutcome struct {
	Origin ID
	Bonus  int
}

func (OriginDestroyedOutcome) outcome() {}

// CatalystOutcome reports the global guaranteed-pickup window arming.
type CatalystOutcome struct {
	Ticks int
}

func (CatalystOutcome) outcome() {}

// SplitOutcome reports a ball cloned by a splitting platform.
type SplitOutcome struct {
	Parent ID
	Clone  ID
}

func (SplitOutcome) outcome() {}

// PlatformBrokenOutcome reports a breakable platform crumbling after its
// single bounce.
type PlatformBrokenOutcome struct {
	Platform ID
	At       Vec2
}

func (PlatformBrokenOutcome) outcome() {}

// GravityFlipOutcome reports inverted gravity applied to a ball.
type GravityFlipOutcome struct {
	Ball  ID
	Ticks int
}

func (GravityFlipOutcome) outcome() {}

// LifeLostOutcome reports a lost attempt and how many remain.
type LifeLostOutcome struct {
	Remaining int
}

func (LifeLostOutcome) outcome() {}

// LevelClearOutcome reports a cleared level.
type LevelClearOutcome struct {
	Level int
}

func (LevelClearOutcome) outcome() {}

// GameOverOutcome reports the end of a run with the final score.
type GameOverOutcome struct {
	Score int
}

func (GameOverOutcome) outcome() {}
