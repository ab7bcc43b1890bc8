package sim

// Collidable is the resolver's view of an obstacle: its rectangle plus the
// one property resolution cares about. Pass-through movers ignore the
// bounce against destructible targets but never against indestructible ones.
type Collidable struct {
	ID           ID
	Box          Box
	Destructible bool
}

// Separate pushes an entity out of contact along the hit normal by the
// penetration depth.
func Separate(e *Entity, h Hit) {
	e.Pos = e.Pos.Add(h.Normal.Scale(h.Depth))
}

// Reflect flips the entity's velocity component along the hit normal and
// leaves the tangential component unchanged. Only applies when the entity
// is actually moving into the surface, so a mover already separating from
// a contact is not bounced back into it.
func Reflect(e *Entity, h Hit) {
	vn := e.Vel.Dot(h.Normal)
	if vn >= 0 {
		return
	}
	e.Vel = e.Vel.Sub(h.Normal.Scale(2 * vn))
}

// ResolveMover tests a circular mover against obstacles in order and
// resolves at most one contact per call: the first overlap found wins and
// the rest wait for the next tick. The mover is always separated; the
// bounce is skipped for pass-through movers against destructible targets.
// Returns the struck obstacle so the caller's state machine can react.
func ResolveMover(e *Entity, obstacles []Collidable, passThrough bool) (Collidable, Hit, bool) {
	for _, ob := range obstacles {
		h, ok := CircleVsBox(e.Circle(), ob.Box)
		if !ok {
			continue
		}
		Separate(e, h)
		if !passThrough || !ob.Destructible {
			Reflect(e, h)
		}
		return ob, h, true
	}
	return Collidable{}, Hit{}, false
}

// ResolveProjectile tests a box-shaped mover against obstacles in order.
// Projectiles never bounce; the first overlap is reported and the caller
// destroys the projectile after applying damage.
func ResolveProjectile(e *Entity, obstacles []Collidable) (Collidable, Hit, bool) {
	for _, ob := range obstacles {
		h, ok := BoxVsBox(e.Box(), ob.Box)
		if !ok {
			continue
		}
		return ob, h, true
	}
	return Collidable{}, Hit{}, false
}

// PlatformContact tests a falling ball against a platform top. Contact only
// counts while the ball's vertical velocity is directed toward the platform
// (descending, in screen coordinates) and the ball is coming from above;
// ascending past a platform from below never collides.
func PlatformContact(e *Entity, platform Box) (Hit, bool) {
	if e.Vel.Y <= 0 {
		return Hit{}, false
	}
	_, ok := CircleVsBox(e.Circle(), platform)
	if !ok {
		return Hit{}, false
	}
	if e.Pos.Y >= platform.Center().Y {
		return Hit{}, false
	}
	// Landing always resolves against the top face.
	depth := e.Pos.Y + e.Radius - platform.Y
	if depth < 0 {
		depth = 0
	}
	return Hit{Normal: Vec2{Y: -1}, Depth: depth}, true
}
