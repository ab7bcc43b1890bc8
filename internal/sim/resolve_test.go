package sim

import "testing"

func TestResolveMoverSeparatesAndReflects(t *testing.T) {
	// Ball moving up into a brick bottom.
	ball := &Entity{Pos: Vec2{X: 5, Y: 4.3}, Vel: Vec2{X: 0.1, Y: -0.4}, Radius: 0.5}
	brick := Collidable{ID: 1, Box: NewBox(3, 2, 4, 2), Destructible: true}

	hit, h, ok := ResolveMover(ball, []Collidable{brick}, false)
	if !ok {
		t.Fatal("Expected a resolved collision")
	}
	if hit.ID != 1 {
		t.Errorf("Expected obstacle 1, got %d", hit.ID)
	}
	if h.Normal.Y != 1 {
		t.Errorf("Expected downward normal from brick bottom, got (%v, %v)", h.Normal.X, h.Normal.Y)
	}
	if ball.Vel.Y <= 0 {
		t.Errorf("Vertical velocity should reflect downward, got %v", ball.Vel.Y)
	}
	if ball.Vel.X != 0.1 {
		t.Errorf("Tangential velocity must be untouched, got %v", ball.Vel.X)
	}
	// Separated: ball bottom edge clear of the brick.
	if ball.Pos.Y-ball.Radius < brick.Box.Bottom()-1e-9 {
		t.Errorf("Ball not separated, center at %v", ball.Pos.Y)
	}
}

func TestResolveMoverOnePerTick(t *testing.T) {
	// Two overlapping bricks; only the first in order is resolved.
	ball := &Entity{Pos: Vec2{X: 5, Y: 4.3}, Vel: Vec2{Y: -0.4}, Radius: 0.5}
	bricks := []Collidable{
		{ID: 1, Box: NewBox(3, 2, 4, 2), Destructible: true},
		{ID: 2, Box: NewBox(4, 2, 4, 2), Destructible: true},
	}

	hit, _, ok := ResolveMover(ball, bricks, false)
	if !ok {
		t.Fatal("Expected a resolved collision")
	}
	if hit.ID != 1 {
		t.Errorf("First obstacle in order must win, got %d", hit.ID)
	}
}

func TestResolveMoverPassThrough(t *testing.T) {
	// Pass-through movers keep their velocity against destructible bricks.
	ball := &Entity{Pos: Vec2{X: 5, Y: 4.3}, Vel: Vec2{Y: -0.4}, Radius: 0.5}
	brick := Collidable{ID: 1, Box: NewBox(3, 2, 4, 2), Destructible: true}

	if _, _, ok := ResolveMover(ball, []Collidable{brick}, true); !ok {
		t.Fatal("Pass-through still detects the hit")
	}
	if ball.Vel.Y != -0.4 {
		t.Errorf("Pass-through must not bounce off destructible targets, got vy=%v", ball.Vel.Y)
	}

	// Indestructible targets bounce even pass-through movers.
	wall := Collidable{ID: 2, Box: NewBox(3, 2, 4, 2), Destructible: false}
	ball2 := &Entity{Pos: Vec2{X: 5, Y: 4.3}, Vel: Vec2{Y: -0.4}, Radius: 0.5}
	if _, _, ok := ResolveMover(ball2, []Collidable{wall}, true); !ok {
		t.Fatal("Expected a resolved collision")
	}
	if ball2.Vel.Y <= 0 {
		t.Errorf("Pass-through must still bounce off indestructible targets, got vy=%v", ball2.Vel.Y)
	}
}

func TestResolveProjectileReportsWithoutBounce(t *testing.T) {
	shot := &Entity{Pos: Vec2{X: 11, Y: 11.5}, Vel: Vec2{Y: -0.8}, W: 0.6, H: 1.2}
	brick := Collidable{ID: 7, Box: NewBox(10, 10, 4, 2), Destructible: true}

	hit, _, ok := ResolveProjectile(shot, []Collidable{brick})
	if !ok {
		t.Fatal("Expected projectile hit")
	}
	if hit.ID != 7 {
		t.Errorf("Expected obstacle 7, got %d", hit.ID)
	}
	if shot.Vel.Y != -0.8 {
		t.Errorf("Projectiles never bounce, got vy=%v", shot.Vel.Y)
	}
}

func TestPlatformContactRequiresDescent(t *testing.T) {
	platform := NewBox(4, 10, 6, 1)

	// Ascending through the platform from below: no contact.
	rising := &Entity{Pos: Vec2{X: 6, Y: 10.4}, Vel: Vec2{Y: -0.5}, Radius: 0.5}
	if _, ok := PlatformContact(rising, platform); ok {
		t.Error("Ascending ball must pass through the platform")
	}

	// Descending onto the top: contact with an upward normal.
	falling := &Entity{Pos: Vec2{X: 6, Y: 9.8}, Vel: Vec2{Y: 0.5}, Radius: 0.5}
	h, ok := PlatformContact(falling, platform)
	if !ok {
		t.Fatal("Descending ball must land")
	}
	if h.Normal.Y != -1 {
		t.Errorf("Landing normal must point up, got %v", h.Normal.Y)
	}

	// Descending but already below the platform's center: no contact.
	under := &Entity{Pos: Vec2{X: 6, Y: 10.9}, Vel: Vec2{Y: 0.5}, Radius: 0.5}
	if _, ok := PlatformContact(under, platform); ok {
		t.Error("A ball below the platform cannot land on it")
	}
}
