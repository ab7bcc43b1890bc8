// Package sim implements the shared arcade simulation core: a fixed-step
// clock, a pooled entity store, collision geometry and resolution, timed
// effects, combo scoring, and the outcome records that carry side effects
// out to external collaborators (renderer, audio, persistence).
//
// Everything in this package is purely computational and single-threaded;
// one session owns one instance of each piece of state, so multiple
// independent simulations can run in the same process.
package sim

import "math"

// Vec2 is a 2D vector in playfield units (cells, fractional).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistSq returns the squared distance between v and o.
// Avoids the sqrt when only comparisons are needed.
func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Box is an axis-aligned rectangle anchored at its top-left corner,
// the float counterpart of core.Rect.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBox creates a box from a top-left corner and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{b.X + b.W/2, b.Y + b.H/2}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Contains returns true if the point p lies inside the box.
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// Expand returns the box grown by pad on every side.
func (b Box) Expand(pad float64) Box {
	return Box{X: b.X - pad, Y: b.Y - pad, W: b.W + 2*pad, H: b.H + 2*pad}
}

// Circle is a circle with center and radius.
type Circle struct {
	Center Vec2
	R      float64
}

// Hit describes a resolved overlap: the collision normal (unit axis vector
// pointing from the box toward the mover) and the penetration depth along it.
type Hit struct {
	Normal Vec2
	Depth  float64
}

// CircleVsBox tests a circle against a box and reports the contact manifold.
//
// Penetration is measured per axis with the circle projected by its radius.
// Both overlaps must be strictly positive: a circle exactly tangent to an
// edge does not collide. The normal is the axis with the smaller overlap;
// when the overlaps are exactly equal the horizontal axis wins.
func CircleVsBox(c Circle, b Box) (Hit, bool) {
	center := b.Center()
	dx := c.Center.X - center.X
	dy := c.Center.Y - center.Y

	overlapX := c.R + b.W/2 - math.Abs(dx)
	overlapY := c.R + b.H/2 - math.Abs(dy)
	if overlapX <= 0 || overlapY <= 0 {
		return Hit{}, false
	}
	return axisHit(dx, dy, overlapX, overlapY), true
}

// BoxVsBox tests two boxes and reports the contact manifold for the first
// box as the mover. Same strict-overlap and axis rules as CircleVsBox.
func BoxVsBox(mover, target Box) (Hit, bool) {
	mc := mover.Center()
	tc := target.Center()
	dx := mc.X - tc.X
	dy := mc.Y - tc.Y

	overlapX := mover.W/2 + target.W/2 - math.Abs(dx)
	overlapY := mover.H/2 + target.H/2 - math.Abs(dy)
	if overlapX <= 0 || overlapY <= 0 {
		return Hit{}, false
	}
	return axisHit(dx, dy, overlapX, overlapY), true
}

// axisHit picks the minimum-penetration axis. Ties favor horizontal.
func axisHit(dx, dy, overlapX, overlapY float64) Hit {
	if overlapX <= overlapY {
		n := Vec2{X: 1}
		if dx < 0 {
			n.X = -1
		}
		return Hit{Normal: n, Depth: overlapX}
	}
	n := Vec2{Y: 1}
	if dy < 0 {
		n.Y = -1
	}
	return Hit{Normal: n, Depth: overlapY}
}
