package physics

import "math"

// restSpeed is the horizontal speed below which friction stops the body.
const restSpeed = 0.5

// Contact describes the ground interaction found during one resolve call.
type Contact struct {
	Hit bool
	// Segment is the ground segment of the deepest corner, -1 for the flat floor.
	Segment int
	Depth   float64
	Normal  Vec2
	Point   Vec2
	// Points are every corner touching the surface.
	Points []Vec2
}

// Integrate advances the body by dt. Gravity only applies while airborne unless
// the tuning keeps it on while grounded.
func Integrate(b *Body, t Tuning, dt float64) {
	if !b.Grounded || t.GroundedGravity {
		b.Vel.Y += t.Gravity * dt
	}

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if t.Rotation {
		b.Angle = wrapAngle(b.Angle + b.AngularVel*dt)
	}
}

// Steer applies lateral input. dir is -1, 0 or 1. Without input a grounded body
// loses Friction of its horizontal speed per second.
func Steer(b *Body, dir int, t Tuning, dt float64) {
	if dir != 0 {
		b.Vel.X = float64(dir) * t.MoveSpeed
		return
	}

	if !b.Grounded {
		return
	}

	b.Vel.X *= max(0, 1-t.Friction*dt)
	if math.Abs(b.Vel.X) < restSpeed {
		b.Vel.X = 0
	}
}

// ResolveFloor lands the body on a flat floor at floorY. Once the bottom
// reaches the floor the body is grounded and, if it was falling, stopped.
func ResolveFloor(b *Body, floorY float64) Contact {
	bottom := b.Bottom()
	if bottom < floorY {
		return Contact{Segment: -1}
	}

	b.Pos.Y -= bottom - floorY
	b.Grounded = true
	if b.Vel.Y > 0 {
		b.Vel = Vec2{}
	}

	up := Vec2{0, -1}
	c := Contact{
		Hit:     true,
		Segment: -1,
		Depth:   bottom - floorY,
		Normal:  up,
	}
	for _, p := range b.Corners() {
		if floorY-p.Y <= 0.5 {
			c.Points = append(c.Points, p)
		}
	}
	if len(c.Points) > 0 {
		c.Point = c.Points[0]
	}
	return c
}

// ResolveGround tests every corner against the implicit line of the segment
// beneath it. While the center is over the ground, corners past either end use
// the end segment extended outward. The deepest corner pushes the body out
// along that segment's normal and the into-ground part of the velocity is
// removed. With rotation on, each touching corner adds angular velocity
// proportional to the body's speed.
func ResolveGround(b *Body, g *Ground, t Tuning) Contact {
	c := Contact{Segment: -1}

	_, over := g.SegmentAt(b.Pos.X)
	first, last := g.Vertices[0].X, g.Vertices[len(g.Vertices)-1].X

	type touch struct {
		point  Vec2
		normal Vec2
	}
	var touches [4]touch
	n := 0

	best := math.Inf(1)
	for _, p := range b.Corners() {
		x := p.X
		if over {
			x = max(first, min(last, x))
		}
		i, ok := g.SegmentAt(x)
		if !ok {
			continue
		}
		seg := g.Segment(i)
		d := seg.Line().Distance(p)
		if d > t.ContactSlop {
			continue
		}

		touches[n] = touch{point: p, normal: seg.Normal}
		n++
		c.Points = append(c.Points, p)

		if d < best {
			best = d
			c.Segment = i
			c.Normal = seg.Normal
			c.Point = p
		}
	}

	if n == 0 {
		b.Grounded = false
		return c
	}

	c.Hit = true
	b.Grounded = true

	speed := b.Speed()

	if best < 0 {
		c.Depth = -best
		b.Pos = b.Pos.Add(c.Normal.Scale(c.Depth))
	}

	if vn := b.Vel.Dot(c.Normal); vn < 0 {
		b.Vel = b.Vel.Sub(c.Normal.Scale(vn))
	}

	if t.Rotation {
		var torque float64
		for _, tc := range touches[:n] {
			r := tc.point.Sub(b.Pos)
			if l := r.Len(); l > 0 {
				torque += r.Cross(tc.normal) / l
			}
		}
		b.AngularVel += t.AngularKick * speed * torque
	}

	return c
}

// DampSpin bleeds angular velocity while grounded and clamps it to the tuning
// limit.
func DampSpin(b *Body, t Tuning, dt float64) {
	if !t.Rotation {
		b.AngularVel = 0
		return
	}
	if b.Grounded {
		b.AngularVel *= max(0, 1-t.AngularDamping*dt)
	}
	b.AngularVel = max(-t.MaxAngularVel, min(t.MaxAngularVel, b.AngularVel))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
