package physics

import "math"

// Body is the player rectangle. Pos is the center of the rectangle.
type Body struct {
	Pos        Vec2
	Vel        Vec2
	Size       Vec2
	Angle      float64
	AngularVel float64
	Grounded   bool
}

// NewBody places a resting, airborne body with its top-left corner at topLeft.
func NewBody(topLeft, size Vec2) Body {
	return Body{
		Pos:  topLeft.Add(size.Scale(0.5)),
		Size: size,
	}
}

// TopLeft returns the unrotated top-left corner.
func (b *Body) TopLeft() Vec2 {
	return b.Pos.Sub(b.Size.Scale(0.5))
}

// Corners returns the four corners in clockwise screen order starting at the
// top-left, rotated by Angle around Pos.
func (b *Body) Corners() [4]Vec2 {
	hw, hh := b.Size.X/2, b.Size.Y/2
	local := [4]Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var out [4]Vec2
	for i, c := range local {
		if b.Angle != 0 {
			c = c.Rotate(b.Angle)
		}
		out[i] = b.Pos.Add(c)
	}
	return out
}

// Bottom returns the largest Y of any corner.
func (b *Body) Bottom() float64 {
	bottom := math.Inf(-1)
	for _, c := range b.Corners() {
		bottom = max(bottom, c.Y)
	}
	return bottom
}

// HalfWidth returns the largest horizontal distance from Pos to a corner.
func (b *Body) HalfWidth() float64 {
	if b.Angle == 0 {
		return b.Size.X / 2
	}
	s, c := math.Sincos(b.Angle)
	return (math.Abs(b.Size.X*c) + math.Abs(b.Size.Y*s)) / 2
}

func (b *Body) Speed() float64 {
	return b.Vel.Len()
}

// Jump launches the body upward at speed. It only succeeds while grounded.
func (b *Body) Jump(speed float64) bool {
	if !b.Grounded {
		return false
	}
	b.Vel.Y -= speed
	b.Grounded = false
	return true
}

// Reset puts the body back at its spawn center with no motion.
func (b *Body) Reset(center Vec2) {
	b.Pos = center
	b.Vel = Vec2{}
	b.Angle = 0
	b.AngularVel = 0
	b.Grounded = false
}
