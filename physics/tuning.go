package physics

import (
	"errors"
	"fmt"
)

// Tuning groups the constants of one physics stage. Distances are pixels and
// times are seconds.
type Tuning struct {
	Gravity   float64 `yaml:"gravity"`
	JumpSpeed float64 `yaml:"jump_speed"`
	MoveSpeed float64 `yaml:"move_speed"`
	// Friction is the fraction of horizontal speed removed per second while
	// grounded with no lateral input.
	Friction float64 `yaml:"friction"`
	// GroundedGravity keeps gravity on while grounded so slope contacts are
	// re-established every tick.
	GroundedGravity bool `yaml:"grounded_gravity"`

	Rotation       bool    `yaml:"rotation"`
	AngularKick    float64 `yaml:"angular_kick"`
	AngularDamping float64 `yaml:"angular_damping"`
	MaxAngularVel  float64 `yaml:"max_angular_vel"`

	// ContactSlop is how far above the surface a corner still counts as
	// touching it.
	ContactSlop float64 `yaml:"contact_slop"`
}

var ErrInvalidTuning = errors.New("invalid tuning")

func (t Tuning) Validate() error {
	switch {
	case t.Gravity < 0:
		return fmt.Errorf("%w: gravity %.2f is negative", ErrInvalidTuning, t.Gravity)
	case t.JumpSpeed < 0:
		return fmt.Errorf("%w: jump speed %.2f is negative", ErrInvalidTuning, t.JumpSpeed)
	case t.MoveSpeed < 0:
		return fmt.Errorf("%w: move speed %.2f is negative", ErrInvalidTuning, t.MoveSpeed)
	case t.Friction < 0:
		return fmt.Errorf("%w: friction %.2f is negative", ErrInvalidTuning, t.Friction)
	case t.AngularDamping < 0:
		return fmt.Errorf("%w: angular damping %.2f is negative", ErrInvalidTuning, t.AngularDamping)
	case t.Rotation && t.MaxAngularVel <= 0:
		return fmt.Errorf("%w: rotation needs a positive max angular velocity", ErrInvalidTuning)
	case t.ContactSlop < 0:
		return fmt.Errorf("%w: contact slop %.2f is negative", ErrInvalidTuning, t.ContactSlop)
	}
	return nil
}
