package ecs_test

import "github.com/plus3/hopper/ecs"

// Common test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Size struct {
	W, H float64
}

type Grounded struct{}

// Custom primitive types for testing non-struct components
type Label string
type Mass float64

type Gravity struct {
	G float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Size](registry)
	ecs.RegisterComponent[Grounded](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Mass](registry)
	return registry
}
