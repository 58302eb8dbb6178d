package ecs_test

import "github.com/plus3/nudelsalat/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Label struct {
	Value string
}

type Crate struct {
	Contents []string
	Capacity int
}

type Grabbed struct{}

// Primitive-backed components
type Weight float64
type Tag string

type Holder struct {
	Target *ecs.EntityRef
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Crate](registry)
	ecs.RegisterComponent[Grabbed](registry)
	ecs.RegisterComponent[Weight](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Holder](registry)
	ecs.RegisterComponent[int](registry)
	ecs.RegisterComponent[string](registry)
	return registry
}
