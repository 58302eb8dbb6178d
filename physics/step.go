package physics

import (
	"github.com/plus3/nudelsalat/ecs"
)

// RegisterComponents registers the physics components with the registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Transform](registry)
}

// StepSystem advances the simulation and copies body poses into Transforms.
type StepSystem struct {
	World  ecs.Singleton[World]
	Bodies ecs.Query[struct {
		*Transform
		*Body
	}]
}

func (s *StepSystem) Execute(frame *ecs.UpdateFrame) {
	world := s.World.Get()
	if world == nil {
		return
	}

	world.Prune()
	if !world.Paused {
		world.Step(frame.DeltaTime)
	}

	for item := range s.Bodies.Values() {
		item.Transform.Position = item.Body.Body.Position()
		item.Transform.Angle = item.Body.Body.Angle()
	}
}
