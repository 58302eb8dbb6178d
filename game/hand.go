package game

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

type handQuery struct {
	ecs.EntityId
	*Hand
	*physics.Body
}

// HandMovementSystem drives the kinematic hand toward the cursor. The hand moves by velocity
// rather than teleporting so that a held item is dragged along by its joint.
type HandMovementSystem struct {
	Input  ecs.Singleton[Input]
	Camera ecs.Singleton[Camera]
	State  ecs.Singleton[GameState]
	World  ecs.Singleton[physics.World]
	Hands  ecs.Query[handQuery]
}

func (s *HandMovementSystem) Execute(frame *ecs.UpdateFrame) {
	input, camera, world := s.Input.Get(), s.Camera.Get(), s.World.Get()
	if input == nil || camera == nil || world == nil {
		return
	}
	playing := s.State.Get().Playing()
	target := camera.ScreenToWorld(input.Cursor)

	for hand := range s.Hands.Values() {
		if !playing {
			hand.Body.Body.SetVelocityVector(cp.Vector{})
			continue
		}

		pos := hand.Body.Position()
		dt := min(frame.DeltaTime, world.Options().MaxDelta)
		if dt <= 0 || pos.Distance(target) > camera.Viewport.X*camera.Zoom {
			hand.Body.Teleport(target)
			continue
		}
		hand.Body.Body.SetVelocityVector(target.Sub(pos).Mult(1 / dt))
	}
}

// GrabSystem attaches and detaches the grab joint. A press grabs the dynamic body nearest
// the hand among those its ball touches; releasing while holding something reports
// HandReleased, otherwise HandClicked.
type GrabSystem struct {
	Input ecs.Singleton[Input]
	State ecs.Singleton[GameState]
	World ecs.Singleton[physics.World]
	Hands ecs.Query[handQuery]

	Grabbed  ecs.MessageWriter[ItemGrabbed]
	Released ecs.MessageWriter[HandReleased]
	Clicked  ecs.MessageWriter[HandClicked]
	Sounds   ecs.MessageWriter[PlaySound]

	Logger *zap.Logger
}

func (s *GrabSystem) Execute(frame *ecs.UpdateFrame) {
	input, world := s.Input.Get(), s.World.Get()
	if input == nil || world == nil {
		return
	}
	logger := loggerOr(s.Logger)
	playing := s.State.Get().Playing()

	for hand := range s.Hands.Values() {
		if hand.Grabbing && (!hand.Grabbed.Alive() || !world.Holds(hand.Joint)) {
			world.Release(hand.Joint)
			hand.clear()
			logger.Debug("grabbed entity lost")
		}
		if !playing {
			// a button-up while paused still lets go, without interacting
			if input.LeftReleased && hand.Grabbing {
				world.Release(hand.Joint)
				hand.clear()
				logger.Debug("dropped while not playing")
			}
			continue
		}

		if input.LeftPressed && !hand.Grabbing {
			s.grab(frame, world, hand, logger)
		}
		if input.LeftReleased {
			s.release(frame, world, hand, logger)
		}
	}
}

func (s *GrabSystem) grab(frame *ecs.UpdateFrame, world *physics.World, hand handQuery, logger *zap.Logger) {
	center := hand.Body.Position()
	hits := world.Touching(hand.Body, func(shape *cp.Shape) bool {
		return shape.Body().GetType() == cp.BODY_DYNAMIC
	})

	var target *physics.Body
	best := 0.0
	for _, hit := range hits {
		body := ecs.ReadComponent[physics.Body](frame.Storage, hit.Ref.Id)
		if body == nil {
			continue
		}
		// hits are ordered by id, so ties keep the lower id
		if d := body.Position().Distance(center); target == nil || d < best {
			target, best = body, d
		}
	}
	if target == nil {
		return
	}

	hand.Joint = world.Grab(hand.Body, target, center)
	hand.Grabbed = target.Ref()
	hand.Grabbing = true

	name := ""
	if item := ecs.ReadComponent[Item](frame.Storage, hand.Grabbed.Id); item != nil {
		name = item.Name
	}
	s.Grabbed.Send(ItemGrabbed{Item: hand.Grabbed, Name: name})
	s.Sounds.Send(PlaySound{Sound: SoundGrab, Volume: 1})
	logger.Debug("grabbed", zap.String("item", name), zap.Uint64("entity", uint64(hand.Grabbed.Id)))
}

func (s *GrabSystem) release(frame *ecs.UpdateFrame, world *physics.World, hand handQuery, logger *zap.Logger) {
	if !hand.Grabbing {
		s.Clicked.Send(HandClicked{Position: hand.Body.Position()})
		return
	}

	item := hand.Grabbed
	pos := hand.Body.Position()
	if body := ecs.ReadComponent[physics.Body](frame.Storage, item.Id); body != nil {
		pos = body.Position()
	}

	world.Release(hand.Joint)
	hand.clear()
	s.Released.Send(HandReleased{Item: item, Position: pos})
	logger.Debug("released", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
}
