package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
)

// Kind selects how the body is simulated.
type Kind int

const (
	Dynamic Kind = iota
	Kinematic
	Static
)

func (k Kind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return "unknown"
}

// Transform is the rendered pose of an entity. Entities with a Body have it synced
// from the simulation after every step.
type Transform struct {
	Position cp.Vector
	Angle    float64
}

// Body is the component linking an entity to its rigid body and collision shape.
type Body struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Kind   Kind
	Sensor bool

	Width, Height float64 // boxes
	Radius        float64 // balls
}

// BodyOption adjusts a shape before it is added to the space.
type BodyOption func(*Body)

// AsSensor makes the shape detect overlaps without colliding.
func AsSensor() BodyOption {
	return func(b *Body) {
		b.Sensor = true
		b.Shape.SetSensor(true)
	}
}

// WithFriction sets the shape's friction coefficient.
func WithFriction(u float64) BodyOption {
	return func(b *Body) { b.Shape.SetFriction(u) }
}

// WithElasticity sets the shape's elasticity.
func WithElasticity(e float64) BodyOption {
	return func(b *Body) { b.Shape.SetElasticity(e) }
}

func newBody(kind Kind, mass, moment float64) *cp.Body {
	switch kind {
	case Kinematic:
		return cp.NewKinematicBody()
	case Static:
		return cp.NewStaticBody()
	}
	return cp.NewBody(mass, moment)
}

// NewBox creates an axis-aligned box centred on pos and adds it to the space.
// Mass is ignored for kinematic and static bodies.
func (w *World) NewBox(kind Kind, pos cp.Vector, width, height, mass float64, opts ...BodyOption) Body {
	b := Body{
		Body:   newBody(kind, mass, cp.MomentForBox(mass, width, height)),
		Kind:   kind,
		Width:  width,
		Height: height,
	}
	b.Body.SetPosition(pos)
	b.Shape = cp.NewBox(b.Body, width, height, 0)
	b.Shape.SetFriction(0.7)
	for _, opt := range opts {
		opt(&b)
	}
	return w.Add(b)
}

// NewBall creates a circle centred on pos and adds it to the space.
func (w *World) NewBall(kind Kind, pos cp.Vector, radius, mass float64, opts ...BodyOption) Body {
	b := Body{
		Body:   newBody(kind, mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})),
		Kind:   kind,
		Radius: radius,
	}
	b.Body.SetPosition(pos)
	b.Shape = cp.NewCircle(b.Body, radius, cp.Vector{})
	b.Shape.SetFriction(0.7)
	for _, opt := range opts {
		opt(&b)
	}
	return w.Add(b)
}

// Attach records the owning entity on the body and shape so queries can map hits back
// to entities.
func (b *Body) Attach(ref *ecs.EntityRef) {
	b.Body.UserData = ref
	b.Shape.UserData = ref
}

// Ref returns the owning entity, or nil if the body was never attached.
func (b *Body) Ref() *ecs.EntityRef {
	if b.Shape == nil {
		return nil
	}
	ref, _ := b.Shape.UserData.(*ecs.EntityRef)
	return ref
}

func (b *Body) Position() cp.Vector {
	return b.Body.Position()
}

// Bounds recomputes the shape's bounding box from the body's current transform.
func (b *Body) Bounds() cp.BB {
	return b.Shape.CacheBB()
}

// Teleport moves the body and clears its velocity.
func (b *Body) Teleport(pos cp.Vector) {
	// Static shapes are only indexed when added
	space := b.Shape.Space()
	if b.Kind == Static && space != nil {
		space.RemoveShape(b.Shape)
		b.Body.SetPosition(pos)
		space.AddShape(b.Shape)
		return
	}
	b.Body.SetPosition(pos)
	b.Body.SetVelocityVector(cp.Vector{})
}

// Spawn spawns an entity holding the body plus the given components, then attaches the
// entity's ref to the body.
func Spawn(storage *ecs.Storage, b Body, components ...any) ecs.EntityId {
	pos := b.Position()
	all := append([]any{b, Transform{Position: pos, Angle: b.Body.Angle()}}, components...)
	id := storage.Spawn(all...)
	b.Attach(storage.CreateEntityRef(id))
	return id
}

// SpawnDeferred queues the same spawn on the frame's commands.
func SpawnDeferred(frame *ecs.UpdateFrame, b Body, components ...any) {
	pos := b.Position()
	all := append([]any{b, Transform{Position: pos, Angle: b.Body.Angle()}}, components...)
	frame.Commands.SpawnThen(func(id ecs.EntityId) {
		b.Attach(frame.Storage.CreateEntityRef(id))
	}, all...)
}

// Despawn removes the entity's body from the space immediately and queues the entity
// for deletion.
func Despawn(frame *ecs.UpdateFrame, world *World, id ecs.EntityId) {
	if body := ecs.ReadComponent[Body](frame.Storage, id); body != nil {
		world.Remove(body)
	}
	frame.Commands.Delete(id)
}
