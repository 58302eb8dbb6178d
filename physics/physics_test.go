package physics_test

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Crate struct {
	Name string
}

const frame = 1.0 / 60

func newWorld() physics.World {
	return physics.NewWorld(physics.Options{Gravity: 981, SubSteps: 2})
}

func newStorage(t *testing.T) *ecs.Storage {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	physics.RegisterComponents(registry)
	ecs.RegisterComponent[Crate](registry)
	return ecs.NewStorage(registry)
}

func TestBoxSettlesOnGround(t *testing.T) {
	world := newWorld()
	world.NewBox(physics.Static, cp.Vector{X: 0, Y: 300}, 1000, 20, 0)
	box := world.NewBox(physics.Dynamic, cp.Vector{X: 0, Y: 0}, 32, 32, 1)

	for i := 0; i < 180; i++ {
		world.Step(frame)
	}

	assert.InDelta(t, 274, box.Position().Y, 3)
	assert.InDelta(t, 0, box.Position().X, 1)
	assert.Equal(t, uint64(360), world.Steps())
}

func TestStepClampsLargeDeltas(t *testing.T) {
	world := physics.NewWorld(physics.Options{Gravity: 100, MaxDelta: 0.05})
	box := world.NewBox(physics.Dynamic, cp.Vector{}, 10, 10, 1)

	world.Step(10)
	assert.InDelta(t, 5, box.Body.Velocity().Y, 0.001)

	world.Step(0)
	world.Step(-1)
	assert.Equal(t, uint64(1), world.Steps())
}

func TestStepSystemSyncsTransforms(t *testing.T) {
	storage := newStorage(t)
	storage.AddSingleton(newWorld())
	world := ecs.NewSingleton[physics.World](storage).Get()

	id := physics.Spawn(storage, world.NewBox(physics.Dynamic, cp.Vector{X: 10, Y: 0}, 32, 32, 1), Crate{Name: "red"})
	ref := storage.CreateEntityRef(id)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&physics.StepSystem{})
	for i := 0; i < 30; i++ {
		scheduler.Once(frame)
	}

	current, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	transform := ecs.ReadComponent[physics.Transform](storage, current)
	body := ecs.ReadComponent[physics.Body](storage, current)
	assert.Greater(t, transform.Position.Y, 50.0)
	assert.Equal(t, body.Position(), transform.Position)
	assert.Same(t, ref, body.Ref())
}

func TestPausedWorldDoesNotStep(t *testing.T) {
	storage := newStorage(t)
	w := newWorld()
	w.Paused = true
	storage.AddSingleton(w)
	world := ecs.NewSingleton[physics.World](storage).Get()
	box := world.NewBox(physics.Dynamic, cp.Vector{}, 32, 32, 1)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&physics.StepSystem{})
	scheduler.Once(frame)

	assert.Equal(t, uint64(0), world.Steps())
	assert.Equal(t, cp.Vector{}, box.Position())
}

func TestIntersect(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()

	machine := physics.Spawn(storage, world.NewBox(physics.Static, cp.Vector{X: 100, Y: 100}, 128, 128, 0, physics.AsSensor()), Crate{Name: "machine"})
	item := physics.Spawn(storage, world.NewBox(physics.Dynamic, cp.Vector{X: 110, Y: 100}, 32, 32, 1), Crate{Name: "item"})
	physics.Spawn(storage, world.NewBox(physics.Dynamic, cp.Vector{X: 600, Y: 100}, 32, 32, 1), Crate{Name: "far"})

	hits := world.Intersect(cp.NewBBForExtents(cp.Vector{X: 100, Y: 100}, 10, 10), nil)
	require.Len(t, hits, 2)
	ids := []ecs.EntityId{hits[0].Ref.Id, hits[1].Ref.Id}
	assert.ElementsMatch(t, []ecs.EntityId{machine, item}, ids)
	assert.Less(t, hits[0].Ref.Id, hits[1].Ref.Id)

	sensors := world.Intersect(cp.NewBBForExtents(cp.Vector{X: 100, Y: 100}, 10, 10), func(s *cp.Shape) bool { return s.Sensor() })
	require.Len(t, sensors, 1)
	assert.Equal(t, machine, sensors[0].Ref.Id)
	assert.True(t, sensors[0].Sensor)
}

func TestIntersectSkipsDeadEntities(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()

	id := physics.Spawn(storage, world.NewBox(physics.Static, cp.Vector{}, 50, 50, 0), Crate{})
	storage.Delete(id)

	assert.Empty(t, world.Intersect(cp.NewBBForExtents(cp.Vector{}, 10, 10), nil))
	assert.Equal(t, 1, world.Prune())
	assert.Empty(t, world.Bodies())
}

func TestTouchingExcludesSelf(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()

	handId := physics.Spawn(storage, world.NewBall(physics.Kinematic, cp.Vector{X: 5, Y: 5}, 5, 0, physics.AsSensor()))
	physics.Spawn(storage, world.NewBox(physics.Dynamic, cp.Vector{X: 5, Y: 5}, 32, 32, 1), Crate{Name: "red"})
	physics.Spawn(storage, world.NewBox(physics.Static, cp.Vector{X: 0, Y: 0}, 64, 64, 0, physics.AsSensor()), Crate{Name: "door"})

	hand := ecs.ReadComponent[physics.Body](storage, handId)

	all := world.Touching(hand, nil)
	assert.Len(t, all, 2)
	for _, hit := range all {
		assert.NotEqual(t, handId, hit.Ref.Id)
	}

	sensors := world.Touching(hand, func(s *cp.Shape) bool { return s.Sensor() })
	require.Len(t, sensors, 1)
	assert.Equal(t, "door", ecs.ReadComponent[Crate](storage, sensors[0].Ref.Id).Name)
}

func TestTouchingRotatedBox(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()
	world.Space.SetGravity(cp.Vector{})

	crate := world.NewBox(physics.Dynamic, cp.Vector{}, 32, 32, 1)
	crate.Body.SetAngle(math.Pi / 4)
	crateId := physics.Spawn(storage, crate, Crate{Name: "red"})
	handId := physics.Spawn(storage, world.NewBall(physics.Kinematic, cp.Vector{X: 19, Y: 19}, 5, 0, physics.AsSensor()))
	world.Step(frame)

	hand := ecs.ReadComponent[physics.Body](storage, handId)

	// inside the rotated box's bounds but about 11 units from its edge
	assert.Len(t, world.Intersect(hand.Bounds(), func(s *cp.Shape) bool { return s != hand.Shape }), 1)
	assert.Empty(t, world.Touching(hand, nil))

	hand.Teleport(cp.Vector{X: 14, Y: 14})
	hits := world.Touching(hand, nil)
	require.Len(t, hits, 1)
	assert.Equal(t, crateId, hits[0].Ref.Id)
}

func TestBoundsFollowKinematicMoves(t *testing.T) {
	world := newWorld()
	hand := world.NewBall(physics.Kinematic, cp.Vector{}, 5, 0)

	hand.Body.SetPosition(cp.Vector{X: 300, Y: 40})
	bb := hand.Bounds()
	assert.InDelta(t, 295, bb.L, 0.001)
	assert.InDelta(t, 305, bb.R, 0.001)
	assert.InDelta(t, 35, bb.B, 0.001)
	assert.InDelta(t, 45, bb.T, 0.001)
}

func TestGrabAndRelease(t *testing.T) {
	storage := newStorage(t)
	world := physics.NewWorld(physics.Options{Gravity: 981, SubSteps: 4, GrabMaxForce: 1e6, GrabErrorBias: 1e-6})

	handId := physics.Spawn(storage, world.NewBall(physics.Kinematic, cp.Vector{}, 5, 0, physics.AsSensor()))
	itemId := physics.Spawn(storage, world.NewBox(physics.Dynamic, cp.Vector{}, 32, 32, 1), Crate{Name: "blue"})
	hand := ecs.ReadComponent[physics.Body](storage, handId)
	item := ecs.ReadComponent[physics.Body](storage, itemId)

	joint := world.Grab(hand, item, hand.Position())
	require.NotNil(t, joint)
	assert.True(t, world.Holds(joint))
	assert.Equal(t, itemId, joint.Target.Id)
	assert.Equal(t, 1, world.JointCount())

	hand.Body.SetVelocityVector(cp.Vector{X: 120, Y: 0})
	for i := 0; i < 60; i++ {
		world.Step(frame)
	}

	assert.InDelta(t, 120, hand.Position().X, 0.5)
	assert.InDelta(t, hand.Position().X, item.Position().X, 15)
	assert.InDelta(t, hand.Position().Y, item.Position().Y, 15)

	world.Release(joint)
	assert.False(t, world.Holds(joint))
	assert.Equal(t, 0, world.JointCount())
	world.Release(joint)
	world.Release(nil)

	// Without the joint the item falls away
	start := item.Position().Y
	for i := 0; i < 30; i++ {
		world.Step(frame)
	}
	assert.Greater(t, item.Position().Y, start+50)
}

func TestRemoveDropsJoints(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()

	handId := physics.Spawn(storage, world.NewBall(physics.Kinematic, cp.Vector{}, 5, 0, physics.AsSensor()))
	itemId := physics.Spawn(storage, world.NewBox(physics.Dynamic, cp.Vector{}, 32, 32, 1), Crate{})
	hand := ecs.ReadComponent[physics.Body](storage, handId)
	item := ecs.ReadComponent[physics.Body](storage, itemId)

	joint := world.Grab(hand, item, cp.Vector{})
	world.Remove(item)

	assert.False(t, world.Holds(joint))
	assert.Len(t, world.Bodies(), 1)
	world.Release(joint)
	world.Step(frame)
}

func TestDespawn(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()
	id := physics.Spawn(storage, world.NewBox(physics.Dynamic, cp.Vector{}, 32, 32, 1), Crate{})

	cmds := &ecs.Commands{}
	physics.Despawn(&ecs.UpdateFrame{Commands: cmds, Storage: storage}, &world, id)
	assert.Empty(t, world.Bodies())
	assert.True(t, storage.Exists(id))

	cmds.Flush(storage)
	assert.False(t, storage.Exists(id))
}

func TestSpawnDeferred(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()

	cmds := &ecs.Commands{}
	body := world.NewBox(physics.Dynamic, cp.Vector{X: 7}, 16, 16, 1)
	physics.SpawnDeferred(&ecs.UpdateFrame{Commands: cmds, Storage: storage}, body, Crate{Name: "late"})
	assert.Nil(t, body.Ref())
	assert.Empty(t, world.Intersect(cp.NewBBForExtents(cp.Vector{X: 7}, 1, 1), nil))

	cmds.Flush(storage)
	require.NotNil(t, body.Ref())
	assert.Equal(t, "late", ecs.ReadComponent[Crate](storage, body.Ref().Id).Name)
	assert.Len(t, world.Intersect(cp.NewBBForExtents(cp.Vector{X: 7}, 1, 1), nil), 1)
}

func TestTeleportStatic(t *testing.T) {
	storage := newStorage(t)
	world := newWorld()
	id := physics.Spawn(storage, world.NewBox(physics.Static, cp.Vector{}, 20, 20, 0), Crate{})
	body := ecs.ReadComponent[physics.Body](storage, id)

	body.Teleport(cp.Vector{X: 500, Y: 500})

	assert.Empty(t, world.Intersect(cp.NewBBForExtents(cp.Vector{}, 5, 5), nil))
	assert.Len(t, world.Intersect(cp.NewBBForExtents(cp.Vector{X: 500, Y: 500}, 5, 5), nil), 1)
}
