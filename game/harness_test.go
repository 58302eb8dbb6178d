package game_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/config"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/plus3/nudelsalat/physics"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

type harness struct {
	t         *testing.T
	scheduler *ecs.Scheduler
	storage   *ecs.Storage
	world     *physics.World
	rooms     *game.RoomManager
	camera    *game.Camera
	input     *game.Input
	state     *game.GameState
	progress  *game.GameProgress
	catalog   *game.ItemCatalog
}

// newHarness builds the default level, moved around by edit, and runs the first frame.
func newHarness(t *testing.T, edit func(*config.Config), opts ...game.Option) *harness {
	t.Helper()
	cfg := config.Default()
	if edit != nil {
		edit(cfg)
	}
	require.NoError(t, cfg.Validate())

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	require.NoError(t, game.Setup(scheduler, cfg, append([]game.Option{game.WithRand(fixedRand(0))}, opts...)...))

	h := &harness{t: t, scheduler: scheduler, storage: storage}
	require.True(t, storage.ReadSingleton(&h.world))
	require.True(t, storage.ReadSingleton(&h.rooms))
	require.True(t, storage.ReadSingleton(&h.camera))
	require.True(t, storage.ReadSingleton(&h.input))
	require.True(t, storage.ReadSingleton(&h.state))
	require.True(t, storage.ReadSingleton(&h.progress))
	require.True(t, storage.ReadSingleton(&h.catalog))

	h.pointAt(h.rooms.Center(h.rooms.Current))
	h.step()
	return h
}

func (h *harness) step() {
	h.scheduler.Once(frame)
}

func (h *harness) steps(n int) {
	for i := 0; i < n; i++ {
		h.step()
	}
}

func (h *harness) noGravity() {
	h.world.Space.SetGravity(cp.Vector{})
}

// pointAt puts the cursor over a world position.
func (h *harness) pointAt(p cp.Vector) {
	s := h.camera.WorldToScreen(p)
	h.input.MoveTo(s.X, s.Y)
}

func (h *harness) press() {
	h.input.Click(true)
	h.step()
}

func (h *harness) release() {
	h.input.Click(false)
	h.step()
}

func (h *harness) spawnItem(name string, p cp.Vector) *ecs.EntityRef {
	h.t.Helper()
	id, err := game.SpawnItem(h.storage, h.world, h.catalog, p, name)
	require.NoError(h.t, err)
	return h.storage.CreateEntityRef(id)
}

type handView struct {
	*game.Hand
	*physics.Body
}

func (h *harness) hand() handView {
	h.t.Helper()
	hand, ok := ecs.NewQuery[handView](h.storage).Single()
	require.True(h.t, ok)
	return hand
}

func (h *harness) position(ref *ecs.EntityRef) cp.Vector {
	h.t.Helper()
	require.True(h.t, ref.Alive())
	return ecs.ReadComponent[physics.Body](h.storage, ref.Id).Position()
}

type machineView struct {
	ecs.EntityId
	*game.Machine
}

func (h *harness) machine() (*ecs.EntityRef, *game.Machine) {
	h.t.Helper()
	m, ok := ecs.NewQuery[machineView](h.storage).Single()
	require.True(h.t, ok)
	return h.storage.CreateEntityRef(m.EntityId), m.Machine
}

type npcView struct {
	ecs.EntityId
	*game.NPC
	*game.Quest
}

func (h *harness) npc(name string) (*ecs.EntityRef, *game.NPC, *game.Quest) {
	h.t.Helper()
	for v := range ecs.NewQuery[npcView](h.storage).Values() {
		if v.NPC.Name == name {
			return h.storage.CreateEntityRef(v.EntityId), v.NPC, v.Quest
		}
	}
	h.t.Fatalf("no npc %q", name)
	return nil, nil, nil
}

// items returns the names of every item entity.
func (h *harness) items() []string {
	var names []string
	for item := range ecs.NewQuery[struct{ *game.Item }](h.storage).Values() {
		names = append(names, item.Name)
	}
	return names
}

// machineAt moves the configured machine into the start room at offset.
func machineAt(offset config.Vec2) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.Machines[0].Room = config.Grid{}
		cfg.Machines[0].Offset = offset
	}
}
