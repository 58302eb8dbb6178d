package game_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/config"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mixerOffset = config.Vec2{X: -150, Y: 200}

func TestPlaceItemInMachine(t *testing.T) {
	h := newHarness(t, machineAt(mixerOffset))
	h.noGravity()
	placed := ecs.NewMessageReader[game.ItemPlaced](h.storage)

	item := h.spawnItem("red", cp.Vector{X: -150, Y: 50})
	h.pointAt(cp.Vector{X: -150, Y: 50})
	h.step()
	h.press()
	require.True(t, h.hand().Grabbing)

	h.pointAt(cp.Vector{X: -150, Y: 112})
	h.steps(20)
	h.release()

	ref, machine := h.machine()
	assert.Equal(t, []string{"red"}, machine.Items)
	assert.False(t, item.Alive())
	assert.Equal(t, []game.ItemPlaced{{Machine: ref, Item: "red"}}, placed.Drain())
	assert.Equal(t, 1, h.progress.ItemsPlaced)
}

func TestMachineRejectsWhenFull(t *testing.T) {
	h := newHarness(t, machineAt(mixerOffset))
	h.noGravity()
	sounds := ecs.NewMessageReader[game.PlaySound](h.storage)

	_, machine := h.machine()
	machine.Items = []string{"red", "red", "red", "red", "red"}
	item := h.spawnItem("green", cp.Vector{X: -150, Y: 112})

	ecs.SendMessage(h.storage, game.HandReleased{Item: item})
	h.step()

	assert.Len(t, machine.Items, 5)
	assert.True(t, item.Alive())
	assert.Contains(t, sounds.Drain(), game.PlaySound{Sound: game.SoundError, Volume: 1})
}

func TestBrokenMachineRejectsItems(t *testing.T) {
	h := newHarness(t, machineAt(mixerOffset))
	h.noGravity()

	_, machine := h.machine()
	machine.Broken = true
	item := h.spawnItem("green", cp.Vector{X: -150, Y: 112})

	ecs.SendMessage(h.storage, game.HandReleased{Item: item})
	h.step()

	assert.Empty(t, machine.Items)
	assert.True(t, item.Alive())
}

func TestReleaseAwayFromInteractablesDoesNothing(t *testing.T) {
	h := newHarness(t, machineAt(mixerOffset))
	h.noGravity()
	placed := ecs.NewMessageReader[game.ItemPlaced](h.storage)

	item := h.spawnItem("red", cp.Vector{X: 0, Y: -200})
	ecs.SendMessage(h.storage, game.HandReleased{Item: item})
	h.step()

	assert.True(t, item.Alive())
	assert.Empty(t, placed.Drain())
}

func TestQuestCompletedWithWantedItem(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	completed := ecs.NewMessageReader[game.QuestCompleted](h.storage)
	talk := ecs.NewMessageReader[game.TalkToNPC](h.storage)
	score := ecs.NewMessageReader[game.ScoreChanged](h.storage)

	ref, npc, quest := h.npc("Greta")
	item := h.spawnItem("yellow", cp.Vector{X: 300, Y: 200})
	ecs.SendMessage(h.storage, game.HandReleased{Item: item})
	h.step()

	assert.True(t, quest.Completed)
	assert.False(t, item.Alive())
	assert.Equal(t, []game.QuestCompleted{{NPC: ref, Name: "Greta", Reward: game.Reward{Points: 100}}}, completed.Drain())
	assert.Equal(t, []game.TalkToNPC{{Name: "Greta", Line: npc.Thanks}}, talk.Drain())
	assert.Equal(t, []game.ScoreChanged{{Delta: 100, Total: 100}}, score.Drain())
	assert.Equal(t, 100.0, h.progress.TotalScore)
	assert.Equal(t, 1, h.progress.QuestsCompleted)
}

func TestQuestRefusesWrongItem(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	talk := ecs.NewMessageReader[game.TalkToNPC](h.storage)

	_, npc, quest := h.npc("Greta")
	item := h.spawnItem("red", cp.Vector{X: 300, Y: 200})
	ecs.SendMessage(h.storage, game.HandReleased{Item: item})
	h.step()

	assert.False(t, quest.Completed)
	assert.True(t, item.Alive())
	assert.Equal(t, []game.TalkToNPC{{Name: "Greta", Line: npc.Refusal}}, talk.Drain())
}

func TestKeyRewardUnlocksRoom(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	cellar := game.GridPos{X: 0, Y: 1}
	require.True(t, h.rooms.Room(h.storage, cellar).Locked)

	item := h.spawnItem("white", cp.Vector{X: 1280 + 400, Y: 200})
	ecs.SendMessage(h.storage, game.HandReleased{Item: item})
	h.step()

	assert.False(t, h.rooms.Room(h.storage, cellar).Locked)
	assert.Equal(t, 0.0, h.progress.TotalScore)
}

func TestAllQuestsCompleteLevel(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	level := ecs.NewMessageReader[game.LevelCompleted](h.storage)

	for _, give := range []struct {
		item string
		at   cp.Vector
	}{
		{"yellow", cp.Vector{X: 300, Y: 200}},
		{"white", cp.Vector{X: 1280 + 400, Y: 200}},
		{"violet", cp.Vector{X: 0, Y: 720 + 200}},
	} {
		item := h.spawnItem(give.item, give.at)
		ecs.SendMessage(h.storage, game.HandReleased{Item: item})
		h.step()
	}

	assert.Equal(t, []game.LevelCompleted{{Score: 350}}, level.Drain())
	h.step()
	assert.Equal(t, game.PhaseLevelComplete, h.state.Phase)
	assert.True(t, h.world.Paused)
}

func TestClickSpawnerSpawnsItem(t *testing.T) {
	h := newHarness(t, nil, game.WithRand(fixedRand(1)))
	spawns := ecs.NewMessageReader[game.SpawnRandomItem](h.storage)

	h.pointAt(cp.Vector{X: -400, Y: 240})
	h.step()
	h.press()
	h.release()

	assert.Len(t, spawns.Drain(), 1)
	assert.Equal(t, []string{"green"}, h.items())
}

func TestClickMachineRequestsBrew(t *testing.T) {
	h := newHarness(t, machineAt(mixerOffset))
	brews := ecs.NewMessageReader[game.BrewRequested](h.storage)
	ref, _ := h.machine()

	ecs.SendMessage(h.storage, game.HandClicked{Position: cp.Vector{X: -150, Y: 200}})
	h.step()

	assert.Equal(t, []game.BrewRequested{{Machine: ref}}, brews.Drain())
}

func TestClickNPCTalks(t *testing.T) {
	h := newHarness(t, nil)
	talk := ecs.NewMessageReader[game.TalkToNPC](h.storage)
	_, npc, quest := h.npc("Greta")

	ecs.SendMessage(h.storage, game.HandClicked{Position: cp.Vector{X: 300, Y: 200}})
	h.step()
	assert.Equal(t, []game.TalkToNPC{{Name: "Greta", Line: npc.Greeting}}, talk.Drain())

	quest.Completed = true
	ecs.SendMessage(h.storage, game.HandClicked{Position: cp.Vector{X: 300, Y: 200}})
	h.step()
	assert.Equal(t, []game.TalkToNPC{{Name: "Greta", Line: npc.Thanks}}, talk.Drain())
}

func TestClickDoorChangesRoom(t *testing.T) {
	h := newHarness(t, nil)
	entered := ecs.NewMessageReader[game.RoomEntered](h.storage)

	ecs.SendMessage(h.storage, game.HandClicked{Position: cp.Vector{X: 560, Y: 200}})
	h.steps(2)

	assert.Equal(t, game.GridPos{X: 1, Y: 0}, h.rooms.Current)
	assert.Equal(t, []game.RoomEntered{{From: game.GridPos{}, To: game.GridPos{X: 1, Y: 0}}}, entered.Drain())
}

func TestReleaseOnDoorChangesRoom(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()

	item := h.spawnItem("red", cp.Vector{X: 560, Y: 200})
	ecs.SendMessage(h.storage, game.HandReleased{Item: item})
	h.steps(2)

	assert.Equal(t, game.GridPos{X: 1, Y: 0}, h.rooms.Current)
	assert.True(t, item.Alive())
}

func TestNearestInteractableWins(t *testing.T) {
	h := newHarness(t, machineAt(config.Vec2{X: 60, Y: 200}))

	// The machine's sensor reaches into the cellar door; the door is nearer.
	target, ok := game.FindInteractable(h.storage, h.world, cp.NewBBForExtents(cp.Vector{X: 100, Y: 200}, 5, 5), nil)
	require.True(t, ok)
	assert.Equal(t, game.InteractDoor, target.Type)

	target, ok = game.FindInteractable(h.storage, h.world, cp.NewBBForExtents(cp.Vector{X: 60, Y: 200}, 5, 5), nil)
	require.True(t, ok)
	assert.Equal(t, game.InteractMachine, target.Type)
}

func TestNPCLinesCycle(t *testing.T) {
	npc := game.NPC{Greeting: "hi", Lines: []string{"a", "b"}}
	assert.Equal(t, []string{"hi", "a", "b", "a"}, []string{npc.Line(), npc.Line(), npc.Line(), npc.Line()})

	quiet := game.NPC{Greeting: "hi"}
	assert.Equal(t, "hi", quiet.Line())
	assert.Equal(t, "hi", quiet.Line())
}
