package game_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomGeometry(t *testing.T) {
	rooms := game.NewRoomManager(cp.Vector{X: 1280, Y: 720})

	assert.Equal(t, cp.Vector{X: -1280, Y: 1440}, rooms.Center(game.GridPos{X: -1, Y: 2}))
	assert.Equal(t, game.GridPos{X: 1, Y: 0}, rooms.At(cp.Vector{X: 1000, Y: 300}))
	assert.Equal(t, game.GridPos{X: 0, Y: -1}, rooms.At(cp.Vector{X: -500, Y: -400}))
}

func TestColliderBox(t *testing.T) {
	size := cp.Vector{X: 1280, Y: 720}
	center := cp.Vector{X: 1280, Y: 0}

	pos, w, h := game.ColliderBox(game.Ground, center, size, 32, 128)
	assert.Equal(t, cp.Vector{X: 1280, Y: 328}, pos)
	assert.Equal(t, [2]float64{1280, 128}, [2]float64{w, h})

	pos, w, h = game.ColliderBox(game.Ceiling, center, size, 32, 128)
	assert.Equal(t, cp.Vector{X: 1280, Y: -424}, pos)
	assert.Equal(t, [2]float64{1280, 128}, [2]float64{w, h})

	pos, w, h = game.ColliderBox(game.WallLeft, center, size, 32, 128)
	assert.Equal(t, cp.Vector{X: 1280 - 704, Y: 0}, pos)
	assert.Equal(t, [2]float64{128, 720}, [2]float64{w, h})

	pos, _, _ = game.ColliderBox(game.WallRight, center, size, 32, 128)
	assert.Equal(t, cp.Vector{X: 1280 + 704, Y: 0}, pos)
}

func TestRoomKeysMoveBetweenRooms(t *testing.T) {
	h := newHarness(t, nil)
	talk := ecs.NewMessageReader[game.TalkToNPC](h.storage)

	h.input.Press(game.KeyD)
	h.step()
	assert.Equal(t, game.GridPos{X: 1, Y: 0}, h.rooms.Current)

	h.input.Press(game.KeyD)
	h.step()
	assert.Equal(t, game.GridPos{X: 1, Y: 0}, h.rooms.Current, "no room to the right")

	h.input.Press(game.KeyA)
	h.step()
	assert.Equal(t, game.GridPos{}, h.rooms.Current)

	h.input.Press(game.KeyW)
	h.step()
	assert.Equal(t, game.GridPos{}, h.rooms.Current)
	assert.Empty(t, talk.Drain())

	h.input.Press(game.KeyS)
	h.step()
	assert.Equal(t, game.GridPos{}, h.rooms.Current, "cellar is locked")
	assert.Equal(t, []game.TalkToNPC{{Name: "Cellar", Line: "The door is locked."}}, talk.Drain())
}

func TestUnlockedRoomCanBeEntered(t *testing.T) {
	h := newHarness(t, nil)
	cellar := game.GridPos{X: 0, Y: 1}

	require.True(t, h.rooms.Unlock(h.storage, cellar))
	assert.False(t, h.rooms.Unlock(h.storage, game.GridPos{X: 9, Y: 9}))

	ecs.SendMessage(h.storage, game.ChangeRoom{Target: cellar})
	h.step()
	assert.Equal(t, cellar, h.rooms.Current)
}

func TestRoomKeysIgnoredWhilePaused(t *testing.T) {
	h := newHarness(t, nil)
	h.input.Press(game.KeyEscape)
	h.step()

	h.input.Press(game.KeyD)
	h.step()
	assert.Equal(t, game.GridPos{}, h.rooms.Current)
}

func TestCameraFollowsRoom(t *testing.T) {
	h := newHarness(t, nil)
	h.input.Press(game.KeyD)
	h.step()
	assert.Greater(t, h.camera.Position.X, 0.0)
	assert.Less(t, h.camera.Position.X, 1280.0)

	h.steps(120)
	assert.InDelta(t, 1280, h.camera.Position.X, 0.5)
	assert.InDelta(t, 0, h.camera.Position.Y, 0.5)
}
