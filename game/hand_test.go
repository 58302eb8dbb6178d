package game_test

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/plus3/nudelsalat/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandFollowsCursor(t *testing.T) {
	h := newHarness(t, nil)

	h.pointAt(cp.Vector{X: 200, Y: -100})
	h.step()
	assert.InDelta(t, 200, h.hand().Position().X, 0.01)
	assert.InDelta(t, -100, h.hand().Position().Y, 0.01)

	h.step()
	assert.InDelta(t, 0, h.hand().Body.Body.Velocity().Length(), 0.01)
}

func TestHandStopsWhilePaused(t *testing.T) {
	h := newHarness(t, nil)
	h.input.Press(game.KeyEscape)
	h.step()
	require.Equal(t, game.PhasePaused, h.state.Phase)

	before := h.hand().Position()
	h.pointAt(cp.Vector{X: 300, Y: 0})
	h.steps(3)
	assert.Equal(t, before, h.hand().Position())
}

func TestGrabDragAndRelease(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	grabbed := ecs.NewMessageReader[game.ItemGrabbed](h.storage)
	released := ecs.NewMessageReader[game.HandReleased](h.storage)
	sounds := ecs.NewMessageReader[game.PlaySound](h.storage)

	item := h.spawnItem("red", cp.Vector{})
	h.press()

	hand := h.hand()
	require.True(t, hand.Grabbing)
	assert.Same(t, item, hand.Grabbed)
	assert.True(t, h.world.Holds(hand.Joint))
	assert.Equal(t, []game.ItemGrabbed{{Item: item, Name: "red"}}, grabbed.Drain())
	assert.Contains(t, sounds.Drain(), game.PlaySound{Sound: game.SoundGrab, Volume: 1})

	target := cp.Vector{X: 100, Y: -50}
	h.pointAt(target)
	h.steps(30)
	assert.InDelta(t, target.X, h.position(item).X, 10)
	assert.InDelta(t, target.Y, h.position(item).Y, 10)

	h.release()
	hand = h.hand()
	assert.False(t, hand.Grabbing)
	assert.Nil(t, hand.Grabbed)
	assert.Nil(t, hand.Joint)
	assert.Equal(t, 0, h.world.JointCount())

	msgs := released.Drain()
	require.Len(t, msgs, 1)
	assert.Same(t, item, msgs[0].Item)
	assert.InDelta(t, target.X, msgs[0].Position.X, 10)
}

func TestGrabPicksNearestBody(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()

	near := h.spawnItem("red", cp.Vector{X: -18})
	h.spawnItem("blue", cp.Vector{X: 20})
	h.press()

	assert.Same(t, near, h.hand().Grabbed)
}

func TestGrabNeedsShapeContact(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	item := h.spawnItem("red", cp.Vector{})
	ecs.ReadComponent[physics.Body](h.storage, item.Id).Body.SetAngle(math.Pi / 4)

	// within the rotated item's bounds, but its edge is about 11 units away
	h.pointAt(cp.Vector{X: 19, Y: 19})
	h.step()
	h.press()
	assert.False(t, h.hand().Grabbing)
	h.release()

	h.pointAt(cp.Vector{X: 14, Y: 14})
	h.step()
	h.press()
	require.True(t, h.hand().Grabbing)
	assert.Same(t, item, h.hand().Grabbed)
}

func TestReleaseWhilePausedDropsItem(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	released := ecs.NewMessageReader[game.HandReleased](h.storage)
	clicked := ecs.NewMessageReader[game.HandClicked](h.storage)

	h.spawnItem("red", cp.Vector{})
	h.press()
	require.True(t, h.hand().Grabbing)

	h.input.Press(game.KeyEscape)
	h.step()
	require.Equal(t, game.PhasePaused, h.state.Phase)

	h.release()
	h.input.Press(game.KeyEscape)
	h.step()
	require.Equal(t, game.PhasePlaying, h.state.Phase)
	h.steps(5)

	hand := h.hand()
	assert.False(t, h.input.LeftDown)
	assert.False(t, hand.Grabbing)
	assert.Nil(t, hand.Grabbed)
	assert.Nil(t, hand.Joint)
	assert.Equal(t, 0, h.world.JointCount())
	assert.Empty(t, released.Drain())
	assert.Empty(t, clicked.Drain())
}

func TestGrabIgnoresEmptySpace(t *testing.T) {
	h := newHarness(t, nil)
	clicked := ecs.NewMessageReader[game.HandClicked](h.storage)
	released := ecs.NewMessageReader[game.HandReleased](h.storage)

	h.press()
	assert.False(t, h.hand().Grabbing)
	assert.Equal(t, 0, h.world.JointCount())

	h.release()
	assert.Len(t, clicked.Drain(), 1)
	assert.Empty(t, released.Drain())
}

func TestGrabIgnoresStaticBodies(t *testing.T) {
	h := newHarness(t, nil)
	h.pointAt(cp.Vector{X: -400, Y: 240})
	h.step()

	h.press()
	assert.False(t, h.hand().Grabbing)
}

func TestGrabbedItemRemovedReleasesHand(t *testing.T) {
	h := newHarness(t, nil)
	h.noGravity()
	item := h.spawnItem("green", cp.Vector{})
	h.press()
	require.True(t, h.hand().Grabbing)

	id := item.Id
	h.world.Remove(ecs.ReadComponent[physics.Body](h.storage, id))
	h.storage.Delete(id)
	h.step()

	hand := h.hand()
	assert.False(t, hand.Grabbing)
	assert.Nil(t, hand.Grabbed)
	assert.Equal(t, 0, h.world.JointCount())
}

func TestReleaseWithoutPressIsClick(t *testing.T) {
	h := newHarness(t, nil)
	clicked := ecs.NewMessageReader[game.HandClicked](h.storage)

	h.pointAt(cp.Vector{X: 40, Y: 40})
	h.step()
	h.input.LeftDown = true
	h.release()

	msgs := clicked.Drain()
	require.Len(t, msgs, 1)
	assert.InDelta(t, 40, msgs[0].Position.X, 0.01)
	assert.InDelta(t, 40, msgs[0].Position.Y, 0.01)
}
