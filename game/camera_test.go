package game_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/game"
	"github.com/stretchr/testify/assert"
)

func TestCameraProjection(t *testing.T) {
	camera := game.NewCamera(cp.Vector{X: 1280, Y: 720})
	camera.Position = cp.Vector{X: 1280, Y: 0}

	assert.Equal(t, cp.Vector{X: 1280, Y: 0}, camera.ScreenToWorld(cp.Vector{X: 640, Y: 360}))
	assert.Equal(t, cp.Vector{X: 640, Y: -360}, camera.ScreenToWorld(cp.Vector{}))

	camera.Zoom = 2
	assert.Equal(t, cp.Vector{X: 0, Y: -720}, camera.ScreenToWorld(cp.Vector{}))

	p := cp.Vector{X: 1000, Y: 123}
	back := camera.WorldToScreen(camera.ScreenToWorld(camera.WorldToScreen(p)))
	assert.InDelta(t, camera.WorldToScreen(p).X, back.X, 1e-9)
	assert.InDelta(t, camera.WorldToScreen(p).Y, back.Y, 1e-9)
}

func TestCameraLerpIsClamped(t *testing.T) {
	camera := game.NewCamera(cp.Vector{X: 1280, Y: 720})

	camera.Update(cp.Vector{X: 100}, 0.05)
	assert.InDelta(t, 50, camera.Position.X, 1e-9)

	camera.Update(cp.Vector{X: 100}, 1)
	assert.InDelta(t, 100, camera.Position.X, 1e-9)
}

func TestCameraZoomClamped(t *testing.T) {
	camera := game.NewCamera(cp.Vector{X: 1280, Y: 720})

	camera.SetZoom(50)
	assert.Equal(t, 10.0, camera.TargetZoom)
	camera.ZoomIn(100)
	assert.Equal(t, 0.1, camera.TargetZoom)
	camera.ZoomOut(0.9)
	assert.InDelta(t, 1, camera.TargetZoom, 1e-9)

	camera.SetZoom(2)
	camera.Update(cp.Vector{}, 1)
	assert.Equal(t, 2.0, camera.Zoom)
}

func TestCameraShakeDecays(t *testing.T) {
	camera := game.NewCamera(cp.Vector{X: 1280, Y: 720})

	camera.AddTrauma(0.7)
	camera.AddTrauma(0.7)
	assert.Equal(t, 1.0, camera.Trauma)

	camera.Update(cp.Vector{}, 0.1)
	assert.InDelta(t, 0.85, camera.Trauma, 1e-9)
	assert.NotEqual(t, cp.Vector{}, camera.ShakeOffset)
	assert.LessOrEqual(t, camera.ShakeOffset.Length(), camera.ShakeMaxOffset*1.5)
	assert.Equal(t, camera.Position.Add(camera.ShakeOffset), camera.View())

	camera.Update(cp.Vector{}, 1)
	assert.Equal(t, 0.0, camera.Trauma)
	assert.Equal(t, cp.Vector{}, camera.ShakeOffset)
}
