// Package render runs the game in an ebiten window: it feeds pointer and keyboard state
// into the game and draws the world through the camera.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/nudelsalat/debugui"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
)

var keymap = []struct {
	game game.Key
	key  ebiten.Key
}{
	{game.KeyW, ebiten.KeyW},
	{game.KeyA, ebiten.KeyA},
	{game.KeyS, ebiten.KeyS},
	{game.KeyD, ebiten.KeyD},
	{game.KeyEscape, ebiten.KeyEscape},
	{game.KeyEnter, ebiten.KeyEnter},
	{game.KeyR, ebiten.KeyR},
}

const wheelZoomStep = 0.1

// InputSystem copies the ebiten cursor, left button and keys into the Input singleton. Input
// the debug UI wants to capture is withheld from the game.
type InputSystem struct {
	Input   ecs.Singleton[game.Input]
	Camera  ecs.Singleton[game.Camera]
	Capture ecs.Singleton[debugui.ImguiInputState]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil {
		return
	}
	capture := s.Capture.Get()

	if capture == nil || !capture.WantCaptureMouse {
		x, y := ebiten.CursorPosition()
		input.MoveTo(float64(x), float64(y))
		input.Click(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

		if _, dy := ebiten.Wheel(); dy != 0 {
			if camera := s.Camera.Get(); camera != nil {
				camera.ZoomIn(dy * wheelZoomStep)
			}
		}
	} else if input.LeftDown {
		input.Click(false)
	}

	if capture != nil && capture.WantCaptureKeyboard {
		return
	}
	for _, k := range keymap {
		if inpututil.IsKeyJustPressed(k.key) {
			input.Press(k.game)
		}
	}
}
