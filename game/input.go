package game

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
)

type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyEscape
	KeyEnter
	KeyR
)

// Input is the singleton snapshot of the pointer and keyboard for the current frame. The
// renderer fills it at the start of a frame; tests write it directly.
type Input struct {
	Cursor       cp.Vector // screen pixels
	LeftDown     bool
	LeftPressed  bool // went down this frame
	LeftReleased bool // went up this frame
	JustPressed  []Key
}

func (in *Input) KeyPressed(k Key) bool {
	return slices.Contains(in.JustPressed, k)
}

// Press records a key going down this frame.
func (in *Input) Press(keys ...Key) {
	in.JustPressed = append(in.JustPressed, keys...)
}

// MoveTo sets the cursor position in screen pixels.
func (in *Input) MoveTo(x, y float64) {
	in.Cursor = cp.Vector{X: x, Y: y}
}

// Click presses or releases the left button.
func (in *Input) Click(down bool) {
	if down && !in.LeftDown {
		in.LeftPressed = true
	}
	if !down && in.LeftDown {
		in.LeftReleased = true
	}
	in.LeftDown = down
}

// EndFrame clears the edge-triggered state.
func (in *Input) EndFrame() {
	in.LeftPressed = false
	in.LeftReleased = false
	in.JustPressed = in.JustPressed[:0]
}

// InputResetSystem runs last and clears the frame's edge-triggered input.
type InputResetSystem struct {
	Input ecs.Singleton[Input]
}

func (s *InputResetSystem) Execute(frame *ecs.UpdateFrame) {
	if input := s.Input.Get(); input != nil {
		input.EndFrame()
	}
}
