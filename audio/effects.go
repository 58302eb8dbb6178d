package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/nudelsalat/game"
)

// Effect synthesizes the streamer for a sound. Unknown sounds return nil.
func Effect(sound game.Sound, rate beep.SampleRate) beep.Streamer {
	switch sound {
	case game.SoundGrab:
		return note(Sine, 660, 60*time.Millisecond, rate)
	case game.SoundPlace:
		return beep.Seq(
			note(Sine, 523.25, 50*time.Millisecond, rate),
			note(Sine, 392, 70*time.Millisecond, rate),
		)
	case game.SoundCraft:
		return beep.Seq(
			note(Square, 523.25, 80*time.Millisecond, rate),
			note(Square, 659.25, 80*time.Millisecond, rate),
			note(Square, 783.99, 160*time.Millisecond, rate),
		)
	case game.SoundError:
		return Volume(note(Saw, 110, 180*time.Millisecond, rate), 0.8)
	case game.SoundQuest:
		return beep.Seq(
			Volume(note(Sine, 880, 120*time.Millisecond, rate), 0.7),
			Volume(note(Sine, 1174.66, 120*time.Millisecond, rate), 0.7),
			Volume(note(Sine, 1760, 240*time.Millisecond, rate), 0.5),
		)
	case game.SoundDoor:
		return Volume(note(Noise, 0, 150*time.Millisecond, rate), 0.5)
	}
	return nil
}
