package audio

import (
	"github.com/gopxl/beep"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"go.uber.org/zap"
)

// Sink plays finished streamers, usually by mixing them into the speaker output.
type Sink interface {
	Play(s beep.Streamer)
}

// Nop discards every sound.
type Nop struct{}

func (Nop) Play(beep.Streamer) {}

// SoundSystem plays a synthesized effect for every PlaySound message.
type SoundSystem struct {
	Sounds ecs.MessageReader[game.PlaySound]

	Sink   Sink
	Rate   beep.SampleRate
	Master float64
	Logger *zap.Logger
}

// NewSoundSystem creates a sound system; a nil sink discards sounds.
func NewSoundSystem(sink Sink, rate beep.SampleRate, master float64, logger *zap.Logger) *SoundSystem {
	if sink == nil {
		sink = Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundSystem{Sink: sink, Rate: rate, Master: master, Logger: logger}
}

func (s *SoundSystem) Execute(frame *ecs.UpdateFrame) {
	for msg := range s.Sounds.Read() {
		effect := Effect(msg.Sound, s.Rate)
		if effect == nil {
			s.Logger.Warn("no effect for sound", zap.Stringer("sound", msg.Sound))
			continue
		}

		volume := msg.Volume
		if volume == 0 {
			volume = 1
		}
		s.Sink.Play(Volume(effect, volume*s.Master))
	}
}
