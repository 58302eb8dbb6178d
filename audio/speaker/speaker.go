// Package speaker plays sounds on the default audio device.
package speaker

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// Sink mixes every played streamer into the speaker output.
type Sink struct {
	mixer *beep.Mixer
}

// Open initialises the speaker at rate with the given buffer length and starts playback of
// an empty mixer.
func Open(rate beep.SampleRate, buffer time.Duration) (*Sink, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}

	s := &Sink{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Sink) Play(streamer beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close stops every sound and releases the device.
func (s *Sink) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
