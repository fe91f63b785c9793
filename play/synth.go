package play

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	synthSampleRate = 44100
	synthBufferSize = 1024
)

type tone struct {
	freq     float64
	startPos int64 // absolute sample position
	env      Envelope
	phase    float64
}

// Synth renders scheduled tones as summed sine waves through a portaudio
// output stream. Playback is schedule-and-forget: a tone is discarded once
// its envelope ends and there is no cancellation.
type Synth struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	tones  []*tone
	pos    int64
}

// NewSynth opens the default output device and starts rendering silence.
// Callers must Close.
func NewSynth() (*Synth, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Synth{}
	stream, err := portaudio.OpenDefaultStream(0, 1, synthSampleRate, synthBufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *Synth) ScheduleTone(freq float64, startSec float64, env Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tones = append(s.tones, &tone{
		freq:     freq,
		startPos: s.pos + int64(startSec*synthSampleRate),
		env:      env,
	})
}

// Idle reports whether every scheduled tone has finished rendering.
func (s *Synth) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tones) == 0
}

func (s *Synth) Close() error {
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
	}
	return portaudio.Terminate()
}

func (s *Synth) process(out []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range out {
		var sum float64
		for _, t := range s.tones {
			rel := s.pos - t.startPos
			if rel < 0 {
				continue
			}
			amp := t.env.At(float64(rel) / synthSampleRate)
			if amp == 0 {
				continue
			}
			sum += amp * math.Sin(t.phase)
			t.phase += 2 * math.Pi * t.freq / synthSampleRate
		}
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		out[i] = float32(sum)
		s.pos++
	}

	kept := s.tones[:0]
	for _, t := range s.tones {
		if s.pos < t.startPos || float64(s.pos-t.startPos)/synthSampleRate < t.env.End {
			kept = append(kept, t)
		}
	}
	s.tones = kept
}
