package capture

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/jsphweid/notelane/model"
)

// byte magnitude mapping: -100 dB maps to 0, -30 dB maps to 255
const (
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Source owns the microphone stream and turns each audio buffer into a
// 0-255 magnitude frame. Frames arrive on C with an ever-increasing ms
// timestamp derived from the audio clock. When the consumer falls behind,
// frames are dropped rather than stalling the audio callback.
type Source struct {
	C chan model.Frame

	fftSize    int
	sampleRate float64
	stream     *portaudio.Stream
	win        []float64
	elapsed    float64 // ms of audio processed since Start
}

// NewSource opens the default input device. Acquisition failure (no device,
// permission denied) surfaces here as an error for the caller to report;
// retry policy is the caller's concern.
func NewSource(fftSize int, sampleRate float64) (*Source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	s := &Source{
		C:          make(chan model.Frame, 4),
		fftSize:    fftSize,
		sampleRate: sampleRate,
		win:        window.Hann(fftSize),
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, fftSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening input stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

func (s *Source) Start() error {
	return s.stream.Start()
}

func (s *Source) Close() error {
	s.stream.Stop()
	s.stream.Close()
	return portaudio.Terminate()
}

func (s *Source) process(in []float32) {
	samples := make([]float64, s.fftSize)
	for i := range samples {
		if i < len(in) {
			samples[i] = float64(in[i]) * s.win[i]
		}
	}

	spectrum := fft.FFTReal(samples)
	data := make([]byte, s.fftSize/2)
	for i := range data {
		data[i] = byteMagnitude(cmplx.Abs(spectrum[i]) / float64(s.fftSize))
	}

	s.elapsed += float64(s.fftSize) / s.sampleRate * 1000
	frame := model.Frame{Data: data, SampleRate: s.sampleRate, Now: s.elapsed}
	select {
	case s.C <- frame:
	default:
	}
}

// byteMagnitude squashes a normalized linear magnitude onto the 0-255 dB
// scale the detector expects.
func byteMagnitude(mag float64) byte {
	db := 20 * math.Log10(mag+1e-12)
	v := math.Round(255 * (db - minDecibels) / (maxDecibels - minDecibels))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
