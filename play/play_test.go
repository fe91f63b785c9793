package play

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/notelane/model"
)

type scheduledTone struct {
	freq     float64
	startSec float64
	env      Envelope
}

type fakeSink struct {
	tones []scheduledTone
}

func (f *fakeSink) ScheduleTone(freq float64, startSec float64, env Envelope) {
	f.tones = append(f.tones, scheduledTone{freq: freq, startSec: startSec, env: env})
}

func TestEnvelopeShape(t *testing.T) {
	assert := assert.New(t)
	env := EnvelopeFor(500)

	assert.InDelta(0.05, env.AttackEnd, 1e-9)
	assert.InDelta(0.45, env.ReleaseStart, 1e-9)
	assert.InDelta(0.5, env.End, 1e-9)

	assert.Equal(0.0, env.At(-1))
	assert.Equal(0.0, env.At(0))
	assert.InDelta(env.Gain/2, env.At(0.025), 1e-9)
	assert.InDelta(env.Gain, env.At(0.25), 1e-9)
	assert.InDelta(env.Gain/2, env.At(0.475), 1e-9)
	assert.Equal(0.0, env.At(0.5))
	assert.Equal(0.0, env.At(1))
}

func TestShortEnvelopeStaysMonotonic(t *testing.T) {
	assert := assert.New(t)
	// shorter than attack+release: plateau clamps to zero width
	env := EnvelopeFor(60)

	assert.InDelta(0.03, env.AttackEnd, 1e-9)
	assert.InDelta(0.03, env.ReleaseStart, 1e-9)
	assert.InDelta(0.06, env.End, 1e-9)
	assert.True(env.AttackEnd <= env.ReleaseStart, "release may not start before attack ends")

	// rising then falling, never inverted
	prev := env.At(0)
	for ms := 1; ms <= 30; ms++ {
		cur := env.At(float64(ms) / 1000)
		assert.GreaterOrEqual(cur, prev, "attack not monotonic at %vms", ms)
		prev = cur
	}
	for ms := 31; ms <= 60; ms++ {
		cur := env.At(float64(ms) / 1000)
		assert.LessOrEqual(cur, prev, "release not monotonic at %vms", ms)
		prev = cur
	}
}

func TestZeroDurationEnvelopeIsSilent(t *testing.T) {
	env := EnvelopeFor(0)
	for _, sec := range []float64{-0.1, 0, 0.01, 1} {
		if env.At(sec) != 0 {
			t.Errorf("expected silence at %v", sec)
		}
	}
}

func TestScheduleSkipsUnmappableNotes(t *testing.T) {
	assert := assert.New(t)
	sink := &fakeSink{}

	events := []model.NoteEvent{
		{Note: "A4", Start: 0, Duration: 500},
		{Note: "no-such-note", Start: 100, Duration: 100},
		{Note: "C5", Start: 1500, Duration: 250},
	}
	n := Schedule(events, sink)

	assert.Equal(2, n)
	assert.Len(sink.tones, 2)
	assert.InDelta(440.0, sink.tones[0].freq, 0.001)
	assert.InDelta(0.0, sink.tones[0].startSec, 1e-9)
	assert.InDelta(0.5, sink.tones[0].env.End, 1e-9)
	assert.InDelta(1.5, sink.tones[1].startSec, 1e-9)
}

func TestScheduleIgnoresInputOrder(t *testing.T) {
	sink := &fakeSink{}
	events := []model.NoteEvent{
		{Note: "C5", Start: 1000, Duration: 100},
		{Note: "A4", Start: 0, Duration: 100},
	}
	Schedule(events, sink)
	// each tone carries its own offset, unsorted input is fine
	assert.InDelta(t, 1.0, sink.tones[0].startSec, 1e-9)
	assert.InDelta(t, 0.0, sink.tones[1].startSec, 1e-9)
}
