package play

import (
	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/pitch"
)

const (
	// attack/release ramp length and the fixed sustain gain
	rampMs      = 50.0
	sustainGain = 0.15
)

// Envelope is a piecewise-linear amplitude contour for one tone: silence up
// to Gain over [0, AttackEnd], hold until ReleaseStart, back to silence at
// End. Offsets are seconds from the tone's own start.
type Envelope struct {
	AttackEnd    float64
	ReleaseStart float64
	End          float64
	Gain         float64
}

// At returns the gain t seconds into the tone.
func (e Envelope) At(t float64) float64 {
	switch {
	case t <= 0 || t >= e.End:
		return 0
	case t < e.AttackEnd:
		return e.Gain * t / e.AttackEnd
	case t > e.ReleaseStart:
		return e.Gain * (e.End - t) / (e.End - e.ReleaseStart)
	default:
		return e.Gain
	}
}

// EnvelopeFor builds the contour for a tone lasting durMs. Tones shorter
// than both ramps give up the plateau, never the monotonic ramps: attack
// and release each take half the duration and the plateau has zero width.
func EnvelopeFor(durMs float64) Envelope {
	if durMs < 0 {
		durMs = 0
	}
	dur := durMs / 1000.0
	ramp := rampMs / 1000.0
	if dur < 2*ramp {
		ramp = dur / 2
	}
	return Envelope{
		AttackEnd:    ramp,
		ReleaseStart: dur - ramp,
		End:          dur,
		Gain:         sustainGain,
	}
}

// ToneSink schedules one periodic tone. startSec is relative to the sink's
// clock at the time of the call.
type ToneSink interface {
	ScheduleTone(freq float64, startSec float64, env Envelope)
}

// Schedule maps every playable event onto the sink and returns how many
// tones were scheduled. Events with unmappable note names are skipped
// without aborting the batch. Input order does not matter; every event
// carries its own offsets. Repeated calls schedule independently.
func Schedule(events []model.NoteEvent, sink ToneSink) int {
	scheduled := 0
	for _, ev := range events {
		freq, ok := pitch.FrequencyForNote(ev.Note)
		if !ok {
			continue
		}
		sink.ScheduleTone(freq, ev.Start/1000.0, EnvelopeFor(ev.Duration))
		scheduled++
	}
	return scheduled
}
