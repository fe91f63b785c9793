package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/notelane/detect"
	"github.com/jsphweid/notelane/lane"
	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/record"
)

const (
	fftSize    = 2048
	sampleRate = 44100.0
	binA4      = 20 // 430.66 Hz rounds to A4
)

func testPipeline(historyDepth int) *Pipeline {
	d := detect.New(detect.Config{
		FFTSize:       fftSize,
		Threshold:     100,
		MaxNotes:      5,
		MaxFreqScale:  0.3,
		MinDurationMs: 50,
	})
	return New(d, lane.New(5), record.New(record.Config{MaxDurationMs: 60000, MaxNotes: 10}), historyDepth)
}

func frameAt(now float64, amps map[int]byte) model.Frame {
	data := make([]byte, fftSize/2)
	for bin, amp := range amps {
		data[bin] = amp
	}
	return model.Frame{Data: data, SampleRate: sampleRate, Now: now}
}

// The end-to-end timing contract: a 440 Hz peak appearing at t=0 and holding
// through t=90 is confirmed at t=60, takes lane 0 there, and once it drops
// out at t=120 the recorder (running since t=0) holds exactly
// {A4, start 60, duration 60}. Recorded start times are confirmation-based.
func TestPipelineTimingRegression(t *testing.T) {
	assert := assert.New(t)
	p := testPipeline(0)
	p.Recorder.Start(0)

	a4 := map[int]byte{binA4: 150}
	for _, now := range []float64{0, 10, 30} {
		entered := p.Tick(frameAt(now, a4))
		assert.Empty(entered, "nothing may confirm before the debounce window at t=%v", now)
		assert.Empty(p.Confirmed())
	}

	entered := p.Tick(frameAt(60, a4))
	assert.Equal([]model.LaneEvent{{Slot: 0, Note: "A4"}}, entered)
	assert.Equal([]string{"A4"}, p.Confirmed())
	assert.Equal([]string{"A4", "", "", "", ""}, p.Slots())

	entered = p.Tick(frameAt(90, a4))
	assert.Empty(entered, "a persisting note re-enters no lane")
	assert.Empty(p.Recorder.Recording(), "still-active note must not be materialized yet")

	p.Tick(frameAt(120, nil))
	assert.Empty(p.Confirmed())
	assert.Equal([]string{"", "", "", "", ""}, p.Slots())
	assert.Equal([]model.NoteEvent{{Note: "A4", Start: 60, Duration: 60}}, p.Recorder.Recording())
}

func TestHistoryIsBounded(t *testing.T) {
	assert := assert.New(t)
	p := testPipeline(3)

	for i := 0; i < 10; i++ {
		p.Tick(frameAt(float64(i*10), nil))
	}
	assert.Len(p.History(), 3)
}

func TestTickOrderIsDetectorLanesRecorder(t *testing.T) {
	assert := assert.New(t)
	p := testPipeline(0)
	p.Recorder.Start(0)

	a4 := map[int]byte{binA4: 150}
	p.Tick(frameAt(0, a4))
	p.Tick(frameAt(60, a4))

	// the same confirmed set reached both lanes and recorder on the same tick
	assert.Equal([]string{"A4", "", "", "", ""}, p.Slots())
	p.Recorder.Stop(100)
	assert.Equal([]model.NoteEvent{{Note: "A4", Start: 60, Duration: 40}}, p.Recorder.Recording())
}
