package pipeline

import (
	"github.com/jsphweid/notelane/detect"
	"github.com/jsphweid/notelane/lane"
	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/record"
)

// Pipeline drives one frame through detector, lane assignor and recorder in
// that fixed order. There is one logical thread of mutation: callers that
// tick from one goroutine and read recorder state from another must
// serialize Tick against that access themselves.
type Pipeline struct {
	Detector *detect.Detector
	Lanes    *lane.Assignor
	Recorder *record.Recorder

	confirmed model.Notes
	history   []model.Notes
	histDepth int
}

func New(d *detect.Detector, l *lane.Assignor, r *record.Recorder, historyDepth int) *Pipeline {
	return &Pipeline{Detector: d, Lanes: l, Recorder: r, histDepth: historyDepth}
}

// Tick processes one magnitude frame and returns the lane-enter events for
// the rendering collaborator.
func (p *Pipeline) Tick(f model.Frame) []model.LaneEvent {
	p.confirmed = p.Detector.Process(f.Data, f.SampleRate, f.Now)
	entered := p.Lanes.Update(p.confirmed)
	p.Recorder.Update(p.confirmed, f.Now)

	if p.histDepth > 0 {
		p.history = append(p.history, p.confirmed)
		if len(p.history) > p.histDepth {
			p.history = p.history[1:]
		}
	}
	return entered
}

// Confirmed returns a copy of the last tick's confirmed-note set.
func (p *Pipeline) Confirmed() model.Notes {
	out := make(model.Notes, len(p.confirmed))
	copy(out, p.confirmed)
	return out
}

// Slots returns a copy of the current lane contents.
func (p *Pipeline) Slots() []string {
	return p.Lanes.Slots()
}

// History returns the most recent confirmed-note sets, oldest first.
func (p *Pipeline) History() []model.Notes {
	out := make([]model.Notes, len(p.history))
	copy(out, p.history)
	return out
}
