package record

import (
	"github.com/google/uuid"

	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/util"
)

// Config bounds a recording session.
type Config struct {
	MaxDurationMs float64 // wall-clock ceiling before auto-stop
	MaxNotes      int     // simultaneously tracked notes
}

// Recorder converts the live confirmed-note stream into finalized
// {note, start, duration} events. It is a two-state machine, idle and
// recording. A note's clock starts on the first Update tick that sees it
// confirmed, so Start offsets are confirmation-based rather than
// candidate-onset-based.
type Recorder struct {
	cfg       Config
	recording bool
	id        string
	start     float64            // session start ms
	onsets    map[string]float64 // active note -> absolute onset ms
	events    []model.NoteEvent
}

func New(cfg Config) *Recorder {
	return &Recorder{cfg: cfg, onsets: make(map[string]float64)}
}

// Start begins a fresh session at now (ms), discarding any previous take.
func (r *Recorder) Start(now float64) {
	r.recording = true
	r.id = uuid.New().String()
	r.start = now
	r.onsets = make(map[string]float64)
	r.events = nil
}

// Update feeds one tick's confirmed set. No-op while idle. Reaching the
// duration ceiling stops the session before this tick's input is processed.
func (r *Recorder) Update(confirmed model.Notes, now float64) {
	if !r.recording {
		return
	}
	if now-r.start >= r.cfg.MaxDurationMs {
		r.Stop(r.start + r.cfg.MaxDurationMs)
		return
	}

	present := make(map[string]bool, len(confirmed))
	for _, name := range confirmed {
		present[name] = true
	}
	for _, name := range util.SortedKeys(r.onsets) {
		if !present[name] {
			r.finalize(name, now)
			delete(r.onsets, name)
		}
	}
	for _, name := range confirmed {
		if _, active := r.onsets[name]; active {
			continue
		}
		if len(r.onsets) >= r.cfg.MaxNotes {
			// bounded polyphony: drop the note, not an error
			continue
		}
		r.onsets[name] = now
	}
}

// Stop finalizes every still-active note at now (ms) and returns to idle.
// The event list stays retrievable until the next Start. No-op while idle.
func (r *Recorder) Stop(now float64) {
	if !r.recording {
		return
	}
	for _, name := range util.SortedKeys(r.onsets) {
		r.finalize(name, now)
	}
	r.onsets = make(map[string]float64)
	r.recording = false
}

func (r *Recorder) finalize(name string, off float64) {
	r.events = append(r.events, model.NoteEvent{
		Note:     name,
		Start:    r.onsets[name] - r.start,
		Duration: off - r.onsets[name],
	})
}

// Recording returns a snapshot of the finalized events so far. Safe to call
// mid-session; still-active notes are not included until they finalize. The
// returned slice never aliases internal state.
func (r *Recorder) Recording() []model.NoteEvent {
	out := make([]model.NoteEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Active reports whether a session is in progress.
func (r *Recorder) Active() bool {
	return r.recording
}

// ID returns the current session's id, or the last session's once stopped.
func (r *Recorder) ID() string {
	return r.id
}
