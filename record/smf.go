package record

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/pitch"
)

const (
	exportTempo    = 120.0
	exportTicks    = 960
	exportVelocity = 100
)

type noteEdge struct {
	at  float64 // ms offset from session start
	off bool
	key uint8
}

// WriteSMF saves a finalized take as a single-track standard MIDI file.
// Events with unmappable note names are skipped.
func WriteSMF(events []model.NoteEvent, path string) error {
	var edges []noteEdge
	for _, ev := range events {
		key, ok := pitch.MidiForNote(ev.Note)
		if !ok {
			continue
		}
		edges = append(edges, noteEdge{at: ev.Start, key: key})
		edges = append(edges, noteEdge{at: ev.Start + ev.Duration, off: true, key: key})
	}

	// earlier first, note-off before note-on on ties
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].at != edges[j].at {
			return edges[i].at < edges[j].at
		}
		return edges[i].off && !edges[j].off
	})

	ticks := smf.MetricTicks(exportTicks)
	s := smf.New()
	s.TimeFormat = ticks

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(exportTempo))
	var prev float64
	for _, e := range edges {
		gap := time.Duration((e.at - prev) * float64(time.Millisecond))
		delta := ticks.Ticks(exportTempo, gap)
		if e.off {
			tr.Add(delta, midi.NoteOff(0, e.key))
		} else {
			tr.Add(delta, midi.NoteOn(0, e.key, exportVelocity))
		}
		prev = e.at
	}
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("building midi track: %w", err)
	}
	return s.WriteFile(path)
}

// ReadSMF loads note events back out of a MIDI file, pairing each note-on
// with the next note-off of the same key.
func ReadSMF(path string) (events []model.NoteEvent, e error) {
	// the smf reader panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	s, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}

	onsets := make(map[uint8]float64)
	for _, track := range s.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			// TimeAt is in micros
			at := float64(s.TimeAt(absTicks)) / 1000.0
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case evt.Message.GetNoteOn(&channel, &key, &velocity):
				onsets[key] = at
			case evt.Message.GetNoteOff(&channel, &key, &velocity):
				if on, ok := onsets[key]; ok {
					events = append(events, model.NoteEvent{
						Note:     pitch.NameForMidi(key),
						Start:    on,
						Duration: at - on,
					})
					delete(onsets, key)
				}
			}
		}
	}
	return events, nil
}
