package detect

import (
	"sort"

	"github.com/jsphweid/notelane/model"
	"github.com/jsphweid/notelane/pitch"
	"github.com/jsphweid/notelane/util"
)

// Config holds the detector tunables. See the constants package for the
// defaults the CLI uses.
type Config struct {
	FFTSize       int     // analysis window length the magnitudes came from
	Threshold     byte    // minimum bin amplitude (0-255) to count as a peak
	MaxNotes      int     // top-K peaks kept per frame
	MaxFreqScale  float64 // fraction of the bins scanned, from the bottom
	MinDurationMs float64 // continuous peak time before a note is confirmed
}

type peak struct {
	bin int
	amp byte
}

// Detector turns raw magnitude frames into a debounced set of confirmed
// notes. It owns the candidate state: for every note currently in the peak
// set, the ms timestamp it first appeared there. A note that drops out of
// the peak set loses its entry immediately, so flicker never accumulates
// credit toward confirmation.
type Detector struct {
	cfg       Config
	firstSeen map[string]float64
}

func New(cfg Config) *Detector {
	return &Detector{cfg: cfg, firstSeen: make(map[string]float64)}
}

// Process scans one magnitude frame and returns the notes confirmed as of
// now (ms), sorted by name. The frame is only read, never retained.
func (d *Detector) Process(data []byte, sampleRate float64, now float64) model.Notes {
	limit := util.Min(int(float64(len(data))*d.cfg.MaxFreqScale), len(data))

	var peaks []peak
	for bin := 0; bin < limit; bin++ {
		if data[bin] > d.cfg.Threshold {
			peaks = append(peaks, peak{bin: bin, amp: data[bin]})
		}
	}
	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].amp > peaks[j].amp
	})
	if len(peaks) > d.cfg.MaxNotes {
		peaks = peaks[:d.cfg.MaxNotes]
	}

	// peaks landing on the same note collapse via the map
	current := make(map[string]bool, len(peaks))
	for _, p := range peaks {
		freq := float64(p.bin) * sampleRate / float64(d.cfg.FFTSize)
		if name := pitch.NoteForFrequency(freq); name != "" {
			current[name] = true
		}
	}

	for name := range d.firstSeen {
		if !current[name] {
			// note-off: the candidacy clock resets, nothing is emitted
			delete(d.firstSeen, name)
		}
	}

	confirmed := make(map[string]bool)
	for name := range current {
		first, seen := d.firstSeen[name]
		if !seen {
			d.firstSeen[name] = now
			continue
		}
		if now-first > d.cfg.MinDurationMs {
			confirmed[name] = true
		}
	}
	return util.SortedKeys(confirmed)
}
