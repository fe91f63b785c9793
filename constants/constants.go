package constants

import "os"

// Pipeline defaults. Every one of these is an input the core packages take
// from their caller; the CLI exposes flags that override them.
const (
	// FFTSize is the analysis window length the magnitude frames come from.
	FFTSize = 2048

	// SampleRate is the capture rate in Hz.
	SampleRate = 44100

	// HistoryDepth is how many recent confirmed-note sets the pipeline keeps.
	HistoryDepth = 128

	// MinNoteDurationMs is the debounce window: a note must stay in the peak
	// set this long before it counts as confirmed.
	MinNoteDurationMs = 50

	// PeakThreshold is the minimum bin amplitude (0-255) to count as a peak.
	PeakThreshold = 100

	// MaxNotesShown bounds the peaks considered per frame and the number of
	// display lanes.
	MaxNotesShown = 5

	// MaxFrequencyScale is the fraction of the bins scanned, from the bottom.
	// Everything above is treated as non-musical noise.
	MaxFrequencyScale = 0.3

	// MaxRecordingMs is the wall-clock ceiling on a recording session.
	MaxRecordingMs = 60 * 1000

	// MaxRecordedNotes bounds how many notes the recorder tracks at once.
	MaxRecordedNotes = 10
)

func GetServeAddr() string {
	addr := os.Getenv("NOTELANE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}
