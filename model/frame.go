package model

// Frame is one spectral snapshot from the capture collaborator: one 0-255
// amplitude per frequency bin, ordered low to high. Now is a monotonically
// increasing timestamp in ms on the same clock as SampleRate. The core only
// reads Data for the duration of one detection call.
type Frame struct {
	Data       []byte
	SampleRate float64
	Now        float64
}
