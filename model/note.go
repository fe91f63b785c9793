package model

// Notes is a set of currently sounding note names, e.g. ["A4", "C#5"].
type Notes = []string

// NoteEvent is one finalized recorded note. Start is the ms offset from the
// recording session start, Duration is in ms. Never mutated after creation.
type NoteEvent struct {
	Note     string  `json:"note"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// LaneEvent announces a note entering a display lane.
type LaneEvent struct {
	Slot int    `json:"slot"`
	Note string `json:"note"`
}
