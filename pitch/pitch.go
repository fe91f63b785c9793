package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A4, the equal-tempered reference pitch.
const referenceHz = 440.0

// midi number of A4
const referenceMidi = 69

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteForFrequency maps a frequency in Hz to its nearest equal-tempered note
// name, e.g. 440 -> "A4". Returns "" for frequencies at or below zero or
// whose pitch falls outside the MIDI range [0, 127].
func NoteForFrequency(freq float64) string {
	n, ok := MidiForFrequency(freq)
	if !ok {
		return ""
	}
	return NameForMidi(n)
}

// MidiForFrequency rounds a frequency to the nearest MIDI pitch number.
func MidiForFrequency(freq float64) (uint8, bool) {
	if freq <= 0 {
		return 0, false
	}
	semitones := int(math.Round(12 * math.Log2(freq/referenceHz)))
	n := semitones + referenceMidi
	if n < 0 || n > 127 {
		return 0, false
	}
	return uint8(n), true
}

// NameForMidi names a MIDI pitch number, 0 -> "C-1", 69 -> "A4".
func NameForMidi(n uint8) string {
	return fmt.Sprintf("%v%v", noteNames[n%12], int(n)/12-1)
}

// FrequencyForNote is the inverse mapping, "A4" -> 440. ok is false for
// names that do not parse.
func FrequencyForNote(name string) (float64, bool) {
	n, ok := MidiForNote(name)
	if !ok {
		return 0, false
	}
	return referenceHz * math.Pow(2, float64(int(n)-referenceMidi)/12.0), true
}

// MidiForNote parses a note name back to its MIDI pitch number.
func MidiForNote(name string) (uint8, bool) {
	// match "C#" before "C"
	letter := -1
	letterLen := 0
	for i, nn := range noteNames {
		if strings.HasPrefix(name, nn) && len(nn) > letterLen {
			letter = i
			letterLen = len(nn)
		}
	}
	if letter < 0 {
		return 0, false
	}
	octave, err := strconv.Atoi(name[letterLen:])
	if err != nil {
		return 0, false
	}
	n := (octave+1)*12 + letter
	if n < 0 || n > 127 {
		return 0, false
	}
	return uint8(n), true
}
