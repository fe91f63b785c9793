package lane

import "github.com/jsphweid/notelane/model"

// Assignor maps a changing confirmed-note set onto a fixed number of display
// slots. A note keeps its slot for as long as it stays confirmed; new notes
// take the lowest-index free slot and never preempt an existing occupant.
// When every slot is taken, the newcomer is dropped from display.
type Assignor struct {
	slots []string // "" = vacant
}

func New(numSlots int) *Assignor {
	return &Assignor{slots: make([]string, numSlots)}
}

// Update reconciles the slots against the new confirmed set and returns an
// enter event for every note that was just placed. Removal is observable
// through the Slots snapshot going empty at that index.
func (a *Assignor) Update(confirmed model.Notes) []model.LaneEvent {
	present := make(map[string]bool, len(confirmed))
	for _, n := range confirmed {
		present[n] = true
	}

	held := make(map[string]bool, len(a.slots))
	for i, occ := range a.slots {
		if occ == "" {
			continue
		}
		if !present[occ] {
			a.slots[i] = ""
			continue
		}
		held[occ] = true
	}

	var entered []model.LaneEvent
	for _, n := range confirmed {
		if held[n] {
			continue
		}
		for i, occ := range a.slots {
			if occ == "" {
				a.slots[i] = n
				held[n] = true
				entered = append(entered, model.LaneEvent{Slot: i, Note: n})
				break
			}
		}
	}
	return entered
}

// Slots returns a copy of the slot contents, vacant slots as "".
func (a *Assignor) Slots() []string {
	out := make([]string, len(a.slots))
	copy(out, a.slots)
	return out
}
