package lane

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/notelane/model"
)

func TestNotesTakeLowestFreeSlot(t *testing.T) {
	assert := assert.New(t)
	a := New(3)

	entered := a.Update([]string{"A4", "C5"})
	assert.Equal([]model.LaneEvent{{Slot: 0, Note: "A4"}, {Slot: 1, Note: "C5"}}, entered)
	assert.Equal([]string{"A4", "C5", ""}, a.Slots())
}

func TestPersistingNoteKeepsItsSlot(t *testing.T) {
	assert := assert.New(t)
	a := New(3)

	a.Update([]string{"A4", "C5"})
	// A4 leaves, C5 must not move
	entered := a.Update([]string{"C5"})
	assert.Empty(entered)
	assert.Equal([]string{"", "C5", ""}, a.Slots())

	// across many ticks
	for i := 0; i < 10; i++ {
		a.Update([]string{"C5"})
		assert.Equal([]string{"", "C5", ""}, a.Slots())
	}
}

func TestVacatedSlotIsReused(t *testing.T) {
	assert := assert.New(t)
	a := New(2)

	a.Update([]string{"A4", "C5"})
	entered := a.Update([]string{"C5", "D5"})
	// A4's old slot 0 goes to the newcomer, C5 stays put
	assert.Equal([]model.LaneEvent{{Slot: 0, Note: "D5"}}, entered)
	assert.Equal([]string{"D5", "C5"}, a.Slots())
}

func TestOverflowNoteIsDroppedWithoutPreemption(t *testing.T) {
	assert := assert.New(t)
	a := New(2)

	a.Update([]string{"A4", "C5"})
	entered := a.Update([]string{"A4", "C5", "D5"})
	assert.Empty(entered)
	assert.Equal([]string{"A4", "C5"}, a.Slots())

	// the dropped note gets a slot as soon as one frees up
	entered = a.Update([]string{"C5", "D5"})
	assert.Equal([]model.LaneEvent{{Slot: 0, Note: "D5"}}, entered)
}

func TestSlotsReturnsACopy(t *testing.T) {
	a := New(2)
	a.Update([]string{"A4"})
	slots := a.Slots()
	slots[0] = "scribbled"
	assert.Equal(t, []string{"A4", ""}, a.Slots())
}
