package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteMagnitudeClampsToScale(t *testing.T) {
	assert := assert.New(t)

	// silence pins to 0, full scale pins to 255
	assert.Equal(byte(0), byteMagnitude(0))
	assert.Equal(byte(255), byteMagnitude(1))

	// -65 dB sits mid-scale
	mid := byteMagnitude(0.000562)
	assert.Greater(mid, byte(100))
	assert.Less(mid, byte(155))
}

func TestByteMagnitudeIsMonotonic(t *testing.T) {
	prev := byteMagnitude(1e-7)
	for _, mag := range []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1} {
		cur := byteMagnitude(mag)
		if cur < prev {
			t.Fatalf("byte magnitude fell from %v to %v at %v", prev, cur, mag)
		}
		prev = cur
	}
}
