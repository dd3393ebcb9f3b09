package debugui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Equal(t, float32(0), h.Average())

	h.Push(10 * time.Millisecond)
	h.Push(20 * time.Millisecond)
	assert.InDelta(t, 15, h.Average(), 1e-4)

	h.Push(30 * time.Millisecond)
	h.Push(40 * time.Millisecond)
	assert.InDelta(t, 30, h.Average(), 1e-4, "oldest sample is overwritten")
	assert.Len(t, h.Samples(), 3)

	assert.Len(t, NewFrameHistory(0).Samples(), 1)
}
