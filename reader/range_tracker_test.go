package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeTracker_EmptyRange(t *testing.T) {
	tracker := newRangeTracker(Split{Topic: "t", StartingOffset: 10, EndingOffset: 10})
	assert.False(t, tracker.hasPendingData())
	assert.Equal(t, 1.0, tracker.progress())
}

func TestRangeTracker_PendingDataBoundary(t *testing.T) {
	tracker := newRangeTracker(Split{Topic: "t", StartingOffset: 100, EndingOffset: 105})

	assert.True(t, tracker.hasPendingData())
	for offset := int64(100); offset < 104; offset++ {
		tracker.recordDelivered(offset)
		assert.True(t, tracker.hasPendingData(), "offset %d is not the last in the range", offset)
	}
	tracker.recordDelivered(104)
	assert.False(t, tracker.hasPendingData(), "ending offset is exclusive")
}

func TestRangeTracker_CurrentOffsetNeverDecreases(t *testing.T) {
	tracker := newRangeTracker(Split{Topic: "t", StartingOffset: 0, EndingOffset: 10})
	tracker.recordDelivered(5)
	tracker.recordDelivered(3)
	assert.Equal(t, int64(5), tracker.currentOffset)
}

func TestRangeTracker_ReportsGaps(t *testing.T) {
	tracker := newRangeTracker(Split{Topic: "t", StartingOffset: 100, EndingOffset: 110})
	assert.Equal(t, int64(1), tracker.recordDelivered(100))
	assert.Equal(t, int64(1), tracker.recordDelivered(101))
	assert.Equal(t, int64(3), tracker.recordDelivered(104), "compacted offsets show up as a gap")
}

func TestRangeTracker_Progress(t *testing.T) {
	tracker := newRangeTracker(Split{Topic: "t", StartingOffset: 100, EndingOffset: 105})
	assert.Equal(t, 0.0, tracker.progress())

	tracker.recordDelivered(100)
	assert.InDelta(t, 0.2, tracker.progress(), 1e-9)

	tracker.recordDelivered(104)
	assert.Equal(t, 1.0, tracker.progress())
}

func TestRangeTracker_ProgressClampedOnGapPastEnd(t *testing.T) {
	tracker := newRangeTracker(Split{Topic: "t", StartingOffset: 100, EndingOffset: 105})
	// A gap can land the cursor past the inclusive upper bound.
	tracker.recordDelivered(106)
	assert.Equal(t, 1.0, tracker.progress())
	assert.False(t, tracker.hasPendingData())
}
