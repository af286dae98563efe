package reader

// rangeTracker owns the offset bookkeeping for one split: where the range
// starts, where it ends, and the offset of the last delivered record.
type rangeTracker struct {
	startingOffset int64
	endingOffset   int64
	currentOffset  int64
}

func newRangeTracker(split Split) *rangeTracker {
	return &rangeTracker{
		startingOffset: split.StartingOffset,
		endingOffset:   split.EndingOffset,
		// One before the range start, meaning nothing consumed yet.
		currentOffset: split.StartingOffset - 1,
	}
}

// hasPendingData reports whether offsets in the range remain undelivered.
// The ending offset is exclusive, one higher than the last physical offset
// that can appear, so the inclusive upper bound is endingOffset-1.
func (t *rangeTracker) hasPendingData() bool {
	return t.currentOffset < t.endingOffset-1
}

// recordDelivered moves the cursor to the delivered offset and returns the
// distance from the previous cursor position. A distance above one means the
// log skipped offsets (compaction, transaction markers); callers surface
// that as an anomaly, not an error. The cursor never moves backwards.
func (t *rangeTracker) recordDelivered(offset int64) int64 {
	gap := offset - t.currentOffset
	if offset > t.currentOffset {
		t.currentOffset = offset
	}
	return gap
}

// progress estimates the fraction of the range consumed, assuming densely
// packed offsets. Gaps make it an overestimate, acceptable for an advisory
// value.
func (t *rangeTracker) progress() float64 {
	total := t.endingOffset - t.startingOffset
	if total <= 0 {
		return 1
	}
	p := float64(t.currentOffset-t.startingOffset+1) / float64(total)
	return min(max(p, 0), 1)
}
