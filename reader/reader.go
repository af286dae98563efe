// Package reader implements a pull-based reader for one bounded, contiguous
// range of offsets within a single partition of a topic. A RangeReader is one
// unit of parallel work in a batch job: it owns its partition exclusively via
// manual assignment, polls for records with a bounded retry policy, and
// reports advisory progress over the range.
package reader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/ksuid"
)

// RangeReader reads the records of one Split through a pull contract: call
// Advance, then Key and Value, until Advance returns false with no data
// pending. A RangeReader is used by a single worker; none of its methods are
// safe for concurrent use.
type RangeReader struct {
	split    Split
	consumer Consumer
	hooks    Hooks
	logger   *slog.Logger

	tracker   *rangeTracker
	fetcher   *batchFetcher
	current   *Record
	exhausted bool
	closed    bool
}

// NewRangeReader validates the split, assigns the consumer exclusively to the
// split's partition, and seeks to the starting offset. The zero-timeout poll
// between assignment and seek forces assignment metadata to settle for
// clients that need a poll before honoring a seek; clients that finalize
// manual assignment synchronously return an empty batch from it immediately.
func NewRangeReader(ctx context.Context, split Split, consumer Consumer, config Config, hooks Hooks) (*RangeReader, error) {
	if err := split.Validate(); err != nil {
		return nil, fmt.Errorf("range reader split: %w", NewTerminalError(err))
	}
	if consumer == nil {
		return nil, NewTerminalError(fmt.Errorf("range reader requires a consumer"))
	}
	config = config.withDefaults()

	logger := config.Logger.With(
		"instanceID", "reader-"+ksuid.New().String(),
		"split", split.ID(),
	)

	if err := consumer.Assign(split.Topic, split.Partition); err != nil {
		return nil, fmt.Errorf("assigning partition %s:%d: %w", split.Topic, split.Partition, err)
	}
	if _, err := consumer.Poll(ctx, 0); err != nil && !IsRetryable(err) {
		return nil, fmt.Errorf("priming poll: %w", err)
	}
	if err := consumer.Seek(split.Topic, split.Partition, split.StartingOffset); err != nil {
		return nil, fmt.Errorf("seeking to offset %d: %w", split.StartingOffset, err)
	}

	logger.Info("reading range",
		"topic", split.Topic,
		"partition", split.Partition,
		"startingOffset", split.StartingOffset,
		"endingOffset", split.EndingOffset)

	tracker := newRangeTracker(split)
	return &RangeReader{
		split:    split,
		consumer: consumer,
		hooks:    hooks,
		logger:   logger,
		tracker:  tracker,
		fetcher:  newBatchFetcher(consumer, tracker, config, hooks),
	}, nil
}

// Advance moves to the next record in the range. It returns false with a nil
// error when no record is available: either the range is exhausted, or every
// poll attempt came back empty, in which case data may still be pending and a
// later call fetches again. A non-nil error is fatal to the reader.
func (r *RangeReader) Advance(ctx context.Context) (bool, error) {
	if r.closed {
		return false, NewTerminalError(fmt.Errorf("range reader is closed"))
	}
	if !r.tracker.hasPendingData() {
		r.current = nil
		if !r.exhausted {
			r.exhausted = true
			r.hooks.notifyExhausted()
			r.logger.Debug("range exhausted", "currentOffset", r.tracker.currentOffset)
		}
		return false, nil
	}

	record, ok, err := r.fetcher.nextRecord(ctx)
	if err != nil {
		return false, fmt.Errorf("range reader advance: %w", err)
	}
	if !ok {
		r.current = nil
		r.logger.Warn("no record available",
			"currentOffset", r.tracker.currentOffset,
			"endingOffset", r.split.EndingOffset)
		return false, nil
	}

	r.current = &record
	previous := r.tracker.currentOffset
	if gap := r.tracker.recordDelivered(record.Offset); gap > 1 {
		r.hooks.notifyOffsetGap(previous, record.Offset)
		r.logger.Warn("offset increment was larger than one",
			"previous", previous,
			"current", record.Offset)
	}
	return true, nil
}

// Key returns the key of the current record, or nil when no record is set.
func (r *RangeReader) Key() []byte {
	if r.current == nil {
		return nil
	}
	return r.current.Key
}

// Value returns the value of the current record, or nil when no record is set.
func (r *RangeReader) Value() []byte {
	if r.current == nil {
		return nil
	}
	return r.current.Value
}

// Progress estimates how much of the range has been consumed, in [0, 1].
func (r *RangeReader) Progress() float64 {
	return r.tracker.progress()
}

// Exhausted reports whether the reader has delivered everything its range
// can deliver. Distinguishes a false Advance at end of range from one caused
// by a run of empty polls with data still pending.
func (r *RangeReader) Exhausted() bool {
	return r.exhausted
}

// Split returns the range this reader was created for.
func (r *RangeReader) Split() Split {
	return r.split
}

// Close releases the consumer connection. It is idempotent and safe on a
// reader whose initialization never completed.
func (r *RangeReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.consumer == nil {
		return nil
	}
	if err := r.consumer.Close(); err != nil {
		return fmt.Errorf("closing consumer: %w", err)
	}
	return nil
}
