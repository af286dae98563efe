package reader

import (
	"context"
	"fmt"
)

// batchFetcher owns the retry loop around the consumer poll and the cache of
// the most recent batch, drained one record at a time across calls.
type batchFetcher struct {
	consumer Consumer
	tracker  *rangeTracker
	config   Config
	hooks    Hooks

	batch []Record
	pos   int
}

func newBatchFetcher(consumer Consumer, tracker *rangeTracker, config Config, hooks Hooks) *batchFetcher {
	return &batchFetcher{consumer: consumer, tracker: tracker, config: config, hooks: hooks}
}

// nextRecord returns the next cached record, refilling the cache from the
// consumer when it is drained. The second return is false when the refill
// produced nothing, which is either the end of the range or a run of empty
// polls; the caller re-evaluates pending data on its next call.
func (f *batchFetcher) nextRecord(ctx context.Context) (Record, bool, error) {
	if f.pos >= len(f.batch) {
		if err := f.refill(ctx); err != nil {
			return Record{}, false, err
		}
	}
	if f.pos >= len(f.batch) {
		return Record{}, false, nil
	}
	record := f.batch[f.pos]
	f.pos++
	return record, true, nil
}

// refill polls until a non-empty batch arrives, the range has no pending
// data, or MaxAttempts polls have been spent. A retriable poll error spends
// an attempt: with attempts remaining the loop re-polls immediately, on the
// last attempt the error is fatal. An empty poll while data is pending also
// spends an attempt but is never an error.
func (f *batchFetcher) refill(ctx context.Context) error {
	f.batch = nil
	f.pos = 0

	for attempt := 1; attempt <= f.config.MaxAttempts; attempt++ {
		records, err := f.consumer.Poll(ctx, f.config.PollTimeout)
		if err != nil {
			if !IsRetryable(err) {
				return fmt.Errorf("polling records: %w", err)
			}
			if attempt == f.config.MaxAttempts {
				return fmt.Errorf("polling records: exceeded %d attempts: %w", f.config.MaxAttempts, err)
			}
			f.hooks.notifyRetry(attempt, err)
			continue
		}

		records = f.trimPastRange(records)
		if len(records) > 0 {
			f.batch = records
			return nil
		}
		if !f.tracker.hasPendingData() {
			// Normal end of range, not worth another poll.
			return nil
		}
		f.hooks.notifyEmptyBatch()
	}
	return nil
}

// trimPastRange drops records at or past the exclusive range end. They can
// appear when the tail of the range was compacted away and the broker serves
// offsets from beyond it.
func (f *batchFetcher) trimPastRange(records []Record) []Record {
	for i, r := range records {
		if r.Offset >= f.tracker.endingOffset {
			return records[:i]
		}
	}
	return records
}
