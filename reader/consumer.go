package reader

import (
	"context"
	"time"
)

// Record is one record delivered from the assigned partition.
type Record struct {
	Key       []byte
	Value     []byte
	Offset    int64
	Timestamp time.Time
}

// Consumer is the client the reader polls. Implementations own one broker
// connection and support manual exclusive assignment to a single partition;
// there is no group membership.
//
// Poll blocks for up to timeout and returns the records fetched, possibly
// none. A poll cut short by its timeout is an empty batch, not an error.
// Errors returned by Poll must be classified with NewRetryableError or
// NewTerminalError; the reader trusts the classification and does not
// inspect causes.
type Consumer interface {
	Assign(topic string, partition int32) error
	Seek(topic string, partition int32, offset int64) error
	Poll(ctx context.Context, timeout time.Duration) ([]Record, error)
	Close() error
}
