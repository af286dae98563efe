package kafka

import (
	"context"

	"kafrange.dev/kafrange/reader"
)

// OpenParams are the inputs for Open.
type OpenParams struct {
	Split  reader.Split
	Config reader.Config
	Hooks  reader.Hooks
	Client ClientParams
}

// Open builds a consumer for the split's partition and returns a RangeReader
// over it. The reader owns the consumer and releases it on Close; if the
// reader cannot be initialized the consumer is closed before returning.
func Open(ctx context.Context, params OpenParams) (*reader.RangeReader, error) {
	consumer, err := NewConsumer(params.Client)
	if err != nil {
		return nil, err
	}
	rangeReader, err := reader.NewRangeReader(ctx, params.Split, consumer, params.Config, params.Hooks)
	if err != nil {
		consumer.Close()
		return nil, err
	}
	return rangeReader, nil
}
