// Package kafka adapts a franz-go client to the reader.Consumer contract
// with exclusive manual partition assignment.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"kafrange.dev/kafrange/reader"
)

// ClientParams configures the underlying kgo client.
type ClientParams struct {
	Brokers []string
	// Client overrides the constructed client. Used for testing.
	Client *kgo.Client
	// ClientOpts are appended to the default kgo options.
	ClientOpts []kgo.Opt
}

// Consumer implements reader.Consumer on a kgo.Client. The partition is
// consumed via direct assignment, never through a consumer group.
type Consumer struct {
	client    *kgo.Client
	topic     string
	partition int32
	assigned  bool
}

func NewConsumer(params ClientParams) (*Consumer, error) {
	client := params.Client
	if client == nil {
		opts := append([]kgo.Opt{kgo.SeedBrokers(params.Brokers...)}, params.ClientOpts...)
		var err error
		client, err = kgo.NewClient(opts...)
		if err != nil {
			return nil, fmt.Errorf("creating kafka client: %w", err)
		}
	}
	return &Consumer{client: client}, nil
}

// Assign records the exclusive topic partition. The client-side assignment
// completes in Seek: kgo takes the starting offset as part of
// AddConsumePartitions, so assignment and seek are one client call and no
// priming poll is needed for the seek to take effect.
func (c *Consumer) Assign(topic string, partition int32) error {
	c.topic = topic
	c.partition = partition
	return nil
}

// Seek positions the consumer at offset within the assigned partition.
func (c *Consumer) Seek(topic string, partition int32, offset int64) error {
	if topic != c.topic || partition != c.partition {
		return reader.NewTerminalError(fmt.Errorf("seek on unassigned partition %s:%d", topic, partition))
	}
	if c.assigned {
		c.client.SetOffsets(map[string]map[int32]kgo.EpochOffset{
			topic: {partition: {Offset: offset, Epoch: -1}},
		})
		return nil
	}
	c.client.AddConsumePartitions(map[string]map[int32]kgo.Offset{
		topic: {partition: kgo.NewOffset().At(offset)},
	})
	c.assigned = true
	return nil
}

// Poll fetches the next batch, blocking for up to timeout. A poll cut short
// by the timeout yields an empty batch. Fetch errors are classified as
// retryable or terminal per the broker error code.
func (c *Consumer) Poll(ctx context.Context, timeout time.Duration) ([]reader.Record, error) {
	if !c.assigned {
		// Nothing assigned yet; the priming poll lands here.
		return nil, nil
	}

	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fetches := c.client.PollFetches(pollCtx)

	var records []reader.Record
	iter := fetches.RecordIter()
	for !iter.Done() {
		r := iter.Next()
		records = append(records, reader.Record{
			Key:       r.Key,
			Value:     r.Value,
			Offset:    r.Offset,
			Timestamp: r.Timestamp,
		})
	}
	if len(records) > 0 {
		// Deliver what arrived; a persistent fetch error shows up again on
		// the next poll.
		return records, nil
	}

	for _, fetchErr := range fetches.Errors() {
		if errors.Is(fetchErr.Err, context.DeadlineExceeded) || errors.Is(fetchErr.Err, context.Canceled) {
			continue
		}
		return nil, fmt.Errorf("kafka poll %s:%d: %w", fetchErr.Topic, fetchErr.Partition, classify(fetchErr.Err))
	}
	return nil, nil
}

func (c *Consumer) Close() error {
	c.client.Close()
	return nil
}

var _ reader.Consumer = (*Consumer)(nil)

// classify maps broker and client errors onto the reader's retry taxonomy.
// Kafka error codes carry their own retriable flag; client-side errors
// without a code are treated as retryable so transient leadership moves and
// connection drops go through the bounded retry loop.
func classify(err error) error {
	var kafkaErr *kerr.Error
	if errors.As(err, &kafkaErr) {
		if kafkaErr.Retriable {
			return reader.NewRetryableError(err)
		}
		return reader.NewTerminalError(err)
	}
	if errors.Is(err, kgo.ErrClientClosed) {
		return reader.NewTerminalError(err)
	}
	return reader.NewRetryableError(err)
}
