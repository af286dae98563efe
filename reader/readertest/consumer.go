// Package readertest provides a scripted Consumer for exercising the range
// reader without a broker.
package readertest

import (
	"context"
	"fmt"
	"time"

	"kafrange.dev/kafrange/reader"
)

// PollOutcome is one scripted result for a Poll call.
type PollOutcome struct {
	Records []reader.Record
	Err     error
}

// Consumer replays scripted poll outcomes in order and records the calls
// made against it. Once the script is spent, Poll returns empty batches.
type Consumer struct {
	Script []PollOutcome

	AssignedTopic     string
	AssignedPartition int32
	AssignCalls       int
	SeekedOffset      int64
	SeekCalls         int
	PollCalls         int
	CloseCalls        int

	next int
}

func (c *Consumer) Assign(topic string, partition int32) error {
	c.AssignCalls++
	c.AssignedTopic = topic
	c.AssignedPartition = partition
	return nil
}

func (c *Consumer) Seek(topic string, partition int32, offset int64) error {
	c.SeekCalls++
	c.SeekedOffset = offset
	return nil
}

func (c *Consumer) Poll(ctx context.Context, timeout time.Duration) ([]reader.Record, error) {
	c.PollCalls++
	if timeout == 0 {
		// The priming poll settles assignment without consuming the script.
		return nil, nil
	}
	if c.next >= len(c.Script) {
		return nil, nil
	}
	outcome := c.Script[c.next]
	c.next++
	return outcome.Records, outcome.Err
}

func (c *Consumer) Close() error {
	c.CloseCalls++
	return nil
}

var _ reader.Consumer = (*Consumer)(nil)

// Batch builds records with the given offsets. Keys and values derive from
// the offset so tests can assert on content.
func Batch(offsets ...int64) []reader.Record {
	records := make([]reader.Record, len(offsets))
	for i, offset := range offsets {
		records[i] = reader.Record{
			Key:       []byte(fmt.Sprintf("key-%d", offset)),
			Value:     []byte(fmt.Sprintf("value-%d", offset)),
			Offset:    offset,
			Timestamp: time.Unix(offset, 0),
		}
	}
	return records
}
