package reader

import (
	"fmt"
	"strconv"
	"strings"
)

// Split identifies a bounded range of offsets within one partition of a
// topic. EndingOffset is exclusive: one past the last offset the reader will
// ever deliver.
type Split struct {
	Topic          string
	Partition      int32
	StartingOffset int64
	EndingOffset   int64
}

// ID formats the split as "topic:partition:start:end".
func (s Split) ID() string {
	return fmt.Sprintf("%s:%d:%d:%d", s.Topic, s.Partition, s.StartingOffset, s.EndingOffset)
}

// Count returns the maximum number of records the split can deliver.
func (s Split) Count() int64 {
	return s.EndingOffset - s.StartingOffset
}

func (s Split) Validate() error {
	if s.Topic == "" {
		return fmt.Errorf("split topic is required")
	}
	if s.Partition < 0 {
		return fmt.Errorf("split partition must not be negative, got %d", s.Partition)
	}
	if s.StartingOffset < 0 {
		return fmt.Errorf("split starting offset must not be negative, got %d", s.StartingOffset)
	}
	if s.EndingOffset < s.StartingOffset {
		return fmt.Errorf("split ending offset %d is before starting offset %d", s.EndingOffset, s.StartingOffset)
	}
	return nil
}

// ParseSplitID parses a split ID in the form "topic:partition:start:end".
func ParseSplitID(id string) (Split, error) {
	parts := strings.Split(id, ":")
	if len(parts) != 4 {
		return Split{}, fmt.Errorf("invalid split id: %s", id)
	}
	partition, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return Split{}, fmt.Errorf("invalid partition in split id %s: %w", id, err)
	}
	start, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Split{}, fmt.Errorf("invalid starting offset in split id %s: %w", id, err)
	}
	end, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Split{}, fmt.Errorf("invalid ending offset in split id %s: %w", id, err)
	}
	split := Split{Topic: parts[0], Partition: int32(partition), StartingOffset: start, EndingOffset: end}
	if err := split.Validate(); err != nil {
		return Split{}, fmt.Errorf("invalid split id %s: %w", id, err)
	}
	return split, nil
}
