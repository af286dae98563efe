package reader

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Property keys understood by ConfigFromProperties.
const (
	PollTimeoutKey   = "poll.timeout.ms"
	RetryAttemptsKey = "retry.attempts"
)

const (
	DefaultPollTimeout = time.Second
	DefaultMaxAttempts = 5
)

// Config carries the numeric knobs for one reader instance.
type Config struct {
	// PollTimeout bounds a single blocking poll against the consumer.
	PollTimeout time.Duration
	// MaxAttempts bounds the number of polls per refill before the reader
	// either fails (retriable errors) or reports no records (empty batches).
	MaxAttempts int
	// Logger receives reader events. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.PollTimeout <= 0 {
		c.PollTimeout = DefaultPollTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// ConfigFromProperties builds a Config from string properties, applying
// defaults for absent keys.
func ConfigFromProperties(props map[string]string) (Config, error) {
	var config Config
	if v, ok := props[PollTimeoutKey]; ok {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s value %q: %w", PollTimeoutKey, v, err)
		}
		config.PollTimeout = time.Duration(ms) * time.Millisecond
	}
	if v, ok := props[RetryAttemptsKey]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s value %q: %w", RetryAttemptsKey, v, err)
		}
		config.MaxAttempts = n
	}
	return config.withDefaults(), nil
}
