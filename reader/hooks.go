package reader

// Hooks are advisory callbacks for reader observability. All fields are
// optional and none influence control flow.
type Hooks struct {
	// OnRetry is called after a retriable poll failure when attempts remain.
	OnRetry func(attempt int, err error)
	// OnEmptyBatch is called when a poll returns no records while the range
	// still has pending data.
	OnEmptyBatch func()
	// OnOffsetGap is called when a delivered offset skips more than one
	// position past the previous one.
	OnOffsetGap func(previous, current int64)
	// OnExhausted is called once when the reader's range is exhausted.
	OnExhausted func()
}

// NoOpHooks ignores all notifications.
var NoOpHooks = Hooks{}

func (h Hooks) notifyRetry(attempt int, err error) {
	if h.OnRetry != nil {
		h.OnRetry(attempt, err)
	}
}

func (h Hooks) notifyEmptyBatch() {
	if h.OnEmptyBatch != nil {
		h.OnEmptyBatch()
	}
}

func (h Hooks) notifyOffsetGap(previous, current int64) {
	if h.OnOffsetGap != nil {
		h.OnOffsetGap(previous, current)
	}
}

func (h Hooks) notifyExhausted() {
	if h.OnExhausted != nil {
		h.OnExhausted()
	}
}

// JoinHooks combines hooks so each notification reaches every hook.
func JoinHooks(hooks ...Hooks) Hooks {
	return Hooks{
		OnRetry: func(attempt int, err error) {
			for _, h := range hooks {
				h.notifyRetry(attempt, err)
			}
		},
		OnEmptyBatch: func() {
			for _, h := range hooks {
				h.notifyEmptyBatch()
			}
		},
		OnOffsetGap: func(previous, current int64) {
			for _, h := range hooks {
				h.notifyOffsetGap(previous, current)
			}
		},
		OnExhausted: func() {
			for _, h := range hooks {
				h.notifyExhausted()
			}
		},
	}
}
