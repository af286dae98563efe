package logging

import "log/slog"

var globalLevel = &slog.LevelVar{}

// SetLevel sets the level for all handlers created by this package.
func SetLevel(level slog.Level) {
	globalLevel.Set(level)
}
