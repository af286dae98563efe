package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TextHandler writes single-line log records tagged with an instance ID so
// output from concurrent readers can be filtered by instance.
type TextHandler struct {
	instanceID string
	mu         *sync.Mutex // serialize writes to attrs
	attrs      []slog.Attr
}

func NewTextHandler() *TextHandler {
	return &TextHandler{
		mu:         &sync.Mutex{},
		instanceID: "root",
	}
}

func (h *TextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= globalLevel.Level()
}

func (h *TextHandler) Handle(ctx context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = fmt.Appendf(buf, "%s %s [%s] %s",
		time.Now().Format("2006/01/02 15:04:05"), r.Level, h.instanceID, r.Message)
	for _, a := range h.attrs {
		buf = appendAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, a)
		return true
	})
	fmt.Fprintln(os.Stderr, string(buf))
	return nil
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := &TextHandler{
		mu:         h.mu,
		instanceID: h.instanceID,
		attrs:      slices.Clone(h.attrs),
	}
	// The instanceID attr moves into the line prefix instead of the attr list.
	attrs = slices.Clone(attrs)
	for i, a := range attrs {
		if a.Key == "instanceID" {
			next.instanceID = a.Value.String()
			attrs = slices.Delete(attrs, i, i+1)
			break
		}
	}
	next.attrs = append(next.attrs, attrs...)
	return next
}

func (h *TextHandler) WithGroup(name string) slog.Handler {
	panic("groups not supported")
}

// Append one key=value pair, quoting values that would break the line format.
func appendAttr(buf []byte, a slog.Attr) []byte {
	s := a.Value.String()
	if s == "" || strings.ContainsAny(s, " =\t\n") {
		s = strconv.Quote(s)
	}
	return fmt.Appendf(buf, " %s=%s", a.Key, s)
}
