package tlog

import (
	"clipscope/pkg/util"
	"context"
	"log/slog"
)

// contextHandler copies well-known context values onto each record.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, key := range util.LogContextKeys {
		if value, ok := util.Value(ctx, key); ok {
			r.AddAttrs(slog.String(string(key), value))
		}
	}

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{h.Handler.WithGroup(name)}
}
