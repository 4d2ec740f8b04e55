package spitrace

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger at debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Log(e Event) {
	attrs := []slog.Attr{
		slog.String("session", e.SessionID),
		slog.Uint64("seq", e.Seq),
		slog.String("instr", e.Instruction()),
	}
	if addr, ok := e.Addr(); ok {
		attrs = append(attrs, slog.String("addr", addr.String()))
	}
	attrs = append(attrs, slog.String("tx", hex.EncodeToString(e.Tx)))
	if e.Rx != nil {
		attrs = append(attrs, slog.String("rx", hex.EncodeToString(e.Rx)))
	}
	attrs = append(attrs, slog.Duration("duration", e.Duration))

	level := slog.LevelDebug
	if e.Err != "" {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", e.Err))
	}
	a.logger.LogAttrs(context.Background(), level, "spi", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
