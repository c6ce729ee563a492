package pagergrid

import (
	"io"
	"log/slog"
)

func componentLogger(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.With(slog.String("component", component))
}
