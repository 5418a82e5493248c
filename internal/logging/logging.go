package logging

import (
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Setup initialises the global slog default logger.
// level may be "debug", "info", "warn", or "error" (default "info").
// format may be "json" or "text" (default "text").
// The terminal belongs to the UI, so records go to path; an empty path
// discards them. The returned closer releases the file.
func Setup(level, format, path string) (io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if path != "" {
		f, err := tea.LogToFile(path, "mapoverlay")
		if err != nil {
			return nil, err
		}
		w, closer = f, f
	}
	slog.SetDefault(New(w, level, format))
	return closer, nil
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
