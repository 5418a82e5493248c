package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mapoverlay/internal/config"
	"mapoverlay/internal/logging"
	"mapoverlay/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logs, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logs.Close()

	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(cfg, os.Args[1])
	} else {
		m = tui.New(cfg)
	}
	slog.Info("starting", "cell_size", cfg.CellSize(), "args", os.Args[1:])
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		slog.Error("program exited", "err", err)
		logs.Close()
		os.Exit(1)
	}
}
