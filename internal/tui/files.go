package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"mapoverlay/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var files []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		files = append(files, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].(fileItem).Title() < files[j].(fileItem).Title() })
	m.files = files
	m.l.SetItems(files)
	if len(files) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a dataset file into the model.
func (m *Model) loadPath(p string) {
	m.selPath = p
	items, err := geom.Load(p)
	if err != nil {
		slog.Warn("load failed", "path", p, "err", err)
		switch {
		case errors.Is(err, geom.ErrUnsupported):
			m.status = "unsupported file: " + filepath.Base(p)
		case errors.Is(err, geom.ErrNoItems):
			m.status = "no locations in " + filepath.Base(p)
		default:
			m.status = "load error: " + err.Error()
		}
		return
	}
	m.setItems(items, filepath.Base(p))
	slog.Info("dataset loaded", "path", p, "items", len(items), "signature", m.ov.Signature())
	m.status = fmt.Sprintf("loaded: %s  items=%d  markers=%d", filepath.Base(p), len(items), len(m.markers.views))
}

// loadWKT loads pasted WKT text.
func (m *Model) loadWKT(text string) error {
	items, err := geom.ParseWKT("paste", text)
	if err != nil {
		return err
	}
	m.selPath = ""
	m.setItems(items, "<pasted>")
	m.status = fmt.Sprintf("rendered WKT  items=%d  markers=%d", len(items), len(m.markers.views))
	return nil
}
