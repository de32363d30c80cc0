package store

import (
	"ecosort/app/config"
	"ecosort/app/service/conversation"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/do"
)

// Service persists the history list and the theme preference as plain
// JSON files. Storage is a best-effort cache, never a source of truth:
// unreadable or malformed content falls back to the default with a
// warning, and write failures are logged without reaching the caller.
type Service struct {
	dir string
	mu  sync.RWMutex
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(cfg.Client.StateDir)
}

func NewService(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}

	return &Service{dir: dir}, nil
}

func (s *Service) LoadHistory() []conversation.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dir, historyFileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		slog.Warn("Failed to read history file, starting empty", "error", err)
		return nil
	}

	var entries []conversation.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("History file is malformed, starting empty", "error", err)
		return nil
	}

	return entries
}

func (s *Service) SaveHistory(entries []conversation.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		slog.Error("Failed to encode history", "error", err)
		return
	}

	if err := os.WriteFile(filepath.Join(s.dir, historyFileName), data, 0644); err != nil {
		slog.Error("Failed to write history file", "error", err)
		return
	}

	slog.Debug("Saved history", "entries", len(entries))
}

func (s *Service) LoadTheme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dir, themeFileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ThemeLight
	case err != nil:
		slog.Warn("Failed to read theme file, using default", "error", err)
		return ThemeLight
	}

	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		slog.Warn("Theme file is malformed, using default", "error", err)
		return ThemeLight
	}

	if theme != ThemeLight && theme != ThemeDark {
		slog.Warn("Unknown theme value, using default", "theme", theme)
		return ThemeLight
	}

	return theme
}

func (s *Service) SaveTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(theme)
	if err != nil {
		slog.Error("Failed to encode theme", "error", err)
		return
	}

	if err := os.WriteFile(filepath.Join(s.dir, themeFileName), data, 0644); err != nil {
		slog.Error("Failed to write theme file", "error", err)
	}
}
