package store

import (
	"os"
	"path/filepath"
	"testing"

	"ecosort/app/service/conversation"

	"github.com/stretchr/testify/require"
)

func TestHistoryRoundTrip(t *testing.T) {
	svc, err := NewService(t.TempDir())
	require.NoError(t, err)

	entries := []conversation.HistoryEntry{
		{
			ID:           "b",
			Items:        []conversation.Item{{ID: "2", Name: "wine corks"}},
			ResponseText: "Make a pinboard.",
			Timestamp:    "2026-08-22T10:00:00Z",
		},
		{
			ID:           "a",
			Items:        []conversation.Item{{ID: "1", Name: "glass jar"}, {ID: "3", Name: "old t-shirt"}},
			Notes:        "jar has a metal lid",
			ResponseText: "Rinse the jar first.",
			Timestamp:    "2026-08-21T10:00:00Z",
		},
	}

	svc.SaveHistory(entries)

	require.Equal(t, entries, svc.LoadHistory())
}

func TestLoadHistory_NoFileYet(t *testing.T) {
	svc, err := NewService(t.TempDir())
	require.NoError(t, err)

	require.Empty(t, svc.LoadHistory())
}

func TestLoadHistory_MalformedFileResetsToEmpty(t *testing.T) {
	dir := t.TempDir()

	svc, err := NewService(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, historyFileName), []byte("{not json"), 0644))

	require.Empty(t, svc.LoadHistory())
}

func TestSaveHistory_OverwritesPreviousContent(t *testing.T) {
	svc, err := NewService(t.TempDir())
	require.NoError(t, err)

	svc.SaveHistory([]conversation.HistoryEntry{{ID: "old"}})
	svc.SaveHistory([]conversation.HistoryEntry{{ID: "new"}, {ID: "old"}})

	loaded := svc.LoadHistory()
	require.Len(t, loaded, 2)
	require.Equal(t, "new", loaded[0].ID)
}

func TestThemeRoundTrip(t *testing.T) {
	svc, err := NewService(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, ThemeLight, svc.LoadTheme())

	svc.SaveTheme(ThemeDark)
	require.Equal(t, ThemeDark, svc.LoadTheme())
}

func TestLoadTheme_BadContentFallsBack(t *testing.T) {
	dir := t.TempDir()

	svc, err := NewService(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, themeFileName), []byte(`"solarized"`), 0644))
	require.Equal(t, ThemeLight, svc.LoadTheme())

	require.NoError(t, os.WriteFile(filepath.Join(dir, themeFileName), []byte("garbage"), 0644))
	require.Equal(t, ThemeLight, svc.LoadTheme())
}
