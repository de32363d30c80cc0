package store

// Theme is the persisted terminal palette preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	historyFileName = "history.json"
	themeFileName   = "theme.json"
)
