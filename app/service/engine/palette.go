package engine

import (
	"ecosort/app/service/store"

	"github.com/fatih/color"
)

type palette struct {
	prompt   *color.Color
	response *color.Color
	info     *color.Color
	warn     *color.Color
	fail     *color.Color
}

func paletteFor(theme store.Theme) palette {
	if theme == store.ThemeDark {
		return palette{
			prompt:   color.New(color.FgHiCyan),
			response: color.New(color.FgHiGreen),
			info:     color.New(color.FgHiBlack),
			warn:     color.New(color.FgHiYellow),
			fail:     color.New(color.FgHiRed),
		}
	}

	return palette{
		prompt:   color.New(color.FgCyan),
		response: color.New(color.FgGreen),
		info:     color.New(color.FgBlue),
		warn:     color.New(color.FgYellow),
		fail:     color.New(color.FgRed),
	}
}
