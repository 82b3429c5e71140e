package cli

import (
	"context"
	"fmt"
)

// palette holds the ANSI escapes used for the prompt and headings.
type palette struct {
	prompt  string
	heading string
	muted   string
	reset   string
}

var (
	lightPalette = palette{prompt: "\033[34m", heading: "\033[1;34m", muted: "\033[90m", reset: "\033[0m"}
	darkPalette  = palette{prompt: "\033[96m", heading: "\033[1;97m", muted: "\033[37m", reset: "\033[0m"}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

func (p palette) headingText(s string) string {
	return p.heading + s + p.reset
}

func (p palette) mutedText(s string) string {
	return p.muted + s + p.reset
}

// Theme toggles dark mode and persists the choice.
func (a *App) Theme(ctx context.Context, _ []string) error {
	dark, err := a.themeService.Toggle(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not save theme:", err)
		return err
	}
	a.dark = dark
	if dark {
		fmt.Fprintln(a.out, "Switched to dark mode")
	} else {
		fmt.Fprintln(a.out, "Switched to light mode")
	}
	return nil
}
