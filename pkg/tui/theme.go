package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"tableflip.dev/taskboard/pkg/app"
)

// Theme centralizes Lip Gloss styles for one display mode.
type Theme struct {
	Header HeaderTheme
	Card   CardTheme
	Modal  ModalTheme
	Footer FooterTheme
}

// HeaderTheme styles the page title and the mode indicator.
type HeaderTheme struct {
	Title  lipgloss.Style
	Scheme lipgloss.Style
}

// CardTheme styles a task in the list.
type CardTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Grabbed  lipgloss.Style
	Title    lipgloss.Style
	Done     lipgloss.Style
	Summary  lipgloss.Style
	Missing  lipgloss.Style
	Empty    lipgloss.Style
}

// ModalTheme styles the task form.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Error lipgloss.Style
	Hint  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Status lipgloss.Style
	Error  lipgloss.Style
}

type palette struct {
	text, muted, accent, grab, danger, border lipgloss.Color
}

var palettes = map[app.Scheme]palette{
	app.SchemeLight: {text: "235", muted: "243", accent: "25", grab: "130", danger: "160", border: "250"},
	app.SchemeDark:  {text: "252", muted: "245", accent: "212", grab: "214", danger: "203", border: "240"},
}

// ThemeFor returns the theme for a display mode.
func ThemeFor(scheme app.Scheme) Theme {
	p, ok := palettes[scheme]
	if !ok {
		p = palettes[app.SchemeLight]
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Title:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
			Scheme: lipgloss.NewStyle().Foreground(p.muted),
		},
		Card: CardTheme{
			Frame:    frame,
			Selected: frame.BorderForeground(p.accent),
			Grabbed:  frame.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(p.grab),
			Title:    lipgloss.NewStyle().Bold(true).Foreground(p.text),
			Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(p.muted),
			Summary:  lipgloss.NewStyle().Foreground(p.text),
			Missing:  lipgloss.NewStyle().Italic(true).Foreground(p.muted),
			Empty:    lipgloss.NewStyle().Foreground(p.muted).Padding(1, 2),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.accent).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
			Label: lipgloss.NewStyle().Foreground(p.text),
			Error: lipgloss.NewStyle().Foreground(p.danger),
			Hint:  lipgloss.NewStyle().Foreground(p.muted),
		},
		Footer: FooterTheme{
			Status: lipgloss.NewStyle().Foreground(p.muted),
			Error:  lipgloss.NewStyle().Foreground(p.danger),
		},
	}
}

// DetectScheme guesses the display mode from the terminal background.
func DetectScheme() app.Scheme {
	if termenv.HasDarkBackground() {
		return app.SchemeDark
	}
	return app.SchemeLight
}
