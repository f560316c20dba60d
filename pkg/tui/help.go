package tui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/taskboard/pkg/app"
)

//go:embed help.md
var helpMarkdown string

// guide renders the key reference inside a bordered viewport.
type guide struct {
	viewport viewport.Model
	frame    lipgloss.Style
	scheme   app.Scheme
	width    int
	height   int
	err      error
}

func newGuide() *guide {
	vp := viewport.New(1, 1)
	vp.MouseWheelEnabled = true
	return &guide{
		viewport: vp,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
}

func (g *guide) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := g.viewport.Update(msg)
	g.viewport = vp
	return cmd
}

func (g *guide) View() string {
	body := g.viewport.View()
	if body == "" && g.err != nil {
		body = "help unavailable: " + g.err.Error()
	}
	return g.frame.Render(body)
}

// SetSize re-renders the markdown when the bounds or the display mode change.
func (g *guide) SetSize(width, height int, scheme app.Scheme) {
	width = max(width, 32)
	height = max(height, 8)
	if g.width == width && g.height == height && g.scheme == scheme {
		return
	}
	g.width, g.height, g.scheme = width, height, scheme

	innerWidth := max(width-g.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-g.frame.GetVerticalFrameSize(), 1)
	g.viewport.Width = innerWidth
	g.viewport.Height = innerHeight

	style := "light"
	if scheme == app.SchemeDark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(innerWidth-2, 10)),
	)
	if err != nil {
		g.err = err
		g.viewport.SetContent("help unavailable: " + err.Error())
		return
	}
	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		g.err = err
		g.viewport.SetContent("help unavailable: " + err.Error())
		return
	}
	g.err = nil
	g.viewport.SetContent(content)
	g.viewport.GotoTop()
}
