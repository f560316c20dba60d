package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/task"
)

const (
	pageTitle      = "My Tasks"
	emptyList      = "You have no tasks"
	missingSummary = "No summary was provided for this task"
	untitledTask   = "Untitled task"
)

// View renders the page, the modal when it is open, or the help overlay.
func (m Model) View() string {
	th := ThemeFor(m.state.Scheme)

	var body string
	switch {
	case m.state.Form.Open:
		body = lipgloss.Place(m.width, max(m.height-3, 1), lipgloss.Center, lipgloss.Center, m.renderForm(th))
	case m.showHelp:
		m.guide.SetSize(m.width, max(m.height-3, 8), m.state.Scheme)
		body = m.guide.View()
	default:
		body = m.renderList(th)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(th),
		body,
		m.renderFooter(th),
	)
}

func (m Model) renderHeader(th Theme) string {
	indicator := "☀ light"
	if m.state.Scheme == app.SchemeDark {
		indicator = "☾ dark"
	}
	return th.Header.Title.Render(pageTitle) + "  " + th.Header.Scheme.Render(indicator)
}

func (m Model) renderList(th Theme) string {
	if !m.state.Loaded {
		return th.Card.Empty.Render("Loading tasks…")
	}
	tasks := m.state.Visible()
	if len(tasks) == 0 {
		return th.Card.Empty.Render(emptyList)
	}

	cardWidth := max(m.width-2, 20)
	textWidth := max(cardWidth-th.Card.Frame.GetHorizontalFrameSize(), 10)

	start, end := m.window(len(tasks), 5)
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		frame := th.Card.Frame
		switch {
		case m.state.Drag.Active && i == m.state.Drag.Target:
			frame = th.Card.Grabbed
		case !m.state.Drag.Active && i == m.cursor:
			frame = th.Card.Selected
		}
		cards = append(cards, frame.Width(cardWidth-2).Render(renderCard(th, tasks[i], i, textWidth)))
	}
	return strings.Join(cards, "\n")
}

func renderCard(th Theme, t task.Task, index, width int) string {
	mark := "[ ]"
	title := th.Card.Title
	if t.Done {
		mark = "[x]"
		title = th.Card.Done
	}
	text := t.Title
	if strings.TrimSpace(text) == "" {
		// Remote records may arrive without a title.
		text = untitledTask
		title = th.Card.Missing
	}
	head := fmt.Sprintf("%s %d. ", mark, index+1)
	heading := head + title.Render(truncate.StringWithTail(text, uint(max(width-len(head), 1)), "…"))

	summary := th.Card.Missing.Render(missingSummary)
	if strings.TrimSpace(t.Summary) != "" {
		summary = th.Card.Summary.Render(wordwrap.String(t.Summary, width))
	}
	return heading + "\n" + summary
}

// window picks the slice of cards that fits on screen around the cursor.
func (m Model) window(n, cardHeight int) (int, int) {
	fit := max((m.height-3)/cardHeight, 1)
	if n <= fit {
		return 0, n
	}
	focus := m.cursor
	if m.state.Drag.Active {
		focus = m.state.Drag.Target
	}
	start := max(focus-fit/2, 0)
	end := start + fit
	if end > n {
		end = n
		start = n - fit
	}
	return start, end
}

func (m Model) renderForm(th Theme) string {
	f := m.state.Form
	rows := []string{th.Modal.Title.Render(f.Heading()), ""}
	for _, field := range []app.Field{app.FieldTitle, app.FieldSummary} {
		rows = append(rows, th.Modal.Label.Render(field.String()), m.inputs[field].View())
		if msg := f.Errors[field]; msg != "" {
			rows = append(rows, th.Modal.Error.Render(msg))
		}
		rows = append(rows, "")
	}
	rows = append(rows, th.Modal.Hint.Render("enter: "+f.SubmitLabel()+" · esc: cancel"))
	return th.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter(th Theme) string {
	status := th.Footer.Status.Render(m.state.Status)
	if m.state.Err != nil {
		status = th.Footer.Error.Render(m.state.Status)
	}
	var hints string
	switch {
	case m.state.Form.Open:
		hints = m.help.View(formKeys(m.keys))
	case m.state.Drag.Active:
		hints = m.help.View(dragKeys(m.keys))
	default:
		keys := m.keys
		if t, ok := m.selectedTask(); ok && t.Done {
			keys.Done.SetEnabled(false)
		}
		hints = m.help.View(keys)
	}
	return status + "\n" + hints
}
