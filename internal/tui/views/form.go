package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/mealee/internal/engine/flow"
	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/tui/styles"
)

// TextStepModel is a single free-text form step (location or search term).
type TextStepModel struct {
	field  flow.Field
	title  string
	prompt string
	hint   string
	back   *flow.Field // field cleared by esc, nil on the first step
	input  textinput.Model
	err    string
}

func NewLocationStep() TextStepModel {
	return TextStepModel{
		field:  flow.Location,
		title:  "Where are you?",
		prompt: "Location:",
		hint:   "city, neighborhood, address or zip code",
		input:  newInput("Madrid", 50),
	}
}

func NewTermStep() TextStepModel {
	back := flow.Location
	return TextStepModel{
		field:  flow.Term,
		title:  "What are you hungry for?",
		prompt: "Search:",
		hint:   "tacos, ramen, coffee, brunch...",
		back:   &back,
		input:  newInput("tacos", 40),
	}
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	if width > 0 {
		ti.Width = width
	}
	ti.Focus()
	return ti
}

func (m TextStepModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m TextStepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			value := search.NormalizeInput(m.input.Value())
			if value == "" {
				m.err = fmt.Sprintf("%s is required", strings.TrimSuffix(m.prompt, ":"))
				return m, nil
			}
			field := m.field
			return m, func() tea.Msg {
				return AdvanceMsg{Assignments: []flow.Assignment{flow.Set(field, value)}}
			}
		case "esc":
			if m.back != nil {
				back := *m.back
				return m, func() tea.Msg { return GoBackMsg{Field: back} }
			}
			return m, nil
		}
		m.err = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TextStepModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.title) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", styles.Label.Render(m.prompt), m.input.View()))
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).
		Render("  "+m.hint) + "\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render("  " + m.err))
		b.WriteString("\n")
	}

	status := "enter next"
	if m.back != nil {
		status += " • esc back"
	}
	status += " • ctrl+c quit"
	b.WriteString(styles.StatusBar.Render(status))

	return styles.Border.Render(b.String())
}
