package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/tui/styles"
)

// LoadingModel is shown while the search request is in flight. It has no
// cancel key: the fetch settles on its own.
type LoadingModel struct {
	spinner  spinner.Model
	criteria search.Criteria
	limit    int
}

func NewLoadingModel(criteria search.Criteria, limit int) LoadingModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Secondary)),
	)
	return LoadingModel{spinner: s, criteria: criteria, limit: limit}
}

func (m LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m LoadingModel) View() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(styles.Value.Render(fmt.Sprintf(" Finding %d places for %q near %s...",
		m.limit, m.criteria.Term, m.criteria.Location)))
	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("ctrl+c quit"))
	return styles.Border.Render(b.String())
}
