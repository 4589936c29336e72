package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/mealee/internal/engine/flow"
	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/tui/styles"
)

// PlayModel confirms the criteria and picks the pool size before a fetch.
type PlayModel struct {
	criteria search.Criteria
	sizes    []int
	cursor   int
}

func NewPlayModel(criteria search.Criteria, sizes []int, defaultSize int) PlayModel {
	m := PlayModel{criteria: criteria, sizes: sizes}
	for i, s := range sizes {
		if s == defaultSize {
			m.cursor = i
		}
	}
	return m
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sizes)-1 {
				m.cursor++
			}
		case "enter", "p":
			if len(m.sizes) == 0 {
				return m, nil
			}
			limit := m.sizes[m.cursor]
			return m, func() tea.Msg { return StartFetchMsg{Limit: limit} }
		case "esc":
			return m, func() tea.Msg { return GoBackMsg{Field: flow.PriceMin} }
		}
	}
	return m, nil
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Ready to play") + "\n")

	row := func(label, value string) {
		b.WriteString(styles.Label.Render(label))
		b.WriteString(styles.Value.Render(value))
		b.WriteString("\n")
	}
	row("Location:", m.criteria.Location)
	row("Craving:", m.criteria.Term)
	row("Price:", priceLabel(m.criteria))
	b.WriteString("\n")

	b.WriteString(styles.Subtitle.Render("How many contenders?") + "\n")
	for i, size := range m.sizes {
		cursor := "  "
		style := styles.InactiveItem
		if i == m.cursor {
			cursor = "> "
			style = styles.ActiveItem
		}
		desc := lipgloss.NewStyle().Foreground(styles.Muted).
			Render(fmt.Sprintf(" - up to %d picks", size-1))
		b.WriteString(fmt.Sprintf("%s%s%s\n", cursor, style.Render(fmt.Sprintf("%d businesses", size)), desc))
	}

	b.WriteString(styles.StatusBar.Render("↑↓ size • enter play • esc back"))

	return styles.Border.Render(b.String())
}

// priceLabel shows the tiers the encoded filter covers, "any" when empty.
func priceLabel(c search.Criteria) string {
	encoded := c.Price()
	if encoded == "" {
		return "any"
	}
	var labels []string
	for _, part := range strings.Split(encoded, ",") {
		t, err := search.ParseTier(part)
		if err != nil {
			labels = append(labels, part)
			continue
		}
		labels = append(labels, t.Label())
	}
	return strings.Join(labels, " ")
}
