package views

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/mealee/internal/engine/flow"
	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/tui/styles"
)

type priceEnd int

const (
	endLow priceEnd = iota
	endHigh
)

// PriceModel picks an inclusive tier range, e.g. $ to $$$.
type PriceModel struct {
	low, high search.Tier
	focused   priceEnd
}

func NewPriceModel() PriceModel {
	return PriceModel{low: search.MinTier, high: search.MaxTier}
}

func (m PriceModel) Init() tea.Cmd {
	return nil
}

func (m PriceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "tab", "shift+tab", "up", "down", "k", "j":
		if m.focused == endLow {
			m.focused = endHigh
		} else {
			m.focused = endLow
		}
	case "left", "h":
		m.step(-1)
	case "right", "l":
		m.step(1)
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(key.String())
		m.set(search.Tier(n))
	case "enter":
		return m, m.submit()
	case "esc":
		return m, func() tea.Msg { return GoBackMsg{Field: flow.Term} }
	}
	return m, nil
}

func (m *PriceModel) step(delta int) {
	if m.focused == endLow {
		m.set(m.low + search.Tier(delta))
	} else {
		m.set(m.high + search.Tier(delta))
	}
}

// set moves the focused end, dragging the other one along so low <= high.
func (m *PriceModel) set(t search.Tier) {
	if t < search.MinTier || t > search.MaxTier {
		return
	}
	if m.focused == endLow {
		m.low = t
		if m.high < t {
			m.high = t
		}
	} else {
		m.high = t
		if m.low > t {
			m.low = t
		}
	}
}

// submit stores the exclusive upper bound: high+1.
func (m PriceModel) submit() tea.Cmd {
	low := strconv.Itoa(int(m.low))
	high := strconv.Itoa(int(m.high) + 1)
	return func() tea.Msg {
		return AdvanceMsg{Assignments: []flow.Assignment{
			flow.Set(flow.PriceMin, low),
			flow.Set(flow.PriceMax, high),
		}}
	}
}

func (m PriceModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("How much do you want to spend?") + "\n")
	b.WriteString(m.renderEnd("From:", endLow, m.low))
	b.WriteString(m.renderEnd("To:", endHigh, m.high))
	b.WriteString("\n")

	var tiers []string
	for t := m.low; t <= m.high; t++ {
		tiers = append(tiers, t.Label())
	}
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Accent).
		Render("  "+strings.Join(tiers, " · ")) + "\n")

	b.WriteString(styles.StatusBar.Render("←→ change • tab switch • enter next • esc back"))

	return styles.Border.Render(b.String())
}

func (m PriceModel) renderEnd(label string, end priceEnd, value search.Tier) string {
	var cells []string
	for t := search.MinTier; t <= search.MaxTier; t++ {
		style := styles.InactiveItem
		text := t.Label()
		if t == value {
			style = styles.ActiveItem
			if m.focused == end {
				text = "< " + text + " >"
			}
		}
		cells = append(cells, style.Render(text))
	}
	return fmt.Sprintf("%s %s\n", styles.Label.Render(label), strings.Join(cells, "  "))
}
