package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"github.com/rendis/mealee/internal/engine/game"
	"github.com/rendis/mealee/internal/model"
	"github.com/rendis/mealee/internal/tui/components"
	"github.com/rendis/mealee/internal/tui/styles"
)

// GameModel renders the matchup. The session is shared with the app, which
// applies every pick; this model only reads it.
type GameModel struct {
	session *game.Session
	width   int
}

func NewGameModel(session *game.Session) GameModel {
	return GameModel{session: session, width: 100}
}

func (m GameModel) Init() tea.Cmd {
	return nil
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m GameModel) handleKey(key string) tea.Cmd {
	if _, ok := m.session.Champion(); ok {
		switch key {
		case "enter", "r":
			return func() tea.Msg { return ResetMsg{} }
		case "d":
			return func() tea.Msg { return DismissMsg{} }
		}
		return nil
	}

	if m.session.State() != game.Paired {
		if key == "enter" || key == "r" {
			return func() tea.Msg { return ResetMsg{} }
		}
		return nil
	}

	switch key {
	case "left", "1", "h":
		return func() tea.Msg { return PickMsg{Winner: game.Challenger} }
	case "right", "2", "l":
		return func() tea.Msg { return PickMsg{Winner: game.Defender} }
	case "r":
		return func() tea.Msg { return ResetMsg{} }
	}
	return nil
}

func (m GameModel) View() string {
	if champ, ok := m.session.Champion(); ok {
		return m.viewChampion(champ)
	}
	if m.session.State() != game.Paired {
		return m.viewRoundOver()
	}
	return m.viewMatchup()
}

func (m GameModel) viewMatchup() string {
	challenger, _ := m.session.Contender(game.Challenger)
	defender, _ := m.session.Contender(game.Defender)

	cardWidth := (m.width - 6) / 2
	if cardWidth > 48 {
		cardWidth = 48
	}
	if cardWidth < 24 {
		cardWidth = 24
	}

	left := components.RenderCard(challenger, "←", cardWidth, styles.Card)
	right := components.RenderCard(defender, "→", cardWidth, styles.Card)
	vs := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Padding(2, 1).Render("vs")

	var b strings.Builder
	b.WriteString(styles.Title.Render("Which one sounds better?") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, vs, right))
	b.WriteString("\n")

	info := []string{
		fmt.Sprintf("%d left in the pool", m.session.Remaining()),
		fmt.Sprintf("%d picks", m.session.Picks()),
	}
	if km, ok := model.DistanceKm(challenger, defender); ok {
		info = append(info, fmt.Sprintf("%.1f km apart", km))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(strings.Join(info, " • ")))
	b.WriteString("\n")
	if minimap := m.renderMinimap(challenger, defender); minimap != "" {
		b.WriteString("\n" + minimap + "\n")
	}
	b.WriteString(styles.StatusBar.Render("← keep left • → keep right • r start over • ctrl+c quit"))

	return b.String()
}

// renderMinimap is empty unless both contenders have coordinates.
func (m GameModel) renderMinimap(challenger, defender model.Business) string {
	left, ok := challenger.Coordinates()
	if !ok {
		return ""
	}
	right, ok := defender.Coordinates()
	if !ok {
		return ""
	}

	var pool []orb.Point
	for _, biz := range m.session.Pool() {
		if p, ok := biz.Coordinates(); ok {
			pool = append(pool, p)
		}
	}
	return components.Minimap{Width: 32, Height: 5}.Render(left, right, pool)
}

func (m GameModel) viewChampion(champ model.Business) string {
	width := m.width - 8
	if width > 60 {
		width = 60
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Accent).Bold(true).
		Render("★ Your winner ★") + "\n\n")
	b.WriteString(components.RenderCard(champ, "", width, styles.ChampionCard))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
		Render(fmt.Sprintf("Picked after %d matchups", m.session.Picks())))
	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("enter play again • d not feeling it • ctrl+c quit"))
	return b.String()
}

func (m GameModel) viewRoundOver() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Round over") + "\n")

	eliminated := m.session.Eliminated()
	if len(eliminated) == 0 {
		b.WriteString(styles.Value.Render("Nobody made the cut this time."))
		b.WriteString("\n")
	} else {
		// the champion is the last one dismissed
		last := eliminated[len(eliminated)-1]
		b.WriteString(styles.Label.Render("Last standing:"))
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Accent).Bold(true).Render(last.Name()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
			Render(fmt.Sprintf("%d eliminated in %d picks", len(eliminated), m.session.Picks())))
		b.WriteString("\n")
	}
	b.WriteString(styles.StatusBar.Render("enter start over • ctrl+c quit"))
	return styles.Border.Render(b.String())
}
