package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/mealee/internal/model"
	"github.com/rendis/mealee/internal/tui/styles"
)

// CardLines lays out a business as plain text lines. The first line is the
// name; an empty value never produces a row.
func CardLines(biz model.Business) []string {
	var lines []string

	lines = append(lines, biz.Name())

	var meta []string
	if biz.Rating() > 0 {
		r := fmt.Sprintf("%.1f★", biz.Rating())
		if biz.ReviewCount() > 0 {
			r += fmt.Sprintf(" (%d reviews)", biz.ReviewCount())
		}
		meta = append(meta, r)
	}
	if biz.Price() != "" {
		meta = append(meta, biz.Price())
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, "  "))
	}

	if cats := biz.Categories(); len(cats) > 0 {
		lines = append(lines, strings.Join(cats, ", "))
	}

	lines = append(lines, "")

	addRow := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("%-9s %s", label, value))
		}
	}
	addRow("Address:", biz.Address())
	addRow("Phone:", biz.Phone())
	addRow("Web:", biz.URL())

	return lines
}

// RenderCard draws a business card of the given outer width. key is the
// keyboard hint shown in the header, e.g. "←".
func RenderCard(biz model.Business, key string, width int, style lipgloss.Style) string {
	inner := width - 4
	if inner < 16 {
		inner = 16
	}

	lines := CardLines(biz)
	var sb strings.Builder

	header := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	if key != "" {
		sb.WriteString(header.Render("["+key+"] ") + lipgloss.NewStyle().Bold(true).Foreground(styles.Text).
			Render(Truncate(lines[0], inner-lipgloss.Width(key)-3)))
	} else {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.Text).Render(Truncate(lines[0], inner)))
	}

	label := lipgloss.NewStyle().Foreground(styles.Muted)
	for i, line := range lines[1:] {
		sb.WriteString("\n")
		switch {
		case i == 0 && (biz.Rating() > 0 || biz.Price() != ""):
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Accent).Render(Truncate(line, inner)))
		case isRow(line):
			valStyle := lipgloss.NewStyle().Foreground(styles.Text)
			if strings.HasPrefix(line, "Web:") {
				valStyle = lipgloss.NewStyle().Foreground(styles.Primary)
			}
			sb.WriteString(label.Render(line[:rowLabelWidth]))
			sb.WriteString(valStyle.Render(Truncate(line[rowLabelWidth:], inner-rowLabelWidth)))
		default:
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Text).Render(Truncate(line, inner)))
		}
	}

	return style.Width(width - 2).Render(sb.String())
}

// rowLabelWidth is the "%-9s " prefix written by addRow.
const rowLabelWidth = 10

func isRow(line string) bool {
	for _, l := range []string{"Address:", "Phone:", "Web:"} {
		if strings.HasPrefix(line, l) && len(line) > rowLabelWidth {
			return true
		}
	}
	return false
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
